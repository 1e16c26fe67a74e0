package asset

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	. "github.com/warpfork/go-errcat"
	"gopkg.in/src-d/go-billy.v4"

	"github.com/polydawn/unitypack/api"
)

/*
	Enumerate every asset under root.

	The walk is top-down: a directory's own record comes before the records
	of the files in it, and those come before anything in its subdirectories.
	Siblings are visited in name order, so the result is stable for an
	unchanged tree.

	The root itself is recorded once, at the front, if it has a sidecar:
	importers create directories in archive order, so the package root must
	come first.

	Symlinks that resolve to directories are neither descended nor recorded.

	Root is cleaned first, so "Assets/X/" and "./Assets/X" mean "Assets/X".

	Errors are fatal: `api.ErrUsage` if root is missing or not a directory,
	`api.ErrSourceUnreadable` if a directory can't be listed.
*/
func Enumerate(afs billy.Filesystem, root string) (_ []Asset, err error) {
	defer RequireErrorHasCategory(&err, api.ErrorCategory(""))

	root = filepath.Clean(root)
	fi, err := afs.Stat(root)
	switch {
	case os.IsNotExist(err):
		return nil, Errorf(api.ErrUsage, "assets folder %q does not exist", root)
	case err != nil:
		return nil, Errorf(api.ErrSourceUnreadable, "cannot stat assets folder %q: %s", root, err)
	case !fi.IsDir():
		return nil, Errorf(api.ErrUsage, "assets folder %q is not a directory", root)
	}

	w := &walker{afs: afs, root: root}
	if err := w.visit(root); err != nil {
		return nil, err
	}
	if !hasSidecar(afs, root) {
		return w.assets, nil
	}
	return append([]Asset{dirAsset(root)}, w.assets...), nil
}

type walker struct {
	afs    billy.Filesystem
	root   string
	assets []Asset
}

func (w *walker) visit(dir string) error {
	if dir != w.root && hasSidecar(w.afs, dir) {
		w.assets = append(w.assets, dirAsset(dir))
	}

	entries, err := w.afs.ReadDir(dir)
	if err != nil {
		return Errorf(api.ErrSourceUnreadable, "cannot list %q: %s", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var subdirs []string
	for _, entry := range entries {
		pth := w.afs.Join(dir, entry.Name())
		if entry.IsDir() {
			subdirs = append(subdirs, pth)
			continue
		}
		if entry.Mode()&os.ModeSymlink != 0 {
			if target, err := w.afs.Stat(pth); err == nil && target.IsDir() {
				continue
			}
		}
		if strings.HasSuffix(entry.Name(), MetaSuffix) {
			continue
		}
		if hasSidecar(w.afs, pth) {
			w.assets = append(w.assets, Asset{
				Path:        normalizePath(pth),
				MetaPath:    pth + MetaSuffix,
				ContentPath: pth,
			})
		}
	}

	for _, sub := range subdirs {
		if err := w.visit(sub); err != nil {
			return err
		}
	}
	return nil
}

func dirAsset(dir string) Asset {
	return Asset{
		Path:     normalizePath(dir),
		MetaPath: dir + MetaSuffix,
		IsDir:    true,
	}
}

func hasSidecar(afs billy.Filesystem, pth string) bool {
	_, err := afs.Stat(pth + MetaSuffix)
	return err == nil
}
