package tarball

import (
	"archive/tar"
	"io"
	"io/ioutil"
	"os"
	"path"
	"sort"

	"github.com/klauspost/compress/gzip"
	. "github.com/warpfork/go-errcat"
	"gopkg.in/src-d/go-billy.v4"

	"github.com/polydawn/unitypack/api"
)

/*
	Pack the staging area into a new file outName in outfs, replacing
	anything already there.  Returns the size of the written package.

	On failure the partial package is removed.  Errors are `api.ErrArchive`,
	or `api.ErrUsage` for a bad compression level.
*/
func Pack(
	stagefs billy.Filesystem, // Staging area to pack.
	order []string, // Staging children that must lead the archive, in this order.
	outfs billy.Filesystem, // Where to write.
	outName string,
	level int, // Gzip compression level.
) (_ int64, err error) {
	defer RequireErrorHasCategory(&err, api.ErrorCategory(""))

	// Check the level before the existing package is truncated.
	if err := CheckLevel(level); err != nil {
		return 0, err
	}
	f, err := outfs.Create(outName)
	if err != nil {
		return 0, Errorf(api.ErrArchive, "cannot open package for writing: %s", err)
	}
	if err := Write(stagefs, order, f, level); err != nil {
		f.Close()
		outfs.Remove(outName)
		return 0, err
	}
	if err := f.Close(); err != nil {
		outfs.Remove(outName)
		return 0, Errorf(api.ErrArchive, "cannot finish writing package: %s", err)
	}
	fi, err := outfs.Stat(outName)
	if err != nil {
		return 0, Errorf(api.ErrArchive, "cannot stat written package: %s", err)
	}
	return fi.Size(), nil
}

/*
	Returns an `api.ErrUsage` error if level is not a gzip compression level.
*/
func CheckLevel(level int) error {
	if _, err := gzip.NewWriterLevel(ioutil.Discard, level); err != nil {
		return Errorf(api.ErrUsage, "invalid compression level %d: %s", level, err)
	}
	return nil
}

/*
	Stream the staging area as a gzip'd tar to w.

	Staging children named in order come first, in that order; any others
	follow in name order.  Names in order that aren't in staging are ignored.
*/
func Write(stagefs billy.Filesystem, order []string, w io.Writer, level int) (err error) {
	defer RequireErrorHasCategory(&err, api.ErrorCategory(""))

	entries, err := stagefs.ReadDir("")
	if err != nil {
		return Errorf(api.ErrArchive, "cannot list staging area: %s", err)
	}

	// Wrap writer stream to do compress on the way out.
	// The gzip writer must be closed separately; tar.Writer doesn't passthru its own close.
	gzWriter, err := gzip.NewWriterLevel(w, level)
	if err != nil {
		return Errorf(api.ErrUsage, "invalid compression level %d: %s", level, err)
	}
	tarWriter := tar.NewWriter(gzWriter)

	for _, name := range memberOrder(entries, order) {
		if err := packTree(stagefs, tarWriter, name, name); err != nil {
			return err
		}
	}

	if err := tarWriter.Close(); err != nil {
		return Errorf(api.ErrArchive, "cannot finish tar stream: %s", err)
	}
	if err := gzWriter.Close(); err != nil {
		return Errorf(api.ErrArchive, "cannot finish gzip stream: %s", err)
	}
	return nil
}

func memberOrder(entries []os.FileInfo, order []string) []string {
	present := make(map[string]bool, len(entries))
	for _, fi := range entries {
		present[fi.Name()] = true
	}
	names := make([]string, 0, len(entries))
	for _, name := range order {
		if present[name] {
			names = append(names, name)
			delete(present, name)
		}
	}
	var rest []string
	for name := range present {
		rest = append(rest, name)
	}
	sort.Strings(rest)
	return append(names, rest...)
}

/*
	Emit the tar entry for fsPath under the archive name arcName,
	then, if it's a dir, everything below it.
*/
func packTree(afs billy.Filesystem, tw *tar.Writer, fsPath string, arcName string) error {
	fi, err := afs.Stat(fsPath)
	if err != nil {
		return Errorf(api.ErrArchive, "cannot stat %s: %s", fsPath, err)
	}
	hdr, err := FileInfoToTarHdr(arcName, fi)
	if err != nil {
		return err
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return Errorf(api.ErrArchive, "cannot write tar header for %s: %s", arcName, err)
	}

	if !fi.IsDir() {
		file, err := afs.Open(fsPath)
		if err != nil {
			return Errorf(api.ErrArchive, "cannot open %s: %s", fsPath, err)
		}
		defer file.Close()
		if _, err := io.Copy(tw, file); err != nil {
			return Errorf(api.ErrArchive, "cannot write %s into package: %s", fsPath, err)
		}
		return nil
	}

	children, err := afs.ReadDir(fsPath)
	if err != nil {
		return Errorf(api.ErrArchive, "cannot list %s: %s", fsPath, err)
	}
	sort.Slice(children, func(i, j int) bool { return children[i].Name() < children[j].Name() })
	for _, child := range children {
		if err := packTree(afs, tw, afs.Join(fsPath, child.Name()), path.Join(arcName, child.Name())); err != nil {
			return err
		}
	}
	return nil
}
