/*
	The staging builder lays out one directory per asset GUID,
	mirroring the inside of a .unitypackage before it's compressed.

	Each entry holds:

		<guid>/pathname    -- the asset's project-relative path, no trailing newline
		<guid>/asset.meta  -- verbatim copy of the sidecar
		<guid>/asset       -- verbatim copy of the content (file assets only)
*/
package staging

import (
	"context"
	"io"
	"os"

	. "github.com/warpfork/go-errcat"
	"gopkg.in/src-d/go-billy.v4"
	"gopkg.in/src-d/go-billy.v4/util"

	"github.com/polydawn/unitypack/api"
	"github.com/polydawn/unitypack/asset"
	"github.com/polydawn/unitypack/log"
)

const (
	PathnameFile = "pathname"
	MetaFile     = "asset.meta"
	ContentFile  = "asset"
)

type Report struct {
	// GUIDs in the order they were first staged.  Each appears once.
	Order      []string
	Added      int
	Skipped    []string // Paths of assets with no resolvable GUID.
	Duplicates []Duplicate
}

/*
	Two assets that resolved to the same GUID.

	The later one (Path) replaced the earlier one (Replaced) in staging.
*/
type Duplicate struct {
	GUID     string
	Path     string
	Replaced string
}

/*
	Stage every asset with a resolvable GUID into stagefs.

	Assets whose sidecar is unreadable or has no GUID are logged and skipped;
	that's normal and never aborts.  Any failure to write staging is fatal
	(`api.ErrStaging`), as is cancellation (`api.ErrCancelled`).

	If two assets share a GUID, the later one wins: its entry is written
	into a cleared directory, and the collision is logged and reported.
*/
func Stage(
	ctx context.Context,
	srcfs billy.Filesystem, // Where the asset paths are resolved.
	stagefs billy.Filesystem, // Empty staging area.
	assets []asset.Asset,
	mon api.Monitor,
) (_ Report, err error) {
	defer RequireErrorHasCategory(&err, api.ErrorCategory(""))

	report := Report{}
	seen := map[string]string{}
	for _, a := range assets {
		if ctx.Err() != nil {
			return report, Errorf(api.ErrCancelled, "cancelled")
		}

		guid, err := asset.ExtractGUID(srcfs, a.MetaPath)
		if err != nil {
			log.MetaUnreadable(mon, a.MetaPath, err)
		}
		if guid == "" {
			log.Skipping(mon, a.Path)
			report.Skipped = append(report.Skipped, a.Path)
			continue
		}

		log.Adding(mon, a.Path, guid)
		if prev, ok := seen[guid]; ok {
			log.DuplicateGUID(mon, guid, prev, a.Path)
			report.Duplicates = append(report.Duplicates, Duplicate{guid, a.Path, prev})
			if err := util.RemoveAll(stagefs, guid); err != nil {
				return report, Errorf(api.ErrStaging, "cannot clear staging entry %s: %s", guid, err)
			}
		} else {
			report.Order = append(report.Order, guid)
		}
		seen[guid] = a.Path

		if err := stageEntry(srcfs, stagefs, guid, a); err != nil {
			return report, err
		}
		report.Added++
	}
	return report, nil
}

func stageEntry(srcfs, stagefs billy.Filesystem, guid string, a asset.Asset) error {
	if err := stagefs.MkdirAll(guid, 0755); err != nil {
		return Errorf(api.ErrStaging, "cannot create staging entry %s: %s", guid, err)
	}
	if err := util.WriteFile(stagefs, stagefs.Join(guid, PathnameFile), []byte(a.Path), 0644); err != nil {
		return Errorf(api.ErrStaging, "cannot write pathname for %s: %s", a.Path, err)
	}
	if err := copyFile(srcfs, a.MetaPath, stagefs, stagefs.Join(guid, MetaFile)); err != nil {
		return err
	}
	if a.IsDir || a.ContentPath == "" {
		return nil
	}
	return copyFile(srcfs, a.ContentPath, stagefs, stagefs.Join(guid, ContentFile))
}

func copyFile(srcfs billy.Filesystem, src string, dstfs billy.Filesystem, dst string) error {
	in, err := srcfs.Open(src)
	if err != nil {
		return Errorf(api.ErrStaging, "cannot read %s: %s", src, err)
	}
	defer in.Close()
	out, err := dstfs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return Errorf(api.ErrStaging, "cannot create %s: %s", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return Errorf(api.ErrStaging, "cannot copy %s: %s", src, err)
	}
	if err := out.Close(); err != nil {
		return Errorf(api.ErrStaging, "cannot copy %s: %s", src, err)
	}
	return nil
}
