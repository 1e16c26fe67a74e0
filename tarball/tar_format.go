package tarball

import (
	"archive/tar"
	"os"
	"time"

	. "github.com/warpfork/go-errcat"

	"github.com/polydawn/unitypack/api"
)

/*
	Build the tar header for a staged file or dir.

	Staging only ever holds plain files and dirs; anything else is an error.
	Ownership is left zero, since the importer ignores it.
*/
func FileInfoToTarHdr(name string, fi os.FileInfo) (*tar.Header, error) {
	hdr := &tar.Header{
		Name: name,
		Mode: int64(fi.Mode().Perm()),
		// Flatten time to seconds.  The tar writer impl doesn't do subsecond precision anyway.
		ModTime: fi.ModTime().Truncate(time.Second),
	}
	switch {
	case fi.IsDir():
		hdr.Name += "/"
		hdr.Typeflag = tar.TypeDir
	case fi.Mode().IsRegular():
		hdr.Typeflag = tar.TypeReg
		hdr.Size = fi.Size()
	default:
		return nil, Errorf(api.ErrArchive, "%s is a %s; only files and dirs can be packed", name, fi.Mode().Type())
	}
	return hdr, nil
}
