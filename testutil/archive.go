package testutil

import (
	"archive/tar"
	"io"
	"io/ioutil"
	"os"

	"github.com/klauspost/compress/gzip"
)

/*
	The decoded contents of a package: member names in archive order,
	and the bodies of the regular files.
*/
type Archive struct {
	Names  []string
	Bodies map[string][]byte
}

func ReadArchive(r io.Reader) (*Archive, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer gz.Close()
	tr := tar.NewReader(gz)
	arc := &Archive{Bodies: map[string][]byte{}}
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return arc, nil
		}
		if err != nil {
			return nil, err
		}
		arc.Names = append(arc.Names, hdr.Name)
		if hdr.Typeflag == tar.TypeReg {
			body, err := ioutil.ReadAll(tr)
			if err != nil {
				return nil, err
			}
			arc.Bodies[hdr.Name] = body
		}
	}
}

func ReadArchiveFile(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadArchive(f)
}
