package asset

import (
	"io/ioutil"
	"regexp"
	"unicode/utf8"

	. "github.com/warpfork/go-errcat"
	"gopkg.in/src-d/go-billy.v4"

	"github.com/polydawn/unitypack/api"
)

var guidPattern = regexp.MustCompile(`guid:\s*([a-f0-9]+)`)

/*
	Read the GUID out of a sidecar file.

	Returns "" and a nil error if the sidecar simply has no GUID line.
	Any failure to read the file (missing, permissions, not UTF-8) returns ""
	and an error of category `api.ErrMetaUnreadable`; that's recoverable,
	and callers are expected to log it and move on.
*/
func ExtractGUID(afs billy.Filesystem, metaPath string) (string, error) {
	f, err := afs.Open(metaPath)
	if err != nil {
		return "", Errorf(api.ErrMetaUnreadable, "%s", err)
	}
	defer f.Close()
	content, err := ioutil.ReadAll(f)
	if err != nil {
		return "", Errorf(api.ErrMetaUnreadable, "%s", err)
	}
	if !utf8.Valid(content) {
		return "", Errorf(api.ErrMetaUnreadable, "%s is not valid utf-8", metaPath)
	}
	match := guidPattern.FindSubmatch(content)
	if match == nil {
		return "", nil
	}
	return string(match[1]), nil
}
