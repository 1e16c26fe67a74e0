package asset

import (
	"strings"
)

// MetaSuffix marks sidecar files.
const MetaSuffix = ".meta"

/*
	One enumerated asset.

	Path is what ends up in the package's pathname file, so it is always
	forward-slash separated regardless of host.
	ContentPath is blank for directory assets.
*/
type Asset struct {
	Path        string
	MetaPath    string
	IsDir       bool
	ContentPath string
}

func normalizePath(p string) string {
	return strings.Replace(p, "\\", "/", -1)
}
