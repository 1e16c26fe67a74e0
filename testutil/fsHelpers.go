package testutil

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/smartystreets/goconvey/convey"
	"gopkg.in/src-d/go-billy.v4"
	"gopkg.in/src-d/go-billy.v4/util"
)

/*
	Run fn with a fresh, empty, absolute temp dir; remove it after.
*/
func WithTmpdir(fn func(tmpDir string)) {
	tmpBase := "/tmp/unitypack-test"
	if err := os.MkdirAll(tmpBase, 0755); err != nil {
		panic(err)
	}
	tmpDir, err := ioutil.TempDir(tmpBase, "")
	if err != nil {
		panic(err)
	}
	tmpDir, err = filepath.Abs(tmpDir)
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)
	fn(tmpDir)
}

/*
	Write a tree of files into afs.

	Keys ending in "/" make (empty) directories; every other key is a file
	with the value as its body.  Parents are created as needed.
*/
func PlaceFixture(afs billy.Filesystem, files map[string]string) {
	for name, body := range files {
		if strings.HasSuffix(name, "/") {
			if err := afs.MkdirAll(strings.TrimSuffix(name, "/"), 0755); err != nil {
				panic(err)
			}
			continue
		}
		if dir := filepath.Dir(name); dir != "." {
			if err := afs.MkdirAll(dir, 0755); err != nil {
				panic(err)
			}
		}
		if err := util.WriteFile(afs, name, []byte(body), 0644); err != nil {
			panic(err)
		}
	}
}

/*
	Read a whole file out of afs, asserting that works.
*/
func ShouldReadFile(afs billy.Filesystem, name string) string {
	f, err := afs.Open(name)
	convey.So(err, convey.ShouldBeNil)
	defer f.Close()
	body, err := ioutil.ReadAll(f)
	convey.So(err, convey.ShouldBeNil)
	return string(body)
}

/*
	Assert that name does not exist in afs.
*/
func ShouldNotStat(afs billy.Filesystem, name string) {
	_, err := afs.Stat(name)
	convey.So(os.IsNotExist(err), convey.ShouldBeTrue)
}
