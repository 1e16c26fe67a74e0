package asset

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/warpfork/go-errcat"
	"gopkg.in/src-d/go-billy.v4/memfs"

	"github.com/polydawn/unitypack/api"
	"github.com/polydawn/unitypack/testutil"
)

func TestEnumerate(t *testing.T) {
	Convey("Enumerate:", t, func() {
		afs := memfs.New()
		Convey("on the Deffatest tree", func() {
			testutil.PlaceFixture(afs, map[string]string{
				"Assets/Deffatest.meta":                     "guid: 0007",
				"Assets/Deffatest/README.md":                "hi",
				"Assets/Deffatest/README.md.meta":           "guid: 0006",
				"Assets/Deffatest/Scripts.meta":             "guid: def456",
				"Assets/Deffatest/Scripts/Foo.cs":           "class Foo {}",
				"Assets/Deffatest/Scripts/Foo.cs.meta":      "guid: abc123",
				"Assets/Deffatest/Scripts/Orphan.cs":        "class Orphan {}",
				"Assets/Deffatest/Plain/":                   "",
				"Assets/Deffatest/Plain/Bar.png":            "png",
				"Assets/Deffatest/Plain/Bar.png.meta":       "guid: 0001",
				"Assets/Deffatest/Scripts/Editor.meta":      "guid: 0002",
				"Assets/Deffatest/Scripts/Editor/E.cs":      "class E {}",
				"Assets/Deffatest/Scripts/Editor/E.cs.meta": "guid: 0003",
			})
			assets, err := Enumerate(afs, "Assets/Deffatest")
			So(err, ShouldBeNil)

			Convey("the root comes first, exactly once", func() {
				So(assets[0], ShouldResemble, Asset{
					Path:     "Assets/Deffatest",
					MetaPath: "Assets/Deffatest.meta",
					IsDir:    true,
				})
				n := 0
				for _, a := range assets {
					if a.Path == "Assets/Deffatest" {
						n++
					}
				}
				So(n, ShouldEqual, 1)
			})
			Convey("the rest is a stable top-down walk, skipping things without sidecars", func() {
				var paths []string
				for _, a := range assets {
					paths = append(paths, a.Path)
				}
				So(paths, ShouldResemble, []string{
					"Assets/Deffatest",
					"Assets/Deffatest/README.md",
					"Assets/Deffatest/Plain/Bar.png",
					"Assets/Deffatest/Scripts",
					"Assets/Deffatest/Scripts/Foo.cs",
					"Assets/Deffatest/Scripts/Editor",
					"Assets/Deffatest/Scripts/Editor/E.cs",
				})
			})
			Convey("file records carry their content path; dir records don't", func() {
				for _, a := range assets {
					switch a.Path {
					case "Assets/Deffatest/Scripts/Foo.cs":
						So(a.IsDir, ShouldBeFalse)
						So(a.ContentPath, ShouldEqual, "Assets/Deffatest/Scripts/Foo.cs")
						So(a.MetaPath, ShouldEqual, "Assets/Deffatest/Scripts/Foo.cs.meta")
					case "Assets/Deffatest/Scripts":
						So(a.IsDir, ShouldBeTrue)
						So(a.ContentPath, ShouldEqual, "")
					}
				}
			})
		})
		Convey("a root spelled with a trailing slash or a leading dot is the same root", func() {
			testutil.PlaceFixture(afs, map[string]string{
				"root.meta":       "guid: rr",
				"root/a.txt":      "a",
				"root/a.txt.meta": "guid: aa",
			})
			want := []Asset{
				{Path: "root", MetaPath: "root.meta", IsDir: true},
				{Path: "root/a.txt", MetaPath: "root/a.txt.meta", ContentPath: "root/a.txt"},
			}
			for _, spelling := range []string{"root/", "./root", "root"} {
				assets, err := Enumerate(afs, spelling)
				So(err, ShouldBeNil)
				So(assets, ShouldResemble, want)
			}
		})
		Convey("a root without a sidecar gets no record of its own", func() {
			testutil.PlaceFixture(afs, map[string]string{
				"root/a.txt":      "a",
				"root/a.txt.meta": "guid: aa",
			})
			assets, err := Enumerate(afs, "root")
			So(err, ShouldBeNil)
			So(assets, ShouldResemble, []Asset{
				{Path: "root/a.txt", MetaPath: "root/a.txt.meta", ContentPath: "root/a.txt"},
			})
		})
		Convey("sidecars are never assets themselves, even with a sidecar of their own", func() {
			testutil.PlaceFixture(afs, map[string]string{
				"root/a.meta":      "guid: aa",
				"root/a.meta.meta": "guid: bb",
			})
			assets, err := Enumerate(afs, "root")
			So(err, ShouldBeNil)
			So(assets, ShouldHaveLength, 0)
		})
		Convey("a missing root is a usage error", func() {
			_, err := Enumerate(afs, "nope")
			So(err, errcat.ErrorShouldHaveCategory, api.ErrUsage)
		})
		Convey("a root that is a file is a usage error", func() {
			testutil.PlaceFixture(afs, map[string]string{"root": "x"})
			_, err := Enumerate(afs, "root")
			So(err, errcat.ErrorShouldHaveCategory, api.ErrUsage)
		})
	})
}
