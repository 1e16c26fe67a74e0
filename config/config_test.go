package config

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/polydawn/unitypack/testutil"
)

func withEnv(key, value string, fn func()) {
	prev, had := os.LookupEnv(key)
	os.Setenv(key, value)
	defer func() {
		if had {
			os.Setenv(key, prev)
		} else {
			os.Unsetenv(key)
		}
	}()
	fn()
}

func TestConfig(t *testing.T) {
	Convey("Config defaults:", t, testutil.Requires(
		testutil.RequiresEnvBlank("UNITYPACK_WORKDIR"),
		testutil.RequiresEnvBlank("UNITYPACK_ASSETS"),
		testutil.RequiresEnvBlank("UNITYPACK_OUTPUT"),
		testutil.RequiresEnvBlank("UNITYPACK_LEVEL"),
		func() {
			Convey("match the shipped project", func() {
				So(GetAssetsFolder(), ShouldEqual, "Assets/Deffatest")
				So(GetOutputName(), ShouldEqual, "Deffatest_v1.0.0.unitypackage")
				So(GetLevel(), ShouldEqual, 9)
			})
			Convey("workdir is the executable's dir", func() {
				exe, err := os.Executable()
				So(err, ShouldBeNil)
				exe, err = filepath.EvalSymlinks(exe)
				So(err, ShouldBeNil)
				So(GetWorkdir(), ShouldEqual, filepath.Dir(exe))
			})
		},
	))
	Convey("Config env overrides:", t, func() {
		Convey("UNITYPACK_WORKDIR is made absolute", func() {
			withEnv("UNITYPACK_WORKDIR", "some/dir", func() {
				cwd, err := os.Getwd()
				So(err, ShouldBeNil)
				So(GetWorkdir(), ShouldEqual, filepath.Join(cwd, "some/dir"))
			})
		})
		Convey("UNITYPACK_ASSETS and UNITYPACK_OUTPUT win over the defaults", func() {
			withEnv("UNITYPACK_ASSETS", "Assets/Other", func() {
				withEnv("UNITYPACK_OUTPUT", "other.unitypackage", func() {
					So(GetAssetsFolder(), ShouldEqual, "Assets/Other")
					So(GetOutputName(), ShouldEqual, "other.unitypackage")
				})
			})
		})
		Convey("UNITYPACK_LEVEL is parsed, and junk ignored", func() {
			withEnv("UNITYPACK_LEVEL", "1", func() {
				So(GetLevel(), ShouldEqual, 1)
			})
			withEnv("UNITYPACK_LEVEL", "fast", func() {
				So(GetLevel(), ShouldEqual, 9)
			})
		})
	})
}
