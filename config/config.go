/*
	Helpers for loading contextual config.

	Config for unitypack means "where things are by default": the project
	directory, the assets folder to pack, and the package to write.
	Each has a baked-in default matching the project this tool ships with,
	and each can be overridden by an environment variable.
	(Flags on the command line override both; that's the CLI's business.)
*/
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/polydawn/unitypack/tarball"
)

const (
	DefaultAssetsFolder = "Assets/Deffatest"
	DefaultOutputName   = "Deffatest_v1.0.0.unitypackage"
)

/*
	Return the directory relative paths are resolved against.

	The default is the directory holding the running executable, so the tool
	can be dropped next to an `Assets/` folder and run from anywhere;
	this can be overriden by the `UNITYPACK_WORKDIR` environment variable.
*/
func GetWorkdir() string {
	pth := os.Getenv("UNITYPACK_WORKDIR")
	if pth == "" {
		exe, err := os.Executable()
		if err != nil {
			panic(err)
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		pth = filepath.Dir(exe)
	}
	pth, err := filepath.Abs(pth)
	if err != nil {
		panic(err)
	}
	return pth
}

/*
	Return the assets folder to pack, relative to the workdir.

	The default value is `"Assets/Deffatest"`;
	this can be overriden by the `UNITYPACK_ASSETS` environment variable.
*/
func GetAssetsFolder() string {
	if pth := os.Getenv("UNITYPACK_ASSETS"); pth != "" {
		return pth
	}
	return DefaultAssetsFolder
}

/*
	Return the package file to write.

	The default value is `"Deffatest_v1.0.0.unitypackage"`;
	this can be overriden by the `UNITYPACK_OUTPUT` environment variable.
*/
func GetOutputName() string {
	if pth := os.Getenv("UNITYPACK_OUTPUT"); pth != "" {
		return pth
	}
	return DefaultOutputName
}

/*
	Return the dir staging areas are created in.

	The default value is blank, meaning the OS temp dir;
	this can be overriden by the `UNITYPACK_STAGING` environment variable.
*/
func GetStagingParent() string {
	return os.Getenv("UNITYPACK_STAGING")
}

/*
	Return the gzip level to pack with.

	The default value is 9;
	this can be overriden by the `UNITYPACK_LEVEL` environment variable.
	Junk in the variable is ignored.
*/
func GetLevel() int {
	if lvl, err := strconv.Atoi(os.Getenv("UNITYPACK_LEVEL")); err == nil {
		return lvl
	}
	return tarball.DefaultLevel
}
