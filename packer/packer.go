/*
	Package packer runs the whole pipeline: enumerate the assets, stage them
	by GUID, and pack the staging area into a .unitypackage.
*/
package packer

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"

	. "github.com/warpfork/go-errcat"
	"gopkg.in/src-d/go-billy.v4/osfs"

	"github.com/polydawn/unitypack/api"
	"github.com/polydawn/unitypack/asset"
	"github.com/polydawn/unitypack/config"
	"github.com/polydawn/unitypack/log"
	"github.com/polydawn/unitypack/staging"
	"github.com/polydawn/unitypack/tarball"
)

var (
	_ api.PackFunc = Pack
)

const stagingPrefix = "unitypack-staging-"

// DefaultOptions fills every option from the config package.
func DefaultOptions() api.PackOptions {
	return api.PackOptions{
		Workdir:       config.GetWorkdir(),
		AssetsFolder:  config.GetAssetsFolder(),
		Output:        config.GetOutputName(),
		StagingParent: config.GetStagingParent(),
		Level:         config.GetLevel(),
	}
}

func Pack(
	ctx context.Context, // Long-running call.  Cancellable.
	opts api.PackOptions, // Where to read assets, where to write the package.
	mon api.Monitor, // Optionally: callbacks for progress monitoring.
) (_ api.PackResult, err error) {
	if mon.Chan != nil {
		defer close(mon.Chan)
	}
	defer RequireErrorHasCategory(&err, api.ErrorCategory(""))

	// Sanitize arguments.
	if opts.Workdir == "" {
		return api.PackResult{}, Errorf(api.ErrUsage, "workdir must be set")
	}
	workdir, err := filepath.Abs(opts.Workdir)
	if err != nil {
		return api.PackResult{}, Errorf(api.ErrUsage, "invalid workdir: %s", err)
	}
	if opts.AssetsFolder == "" || filepath.IsAbs(opts.AssetsFolder) {
		return api.PackResult{}, Errorf(api.ErrUsage, "assets folder must be a path relative to the workdir (it is recorded in every pathname), not %q", opts.AssetsFolder)
	}
	assetsFolder := filepath.Clean(opts.AssetsFolder)
	if err := tarball.CheckLevel(opts.Level); err != nil {
		return api.PackResult{}, err
	}
	if opts.Output == "" {
		return api.PackResult{}, Errorf(api.ErrUsage, "output must be set")
	}
	output := opts.Output
	if !filepath.IsAbs(output) {
		output = filepath.Join(workdir, output)
	}

	log.Started(mon, opts.Output, opts.AssetsFolder)

	// Get a staging area, and make sure it goes away no matter how we leave.
	stagingDir, err := ioutil.TempDir(opts.StagingParent, stagingPrefix)
	if err != nil {
		return api.PackResult{}, Errorf(api.ErrStaging, "cannot create staging dir: %s", err)
	}
	defer os.RemoveAll(stagingDir)
	stagefs := osfs.New(stagingDir)

	// Find everything that's going in.
	srcfs := osfs.New(workdir)
	assets, err := asset.Enumerate(srcfs, assetsFolder)
	if err != nil {
		return api.PackResult{}, err
	}
	log.Found(mon, len(assets))

	report, err := staging.Stage(ctx, srcfs, stagefs, assets, mon)
	if err != nil {
		return api.PackResult{}, err
	}

	log.Archiving(mon)
	size, err := tarball.Pack(stagefs, report.Order, osfs.New(filepath.Dir(output)), filepath.Base(output), opts.Level)
	if err != nil {
		return api.PackResult{}, err
	}
	log.Created(mon, output, size)

	return api.PackResult{
		Output:     output,
		Size:       size,
		Found:      len(assets),
		Added:      report.Added,
		Skipped:    len(report.Skipped),
		Duplicates: len(report.Duplicates),
	}, nil
}
