package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/polydawn/refmt"
	"github.com/polydawn/refmt/json"
	. "github.com/warpfork/go-errcat"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/polydawn/unitypack/api"
	"github.com/polydawn/unitypack/packer"
)

/*
	Output serialization formats
*/
const (
	FmtJson = "json"
	FmtDumb = "dumb"
)

type baseCLI struct {
	Format string // Output api format, eg. json
	Pack   api.PackOptions
}

/*
	Blocks until a sigint is received, then calls cancel.
	Returns without cancelling once ctx is done.
*/
func CancelOnInterrupt(ctx context.Context, cancel context.CancelFunc) {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt)
	defer signal.Stop(signalChan)
	select {
	case <-signalChan:
		cancel()
	case <-ctx.Done():
	}
}

func main() {
	ctx := context.Background()
	exitCode := Main(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	os.Exit(int(exitCode))
}

func Main(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) api.ExitCode {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go CancelOnInterrupt(ctx, cancel)

	defaults := packer.DefaultOptions()
	cli := baseCLI{}

	app := kingpin.New("unitypack", "Pack a Unity assets folder into a .unitypackage")
	app.HelpFlag.Short('h')

	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)

	app.Flag("workdir", "Directory the other paths are relative to (default: the executable's dir)").
		Envar("UNITYPACK_WORKDIR").
		Default(defaults.Workdir).
		StringVar(&cli.Pack.Workdir)
	app.Flag("assets", "Assets folder to pack, relative to the workdir").
		Envar("UNITYPACK_ASSETS").
		Default(defaults.AssetsFolder).
		StringVar(&cli.Pack.AssetsFolder)
	app.Flag("output", "Package file to write").
		Short('o').
		Envar("UNITYPACK_OUTPUT").
		Default(defaults.Output).
		StringVar(&cli.Pack.Output)
	app.Flag("staging-dir", "Where to create the temporary staging dir (default: the OS temp dir)").
		Envar("UNITYPACK_STAGING").
		Default(defaults.StagingParent).
		StringVar(&cli.Pack.StagingParent)
	app.Flag("level", "Gzip compression level").
		Envar("UNITYPACK_LEVEL").
		Default(fmt.Sprint(defaults.Level)).
		IntVar(&cli.Pack.Level)
	app.Flag("format", "Output api format").
		Default(FmtDumb).
		EnumVar(&cli.Format, FmtJson, FmtDumb)

	var termErr error
	app.Terminate(func(status int) {
		termErr = fmt.Errorf("parsing error: %d", status)
	})
	if _, err := app.Parse(args[1:]); err != nil {
		fmt.Fprintln(stderr, err)
		return api.ExitUsage
	}
	if termErr != nil {
		// Help was requested (or parsing bailed); kingpin already said its piece.
		return api.ExitUsage
	}

	events := make(chan api.Event)
	done := make(chan struct{})
	var (
		result api.PackResult
		err    error
	)
	go func() {
		defer close(done)
		result, err = packer.Pack(ctx, cli.Pack, api.Monitor{Chan: events})
	}()
	for ev := range events {
		SerializeEvent(cli.Format, ev, stdout, stderr)
	}
	<-done

	SerializeResult(cli.Format, result, err, stdout, stderr)
	return api.ExitCodeForCategory(Category(err))
}

func SerializeEvent(format string, ev api.Event, stdout, stderr io.Writer) {
	switch format {
	case FmtJson:
		marshal(stdout, &ev)
	case FmtDumb:
		if ev.Log == nil {
			return
		}
		fmt.Fprintln(stdout, ev.Log.Msg)
	default:
		panic(fmt.Errorf("unitypack: invalid format %s", format))
	}
}

func SerializeResult(format string, result api.PackResult, resultErr error, stdout, stderr io.Writer) {
	switch format {
	case FmtJson:
		ev := api.Event{Result: &api.Event_Result{Error: api.ToError(resultErr)}}
		if resultErr == nil {
			ev.Result.Result = &result
		}
		marshal(stdout, &ev)
	case FmtDumb:
		if resultErr != nil {
			fmt.Fprintln(stderr, resultErr)
		}
	default:
		panic(fmt.Errorf("unitypack: invalid format %s", format))
	}
}

func marshal(w io.Writer, ev *api.Event) {
	marshaller := refmt.NewMarshallerAtlased(json.EncodeOptions{}, w, api.Atlas)
	if err := marshaller.Marshal(ev); err != nil {
		panic(err)
	}
	fmt.Fprintln(w)
}
