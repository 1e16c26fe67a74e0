/*
	Interfaces of unitypack commands.

	The heuristic for the callable library API is the same one the CLI
	obeys: all information must be racked up in the call already.
	The caller handles config loading and flag parsing, and the results
	of that are params in these funcs.
*/
package api

import (
	"context"
)

type PackFunc func(
	ctx context.Context, // Long-running call.  Cancellable.
	opts PackOptions, // Where to read assets, where to write the package.
	monitor Monitor, // Optionally: callbacks for progress monitoring.
) (PackResult, error)

/*
	Parameters for a pack run.

	All paths may be relative; they are resolved against Workdir.
	The zero value is not useful; see `packer.DefaultOptions`.
*/
type PackOptions struct {
	Workdir       string // Base directory the other paths are relative to.
	AssetsFolder  string // Source tree, relative to Workdir.  Recorded verbatim in each pathname.
	Output        string // Package file to create or overwrite.
	StagingParent string // Where the staging dir is created (blank means the OS temp dir).
	Level         int    // Gzip compression level.
}

type PackResult struct {
	Output     string `refmt:"output"` // Absolute path of the written package.
	Size       int64  `refmt:"size"`   // Bytes.
	Found      int    `refmt:"found"`
	Added      int    `refmt:"added"`
	Skipped    int    `refmt:"skipped"`
	Duplicates int    `refmt:"duplicates"`
}

/*
	Monitoring configuration structs, and message types used.
*/
type (
	/*
		Slot for the channel the caller wishes progress events to be sent to.
	*/
	Monitor struct {
		// Channel to which events will be sent as the process proceeds.
		// The channel will be closed when the process is done or cancelled.
		// A nil channel will disable all intermediate progress reporting.
		Chan chan<- Event
	}

	/*
		A "union" type of all the kinds of event that may be generated in the
		course of a pack.

		The "Result" message is never sent to Monitor.Chan --
		its values are converted into the function returns --
		but *is* seen in the serial form on the wire.
	*/
	Event struct {
		Log    *Event_Log    `refmt:"log,omitempty"`
		Result *Event_Result `refmt:"result,omitempty"`
	}

	/*
		Freetext log line, plus optional structured detail.

		Msg is already formatted for human consumption; Detail carries the
		same facts in machine-friendly form.
	*/
	Event_Log struct {
		Level  LogLevel          `refmt:"lvl"`
		Msg    string            `refmt:"msg"`
		Detail map[string]string `refmt:"detail,omitempty"`
	}

	Event_Result struct {
		Result *PackResult `refmt:"pack,omitempty"`
		Error  *Error      `refmt:"error,omitempty"`
	}
)

type LogLevel int

const (
	LogError LogLevel = 1
	LogWarn  LogLevel = 2
	LogInfo  LogLevel = 3
)

type ErrorCategory string
type ExitCode int

const (
	ExitSuccess                               = ExitCode(0)
	ExitUsage, ErrUsage                       = ExitCode(1), ErrorCategory("unitypack-usage-error")       // Some piece of user input was invalid and unrunnable (including a missing assets folder).
	ExitPanic                                 = ExitCode(2)                                               // Placeholder.  We don't use this.  '2' happens when golang exits due to panic.
	ExitSourceUnreadable, ErrSourceUnreadable = ExitCode(3), ErrorCategory("unitypack-source-unreadable") // Walking the source tree failed part-way.
	ExitStaging, ErrStaging                   = ExitCode(4), ErrorCategory("unitypack-staging-error")     // The staging area could not be created or written.
	ExitArchive, ErrArchive                   = ExitCode(5), ErrorCategory("unitypack-archive-error")     // The package file could not be written.
	ExitCancelled, ErrCancelled               = ExitCode(8), ErrorCategory("unitypack-cancelled")         // The operation was cancelled.

	// Not fatal: a sidecar could not be read.  The asset is skipped; the run continues.
	// Never returned from a PackFunc.
	ErrMetaUnreadable = ErrorCategory("unitypack-meta-unreadable")
)

/*
	Map an error category to the process exit code that reports it.

	Unknown categories (which shouldn't escape a PackFunc at all) map to ExitPanic.
*/
func ExitCodeForCategory(category interface{}) ExitCode {
	switch category {
	case nil:
		return ExitSuccess
	case ErrUsage:
		return ExitUsage
	case ErrSourceUnreadable:
		return ExitSourceUnreadable
	case ErrStaging:
		return ExitStaging
	case ErrArchive:
		return ExitArchive
	case ErrCancelled:
		return ExitCancelled
	default:
		return ExitPanic
	}
}
