/*
	Helper functions for emitting structured logs to the api.Monitor.

	These functions encompass the lifecycle events of a pack run,
	and using them A) saves typing and B) keeps the console output
	formatted the same way everywhere.
	Callers can of course also write their own log events raw; it is freetext.
*/
package log

import (
	"fmt"

	"github.com/polydawn/unitypack/api"
)

func emit(mon api.Monitor, lvl api.LogLevel, msg string, detail map[string]string) {
	if mon.Chan == nil {
		return
	}
	mon.Chan <- api.Event{
		Log: &api.Event_Log{
			Level:  lvl,
			Msg:    msg,
			Detail: detail,
		},
	}
}

func Started(mon api.Monitor, output, assetsFolder string) {
	emit(mon, api.LogInfo, fmt.Sprintf("Creating Unity Package: %s", output), map[string]string{"output": output})
	emit(mon, api.LogInfo, fmt.Sprintf("Assets folder: %s", assetsFolder), map[string]string{"assets": assetsFolder})
}

func Found(mon api.Monitor, n int) {
	emit(mon, api.LogInfo, fmt.Sprintf("Found %d assets", n), map[string]string{"count": fmt.Sprint(n)})
}

func Adding(mon api.Monitor, path, guid string) {
	short := guid
	if len(short) > 8 {
		short = short[:8]
	}
	emit(mon, api.LogInfo, fmt.Sprintf("  Adding: %s (GUID: %s...)", path, short), map[string]string{
		"path": path,
		"guid": guid,
	})
}

func Skipping(mon api.Monitor, path string) {
	emit(mon, api.LogInfo, fmt.Sprintf("  Skipping (no GUID): %s", path), map[string]string{"path": path})
}

// Typically called with an `api.ErrMetaUnreadable`; the asset is about to be skipped.
func MetaUnreadable(mon api.Monitor, metaPath string, err error) {
	emit(mon, api.LogWarn, fmt.Sprintf("Error reading %s: %s", metaPath, err), map[string]string{
		"meta":  metaPath,
		"error": err.Error(),
	})
}

func DuplicateGUID(mon api.Monitor, guid, prevPath, path string) {
	emit(mon, api.LogWarn, fmt.Sprintf("  Duplicate GUID %s: %s replaces %s", guid, path, prevPath), map[string]string{
		"guid":     guid,
		"path":     path,
		"replaced": prevPath,
	})
}

func Archiving(mon api.Monitor) {
	emit(mon, api.LogInfo, "\nCreating archive...", nil)
}

func Created(mon api.Monitor, absPath string, size int64) {
	emit(mon, api.LogInfo, "\nPackage created successfully!", nil)
	emit(mon, api.LogInfo, fmt.Sprintf("   Output: %s", absPath), map[string]string{"output": absPath})
	emit(mon, api.LogInfo, fmt.Sprintf("   Size: %.1f KB", float64(size)/1024), map[string]string{"size": fmt.Sprint(size)})
}
