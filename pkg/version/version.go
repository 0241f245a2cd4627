// Package version carries build metadata injected with -ldflags -X.
package version

import (
	"fmt"
	"runtime/debug"
)

// Version is the semantic version of the codemod binary.
var Version = "dev"

// Commit is the Git hash the binary was built from.
var Commit = "<unknown>"

// Date is the build timestamp.
var Date = "<unknown>"

// InitBinaryVersion fills Version and Commit from the module build info
// when the binary was built without ldflags (e.g. go install).
func InitBinaryVersion() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if Commit == "<unknown>" {
				Commit = setting.Value
			}
		case "vcs.time":
			if Date == "<unknown>" {
				Date = setting.Value
			}
		}
	}
}

// String formats the metadata for the version command.
func String() string {
	return fmt.Sprintf("codemod %s (commit: %s, built: %s)", Version, Commit, Date)
}
