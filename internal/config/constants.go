package config

// Version is the current pathprove version.
var Version = "0.1.0"

const SourceFileExt = ".pp"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{SourceFileExt, ".sym"}

// TrimSourceExt removes a recognized source extension from a filename.
// Returns the original string if no extension matches.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt returns true if path ends with any recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// Default exploration limits, overridable by config file and CLI flags.
const (
	DefaultMaxDepth = 10
	DefaultMaxTries = 10
	DefaultMaxIter  = 10
	DefaultConstant = true
)

// MaxRecheckDepth bounds the constant-driven callee recheck (spec §4.6):
// never re-enter more than one level deep, to avoid fixpoint loops.
const MaxRecheckDepth = 1
