package native

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultModuleName returns the conventional file name of the core module.
func DefaultModuleName() string {
	switch runtime.GOOS {
	case "windows":
		return "core.dll"
	case "darwin":
		return "libcore.dylib"
	default:
		return "libcore.so"
	}
}

// ResolveModulePath returns explicit if set. Otherwise the default module
// name next to the running executable, or in the working directory when the
// executable's directory does not have one.
func ResolveModulePath(explicit string) string {
	if explicit != "" {
		return explicit
	}

	name := DefaultModuleName()
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return name
}
