//go:build !(darwin || freebsd || linux || netbsd || windows)

package native

import (
	"fmt"
	"runtime"
)

var errUnsupported = fmt.Errorf("native modules are not supported on %s", runtime.GOOS)

func openLibrary(string) (uintptr, error) { return 0, errUnsupported }

func lookupSymbol(uintptr, string) (uintptr, error) { return 0, errUnsupported }

func closeLibrary(uintptr) error { return nil }

func registerFunc(any, uintptr) { panic(errUnsupported) }
