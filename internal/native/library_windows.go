//go:build windows

package native

import (
	"errors"
	"fmt"

	"github.com/ebitengine/purego"
	"golang.org/x/sys/windows"
)

func openLibrary(path string) (uintptr, error) {
	handle, err := windows.LoadLibrary(path)
	if err != nil {
		return 0, describeError(err)
	}
	return uintptr(handle), nil
}

func lookupSymbol(handle uintptr, name string) (uintptr, error) {
	return windows.GetProcAddress(windows.Handle(handle), name)
}

func closeLibrary(handle uintptr) error {
	if handle == 0 {
		return nil
	}
	return windows.FreeLibrary(windows.Handle(handle))
}

func registerFunc(fptr any, addr uintptr) {
	purego.RegisterFunc(fptr, addr)
}

// describeError attaches the Win32 error code and its HRESULT form to the
// system message.
func describeError(err error) error {
	var errno windows.Errno
	if !errors.As(err, &errno) {
		return err
	}
	hr := uint32(errno)&0xFFFF | 0x80070000
	return fmt.Errorf("%w (win32 error %d, HRESULT 0x%08X)", err, uint32(errno), hr)
}
