package native

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeHost stands in for the platform loader. Symbols map to Go functions
// that are installed into the bound function pointers.
type fakeHost struct {
	handle  uintptr
	openErr error
	symbols map[string]any

	opened []string
	closed []uintptr
	addrs  map[uintptr]any
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		handle:  0xC0DE,
		symbols: map[string]any{},
		addrs:   map[uintptr]any{},
	}
}

func (f *fakeHost) platform() platform {
	return platform{
		open: func(path string) (uintptr, error) {
			f.opened = append(f.opened, path)
			if f.openErr != nil {
				return 0, f.openErr
			}
			return f.handle, nil
		},
		symbol: func(_ uintptr, name string) (uintptr, error) {
			fn, ok := f.symbols[name]
			if !ok {
				return 0, fmt.Errorf("undefined symbol: %s", name)
			}
			addr := uintptr(0x1000 + len(f.addrs))
			f.addrs[addr] = fn
			return addr, nil
		},
		close: func(handle uintptr) error {
			f.closed = append(f.closed, handle)
			return nil
		},
		register: func(fptr any, addr uintptr) {
			reflect.ValueOf(fptr).Elem().Set(reflect.ValueOf(f.addrs[addr]))
		},
	}
}

// fakeCore mimics the native core module.
type fakeCore struct {
	status  int32
	details string
	calls   []string
}

func (c *fakeCore) install(h *fakeHost) {
	h.symbols[SymbolInitialize] = func() int32 {
		c.calls = append(c.calls, SymbolInitialize)
		return c.status
	}
	h.symbols[SymbolDestroy] = func() {
		c.calls = append(c.calls, SymbolDestroy)
	}
	h.symbols[SymbolGetErrorDetails] = func() string {
		c.calls = append(c.calls, SymbolGetErrorDetails)
		return c.details
	}
}

// moduleFile creates an empty file standing in for a module on disk.
func moduleFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultModuleName())
	require.NoError(t, os.WriteFile(path, []byte("not really a module"), 0o644))
	return path
}
