package native

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	cerrors "github.com/Aman-CERP/coretools/internal/errors"
)

// platform is the set of primitives the host environment provides for
// loading, resolving and unloading native modules.
type platform struct {
	open     func(path string) (uintptr, error)
	symbol   func(handle uintptr, name string) (uintptr, error)
	close    func(handle uintptr) error
	register func(fptr any, addr uintptr)
}

// host is the platform of the running OS.
var host = platform{
	open:     openLibrary,
	symbol:   lookupSymbol,
	close:    closeLibrary,
	register: registerFunc,
}

// Library owns the handle of one loaded native module.
type Library struct {
	path string
	plat platform

	mu     sync.Mutex
	handle uintptr
}

// Load loads the native module at path. A path that does not exist fails
// with ERR_201_MODULE_NOT_FOUND before the platform loader is touched.
func Load(path string) (*Library, error) {
	return host.load(path)
}

func (p platform) load(path string) (*Library, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cerrors.New(cerrors.ErrCodeModuleNotFound, path, err).
				WithSuggestion("build the native core module or pass --module")
		}
		return nil, cerrors.New(cerrors.ErrCodeModuleLoadFailed, fmt.Sprintf("cannot access %s", path), err)
	}

	// dlopen only searches the working directory for paths with a separator
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	handle, err := p.open(abs)
	if err != nil || handle == 0 {
		if err == nil {
			err = errors.New("loader returned a null handle")
		}
		return nil, cerrors.New(cerrors.ErrCodeModuleLoadFailed,
			fmt.Sprintf("failed to load %s: %v", path, err), err).
			WithDetail("path", abs)
	}

	slog.Debug("native module loaded", slog.String("path", abs))
	return &Library{path: abs, plat: p, handle: handle}, nil
}

// Path returns the absolute path the module was loaded from.
func (l *Library) Path() string {
	return l.path
}

// Loaded reports whether the handle is still held.
func (l *Library) Loaded() bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.handle != 0
}

// Bind resolves symbol and binds it to the function pointed to by fptr,
// e.g. a *func() int32. Strings returned by the bound function are copied
// into Go memory.
func (l *Library) Bind(fptr any, symbol string) (err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.handle == 0 {
		return cerrors.Newf(cerrors.ErrCodeModuleClosed, "%s: module already released", l.path)
	}

	addr, err := l.plat.symbol(l.handle, symbol)
	if err != nil || addr == 0 {
		return cerrors.New(cerrors.ErrCodeSymbolNotFound,
			fmt.Sprintf("symbol %s not found in %s", symbol, l.path), err).
			WithDetail("symbol", symbol)
	}

	// purego panics on function types it cannot marshal
	defer func() {
		if r := recover(); r != nil {
			err = cerrors.InternalError(fmt.Sprintf("cannot bind %s: %v", symbol, r), nil)
		}
	}()
	l.plat.register(fptr, addr)
	return nil
}

// Close releases the module handle. Calling Close on a released library,
// or on a nil *Library, is a no-op.
func (l *Library) Close() error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.handle == 0 {
		return nil
	}
	handle := l.handle
	l.handle = 0

	if err := l.plat.close(handle); err != nil {
		return fmt.Errorf("failed to release %s: %w", l.path, err)
	}
	slog.Debug("native module released", slog.String("path", l.path))
	return nil
}
