package native

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	cerrors "github.com/Aman-CERP/coretools/internal/errors"
)

// Exported symbols of the core module.
const (
	SymbolInitialize      = "coreInitialize"
	SymbolDestroy         = "coreDestroy"
	SymbolGetErrorDetails = "coreGetErrorDetails"
)

// Status is the result of the core module's initialize entry point.
type Status int32

const (
	// StatusOk means the core module initialized.
	StatusOk Status = 0
	// StatusSystemError means a platform subsystem failed; query ErrorDetails.
	StatusSystemError Status = 1
)

// String returns the string representation of a Status.
func (s Status) String() string {
	switch s {
	case StatusOk:
		return "Ok"
	case StatusSystemError:
		return "SystemError"
	default:
		return fmt.Sprintf("Status(%d)", int32(s))
	}
}

// State tracks the wrapper's view of the module lifecycle.
type State int

const (
	StateLoaded State = iota
	StateInitialized
	StateDestroyed
	StateReleased
)

// String returns the string representation of a State.
func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateInitialized:
		return "initialized"
	case StateDestroyed:
		return "destroyed"
	case StateReleased:
		return "released"
	default:
		return "unknown"
	}
}

// coreFuncs is the typed foreign interface of the core module.
type coreFuncs struct {
	initialize      func() int32
	destroy         func()
	getErrorDetails func() string
}

// Core is the host-side view of the core module.
type Core struct {
	lib *Library
	fns coreFuncs

	mu    sync.Mutex
	state State
}

// LoadCore loads the core module at path and binds its entry points.
// If any symbol is missing the module is released before returning.
func LoadCore(path string) (*Core, error) {
	lib, err := Load(path)
	if err != nil {
		return nil, err
	}
	return bindCore(lib)
}

func bindCore(lib *Library) (*Core, error) {
	var fns coreFuncs
	table := []struct {
		fptr   any
		symbol string
	}{
		{&fns.initialize, SymbolInitialize},
		{&fns.destroy, SymbolDestroy},
		{&fns.getErrorDetails, SymbolGetErrorDetails},
	}

	for _, entry := range table {
		if err := lib.Bind(entry.fptr, entry.symbol); err != nil {
			_ = lib.Close()
			return nil, err
		}
	}

	return &Core{lib: lib, fns: fns, state: StateLoaded}, nil
}

// Initialize calls coreInitialize. A native failure is reported through the
// returned Status; the error is only set when the module was already released.
func (c *Core) Initialize() (Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkLoaded("initialize"); err != nil {
		return StatusSystemError, err
	}

	status := Status(c.fns.initialize())
	if status == StatusOk {
		c.state = StateInitialized
	}
	slog.Debug("core initialize", slog.String("status", status.String()))
	return status, nil
}

// ErrorDetails returns a copy of the native error description. It is only
// meaningful after Initialize returned StatusSystemError; after StatusOk the
// content is unspecified.
func (c *Core) ErrorDetails() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkLoaded("query error details"); err != nil {
		return "", err
	}
	return strings.Clone(c.fns.getErrorDetails()), nil
}

// Destroy calls coreDestroy. It is also called after a failed Initialize,
// where the native side frees its error details.
func (c *Core) Destroy() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkLoaded("destroy"); err != nil {
		return err
	}

	c.fns.destroy()
	c.state = StateDestroyed
	slog.Debug("core destroyed")
	return nil
}

// Close releases the module. Safe to call more than once.
func (c *Core) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateReleased {
		return nil
	}
	c.state = StateReleased
	c.fns = coreFuncs{}
	return c.lib.Close()
}

// State returns the current lifecycle state.
func (c *Core) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Path returns the module path.
func (c *Core) Path() string {
	return c.lib.Path()
}

func (c *Core) checkLoaded(op string) error {
	if c.state == StateReleased {
		return cerrors.Newf(cerrors.ErrCodeModuleClosed, "cannot %s: core module already released", op)
	}
	return nil
}
