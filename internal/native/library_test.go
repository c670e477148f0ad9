package native

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/Aman-CERP/coretools/internal/errors"
)

func TestLoad_MissingPathNeverReachesLoader(t *testing.T) {
	// Given: a path that does not exist
	host := newFakeHost()
	missing := filepath.Join(t.TempDir(), "core.dll")

	// When: loading it
	lib, err := host.platform().load(missing)

	// Then: it fails with not-found and the loader was never called
	require.Error(t, err)
	assert.Nil(t, lib)
	assert.Equal(t, cerrors.ErrCodeModuleNotFound, cerrors.GetCode(err))
	assert.Empty(t, host.opened)
}

func TestLoad_MissingPathWithHostLoader(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope", DefaultModuleName()))

	assert.True(t, errors.Is(err, cerrors.Sentinel(cerrors.ErrCodeModuleNotFound)))
}

func TestLoad_LoaderFailure(t *testing.T) {
	tests := []struct {
		name    string
		openErr error
		handle  uintptr
	}{
		{"loader error", errors.New("The specified module could not be found."), 0},
		{"null handle", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := newFakeHost()
			host.openErr = tt.openErr
			host.handle = tt.handle
			path := moduleFile(t)

			lib, err := host.platform().load(path)

			require.Error(t, err)
			assert.Nil(t, lib)
			assert.Equal(t, cerrors.ErrCodeModuleLoadFailed, cerrors.GetCode(err))
			assert.True(t, cerrors.IsFatal(err))
			if tt.openErr != nil {
				assert.ErrorIs(t, err, tt.openErr)
				assert.Contains(t, err.Error(), tt.openErr.Error())
			}
			require.Len(t, host.opened, 1)
		})
	}
}

func TestLoad_UsesAbsolutePath(t *testing.T) {
	host := newFakeHost()
	path := moduleFile(t)
	t.Chdir(filepath.Dir(path))

	lib, err := host.platform().load(filepath.Base(path))

	require.NoError(t, err)
	defer lib.Close()
	require.Len(t, host.opened, 1)
	assert.True(t, filepath.IsAbs(host.opened[0]))
	assert.Equal(t, host.opened[0], lib.Path())
}

func TestLibrary_CloseReleasesOnce(t *testing.T) {
	// Given: a loaded library
	host := newFakeHost()
	lib, err := host.platform().load(moduleFile(t))
	require.NoError(t, err)
	assert.True(t, lib.Loaded())

	// When: closing twice
	require.NoError(t, lib.Close())
	require.NoError(t, lib.Close())

	// Then: the handle was released exactly once
	assert.Equal(t, []uintptr{0xC0DE}, host.closed)
	assert.False(t, lib.Loaded())
}

func TestLibrary_CloseNil(t *testing.T) {
	var lib *Library
	assert.NoError(t, lib.Close())
	assert.False(t, lib.Loaded())
}

func TestLibrary_Bind(t *testing.T) {
	host := newFakeHost()
	host.symbols["answer"] = func() int32 { return 42 }
	lib, err := host.platform().load(moduleFile(t))
	require.NoError(t, err)
	defer lib.Close()

	var answer func() int32
	require.NoError(t, lib.Bind(&answer, "answer"))
	assert.Equal(t, int32(42), answer())
}

func TestLibrary_BindErrors(t *testing.T) {
	t.Run("missing symbol", func(t *testing.T) {
		host := newFakeHost()
		lib, err := host.platform().load(moduleFile(t))
		require.NoError(t, err)
		defer lib.Close()

		var fn func()
		err = lib.Bind(&fn, "coreMissing")

		assert.Equal(t, cerrors.ErrCodeSymbolNotFound, cerrors.GetCode(err))
		assert.Contains(t, err.Error(), "coreMissing")
	})

	t.Run("after close", func(t *testing.T) {
		host := newFakeHost()
		host.symbols["f"] = func() {}
		lib, err := host.platform().load(moduleFile(t))
		require.NoError(t, err)
		require.NoError(t, lib.Close())

		var fn func()
		err = lib.Bind(&fn, "f")

		assert.Equal(t, cerrors.ErrCodeModuleClosed, cerrors.GetCode(err))
	})

	t.Run("register panics", func(t *testing.T) {
		host := newFakeHost()
		host.symbols["f"] = func() {}
		plat := host.platform()
		plat.register = func(any, uintptr) { panic("unsupported return type") }
		lib, err := plat.load(moduleFile(t))
		require.NoError(t, err)
		defer lib.Close()

		var fn func() complex128
		err = lib.Bind(&fn, "f")

		assert.Equal(t, cerrors.ErrCodeInternal, cerrors.GetCode(err))
		assert.Contains(t, err.Error(), "unsupported return type")
	})
}
