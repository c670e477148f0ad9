package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/Aman-CERP/coretools/internal/errors"
	"github.com/Aman-CERP/coretools/internal/native"
	"github.com/Aman-CERP/coretools/pkg/version"
)

type fakeCore struct {
	status     native.Status
	details    string
	initErr    error
	destroyErr error
	calls      []string
}

func (f *fakeCore) Initialize() (native.Status, error) {
	f.calls = append(f.calls, "initialize")
	return f.status, f.initErr
}

func (f *fakeCore) ErrorDetails() (string, error) {
	f.calls = append(f.calls, "details")
	return f.details, nil
}

func (f *fakeCore) Destroy() error {
	f.calls = append(f.calls, "destroy")
	return f.destroyErr
}

func (f *fakeCore) Close() error {
	f.calls = append(f.calls, "close")
	return nil
}

type harness struct {
	loadedPath string
	core       *fakeCore
	loadErr    error
}

func (h *harness) load(path string) (coreModule, error) {
	h.loadedPath = path
	if h.loadErr != nil {
		return nil, h.loadErr
	}
	return h.core, nil
}

func run(t *testing.T, h *harness, env map[string]string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(func(k string) string { return env[k] }, h.load)
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := execute(cmd)
	return stdout.String(), stderr.String(), err
}

func TestCorehost_InitializeOk(t *testing.T) {
	// Given: a core module that initializes
	h := &harness{core: &fakeCore{status: native.StatusOk}}

	// When: running corehost
	_, stderr, err := run(t, h, nil, "--module", "/opt/game/core.dll")

	// Then: initialize, destroy, release in order, nothing on stderr
	require.NoError(t, err)
	assert.Equal(t, "/opt/game/core.dll", h.loadedPath)
	assert.Equal(t, []string{"initialize", "destroy", "close"}, h.core.calls)
	assert.Empty(t, stderr)
}

func TestCorehost_SystemErrorPrintsDetails(t *testing.T) {
	// Given: a core module whose initialization fails
	h := &harness{core: &fakeCore{status: native.StatusSystemError, details: "SDL_Init: no video device"}}

	// When: running corehost
	_, stderr, err := run(t, h, nil, "--module", "core.dll")

	// Then: details are printed once, destroy still runs and the handle is released
	require.Error(t, err)
	assert.Equal(t, cerrors.ErrCodeNativeInitFailed, cerrors.GetCode(err))
	assert.Equal(t, "core initialization error: SDL_Init: no video device\n", stderr)
	assert.Equal(t, []string{"initialize", "details", "destroy", "close"}, h.core.calls)
}

func TestCorehost_LoadFailure(t *testing.T) {
	h := &harness{loadErr: cerrors.New(cerrors.ErrCodeModuleNotFound, "core.dll", nil)}

	_, stderr, err := run(t, h, nil, "--module", "core.dll")

	require.Error(t, err)
	assert.Contains(t, stderr, "Error: core.dll")
	assert.Contains(t, stderr, "Code: ERR_201_MODULE_NOT_FOUND")
}

func TestCorehost_ReleaseOnEveryExitPath(t *testing.T) {
	tests := []struct {
		name string
		core *fakeCore
	}{
		{"initialize error", &fakeCore{initErr: errors.New("module already released")}},
		{"destroy error", &fakeCore{status: native.StatusOk, destroyErr: errors.New("boom")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &harness{core: tt.core}

			_, _, err := run(t, h, nil, "--module", "core.dll")

			require.Error(t, err)
			assert.Equal(t, "close", tt.core.calls[len(tt.core.calls)-1])
		})
	}
}

func TestCorehost_ModulePathPrecedence(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "coretools.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("native:\n  module_path: from-config.dll\n"), 0o644))

	tests := []struct {
		name string
		env  map[string]string
		args []string
		want string
	}{
		{"flag wins", map[string]string{"CORETOOLS_MODULE": "from-env.dll"}, []string{"--config", cfgPath, "--module", "from-flag.dll"}, "from-flag.dll"},
		{"env beats config", map[string]string{"CORETOOLS_MODULE": "from-env.dll"}, []string{"--config", cfgPath}, "from-env.dll"},
		{"config", nil, []string{"--config", cfgPath}, "from-config.dll"},
		{"default name", nil, nil, native.DefaultModuleName()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &harness{core: &fakeCore{status: native.StatusOk}}

			_, _, err := run(t, h, tt.env, tt.args...)

			require.NoError(t, err)
			assert.Equal(t, tt.want, filepath.Base(h.loadedPath))
		})
	}
}

func TestCorehost_RealLoaderMissingModule(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(func(string) string { return "" }, loadNativeCore)
	cmd.SetArgs([]string{"--module", filepath.Join(t.TempDir(), "core.dll")})
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := execute(cmd)

	require.Error(t, err)
	assert.Equal(t, cerrors.ErrCodeModuleNotFound, cerrors.GetCode(err))
	assert.Contains(t, stderr.String(), "ERR_201_MODULE_NOT_FOUND")
}

func TestCorehost_RejectsPositionalArgs(t *testing.T) {
	h := &harness{core: &fakeCore{}}

	_, _, err := run(t, h, nil, "core.dll")

	require.Error(t, err)
	assert.Empty(t, h.core.calls)
}

func TestVersionCmd(t *testing.T) {
	h := &harness{}

	stdout, _, err := run(t, h, nil, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version.Short()+"\n", stdout)

	stdout, _, err = run(t, h, nil, "version", "--json")
	require.NoError(t, err)
	var info version.BuildInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Equal(t, version.Version, info.Version)
}
