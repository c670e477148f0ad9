package sdk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/coretools/internal/config"
	cerrors "github.com/Aman-CERP/coretools/internal/errors"
	"github.com/Aman-CERP/coretools/internal/logging"
)

// touch creates empty files (and their parents) under root.
func touch(t *testing.T, root string, rel ...string) {
	t.Helper()
	for _, r := range rel {
		p := filepath.Join(root, filepath.FromSlash(r))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, nil, 0o644))
	}
}

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

type recordingReporter struct {
	skipped []*cerrors.CoreError
	missed  []string
	paths   [][]string
}

func (r *recordingReporter) CandidateSkipped(err *cerrors.CoreError) {
	r.skipped = append(r.skipped, err)
}

func (r *recordingReporter) ProbeMissed(dir, marker string) {
	r.missed = append(r.missed, filepath.Join(dir, marker))
}

func (r *recordingReporter) SearchPaths(paths []string) {
	r.paths = append(r.paths, paths)
}

func (r *recordingReporter) messages() []string {
	var out []string
	for _, e := range r.skipped {
		out = append(out, e.Message)
	}
	return out
}

func newTestLocator(env map[string]string) (*Locator, *recordingReporter) {
	rep := &recordingReporter{}
	return New(config.NewConfig().SDK,
		WithEnv(envMap(env)),
		WithLogger(logging.Discard()),
		WithReporter(rep),
	), rep
}

// systemSDK lays out a system SDK for version/arch with the given libs.
func systemSDK(t *testing.T, root, version, arch string, libs ...string) {
	t.Helper()
	touch(t, root, "Include/"+version+"/um/d3d11.h", "Lib/"+version+"/um/"+arch+"/d3d11.lib")
	for _, lib := range libs {
		touch(t, root, "Lib/"+version+"/um/"+arch+"/"+lib+".lib")
	}
}
