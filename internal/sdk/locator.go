package sdk

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Aman-CERP/coretools/internal/config"
	cerrors "github.com/Aman-CERP/coretools/internal/errors"
)

// Reporter receives human-readable diagnostics while a resolution runs.
type Reporter interface {
	// CandidateSkipped is called once per rejected candidate.
	CandidateSkipped(err *cerrors.CoreError)
	// ProbeMissed is called for every directory that lacks a marker file.
	ProbeMissed(dir, marker string)
	// SearchPaths is called with the discovered vendor SDK directories.
	SearchPaths(paths []string)
}

type nopReporter struct{}

func (nopReporter) CandidateSkipped(*cerrors.CoreError) {}
func (nopReporter) ProbeMissed(string, string)          {}
func (nopReporter) SearchPaths([]string)                {}

// Locator resolves an SDK installation. It holds no state between calls.
type Locator struct {
	cfg      config.SDKConfig
	getenv   func(string) string
	logger   *slog.Logger
	reporter Reporter
}

// Option configures a Locator.
type Option func(*Locator)

// WithEnv sets the environment lookup used for vendor SDK discovery.
func WithEnv(getenv func(string) string) Option {
	return func(l *Locator) {
		l.getenv = getenv
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Locator) {
		l.logger = logger
	}
}

// WithReporter sets the diagnostics reporter.
func WithReporter(r Reporter) Option {
	return func(l *Locator) {
		l.reporter = r
	}
}

// New creates a Locator for the given SDK configuration.
func New(cfg config.SDKConfig, opts ...Option) *Locator {
	l := &Locator{
		cfg:      cfg,
		getenv:   os.Getenv,
		logger:   slog.Default(),
		reporter: nopReporter{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Resolve returns the first usable candidate in priority order: system SDK,
// then vendor SDK. Candidates are built lazily, so a usable system SDK means
// the vendor SDK is never probed.
func (l *Locator) Resolve(in SearchInput) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	builders := []func(SearchInput) Candidate{
		l.SystemCandidate,
		l.VendorCandidate,
	}

	var skipped []error
	for _, build := range builders {
		c := build(in)
		if err := l.check(c, in.RequiredLibs); err != nil {
			l.logger.Info("sdk candidate skipped",
				slog.String("candidate", c.Name),
				slog.String("error_code", err.Code),
				slog.String("reason", err.Message))
			l.reporter.CandidateSkipped(err)
			skipped = append(skipped, err)
			continue
		}

		l.logger.Info("sdk resolved",
			slog.String("candidate", c.Name),
			slog.String("lib_dir", c.LibDir),
			slog.String("include_dir", c.IncludeDir))
		return Result{Candidate: c.Name, LibDir: c.LibDir, IncludeDir: c.IncludeDir}, nil
	}

	return Result{}, cerrors.New(cerrors.ErrCodeResolutionExhausted,
		"no suitable sdk for required libs found", errors.Join(skipped...)).
		WithSuggestion("install the Windows SDK or set " + l.cfg.VendorRootEnv)
}

// check verifies that c is usable for libs.
func (l *Locator) check(c Candidate, libs []string) *cerrors.CoreError {
	if !c.Found() {
		return cerrors.Newf(cerrors.ErrCodeSDKNotFound, "can't use %s because it was not found", c.Name).
			WithDetail("candidate", c.Name)
	}

	for _, lib := range libs {
		if !exists(filepath.Join(c.LibDir, lib+l.cfg.LibraryExt)) {
			return cerrors.Newf(cerrors.ErrCodeLibraryMissing, "can't use %s, no lib '%s' in %s", c.Name, lib, c.LibDir).
				WithDetail("candidate", c.Name).
				WithDetail("lib", lib)
		}
	}
	return nil
}

// SystemCandidate builds the system SDK candidate from the toolchain's SDK root and version.
func (l *Locator) SystemCandidate(in SearchInput) Candidate {
	c := Candidate{Name: SystemSDKName}
	if in.SystemSDKRoot == "" || in.SystemSDKVersion == "" {
		return c
	}

	libDir := filepath.Join(in.SystemSDKRoot, "Lib", in.SystemSDKVersion, "um", in.TargetArch)
	includeDir := filepath.Join(in.SystemSDKRoot, "Include", in.SystemSDKVersion, "um")

	if l.hasMarker(libDir, l.cfg.MarkerLibrary) {
		c.LibDir = libDir
	}
	if l.hasMarker(includeDir, l.cfg.MarkerHeader) {
		c.IncludeDir = includeDir
	}
	return c
}

// VendorCandidate builds the vendor SDK candidate. Include and library
// directories are resolved independently: each takes the first
// (directory, layout) probe holding its marker and is never overwritten.
func (l *Locator) VendorCandidate(in SearchInput) Candidate {
	roots := l.VendorSearchPaths()
	l.reporter.SearchPaths(roots)

	return Candidate{
		Name:       VendorSDKName,
		IncludeDir: l.firstWithMarker(layoutDirs(roots, vendorIncludeLayouts, in.TargetArch), l.cfg.MarkerHeader),
		LibDir:     l.firstWithMarker(layoutDirs(roots, vendorLibLayouts, in.TargetArch), l.cfg.MarkerLibrary),
	}
}

// VendorSearchPaths lists vendor SDK directories in search order: prefixed
// entries of Program Files, prefixed entries of Program Files (x86), then the
// vendor root variable. Unset or missing sources are skipped.
func (l *Locator) VendorSearchPaths() []string {
	var paths []string

	for _, env := range []string{l.cfg.ProgramFilesEnv, l.cfg.ProgramFilesX86Env} {
		paths = append(paths, l.prefixedEntries(env)...)
	}

	if env := l.cfg.VendorRootEnv; env != "" {
		if dir := l.getenv(env); dir != "" && exists(dir) {
			paths = append(paths, dir)
		}
	}

	l.logger.Debug("vendor sdk search paths", slog.Any("paths", paths))
	return paths
}

// prefixedEntries returns the entries of $env whose names start with the
// vendor prefix, in directory order.
func (l *Locator) prefixedEntries(env string) []string {
	if env == "" {
		return nil
	}
	dir := l.getenv(env)
	if dir == "" || !dirExists(dir) {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		l.logger.Warn("failed to list directory",
			slog.String("dir", dir),
			slog.String("error", err.Error()))
		return nil
	}

	var paths []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), l.cfg.VendorPrefix) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths
}
