package sdk

import (
	"fmt"
	"strings"

	cerrors "github.com/Aman-CERP/coretools/internal/errors"
)

// Candidate names, as they appear in diagnostics.
const (
	SystemSDKName = "windows sdk"
	VendorSDKName = "directx sdk"
)

// SearchInput is the immutable input of one resolution.
type SearchInput struct {
	SystemSDKRoot    string
	SystemSDKVersion string
	TargetArch       string
	// RequiredLibs are library base names without extension, checked in order.
	RequiredLibs []string
}

// Validate rejects inputs no candidate could ever satisfy.
func (in SearchInput) Validate() error {
	if in.TargetArch == "" {
		return cerrors.ValidationError("target architecture must not be empty", nil)
	}
	for _, lib := range in.RequiredLibs {
		if lib == "" || strings.ContainsAny(lib, `/\`) {
			return cerrors.ValidationError(fmt.Sprintf("invalid required library name %q", lib), nil).
				WithSuggestion("pass library base names such as d3d11, without directory or extension")
		}
	}
	return nil
}

// Candidate is one SDK installation under consideration.
// An empty directory means it was not found.
type Candidate struct {
	Name       string
	IncludeDir string
	LibDir     string
}

// Found reports whether both directories were resolved.
func (c Candidate) Found() bool {
	return c.IncludeDir != "" && c.LibDir != ""
}

// Result is the first usable candidate.
type Result struct {
	Candidate  string
	LibDir     string
	IncludeDir string
}

// String renders the result in the build-system contract: <libDir>;<includeDir>.
func (r Result) String() string {
	return r.LibDir + ";" + r.IncludeDir
}
