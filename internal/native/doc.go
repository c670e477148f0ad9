// Package native owns a dynamically loaded native module and exposes the
// core module's lifecycle entry points.
//
// A Library is the single owner of a module handle; Close releases it once
// and is safe to call again. Core binds the fixed symbol table of the core
// module on top of a Library:
//
//	core, err := native.LoadCore(native.ResolveModulePath(""))
//	if err != nil {
//	    return err
//	}
//	defer core.Close()
//
//	status, err := core.Initialize()
//	...
//
// Loading uses purego (dlopen) on unix and LoadLibrary on Windows; no cgo is
// required. Native failures during initialize are reported as a Status, not
// a Go error, and the caller queries ErrorDetails.
package native
