// Package sdk locates a graphics SDK installation for the native build.
//
// Two candidates are considered in fixed priority order:
//
//  1. the system (Windows) SDK at <root>/Lib/<version>/um/<arch> and
//     <root>/Include/<version>/um;
//  2. a vendor (DirectX) SDK discovered under the Program Files directories
//     or named by an environment variable.
//
// A candidate is usable when both its include and library directories hold
// the marker files and every required library exists under the library
// directory. The first usable candidate wins; nothing after it is probed.
//
//	loc := sdk.New(cfg.SDK)
//	res, err := loc.Resolve(sdk.SearchInput{
//	    SystemSDKRoot:    `C:\Program Files (x86)\Windows Kits\10`,
//	    SystemSDKVersion: "10.0.22621.0",
//	    TargetArch:       "x64",
//	    RequiredLibs:     []string{"d3d11", "dxgi"},
//	})
//	fmt.Print(res) // <libDir>;<includeDir>
package sdk
