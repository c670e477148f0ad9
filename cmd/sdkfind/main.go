// Package main provides the entry point for the sdkfind CLI.
package main

import (
	"os"

	"github.com/Aman-CERP/coretools/cmd/sdkfind/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
