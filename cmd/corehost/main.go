// Package main provides the entry point for the corehost CLI.
package main

import (
	"os"

	"github.com/Aman-CERP/coretools/cmd/corehost/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
