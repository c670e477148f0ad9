package logging

import (
	"os"
	"path/filepath"
)

// DefaultLogDir returns the default log directory (~/.coretools/logs/).
// Falls back to temp directory if home directory is unavailable.
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".coretools", "logs")
	}
	return filepath.Join(home, ".coretools", "logs")
}

// LogPath returns the log path for the named tool.
func LogPath(tool string) string {
	return filepath.Join(DefaultLogDir(), tool+".log")
}
