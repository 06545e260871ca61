package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "builtinai"

// DefaultAppDataDir returns the per-user application data root.
//
// windows: %APPDATA%\builtinai
// macOS:   ~/Library/Application Support/builtinai
// linux:   $XDG_DATA_HOME/builtinai or ~/.local/share/builtinai
//
// Falls back to a relative ".builtinai" when no home directory is available.
func DefaultAppDataDir() string {
	home, err := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		if v := os.Getenv("APPDATA"); v != "" {
			return filepath.Join(v, appName)
		}
		if err == nil {
			return filepath.Join(home, "AppData", "Roaming", appName)
		}
	case "darwin":
		if err == nil {
			return filepath.Join(home, "Library", "Application Support", appName)
		}
	default:
		if v := os.Getenv("XDG_DATA_HOME"); v != "" {
			return filepath.Join(v, appName)
		}
		if err == nil {
			return filepath.Join(home, ".local", "share", appName)
		}
	}
	return "." + appName
}
