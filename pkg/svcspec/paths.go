package svcspec

import (
	"os"
	"path/filepath"
	"runtime"
)

// baseConfigDirectory returns the root of the supervisor configuration tree
func baseConfigDirectory() string {
	switch runtime.GOOS {
	case "windows":
		// Use ProgramData for machine-wide configuration on Windows
		programData := os.Getenv("PROGRAMDATA")
		if programData == "" {
			programData = "C:\\ProgramData"
		}
		return filepath.Join(programData, "hsu", "config")

	default:
		// Linux, macOS and other Unix systems
		return "/etc/hsu/config"
	}
}

// DefaultSpecConfigFile returns the path of the shared default spec file.
// Keys set there apply to every service spec that does not override them.
func DefaultSpecConfigFile() string {
	return filepath.Join(baseConfigDirectory(), "svc.toml")
}

// DefaultSpecConfigDir returns the directory scanned for per-service spec files
func DefaultSpecConfigDir() string {
	return filepath.Join(baseConfigDirectory(), "svc")
}
