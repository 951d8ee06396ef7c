// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appName = "typer"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// XDGStateHome returns the XDG state home or a default fallback.
func XDGStateHome() string {
	return xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func xdgDir(env, fallback string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, fallback)
}

// DefaultAssetsDir returns the directory searched for pool overrides.
func DefaultAssetsDir() string {
	return filepath.Join(XDGConfigHome(), appName, "assets")
}

// DefaultHistoryPath returns the default result file for a backend.
func DefaultHistoryPath(backend string) string {
	if backend == "sqlite" {
		return filepath.Join(XDGDataHome(), appName, "typer.db")
	}
	return filepath.Join(XDGDataHome(), appName, "history.json")
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() string {
	return filepath.Join(XDGStateHome(), appName, "typer.log")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}
