// Package xdg provides XDG Base Directory Specification compliant paths
package xdg

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigDir returns the XDG config directory for workbench
// Priority: XDG_CONFIG_HOME > ~/.config/workbench
func ConfigDir() (string, error) {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "workbench"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "workbench"), nil
}

// DataDir returns the XDG data directory for workbench
// Priority: XDG_DATA_HOME > ~/.local/share/workbench
func DataDir() (string, error) {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "workbench"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local", "share", "workbench"), nil
}

// StateDir returns the XDG state directory for workbench
// Priority: XDG_STATE_HOME > ~/.local/state/workbench
func StateDir() (string, error) {
	if xdgState := os.Getenv("XDG_STATE_HOME"); xdgState != "" {
		return filepath.Join(xdgState, "workbench"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local", "state", "workbench"), nil
}

// RuntimeDir returns the XDG runtime directory for workbench
// Priority: XDG_RUNTIME_DIR > /tmp/workbench-$UID
func RuntimeDir() (string, error) {
	if xdgRuntime := os.Getenv("XDG_RUNTIME_DIR"); xdgRuntime != "" {
		return filepath.Join(xdgRuntime, "workbench"), nil
	}

	uid := os.Getuid()
	return filepath.Join("/tmp", fmt.Sprintf("workbench-%d", uid)), nil
}
