package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// HomeDir returns the current user's home directory.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return home, nil
}

// DefaultStateDir returns the default kanban state directory.
func DefaultStateDir() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".local", "state", "kanban"), nil
}

// DefaultConfigDir returns the directory holding the global config file.
func DefaultConfigDir() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", "kanban"), nil
}

// WorkingDir returns the current working directory.
func WorkingDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return cwd, nil
}

// ResolveWithDefault returns override when set, or the result of fallback.
func ResolveWithDefault(override string, fallback func() (string, error)) (string, error) {
	if override != "" {
		return override, nil
	}
	return fallback()
}

// ExpandHome replaces a leading "~/" with the home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
