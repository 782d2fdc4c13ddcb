// Package xdg provides centralized path management following XDG Base Directory conventions.
// All user-level paths ccbridge touches on disk are defined here.
package xdg

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

const appName = "ccbridge"

// EnvFileName is the name of the KEY=VALUE configuration file.
const EnvFileName = ".env"

func userHome() (string, error) {
	return os.UserHomeDir()
}

// ConfigHome returns $XDG_CONFIG_HOME or ~/.config.
func ConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}

	home, err := userHome()
	if err != nil {
		return filepath.Join("~", ".config")
	}

	return filepath.Join(home, ".config")
}

// StateHome returns $XDG_STATE_HOME or ~/.local/state.
func StateHome() string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}

	home, err := userHome()
	if err != nil {
		return filepath.Join("~", ".local", "state")
	}

	return filepath.Join(home, ".local", "state")
}

// ConfigDir returns ConfigHome()/ccbridge.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), appName)
}

// StateDir returns StateHome()/ccbridge.
func StateDir() string {
	return filepath.Join(StateHome(), appName)
}

// GlobalConfigFile returns ConfigDir()/config.toml.
func GlobalConfigFile() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// EnvFile returns ConfigDir()/.env.
func EnvFile() string {
	return filepath.Join(ConfigDir(), EnvFileName)
}

// ExecutableEnvFile returns the .env file one directory above the running
// executable (<install>/bin/ccbridge -> <install>/.env), the location used by
// Command Center installs. Returns "" when the executable cannot be located.
func ExecutableEnvFile() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}

	if resolved, evalErr := filepath.EvalSymlinks(exe); evalErr == nil {
		exe = resolved
	}

	return filepath.Join(filepath.Dir(filepath.Dir(exe)), EnvFileName)
}

// LogFile returns the log file path.
// Respects CCBRIDGE_LOG_FILE env var, otherwise StateDir()/hooks.log.
func LogFile() string {
	if v := os.Getenv("CCBRIDGE_LOG_FILE"); v != "" {
		return v
	}

	return filepath.Join(StateDir(), "hooks.log")
}

// ClaudeSettingsFile returns ~/.claude/settings.json.
func ClaudeSettingsFile() string {
	home, err := userHome()
	if err != nil {
		return filepath.Join("~", ".claude", "settings.json")
	}

	return filepath.Join(home, ".claude", "settings.json")
}

// ExpandPath resolves ~ prefix to the user's home directory.
// Returns the path unchanged if it doesn't start with ~.
// Returns error for invalid tilde usage like "~foo".
func ExpandPath(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	home, err := userHome()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}

	switch {
	case path == "~":
		return home, nil
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(home, path[2:]), nil
	default:
		return "", errors.Newf("paths starting with ~ must be either ~ or ~/subdir, got %q", path)
	}
}

// ExpandPathSilent resolves ~ prefix, returning the original path on error.
func ExpandPathSilent(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}

	return expanded
}
