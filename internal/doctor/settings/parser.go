// Package settings provides utilities for parsing and updating Claude Code settings files.
package settings

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	ErrSettingsNotFound = errors.New("settings file not found")
	ErrInvalidJSON      = errors.New("invalid JSON syntax")
	ErrPermissionDenied = errors.New("permission denied")
)

// hookTypeCommand is the only hook type ccbridge registers.
const hookTypeCommand = "command"

// SettingsParser parses Claude Code settings.json files.
type SettingsParser struct {
	settingsPath string
}

// ClaudeSettings represents the hooks section of a Claude Code settings file.
type ClaudeSettings struct {
	Hooks map[string][]HookConfig `json:"hooks"`
}

// HookConfig represents a hook configuration block.
type HookConfig struct {
	Matcher string              `json:"matcher,omitempty"`
	Hooks   []HookCommandConfig `json:"hooks"`
}

// HookCommandConfig represents an individual hook command configuration.
type HookCommandConfig struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	Timeout int    `json:"timeout,omitempty"`
}

// NewSettingsParser creates a new settings parser for the given file path.
func NewSettingsParser(path string) *SettingsParser {
	return &SettingsParser{
		settingsPath: path,
	}
}

// Path returns the settings file path.
func (p *SettingsParser) Path() string {
	return p.settingsPath
}

// readFile reads the settings file, mapping common failures to sentinels.
func (p *SettingsParser) readFile() ([]byte, error) {
	data, err := os.ReadFile(p.settingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WithMessage(ErrSettingsNotFound, p.settingsPath)
		}

		if os.IsPermission(err) {
			return nil, errors.WithMessage(ErrPermissionDenied, p.settingsPath)
		}

		return nil, errors.Wrap(err, "failed to read settings file")
	}

	return data, nil
}

// Parse reads and parses the Claude settings file.
func (p *SettingsParser) Parse() (*ClaudeSettings, error) {
	data, err := p.readFile()
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return &ClaudeSettings{Hooks: make(map[string][]HookConfig)}, nil
	}

	var settings ClaudeSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, errors.WithSecondaryError(
			errors.WithMessage(ErrInvalidJSON, "in "+p.settingsPath),
			err,
		)
	}

	if settings.Hooks == nil {
		settings.Hooks = make(map[string][]HookConfig)
	}

	return &settings, nil
}

// IsCommandRegistered reports whether a command hook under event runs a
// command ending with the given subcommand (e.g. "ccbridge hook notify").
// A missing settings file counts as not registered.
func (p *SettingsParser) IsCommandRegistered(event, subcommand string) (bool, error) {
	settings, err := p.Parse()
	if err != nil {
		if errors.Is(err, ErrSettingsNotFound) {
			return false, nil
		}

		return false, err
	}

	return settings.HasCommand(event, subcommand), nil
}

// HasCommand reports whether event has a command hook matching subcommand.
func (s *ClaudeSettings) HasCommand(event, subcommand string) bool {
	for _, hookConfig := range s.Hooks[event] {
		for _, hook := range hookConfig.Hooks {
			if hook.Type == hookTypeCommand && commandMatches(hook.Command, subcommand) {
				return true
			}
		}
	}

	return false
}

// commandMatches accepts the subcommand run through any path to the binary,
// e.g. "/usr/local/bin/ccbridge hook notify" for "ccbridge hook notify".
func commandMatches(command, subcommand string) bool {
	command = strings.TrimSpace(command)
	if command == subcommand {
		return true
	}

	return strings.HasSuffix(command, "/"+subcommand)
}
