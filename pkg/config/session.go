package config

import "time"

// Default values for session detection.
const (
	// DefaultSessionPrefix marks tmux sessions started by Command Center.
	DefaultSessionPrefix = "cc-"

	// DefaultSessionTimeout bounds the tmux query.
	DefaultSessionTimeout = 5 * time.Second

	// DefaultTmuxBin is the tmux binary looked up in PATH.
	DefaultTmuxBin = "tmux"
)

// SessionConfig contains configuration for tmux session detection.
type SessionConfig struct {
	// Prefix is the marker a tmux session name must start with.
	// Default: "cc-"
	Prefix string `json:"prefix,omitempty" koanf:"prefix" toml:"prefix,omitempty" yaml:"prefix,omitempty"`

	// Timeout bounds the tmux display-message call.
	// Default: "5s"
	Timeout Duration `json:"timeout,omitempty" koanf:"timeout" toml:"timeout,omitempty" yaml:"timeout,omitempty"`

	// TmuxBin is the tmux executable.
	// Default: "tmux"
	TmuxBin string `json:"tmux_bin,omitempty" koanf:"tmux_bin" toml:"tmux_bin,omitempty" yaml:"tmux_bin,omitempty"`

	// OverrideID, when set, is used as the session id without asking tmux.
	OverrideID string `json:"override_id,omitempty" koanf:"override_id" toml:"override_id,omitempty" yaml:"override_id,omitempty"`
}

// GetPrefix returns the session marker prefix.
func (s *SessionConfig) GetPrefix() string {
	if s == nil || s.Prefix == "" {
		return DefaultSessionPrefix
	}

	return s.Prefix
}

// GetTimeout returns the tmux query timeout.
func (s *SessionConfig) GetTimeout() time.Duration {
	if s == nil || s.Timeout == 0 {
		return DefaultSessionTimeout
	}

	return time.Duration(s.Timeout)
}

// GetTmuxBin returns the tmux binary name or path.
func (s *SessionConfig) GetTmuxBin() string {
	if s == nil || s.TmuxBin == "" {
		return DefaultTmuxBin
	}

	return s.TmuxBin
}

// GetOverrideID returns the fixed session id, if any.
func (s *SessionConfig) GetOverrideID() string {
	if s == nil {
		return ""
	}

	return s.OverrideID
}
