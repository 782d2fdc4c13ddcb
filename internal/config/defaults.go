// Package config provides internal configuration loading and processing.
package config

import (
	"github.com/smykla-skalski/ccbridge/pkg/config"
)

// DefaultConfig returns a Config with all default values populated.
func DefaultConfig() *config.Config {
	return &config.Config{
		Server:     DefaultServerConfig(),
		Session:    DefaultSessionConfig(),
		Transcript: DefaultTranscriptConfig(),
		Log:        &config.LogConfig{},
	}
}

// DefaultServerConfig returns the default control server configuration.
func DefaultServerConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Port:            config.DefaultPort,
		NotifyTimeout:   config.Duration(config.DefaultNotifyTimeout),
		OverrideTimeout: config.Duration(config.DefaultOverrideTimeout),
	}
}

// DefaultSessionConfig returns the default session detection configuration.
func DefaultSessionConfig() *config.SessionConfig {
	return &config.SessionConfig{
		Prefix:  config.DefaultSessionPrefix,
		Timeout: config.Duration(config.DefaultSessionTimeout),
		TmuxBin: config.DefaultTmuxBin,
	}
}

// DefaultTranscriptConfig returns the default transcript search configuration.
func DefaultTranscriptConfig() *config.TranscriptConfig {
	return &config.TranscriptConfig{
		Window:       config.DefaultTranscriptWindow,
		MaxLineBytes: config.DefaultMaxLineBytes,
	}
}

// defaultsToMap renders the defaults as a koanf confmap.
func defaultsToMap() map[string]any {
	return map[string]any{
		"server": map[string]any{
			"port":             config.DefaultPort,
			"auth_token":       "",
			"notify_timeout":   config.DefaultNotifyTimeout.String(),
			"override_timeout": config.DefaultOverrideTimeout.String(),
		},
		"session": map[string]any{
			"prefix":      config.DefaultSessionPrefix,
			"timeout":     config.DefaultSessionTimeout.String(),
			"tmux_bin":    config.DefaultTmuxBin,
			"override_id": "",
		},
		"transcript": map[string]any{
			"window":         config.DefaultTranscriptWindow,
			"max_line_bytes": config.DefaultMaxLineBytes,
		},
		"log": map[string]any{
			"file":  "",
			"level": "",
		},
	}
}
