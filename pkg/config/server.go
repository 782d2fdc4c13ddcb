package config

import (
	"net"
	"time"
)

// Default values for the control server connection.
const (
	// DefaultPort is the Command Center port.
	DefaultPort = "3100"

	// DefaultHost is the only host the hooks talk to.
	DefaultHost = "localhost"

	// DefaultNotifyTimeout bounds the fire-and-forget notify call.
	DefaultNotifyTimeout = 5 * time.Second

	// DefaultOverrideTimeout bounds the rocket mode query.
	DefaultOverrideTimeout = 3 * time.Second
)

// ServerConfig configures how the hooks reach the control server.
type ServerConfig struct {
	// Port is the control server port on localhost.
	// Default: "3100"
	Port string `json:"port,omitempty" koanf:"port" toml:"port,omitempty" yaml:"port,omitempty"`

	// AuthToken is sent as the token query parameter.
	// Default: "" (no token)
	AuthToken string `json:"auth_token,omitempty" koanf:"auth_token" toml:"auth_token,omitempty" yaml:"auth_token,omitempty"`

	// NotifyTimeout bounds the notify POST.
	// Default: "5s"
	NotifyTimeout Duration `json:"notify_timeout,omitempty" koanf:"notify_timeout" toml:"notify_timeout,omitempty" yaml:"notify_timeout,omitempty"`

	// OverrideTimeout bounds the rocket mode GET.
	// Default: "3s"
	OverrideTimeout Duration `json:"override_timeout,omitempty" koanf:"override_timeout" toml:"override_timeout,omitempty" yaml:"override_timeout,omitempty"`
}

// GetPort returns the port, or DefaultPort when unset.
func (s *ServerConfig) GetPort() string {
	if s == nil || s.Port == "" {
		return DefaultPort
	}

	return s.Port
}

// GetAuthToken returns the auth token (possibly empty).
func (s *ServerConfig) GetAuthToken() string {
	if s == nil {
		return ""
	}

	return s.AuthToken
}

// BaseURL returns the control server base URL.
func (s *ServerConfig) BaseURL() string {
	return "http://" + net.JoinHostPort(DefaultHost, s.GetPort())
}

// GetNotifyTimeout returns the notify timeout.
func (s *ServerConfig) GetNotifyTimeout() time.Duration {
	if s == nil || s.NotifyTimeout == 0 {
		return DefaultNotifyTimeout
	}

	return time.Duration(s.NotifyTimeout)
}

// GetOverrideTimeout returns the rocket mode query timeout.
func (s *ServerConfig) GetOverrideTimeout() time.Duration {
	if s == nil || s.OverrideTimeout == 0 {
		return DefaultOverrideTimeout
	}

	return time.Duration(s.OverrideTimeout)
}
