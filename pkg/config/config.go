package config

// Config represents the root configuration for ccbridge.
//
// Every section is optional; the getters on each section fall back to the
// documented defaults so a nil or partially filled Config is always usable.
type Config struct {
	// Server configures the Command Center control server connection.
	Server *ServerConfig `json:"server,omitempty" koanf:"server" toml:"server,omitempty" yaml:"server,omitempty"`

	// Session configures tmux session detection.
	Session *SessionConfig `json:"session,omitempty" koanf:"session" toml:"session,omitempty" yaml:"session,omitempty"`

	// Transcript configures the transcript tail search.
	Transcript *TranscriptConfig `json:"transcript,omitempty" koanf:"transcript" toml:"transcript,omitempty" yaml:"transcript,omitempty"`

	// Log configures the hook log file.
	Log *LogConfig `json:"log,omitempty" koanf:"log" toml:"log,omitempty" yaml:"log,omitempty"`
}

// GetServer returns the server section, never nil.
func (c *Config) GetServer() *ServerConfig {
	if c == nil || c.Server == nil {
		return &ServerConfig{}
	}

	return c.Server
}

// GetSession returns the session section, never nil.
func (c *Config) GetSession() *SessionConfig {
	if c == nil || c.Session == nil {
		return &SessionConfig{}
	}

	return c.Session
}

// GetTranscript returns the transcript section, never nil.
func (c *Config) GetTranscript() *TranscriptConfig {
	if c == nil || c.Transcript == nil {
		return &TranscriptConfig{}
	}

	return c.Transcript
}

// GetLog returns the log section, never nil.
func (c *Config) GetLog() *LogConfig {
	if c == nil || c.Log == nil {
		return &LogConfig{}
	}

	return c.Log
}
