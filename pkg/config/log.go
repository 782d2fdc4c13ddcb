package config

// LogConfig configures the hook log file.
type LogConfig struct {
	// File is the log file path. Empty means the XDG state location.
	File string `json:"file,omitempty" koanf:"file" toml:"file,omitempty" yaml:"file,omitempty"`

	// Level is one of "debug", "info", "error". Empty means the CLI flags decide.
	Level string `json:"level,omitempty" jsonschema:"enum=debug,enum=info,enum=error" koanf:"level" toml:"level,omitempty" yaml:"level,omitempty"`
}

// GetFile returns the configured log file, possibly empty.
func (l *LogConfig) GetFile() string {
	if l == nil {
		return ""
	}

	return l.File
}

// GetLevel returns the configured level name, possibly empty.
func (l *LogConfig) GetLevel() string {
	if l == nil {
		return ""
	}

	return l.Level
}
