package config

// Default values for the transcript search.
const (
	// DefaultTranscriptWindow is how many trailing lines are searched.
	DefaultTranscriptWindow = 50

	// DefaultMaxLineBytes caps a single transcript line; longer lines are skipped.
	DefaultMaxLineBytes = 1 << 20
)

// TranscriptConfig configures the backward transcript search.
type TranscriptConfig struct {
	// Window is the number of trailing lines examined.
	// Default: 50
	Window int `json:"window,omitempty" koanf:"window" toml:"window,omitempty" yaml:"window,omitempty"`

	// MaxLineBytes is the largest line that is parsed.
	// Default: 1048576
	MaxLineBytes int `json:"max_line_bytes,omitempty" koanf:"max_line_bytes" toml:"max_line_bytes,omitempty" yaml:"max_line_bytes,omitempty"`
}

// GetWindow returns the search window.
func (t *TranscriptConfig) GetWindow() int {
	if t == nil || t.Window <= 0 {
		return DefaultTranscriptWindow
	}

	return t.Window
}

// GetMaxLineBytes returns the line size cap.
func (t *TranscriptConfig) GetMaxLineBytes() int {
	if t == nil || t.MaxLineBytes <= 0 {
		return DefaultMaxLineBytes
	}

	return t.MaxLineBytes
}
