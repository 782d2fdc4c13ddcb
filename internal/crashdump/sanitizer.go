package crashdump

import (
	"encoding/json"
	"regexp"

	"github.com/smykla-skalski/ccbridge/pkg/config"
)

const redactedValue = "[REDACTED]"

var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)token`),
	regexp.MustCompile(`(?i)secret`),
	regexp.MustCompile(`(?i)password`),
	regexp.MustCompile(`(?i)auth`),
}

// Sanitizer strips secrets from configuration before it lands on disk.
type Sanitizer struct{}

// NewSanitizer creates a new config sanitizer.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{}
}

// SanitizeConfig converts cfg to a generic map with sensitive values redacted.
func (s *Sanitizer) SanitizeConfig(cfg *config.Config) map[string]any {
	if cfg == nil {
		return nil
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return map[string]any{"error": "failed to serialize config"}
	}

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		return map[string]any{"error": "failed to deserialize config"}
	}

	s.sanitizeMap(result)

	return result
}

func (s *Sanitizer) sanitizeMap(m map[string]any) {
	for key, value := range m {
		if isSensitiveKey(key) {
			m[key] = redactedValue

			continue
		}

		if nested, ok := value.(map[string]any); ok {
			s.sanitizeMap(nested)
		}
	}
}

func isSensitiveKey(key string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(key) {
			return true
		}
	}

	return false
}
