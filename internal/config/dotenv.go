package config

import (
	"bufio"
	"bytes"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/knadh/koanf/maps"
)

// ErrDotenvMarshal is returned when marshalling back to .env is requested.
var ErrDotenvMarshal = errors.New("dotenv parser does not support marshalling")

// tokenKeys lists the .env keys accepted for the auth token, highest priority
// first. An empty value falls through to the next key.
var tokenKeys = []string{"AUTH_TOKEN", "CC_AUTH_TOKEN", "NTFY_AUTH_TOKEN"}

// DotenvParser reads the KEY=VALUE file shared with the Command Center server and
// maps its keys onto config paths. It implements koanf.Parser.
type DotenvParser struct{}

// NewDotenvParser creates a new DotenvParser.
func NewDotenvParser() *DotenvParser {
	return &DotenvParser{}
}

// Unmarshal parses .env bytes into a nested config map.
//
// Lines without "=" or starting with "#" are skipped. Key and value are trimmed
// and split at the first "=". Values are kept verbatim otherwise.
func (*DotenvParser) Unmarshal(b []byte) (map[string]any, error) {
	vars := ParseDotenv(b)
	flat := make(map[string]any)

	if port, ok := vars["PORT"]; ok {
		flat["server.port"] = port
	}

	for _, key := range tokenKeys {
		if token := vars[key]; token != "" {
			flat["server.auth_token"] = token

			break
		}
	}

	for key, value := range vars {
		if path := envKeyToPath(key); path != "" {
			flat[path] = value
		}
	}

	return maps.Unflatten(flat, "."), nil
}

// Marshal is not supported; the .env file is owned by the server.
func (*DotenvParser) Marshal(map[string]any) ([]byte, error) {
	return nil, ErrDotenvMarshal
}

// ParseDotenv returns the raw KEY=VALUE pairs of a .env file. Later
// duplicates win.
func ParseDotenv(b []byte) map[string]string {
	vars := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(b))
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), len(b)+1)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}

		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		vars[key] = strings.TrimSpace(value)
	}

	return vars
}

// DotenvKeys returns the recognized keys present in vars, sorted.
func DotenvKeys(vars map[string]string) []string {
	var keys []string

	for key := range vars {
		if key == "PORT" || slices.Contains(tokenKeys, key) || envKeyToPath(key) != "" {
			keys = append(keys, key)
		}
	}

	slices.Sort(keys)

	return keys
}
