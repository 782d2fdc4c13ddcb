// Package parser provides JSON input parsing for the ccbridge hooks.
package parser

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/ccbridge/pkg/hook"
)

// maxInputBytes caps how much of stdin is read. Notification payloads are a few
// hundred bytes; anything near this size is not a hook payload.
const maxInputBytes = 1 << 20

var (
	// ErrEmptyInput is returned when the input is empty.
	ErrEmptyInput = errors.New("empty input")

	// ErrInvalidJSON is returned when the input is not a JSON object.
	ErrInvalidJSON = errors.New("invalid JSON")
)

// JSONParser parses hook input from a reader (normally stdin).
type JSONParser struct {
	reader io.Reader
}

// NewJSONParser creates a new JSONParser that reads from the given reader.
func NewJSONParser(reader io.Reader) *JSONParser {
	return &JSONParser{
		reader: reader,
	}
}

// ParseNotification reads a Notification hook payload.
//
// Unknown fields are accepted. Empty input, input that is not a JSON object, and
// input larger than maxInputBytes are errors: they mean the host broke the hook
// contract, and the caller is expected to fail the invocation.
func (p *JSONParser) ParseNotification() (*hook.NotificationInput, error) {
	data, err := io.ReadAll(io.LimitReader(p.reader, maxInputBytes+1))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read input")
	}

	if len(data) > maxInputBytes {
		return nil, errors.Wrapf(ErrInvalidJSON, "input exceeds %d bytes", maxInputBytes)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	if data[0] != '{' {
		return nil, errors.Wrap(ErrInvalidJSON, "expected a JSON object")
	}

	var input hook.NotificationInput

	if unmarshalErr := json.Unmarshal(data, &input); unmarshalErr != nil {
		return nil, errors.CombineErrors(ErrInvalidJSON, unmarshalErr)
	}

	return &input, nil
}
