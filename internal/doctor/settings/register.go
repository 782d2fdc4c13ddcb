package settings

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// Registration is one hook command ccbridge expects under an event.
type Registration struct {
	Event   string
	Command string
	Timeout int
}

// AddRegistrations returns the settings file content with regs appended to
// their events. Keys other than hooks, and hooks of other tools, are kept.
// Registrations already present are not duplicated.
func AddRegistrations(data []byte, regs []Registration) ([]byte, bool, error) {
	root := make(map[string]any)

	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &root); err != nil {
			return nil, false, errors.WithSecondaryError(ErrInvalidJSON, err)
		}
	}

	var existing ClaudeSettings
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &existing); err != nil {
			return nil, false, errors.WithSecondaryError(ErrInvalidJSON, err)
		}
	}

	hooks, _ := root["hooks"].(map[string]any)
	if hooks == nil {
		hooks = make(map[string]any)
	}

	changed := false

	for _, reg := range regs {
		if existing.HasCommand(reg.Event, reg.Command) {
			continue
		}

		entries, _ := hooks[reg.Event].([]any)
		hooks[reg.Event] = append(entries, map[string]any{
			"hooks": []any{
				map[string]any{
					"type":    hookTypeCommand,
					"command": reg.Command,
					"timeout": reg.Timeout,
				},
			},
		})
		changed = true
	}

	if !changed {
		return data, false, nil
	}

	root["hooks"] = hooks

	out, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to marshal settings")
	}

	return append(out, '\n'), true, nil
}
