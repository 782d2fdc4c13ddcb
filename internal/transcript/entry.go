package transcript

import (
	"encoding/json"

	"github.com/smykla-skalski/ccbridge/pkg/hook"
)

// BlockTypeToolUse marks a content block describing a tool call.
const BlockTypeToolUse = "tool_use"

// Entry is one JSONL line of a Claude Code transcript. Only the fields needed
// to recover tool calls are decoded.
type Entry struct {
	Type    string   `json:"type,omitempty"`
	Message *Message `json:"message,omitempty"`
}

// Message is the message payload of an entry.
type Message struct {
	Role    string  `json:"role,omitempty"`
	Content []Block `json:"content,omitempty"`
}

// Block is one element of a message's content list. Type discriminates the
// variant; Name and Input are meaningful for tool_use blocks.
type Block struct {
	Type  string          `json:"type"`
	Name  *string         `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`
}

// IsToolUse reports whether the block is a tool_use block.
func (b *Block) IsToolUse() bool {
	return b.Type == BlockTypeToolUse
}

// Invocation converts a tool_use block. A missing or null input becomes an
// empty map, as does an input that is not a JSON object.
func (b *Block) Invocation() hook.ToolInvocation {
	inv := hook.ToolInvocation{Input: map[string]any{}}

	if b.Name != nil {
		inv.Name = *b.Name
	}

	var input map[string]any
	if len(b.Input) > 0 && json.Unmarshal(b.Input, &input) == nil && input != nil {
		inv.Input = input
	}

	return inv
}

// LastToolUse walks the content blocks backward and returns the first
// tool_use block found. A tool_use block without a name makes the whole
// entry unusable.
func (e *Entry) LastToolUse() (hook.ToolInvocation, bool) {
	if e == nil || e.Message == nil {
		return hook.ToolInvocation{}, false
	}

	content := e.Message.Content
	for i := len(content) - 1; i >= 0; i-- {
		block := &content[i]
		if !block.IsToolUse() {
			continue
		}

		if block.Name == nil {
			return hook.ToolInvocation{}, false
		}

		return block.Invocation(), true
	}

	return hook.ToolInvocation{}, false
}

// ParseEntry decodes one transcript line.
func ParseEntry(line []byte) (*Entry, error) {
	var entry Entry
	if err := json.Unmarshal(line, &entry); err != nil {
		return nil, err
	}

	return &entry, nil
}
