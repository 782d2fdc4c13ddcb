// Package hook provides core types shared by the ccbridge hooks.
package hook

// EventType is the Claude Code hook event a command is registered under.
type EventType string

const (
	// Notification is fired when Claude Code shows a notification, including
	// "Claude needs your permission to use ..." prompts.
	Notification EventType = "Notification"

	// PreToolUse is fired before a tool is executed and may return a permission decision.
	PreToolUse EventType = "PreToolUse"
)

// String returns the event name as Claude Code spells it.
func (e EventType) String() string {
	return string(e)
}

// ToolInvocation is the most recent tool call Claude Code was about to run.
// The zero value means nothing could be recovered.
type ToolInvocation struct {
	// Name is the tool name, e.g. "Bash" or "Edit".
	Name string `json:"tool_name"`

	// Input holds the tool parameters exactly as they appear in the transcript.
	Input map[string]any `json:"tool_input"`
}

// IsEmpty returns true when no tool invocation was recovered.
func (t ToolInvocation) IsEmpty() bool {
	return t.Name == ""
}

// NotificationInput is the JSON object Claude Code writes to a Notification hook's stdin.
// Only TranscriptPath is consumed; the tool details are not part of this payload and
// have to be recovered from the transcript.
type NotificationInput struct {
	Message          string `json:"message,omitempty"`
	Title            string `json:"title,omitempty"`
	NotificationType string `json:"notification_type,omitempty"`
	TranscriptPath   string `json:"transcript_path,omitempty"`
	SessionID        string `json:"session_id,omitempty"`
	Cwd              string `json:"cwd,omitempty"`
	PermissionMode   string `json:"permission_mode,omitempty"`
	HookEventName    string `json:"hook_event_name,omitempty"`
}

// HasTranscript returns true if a transcript path was provided.
func (n *NotificationInput) HasTranscript() bool {
	return n.TranscriptPath != ""
}
