// Package hookresponse builds structured JSON responses for Claude Code hooks.
package hookresponse

// Decision is a permission decision understood by Claude Code.
type Decision string

const (
	// DecisionAllow approves the tool call without asking the user.
	DecisionAllow Decision = "allow"

	// DecisionDeny blocks the tool call.
	DecisionDeny Decision = "deny"

	// DecisionAsk falls back to the interactive prompt.
	DecisionAsk Decision = "ask"
)

// HookResponse is the top-level JSON structure written to stdout.
type HookResponse struct {
	HookSpecificOutput *HookSpecificOutput `json:"hookSpecificOutput,omitempty"`
	SystemMessage      string              `json:"systemMessage,omitempty"`
}

// HookSpecificOutput carries the permission decision and context for Claude.
// HookEventName is optional in the protocol and left out unless set.
type HookSpecificOutput struct {
	HookEventName            string   `json:"hookEventName,omitempty"`
	PermissionDecision       Decision `json:"permissionDecision"`
	PermissionDecisionReason string   `json:"permissionDecisionReason,omitempty"` // shown to Claude
	AdditionalContext        string   `json:"additionalContext,omitempty"`
}
