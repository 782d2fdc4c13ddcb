// Package control talks to the Command Center control server on localhost.
package control

//go:generate mockgen -source=control.go -destination=control_mock.go -package=control

import (
	"context"

	"github.com/smykla-skalski/ccbridge/pkg/hook"
)

// Notifier reports a pending tool call to the control server.
//
// Notify is fire-and-forget: it is attempted once and every failure is
// logged and swallowed.
type Notifier interface {
	Notify(ctx context.Context, sessionID string, inv hook.ToolInvocation)
}

// OverrideQuerier asks the control server whether approvals are bypassed.
//
// QueryOverride fails closed: any failure reports false.
type OverrideQuerier interface {
	QueryOverride(ctx context.Context, sessionID string) bool
}

// Override is the control server's answer for a session.
type Override struct {
	// RocketMode reports whether the session auto-approves tool calls.
	RocketMode bool

	// Reason is the text returned to Claude Code with an allow decision.
	Reason string
}

// RocketModeReason is the reason attached to an allow decision.
const RocketModeReason = "Rocket mode enabled"
