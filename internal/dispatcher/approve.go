package dispatcher

import (
	"context"
	"io"

	"github.com/smykla-skalski/ccbridge/internal/control"
	"github.com/smykla-skalski/ccbridge/internal/hookresponse"
	"github.com/smykla-skalski/ccbridge/internal/session"
	"github.com/smykla-skalski/ccbridge/pkg/logger"
)

// ApprovalGate auto-approves tool calls while the session is in rocket mode.
type ApprovalGate struct {
	resolver session.Resolver
	querier  control.OverrideQuerier
	logger   logger.Logger
}

// NewApprovalGate creates an ApprovalGate.
func NewApprovalGate(
	resolver session.Resolver,
	querier control.OverrideQuerier,
	log logger.Logger,
) *ApprovalGate {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &ApprovalGate{
		resolver: resolver,
		querier:  querier,
		logger:   log,
	}
}

// Run handles one PreToolUse event. It writes an allow decision only when the
// control server confirms rocket mode, and nothing at all otherwise. Stdin is
// not read.
func (g *ApprovalGate) Run(ctx context.Context, stdout io.Writer) error {
	sessionID, ok := g.resolver.Resolve(ctx)
	if !ok {
		g.logger.Debug("not in a managed session, deferring to the user")

		return nil
	}

	if !g.querier.QueryOverride(ctx, sessionID) {
		g.logger.Debug("rocket mode off", "session", sessionID)

		return nil
	}

	g.logger.Info("rocket mode on, allowing", "session", sessionID)

	return hookresponse.Write(stdout, hookresponse.Allow(control.RocketModeReason))
}
