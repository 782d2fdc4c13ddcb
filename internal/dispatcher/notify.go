package dispatcher

import (
	"context"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/ccbridge/internal/control"
	"github.com/smykla-skalski/ccbridge/internal/parser"
	"github.com/smykla-skalski/ccbridge/internal/session"
	"github.com/smykla-skalski/ccbridge/pkg/hook"
	"github.com/smykla-skalski/ccbridge/pkg/logger"
)

// Miner recovers the latest tool call from a transcript.
type Miner interface {
	Mine(path string) hook.ToolInvocation
}

// NotifyHook forwards a permission notification with the pending tool call.
type NotifyHook struct {
	resolver session.Resolver
	miner    Miner
	notifier control.Notifier
	logger   logger.Logger
}

// NewNotifyHook creates a NotifyHook.
func NewNotifyHook(
	resolver session.Resolver,
	miner Miner,
	notifier control.Notifier,
	log logger.Logger,
) *NotifyHook {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &NotifyHook{
		resolver: resolver,
		miner:    miner,
		notifier: notifier,
		logger:   log,
	}
}

// Run handles one Notification event. Outside a managed session it returns
// without reading stdin. Malformed stdin is returned as an error; every other
// failure is absorbed.
func (h *NotifyHook) Run(ctx context.Context, stdin io.Reader) error {
	sessionID, ok := h.resolver.Resolve(ctx)
	if !ok {
		h.logger.Debug("not in a managed session, skipping notify")

		return nil
	}

	input, err := parser.NewJSONParser(stdin).ParseNotification()
	if err != nil {
		return errors.Wrap(err, "failed to parse notification input")
	}

	var inv hook.ToolInvocation
	if input.HasTranscript() {
		inv = h.miner.Mine(input.TranscriptPath)
	}

	h.logger.Info("notifying",
		"session", sessionID,
		"tool", inv.Name,
		"notification_type", input.NotificationType,
	)

	h.notifier.Notify(ctx, sessionID, inv)

	return nil
}
