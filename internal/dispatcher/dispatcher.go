// Package dispatcher runs the Claude Code hooks against the control server.
package dispatcher

import (
	"context"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/ccbridge/pkg/hook"
	"github.com/smykla-skalski/ccbridge/pkg/logger"
)

var (
	// ErrUnknownEvent is returned when no hook handles the event.
	ErrUnknownEvent = errors.New("unknown hook event")

	// ErrPanic is returned when a hook panicked.
	ErrPanic = errors.New("hook panicked")
)

// PanicError carries a recovered panic value and stack.
type PanicError struct {
	Value any
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("%s: %v", ErrPanic, e.Value)
}

// Is reports whether target is ErrPanic.
func (*PanicError) Is(target error) bool {
	return target == ErrPanic
}

// Dispatcher routes a hook event to its handler.
type Dispatcher struct {
	notify  *NotifyHook
	approve *ApprovalGate
	logger  logger.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(notify *NotifyHook, approve *ApprovalGate, log logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &Dispatcher{
		notify:  notify,
		approve: approve,
		logger:  log,
	}
}

// Dispatch runs the hook registered for event. A panic inside the hook is
// recovered and returned as *PanicError; nothing further is written to stdout.
func (d *Dispatcher) Dispatch(
	ctx context.Context,
	event hook.EventType,
	stdin io.Reader,
	stdout io.Writer,
) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			d.logger.Error("hook panicked", "event", event, "panic", r, "stack", string(stack))
			err = &PanicError{Value: r, Stack: stack}
		}
	}()

	d.logger.Debug("hook invoked", "event", event)

	switch event {
	case hook.Notification:
		return d.notify.Run(ctx, stdin)
	case hook.PreToolUse:
		return d.approve.Run(ctx, stdout)
	default:
		return errors.Wrapf(ErrUnknownEvent, "%q", event)
	}
}
