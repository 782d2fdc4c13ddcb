// Package session detects the Command Center session the hook runs in.
package session

//go:generate mockgen -source=resolver.go -destination=resolver_mock.go -package=session

import (
	"context"
	"strings"
	"time"

	"github.com/smykla-skalski/ccbridge/internal/exec"
	"github.com/smykla-skalski/ccbridge/pkg/config"
	"github.com/smykla-skalski/ccbridge/pkg/logger"
)

// tmuxFormat asks tmux for the current session name.
const tmuxFormat = "#S"

// Resolver finds the session id of the current process.
type Resolver interface {
	// Resolve returns the session id and true when running inside a
	// recognized session. It never fails; absence is reported as ok=false.
	Resolve(ctx context.Context) (string, bool)
}

// TmuxResolver reads the tmux session name and strips the marker prefix.
type TmuxResolver struct {
	runner     exec.CommandRunner
	logger     logger.Logger
	prefix     string
	tmuxBin    string
	overrideID string
	timeout    time.Duration
}

// TmuxResolverOption configures the TmuxResolver.
type TmuxResolverOption func(*TmuxResolver)

// WithLogger sets the logger.
func WithLogger(log logger.Logger) TmuxResolverOption {
	return func(r *TmuxResolver) {
		if log != nil {
			r.logger = log
		}
	}
}

// WithRunner sets the command runner used to call tmux.
func WithRunner(runner exec.CommandRunner) TmuxResolverOption {
	return func(r *TmuxResolver) {
		if runner != nil {
			r.runner = runner
		}
	}
}

// NewTmuxResolver creates a TmuxResolver from the session config section.
func NewTmuxResolver(cfg *config.SessionConfig, opts ...TmuxResolverOption) *TmuxResolver {
	r := &TmuxResolver{
		logger:     logger.NewNoOpLogger(),
		prefix:     cfg.GetPrefix(),
		tmuxBin:    cfg.GetTmuxBin(),
		overrideID: cfg.GetOverrideID(),
		timeout:    cfg.GetTimeout(),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.runner == nil {
		r.runner = exec.NewCommandRunner(r.timeout)
	}

	return r
}

// Resolve implements Resolver.
func (r *TmuxResolver) Resolve(ctx context.Context) (string, bool) {
	if r.overrideID != "" {
		r.logger.Debug("session id overridden", "session", r.overrideID)

		return r.overrideID, true
	}

	result, err := r.runner.RunWithTimeout(ctx, r.timeout, r.tmuxBin, "display-message", "-p", tmuxFormat)
	if err != nil {
		r.logger.Debug("tmux session lookup failed", "error", err)

		return "", false
	}

	return r.match(result.TrimmedStdout())
}

// Prefix returns the marker prefix this resolver recognizes.
func (r *TmuxResolver) Prefix() string {
	return r.prefix
}

func (r *TmuxResolver) match(name string) (string, bool) {
	id, found := strings.CutPrefix(name, r.prefix)
	if !found {
		r.logger.Debug("not a managed session", "name", name)

		return "", false
	}

	// An empty id would address /api/sessions//notify on the server.
	if id == "" {
		r.logger.Debug("session name has empty id", "name", name)

		return "", false
	}

	return id, true
}

// StaticResolver always returns the same answer.
type StaticResolver struct {
	ID string
	OK bool
}

// Resolve implements Resolver.
func (s StaticResolver) Resolve(context.Context) (string, bool) {
	return s.ID, s.OK
}

// NewStaticResolver returns a resolver reporting id as a recognized session.
// An empty id yields a resolver that never recognizes a session.
func NewStaticResolver(id string) StaticResolver {
	return StaticResolver{ID: id, OK: id != ""}
}
