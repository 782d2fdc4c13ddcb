// Package session provides the checker for Command Center session detection.
package session

import (
	"context"

	"github.com/smykla-skalski/ccbridge/internal/doctor"
	"github.com/smykla-skalski/ccbridge/internal/session"
)

const checkName = "Command Center session"

// Checker reports whether the current process runs in a managed session
type Checker struct {
	resolver session.Resolver
	prefix   string
}

// NewChecker creates a new session checker
func NewChecker(resolver session.Resolver, prefix string) *Checker {
	return &Checker{
		resolver: resolver,
		prefix:   prefix,
	}
}

// Name returns the name of the check
func (*Checker) Name() string {
	return checkName
}

// Category returns the category of the check
func (*Checker) Category() doctor.Category {
	return doctor.CategorySession
}

// Check resolves the session the way the hooks do
func (c *Checker) Check(ctx context.Context) doctor.CheckResult {
	id, ok := c.resolver.Resolve(ctx)
	if !ok {
		return doctor.FailWarning(checkName, "Not inside a "+c.prefix+"* tmux session").
			WithDetails("Hooks do nothing outside sessions started by Command Center")
	}

	return doctor.Pass(checkName, "Session "+id)
}
