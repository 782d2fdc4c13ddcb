// Package tools provides checkers for external binaries the hooks depend on.
package tools

import (
	"context"
	"fmt"

	"github.com/smykla-skalski/ccbridge/internal/doctor"
	"github.com/smykla-skalski/ccbridge/internal/exec"
)

// ToolChecker checks that a binary can be found
type ToolChecker struct {
	toolName        string
	description     string
	severity        doctor.Severity
	installHint     string
	toolCheckerImpl exec.ToolChecker
}

// NewTmuxChecker creates a checker for the tmux binary used for session detection
func NewTmuxChecker(bin string, impl exec.ToolChecker) *ToolChecker {
	if impl == nil {
		impl = exec.NewToolChecker()
	}

	return &ToolChecker{
		toolName:        bin,
		description:     "Session detection",
		severity:        doctor.SeverityError,
		installHint:     "Install with: brew install tmux (macOS) or apt-get install tmux (Linux)",
		toolCheckerImpl: impl,
	}
}

// Name returns the name of the check
func (c *ToolChecker) Name() string {
	return c.toolName + " available"
}

// Category returns the category of the check
func (*ToolChecker) Category() doctor.Category {
	return doctor.CategoryTools
}

// Check performs the tool availability check
func (c *ToolChecker) Check(_ context.Context) doctor.CheckResult {
	path, ok := c.toolCheckerImpl.Lookup(c.toolName)
	if !ok {
		return doctor.NewCheckResult(c.Name(), c.severity, doctor.StatusFail, "Not found").
			WithDetails(
				fmt.Sprintf("%s needs %s", c.description, c.toolName),
				c.installHint,
			)
	}

	return doctor.Pass(c.Name(), "Found at "+path)
}
