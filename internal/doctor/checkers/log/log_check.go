// Package log provides the checker for the hook log file.
package log

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/smykla-skalski/ccbridge/internal/doctor"
)

const (
	checkName = "Hook log"

	// largeLogBytes is the size above which the log is reported as a warning.
	largeLogBytes = 50 << 20
)

// Checker reports the hook log location and size
type Checker struct {
	path string
	now  func() time.Time
}

// NewChecker creates a new log checker
func NewChecker(path string) *Checker {
	return &Checker{path: path, now: time.Now}
}

// Name returns the name of the check
func (*Checker) Name() string {
	return checkName
}

// Category returns the category of the check
func (*Checker) Category() doctor.Category {
	return doctor.CategoryLog
}

// Check stats the log file
func (c *Checker) Check(_ context.Context) doctor.CheckResult {
	info, err := os.Stat(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return doctor.Skip(checkName, "No log written yet").WithDetails("Path: " + c.path)
		}

		return doctor.FailWarning(checkName, fmt.Sprintf("Cannot stat log: %v", err))
	}

	size := humanize.IBytes(uint64(info.Size())) //nolint:gosec // size is never negative
	details := []string{
		"Path: " + c.path,
		"Last write: " + humanize.RelTime(info.ModTime(), c.now(), "ago", "from now"),
	}

	if info.Size() > largeLogBytes {
		return doctor.FailWarning(checkName, "Log is "+size).
			WithDetails(append(details, "Truncate it with: : > "+c.path)...)
	}

	if info.Mode().Perm()&0o077 != 0 {
		return doctor.FailWarning(checkName, fmt.Sprintf("Log is readable by others (mode %s)", info.Mode().Perm())).
			WithDetails(append(details, "Fix with: chmod 600 "+c.path)...)
	}

	return doctor.Pass(checkName, size).WithDetails(details...)
}
