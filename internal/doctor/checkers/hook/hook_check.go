// Package hook provides checkers for hook registration in Claude settings.
package hook

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/ccbridge/internal/doctor"
	"github.com/smykla-skalski/ccbridge/internal/doctor/fixers"
	"github.com/smykla-skalski/ccbridge/internal/doctor/settings"
)

// RegistrationChecker checks that one hook command is registered under its event
type RegistrationChecker struct {
	parser  *settings.SettingsParser
	event   string
	command string
}

// NewRegistrationChecker creates a checker for reg in the settings file at path
func NewRegistrationChecker(path string, reg settings.Registration) *RegistrationChecker {
	return &RegistrationChecker{
		parser:  settings.NewSettingsParser(path),
		event:   reg.Event,
		command: reg.Command,
	}
}

// Name returns the name of the check
func (c *RegistrationChecker) Name() string {
	return c.event + " hook registered"
}

// Category returns the category of the check
func (*RegistrationChecker) Category() doctor.Category {
	return doctor.CategoryHook
}

// Check performs the registration check
func (c *RegistrationChecker) Check(_ context.Context) doctor.CheckResult {
	registered, err := c.parser.IsCommandRegistered(c.event, c.command)
	if err != nil {
		if errors.Is(err, settings.ErrInvalidJSON) {
			return doctor.FailError(c.Name(), "Settings file has invalid JSON syntax").
				WithDetails(
					"File: "+c.parser.Path(),
					fmt.Sprintf("Error: %v", err),
				)
		}

		return doctor.FailError(c.Name(), fmt.Sprintf("Failed to parse settings: %v", err))
	}

	if !registered {
		return doctor.FailError(c.Name(), fmt.Sprintf("%q not registered", c.command)).
			WithDetails(
				"File: "+c.parser.Path(),
				"Register with: ccbridge doctor --fix",
			).
			WithFixID(fixers.InstallHooksID)
	}

	return doctor.Pass(c.Name(), "Registered")
}
