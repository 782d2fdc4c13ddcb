package config

import (
	"context"
	"fmt"

	"github.com/smykla-skalski/ccbridge/internal/doctor"
)

const validityCheckName = "Configuration valid"

// ValidityChecker loads and validates the merged configuration
type ValidityChecker struct {
	newLoader LoaderFactory
	flags     map[string]any
}

// NewValidityChecker creates a new configuration validity checker. flags are
// the CLI flags passed to every Load.
func NewValidityChecker(newLoader LoaderFactory, flags map[string]any) *ValidityChecker {
	if newLoader == nil {
		newLoader = DefaultLoaderFactory
	}

	return &ValidityChecker{
		newLoader: newLoader,
		flags:     flags,
	}
}

// Name returns the name of the check
func (*ValidityChecker) Name() string {
	return validityCheckName
}

// Category returns the category of the check
func (*ValidityChecker) Category() doctor.Category {
	return doctor.CategoryConfig
}

// Check performs the validity check
func (c *ValidityChecker) Check(_ context.Context) doctor.CheckResult {
	loader := c.newLoader()

	cfg, err := loader.Load(c.flags)
	if err != nil {
		return doctor.FailError(validityCheckName, "Configuration cannot be loaded").
			WithDetails(
				fmt.Sprintf("Error: %v", err),
				"Hooks fall back to built-in defaults until this is fixed",
			)
	}

	details := describeServer(cfg)

	if path := loader.ConfigFilePath(); path != "" {
		details = append(details, "Config file: "+path)
	}

	return doctor.Pass(validityCheckName, "Loaded").WithDetails(details...)
}
