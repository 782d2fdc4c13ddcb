package config

import (
	"context"
	"fmt"

	"github.com/smykla-skalski/ccbridge/internal/doctor"
)

const envFileCheckName = "Env file found"

// EnvFileChecker checks the .env file shared with the Command Center server
type EnvFileChecker struct {
	newLoader LoaderFactory
	flags     map[string]any
}

// NewEnvFileChecker creates a new .env checker
func NewEnvFileChecker(newLoader LoaderFactory, flags map[string]any) *EnvFileChecker {
	if newLoader == nil {
		newLoader = DefaultLoaderFactory
	}

	return &EnvFileChecker{
		newLoader: newLoader,
		flags:     flags,
	}
}

// Name returns the name of the check
func (*EnvFileChecker) Name() string {
	return envFileCheckName
}

// Category returns the category of the check
func (*EnvFileChecker) Category() doctor.Category {
	return doctor.CategoryConfig
}

// Check performs the .env check
func (c *EnvFileChecker) Check(_ context.Context) doctor.CheckResult {
	loader := c.newLoader()

	cfg, err := loader.Load(c.flags)
	if err != nil {
		return doctor.Skip(envFileCheckName, "Configuration cannot be loaded")
	}

	path := loader.EnvFilePath()
	if path == "" {
		return doctor.FailWarning(envFileCheckName, "No .env file found").
			WithDetails(
				"Checked: "+joinOrNone(loader.EnvFileCandidates()),
				"Using port "+cfg.GetServer().GetPort()+" and no auth token",
			)
	}

	vars, err := readDotenv(path)
	if err != nil {
		return doctor.FailWarning(envFileCheckName, fmt.Sprintf("Cannot read %s: %v", path, err))
	}

	keys := dotenvKeys(vars)
	details := []string{"File: " + path, "Keys: " + joinOrNone(keys)}

	if cfg.GetServer().GetAuthToken() == "" {
		return doctor.FailWarning(envFileCheckName, "No auth token configured").
			WithDetails(append(details, "Set AUTH_TOKEN in "+path)...)
	}

	return doctor.Pass(envFileCheckName, path).WithDetails(details...)
}
