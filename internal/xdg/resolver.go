package xdg

import "path/filepath"

// PathResolver resolves the configuration file locations for ccbridge.
// The default implementation uses os.UserHomeDir() and XDG env vars.
// Use ResolverFor() when paths should be relative to a specific home directory.
type PathResolver interface {
	GlobalConfigFile() string
	EnvFile() string
	ExecutableEnvFile() string
}

// DefaultResolver returns a PathResolver using real XDG paths.
func DefaultResolver() PathResolver {
	return defaultResolver{}
}

type defaultResolver struct{}

func (defaultResolver) GlobalConfigFile() string { return GlobalConfigFile() }
func (defaultResolver) EnvFile() string          { return EnvFile() }

func (defaultResolver) ExecutableEnvFile() string { return ExecutableEnvFile() }

// ResolverFor returns a PathResolver rooted at homeDir/.config, ignoring
// XDG_CONFIG_HOME. It has no executable-relative .env fallback.
func ResolverFor(homeDir string) PathResolver {
	return homeResolver{homeDir: homeDir}
}

type homeResolver struct {
	homeDir string
}

func (r homeResolver) configDir() string {
	return filepath.Join(r.homeDir, ".config", appName)
}

func (r homeResolver) GlobalConfigFile() string {
	return filepath.Join(r.configDir(), "config.toml")
}

func (r homeResolver) EnvFile() string {
	return filepath.Join(r.configDir(), EnvFileName)
}

func (homeResolver) ExecutableEnvFile() string {
	return ""
}
