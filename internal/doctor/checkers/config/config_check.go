// Package config provides checkers for configuration validity and the shared .env file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hako/durafmt"

	internalconfig "github.com/smykla-skalski/ccbridge/internal/config"
	"github.com/smykla-skalski/ccbridge/pkg/config"
)

// Loader loads configuration the way the hooks do.
type Loader interface {
	Load(flags map[string]any) (*config.Config, error)
	EnvFilePath() string
	ConfigFilePath() string
	EnvFileCandidates() []string
}

// LoaderFactory returns a fresh Loader for each check run.
type LoaderFactory func() Loader

// DefaultLoaderFactory builds KoanfLoaders over the real XDG locations.
func DefaultLoaderFactory() Loader {
	return internalconfig.NewKoanfLoader()
}

func formatDuration(d time.Duration) string {
	return durafmt.Parse(d).LimitFirstN(2).String()
}

// dotenvKeys lists recognized keys, never values.
func dotenvKeys(vars map[string]string) []string {
	return internalconfig.DotenvKeys(vars)
}

func readDotenv(path string) (map[string]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the loader
	if err != nil {
		return nil, err
	}

	return internalconfig.ParseDotenv(data), nil
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}

	return strings.Join(items, ", ")
}

func describeServer(cfg *config.Config) []string {
	s := cfg.GetServer()

	return []string{
		"Server: " + s.BaseURL(),
		fmt.Sprintf(
			"Timeouts: notify %s, override %s, tmux %s",
			formatDuration(s.GetNotifyTimeout()),
			formatDuration(s.GetOverrideTimeout()),
			formatDuration(cfg.GetSession().GetTimeout()),
		),
	}
}
