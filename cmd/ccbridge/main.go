// Package main provides the CLI entry point for ccbridge.
package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	internalconfig "github.com/smykla-skalski/ccbridge/internal/config"
	"github.com/smykla-skalski/ccbridge/internal/dispatcher"
	"github.com/smykla-skalski/ccbridge/internal/xdg"
	"github.com/smykla-skalski/ccbridge/pkg/config"
	"github.com/smykla-skalski/ccbridge/pkg/logger"
)

const (
	// ExitCodeOK covers success and every silent no-op.
	ExitCodeOK = 0

	// ExitCodeError indicates a fatal error, e.g. malformed hook input.
	ExitCodeError = 1

	// ExitCodeCrash indicates an unexpected panic.
	ExitCodeCrash = 3
)

var (
	debugMode   bool
	traceMode   bool
	configPath  string
	envFilePath string
	logFilePath string
	noColorFlag bool
)

func main() {
	os.Exit(mainWithExitCode())
}

func mainWithExitCode() (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "ccbridge: panic: %v\n", r)

			exitCode = ExitCodeCrash
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		if errors.Is(err, dispatcher.ErrPanic) {
			return ExitCodeCrash
		}

		return ExitCodeError
	}

	return ExitCodeOK
}

var rootCmd = &cobra.Command{
	Use:   "ccbridge",
	Short: "Claude Code hooks for Command Center",
	Long: `Claude Code hooks for Command Center.

Forwards permission notifications to the Command Center control server and
auto-approves tool calls while rocket mode is on. Hooks only act inside tmux
sessions started by Command Center (named cc-<id>).`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		checkVersionFlag()
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func init() {
	flags := rootCmd.PersistentFlags()

	flags.BoolVar(&debugMode, "debug", false, "Enable debug logging")
	flags.BoolVar(&traceMode, "trace", false, "Enable trace logging")
	flags.StringVarP(
		&configPath,
		"config",
		"c",
		"",
		"Path to configuration file (default: $XDG_CONFIG_HOME/ccbridge/config.toml)",
	)
	flags.StringVar(
		&envFilePath,
		"env-file",
		"",
		"Path to the Command Center .env file (default: $CCBRIDGE_ENV_FILE, then XDG config dir)",
	)
	flags.StringVar(
		&logFilePath,
		"log-file",
		"",
		"Path to the log file (default: $XDG_STATE_HOME/ccbridge/hooks.log)",
	)
	flags.BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
}

// buildFlagsMap converts the global flags to the map the config loader reads.
func buildFlagsMap() map[string]any {
	return map[string]any{
		internalconfig.FlagConfig:  configPath,
		internalconfig.FlagEnvFile: envFilePath,
		internalconfig.FlagDebug:   debugMode,
		internalconfig.FlagTrace:   traceMode,
		"log-file":                 logFilePath,
	}
}

// loadConfig loads and validates the configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := internalconfig.NewKoanfLoader().Load(buildFlagsMap())
	if err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}

	return cfg, nil
}

// loadConfigOrDefaults is loadConfig for the hook path: a broken config
// degrades to defaults, and the load error is returned for logging.
func loadConfigOrDefaults() (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return internalconfig.DefaultConfig(), err
	}

	return cfg, nil
}

// logFileFor returns the log file configured in cfg or the XDG default.
func logFileFor(cfg *config.Config) string {
	if path := cfg.GetLog().GetFile(); path != "" {
		return xdg.ExpandPathSilent(path)
	}

	return xdg.LogFile()
}

// logLevelFor returns the level configured in cfg, falling back to the flags.
func logLevelFor(cfg *config.Config) logger.Level {
	if name := cfg.GetLog().GetLevel(); name != "" {
		if level, err := logger.ParseLevel(name); err == nil {
			return level
		}
	}

	return logger.LevelFromFlags(debugMode, traceMode)
}

// newLogger opens the log file for cfg. It never fails: when the file cannot
// be opened the returned logger discards everything.
func newLogger(cfg *config.Config) (log logger.Logger, closeFn func()) {
	fileLogger, err := logger.NewFileLogger(logFileFor(cfg), logLevelFor(cfg))
	if err != nil {
		return logger.NewNoOpLogger(), func() {}
	}

	return fileLogger, func() { _ = fileLogger.Close() }
}
