package main

import (
	"os"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/ccbridge/internal/color"
	internalconfig "github.com/smykla-skalski/ccbridge/internal/config"
	"github.com/smykla-skalski/ccbridge/internal/control"
	"github.com/smykla-skalski/ccbridge/internal/doctor"
	configchecker "github.com/smykla-skalski/ccbridge/internal/doctor/checkers/config"
	hookchecker "github.com/smykla-skalski/ccbridge/internal/doctor/checkers/hook"
	logchecker "github.com/smykla-skalski/ccbridge/internal/doctor/checkers/log"
	serverchecker "github.com/smykla-skalski/ccbridge/internal/doctor/checkers/server"
	sessionchecker "github.com/smykla-skalski/ccbridge/internal/doctor/checkers/session"
	"github.com/smykla-skalski/ccbridge/internal/doctor/checkers/tools"
	"github.com/smykla-skalski/ccbridge/internal/doctor/fixers"
	"github.com/smykla-skalski/ccbridge/internal/doctor/reporters"
	"github.com/smykla-skalski/ccbridge/internal/session"
	"github.com/smykla-skalski/ccbridge/internal/xdg"
	"github.com/smykla-skalski/ccbridge/pkg/config"
	"github.com/smykla-skalski/ccbridge/pkg/logger"
)

// ErrUnknownCategory is returned for an invalid --category value.
var ErrUnknownCategory = errors.New("unknown category")

var (
	verboseFlag  bool
	fixFlag      bool
	categoryFlag []string
	settingsPath string
)

var allCategories = []doctor.Category{
	doctor.CategoryTools,
	doctor.CategorySession,
	doctor.CategoryConfig,
	doctor.CategoryServer,
	doctor.CategoryHook,
	doctor.CategoryLog,
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose ccbridge setup and configuration",
	Long: `Diagnose ccbridge setup and configuration issues.

Checks:
- tmux availability
- Command Center session detection
- Configuration and .env file
- Control server reachability
- Hook registration in Claude settings
- Hook log file

Examples:
  ccbridge doctor                        # Run all checks
  ccbridge doctor --verbose              # Run with detailed output
  ccbridge doctor --fix                  # Register missing hooks
  ccbridge doctor --category hook,server # Check specific categories`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().BoolVarP(
		&verboseFlag,
		"verbose",
		"v",
		false,
		"Enable verbose output with detailed context",
	)
	doctorCmd.Flags().BoolVar(
		&fixFlag,
		"fix",
		false,
		"Automatically fix issues without prompting",
	)
	doctorCmd.Flags().StringSliceVar(
		&categoryFlag,
		"category",
		[]string{},
		"Filter checks by category (tools, session, config, server, hook, log)",
	)
	doctorCmd.Flags().StringVar(
		&settingsPath,
		"settings",
		"",
		"Claude settings file to check (default: ~/.claude/settings.json)",
	)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	categories, err := parseCategories(categoryFlag)
	if err != nil {
		return err
	}

	// The config checkers report load errors themselves.
	cfg, _ := loadConfigOrDefaults()

	log, closeLog := newLogger(cfg)
	defer closeLog()

	log.Info("starting doctor command",
		"verbose", verboseFlag,
		"fix", fixFlag,
		"categories", categoryFlag,
	)

	registry := buildDoctorRegistry(cfg, log)
	out := cmd.OutOrStdout()
	runner := doctor.NewRunner(registry, selectReporter(cmd), out, log)

	return runner.Run(cmd.Context(), doctor.RunOptions{
		Verbose:    verboseFlag,
		AutoFix:    fixFlag,
		Categories: categories,
	})
}

func buildDoctorRegistry(cfg *config.Config, log logger.Logger) *doctor.Registry {
	registry := doctor.NewRegistry()
	flags := buildFlagsMap()
	newLoader := func() configchecker.Loader { return internalconfig.NewKoanfLoader() }

	settingsFile := settingsPath
	if settingsFile == "" {
		settingsFile = xdg.ClaudeSettingsFile()
	}

	client := control.NewClient(
		cfg.GetServer(),
		control.WithLogger(log),
		control.WithUserAgent(userAgent()),
	)

	registry.RegisterChecker(tools.NewTmuxChecker(cfg.GetSession().GetTmuxBin(), nil))
	registry.RegisterChecker(sessionchecker.NewChecker(
		session.NewTmuxResolver(cfg.GetSession(), session.WithLogger(log)),
		cfg.GetSession().GetPrefix(),
	))
	registry.RegisterChecker(configchecker.NewValidityChecker(newLoader, flags))
	registry.RegisterChecker(configchecker.NewEnvFileChecker(newLoader, flags))
	registry.RegisterChecker(serverchecker.NewChecker(client, cfg.GetServer().BaseURL()))

	for _, reg := range hookRegistrations {
		registry.RegisterChecker(hookchecker.NewRegistrationChecker(settingsFile, reg))
	}

	registry.RegisterChecker(logchecker.NewChecker(logFileFor(cfg)))

	registry.RegisterFixer(fixers.NewInstallHooksFixer(settingsFile, hookRegistrations))

	return registry
}

//nolint:ireturn // reporter chosen at runtime
func selectReporter(cmd *cobra.Command) doctor.Reporter {
	out := cmd.OutOrStdout()

	f, isFile := out.(*os.File)
	if !isFile || !color.Enabled(noColorFlag, f) {
		return reporters.NewSimpleReporter(out)
	}

	return reporters.NewTableReporter(out, color.NewTheme(true), color.Width(f))
}

func parseCategories(values []string) ([]doctor.Category, error) {
	var categories []doctor.Category

	for _, v := range values {
		cat := doctor.Category(strings.ToLower(strings.TrimSpace(v)))
		if cat == "" {
			continue
		}

		if !slices.Contains(allCategories, cat) {
			return nil, errors.Wrapf(ErrUnknownCategory, "%q", v)
		}

		categories = append(categories, cat)
	}

	return categories, nil
}
