package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/ccbridge/internal/control"
	"github.com/smykla-skalski/ccbridge/internal/crashdump"
	"github.com/smykla-skalski/ccbridge/internal/dispatcher"
	"github.com/smykla-skalski/ccbridge/internal/doctor/settings"
	"github.com/smykla-skalski/ccbridge/internal/session"
	"github.com/smykla-skalski/ccbridge/internal/transcript"
	"github.com/smykla-skalski/ccbridge/pkg/config"
	"github.com/smykla-skalski/ccbridge/pkg/hook"
	"github.com/smykla-skalski/ccbridge/pkg/logger"
)

// hookRegistrations are the Claude settings entries that run the hooks.
var hookRegistrations = []settings.Registration{
	{Event: hook.Notification.String(), Command: "ccbridge hook notify", Timeout: 10},
	{Event: hook.PreToolUse.String(), Command: "ccbridge hook approve", Timeout: 10},
}

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Run a Claude Code hook",
	Long: `Run a Claude Code hook. Register these in ~/.claude/settings.json, or run
'ccbridge doctor --fix' to register them.`,
}

var hookNotifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Forward a permission notification to Command Center",
	Long: `Forward a permission notification to Command Center.

Reads the Notification hook payload from stdin, recovers the pending tool call
from the transcript and posts it to the control server. Never writes to stdout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runHook(cmd, hook.Notification)
	},
}

var hookApproveCmd = &cobra.Command{
	Use:     "approve",
	Aliases: []string{"pre-tool-use"},
	Short:   "Auto-approve tool calls while rocket mode is on",
	Long: `Auto-approve tool calls while rocket mode is on.

Asks the control server whether rocket mode is enabled for this session. Writes
an allow decision to stdout only when it is; otherwise writes nothing and Claude
Code falls back to its normal permission flow.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runHook(cmd, hook.PreToolUse)
	},
}

func init() {
	rootCmd.AddCommand(hookCmd)
	hookCmd.AddCommand(hookNotifyCmd)
	hookCmd.AddCommand(hookApproveCmd)
}

func runHook(cmd *cobra.Command, event hook.EventType) error {
	cfg, cfgErr := loadConfigOrDefaults()

	log, closeLog := newLogger(cfg)
	defer closeLog()

	if cfgErr != nil {
		log.Error("configuration unusable, using defaults", "error", cfgErr)
	}

	log = log.With("event", event)

	resolver := session.NewTmuxResolver(cfg.GetSession(), session.WithLogger(log))
	client := control.NewClient(
		cfg.GetServer(),
		control.WithLogger(log),
		control.WithUserAgent(userAgent()),
	)
	miner := transcript.NewMiner(cfg.GetTranscript(), transcript.WithLogger(log))

	d := dispatcher.NewDispatcher(
		dispatcher.NewNotifyHook(resolver, miner, client, log),
		dispatcher.NewApprovalGate(resolver, client, log),
		log,
	)

	err := d.Dispatch(cmd.Context(), event, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		log.Error("hook failed", "error", err)

		var panicErr *dispatcher.PanicError
		if errors.As(err, &panicErr) {
			writeCrashDump(log, panicErr, event, cfg)
		}
	}

	return err
}

// writeCrashDump records a panic under the state directory. Failures are only
// logged; the hook exit code already reports the crash.
func writeCrashDump(log logger.Logger, panicErr *dispatcher.PanicError, event hook.EventType, cfg *config.Config) {
	writer, err := crashdump.NewFilesystemWriter(crashdump.DefaultDumpDir())
	if err != nil {
		log.Error("crash dump unavailable", "error", err)

		return
	}

	info := crashdump.NewCollector(version).Collect(panicErr.Value, panicErr.Stack, event.String(), cfg)

	path, err := writer.Write(info)
	if err != nil {
		log.Error("crash dump failed", "error", err)

		return
	}

	log.Error("crash dump written", "path", path)

	if _, err := writer.Prune(crashdump.DefaultMaxDumps); err != nil {
		log.Debug("crash dump prune failed", "error", err)
	}
}
