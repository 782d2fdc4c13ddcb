package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/ccbridge/internal/control"
	"github.com/smykla-skalski/ccbridge/internal/transcript"
)

var debugMineCmd = &cobra.Command{
	Use:   "mine <transcript>",
	Short: "Show the tool call a transcript would report",
	Long: `Search a Claude Code transcript for the most recent tool call and print the
body 'ccbridge hook notify' would post for it. Prints {} when none is found.

Examples:
  ccbridge debug mine ~/.claude/projects/app/5f1c.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: runDebugMine,
}

func runDebugMine(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	inv, err := transcript.NewMiner(cfg.GetTranscript()).MineFile(args[0])
	if err != nil {
		return err
	}

	body, err := control.NotifyPayload(inv)
	if err != nil {
		return errors.Wrap(err, "failed to encode tool call")
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(body))

	return errors.Wrap(err, "failed to write tool call")
}
