// Package transcript recovers the most recent tool call from a Claude Code
// JSONL transcript.
package transcript

import (
	"bytes"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/ccbridge/internal/xdg"
	"github.com/smykla-skalski/ccbridge/pkg/config"
	"github.com/smykla-skalski/ccbridge/pkg/hook"
	"github.com/smykla-skalski/ccbridge/pkg/logger"
)

// ErrNotRegularFile is returned when the transcript path is not a regular file.
var ErrNotRegularFile = errors.New("transcript is not a regular file")

// Miner searches the tail of a transcript for the latest tool_use block.
type Miner struct {
	window       int
	maxLineBytes int
	logger       logger.Logger
}

// MinerOption configures the Miner.
type MinerOption func(*Miner)

// WithLogger sets the logger.
func WithLogger(log logger.Logger) MinerOption {
	return func(m *Miner) {
		if log != nil {
			m.logger = log
		}
	}
}

// NewMiner creates a Miner from the transcript config section.
func NewMiner(cfg *config.TranscriptConfig, opts ...MinerOption) *Miner {
	m := &Miner{
		window:       cfg.GetWindow(),
		maxLineBytes: cfg.GetMaxLineBytes(),
		logger:       logger.NewNoOpLogger(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Mine returns the most recent tool invocation in the transcript at path, or
// an empty invocation when none is found or the file cannot be read.
func (m *Miner) Mine(path string) hook.ToolInvocation {
	inv, err := m.MineFile(path)
	if err != nil {
		m.logger.Debug("transcript unreadable", "path", path, "error", err)

		return hook.ToolInvocation{}
	}

	return inv
}

// MineFile is Mine with the read error exposed.
func (m *Miner) MineFile(path string) (hook.ToolInvocation, error) {
	f, err := os.Open(xdg.ExpandPathSilent(path))
	if err != nil {
		return hook.ToolInvocation{}, errors.Wrap(err, "failed to open transcript")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return hook.ToolInvocation{}, errors.Wrap(err, "failed to stat transcript")
	}

	if !info.Mode().IsRegular() {
		return hook.ToolInvocation{}, errors.Wrapf(ErrNotRegularFile, "%s", path)
	}

	var (
		found   hook.ToolInvocation
		skipped int
	)

	err = scanBackward(f, info.Size(), m.window, m.maxLineBytes, func(line []byte) error {
		if line == nil {
			skipped++

			return nil
		}

		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			return nil
		}

		entry, parseErr := ParseEntry(line)
		if parseErr != nil {
			skipped++

			return nil
		}

		if inv, ok := entry.LastToolUse(); ok {
			found = inv

			return errStop
		}

		return nil
	})
	if err != nil {
		return hook.ToolInvocation{}, err
	}

	if skipped > 0 {
		m.logger.Debug("skipped transcript lines", "path", path, "count", skipped)
	}

	return found, nil
}
