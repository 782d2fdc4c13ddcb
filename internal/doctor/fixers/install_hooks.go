package fixers

import (
	"context"
	"os"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/ccbridge/internal/doctor/settings"
)

// InstallHooksID identifies the hook registration fixer.
const InstallHooksID = "install_hooks"

// InstallHooksFixer registers the ccbridge hooks in Claude settings.
type InstallHooksFixer struct {
	settingsPath  string
	registrations []settings.Registration
	now           func() time.Time
}

// NewInstallHooksFixer creates a new InstallHooksFixer.
func NewInstallHooksFixer(settingsPath string, regs []settings.Registration) *InstallHooksFixer {
	return &InstallHooksFixer{
		settingsPath:  settingsPath,
		registrations: regs,
		now:           time.Now,
	}
}

// ID returns the fixer identifier.
func (*InstallHooksFixer) ID() string {
	return InstallHooksID
}

// Description returns a human-readable description.
func (*InstallHooksFixer) Description() string {
	return "Register ccbridge hooks in Claude settings"
}

// Fix adds the missing registrations to the settings file, backing it up first.
func (f *InstallHooksFixer) Fix(_ context.Context) error {
	data, err := os.ReadFile(f.settingsPath)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to read settings")
	}

	updated, changed, err := settings.AddRegistrations(data, f.registrations)
	if err != nil {
		return errors.Wrap(err, "failed to update settings")
	}

	if !changed {
		return nil
	}

	if err := AtomicWriteFile(f.settingsPath, updated, true, f.now); err != nil {
		return errors.Wrap(err, "failed to write settings file")
	}

	return nil
}
