// Package fixers provides auto-fix implementations for health check issues.
package fixers

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
)

const (
	defaultDirPermissions  = 0o700
	defaultFilePermissions = 0o600
)

// AtomicWriteFile writes data to a file atomically using a temp file and rename.
// It creates a timestamped backup of the original file if requested and the
// file exists. The existing file's permissions are kept; new files get 0600.
func AtomicWriteFile(path string, data []byte, createBackup bool, now func() time.Time) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, defaultDirPermissions); err != nil {
		return errors.Wrap(err, "failed to create directory")
	}

	perm := os.FileMode(defaultFilePermissions)

	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()

		if createBackup {
			backupPath := fmt.Sprintf("%s.backup.%d", path, now().Unix())
			if err := copyFile(path, backupPath, perm); err != nil {
				return errors.Wrap(err, "failed to create backup")
			}
		}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}

	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)

		return errors.Wrap(err, "failed to write temp file")
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)

		return errors.Wrap(err, "failed to close temp file")
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)

		return errors.Wrap(err, "failed to set permissions")
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)

		return errors.Wrap(err, "failed to rename temp file")
	}

	return nil
}

// copyFile copies src file to dst with the given permissions
func copyFile(src, dst string, perm os.FileMode) error {
	data, err := os.ReadFile(src) //nolint:gosec // src is controlled by caller
	if err != nil {
		return errors.Wrap(err, "failed to read source file")
	}

	if err := os.WriteFile(dst, data, perm); err != nil {
		return errors.Wrap(err, "failed to write destination file")
	}

	return nil
}
