package crashdump

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/ccbridge/internal/xdg"
)

const (
	// FilePerm is the file permission for crash dump files.
	FilePerm fs.FileMode = 0o600

	// DirPerm is the directory permission for crash dump directories.
	DirPerm fs.FileMode = 0o700

	// FileExtension is the extension for crash dump files.
	FileExtension = ".json"

	// DefaultMaxDumps is how many dumps Prune keeps by default.
	DefaultMaxDumps = 10

	tempSuffix = ".tmp"
	dumpPrefix = "crash-"
)

var (
	// ErrWriteFailed is returned when writing a crash dump fails.
	ErrWriteFailed = errors.New("failed to write crash dump")

	// ErrInvalidDumpDir is returned when the dump directory is invalid.
	ErrInvalidDumpDir = errors.New("invalid dump directory")
)

// Writer writes crash dumps to storage.
type Writer interface {
	// Write writes a crash dump and returns the file path.
	Write(info *CrashInfo) (string, error)
}

// FilesystemWriter writes crash dumps as JSON files in one directory.
type FilesystemWriter struct {
	dumpDir string
}

// DefaultDumpDir returns StateDir()/crashes.
func DefaultDumpDir() string {
	return filepath.Join(xdg.StateDir(), "crashes")
}

// NewFilesystemWriter creates a new filesystem-based writer.
func NewFilesystemWriter(dumpDir string) (*FilesystemWriter, error) {
	if dumpDir == "" {
		return nil, errors.Wrap(ErrInvalidDumpDir, "dump directory cannot be empty")
	}

	expandedDir, err := xdg.ExpandPath(dumpDir)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidDumpDir, err.Error())
	}

	return &FilesystemWriter{dumpDir: expandedDir}, nil
}

// Write writes info atomically and returns the file path.
func (w *FilesystemWriter) Write(info *CrashInfo) (string, error) {
	if info == nil {
		return "", errors.Wrap(ErrWriteFailed, "crash info is nil")
	}

	if err := os.MkdirAll(w.dumpDir, DirPerm); err != nil {
		return "", errors.Wrap(ErrInvalidDumpDir, err.Error())
	}

	filePath := filepath.Join(w.dumpDir, info.ID+FileExtension)
	tempPath := filePath + tempSuffix

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return "", errors.Wrap(ErrWriteFailed, "failed to marshal crash info")
	}

	if err := os.WriteFile(tempPath, data, FilePerm); err != nil {
		return "", errors.Wrap(ErrWriteFailed, err.Error())
	}

	if err := os.Rename(tempPath, filePath); err != nil {
		_ = os.Remove(tempPath)

		return "", errors.Wrap(ErrWriteFailed, err.Error())
	}

	return filePath, nil
}

// Prune keeps the newest maxDumps dumps and removes the rest. Dump names sort
// chronologically, so the oldest come first. Returns the number removed.
func (w *FilesystemWriter) Prune(maxDumps int) (int, error) {
	entries, err := os.ReadDir(w.dumpDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}

		return 0, errors.Wrap(err, "failed to read dump directory")
	}

	var names []string

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, dumpPrefix) ||
			!strings.HasSuffix(name, FileExtension) {
			continue
		}

		names = append(names, name)
	}

	slices.Sort(names)

	removed := 0

	for i := 0; i < len(names)-maxDumps; i++ {
		if err := os.Remove(filepath.Join(w.dumpDir, names[i])); err != nil {
			continue
		}

		removed++
	}

	return removed, nil
}

// Dir returns the dump directory path.
func (w *FilesystemWriter) Dir() string {
	return w.dumpDir
}
