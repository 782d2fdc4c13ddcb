package xdg

import "os"

// FirstExisting returns the first candidate that exists as a regular file.
// Empty candidates are skipped. Returns "" when none exist.
func FirstExisting(candidates ...string) string {
	for _, path := range candidates {
		if path != "" && fileExists(path) {
			return path
		}
	}

	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	return !info.IsDir()
}
