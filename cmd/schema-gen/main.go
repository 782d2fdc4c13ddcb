// Command schema-gen writes the config JSON Schema for editor completion.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/smykla-skalski/ccbridge/internal/schema"
)

const filePerms = 0o644

func main() {
	outDir := "schema"
	if len(os.Args) > 1 {
		outDir = os.Args[1]
	}

	outPath, err := write(outDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(outPath)
}

func write(outDir string) (string, error) {
	data, err := schema.GenerateJSON(true)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}

	outPath := filepath.Clean(filepath.Join(outDir, schema.Filename))

	//nolint:gosec // dev tool, outDir from CLI arg
	if err := os.WriteFile(outPath, data, filePerms); err != nil {
		return "", err
	}

	return outPath, nil
}
