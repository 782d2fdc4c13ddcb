package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	internalconfig "github.com/smykla-skalski/ccbridge/internal/config"
	"github.com/smykla-skalski/ccbridge/pkg/config"
)

// Output formats for debug config.
const (
	formatTOML = "toml"
	formatYAML = "yaml"
	formatJSON = "json"
)

// maskedToken replaces a configured auth token in debug output.
const maskedToken = "********"

// ErrUnknownFormat is returned for an invalid --format value.
var ErrUnknownFormat = errors.New("unknown output format")

var configFormat string

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Debug ccbridge configuration",
	Long: `Debug ccbridge configuration and hook internals.

Subcommands:
  config  Show the effective configuration
  schema  Generate JSON Schema for the configuration
  mine    Show the tool call a transcript would report`,
}

var debugConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration after merging defaults, the config file,
the .env file, environment variables and flags. The auth token is masked.

Examples:
  ccbridge debug config                 # TOML
  ccbridge debug config --format json   # JSON
  ccbridge debug config --env-file ./.env`,
	Args: cobra.NoArgs,
	RunE: runDebugConfig,
}

func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.AddCommand(debugConfigCmd)
	debugCmd.AddCommand(debugSchemaCmd)
	debugCmd.AddCommand(debugMineCmd)

	debugConfigCmd.Flags().StringVarP(
		&configFormat,
		"format",
		"f",
		formatTOML,
		"Output format (toml, yaml, json)",
	)
}

func runDebugConfig(cmd *cobra.Command, _ []string) error {
	loader := internalconfig.NewKoanfLoader()

	cfg, err := loader.Load(buildFlagsMap())
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	data, err := marshalConfig(maskConfig(cfg), configFormat)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if configFormat != formatJSON {
		writeSourceComment(out, "config file", loader.ConfigFilePath())
		writeSourceComment(out, "env file", loader.EnvFilePath())
	}

	_, err = out.Write(data)

	return errors.Wrap(err, "failed to write configuration")
}

func writeSourceComment(out io.Writer, label, path string) {
	if path == "" {
		path = "(none)"
	}

	fmt.Fprintf(out, "# %s: %s\n", label, path)
}

// maskConfig returns a copy of cfg with the auth token hidden.
func maskConfig(cfg *config.Config) *config.Config {
	masked := *cfg

	server := *cfg.GetServer()
	if server.AuthToken != "" {
		server.AuthToken = maskedToken
	}

	masked.Server = &server

	return &masked
}

func marshalConfig(cfg *config.Config, format string) ([]byte, error) {
	switch format {
	case formatTOML:
		data, err := toml.Marshal(cfg)

		return data, errors.Wrap(err, "failed to encode TOML")

	case formatYAML:
		var buf bytes.Buffer

		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)

		if err := enc.Encode(cfg); err != nil {
			return nil, errors.Wrap(err, "failed to encode YAML")
		}

		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(err, "failed to encode YAML")
		}

		return buf.Bytes(), nil

	case formatJSON:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode JSON")
		}

		return append(data, '\n'), nil

	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q (want toml, yaml or json)", format)
	}
}
