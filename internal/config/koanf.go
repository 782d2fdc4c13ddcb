package config

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	tomlparser "github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/smykla-skalski/ccbridge/internal/xdg"
	"github.com/smykla-skalski/ccbridge/pkg/config"
)

const (
	// EnvPrefix is the prefix of environment variables mapped onto config keys.
	EnvPrefix = "CCBRIDGE_"

	// EnvFileVar names the environment variable that points at the .env file.
	EnvFileVar = "CCBRIDGE_ENV_FILE"

	// FlagConfig is the flags key holding an explicit TOML config path.
	FlagConfig = "config"

	// FlagEnvFile is the flags key holding an explicit .env path.
	FlagEnvFile = "env-file"

	// FlagDebug raises the log level to info, FlagTrace to debug.
	FlagDebug = "debug"
	FlagTrace = "trace"
)

var (
	// ErrConfigNotFound is returned when an explicitly requested file is missing.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidPermissions is returned when config file has insecure permissions.
	ErrInvalidPermissions = errors.New("config file has insecure permissions")
)

// sections lists the top-level keys environment variables may address.
var sections = []string{"server", "session", "transcript", "log"}

// KoanfLoader handles configuration loading from multiple sources using koanf.
// Precedence order (highest to lowest):
// 1. CLI Flags
// 2. Environment Variables (CCBRIDGE_*)
// 3. .env file shared with the Command Center server
// 4. Global Config ($XDG_CONFIG_HOME/ccbridge/config.toml or --config)
// 5. Defaults
type KoanfLoader struct {
	k          *koanf.Koanf
	paths      xdg.PathResolver
	configPath string
	envPath    string
	opts       koanf.UnmarshalConf
}

// NewKoanfLoader creates a new KoanfLoader with the real XDG locations.
func NewKoanfLoader() *KoanfLoader {
	return NewKoanfLoaderWithResolver(xdg.DefaultResolver())
}

// NewKoanfLoaderWithResolver creates a new KoanfLoader with custom file
// locations (for testing).
func NewKoanfLoaderWithResolver(paths xdg.PathResolver) *KoanfLoader {
	return &KoanfLoader{
		k:     koanf.New("."),
		paths: paths,
		opts: koanf.UnmarshalConf{
			Tag:           "koanf",
			FlatPaths:     false,
			DecoderConfig: CustomDecoderConfig(),
		},
	}
}

// Load loads configuration from all sources with precedence and validates it.
// Defaults → Global TOML → .env → Env Vars → CLI Flags
func (l *KoanfLoader) Load(flags map[string]any) (*config.Config, error) {
	cfg, err := l.LoadWithoutValidation(flags)
	if err != nil {
		return nil, err
	}

	if err := NewValidator().validateLoaded(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return cfg, nil
}

// LoadWithoutValidation loads configuration without running validation.
func (l *KoanfLoader) LoadWithoutValidation(flags map[string]any) (*config.Config, error) {
	// Reset koanf instance for fresh load
	l.k = koanf.New(".")
	l.configPath = ""
	l.envPath = ""

	// 1. Defaults
	if err := l.k.Load(confmap.Provider(defaultsToMap(), "."), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load defaults")
	}

	// 2. Global TOML config
	configPath, explicit := stringFlag(flags, FlagConfig), true
	if configPath == "" {
		configPath, explicit = l.paths.GlobalConfigFile(), false
	}

	if err := l.loadFile(configPath, explicit, tomlparser.Parser()); err != nil {
		return nil, errors.Wrap(err, "failed to load global config")
	}

	// 3. .env file
	envPath, explicit := l.resolveEnvFile(flags)
	if err := l.loadFile(envPath, explicit, NewDotenvParser()); err != nil {
		return nil, errors.Wrap(err, "failed to load .env file")
	}

	// 4. Environment variables: CCBRIDGE_*
	envOpt := env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: l.envTransform,
	}

	if err := l.k.Load(env.Provider(".", envOpt), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load env vars")
	}

	// 5. CLI flags (highest priority)
	if flagConfig := l.flagsToConfig(flags); len(flagConfig) > 0 {
		if err := l.k.Load(confmap.Provider(flagConfig, "."), nil); err != nil {
			return nil, errors.Wrap(err, "failed to load flags")
		}
	}

	var cfg config.Config
	if err := l.k.UnmarshalWithConf("", &cfg, l.opts); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	return &cfg, nil
}

// ConfigFilePath returns the TOML file read by the last Load, or "".
func (l *KoanfLoader) ConfigFilePath() string {
	return l.configPath
}

// EnvFilePath returns the .env file read by the last Load, or "".
func (l *KoanfLoader) EnvFilePath() string {
	return l.envPath
}

// EnvFileCandidates returns the .env locations checked when no explicit path
// is given, in priority order.
func (l *KoanfLoader) EnvFileCandidates() []string {
	candidates := []string{l.paths.EnvFile()}

	if exe := l.paths.ExecutableEnvFile(); exe != "" {
		candidates = append(candidates, exe)
	}

	return candidates
}

func (l *KoanfLoader) resolveEnvFile(flags map[string]any) (string, bool) {
	if path := stringFlag(flags, FlagEnvFile); path != "" {
		return path, true
	}

	if path := os.Getenv(EnvFileVar); path != "" {
		return path, true
	}

	return xdg.FirstExisting(l.EnvFileCandidates()...), false
}

// loadFile loads one file with security checks. A missing file is an error
// only when its path was requested explicitly.
func (l *KoanfLoader) loadFile(path string, explicit bool, parser koanf.Parser) error {
	if path == "" {
		return nil
	}

	path = xdg.ExpandPathSilent(path)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if explicit {
				return errors.Wrapf(ErrConfigNotFound, "%s", path)
			}

			return nil
		}

		return errors.Wrapf(err, "failed to stat %s", path)
	}

	// Security check: reject world-writable files
	if info.Mode().Perm()&0o002 != 0 {
		return errors.Wrapf(
			ErrInvalidPermissions,
			"%s is world-writable (mode: %s)",
			path,
			info.Mode().Perm(),
		)
	}

	if err := l.k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, "failed to parse %s", path)
	}

	if _, ok := parser.(*DotenvParser); ok {
		l.envPath = path
	} else {
		l.configPath = path
	}

	return nil
}

// envTransform transforms environment variable names to config paths.
// CCBRIDGE_SERVER_AUTH_TOKEN → server.auth_token
func (*KoanfLoader) envTransform(key, value string) (string, any) {
	return envKeyToPath(key), value
}

// envKeyToPath maps a CCBRIDGE_ variable onto a config path. Only the first
// underscore separates the section, so multi-word keys keep theirs. Returns ""
// for variables that address no known section.
func envKeyToPath(key string) string {
	if !strings.HasPrefix(key, EnvPrefix) {
		return ""
	}

	section, rest, found := strings.Cut(strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), "_")
	if !found || rest == "" {
		return ""
	}

	for _, s := range sections {
		if s == section {
			return section + "." + rest
		}
	}

	return ""
}

// flagsToConfig converts CLI flags to a configuration map.
func (*KoanfLoader) flagsToConfig(flags map[string]any) map[string]any {
	result := make(map[string]any)

	debugOn, _ := flags[FlagDebug].(bool)
	traceOn, _ := flags[FlagTrace].(bool)

	switch {
	case traceOn:
		ensureMapKey(result, "log")["level"] = "debug"
	case debugOn:
		ensureMapKey(result, "log")["level"] = "info"
	}

	if strVal, ok := flags["log-file"].(string); ok && strVal != "" {
		ensureMapKey(result, "log")["file"] = strVal
	}

	return result
}

// ensureMapKey ensures a key exists as a map and returns it.
func ensureMapKey(cfg map[string]any, key string) map[string]any {
	if _, ok := cfg[key]; !ok {
		cfg[key] = make(map[string]any)
	}

	result, _ := cfg[key].(map[string]any)

	return result
}

func stringFlag(flags map[string]any, key string) string {
	v, _ := flags[key].(string)

	return v
}
