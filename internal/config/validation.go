package config

import (
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/ccbridge/pkg/config"
)

const maxPort = 65535

var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidPort is returned when the port is not a decimal in 1..65535.
	ErrInvalidPort = errors.New("invalid port")

	// ErrInvalidTimeout is returned when a timeout is not positive.
	ErrInvalidTimeout = errors.New("timeout must be positive")

	// ErrInvalidLength is returned when a size or count value is invalid.
	ErrInvalidLength = errors.New("invalid length value")

	// ErrEmptyValue is returned when a required value is empty.
	ErrEmptyValue = errors.New("empty value not allowed")
)

// Validator validates configuration semantics.
type Validator struct{}

// NewValidator creates a new Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate validates the entire configuration.
// Returns an error describing all validation failures.
func (v *Validator) Validate(cfg *config.Config) error {
	if cfg == nil {
		return errors.WithMessage(ErrInvalidConfig, "config is nil")
	}

	var validationErrors []error

	validationErrors = append(validationErrors, v.validateServer(cfg.Server)...)
	validationErrors = append(validationErrors, v.validateSession(cfg.Session)...)
	validationErrors = append(validationErrors, v.validateTranscript(cfg.Transcript)...)

	if len(validationErrors) > 0 {
		return errors.WithSecondaryError(
			errors.Wrapf(
				ErrInvalidConfig,
				"validation failed with %d error(s)",
				len(validationErrors),
			),
			combineErrors(validationErrors),
		)
	}

	return nil
}

func (*Validator) validateServer(s *config.ServerConfig) []error {
	if s == nil {
		return nil
	}

	var errs []error

	if s.Port != "" {
		port, err := strconv.Atoi(s.Port)
		if err != nil || port < 1 || port > maxPort {
			errs = append(errs, errors.Wrapf(ErrInvalidPort, "server.port %q", s.Port))
		}
	}

	if s.NotifyTimeout < 0 {
		errs = append(errs, errors.Wrap(ErrInvalidTimeout, "server.notify_timeout"))
	}

	if s.OverrideTimeout < 0 {
		errs = append(errs, errors.Wrap(ErrInvalidTimeout, "server.override_timeout"))
	}

	return errs
}

func (*Validator) validateSession(s *config.SessionConfig) []error {
	if s == nil {
		return nil
	}

	var errs []error

	if s.Timeout < 0 {
		errs = append(errs, errors.Wrap(ErrInvalidTimeout, "session.timeout"))
	}

	return errs
}

func (*Validator) validateTranscript(t *config.TranscriptConfig) []error {
	if t == nil {
		return nil
	}

	var errs []error

	if t.Window < 0 {
		errs = append(errs, errors.Wrapf(ErrInvalidLength, "transcript.window %d", t.Window))
	}

	if t.MaxLineBytes < 0 {
		errs = append(
			errs,
			errors.Wrapf(ErrInvalidLength, "transcript.max_line_bytes %d", t.MaxLineBytes),
		)
	}

	return errs
}

// validateLoaded applies the checks that only make sense once defaults are
// merged in, where a zero value means the user explicitly cleared the key.
func (v *Validator) validateLoaded(cfg *config.Config) error {
	if err := v.Validate(cfg); err != nil {
		return err
	}

	var errs []error

	if cfg.GetSession().Prefix == "" {
		errs = append(errs, errors.Wrap(ErrEmptyValue, "session.prefix"))
	}

	if cfg.GetServer().Port == "" {
		errs = append(errs, errors.Wrap(ErrEmptyValue, "server.port"))
	}

	if cfg.GetServer().NotifyTimeout == 0 || cfg.GetServer().OverrideTimeout == 0 ||
		cfg.GetSession().Timeout == 0 {
		errs = append(errs, ErrInvalidTimeout)
	}

	if cfg.GetTranscript().Window == 0 || cfg.GetTranscript().MaxLineBytes == 0 {
		errs = append(errs, errors.Wrap(ErrInvalidLength, "transcript values must be at least 1"))
	}

	if len(errs) > 0 {
		return errors.WithSecondaryError(
			errors.Wrapf(ErrInvalidConfig, "validation failed with %d error(s)", len(errs)),
			combineErrors(errs),
		)
	}

	return nil
}

// combineErrors combines multiple errors into one.
func combineErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	return errors.Join(errs...)
}
