package config

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/doclinks/internal/foundation/errors"
)

// Validate checks a normalized, defaulted configuration.
func Validate(cfg *Config) error {
	v := &configurationValidator{config: cfg}
	return v.validate()
}

type configurationValidator struct {
	config *Config
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateOutput(); err != nil {
		return err
	}
	if err := cv.validateAccess(); err != nil {
		return err
	}
	return cv.validateMetrics()
}

func (cv *configurationValidator) validateOutput() error {
	ext := cv.config.Output.FileExtension
	if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
		return errors.ValidationError(fmt.Sprintf("invalid output.fileExtension %q (must start with a dot)", ext)).Build()
	}
	if strings.ContainsAny(ext, `/\`) {
		return errors.ValidationError(fmt.Sprintf("invalid output.fileExtension %q (must not contain path separators)", ext)).Build()
	}
	if cv.config.Output.GlobalName == "" {
		return errors.ValidationError("output.globalName must not be empty").Build()
	}
	return nil
}

func (cv *configurationValidator) validateAccess() error {
	seen := map[AccessLevel]bool{}
	for _, a := range cv.config.Opts.Access {
		if seen[a] {
			return errors.ValidationError(fmt.Sprintf("duplicate opts.access entry %q", a)).Build()
		}
		seen[a] = true
	}
	if seen[AccessAll] && len(seen) > 1 {
		return errors.ValidationError(`opts.access "all" cannot be combined with other levels`).Build()
	}
	return nil
}

func (cv *configurationValidator) validateMetrics() error {
	if cv.config.Metrics.Textfile != "" && !cv.config.Metrics.Enabled {
		return errors.ValidationError("metrics.textfile requires metrics.enabled").Build()
	}
	return nil
}
