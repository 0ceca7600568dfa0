package config

import (
	"strings"

	"git.home.luguber.info/inful/doclinks/internal/foundation/errors"
)

// Normalize canonicalises enumerations in place: access levels, log level and
// format. Unknown access levels are rejected; the logging enums fall back to
// their defaults.
func Normalize(cfg *Config) error {
	for i, raw := range cfg.Opts.Access {
		level, err := NormalizeAccessLevel(string(raw))
		if err != nil {
			return errors.WrapError(err, errors.CategoryValidation, "invalid opts.access entry").
				WithContext("value", string(raw)).
				Build()
		}
		cfg.Opts.Access[i] = level
	}
	if cfg.Logging.Level != "" {
		cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	}
	if cfg.Logging.Format != "" {
		cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
	}
	cfg.Output.FileExtension = strings.TrimSpace(cfg.Output.FileExtension)
	cfg.Output.GlobalName = strings.TrimSpace(cfg.Output.GlobalName)
	return nil
}
