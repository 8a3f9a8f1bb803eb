package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
)

// Validate checks the configuration for structural errors.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("backend.url", c.Backend.URL, validBackendURL),
		criterio.Run("cache.max_age", c.Cache.MaxAge, nonNegativeDuration),
		c.validateIgnorePatterns(),
	)
}

// validBackendURL requires an absolute http(s) URL when set. An empty URL
// is allowed here; commands that need the backend enforce presence.
func validBackendURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q (want http or https)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

func nonNegativeDuration(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

// validateIgnorePatterns checks every sources.ignore glob compiles.
func (c *Config) validateIgnorePatterns() error {
	var errs criterio.FieldErrorsBuilder
	for i, pattern := range c.Sources.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			errs = errs.Append(fmt.Sprintf("sources.ignore[%d]", i), fmt.Errorf("invalid glob pattern %q", pattern))
		}
	}
	return errs.ToError()
}
