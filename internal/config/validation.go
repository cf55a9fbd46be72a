package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validate runs basic checks after defaults are applied.
func validate(c *Config) error {
	if err := c.App.validate(); err != nil {
		return err
	}
	if err := c.Source.validate(); err != nil {
		return err
	}
	if err := c.Normalize.validate(); err != nil {
		return err
	}
	if c.Render.WidthPx < 320 {
		return fmt.Errorf("render.width_px must be >= 320")
	}
	return nil
}

func (a *AppConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(a.LogLevel)) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("app.log_level %q is not one of debug, info, warn, error", a.LogLevel)
	}
	if a.LogMaxSizeMB < 0 || a.LogMaxBackups < 0 || a.LogMaxAgeDays < 0 {
		return fmt.Errorf("app.log_max_* must be >= 0")
	}
	return nil
}

func (s *SourceConfig) validate() error {
	u, err := url.Parse(strings.TrimSpace(s.Endpoint))
	if err != nil {
		return fmt.Errorf("source.endpoint invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("source.endpoint must be http(s), got %q", s.Endpoint)
	}
	if s.TimeoutSeconds <= 0 {
		return fmt.Errorf("source.timeout_seconds must be > 0")
	}
	return nil
}

func (n *NormalizeConfig) validate() error {
	if strings.TrimSpace(n.FocusKey) == "" {
		return fmt.Errorf("normalize.focus_key cannot be empty")
	}
	if len(n.Countries) == 0 {
		return fmt.Errorf("normalize.countries requires at least one country")
	}
	if err := validateYearList("normalize.annual_fallback_years", n.AnnualFallbackYears, 2); err != nil {
		return err
	}
	if err := validateYearList("normalize.growth_fallback_years", n.GrowthFallbackYears, 2); err != nil {
		return err
	}
	if err := validateYearList("normalize.priority_years", n.PriorityYears, 1); err != nil {
		return err
	}
	if n.Workers <= 0 {
		return fmt.Errorf("normalize.workers must be > 0")
	}
	return nil
}

func validateYearList(key string, years []string, min int) error {
	if len(years) < min {
		return fmt.Errorf("%s requires at least %d entries", key, min)
	}
	seen := make(map[string]struct{}, len(years))
	for _, y := range years {
		if _, dup := seen[y]; dup {
			return fmt.Errorf("%s contains duplicate year %s", key, y)
		}
		seen[y] = struct{}{}
	}
	return nil
}
