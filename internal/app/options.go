package app

import (
	"factsheet/internal/config"
	"factsheet/internal/normalize"
)

// NormalizeOptions maps the normalize config section onto normalizer options.
func NormalizeOptions(cfg config.NormalizeConfig) normalize.Options {
	return normalize.Options{
		FocusKey:      cfg.FocusKey,
		Countries:     append([]string(nil), cfg.Countries...),
		AnnualYears:   append([]string(nil), cfg.AnnualFallbackYears...),
		GrowthYears:   append([]string(nil), cfg.GrowthFallbackYears...),
		PriorityYears: append([]string(nil), cfg.PriorityYears...),
	}
}
