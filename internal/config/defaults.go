package config

import "strings"

const (
	defaultAppEnv           = "dev"
	defaultAppLogLevel      = "info"
	defaultAppHTTPAddr      = ":9992"
	defaultAppLogMaxSizeMB  = 25
	defaultAppLogMaxBackups = 10
	defaultAppLogMaxAgeDays = 14
	defaultSourceEndpoint   = "https://irr-worker.irr-calculation.workers.dev?type=india-fact-sheet"
	defaultSourceTimeout    = 15
	defaultSourceUserAgent  = "factsheet/1.0"
	defaultFocusKey         = "India"
	defaultWorkers          = 4
	defaultRenderOutput     = "out/factsheet.html"
	defaultRenderWidth      = 960
	defaultRenderPageTitle  = "India Fact Sheet"
	defaultExportOutput     = "out/factsheet.xlsx"
)

var (
	defaultCountries           = []string{"India", "China", "United States", "Brazil", "Japan"}
	defaultAnnualFallbackYears = []string{"2000", "2005", "2010", "2015", "2020", "2024", "2025", "2030"}
	defaultGrowthFallbackYears = []string{"2021", "2022", "2023", "2024", "2025"}
	defaultPriorityYears       = []string{"2025", "2024"}
)

// Default returns a config with every default applied, as if loaded from an
// empty file.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults(nil)
	return &cfg
}

func (c *Config) applyDefaults(keys keySet) {
	c.App.applyDefaults(keys)
	c.Source.applyDefaults(keys)
	c.Normalize.applyDefaults(keys)
	c.Render.applyDefaults(keys)
	c.Export.applyDefaults(keys)
}

func (a *AppConfig) applyDefaults(keys keySet) {
	if a == nil {
		return
	}
	applyFieldDefaults(keys,
		stringFieldDefault("app.env", &a.Env, defaultAppEnv),
		stringFieldDefault("app.log_level", &a.LogLevel, defaultAppLogLevel),
		stringFieldDefault("app.http_addr", &a.HTTPAddr, defaultAppHTTPAddr),
		intFieldDefault("app.log_max_size_mb", &a.LogMaxSizeMB, defaultAppLogMaxSizeMB),
		intFieldDefault("app.log_max_backups", &a.LogMaxBackups, defaultAppLogMaxBackups),
		intFieldDefault("app.log_max_age_days", &a.LogMaxAgeDays, defaultAppLogMaxAgeDays),
	)
}

func (s *SourceConfig) applyDefaults(keys keySet) {
	if s == nil {
		return
	}
	applyFieldDefaults(keys,
		stringFieldDefault("source.endpoint", &s.Endpoint, defaultSourceEndpoint),
		intFieldDefault("source.timeout_seconds", &s.TimeoutSeconds, defaultSourceTimeout),
		stringFieldDefault("source.user_agent", &s.UserAgent, defaultSourceUserAgent),
		boolFieldDefault("source.validate_schema", &s.ValidateSchema, true),
	)
}

func (n *NormalizeConfig) applyDefaults(keys keySet) {
	if n == nil {
		return
	}
	applyFieldDefaults(keys,
		stringFieldDefault("normalize.focus_key", &n.FocusKey, defaultFocusKey),
		sliceFieldDefault("normalize.countries", &n.Countries, defaultCountries),
		sliceFieldDefault("normalize.annual_fallback_years", &n.AnnualFallbackYears, defaultAnnualFallbackYears),
		sliceFieldDefault("normalize.growth_fallback_years", &n.GrowthFallbackYears, defaultGrowthFallbackYears),
		sliceFieldDefault("normalize.priority_years", &n.PriorityYears, defaultPriorityYears),
		intFieldDefault("normalize.workers", &n.Workers, defaultWorkers),
	)
	n.Countries = trimList(n.Countries)
	n.AnnualFallbackYears = trimList(n.AnnualFallbackYears)
	n.GrowthFallbackYears = trimList(n.GrowthFallbackYears)
	n.PriorityYears = trimList(n.PriorityYears)
}

func (r *RenderConfig) applyDefaults(keys keySet) {
	if r == nil {
		return
	}
	applyFieldDefaults(keys,
		stringFieldDefault("render.output_path", &r.OutputPath, defaultRenderOutput),
		intFieldDefault("render.width_px", &r.WidthPx, defaultRenderWidth),
		stringFieldDefault("render.page_title", &r.PageTitle, defaultRenderPageTitle),
	)
}

func (e *ExportConfig) applyDefaults(keys keySet) {
	if e == nil {
		return
	}
	applyFieldDefaults(keys,
		stringFieldDefault("export.output_path", &e.OutputPath, defaultExportOutput),
	)
}

func applyFieldDefaults(keys keySet, defs ...fieldDefault) {
	for _, def := range defs {
		if def.apply == nil {
			continue
		}
		if def.key != "" && keys.isSet(def.key) {
			continue
		}
		if def.need != nil && !def.need() {
			continue
		}
		def.apply()
	}
}

func stringFieldDefault(key string, target *string, def string) fieldDefault {
	return fieldDefault{
		key: key,
		need: func() bool {
			return target != nil && strings.TrimSpace(*target) == ""
		},
		apply: func() {
			if target != nil {
				*target = def
			}
		},
	}
}

func intFieldDefault(key string, target *int, def int) fieldDefault {
	return fieldDefault{
		key:  key,
		need: func() bool { return target != nil && *target <= 0 },
		apply: func() {
			if target != nil {
				*target = def
			}
		},
	}
}

func boolFieldDefault(key string, target *bool, def bool) fieldDefault {
	return fieldDefault{
		key:  key,
		need: func() bool { return target != nil },
		apply: func() {
			if target != nil {
				*target = def
			}
		},
	}
}

func sliceFieldDefault(key string, target *[]string, def []string) fieldDefault {
	return fieldDefault{
		key:  key,
		need: func() bool { return target != nil && len(*target) == 0 },
		apply: func() {
			if target != nil {
				*target = append([]string(nil), def...)
			}
		},
	}
}

func trimList(in []string) []string {
	if len(in) == 0 {
		return in
	}
	out := make([]string, 0, len(in))
	for _, item := range in {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
