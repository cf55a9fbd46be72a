package config

import "strings"

// Config is the factsheet's main configuration.
type Config struct {
	App       AppConfig       `toml:"app"`
	Source    SourceConfig    `toml:"source"`
	Normalize NormalizeConfig `toml:"normalize"`
	Render    RenderConfig    `toml:"render"`
	Export    ExportConfig    `toml:"export"`

	// Path is the file the config was loaded from; empty for pure defaults.
	Path string `toml:"-"`
}

type AppConfig struct {
	Env           string `toml:"env"`
	LogLevel      string `toml:"log_level"`
	HTTPAddr      string `toml:"http_addr"`
	LogPath       string `toml:"log_path"`
	LogMaxSizeMB  int    `toml:"log_max_size_mb"`
	LogMaxBackups int    `toml:"log_max_backups"`
	LogMaxAgeDays int    `toml:"log_max_age_days"`
	WatchConfig   bool   `toml:"watch_config"`
}

// SourceConfig describes the factsheet API endpoint.
type SourceConfig struct {
	Endpoint       string `toml:"endpoint"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	UserAgent      string `toml:"user_agent"`
	ValidateSchema bool   `toml:"validate_schema"`
}

// NormalizeConfig holds the values injected into the normalizers. Priority
// years are ordered most recent first.
type NormalizeConfig struct {
	FocusKey            string   `toml:"focus_key"`
	Countries           []string `toml:"countries"`
	AnnualFallbackYears []string `toml:"annual_fallback_years"`
	GrowthFallbackYears []string `toml:"growth_fallback_years"`
	PriorityYears       []string `toml:"priority_years"`
	Workers             int      `toml:"workers"`
}

type RenderConfig struct {
	OutputPath string `toml:"output_path"`
	PNGPath    string `toml:"png_path"`
	WidthPx    int    `toml:"width_px"`
	PageTitle  string `toml:"page_title"`
}

type ExportConfig struct {
	OutputPath string `toml:"output_path"`
}

type keySet map[string]struct{}

func (k keySet) mark(path string) {
	path = strings.ToLower(strings.TrimSpace(path))
	if path == "" {
		return
	}
	k[path] = struct{}{}
}

func (k keySet) isSet(path string) bool {
	if len(k) == 0 {
		return false
	}
	path = strings.ToLower(strings.TrimSpace(path))
	if path == "" {
		return false
	}
	_, ok := k[path]
	return ok
}

type fieldDefault struct {
	key   string
	need  func() bool
	apply func()
}
