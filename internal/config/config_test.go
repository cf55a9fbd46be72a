package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, validate(cfg))
	assert.Equal(t, "India", cfg.Normalize.FocusKey)
	assert.Equal(t, []string{"2025", "2024"}, cfg.Normalize.PriorityYears)
	assert.Equal(t, []string{"India", "China", "United States", "Brazil", "Japan"}, cfg.Normalize.Countries)
	assert.True(t, cfg.Source.ValidateSchema)
	assert.Equal(t, defaultSourceEndpoint, cfg.Source.Endpoint)
	assert.Empty(t, cfg.Path)
}

func TestLoadOverridesAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
app:
  log_level: debug
source:
  endpoint: http://localhost:8787/sheets
  validate_schema: false
normalize:
  priority_years: ["2026", "2025"]
  countries:
    - " India "
    - China
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, defaultAppHTTPAddr, cfg.App.HTTPAddr)
	assert.False(t, cfg.Source.ValidateSchema, "explicit false is kept")
	assert.Equal(t, []string{"2026", "2025"}, cfg.Normalize.PriorityYears)
	assert.Equal(t, []string{"India", "China"}, cfg.Normalize.Countries)
	assert.Equal(t, defaultGrowthFallbackYears, cfg.Normalize.GrowthFallbackYears)
	assert.Equal(t, path, cfg.Path)
}

func TestLoadIncludes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", `
normalize:
  focus_key: Brazil
  workers: 2
`)
	path := writeFile(t, dir, "config.yaml", `
include: ["base.yaml"]
normalize:
  workers: 8
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Brazil", cfg.Normalize.FocusKey)
	assert.Equal(t, 8, cfg.Normalize.Workers, "including file wins")
}

func TestLoadIncludeCycle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", `include: ["b.yaml"]`)
	writeFile(t, dir, "b.yaml", `include: ["a.yaml"]`)
	_, err := Load(filepath.Join(dir, "a.yaml"))
	assert.ErrorContains(t, err, "include cycle")
}

func TestLoadSharedIncludeAndBadIncludeList(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "shared.yaml", "normalize:\n  focus_key: Brazil\n  workers: 3\n")
	writeFile(t, dir, "left.yaml", "include: [\"shared.yaml\"]\nnormalize:\n  workers: 5\n")
	writeFile(t, dir, "right.yaml", "include: [\"shared.yaml\", \" \"]\n")
	path := writeFile(t, dir, "config.yaml", "include: [\"left.yaml\", \"right.yaml\"]\n")

	layers, err := readLayers(path)
	require.NoError(t, err)
	require.Len(t, layers, 4, "shared file is read once")
	assert.Equal(t, filepath.Join(dir, "shared.yaml"), layers[0].path)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), layers[3].path)
	for _, l := range layers {
		assert.NotContains(t, l.settings, "include")
	}

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Brazil", cfg.Normalize.FocusKey)
	assert.Equal(t, 5, cfg.Normalize.Workers)

	bad := writeFile(t, dir, "bad.yaml", "include: shared.yaml\n")
	_, err = Load(bad)
	assert.ErrorContains(t, err, "include must be a list")
}

func TestMarkSetKeys(t *testing.T) {
	keys := make(keySet)
	markSetKeys("", map[string]any{
		"normalize": map[string]any{"priority_years": []any{}, "workers": 2},
		"render":    map[string]any{},
	}, keys)
	assert.True(t, keys.isSet("normalize.priority_years"))
	assert.True(t, keys.isSet("normalize.workers"))
	assert.True(t, keys.isSet("render"))
	assert.False(t, keys.isSet("normalize.focus_key"))
}

func TestLoadValidation(t *testing.T) {
	cases := map[string]string{
		"bad level":         "app:\n  log_level: loud\n",
		"bad scheme":        "source:\n  endpoint: ftp://example.com\n",
		"short fallback":    "normalize:\n  annual_fallback_years: [\"2020\"]\n",
		"duplicate years":   "normalize:\n  growth_fallback_years: [\"2021\", \"2021\"]\n",
		"empty priority":    "normalize:\n  priority_years: []\n",
		"narrow render":     "render:\n  width_px: 100\n",
		"negative log size": "app:\n  log_max_size_mb: -1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "config.yaml", body)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadOptional(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = LoadOptional("")
	require.NoError(t, err)
	assert.Equal(t, "India", cfg.Normalize.FocusKey)

	_, err = Load("")
	assert.Error(t, err)
}

func TestWatcherReloadsAndCloses(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "normalize:\n  priority_years: [\"2025\", \"2024\"]\n")
	w, err := NewWatcher(path)
	require.NoError(t, err)
	assert.Equal(t, int64(1), w.Version())

	got := make(chan []string, 16)
	w.Subscribe(func(cfg *Config) {
		select {
		case got <- cfg.Normalize.PriorityYears:
		default:
		}
	})

	writeFile(t, dir, "config.yaml", "normalize:\n  priority_years: [\"2026\"]\n")
	deadline := time.After(5 * time.Second)
	for seen := false; !seen; {
		select {
		case years := <-got:
			seen = len(years) == 1 && years[0] == "2026"
		case <-deadline:
			t.Fatal("reload not observed")
		}
	}
	assert.Equal(t, []string{"2026"}, w.Current().Normalize.PriorityYears)

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestWatcherKeepsLastGoodConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "app:\n  log_level: info\n")
	w, err := NewWatcher(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	writeFile(t, dir, "config.yaml", "app:\n  log_level: loud\n")
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, "info", w.Current().App.LogLevel)
}
