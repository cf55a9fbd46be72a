package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Load reads the YAML config at path, merging any files listed under
// include: before it, then applies defaults and validates.
func Load(path string) (*Config, error) {
	layers, err := readLayers(path)
	if err != nil {
		return nil, err
	}
	v := viper.New()
	v.SetConfigType("yaml")
	for _, l := range layers {
		if err := v.MergeConfigMap(l.settings); err != nil {
			return nil, fmt.Errorf("merge config %s: %w", l.path, err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "toml"
		dc.WeaklyTypedInput = true
	}); err != nil {
		return nil, fmt.Errorf("parsing config failed: %w", err)
	}
	setKeys := make(keySet)
	markSetKeys("", v.AllSettings(), setKeys)
	cfg.applyDefaults(setKeys)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	cfg.Path = layers[len(layers)-1].path
	return &cfg, nil
}

// LoadOptional is Load, except that a missing file yields the defaults.
func LoadOptional(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// layer is one parsed config file with its include: key removed.
type layer struct {
	path     string
	settings map[string]any
}

// readLayers returns path and everything it includes, depth first, so that
// later layers override earlier ones. A file reached twice is read once.
func readLayers(path string) ([]layer, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("config path cannot be empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w := &layerWalker{open: map[string]bool{}, done: map[string]bool{}}
	if err := w.walk(abs); err != nil {
		return nil, err
	}
	return w.layers, nil
}

type layerWalker struct {
	open   map[string]bool
	done   map[string]bool
	layers []layer
}

func (w *layerWalker) walk(path string) error {
	path = filepath.Clean(path)
	switch {
	case w.open[path]:
		return fmt.Errorf("include cycle detected: %s", path)
	case w.done[path]:
		return nil
	}
	w.open[path] = true
	defer delete(w.open, path)

	file := viper.New()
	file.SetConfigFile(path)
	if err := file.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	settings := file.AllSettings()
	includes, err := includeList(settings["include"])
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	delete(settings, "include")

	for _, inc := range includes {
		if !filepath.IsAbs(inc) {
			inc = filepath.Join(filepath.Dir(path), inc)
		}
		if err := w.walk(inc); err != nil {
			return err
		}
	}
	w.done[path] = true
	w.layers = append(w.layers, layer{path: path, settings: settings})
	return nil
}

// includeList accepts a YAML list of strings; blank entries are skipped.
func includeList(raw any) ([]string, error) {
	if raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, errors.New("include must be a list of paths")
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		str, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("include entry %v is not a string", item)
		}
		if str = strings.TrimSpace(str); str != "" {
			out = append(out, str)
		}
	}
	return out, nil
}

// markSetKeys records every dotted key present in settings. Lists count as
// set even when empty, so an explicit [] is validated rather than defaulted.
func markSetKeys(prefix string, settings map[string]any, dest keySet) {
	for k, v := range settings {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok && len(sub) > 0 {
			markSetKeys(key, sub, dest)
			continue
		}
		dest.mark(key)
	}
}
