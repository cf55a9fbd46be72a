package app

import (
	"fmt"
	"strings"

	"factsheet/internal/catalog"
	"factsheet/internal/config"
	"factsheet/internal/logger"
)

type StartupSummary struct {
	ConfigPath    string
	Endpoint      string
	HTTPAddr      string
	FocusKey      string
	Countries     []string
	PriorityYears []string
	Workers       int
	WatchConfig   bool
	Charts        []ChartSummary
}

type ChartSummary struct {
	ID    string
	Sheet string
	Shape string
}

func newStartupSummary(cfg *config.Config, charts []catalog.Chart) *StartupSummary {
	s := &StartupSummary{
		ConfigPath:    cfg.Path,
		Endpoint:      cfg.Source.Endpoint,
		HTTPAddr:      cfg.App.HTTPAddr,
		FocusKey:      cfg.Normalize.FocusKey,
		Countries:     cfg.Normalize.Countries,
		PriorityYears: cfg.Normalize.PriorityYears,
		Workers:       cfg.Normalize.Workers,
		WatchConfig:   cfg.App.WatchConfig,
	}
	for _, c := range charts {
		s.Charts = append(s.Charts, ChartSummary{ID: c.ID, Sheet: c.Sheet, Shape: c.Shape.String()})
	}
	return s
}

func (s *StartupSummary) String() string {
	var b strings.Builder
	line := strings.Repeat("=", 72)
	fmt.Fprintln(&b, line)
	fmt.Fprintln(&b, "STARTUP SUMMARY")
	fmt.Fprintln(&b, line)
	fmt.Fprintf(&b, "  config:    %s\n", formatValue(s.ConfigPath))
	fmt.Fprintf(&b, "  endpoint:  %s\n", s.Endpoint)
	fmt.Fprintf(&b, "  listen:    %s\n", s.HTTPAddr)
	fmt.Fprintf(&b, "  focus:     %s\n", s.FocusKey)
	fmt.Fprintf(&b, "  countries: %s\n", formatList(s.Countries))
	fmt.Fprintf(&b, "  priority:  %s\n", formatList(s.PriorityYears))
	fmt.Fprintf(&b, "  workers:   %d\n", s.Workers)
	fmt.Fprintf(&b, "  hot reload: %t\n", s.WatchConfig)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "[CHARTS]")
	for _, c := range s.Charts {
		fmt.Fprintf(&b, "  > %-20s %-38s %s\n", c.ID, c.Sheet, c.Shape)
	}
	fmt.Fprint(&b, line)
	return b.String()
}

func (s *StartupSummary) Print() {
	logger.InfoBlock(s.String())
}

func formatList(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func formatValue(v string) string {
	if strings.TrimSpace(v) == "" {
		return "(defaults)"
	}
	return v
}
