package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"factsheet/internal/app"
	"factsheet/internal/config"
	"factsheet/internal/logger"
)

const defaultConfigPath = "configs/config.yaml"

var (
	configPath string
	logLevel   string
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}

	rootCmd := &cobra.Command{
		Use:           "factsheet",
		Short:         "Country economic factsheet: fetch, normalize and chart indicator sheets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", envOr("FACTSHEET_CONFIG", defaultConfigPath), "Config file path (env FACTSHEET_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override app.log_level")

	rootCmd.AddCommand(serveCmd(), renderCmd(), dumpCmd(), exportCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("factsheet: %v", err)
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// setup loads config, configures logging and builds the app. The returned
// closer flushes the rotating log file.
func setup() (*app.App, *config.Config, io.Closer, error) {
	cfg, err := config.LoadOptional(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.App.LogLevel = logLevel
	}
	closer, err := logger.SetRotatingFile(logger.RotateOptions{
		Path:       cfg.App.LogPath,
		MaxSizeMB:  cfg.App.LogMaxSizeMB,
		MaxBackups: cfg.App.LogMaxBackups,
		MaxAgeDays: cfg.App.LogMaxAgeDays,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init log file: %w", err)
	}
	logger.SetLevel(cfg.App.LogLevel)
	if cfg.Path != "" {
		logger.Infof("config loaded from %s (env=%s)", cfg.Path, cfg.App.Env)
	} else {
		logger.Infof("no config file at %s, using defaults", configPath)
	}

	a, err := app.NewApp(cfg)
	if err != nil {
		closeQuietly(closer)
		return nil, nil, nil, fmt.Errorf("init app: %w", err)
	}
	return a, cfg, closer, nil
}

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the factsheet page and JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, _, closer, err := setup()
			if err != nil {
				return err
			}
			defer closeQuietly(closer)
			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.Run(ctx)
		},
	}
}

func renderCmd() *cobra.Command {
	var out, png string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Fetch once and write the chart page (optionally a PNG snapshot)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, cfg, closer, err := setup()
			if err != nil {
				return err
			}
			defer closeQuietly(closer)
			if out == "" {
				out = cfg.Render.OutputPath
			}
			if png == "" {
				png = cfg.Render.PNGPath
			}
			return a.RenderHTML(commandContext(cmd), out, png)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "HTML output path (default render.output_path)")
	cmd.Flags().StringVar(&png, "png", "", "PNG snapshot path (default render.png_path; empty skips)")
	return cmd
}

func dumpCmd() *cobra.Command {
	var format, chartID string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Fetch once and print the normalized chart payloads",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, _, closer, err := setup()
			if err != nil {
				return err
			}
			defer closeQuietly(closer)

			ctx := commandContext(cmd)
			var v any
			if chartID != "" {
				payload, err := a.Service().Chart(ctx, chartID)
				if err != nil {
					return err
				}
				v = payload
			} else {
				fs, err := a.Snapshot(ctx)
				if err != nil {
					return err
				}
				v = fs
			}
			return writeDump(cmd.OutOrStdout(), format, v)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVar(&chartID, "chart", "", "Only dump the chart with this id")
	return cmd
}

func writeDump(w io.Writer, format string, v any) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("invalid format: %s (must be json or yaml)", format)
	}
}

func exportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Fetch once and write the chart data to an XLSX workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, cfg, closer, err := setup()
			if err != nil {
				return err
			}
			defer closeQuietly(closer)
			if out == "" {
				out = cfg.Export.OutputPath
			}
			return a.Export(commandContext(cmd), out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "XLSX output path (default export.output_path)")
	return cmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
