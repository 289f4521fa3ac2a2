// Package main provides the datascribe binary: an HTTP server and a
// command-line front end for the assistant.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	datascribe "github.com/ManojS35/data-scribe-agent"
	"github.com/ManojS35/data-scribe-agent/assistant"
	"github.com/ManojS35/data-scribe-agent/catalog"
	"github.com/ManojS35/data-scribe-agent/config"
	"github.com/ManojS35/data-scribe-agent/logger"
	"github.com/ManojS35/data-scribe-agent/server"
)

// ============================================================================
// DATASCRIBE CLI
// ============================================================================

const appName = "datascribe"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Answer business questions about the bundled datasets",
		Long: `DataScribe classifies a business question by keyword and answers it with
a canned SQL query, narrative, charts, a table and derived insights.

Formats:
  json      Full JSON output (default)
  pretty    Pretty-printed JSON
  text      Narrative only
  csv       Table data (or first chart) as CSV, ready for Sheets/Excel`,
		SilenceUsage: true,
	}

	cmd.AddCommand(serveCmd(), askCmd(), insightsCmd(), versionCmd())
	return cmd
}

// ── serve ────────────────────────────────────────────────────────────────────

func serveCmd() *cobra.Command {
	var configPath, addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			log, logFile, err := logger.New(cfg.Log.Level, cfg.Log.File)
			if err != nil {
				return err
			}
			defer logFile.Close()

			cat, err := catalog.Default()
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}
			a := assistant.New(cat,
				assistant.WithDelay(cfg.Assistant.Delay()),
				assistant.WithLogger(log),
				assistant.WithMetrics(cfg.Metrics.Enabled),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(cfg, a, cat, log).Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides the config file")
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// ── ask ──────────────────────────────────────────────────────────────────────

func askCmd() *cobra.Command {
	var (
		format string
		delay  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "ask <question...>",
		Short: "Answer one question and print the result",
		Example: `  datascribe ask "what's our sales trend?" --format text
  datascribe ask "show department performance" --format csv > departments.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			cat, err := catalog.Default()
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}
			a := assistant.New(cat, assistant.WithDelay(delay), assistant.WithMetrics(false))

			question := strings.Join(args, " ")
			ans, err := a.Answer(cmd.Context(), question)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), format, cliOutput{
				Query:          question,
				Classification: ans.Decision,
				Answer:         ans.Bundle,
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "Output format: json, pretty, text, csv")
	cmd.Flags().DurationVar(&delay, "delay", 0, "Simulated thinking delay before answering")
	return cmd
}

// ── insights ─────────────────────────────────────────────────────────────────

func insightsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Print the regional, trend and anomaly findings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatJSON && format != formatPretty && format != formatText {
				return fmt.Errorf("unsupported format %q for insights", format)
			}
			cat, err := catalog.Default()
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}
			in, _ := cat.Insights(catalog.GeneralOverview)
			if format == formatText {
				writeInsightsText(cmd.OutOrStdout(), in)
				return nil
			}
			return writeJSON(cmd.OutOrStdout(), in, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format: json, pretty, text")
	return cmd
}

// ── version ──────────────────────────────────────────────────────────────────

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", appName, datascribe.Version)
		},
	}
}
