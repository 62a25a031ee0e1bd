// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdfcloud CLI, a client for a
// remote PDF merge and split service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfcloud/internal/config"
	"github.com/pdiddy/pdfcloud/internal/httputil"
	"github.com/pdiddy/pdfcloud/internal/logging"
	"github.com/pdiddy/pdfcloud/internal/secrets"
	"github.com/pdiddy/pdfcloud/internal/transport"
	"github.com/pdiddy/pdfcloud/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is the resolved configuration, filled before any subcommand runs.
	cfg types.ClientConfig

	logger = logging.Discard()
)

// rootCmd is the base command for the pdfcloud CLI.
var rootCmd = &cobra.Command{
	Use:   "pdfcloud",
	Short: "Merge and split PDF files with a remote service",
	Long: `pdfcloud uploads PDF files to a PDF-processing service and reports the
result. Merge combines several files into one document in the order given;
split breaks one file into single pages or into page ranges.

Settings come from pdfcloud.yaml (./ or ~/.config/pdfcloud/), PDFCLOUD_*
environment variables, a .env file, and flags, in increasing precedence.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./pdfcloud.yaml or ~/.config/pdfcloud/pdfcloud.yaml)")
	flags.String("base-url", "", "service API root (default "+config.DefaultBaseURL+")")
	flags.Duration("timeout", 0, "request timeout including upload (default 5m)")
	flags.String("log-level", "", "log level: debug, info, warn, error (default warn)")
	flags.StringP("output", "o", outputText, "output format: text, json, yaml")
	flags.Bool("no-progress", false, "do not render upload progress")

	_ = viper.BindPFlag(config.KeyBaseURL, flags.Lookup("base-url"))
	_ = viper.BindPFlag(config.KeyTimeout, flags.Lookup("timeout"))
	_ = viper.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
}

// setup loads .env, the config file, and secrets, then builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}

	cfgFile, _ := cmd.Flags().GetString("config")
	used, err := config.Init(viper.GetViper(), cfgFile)
	if err != nil {
		return err
	}

	loaded, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	cfg = loaded

	logger = logging.New(cfg.LogLevel, os.Stderr)
	if used != "" {
		logger.WithField("file", used).Debug("using config file")
	}

	if cfg.Service.APIToken == "" {
		tok, err := secrets.APIToken(secrets.DefaultDir, logger)
		if err != nil {
			return err
		}
		if tok != "" {
			logger.Debug("loaded API token from secrets")
		}
		cfg.Service.APIToken = tok
	}
	return nil
}

// newTransport builds the HTTP transport from cfg.
func newTransport() (*transport.HTTP, error) {
	client := httputil.NewClient(cfg.Service.Timeout, logger)
	return transport.New(client, cfg.Service, logger)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorLine(err))
		stop()
		os.Exit(1)
	}
}
