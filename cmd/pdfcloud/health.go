// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the PDF service is reachable",
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

type healthReport struct {
	URL    string `json:"url" yaml:"url"`
	Status string `json:"status" yaml:"status"`
}

func runHealth(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	t, err := newTransport()
	if err != nil {
		return err
	}
	status, err := t.Health(cmd.Context())
	if err != nil {
		return err
	}
	report := healthReport{URL: cfg.Service.BaseURL, Status: status}
	return render(cmd.OutOrStdout(), format, report, func(w io.Writer) {
		fmt.Fprintf(w, "%s %s\n", okLabel(report.Status), report.URL)
	})
}
