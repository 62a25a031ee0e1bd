// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfcloud/internal/intake"
	"github.com/pdiddy/pdfcloud/internal/operation"
	"github.com/pdiddy/pdfcloud/internal/rangespec"
	"github.com/pdiddy/pdfcloud/pkg/types"
)

var splitCmd = &cobra.Command{
	Use:   "split file.pdf",
	Short: "Split a PDF into pages or page ranges",
	Long: `Split uploads one PDF file. In single mode every page becomes its own
file. In range mode each comma-separated range becomes a file, for example:

  pdfcloud split report.pdf --mode range --ranges 1-3,5-7

Ranges are sent exactly as typed; the service checks them against the
document.`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	splitCmd.Flags().String("mode", "", "split mode: single or range (default from split.mode, else single)")
	splitCmd.Flags().String("ranges", "", "page ranges for range mode, e.g. 1-3,5-7")

	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	mode := cfg.Split.Mode
	if cmd.Flags().Changed("mode") {
		raw, _ := cmd.Flags().GetString("mode")
		if mode, err = types.ParseOperationMode(raw); err != nil {
			return err
		}
	}
	ranges, _ := cmd.Flags().GetString("ranges")

	files, skipped := intake.PDFs(args, logger)
	reportSkipped(cmd.ErrOrStderr(), skipped)

	up, err := newTransport()
	if err != nil {
		return err
	}
	s := operation.NewSplit(up,
		operation.WithLogger(logger),
		operation.WithMode(mode),
		operation.WithMaxFileSize(cfg.MaxFileSize),
	)
	if len(files) > 0 {
		if _, err := s.Add(files[0]); err != nil {
			return err
		}
	}
	s.SetRanges(ranges)

	if mode == types.ModeRange && rangespec.IsPresentAndNonBlank(ranges) {
		if _, err := rangespec.Parse(ranges); err != nil {
			logger.WithError(err).Warn("ranges look malformed; sending them anyway")
		}
	}

	progress, done := progressFor(cmd, "splitting")
	res, err := s.Submit(cmd.Context(), progress)
	done()
	if err != nil {
		return err
	}

	source := args[0]
	if f := s.Files(); len(f) == 1 {
		source = f[0].Name
	}
	if res.TotalFiles != len(res.Files) {
		logger.WithFields(logrus.Fields{"total_files": res.TotalFiles, "listed": len(res.Files)}).Warn("service listed a different number of files")
	}
	return render(cmd.OutOrStdout(), format, res, splitText(res, source))
}
