// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfcloud/internal/intake"
	"github.com/pdiddy/pdfcloud/internal/operation"
)

var mergeCmd = &cobra.Command{
	Use:   "merge file.pdf file.pdf [file.pdf...]",
	Short: "Merge PDF files into one document",
	Long: `Merge uploads two or more PDF files and combines them, in the order
given, into a single document. Files that are not PDFs are skipped. At most
merge.max_files files (default 20) are sent; extras are dropped with a
warning.`,
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	files, skipped := intake.PDFs(args, logger)
	reportSkipped(cmd.ErrOrStderr(), skipped)

	up, err := newTransport()
	if err != nil {
		return err
	}
	m := operation.NewMerge(up,
		operation.WithLogger(logger),
		operation.WithMaxFiles(cfg.Merge.MaxFiles),
		operation.WithMaxFileSize(cfg.MaxFileSize),
	)

	if len(files) > 0 {
		rejected, err := m.Add(files...)
		if err != nil {
			return err
		}
		if rejected > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %d file(s) over the limit of %d\n",
				warnLabel("dropped"), rejected, m.MaxFiles())
		}
	}

	if format == outputText {
		listFiles(cmd.ErrOrStderr(), m.Files())
	}

	progress, done := progressFor(cmd, "merging")
	res, err := m.Submit(cmd.Context(), progress)
	done()
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), format, res, mergeText(res, len(m.Files())))
}
