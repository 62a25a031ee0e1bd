// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
	"golang.org/x/time/rate"

	"github.com/pdiddy/pdfcloud/internal/apperr"
	"github.com/pdiddy/pdfcloud/internal/intake"
	"github.com/pdiddy/pdfcloud/internal/transport"
	"github.com/pdiddy/pdfcloud/pkg/types"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// progressInterval is the minimum time between progress redraws.
const progressInterval = 150 * time.Millisecond

var (
	okLabel   = color.New(color.FgGreen, color.Bold).SprintFunc()
	warnLabel = color.New(color.FgYellow).SprintFunc()
	errLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
	dim       = color.New(color.Faint).SprintFunc()
)

func outputFormat(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("output")
	switch format {
	case outputText, outputJSON, outputYAML:
		return format, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}

// render writes v as JSON or YAML, or calls text for the text format.
func render(w io.Writer, format string, v any, text func(io.Writer)) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		text(w)
		return nil
	}
}

// progressBar redraws a percentage on one terminal line, at most once per
// progressInterval. The transport calls it from a single goroutine.
type progressBar struct {
	w       io.Writer
	label   string
	every   rate.Sometimes
	last    float64
	started bool
}

func newProgressBar(w io.Writer, label string) *progressBar {
	return &progressBar{
		w:     w,
		label: label,
		every: rate.Sometimes{First: 1, Interval: progressInterval},
	}
}

func (p *progressBar) update(f float64) {
	p.last = f
	p.every.Do(func() {
		p.started = true
		fmt.Fprintf(p.w, "\r%s %3.0f%%", p.label, f*100)
	})
}

// finish draws the last value seen and ends the line. Call it after the
// upload returns.
func (p *progressBar) finish() {
	if !p.started {
		return
	}
	fmt.Fprintf(p.w, "\r%s %3.0f%%\n", p.label, p.last*100)
}

// progressFor returns the progress callback for cmd, nil when disabled,
// and a function to call once the upload returns.
func progressFor(cmd *cobra.Command, label string) (transport.ProgressFunc, func()) {
	noProgress, _ := cmd.Flags().GetBool("no-progress")
	if noProgress {
		return nil, func() {}
	}
	bar := newProgressBar(cmd.ErrOrStderr(), label)
	return bar.update, bar.finish
}

func reportSkipped(w io.Writer, skipped []intake.Skip) {
	for _, s := range skipped {
		fmt.Fprintf(w, "%s %s: %s\n", warnLabel("skipped"), s.Path, s.Reason)
	}
}

func listFiles(w io.Writer, files []types.FileHandle) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, f := range files {
		fmt.Fprintf(tw, "  %d.\t%s\t%s\n", i+1, f.Name, dim(types.FormatSize(f.SizeBytes)))
	}
	tw.Flush()
}

func mergeText(res *types.MergeResult, files int) func(io.Writer) {
	return func(w io.Writer) {
		name := res.Filename
		if name == "" {
			name = "merged document"
		}
		fmt.Fprintf(w, "%s %d files into %s (%d pages)\n", okLabel("merged"), files, name, res.PageCount)
		fmt.Fprintf(w, "session: %s\n", res.SessionID)
	}
}

func splitText(res *types.SplitResult, source string) func(io.Writer) {
	return func(w io.Writer) {
		fmt.Fprintf(w, "%s %s into %d files\n", okLabel("split"), source, res.TotalFiles)
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, f := range res.Files {
			switch {
			case f.Range != "":
				fmt.Fprintf(tw, "  %s\tpages %s\t%s\n", f.Filename, f.Range, dim(fmt.Sprintf("%d pages", f.PageCount)))
			case f.Page > 0:
				fmt.Fprintf(tw, "  %s\tpage %d\t\n", f.Filename, f.Page)
			default:
				fmt.Fprintf(tw, "  %s\t\t\n", f.Filename)
			}
		}
		tw.Flush()
		fmt.Fprintf(w, "session: %s\n", res.SessionID)
	}
}

// errorLine formats err for the terminal, labelled by where it came from.
func errorLine(err error) string {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		switch ae.Kind {
		case apperr.KindRemote:
			return fmt.Sprintf("%s service rejected the request: %s", errLabel("error:"), ae.Message)
		case apperr.KindTransport:
			if ae.Status > 0 {
				return fmt.Sprintf("%s %s (HTTP %d)", errLabel("error:"), ae.Message, ae.Status)
			}
			return fmt.Sprintf("%s %s", errLabel("error:"), ae.Message)
		}
	}
	return fmt.Sprintf("%s %v", errLabel("error:"), err)
}
