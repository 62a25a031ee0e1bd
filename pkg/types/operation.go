// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// OperationMode selects how the split endpoint decomposes a document.
// Merge has no mode: it always concatenates every file in order.
type OperationMode string

const (
	// ModeSingle writes one output file per page.
	ModeSingle OperationMode = "single"

	// ModeRange writes one output file per page range in the range expression.
	ModeRange OperationMode = "range"
)

// ParseOperationMode validates a mode name.
func ParseOperationMode(s string) (OperationMode, error) {
	switch OperationMode(s) {
	case ModeSingle, ModeRange:
		return OperationMode(s), nil
	default:
		return "", fmt.Errorf("unknown split mode %q (want %q or %q)", s, ModeSingle, ModeRange)
	}
}

// MergeResult describes a completed merge.
type MergeResult struct {
	// PageCount is the number of pages in the merged document.
	PageCount int `json:"pages" yaml:"pages"`

	// SessionID correlates the server-side output artifacts.
	SessionID string `json:"session_id" yaml:"session_id"`

	// Filename is the name of the merged output, when the service reports it.
	Filename string `json:"filename,omitempty" yaml:"filename,omitempty"`
}

// SplitFile is one output document produced by a split.
type SplitFile struct {
	Filename string `json:"filename" yaml:"filename"`

	// Page is set in single mode.
	Page int `json:"page,omitempty" yaml:"page,omitempty"`

	// Range and PageCount are set in range mode (e.g. "1-3", 3).
	Range     string `json:"range,omitempty" yaml:"range,omitempty"`
	PageCount int    `json:"page_count,omitempty" yaml:"page_count,omitempty"`
}

// SplitResult describes a completed split.
type SplitResult struct {
	TotalFiles int         `json:"total_files" yaml:"total_files"`
	SessionID  string      `json:"session_id" yaml:"session_id"`
	Files      []SplitFile `json:"files" yaml:"files"`
}
