// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package operation

import (
	"encoding/json"
	"fmt"

	"github.com/pdiddy/pdfcloud/internal/apperr"
	"github.com/pdiddy/pdfcloud/internal/transport"
	"github.com/pdiddy/pdfcloud/pkg/types"
)

// Wire shapes use pointers so missing fields are told apart from zero values.

type mergeData struct {
	Pages     *int    `json:"pages"`
	SessionID *string `json:"session_id"`
	Filename  string  `json:"filename"`
}

type splitData struct {
	TotalFiles *int            `json:"total_files"`
	SessionID  *string         `json:"session_id"`
	Files      *[]splitFileRaw `json:"files"`
}

type splitFileRaw struct {
	Filename  *string `json:"filename"`
	Page      int     `json:"page"`
	Range     string  `json:"range"`
	PageCount int     `json:"page_count"`
}

func shapeError(resp *transport.Response, format string, args ...any) error {
	return apperr.Transport(resp.Status, fmt.Errorf(format, args...))
}

func decodeMerge(resp *transport.Response) (*types.MergeResult, error) {
	var d mergeData
	if err := json.Unmarshal(resp.Data, &d); err != nil {
		return nil, shapeError(resp, "decoding merge result: %w", err)
	}
	if d.Pages == nil || *d.Pages < 0 {
		return nil, shapeError(resp, "merge result has no page count")
	}
	if d.SessionID == nil || *d.SessionID == "" {
		return nil, shapeError(resp, "merge result has no session_id")
	}
	return &types.MergeResult{
		PageCount: *d.Pages,
		SessionID: *d.SessionID,
		Filename:  d.Filename,
	}, nil
}

func decodeSplit(resp *transport.Response) (*types.SplitResult, error) {
	var d splitData
	if err := json.Unmarshal(resp.Data, &d); err != nil {
		return nil, shapeError(resp, "decoding split result: %w", err)
	}
	if d.TotalFiles == nil || *d.TotalFiles < 0 {
		return nil, shapeError(resp, "split result has no total_files")
	}
	if d.SessionID == nil || *d.SessionID == "" {
		return nil, shapeError(resp, "split result has no session_id")
	}
	if d.Files == nil {
		return nil, shapeError(resp, "split result has no files")
	}

	files := make([]types.SplitFile, 0, len(*d.Files))
	for i, f := range *d.Files {
		if f.Filename == nil || *f.Filename == "" {
			return nil, shapeError(resp, "split file %d has no filename", i)
		}
		files = append(files, types.SplitFile{
			Filename:  *f.Filename,
			Page:      f.Page,
			Range:     f.Range,
			PageCount: f.PageCount,
		})
	}
	return &types.SplitResult{
		TotalFiles: *d.TotalFiles,
		SessionID:  *d.SessionID,
		Files:      files,
	}, nil
}
