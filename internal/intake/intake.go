// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package intake turns local paths into file handles. The media type comes
// from the file's leading bytes, not its extension.
package intake

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdfcloud/pkg/types"
)

// sniffLen is how many bytes http.DetectContentType considers.
const sniffLen = 512

// ErrNotRegular is returned for directories, devices and other non-files.
var ErrNotRegular = errors.New("not a regular file")

// Skip records a path that did not become a PDF handle.
type Skip struct {
	Path   string `json:"path" yaml:"path"`
	Reason string `json:"reason" yaml:"reason"`
}

// Inspect stats and sniffs path. The returned handle reads from disk on Open.
func Inspect(path string) (types.FileHandle, error) {
	info, err := os.Stat(path)
	if err != nil {
		return types.FileHandle{}, fmt.Errorf("inspecting %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return types.FileHandle{}, fmt.Errorf("inspecting %s: %w", path, ErrNotRegular)
	}

	f, err := os.Open(path)
	if err != nil {
		return types.FileHandle{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return types.FileHandle{}, fmt.Errorf("reading %s: %w", path, err)
	}

	return types.FileHandle{
		Name:      filepath.Base(path),
		SizeBytes: info.Size(),
		MediaType: mediaType(head[:n]),
		Path:      path,
	}, nil
}

// mediaType strips parameters such as charset from the sniffed type.
func mediaType(head []byte) string {
	mt, _, _ := strings.Cut(http.DetectContentType(head), ";")
	return strings.TrimSpace(mt)
}

// PDFs inspects paths in order and keeps the PDFs. Everything else is
// returned as a Skip with the reason, and logged.
func PDFs(paths []string, log logrus.FieldLogger) ([]types.FileHandle, []Skip) {
	var (
		files   []types.FileHandle
		skipped []Skip
	)
	for _, p := range paths {
		fh, err := Inspect(p)
		if err != nil {
			log.WithError(err).WithField("path", p).Warn("skipping file")
			skipped = append(skipped, Skip{Path: p, Reason: err.Error()})
			continue
		}
		if !fh.IsPDF() {
			reason := fmt.Sprintf("not a PDF (%s)", fh.MediaType)
			log.WithFields(logrus.Fields{"path": p, "media_type": fh.MediaType}).Warn("skipping non-PDF file")
			skipped = append(skipped, Skip{Path: p, Reason: reason})
			continue
		}
		log.WithFields(logrus.Fields{"path": p, "size": fh.SizeBytes}).Debug("file accepted")
		files = append(files, fh)
	}
	return files, skipped
}
