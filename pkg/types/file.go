// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pdfcloud client.
package types

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// MediaTypePDF is the only media type accepted into a file collection.
const MediaTypePDF = "application/pdf"

// FileHandle references a user-selected file that has not been transmitted yet.
// Handles carry no identity of their own: two handles with the same name and
// size are interchangeable, and collections address them by position.
type FileHandle struct {
	// Name is the filename sent to the remote service (e.g. "report.pdf").
	Name string `json:"name" yaml:"name"`

	// SizeBytes is the length of the file contents.
	SizeBytes int64 `json:"size_bytes" yaml:"size_bytes"`

	// MediaType is the detected media type, expected to be MediaTypePDF.
	MediaType string `json:"media_type" yaml:"media_type"`

	// Path is the local filesystem path, empty for in-memory handles.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	open func() (io.ReadCloser, error)
}

// NewFileHandle builds a handle whose contents are produced by open.
func NewFileHandle(name string, size int64, mediaType string, open func() (io.ReadCloser, error)) FileHandle {
	return FileHandle{Name: name, SizeBytes: size, MediaType: mediaType, open: open}
}

// FileFromBytes builds an in-memory PDF handle.
func FileFromBytes(name string, data []byte) FileHandle {
	return NewFileHandle(name, int64(len(data)), MediaTypePDF, func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	})
}

// IsPDF reports whether the handle carries the PDF media type.
func (f FileHandle) IsPDF() bool {
	return f.MediaType == MediaTypePDF
}

// Open returns a reader over the file contents. The caller closes it.
func (f FileHandle) Open() (io.ReadCloser, error) {
	if f.open != nil {
		return f.open()
	}
	if f.Path == "" {
		return nil, fmt.Errorf("file %q has no content source", f.Name)
	}
	return os.Open(f.Path)
}

// FormatSize renders a byte count the way file listings show it:
// bytes below 1 KB, otherwise KB or MB with one decimal.
func FormatSize(bytes int64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	}
}
