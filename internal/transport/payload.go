// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transport

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/pdiddy/pdfcloud/internal/rangespec"
	"github.com/pdiddy/pdfcloud/pkg/types"
)

// Part is one multipart field: a file when File is set, a scalar otherwise.
type Part struct {
	Name  string
	File  *types.FileHandle
	Value string
}

// Payload is an ordered multipart body.
type Payload struct {
	Parts []Part
}

// MergePayload sends every file under the repeated "files" field, in order.
func MergePayload(files []types.FileHandle) Payload {
	p := Payload{Parts: make([]Part, 0, len(files))}
	for i := range files {
		f := files[i]
		p.Parts = append(p.Parts, Part{Name: "files", File: &f})
	}
	return p
}

// SplitPayload sends one file and the mode; ranges are included only in range mode.
func SplitPayload(file types.FileHandle, mode types.OperationMode, ranges string) Payload {
	p := Payload{Parts: []Part{
		{Name: "file", File: &file},
		{Name: "mode", Value: string(mode)},
	}}
	if mode == types.ModeRange {
		p.Parts = append(p.Parts, Part{Name: "ranges", Value: rangespec.Serialize(ranges)})
	}
	return p
}

// Files returns the file parts in order.
func (p Payload) Files() []types.FileHandle {
	var out []types.FileHandle
	for _, part := range p.Parts {
		if part.File != nil {
			out = append(out, *part.File)
		}
	}
	return out
}

// Field returns the value of the first scalar part with the given name.
func (p Payload) Field(name string) (string, bool) {
	for _, part := range p.Parts {
		if part.File == nil && part.Name == name {
			return part.Value, true
		}
	}
	return "", false
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// copyFunc writes a file's contents into a part and returns the byte count.
type copyFunc func(w io.Writer, f types.FileHandle) (int64, error)

// encode writes the multipart body with the given boundary. File contents
// come from copyFile so the same routine can measure the body length.
func encode(w io.Writer, p Payload, boundary string, copyFile copyFunc) (int64, error) {
	cw := &countingWriter{w: w}
	mw := multipart.NewWriter(cw)
	if err := mw.SetBoundary(boundary); err != nil {
		return 0, err
	}

	for _, part := range p.Parts {
		if part.File == nil {
			if err := mw.WriteField(part.Name, part.Value); err != nil {
				return 0, fmt.Errorf("writing field %s: %w", part.Name, err)
			}
			continue
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(part.Name), quoteEscaper.Replace(part.File.Name)))
		h.Set("Content-Type", types.MediaTypePDF)
		pw, err := mw.CreatePart(h)
		if err != nil {
			return 0, fmt.Errorf("creating part for %s: %w", part.File.Name, err)
		}
		if _, err := copyFile(pw, *part.File); err != nil {
			return 0, err
		}
	}
	if err := mw.Close(); err != nil {
		return 0, err
	}
	// File bytes are included only when copyFile wrote through the part.
	return cw.n, nil
}

// contentLength computes the exact body size without reading any file.
func contentLength(p Payload, boundary string) (int64, error) {
	var files int64
	n, err := encode(io.Discard, p, boundary, func(_ io.Writer, f types.FileHandle) (int64, error) {
		files += f.SizeBytes
		return f.SizeBytes, nil
	})
	if err != nil {
		return 0, err
	}
	return n + files, nil
}

// copyContents streams a file into a part, failing when the file no longer
// matches its recorded size.
func copyContents(w io.Writer, f types.FileHandle) (int64, error) {
	rc, err := f.Open()
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", f.Name, err)
	}
	defer rc.Close()

	n, err := io.Copy(w, io.LimitReader(rc, f.SizeBytes+1))
	if err != nil {
		return n, fmt.Errorf("reading %s: %w", f.Name, err)
	}
	if n != f.SizeBytes {
		return n, fmt.Errorf("file %s changed size: expected %d bytes, read %d", f.Name, f.SizeBytes, n)
	}
	return n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
