// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collection implements the bounded, ordered list of files pending
// one operation. A Collection is a value: every operation returns a new
// Collection and leaves the receiver untouched.
package collection

import (
	"errors"
	"fmt"

	"github.com/pdiddy/pdfcloud/pkg/types"
)

var (
	// ErrNoValidFiles is returned when no candidate is a PDF.
	ErrNoValidFiles = errors.New("no valid PDF files")

	// ErrCapacityExceeded is returned when a multi-valued collection is full.
	ErrCapacityExceeded = errors.New("file limit reached")

	// ErrIndexOutOfRange is returned by RemoveAt for an index outside the collection.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Collection is an ordered, capacity-bounded list of FileHandles.
type Collection struct {
	files    []types.FileHandle
	maxFiles int
	multiple bool
}

// New returns an empty collection. A single-valued collection (multiple
// false) holds at most one file regardless of maxFiles; maxFiles below 1
// is raised to 1.
func New(maxFiles int, multiple bool) Collection {
	if maxFiles < 1 || !multiple {
		maxFiles = 1
	}
	return Collection{maxFiles: maxFiles, multiple: multiple}
}

// Len returns the number of files.
func (c Collection) Len() int { return len(c.files) }

// MaxFiles returns the capacity.
func (c Collection) MaxFiles() int { return c.maxFiles }

// Multiple reports whether the collection appends rather than replaces.
func (c Collection) Multiple() bool { return c.multiple }

// Files returns a copy of the files in order.
func (c Collection) Files() []types.FileHandle {
	out := make([]types.FileHandle, len(c.files))
	copy(out, c.files)
	return out
}

// At returns the file at index i.
func (c Collection) At(i int) (types.FileHandle, error) {
	if i < 0 || i >= len(c.files) {
		return types.FileHandle{}, fmt.Errorf("%w: %d (have %d files)", ErrIndexOutOfRange, i, len(c.files))
	}
	return c.files[i], nil
}

// TotalBytes sums the sizes of all files.
func (c Collection) TotalBytes() int64 {
	var n int64
	for _, f := range c.files {
		n += f.SizeBytes
	}
	return n
}

// Add accepts PDF candidates and returns the new collection together with the
// number of candidates that were not accepted (non-PDF, beyond capacity, or
// discarded by a single-valued replace).
//
// Multi-valued collections accept a partial batch: when fewer slots remain
// than there are candidates, the earliest candidates fill the free slots and
// the rest are dropped without error. Only a full collection rejects the call.
func (c Collection) Add(candidates []types.FileHandle) (Collection, int, error) {
	valid := make([]types.FileHandle, 0, len(candidates))
	for _, f := range candidates {
		if f.IsPDF() {
			valid = append(valid, f)
		}
	}
	if len(valid) == 0 {
		return c, len(candidates), ErrNoValidFiles
	}

	if !c.multiple {
		next := c.with([]types.FileHandle{valid[0]})
		return next, len(candidates) - 1, nil
	}

	available := c.maxFiles - len(c.files)
	if available <= 0 {
		return c, len(candidates), fmt.Errorf("%w: at most %d files", ErrCapacityExceeded, c.maxFiles)
	}
	if len(valid) > available {
		valid = valid[:available]
	}

	files := make([]types.FileHandle, 0, len(c.files)+len(valid))
	files = append(files, c.files...)
	files = append(files, valid...)
	return c.with(files), len(candidates) - len(valid), nil
}

// RemoveAt drops the file at index, preserving the order of the others.
func (c Collection) RemoveAt(index int) (Collection, error) {
	if index < 0 || index >= len(c.files) {
		return c, fmt.Errorf("%w: %d (have %d files)", ErrIndexOutOfRange, index, len(c.files))
	}
	files := make([]types.FileHandle, 0, len(c.files)-1)
	files = append(files, c.files[:index]...)
	files = append(files, c.files[index+1:]...)
	return c.with(files), nil
}

// Clear returns an empty collection with the same capacity.
func (c Collection) Clear() Collection {
	return c.with(nil)
}

func (c Collection) with(files []types.FileHandle) Collection {
	return Collection{files: files, maxFiles: c.maxFiles, multiple: c.multiple}
}
