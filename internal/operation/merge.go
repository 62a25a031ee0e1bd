// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package operation

import (
	"context"

	"github.com/pdiddy/pdfcloud/internal/apperr"
	"github.com/pdiddy/pdfcloud/internal/collection"
	"github.com/pdiddy/pdfcloud/internal/transport"
	"github.com/pdiddy/pdfcloud/pkg/types"
)

// DefaultMergeMaxFiles caps the merge collection when no limit is configured.
const DefaultMergeMaxFiles = 20

// minMergeFiles is the smallest collection a merge accepts.
const minMergeFiles = 2

// Merge concatenates every pending file, in collection order, into one document.
type Merge struct {
	*core[types.MergeResult]
}

// NewMerge returns an idle merge controller.
func NewMerge(uploader Uploader, opts ...Option) *Merge {
	o := buildOptions(opts)
	maxFiles := o.maxFiles
	if maxFiles <= 0 {
		maxFiles = DefaultMergeMaxFiles
	}
	return &Merge{core: &core[types.MergeResult]{
		uploader:    uploader,
		endpoint:    transport.EndpointMerge,
		log:         o.log.WithField("operation", "merge"),
		maxFileSize: o.maxFileSize,
		decode:      decodeMerge,
		files:       collection.New(maxFiles, true),
	}}
}

// Submit uploads all files and blocks until the service answers. With fewer
// than two files it fails locally without any network call. The outcome is
// also recorded in State.
func (m *Merge) Submit(ctx context.Context, progress transport.ProgressFunc) (*types.MergeResult, error) {
	return m.submit(ctx, progress, func() (transport.Payload, error) {
		if m.files.Len() < minMergeFiles {
			return transport.Payload{}, apperr.Validation("need at least %d files", minMergeFiles)
		}
		if err := m.checkSizes(); err != nil {
			return transport.Payload{}, err
		}
		return transport.MergePayload(m.files.Files()), nil
	})
}
