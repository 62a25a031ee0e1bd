// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package operation

import (
	"context"

	"github.com/pdiddy/pdfcloud/internal/apperr"
	"github.com/pdiddy/pdfcloud/internal/collection"
	"github.com/pdiddy/pdfcloud/internal/rangespec"
	"github.com/pdiddy/pdfcloud/internal/transport"
	"github.com/pdiddy/pdfcloud/pkg/types"
)

// Split decomposes a single file, page by page or by page ranges.
//
// Mode and ranges are independent: switching modes keeps both the selected
// file and the ranges text, so toggling back restores what was typed.
type Split struct {
	*core[types.SplitResult]

	// guarded by core.mu
	mode   types.OperationMode
	ranges string
}

// NewSplit returns an idle split controller holding at most one file.
func NewSplit(uploader Uploader, opts ...Option) *Split {
	o := buildOptions(opts)
	mode, err := types.ParseOperationMode(string(o.mode))
	if err != nil {
		mode = types.ModeSingle
	}
	return &Split{
		core: &core[types.SplitResult]{
			uploader:    uploader,
			endpoint:    transport.EndpointSplit,
			log:         o.log.WithField("operation", "split"),
			maxFileSize: o.maxFileSize,
			decode:      decodeSplit,
			files:       collection.New(1, false),
		},
		mode: mode,
	}
}

// Mode returns the current split mode.
func (s *Split) Mode() types.OperationMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode switches between single and range mode. It fails with ErrBusy
// while a submission is in flight. After a finished submission the state
// returns to idle; the file and ranges are kept.
func (s *Split) SetMode(mode types.OperationMode) error {
	if _, err := types.ParseOperationMode(string(mode)); err != nil {
		return apperr.ValidationFrom(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Processing() {
		return ErrBusy
	}
	s.mode = mode
	if s.state.Phase != PhaseIdle {
		s.state = State[types.SplitResult]{}
	}
	return nil
}

// Ranges returns the page-range text as entered.
func (s *Split) Ranges() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ranges
}

// SetRanges stores the page-range text. It is sent only in range mode.
func (s *Split) SetRanges(text string) {
	s.mu.Lock()
	s.ranges = text
	s.mu.Unlock()
}

// Submit uploads the file with the current mode and blocks until the service
// answers. Preconditions are checked in order: a file must be selected, and
// range mode needs a non-blank range expression.
func (s *Split) Submit(ctx context.Context, progress transport.ProgressFunc) (*types.SplitResult, error) {
	return s.submit(ctx, progress, func() (transport.Payload, error) {
		file, err := s.files.At(0)
		if err != nil {
			return transport.Payload{}, apperr.Validation("no file selected")
		}
		if s.mode == types.ModeRange && !rangespec.IsPresentAndNonBlank(s.ranges) {
			return transport.Payload{}, apperr.Validation("ranges required")
		}
		if err := s.checkSizes(); err != nil {
			return transport.Payload{}, err
		}
		return transport.SplitPayload(file, s.mode, s.ranges), nil
	})
}
