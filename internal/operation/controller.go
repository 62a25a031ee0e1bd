// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package operation drives merge and split submissions. A controller owns
// its file collection and state; no two controllers share anything.
package operation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdfcloud/internal/apperr"
	"github.com/pdiddy/pdfcloud/internal/collection"
	"github.com/pdiddy/pdfcloud/internal/logging"
	"github.com/pdiddy/pdfcloud/internal/transport"
	"github.com/pdiddy/pdfcloud/pkg/types"
)

// ErrBusy is returned when a controller is asked to change while a
// submission is in flight.
var ErrBusy = errors.New("submission already in progress")

// DefaultMaxFileSize is the per-file ceiling documented by the service.
const DefaultMaxFileSize = 50 << 20

// Uploader submits a payload to the remote service.
type Uploader interface {
	Upload(ctx context.Context, endpoint transport.Endpoint, payload transport.Payload, progress transport.ProgressFunc) (*transport.Response, error)
}

// Option configures a controller.
type Option func(*options)

type options struct {
	log         logrus.FieldLogger
	maxFileSize int64
	maxFiles    int
	mode        types.OperationMode
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) { o.log = log }
}

// WithMaxFileSize sets the pre-flight size limit; 0 disables it.
func WithMaxFileSize(n int64) Option {
	return func(o *options) { o.maxFileSize = n }
}

// WithMaxFiles sets the merge collection capacity. Split ignores it.
func WithMaxFiles(n int) Option {
	return func(o *options) { o.maxFiles = n }
}

// WithMode sets the initial split mode; an unknown mode means single.
// Merge ignores it.
func WithMode(m types.OperationMode) Option {
	return func(o *options) { o.mode = m }
}

func buildOptions(opts []Option) options {
	o := options{maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logging.Discard()
	}
	return o
}

// core holds what merge and split share. Every field below mu is guarded by it.
type core[R any] struct {
	uploader    Uploader
	endpoint    transport.Endpoint
	log         logrus.FieldLogger
	maxFileSize int64
	decode      func(*transport.Response) (*R, error)

	mu    sync.Mutex
	files collection.Collection
	state State[R]
}

// Add appends PDF files (or replaces the file, for split) and returns how
// many candidates were not accepted.
func (c *core[R]) Add(files ...types.FileHandle) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, rejected, err := c.files.Add(files)
	c.files = next
	log := c.log.WithFields(logrus.Fields{"offered": len(files), "rejected": rejected, "files": next.Len()})
	if err != nil {
		log.WithError(err).Info("files not added")
		return rejected, apperr.ValidationFrom(err)
	}
	log.Debug("files added")
	return rejected, nil
}

// RemoveAt removes the file at index.
func (c *core[R]) RemoveAt(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := c.files.RemoveAt(index)
	if err != nil {
		return apperr.ValidationFrom(err)
	}
	c.files = next
	return nil
}

// Clear empties the collection and returns the controller to idle.
func (c *core[R]) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Processing() {
		return ErrBusy
	}
	c.files = c.files.Clear()
	c.state = State[R]{}
	return nil
}

// Files returns the pending files in order.
func (c *core[R]) Files() []types.FileHandle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.files.Files()
}

// MaxFiles returns the collection capacity.
func (c *core[R]) MaxFiles() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.files.MaxFiles()
}

// State returns the current state.
func (c *core[R]) State() State[R] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// checkSizes enforces the pre-flight size limit. Caller holds mu.
func (c *core[R]) checkSizes() error {
	if c.maxFileSize <= 0 {
		return nil
	}
	for _, f := range c.files.Files() {
		if f.SizeBytes > c.maxFileSize {
			return apperr.Validation("%s is %s, over the %s limit",
				f.Name, types.FormatSize(f.SizeBytes), types.FormatSize(c.maxFileSize))
		}
	}
	return nil
}

// submit runs one submission. prepare is called with mu held; it checks
// preconditions and builds the payload from the current collection.
func (c *core[R]) submit(ctx context.Context, progress transport.ProgressFunc, prepare func() (transport.Payload, error)) (result *R, err error) {
	c.mu.Lock()
	if c.state.Processing() {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	payload, err := prepare()
	if err != nil {
		c.state = State[R]{Phase: PhaseFailed, Err: err}
		c.mu.Unlock()
		c.log.WithError(err).Info("submission rejected")
		return nil, err
	}
	c.state = State[R]{Phase: PhaseProcessing}
	c.mu.Unlock()

	log := c.log.WithField("files", len(payload.Files()))
	log.Info("submitting")

	// processing never outlives this call, panics included.
	defer func() {
		if result == nil && err == nil {
			err = apperr.Transport(0, fmt.Errorf("submission aborted"))
		}
		c.mu.Lock()
		if err != nil {
			c.state = State[R]{Phase: PhaseFailed, Err: err, Progress: c.state.Progress}
		} else {
			c.state = State[R]{Phase: PhaseSucceeded, Result: result, Progress: 1}
		}
		c.mu.Unlock()
	}()

	resp, err := c.uploader.Upload(ctx, c.endpoint, payload, c.track(progress))
	if err == nil && resp == nil {
		err = apperr.Transport(0, fmt.Errorf("empty response"))
	}
	if err != nil && apperr.KindOf(err) == "" {
		err = apperr.Transport(0, err)
	}
	if err != nil {
		log.WithError(err).WithField("kind", apperr.KindOf(err)).Warn("submission failed")
		return nil, err
	}
	result, err = c.decode(resp)
	if err != nil {
		log.WithError(err).Warn("unexpected response shape")
		return nil, err
	}
	log.WithField("request_id", resp.RequestID).Info("submission succeeded")
	return result, nil
}

// track records progress in the state before forwarding it to fn.
func (c *core[R]) track(fn transport.ProgressFunc) transport.ProgressFunc {
	return func(f float64) {
		c.mu.Lock()
		if c.state.Processing() {
			c.state.Progress = f
		}
		c.mu.Unlock()
		if fn != nil {
			fn(f)
		}
	}
}
