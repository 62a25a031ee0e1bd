// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transport

import (
	"io"
	"sync"
)

// ProgressFunc receives the fraction of the request body sent, in [0, 1].
// It is passed per call; a nil ProgressFunc disables reporting.
type ProgressFunc func(fraction float64)

// progress turns byte counts into monotonic fractions and stops reporting
// once the call has resolved. fn runs under mu, so stop waits for any
// callback in flight.
type progress struct {
	mu    sync.Mutex
	fn    ProgressFunc
	total int64
	sent  int64
	last  float64
	done  bool
}

func newProgress(total int64, fn ProgressFunc) *progress {
	return &progress{fn: fn, total: total, last: -1}
}

func (p *progress) add(n int) {
	if p.fn == nil || n <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done {
		return
	}
	p.sent += int64(n)
	f := 1.0
	if p.total > 0 && p.sent < p.total {
		f = float64(p.sent) / float64(p.total)
	}
	if f > p.last {
		p.last = f
		p.fn(f)
	}
}

func (p *progress) stop() {
	p.mu.Lock()
	p.done = true
	p.mu.Unlock()
}

// progressReader reports bytes as the HTTP client consumes the body.
type progressReader struct {
	r        io.ReadCloser
	progress *progress
}

func (r *progressReader) Read(b []byte) (int, error) {
	n, err := r.r.Read(b)
	r.progress.add(n)
	return n, err
}

func (r *progressReader) Close() error {
	return r.r.Close()
}
