// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package operation

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pdiddy/pdfcloud/internal/transport"
	"github.com/pdiddy/pdfcloud/pkg/types"
)

type uploadCall struct {
	Endpoint transport.Endpoint
	Payload  transport.Payload
}

// fakeUploader records calls and replies with a canned response or error.
// When gate is non-nil, Upload blocks until it is closed.
type fakeUploader struct {
	mu       sync.Mutex
	calls    []uploadCall
	data     string
	err      error
	progress []float64
	gate     chan struct{}
	started  chan struct{}
}

func (f *fakeUploader) Upload(ctx context.Context, endpoint transport.Endpoint, payload transport.Payload, progress transport.ProgressFunc) (*transport.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, uploadCall{Endpoint: endpoint, Payload: payload})
	f.mu.Unlock()

	if f.started != nil {
		close(f.started)
	}
	for _, p := range f.progress {
		progress(p)
	}
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &transport.Response{Status: 200, RequestID: "req-1", Success: true, Data: json.RawMessage(f.data)}, nil
}

func (f *fakeUploader) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeUploader) lastCall() uploadCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func pdf(name string) types.FileHandle {
	return types.FileFromBytes(name, []byte("%PDF-1.4 "+name))
}

func fileNames(files []types.FileHandle) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Name)
	}
	return out
}
