// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package operation

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdfcloud/internal/apperr"
	"github.com/pdiddy/pdfcloud/internal/collection"
	"github.com/pdiddy/pdfcloud/internal/transport"
	"github.com/pdiddy/pdfcloud/pkg/types"
)

const mergeData7 = `{"filename":"merged.pdf","pages":7,"session_id":"s1"}`

func TestMergeNeedsTwoFiles(t *testing.T) {
	up := &fakeUploader{data: mergeData7}
	m := NewMerge(up)
	_, err := m.Add(pdf("a.pdf"))
	require.NoError(t, err)

	res, err := m.Submit(context.Background(), nil)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, "need at least 2 files", err.Error())
	assert.Zero(t, up.callCount(), "no upload for a local validation failure")

	st := m.State()
	assert.Equal(t, PhaseFailed, st.Phase)
	assert.Equal(t, err, st.Err)
	assert.False(t, st.Processing())
}

func TestMergeSuccess(t *testing.T) {
	up := &fakeUploader{data: mergeData7, progress: []float64{0.25, 0.5, 1}}
	m := NewMerge(up)
	_, err := m.Add(pdf("a.pdf"), pdf("b.pdf"))
	require.NoError(t, err)

	var seen []float64
	res, err := m.Submit(context.Background(), func(f float64) { seen = append(seen, f) })
	require.NoError(t, err)

	want := &types.MergeResult{PageCount: 7, SessionID: "s1", Filename: "merged.pdf"}
	assert.Equal(t, want, res)
	assert.Equal(t, []float64{0.25, 0.5, 1}, seen)

	st := m.State()
	assert.Equal(t, PhaseSucceeded, st.Phase)
	assert.Equal(t, want, st.Result)
	assert.NoError(t, st.Err)
	assert.False(t, st.Processing())
	assert.Equal(t, 1.0, st.Progress)

	call := up.lastCall()
	assert.Equal(t, transport.EndpointMerge, call.Endpoint)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, fileNames(call.Payload.Files()))
}

func TestMergePreservesCollectionOrder(t *testing.T) {
	up := &fakeUploader{data: mergeData7}
	m := NewMerge(up)
	_, err := m.Add(pdf("1.pdf"), pdf("2.pdf"), pdf("3.pdf"), pdf("4.pdf"))
	require.NoError(t, err)
	require.NoError(t, m.RemoveAt(1))
	_, err = m.Add(pdf("5.pdf"))
	require.NoError(t, err)

	_, err = m.Submit(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"1.pdf", "3.pdf", "4.pdf", "5.pdf"}, fileNames(up.lastCall().Payload.Files()))
	for _, part := range up.lastCall().Payload.Parts {
		assert.Equal(t, "files", part.Name)
	}
}

func TestMergeRemoteFailure(t *testing.T) {
	up := &fakeUploader{err: apperr.Remote(http.StatusBadRequest, "corrupt file")}
	m := NewMerge(up)
	_, _ = m.Add(pdf("a.pdf"), pdf("b.pdf"))

	_, err := m.Submit(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, apperr.IsRemote(err))

	st := m.State()
	assert.Equal(t, PhaseFailed, st.Phase)
	assert.Equal(t, "corrupt file", st.Err.Error())
	assert.False(t, st.Processing())
}

func TestMergeTransportFailure(t *testing.T) {
	up := &fakeUploader{err: apperr.Transport(0, errors.New("dial tcp: connection refused"))}
	m := NewMerge(up)
	_, _ = m.Add(pdf("a.pdf"), pdf("b.pdf"))

	_, err := m.Submit(context.Background(), nil)
	require.Error(t, err)

	st := m.State()
	assert.Equal(t, PhaseFailed, st.Phase)
	assert.Equal(t, apperr.GenericTransportMessage, st.Err.Error())
	assert.False(t, st.Processing())
}

func TestMergeUnclassifiedUploadError(t *testing.T) {
	up := &fakeUploader{err: errors.New("dial tcp: connection refused")}
	m := NewMerge(up)
	_, _ = m.Add(pdf("a.pdf"), pdf("b.pdf"))

	_, err := m.Submit(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, apperr.IsTransport(err))
	assert.Equal(t, apperr.GenericTransportMessage, err.Error())
	assert.ErrorContains(t, errors.Unwrap(err), "connection refused")

	st := m.State()
	assert.Equal(t, PhaseFailed, st.Phase)
	assert.Equal(t, apperr.GenericTransportMessage, st.Err.Error())
	assert.True(t, apperr.IsTransport(st.Err))
	assert.False(t, st.Processing())
}

func TestMergeMalformedResult(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing pages", `{"session_id":"s1"}`},
		{"missing session", `{"pages":3}`},
		{"empty session", `{"pages":3,"session_id":""}`},
		{"wrong types", `{"pages":"seven","session_id":"s1"}`},
		{"not an object", `[1,2]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMerge(&fakeUploader{data: tt.data})
			_, _ = m.Add(pdf("a.pdf"), pdf("b.pdf"))

			_, err := m.Submit(context.Background(), nil)
			require.Error(t, err)
			assert.True(t, apperr.IsTransport(err))
			assert.Equal(t, PhaseFailed, m.State().Phase)
		})
	}
}

func TestMergeBusyWhileProcessing(t *testing.T) {
	up := &fakeUploader{data: mergeData7, gate: make(chan struct{}), started: make(chan struct{})}
	m := NewMerge(up)
	_, _ = m.Add(pdf("a.pdf"), pdf("b.pdf"))

	done := make(chan error, 1)
	go func() {
		_, err := m.Submit(context.Background(), nil)
		done <- err
	}()
	<-up.started

	assert.True(t, m.State().Processing())
	_, err := m.Submit(context.Background(), nil)
	assert.ErrorIs(t, err, ErrBusy)
	assert.ErrorIs(t, m.Clear(), ErrBusy)

	close(up.gate)
	require.NoError(t, <-done)
	assert.Equal(t, 1, up.callCount())
	assert.Equal(t, PhaseSucceeded, m.State().Phase)
}

func TestMergeCancelledContext(t *testing.T) {
	up := &fakeUploader{data: mergeData7, gate: make(chan struct{})}
	m := NewMerge(up)
	_, _ = m.Add(pdf("a.pdf"), pdf("b.pdf"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := m.Submit(ctx, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, apperr.IsTransport(err))
	assert.Equal(t, apperr.GenericTransportMessage, m.State().Err.Error())
	assert.False(t, m.State().Processing())
}

func TestMergePanicClearsProcessing(t *testing.T) {
	m := NewMerge(panicUploader{})
	_, _ = m.Add(pdf("a.pdf"), pdf("b.pdf"))

	assert.Panics(t, func() { _, _ = m.Submit(context.Background(), nil) })
	st := m.State()
	assert.False(t, st.Processing())
	assert.Equal(t, PhaseFailed, st.Phase)
}

type panicUploader struct{}

func (panicUploader) Upload(context.Context, transport.Endpoint, transport.Payload, transport.ProgressFunc) (*transport.Response, error) {
	panic("boom")
}

func TestMergeCapacity(t *testing.T) {
	m := NewMerge(&fakeUploader{}, WithMaxFiles(3))
	assert.Equal(t, 3, m.MaxFiles())

	rejected, err := m.Add(pdf("1.pdf"), pdf("2.pdf"), pdf("3.pdf"), pdf("4.pdf"))
	require.NoError(t, err)
	assert.Equal(t, 1, rejected)

	_, err = m.Add(pdf("5.pdf"))
	assert.True(t, apperr.IsValidation(err))
	assert.ErrorIs(t, err, collection.ErrCapacityExceeded)
	assert.Len(t, m.Files(), 3)

	assert.Equal(t, 20, NewMerge(&fakeUploader{}).MaxFiles())
}

func TestMergeRemoveAtOutOfRange(t *testing.T) {
	m := NewMerge(&fakeUploader{})
	err := m.RemoveAt(0)
	assert.True(t, apperr.IsValidation(err))
	assert.ErrorIs(t, err, collection.ErrIndexOutOfRange)
}

func TestMergeFileSizeLimit(t *testing.T) {
	up := &fakeUploader{data: mergeData7}
	m := NewMerge(up, WithMaxFileSize(16))
	_, _ = m.Add(types.FileFromBytes("small.pdf", make([]byte, 8)), types.FileFromBytes("big.pdf", make([]byte, 64)))

	_, err := m.Submit(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Contains(t, err.Error(), "big.pdf")
	assert.Zero(t, up.callCount())

	unlimited := NewMerge(up, WithMaxFileSize(0))
	_, _ = unlimited.Add(types.FileFromBytes("big.pdf", make([]byte, 64)), pdf("b.pdf"))
	_, err = unlimited.Submit(context.Background(), nil)
	assert.NoError(t, err)
}

func TestMergeClearReturnsToIdle(t *testing.T) {
	m := NewMerge(&fakeUploader{data: mergeData7})
	_, _ = m.Add(pdf("a.pdf"))
	_, _ = m.Submit(context.Background(), nil)
	require.Equal(t, PhaseFailed, m.State().Phase)

	require.NoError(t, m.Clear())
	assert.Equal(t, PhaseIdle, m.State().Phase)
	assert.Empty(t, m.Files())
}

func TestMergeRetryAfterFailure(t *testing.T) {
	up := &fakeUploader{err: apperr.Remote(500, "temporary")}
	m := NewMerge(up)
	_, _ = m.Add(pdf("a.pdf"), pdf("b.pdf"))

	_, err := m.Submit(context.Background(), nil)
	require.Error(t, err)

	up.err = nil
	up.data = mergeData7
	res, err := m.Submit(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 7, res.PageCount)
	assert.Equal(t, 2, up.callCount(), "each submission is exactly one upload")
}

func TestMergeLogsOutcome(t *testing.T) {
	logger, hook := test.NewNullLogger()
	m := NewMerge(&fakeUploader{err: apperr.Remote(400, "corrupt file")}, WithLogger(logger))
	_, _ = m.Add(pdf("a.pdf"), pdf("b.pdf"))
	_, _ = m.Submit(context.Background(), nil)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "submission failed", entry.Message)
	assert.Equal(t, "merge", entry.Data["operation"])
	assert.Equal(t, apperr.KindRemote, entry.Data["kind"])
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "processing", PhaseProcessing.String())
	assert.Equal(t, "succeeded", PhaseSucceeded.String())
	assert.Equal(t, "failed", PhaseFailed.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
