// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transport submits multipart payloads to the remote PDF service and
// classifies the outcome. Each call is a single attempt and shares no mutable
// state with other calls.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdfcloud/internal/apperr"
	"github.com/pdiddy/pdfcloud/internal/httputil"
	"github.com/pdiddy/pdfcloud/pkg/types"
)

// Endpoint names a remote operation.
type Endpoint string

const (
	EndpointMerge Endpoint = "merge"
	EndpointSplit Endpoint = "split"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 1 << 20

// RequestIDHeader carries the per-call correlation ID.
const RequestIDHeader = "X-Request-ID"

// Response is a decoded 2xx response. Data is left raw for the caller to
// decode into the endpoint's result type.
type Response struct {
	Status    int
	RequestID string
	Success   bool
	Message   string
	Data      json.RawMessage
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type failureBody struct {
	Detail json.RawMessage `json:"detail"`
}

// HTTP uploads payloads over HTTP.
type HTTP struct {
	client    *http.Client
	baseURL   *url.URL
	userAgent string
	token     string
	log       logrus.FieldLogger
}

// New returns an HTTP transport for the service described by cfg.
func New(client *http.Client, cfg types.ServiceConfig, log logrus.FieldLogger) (*HTTP, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must be an absolute http(s) URL", cfg.BaseURL)
	}
	if client == nil {
		client = httputil.NewClient(cfg.Timeout, log)
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &HTTP{
		client:    client,
		baseURL:   base,
		userAgent: cfg.UserAgent,
		token:     cfg.APIToken,
		log:       log.WithField("component", "transport"),
	}, nil
}

// URL returns the absolute URL of an endpoint.
func (t *HTTP) URL(endpoint Endpoint) string {
	return t.baseURL.String() + "/" + string(endpoint)
}

// Upload posts payload to endpoint. progress, when non-nil, is called with
// non-decreasing fractions while the body is sent and never after Upload
// returns. Errors are *apperr.Error of kind remote or transport.
func (t *HTTP) Upload(ctx context.Context, endpoint Endpoint, payload Payload, progress ProgressFunc) (*Response, error) {
	requestID := uuid.NewString()
	log := t.log.WithFields(logrus.Fields{
		"endpoint":   endpoint,
		"request_id": requestID,
	})

	boundary := multipart.NewWriter(io.Discard).Boundary()
	total, err := contentLength(payload, boundary)
	if err != nil {
		return nil, apperr.Transport(0, fmt.Errorf("measuring body: %w", err))
	}

	pr, pw := io.Pipe()
	defer pr.Close()
	go func() {
		_, err := encode(pw, payload, boundary, copyContents)
		pw.CloseWithError(err)
	}()

	tracker := newProgress(total, progress)
	defer tracker.stop()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.URL(endpoint), &progressReader{r: pr, progress: tracker})
	if err != nil {
		return nil, apperr.Transport(0, fmt.Errorf("creating request: %w", err))
	}
	req.ContentLength = total
	req.Header.Set("Content-Type", "multipart/form-data; boundary="+boundary)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}

	log.WithFields(logrus.Fields{
		"files": len(payload.Files()),
		"bytes": total,
	}).Debug("uploading")

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		tracker.stop()
		log.WithError(err).Warn("upload failed")
		return nil, apperr.Transport(0, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	tracker.stop()
	log = log.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start).Round(time.Millisecond),
	})
	if err != nil {
		log.WithError(err).Warn("reading response failed")
		return nil, apperr.Transport(resp.StatusCode, fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		failure := classifyFailure(resp.StatusCode, raw)
		log.WithField("kind", failure.Kind).Warn(failure.Message)
		return nil, failure
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.WithError(err).Warn("malformed response")
		return nil, apperr.Transport(resp.StatusCode, fmt.Errorf("decoding response: %w", err))
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		log.Warn("response has no data")
		return nil, apperr.Transport(resp.StatusCode, errors.New("response has no data"))
	}

	log.Info("upload complete")
	return &Response{
		Status:    resp.StatusCode,
		RequestID: requestID,
		Success:   env.Success,
		Message:   env.Message,
		Data:      env.Data,
	}, nil
}

// classifyFailure returns a remote error when body carries a non-blank
// string detail, and a transport error otherwise.
func classifyFailure(status int, body []byte) *apperr.Error {
	var fb failureBody
	if err := json.Unmarshal(body, &fb); err == nil && len(fb.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(fb.Detail, &detail); err == nil && strings.TrimSpace(detail) != "" {
			return apperr.Remote(status, detail)
		}
	}
	return apperr.Transport(status, fmt.Errorf("HTTP %d without usable detail", status))
}

// Health reports the service status from GET /health at the host root.
// Unlike uploads, the probe is idempotent and retried when rate limited.
func (t *HTTP) Health(ctx context.Context) (string, error) {
	healthURL := t.baseURL.ResolveReference(&url.URL{Path: "/health"})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL.String(), nil)
	if err != nil {
		return "", apperr.Transport(0, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, t.client, req, 0, t.log)
	if err != nil {
		return "", apperr.Transport(0, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", apperr.Transport(resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", classifyFailure(resp.StatusCode, raw)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || body.Status == "" {
		return "", apperr.Transport(resp.StatusCode, fmt.Errorf("malformed health response"))
	}
	return body.Status, nil
}
