// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil builds HTTP clients for the remote service and retries
// idempotent requests that were rate limited.
package httputil

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdfcloud/internal/logging"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

// maxRetryAfter caps a server-provided Retry-After value.
const maxRetryAfter = 60 * time.Second

const defaultMaxRetries = 3

// DoWithRetry executes an idempotent HTTP request and retries on HTTP 429
// (Too Many Requests). The wait is the server's Retry-After when given in
// seconds, otherwise RetryBaseDelay doubled per attempt.
//
// Uploads must not go through here: their bodies are streamed once.
//
// When maxRetries is 0 the default (3) is used. If the context is cancelled
// during a backoff wait the function returns ctx.Err(). After exhausting
// retries the last 429 response is returned so the caller can inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int, log logrus.FieldLogger) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if log == nil {
		log = logging.Discard()
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests || attempt >= maxRetries {
			return resp, nil
		}

		backoff := retryDelay(resp, attempt)
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		log.WithFields(logrus.Fields{
			"url":     req.URL.String(),
			"attempt": attempt + 1,
			"backoff": backoff,
		}).Warn("rate limited, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

func retryDelay(resp *http.Response, attempt int) time.Duration {
	if s := resp.Header.Get("Retry-After"); s != "" {
		if secs, err := strconv.Atoi(s); err == nil && secs >= 0 {
			d := time.Duration(secs) * time.Second
			if d > maxRetryAfter {
				d = maxRetryAfter
			}
			return d
		}
	}
	return RetryBaseDelay << attempt
}
