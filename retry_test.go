/*
 * MinIO Go Library for Amazon S3 Compatible Cloud Storage
 * Copyright 2015-2025 MinIO, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package objstore

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"
)

// Tests the S3 error code retry classification.
func TestIsS3CodeRetryable(t *testing.T) {
	retryable := []string{
		"RequestError", "RequestTimeout", "Throttling", "ThrottlingException",
		"RequestLimitExceeded", "RequestThrottled", "InternalError",
		"ExpiredToken", "ExpiredTokenException", "SlowDown",
	}
	for _, code := range retryable {
		if !isS3CodeRetryable(code) {
			t.Errorf("expected %q to be retryable", code)
		}
	}
	for _, code := range []string{"NoSuchBucket", "NoSuchKey", "AccessDenied", ""} {
		if isS3CodeRetryable(code) {
			t.Errorf("expected %q to be non retryable", code)
		}
	}
}

// Tests the HTTP status code retry classification.
func TestIsHTTPStatusRetryable(t *testing.T) {
	retryable := []int{429, 499, 500, 502, 503, 504, 520}
	for _, status := range retryable {
		if !isHTTPStatusRetryable(status) {
			t.Errorf("expected status %d to be retryable", status)
		}
	}
	for _, status := range []int{200, 204, 206, 301, 400, 403, 404, 409, 501} {
		if isHTTPStatusRetryable(status) {
			t.Errorf("expected status %d to be non retryable", status)
		}
	}
}

// Tests request error classification for the retry loop.
func TestIsRequestErrorRetryable(t *testing.T) {
	ctx := context.Background()

	// Internal deadline with a live outer context retries.
	if !isRequestErrorRetryable(ctx, context.DeadlineExceeded) {
		t.Error("internal timeout should be retried while the caller context is live")
	}

	// Once the caller context is gone the request must not be retried.
	canceledCtx, cancel := context.WithCancel(ctx)
	cancel()
	if isRequestErrorRetryable(canceledCtx, context.Canceled) {
		t.Error("canceled caller context must not be retried")
	}

	// TLS handshake against a plain HTTP server is a permanent failure.
	urlErr := &url.Error{Op: "Get", URL: "http://localhost:9000", Err: errors.New("http: server gave HTTP response to HTTPS client")}
	if isRequestErrorRetryable(ctx, urlErr) {
		t.Error("HTTP response to HTTPS client must not be retried")
	}

	// Generic connection failures are retried.
	urlErr = &url.Error{Op: "Get", URL: "http://localhost:9000", Err: errors.New("connection refused")}
	if !isRequestErrorRetryable(ctx, urlErr) {
		t.Error("connection refused should be retried")
	}
}

// Tests that the retry timer yields the expected attempts and honors
// context cancellation.
func TestNewRetryTimer(t *testing.T) {
	c, err := New("s3.amazonaws.com", &Options{})
	if err != nil {
		t.Fatal(err)
	}

	var attempts []int
	for attempt := range c.newRetryTimer(context.Background(), 3, time.Millisecond, 10*time.Millisecond, NoJitter) {
		attempts = append(attempts, attempt)
	}
	if len(attempts) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(attempts))
	}
	for i, attempt := range attempts {
		if attempt != i+1 {
			t.Errorf("expected attempt %d, got %d", i+1, attempt)
		}
	}

	// Canceling the context stops the timer early.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	count := 0
	for range c.newRetryTimer(ctx, 10, time.Millisecond, 10*time.Millisecond, NoJitter) {
		count++
		if count == 2 {
			cancel()
		}
	}
	if count > 3 {
		t.Errorf("expected early exit after cancel, got %d attempts", count)
	}
}

// Tests that the continuous retry timer keeps producing attempts until
// the done channel closes.
func TestNewRetryTimerContinous(t *testing.T) {
	c, err := New("s3.amazonaws.com", &Options{})
	if err != nil {
		t.Fatal(err)
	}

	doneCh := make(chan struct{})
	attemptCh := c.newRetryTimerContinous(time.Millisecond, 5*time.Millisecond, NoJitter, doneCh)

	var last int
	for i := 0; i < 5; i++ {
		attempt, ok := <-attemptCh
		if !ok {
			t.Fatal("attempt channel closed prematurely")
		}
		if attempt != i {
			t.Errorf("expected attempt %d, got %d", i, attempt)
		}
		last = attempt
	}
	if last != 4 {
		t.Errorf("expected last attempt 4, got %d", last)
	}
	close(doneCh)
}

func TestIsHTTPReqErrorRetryableStatus(t *testing.T) {
	// 501 must not be retried, it doubles as MethodNotAllowed mapping.
	if isHTTPStatusRetryable(http.StatusNotImplemented) {
		t.Error("501 must not be retryable")
	}
}
