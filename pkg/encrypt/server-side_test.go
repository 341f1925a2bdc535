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

package encrypt

import (
	"bytes"
	"net/http"
	"testing"
)

// Tests that only SSE-C methods demand a TLS connection.
func TestTLSRequired(t *testing.T) {
	ssec, err := NewSSEC(bytes.Repeat([]byte{1}, 32))
	if err != nil {
		t.Fatal(err)
	}
	if !ssec.TLSRequired() {
		t.Error("SSE-C must require TLS")
	}
	if !SSECopy(ssec).TLSRequired() {
		t.Error("SSE-C copy must require TLS")
	}
	if NewSSE().TLSRequired() {
		t.Error("SSE-S3 must not require TLS")
	}
	kms, err := NewSSEKMS("key-id", nil)
	if err != nil {
		t.Fatal(err)
	}
	if kms.TLSRequired() {
		t.Error("SSE-KMS must not require TLS")
	}
}

// Tests the SSE-C key length check.
func TestNewSSECKeyLength(t *testing.T) {
	if _, err := NewSSEC(make([]byte, 16)); err == nil {
		t.Error("expected error for a 128 bit key")
	}
	if _, err := NewSSEC(make([]byte, 32)); err != nil {
		t.Errorf("unexpected error for a 256 bit key: %v", err)
	}
}

// Tests the SSE-C header marshalling for both directions of a copy.
func TestSSECMarshal(t *testing.T) {
	ssec, err := NewSSEC(bytes.Repeat([]byte{1}, 32))
	if err != nil {
		t.Fatal(err)
	}

	h := make(http.Header)
	ssec.Marshal(h)
	if h.Get(SseCustomerAlgorithm) != "AES256" {
		t.Errorf("unexpected algorithm %q", h.Get(SseCustomerAlgorithm))
	}
	if h.Get(SseCustomerKey) == "" || h.Get(SseCustomerKeyMD5) == "" {
		t.Error("expected key and key MD5 headers to be set")
	}

	h = make(http.Header)
	SSECopy(ssec).Marshal(h)
	if h.Get(SseCopyCustomerAlgorithm) != "AES256" {
		t.Errorf("unexpected copy algorithm %q", h.Get(SseCopyCustomerAlgorithm))
	}
	if h.Get(SseCustomerKey) != "" {
		t.Error("copy marshal must not set the non-copy key header")
	}

	// SSE round trips a copy encryption back to the original.
	if SSE(SSECopy(ssec)) != ssec {
		t.Error("SSE(SSECopy(.)) must return the original encryption")
	}
}
