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
	"bytes"
	"io"
	"net/http"
	"sync"
	"testing"
)

// Tests concurrent safe cache operations.
func TestBucketLocationCacheOps(t *testing.T) {
	cache := newBucketLocationCache()

	cache.Set("mybucket", "us-east-1")
	location, ok := cache.Get("mybucket")
	if !ok {
		t.Fatal("expected cache hit for mybucket")
	}
	if location != "us-east-1" {
		t.Errorf("expected us-east-1, got %q", location)
	}

	cache.Delete("mybucket")
	if _, ok = cache.Get("mybucket"); ok {
		t.Fatal("expected cache miss after delete")
	}

	// Hammer the cache from multiple goroutines, the map is guarded by
	// a RWMutex and must not race.
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cache.Set("bucket", "eu-west-1")
				cache.Get("bucket")
				cache.Delete("bucket")
			}
		}()
	}
	wg.Wait()
}

func newLocationResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Status:     http.StatusText(statusCode),
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Header:     http.Header{},
	}
}

// Tests parsing of GetBucketLocation responses.
func TestProcessBucketLocationResponse(t *testing.T) {
	testCases := []struct {
		body             string
		expectedLocation string
	}{
		{`<?xml version="1.0" encoding="UTF-8"?><LocationConstraint xmlns="http://s3.amazonaws.com/doc/2006-03-01/">eu-central-1</LocationConstraint>`, "eu-central-1"},
		{`<?xml version="1.0" encoding="UTF-8"?><LocationConstraint xmlns="http://s3.amazonaws.com/doc/2006-03-01/"></LocationConstraint>`, "us-east-1"},
		{`<?xml version="1.0" encoding="UTF-8"?><LocationConstraint xmlns="http://s3.amazonaws.com/doc/2006-03-01/">EU</LocationConstraint>`, "eu-west-1"},
	}
	for i, testCase := range testCases {
		location, err := processBucketLocationResponse(newLocationResponse(http.StatusOK, testCase.body), "mybucket")
		if err != nil {
			t.Errorf("Test %d: unexpected error %v", i+1, err)
			continue
		}
		if location != testCase.expectedLocation {
			t.Errorf("Test %d: expected %q, got %q", i+1, testCase.expectedLocation, location)
		}
	}
}

// Tests that anonymous requests denied access still resolve a usable
// location instead of failing the overall call.
func TestProcessBucketLocationResponseAccessDenied(t *testing.T) {
	resp := newLocationResponse(http.StatusForbidden, "")
	location, err := processBucketLocationResponse(resp, "mybucket")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if location != "us-east-1" {
		t.Errorf("expected us-east-1 fallback, got %q", location)
	}

	// When the response names the region, use it.
	resp = newLocationResponse(http.StatusForbidden, "")
	resp.Header.Set("x-amz-bucket-region", "ap-south-1")
	location, err = processBucketLocationResponse(resp, "mybucket")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if location != "ap-south-1" {
		t.Errorf("expected ap-south-1, got %q", location)
	}
}

// Tests the snowball NotImplemented special case.
func TestProcessBucketLocationResponseSnowball(t *testing.T) {
	body := `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NotImplemented</Code><Message>unsupported</Message></Error>`
	resp := newLocationResponse(http.StatusNotImplemented, body)
	resp.Header.Set("Server", "AmazonSnowball")
	location, err := processBucketLocationResponse(resp, "mybucket")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if location != "snowball" {
		t.Errorf("expected snowball location, got %q", location)
	}
}

// Tests non recoverable error responses surface as errors.
func TestProcessBucketLocationResponseError(t *testing.T) {
	body := `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchBucket</Code><Message>The specified bucket does not exist</Message></Error>`
	_, err := processBucketLocationResponse(newLocationResponse(http.StatusNotFound, body), "mybucket")
	if err == nil {
		t.Fatal("expected error for NoSuchBucket")
	}
	if ToErrorResponse(err).Code != "NoSuchBucket" {
		t.Errorf("expected NoSuchBucket, got %q", ToErrorResponse(err).Code)
	}
}
