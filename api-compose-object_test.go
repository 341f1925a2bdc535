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
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/minio/objstore/pkg/credentials"
)

const (
	gb1    = 1024 * 1024 * 1024
	gb5    = 5 * gb1
	gb5p1  = gb5 + 1
	gb10p1 = 2*gb5 + 1
	gb10p2 = 2*gb5 + 2
)

// copyPartSize is the max part size basis used to split compose sources.
const copyPartSize = maxMultipartPutObjectSize / (maxPartsCount - 1)

// Tests the number of parts required to copy an object of a given size.
func TestPartsRequired(t *testing.T) {
	testCases := []struct {
		size, ref int64
	}{
		{0, 0},
		{1, 1},
		{copyPartSize, 1},
		{copyPartSize + 1, 2},
		{2 * copyPartSize, 2},
		{gb5, 10},
		{gb5p1, 10},
		{2 * gb5, 20},
		{gb10p1, 20},
		{gb10p2, 20},
		{maxMultipartPutObjectSize, 10000},
	}

	for i, testCase := range testCases {
		res := partsRequired(testCase.size)
		if res != testCase.ref {
			t.Errorf("Test %d - output did not match with reference results, Expected %d, got %d", i+1, testCase.ref, res)
		}
	}
}

// Tests the splitting of object copies into even parts.
func TestCalculateEvenSplits(t *testing.T) {
	testCases := []struct {
		// input size and source
		size int64
		src  CopySrcOptions

		// output part-indexes
		starts, ends []int64
	}{
		{0, CopySrcOptions{Start: -1}, nil, nil},
		{1, CopySrcOptions{Start: -1}, []int64{0}, []int64{0}},
		{1, CopySrcOptions{MatchRange: true, Start: 1}, []int64{1}, []int64{1}},
		{copyPartSize, CopySrcOptions{Start: -1}, []int64{0}, []int64{copyPartSize - 1}},
		{
			copyPartSize + 1, CopySrcOptions{Start: -1},
			[]int64{0, copyPartSize/2 + 1},
			[]int64{copyPartSize / 2, copyPartSize},
		},
		{
			copyPartSize + 2, CopySrcOptions{MatchRange: true, Start: 100},
			[]int64{100, 100 + copyPartSize/2 + 1},
			[]int64{100 + copyPartSize/2, 101 + copyPartSize},
		},
	}

	for i, testCase := range testCases {
		resStart, resEnd := calculateEvenSplits(testCase.size, testCase.src)
		if !reflect.DeepEqual(testCase.starts, resStart) || !reflect.DeepEqual(testCase.ends, resEnd) {
			t.Errorf("Test %d - output did not match with reference results, Expected %v/%v, got %v/%v",
				i+1, testCase.starts, testCase.ends, resStart, resEnd)
		}
		// Verify the parts tile the range with no gaps or overlaps.
		for j := range resStart {
			if j > 0 && resStart[j] != resEnd[j-1]+1 {
				t.Errorf("Test %d: gap between part %d and %d", i+1, j-1, j)
			}
			if resEnd[j] < resStart[j] {
				t.Errorf("Test %d: inverted part %d", i+1, j)
			}
		}
	}
}

// Tests validation of compose source options.
func TestCopySrcOptionsValidate(t *testing.T) {
	testCases := []struct {
		src     CopySrcOptions
		success bool
	}{
		{CopySrcOptions{Bucket: "bucket", Object: "object"}, true},
		{CopySrcOptions{Bucket: "bucket", Object: "object", MatchRange: true, Start: 0, End: 100}, true},
		{CopySrcOptions{Bucket: "bucket", Object: "object", MatchRange: true, Start: 100, End: 50}, false},
		{CopySrcOptions{Bucket: "bucket", Object: "object", MatchRange: true, Start: -1, End: 50}, false},
		{CopySrcOptions{Bucket: "", Object: "object"}, false},
		{CopySrcOptions{Bucket: "bucket", Object: ""}, false},
	}
	for i, testCase := range testCases {
		err := testCase.src.validate()
		if err != nil && testCase.success {
			t.Errorf("Test %d: unexpected error %v", i+1, err)
		}
		if err == nil && !testCase.success {
			t.Errorf("Test %d: expected failure", i+1)
		}
	}
}

// Tests validation of compose destination options.
func TestCopyDestOptionsValidate(t *testing.T) {
	testCases := []struct {
		dst     CopyDestOptions
		success bool
	}{
		{CopyDestOptions{Bucket: "bucket", Object: "object"}, true},
		{CopyDestOptions{Bucket: "", Object: "object"}, false},
		{CopyDestOptions{Bucket: "bucket", Object: ""}, false},
		{CopyDestOptions{Bucket: "bucket", Object: "object", UserMetadata: map[string]string{"x-amz-bad\nkey": "v"}, ReplaceMetadata: true}, false},
	}
	for i, testCase := range testCases {
		err := testCase.dst.validate()
		if err != nil && testCase.success {
			t.Errorf("Test %d: unexpected error %v", i+1, err)
		}
		if err == nil && !testCase.success {
			t.Errorf("Test %d: expected failure", i+1)
		}
	}
}

// Tests that compose rejects an empty and an oversized source list.
func TestComposeObjectSourceCount(t *testing.T) {
	c, err := New("s3.amazonaws.com", &Options{})
	if err != nil {
		t.Fatal(err)
	}
	dst := CopyDestOptions{Bucket: "dest-bucket", Object: "dest-object"}

	_, err = c.ComposeObject(nil, dst)
	if err == nil || !strings.Contains(err.Error(), "source") {
		t.Errorf("expected source count error, got %v", err)
	}

	srcs := make([]CopySrcOptions, maxPartsCount+1)
	for i := range srcs {
		srcs[i] = CopySrcOptions{Bucket: "src-bucket", Object: "src-object"}
	}
	_, err = c.ComposeObject(nil, dst, srcs...)
	if err == nil || !strings.Contains(err.Error(), "source") {
		t.Errorf("expected source count error, got %v", err)
	}
}

// Tests that a failed multipart compose aborts the upload it initiated.
func TestComposeObjectAbortOnFailure(t *testing.T) {
	var abortedUploadID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodHead:
			w.Header().Set("Content-Length", strconv.Itoa(6*1024*1024))
			w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
			w.Header().Set("ETag", `"deadbeefdeadbeef"`)
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodPost && r.URL.Query().Has("uploads"):
			fmt.Fprint(w, `<InitiateMultipartUploadResult><Bucket>dest-bucket</Bucket><Key>dest-object</Key><UploadId>UPLOAD-1</UploadId></InitiateMultipartUploadResult>`)
		case r.Method == http.MethodPut && r.URL.Query().Get("uploadId") != "":
			w.WriteHeader(http.StatusConflict)
			fmt.Fprint(w, `<Error><Code>NoSuchUpload</Code><Message>The specified multipart upload does not exist.</Message></Error>`)
		case r.Method == http.MethodDelete && r.URL.Query().Get("uploadId") != "":
			abortedUploadID = r.URL.Query().Get("uploadId")
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	c, err := New(strings.TrimPrefix(srv.URL, "http://"), &Options{
		Creds:  credentials.NewStaticV4("accesskey", "secretkey", ""),
		Region: "us-east-1",
	})
	if err != nil {
		t.Fatal(err)
	}

	dst := CopyDestOptions{Bucket: "dest-bucket", Object: "dest-object"}
	srcs := []CopySrcOptions{
		{Bucket: "src-bucket", Object: "part-one"},
		{Bucket: "src-bucket", Object: "part-two"},
	}
	_, err = c.ComposeObject(context.Background(), dst, srcs...)
	if err == nil {
		t.Fatal("expected compose to fail on the part copy")
	}
	if abortedUploadID != "UPLOAD-1" {
		t.Errorf("expected upload UPLOAD-1 to be aborted, got %q", abortedUploadID)
	}
}
