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
	"os"
	"strings"
	"testing"
)

// Tests part size calculations for a variety of object sizes.
func TestOptimalPartInfo(t *testing.T) {
	testCases := []struct {
		objectSize         int64
		configuredPartSize int64

		expectedTotalParts   int
		expectedPartSize     int64
		expectedLastPartSize int64
		expectedErr          string
	}{
		// Unknown size defaults to the maximum object size basis.
		{
			objectSize:           -1,
			expectedTotalParts:   9987,
			expectedPartSize:     550502400,
			expectedLastPartSize: 241172480,
		},
		// Maximum object size, same as unknown.
		{
			objectSize:           maxMultipartPutObjectSize,
			expectedTotalParts:   9987,
			expectedPartSize:     550502400,
			expectedLastPartSize: 241172480,
		},
		// A 5GiB object splits evenly on the minimum part size.
		{
			objectSize:           5 * 1024 * 1024 * 1024,
			expectedTotalParts:   1024,
			expectedPartSize:     absMinPartSize,
			expectedLastPartSize: absMinPartSize,
		},
		// Small objects still produce a single minimum sized part.
		{
			objectSize:           6 * 1024 * 1024,
			expectedTotalParts:   2,
			expectedPartSize:     absMinPartSize,
			expectedLastPartSize: 1024 * 1024,
		},
		// Unknown size with a configured part size caps at 10000 parts.
		{
			objectSize:           -1,
			configuredPartSize:   10 * 1024 * 1024,
			expectedTotalParts:   10000,
			expectedPartSize:     10 * 1024 * 1024,
			expectedLastPartSize: 10 * 1024 * 1024,
		},
		// Object size above the supported maximum.
		{
			objectSize:  maxMultipartPutObjectSize + 1,
			expectedErr: "Your proposed upload size",
		},
		// Configured part size larger than the object.
		{
			objectSize:         5 * 1024 * 1024,
			configuredPartSize: 10 * 1024 * 1024,
			expectedErr:        "Your proposed upload size",
		},
		// Configured part size below the allowed minimum.
		{
			objectSize:         100 * 1024 * 1024,
			configuredPartSize: 1024 * 1024,
			expectedErr:        "Input part size is smaller than allowed minimum of 5MiB.",
		},
		// Configured part size above the allowed maximum.
		{
			objectSize:         maxMultipartPutObjectSize,
			configuredPartSize: maxPartSize + 1,
			expectedErr:        "Input part size is bigger than allowed maximum of 5GiB.",
		},
	}

	for i, testCase := range testCases {
		totalParts, partSize, lastPartSize, err := OptimalPartInfo(testCase.objectSize, testCase.configuredPartSize)
		if testCase.expectedErr != "" {
			if err == nil {
				t.Errorf("Test %d: expected error %q, got none", i+1, testCase.expectedErr)
			} else if !strings.Contains(err.Error(), testCase.expectedErr) {
				t.Errorf("Test %d: expected error %q, got %q", i+1, testCase.expectedErr, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Test %d: unexpected error %v", i+1, err)
			continue
		}
		if totalParts != testCase.expectedTotalParts {
			t.Errorf("Test %d: expected %d parts, got %d", i+1, testCase.expectedTotalParts, totalParts)
		}
		if partSize != testCase.expectedPartSize {
			t.Errorf("Test %d: expected part size %d, got %d", i+1, testCase.expectedPartSize, partSize)
		}
		if lastPartSize != testCase.expectedLastPartSize {
			t.Errorf("Test %d: expected last part size %d, got %d", i+1, testCase.expectedLastPartSize, lastPartSize)
		}
		// The parts must add back up to the object size.
		if testCase.objectSize > 0 {
			total := int64(totalParts-1)*partSize + lastPartSize
			if total != testCase.objectSize {
				t.Errorf("Test %d: parts sum to %d, expected %d", i+1, total, testCase.objectSize)
			}
		}
	}
}

// Tests reader type detection used by the upload dispatcher.
func TestIsReadAt(t *testing.T) {
	if isReadAt(strings.NewReader("abc")) != true {
		t.Error("strings.Reader implements io.ReaderAt, expected true")
	}
	if isReadAt(bytes.NewBuffer([]byte("abc"))) {
		t.Error("bytes.Buffer is not an io.ReaderAt, expected false")
	}
	if isReadAt(os.Stdin) {
		t.Error("stdin must not be treated as a ReaderAt")
	}
	if isReadAt(os.Stdout) {
		t.Error("stdout must not be treated as a ReaderAt")
	}

	f, err := os.CreateTemp(t.TempDir(), "readat")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if !isReadAt(f) {
		t.Error("regular files are ReaderAt, expected true")
	}
}

func TestIsObject(t *testing.T) {
	if isObject(strings.NewReader("abc")) {
		t.Error("expected false for a plain reader")
	}
	if !isObject(&Object{}) {
		t.Error("expected true for *Object")
	}
}
