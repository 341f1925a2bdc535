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
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/minio/objstore/pkg/credentials"
)

// Tests that copying a source larger than the single-copy limit goes
// through the multipart copy machinery instead of a single PUT copy.
func TestCopyObjectLargeSourceCompose(t *testing.T) {
	var directCopies, partCopies, completes int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodHead:
			w.Header().Set("Content-Length", strconv.FormatInt(gb5p1, 10))
			w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
			w.Header().Set("ETag", `"deadbeefdeadbeef"`)
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodPost && r.URL.Query().Has("uploads"):
			fmt.Fprint(w, `<InitiateMultipartUploadResult><Bucket>dest-bucket</Bucket><Key>dest-object</Key><UploadId>UPLOAD-1</UploadId></InitiateMultipartUploadResult>`)
		case r.Method == http.MethodPut && r.URL.Query().Get("uploadId") != "":
			partCopies++
			fmt.Fprintf(w, `<CopyPartResult><ETag>"etag-%s"</ETag></CopyPartResult>`, r.URL.Query().Get("partNumber"))
		case r.Method == http.MethodPost && r.URL.Query().Get("uploadId") != "":
			completes++
			fmt.Fprint(w, `<CompleteMultipartUploadResult><Bucket>dest-bucket</Bucket><Key>dest-object</Key><ETag>"final-etag"</ETag></CompleteMultipartUploadResult>`)
		case r.Method == http.MethodPut:
			directCopies++
			fmt.Fprint(w, `<CopyObjectResult><ETag>"copy-etag"</ETag></CopyObjectResult>`)
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
	src := CopySrcOptions{Bucket: "src-bucket", Object: "src-object"}
	info, err := c.CopyObject(context.Background(), dst, src)
	if err != nil {
		t.Fatal(err)
	}

	if directCopies != 0 {
		t.Errorf("source above the 5GiB copy limit must not use a single PUT copy, saw %d", directCopies)
	}
	if expected := int(partsRequired(gb5p1)); partCopies != expected {
		t.Errorf("expected %d part copies, got %d", expected, partCopies)
	}
	if completes != 1 {
		t.Errorf("expected one complete request, got %d", completes)
	}
	if info.Size != gb5p1 {
		t.Errorf("expected composed size %d, got %d", int64(gb5p1), info.Size)
	}
	if info.ETag != "final-etag" {
		t.Errorf("unexpected etag %q", info.ETag)
	}
}
