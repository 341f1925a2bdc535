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
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/minio/objstore/pkg/credentials"
	"github.com/minio/objstore/pkg/encrypt"
)

// Tests that SSE-C requests against a plain HTTP endpoint fail locally
// before any request is sent. The customer key travels in a header and
// must never leave the client unencrypted.
func TestSSECRequiresTLS(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		w.Header().Set("ETag", `"deadbeefdeadbeef"`)
	}))
	defer srv.Close()

	c, err := New(strings.TrimPrefix(srv.URL, "http://"), &Options{
		Creds:  credentials.NewStaticV4("accesskey", "secretkey", ""),
		Region: "us-east-1",
	})
	if err != nil {
		t.Fatal(err)
	}

	sse, err := encrypt.NewSSEC(bytes.Repeat([]byte{1}, 32))
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	content := []byte("hello")

	if _, err = c.PutObject(ctx, "mybucket", "myobject", bytes.NewReader(content), int64(len(content)),
		PutObjectOptions{ServerSideEncryption: sse}); err == nil {
		t.Error("PutObject with SSE-C over HTTP must fail")
	}
	if _, err = c.StatObject(ctx, "mybucket", "myobject", StatObjectOptions{ServerSideEncryption: sse}); err == nil {
		t.Error("StatObject with SSE-C over HTTP must fail")
	}
	if _, err = c.GetObject(ctx, "mybucket", "myobject", GetObjectOptions{ServerSideEncryption: sse}); err == nil {
		t.Error("GetObject with SSE-C over HTTP must fail")
	}
	if _, err = c.CopyObject(ctx, CopyDestOptions{Bucket: "mybucket", Object: "copy", Encryption: sse},
		CopySrcOptions{Bucket: "mybucket", Object: "myobject"}); err == nil {
		t.Error("CopyObject with SSE-C over HTTP must fail")
	}
	if _, err = c.ComposeObject(ctx, CopyDestOptions{Bucket: "mybucket", Object: "compose"},
		CopySrcOptions{Bucket: "mybucket", Object: "myobject", Encryption: sse}); err == nil {
		t.Error("ComposeObject with SSE-C source over HTTP must fail")
	}
	core := Core{c}
	if _, err = core.PutObjectPart(ctx, "mybucket", "myobject", "UPLOAD-1", 1,
		bytes.NewReader(content), int64(len(content)), PutObjectPartOptions{SSE: sse}); err == nil {
		t.Error("PutObjectPart with SSE-C over HTTP must fail")
	}

	if requests != 0 {
		t.Errorf("SSE-C over HTTP contacted the server %d time(s), must fail before any I/O", requests)
	}

	// The same operations without SSE-C do reach the server.
	if _, err = c.PutObject(ctx, "mybucket", "myobject", bytes.NewReader(content), int64(len(content)),
		PutObjectOptions{}); err != nil {
		t.Errorf("plain PutObject over HTTP failed: %v", err)
	}
	if requests == 0 {
		t.Error("plain PutObject never reached the server")
	}
}
