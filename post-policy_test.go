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
	"encoding/json"
	"strings"
	"testing"
	"time"
)

// Tests that the policy JSON carries the expiration and all conditions.
func TestPostPolicyMarshal(t *testing.T) {
	p := NewPostPolicy()
	if err := p.SetExpires(time.Date(2026, time.January, 2, 15, 4, 5, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	if err := p.SetBucket("mybucket"); err != nil {
		t.Fatal(err)
	}
	if err := p.SetKey("photos/photo.jpg"); err != nil {
		t.Fatal(err)
	}
	if err := p.SetContentType("image/jpeg"); err != nil {
		t.Fatal(err)
	}
	if err := p.SetContentLengthRange(1024, 1024*1024); err != nil {
		t.Fatal(err)
	}

	policy := p.String()
	for _, want := range []string{
		`"expiration":"2026-01-02T15:04:05Z"`,
		`["eq","$bucket","mybucket"]`,
		`["eq","$key","photos/photo.jpg"]`,
		`["eq","$Content-Type","image/jpeg"]`,
		`["content-length-range", 1024, 1048576]`,
	} {
		if !strings.Contains(policy, want) {
			t.Errorf("policy %s missing %s", policy, want)
		}
	}

	// The hand built string must still be valid JSON.
	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(policy), &decoded); err != nil {
		t.Fatalf("policy is not valid JSON: %v", err)
	}

	// Form data mirrors the conditions.
	if p.formData["bucket"] != "mybucket" {
		t.Errorf("unexpected formData bucket %q", p.formData["bucket"])
	}
	if p.formData["key"] != "photos/photo.jpg" {
		t.Errorf("unexpected formData key %q", p.formData["key"])
	}
	if p.formData["Content-Type"] != "image/jpeg" {
		t.Errorf("unexpected formData content type %q", p.formData["Content-Type"])
	}
}

// Tests input validation of policy setters.
func TestPostPolicyValidation(t *testing.T) {
	p := NewPostPolicy()

	if err := p.SetExpires(time.Time{}); err == nil {
		t.Error("expected error for zero expiry")
	}
	if err := p.SetKey(" "); err == nil {
		t.Error("expected error for blank key")
	}
	if err := p.SetBucket(""); err == nil {
		t.Error("expected error for empty bucket")
	}
	if err := p.SetContentType(""); err == nil {
		t.Error("expected error for empty content type")
	}
	if err := p.SetContentLengthRange(100, 10); err == nil {
		t.Error("expected error for min greater than max")
	}
	if err := p.SetContentLengthRange(-1, 10); err == nil {
		t.Error("expected error for negative min")
	}
	if err := p.SetUserMetadata("", "value"); err == nil {
		t.Error("expected error for empty metadata key")
	}
	if err := p.SetCondition("eq", "X-Amz-Date", ""); err == nil {
		t.Error("expected error for empty condition value")
	}
	if err := p.SetCondition("eq", "X-Amz-Foo", "bar"); err == nil {
		t.Error("expected error for unsupported condition")
	}
}

// Tests the starts-with conditions accept empty values.
func TestPostPolicyStartsWith(t *testing.T) {
	p := NewPostPolicy()
	if err := p.SetKeyStartsWith(""); err != nil {
		t.Errorf("empty starts-with key should be allowed: %v", err)
	}
	if err := p.SetContentTypeStartsWith(""); err != nil {
		t.Errorf("empty starts-with content type should be allowed: %v", err)
	}
	policy := p.String()
	if !strings.Contains(policy, `["starts-with","$key",""]`) {
		t.Errorf("policy missing starts-with key condition: %s", policy)
	}
}

// Tests user metadata and user data conditions.
func TestPostPolicyUserMetadata(t *testing.T) {
	p := NewPostPolicy()
	if err := p.SetUserMetadata("colour", "blue"); err != nil {
		t.Fatal(err)
	}
	if err := p.SetUserData("checksum-crc32", "deadbeef"); err != nil {
		t.Fatal(err)
	}
	policy := p.String()
	if !strings.Contains(policy, `["eq","$x-amz-meta-colour","blue"]`) {
		t.Errorf("policy missing metadata condition: %s", policy)
	}
	if !strings.Contains(policy, `["eq","$x-amz-checksum-crc32","deadbeef"]`) {
		t.Errorf("policy missing user data condition: %s", policy)
	}
	if p.formData["x-amz-meta-colour"] != "blue" {
		t.Errorf("unexpected formData %v", p.formData)
	}
}
