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

package credentials

import "testing"

// Tests static credentials retrieval.
func TestStaticGet(t *testing.T) {
	creds, err := NewStaticV4("AKID", "SECRET", "TOKEN").Get()
	if err != nil {
		t.Fatal(err)
	}
	if creds.AccessKeyID != "AKID" {
		t.Errorf("unexpected access key %q", creds.AccessKeyID)
	}
	if creds.SecretAccessKey != "SECRET" {
		t.Errorf("unexpected secret key %q", creds.SecretAccessKey)
	}
	if creds.SessionToken != "TOKEN" {
		t.Errorf("unexpected session token %q", creds.SessionToken)
	}
	if creds.SignerType != SignatureV4 {
		t.Errorf("unexpected signer type %v", creds.SignerType)
	}

	s := &Static{}
	if s.IsExpired() {
		t.Error("static credentials must never expire")
	}
}

// Tests empty static credentials degrade to anonymous.
func TestStaticAnonymous(t *testing.T) {
	creds, err := NewStaticV4("", "", "").Get()
	if err != nil {
		t.Fatal(err)
	}
	if !creds.SignerType.IsAnonymous() {
		t.Errorf("expected anonymous signer type, got %v", creds.SignerType)
	}
}
