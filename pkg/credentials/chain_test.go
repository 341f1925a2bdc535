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

// Tests the chain picks the first provider with credentials.
func TestChainGet(t *testing.T) {
	anonymous := &stubProvider{
		creds: Value{SignerType: SignatureAnonymous},
	}
	first := &stubProvider{
		creds: Value{
			AccessKeyID:     "FIRSTKEY",
			SecretAccessKey: "FIRSTSECRET",
			SignerType:      SignatureV4,
		},
	}
	second := &stubProvider{
		creds: Value{
			AccessKeyID:     "SECONDKEY",
			SecretAccessKey: "SECONDSECRET",
			SignerType:      SignatureV4,
		},
	}

	creds, err := NewChainCredentials([]Provider{anonymous, first, second}).Get()
	if err != nil {
		t.Fatal(err)
	}
	if creds.AccessKeyID != "FIRSTKEY" {
		t.Errorf("expected the first non-anonymous provider to win, got %q", creds.AccessKeyID)
	}
	if second.retrieveCalls != 0 {
		t.Error("providers after the winning one must not be consulted")
	}
}

// Tests an exhausted chain returns anonymous credentials.
func TestChainAnonymousFallback(t *testing.T) {
	creds, err := NewChainCredentials([]Provider{
		&stubProvider{creds: Value{SignerType: SignatureAnonymous}},
		&stubProvider{creds: Value{SignerType: SignatureAnonymous}},
	}).Get()
	if err != nil {
		t.Fatal(err)
	}
	if !creds.SignerType.IsAnonymous() {
		t.Errorf("expected anonymous credentials, got %+v", creds)
	}
}

// Tests the chain expiry follows the cached provider.
func TestChainIsExpired(t *testing.T) {
	p := &stubProvider{
		creds: Value{
			AccessKeyID:     "AKID",
			SecretAccessKey: "SECRET",
			SignerType:      SignatureV4,
		},
		expired: true,
	}
	chain := &Chain{Providers: []Provider{p}}

	if !chain.IsExpired() {
		t.Error("a chain without a cached provider must report expired")
	}
	if _, err := chain.Retrieve(); err != nil {
		t.Fatal(err)
	}
	if chain.IsExpired() {
		t.Error("a chain with a freshly retrieved provider must not report expired")
	}
}
