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

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func encodeJWT(t *testing.T, claims map[string]interface{}) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatal(err)
	}
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + "."
}

// Tests the expiry peek into unverified web identity tokens.
func TestWebIdentityTokenExpiry(t *testing.T) {
	token := encodeJWT(t, map[string]interface{}{
		"sub": "user",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if expiry := tokenExpiry(token); expiry <= 3500 || expiry > 3600 {
		t.Errorf("expected expiry close to one hour, got %d", expiry)
	}

	// No exp claim.
	if got := tokenExpiry(encodeJWT(t, map[string]interface{}{"sub": "user"})); got != 0 {
		t.Errorf("expected 0 for a token without exp, got %d", got)
	}
	// Already expired.
	expired := encodeJWT(t, map[string]interface{}{"exp": time.Now().Add(-time.Hour).Unix()})
	if got := tokenExpiry(expired); got != 0 {
		t.Errorf("expected 0 for an expired token, got %d", got)
	}
	// Not a JWT at all.
	if got := tokenExpiry("garbage"); got != 0 {
		t.Errorf("expected 0 for a malformed token, got %d", got)
	}
}

// Tests web identity retrieval against a fake STS endpoint.
func TestSTSWebIdentityRetrieve(t *testing.T) {
	token := encodeJWT(t, map[string]interface{}{
		"sub": "user",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	var gotDuration string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("Action") != "AssumeRoleWithWebIdentity" {
			t.Errorf("unexpected action %q", q.Get("Action"))
		}
		if q.Get("WebIdentityToken") != token {
			t.Error("request misses the web identity token")
		}
		gotDuration = q.Get("DurationSeconds")

		expiration := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
		fmt.Fprintf(w, `<AssumeRoleWithWebIdentityResponse xmlns="https://sts.amazonaws.com/doc/2011-06-15/">
  <AssumeRoleWithWebIdentityResult>
    <Credentials>
      <AccessKeyId>STSACCESSKEY</AccessKeyId>
      <SecretAccessKey>STSSECRETKEY</SecretAccessKey>
      <SessionToken>STSSESSIONTOKEN</SessionToken>
      <Expiration>%s</Expiration>
    </Credentials>
  </AssumeRoleWithWebIdentityResult>
</AssumeRoleWithWebIdentityResponse>`, expiration)
	}))
	defer srv.Close()

	creds, err := NewSTSWebIdentity(srv.URL, func() (*WebIdentityToken, error) {
		return &WebIdentityToken{Token: token}, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	v, err := creds.Get()
	if err != nil {
		t.Fatal(err)
	}
	if v.AccessKeyID != "STSACCESSKEY" || v.SecretAccessKey != "STSSECRETKEY" || v.SessionToken != "STSSESSIONTOKEN" {
		t.Errorf("unexpected credentials %+v", v)
	}
	if v.SignerType != SignatureV4 {
		t.Errorf("unexpected signer type %v", v.SignerType)
	}
	// The duration is learned from the token's exp claim.
	if gotDuration == "" {
		t.Error("expected DurationSeconds to be derived from the token expiry")
	}
}
