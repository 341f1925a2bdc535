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
	"errors"
	"testing"
	"time"
)

// stubProvider is a configurable provider for exercising Credentials
// caching behavior.
type stubProvider struct {
	creds         Value
	expired       bool
	err           error
	retrieveCalls int
}

func (s *stubProvider) Retrieve() (Value, error) {
	s.retrieveCalls++
	s.expired = false
	return s.creds, s.err
}

func (s *stubProvider) IsExpired() bool {
	return s.expired
}

// Tests that Get caches the provider value until expiry.
func TestCredentialsGetCaching(t *testing.T) {
	p := &stubProvider{
		creds: Value{
			AccessKeyID:     "AKID",
			SecretAccessKey: "SECRET",
			SignerType:      SignatureV4,
		},
	}
	c := New(p)

	if !c.IsExpired() {
		t.Error("credentials must start expired before the first Get")
	}

	creds, err := c.Get()
	if err != nil {
		t.Fatal(err)
	}
	if creds.AccessKeyID != "AKID" || creds.SecretAccessKey != "SECRET" {
		t.Errorf("unexpected credentials %+v", creds)
	}
	if p.retrieveCalls != 1 {
		t.Errorf("expected one retrieve call, got %d", p.retrieveCalls)
	}

	// Second Get returns the cached value.
	if _, err = c.Get(); err != nil {
		t.Fatal(err)
	}
	if p.retrieveCalls != 1 {
		t.Errorf("cached Get must not call the provider again, got %d calls", p.retrieveCalls)
	}

	// Expire forces a refresh on the next Get.
	c.Expire()
	if !c.IsExpired() {
		t.Error("expected credentials to report expired after Expire()")
	}
	if _, err = c.Get(); err != nil {
		t.Fatal(err)
	}
	if p.retrieveCalls != 2 {
		t.Errorf("expected refresh after Expire, got %d calls", p.retrieveCalls)
	}
}

// Tests that provider errors are surfaced by Get.
func TestCredentialsGetError(t *testing.T) {
	p := &stubProvider{err: errors.New("provider failure")}
	c := New(p)

	if _, err := c.Get(); err == nil {
		t.Error("expected provider error from Get")
	}
}

// Tests a nil Credentials returns anonymous values.
func TestCredentialsNil(t *testing.T) {
	var c *Credentials
	creds, err := c.Get()
	if err != nil {
		t.Fatal(err)
	}
	if creds.AccessKeyID != "" || creds.SecretAccessKey != "" {
		t.Errorf("expected anonymous value, got %+v", creds)
	}
}

// Tests the shared expiry helper, with and without the default window.
func TestExpiry(t *testing.T) {
	now := time.Date(2026, time.August, 24, 12, 0, 0, 0, time.UTC)

	var e Expiry
	e.CurrentTime = func() time.Time { return now }
	e.SetExpiration(now.Add(time.Hour), 0)
	if e.IsExpired() {
		t.Error("credentials expiring in one hour must not be expired")
	}

	// An explicit window cuts into the expiration.
	e.SetExpiration(now.Add(time.Hour), 2*time.Hour)
	if !e.IsExpired() {
		t.Error("window larger than the lifetime must expire the credentials")
	}

	// DefaultExpiryWindow triggers refresh at 80% of the lifetime.
	e.SetExpiration(now.Add(time.Hour), DefaultExpiryWindow)
	if e.IsExpired() {
		t.Error("fresh credentials must not be expired")
	}
	e.CurrentTime = func() time.Time { return now.Add(50 * time.Minute) }
	if !e.IsExpired() {
		t.Error("credentials past 80% of their lifetime must be expired")
	}
}
