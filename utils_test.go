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
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"
)

// Tests trimming of the surrounding double quotes servers put around ETags.
func TestTrimEtag(t *testing.T) {
	testCases := []struct {
		etag     string
		expected string
	}{
		{`"0f1a92e67a53e1f442b38ba38a5b5b63"`, "0f1a92e67a53e1f442b38ba38a5b5b63"},
		{"0f1a92e67a53e1f442b38ba38a5b5b63", "0f1a92e67a53e1f442b38ba38a5b5b63"},
		{`""`, ""},
		{"", ""},
	}
	for _, testCase := range testCases {
		if got := trimEtag(testCase.etag); got != testCase.expected {
			t.Errorf("trimEtag(%q) = %q, expected %q", testCase.etag, got, testCase.expected)
		}
	}
}

// Tests valid hosts for location.
func TestValidBucketLocation(t *testing.T) {
	s3Hosts := []struct {
		bucketLocation string
		endpoint       string
	}{
		{"us-east-1", "s3.dualstack.us-east-1.amazonaws.com"},
		{"unknown", "s3.dualstack.us-east-1.amazonaws.com"},
		{"ap-southeast-1", "s3.dualstack.ap-southeast-1.amazonaws.com"},
	}
	for _, s3Host := range s3Hosts {
		endpoint := getS3Endpoint(s3Host.bucketLocation, true)
		if endpoint != s3Host.endpoint {
			t.Fatalf("Expected endpoint %s, got %s", s3Host.endpoint, endpoint)
		}
	}
}

// Tests construction of the endpoint URL from a host and a secure flag.
func TestGetEndpointURL(t *testing.T) {
	testCases := []struct {
		endPoint string
		secure   bool
		result   string
		err      error
	}{
		{"s3.amazonaws.com", true, "https://s3.amazonaws.com", nil},
		{"s3.cn-north-1.amazonaws.com.cn", true, "https://s3.cn-north-1.amazonaws.com.cn", nil},
		{"s3.amazonaws.com", false, "http://s3.amazonaws.com", nil},
		{"192.168.1.1:9000", false, "http://192.168.1.1:9000", nil},
		{"192.168.1.1:9000", true, "https://192.168.1.1:9000", nil},
		{"storage.googleapis.com", true, "https://storage.googleapis.com", nil},
		{"192.168.1.1::9000", false, "", errInvalidArgument("Endpoint: 192.168.1.1::9000 does not follow ip address or domain name standards.")},
		{"13333.123123.-", true, "", errInvalidArgument("Endpoint: 13333.123123.- does not follow ip address or domain name standards.")},
		{"s3.aamzza.-", true, "", errInvalidArgument("Endpoint: s3.aamzza.- does not follow ip address or domain name standards.")},
		{"", true, "", errInvalidArgument("Endpoint:  does not follow ip address or domain name standards.")},
	}

	for i, testCase := range testCases {
		result, err := getEndpointURL(testCase.endPoint, testCase.secure)
		if err != nil && testCase.err == nil {
			t.Errorf("Test %d: unexpected error %v", i+1, err)
			continue
		}
		if err == nil && testCase.err != nil {
			t.Errorf("Test %d: expected error %v, got none", i+1, testCase.err)
			continue
		}
		if err != nil && err.Error() != testCase.err.Error() {
			t.Errorf("Test %d: expected error %q, got %q", i+1, testCase.err, err)
			continue
		}
		if err == nil && result.String() != testCase.result {
			t.Errorf("Test %d: expected url %q, got %q", i+1, testCase.result, result.String())
		}
	}
}

// Tests validate endpoint URL verifier.
func TestIsValidEndpointURL(t *testing.T) {
	testCases := []struct {
		url     string
		success bool
	}{
		{"https://s3.amazonaws.com", true},
		{"https://s3.cn-north-1.amazonaws.com.cn", true},
		{"https://s3-us-gov-west-1.amazonaws.com", true},
		{"https://storage.googleapis.com/", true},
		{"https://z3.amazonaws.com", true},
		{"https://mybalancer.us-east-1.elb.amazonaws.com", true},
		{"", false},
		{"https://s3.amazonaws.com/", true},
		{"https://s3.amazonaws.com/path/to/somewhere", false},
		{"192.168.1.1", false},
	}
	for i, testCase := range testCases {
		var u url.URL
		if testCase.url != "" {
			parsed, err := url.Parse(testCase.url)
			if err != nil {
				t.Fatalf("Test %d: parse error %v", i+1, err)
			}
			u = *parsed
		}
		err := isValidEndpointURL(u)
		if err != nil && testCase.success {
			t.Errorf("Test %d: expected success for %q, got %v", i+1, testCase.url, err)
		}
		if err == nil && !testCase.success {
			t.Errorf("Test %d: expected failure for %q", i+1, testCase.url)
		}
	}
}

// Tests validate the presign expiry bounds.
func TestIsValidExpiry(t *testing.T) {
	testCases := []struct {
		duration time.Duration
		success  bool
	}{
		{100 * time.Millisecond, false},
		{604801 * time.Second, false},
		{0 * time.Second, false},
		{1 * time.Second, true},
		{10000 * time.Second, true},
		{999 * time.Second, true},
	}
	for i, testCase := range testCases {
		err := isValidExpiry(testCase.duration)
		if err != nil && testCase.success {
			t.Errorf("Test %d: expected success for %v, got %v", i+1, testCase.duration, err)
		}
		if err == nil && !testCase.success {
			t.Errorf("Test %d: expected failure for %v", i+1, testCase.duration)
		}
	}
}

// Tests filtering of object metadata response headers.
func TestExtractObjMetadata(t *testing.T) {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("X-Amz-Meta-Colour", "blue")
	h.Set("X-Amz-Storage-Class", "REDUCED_REDUNDANCY")
	h.Set("X-Amz-Request-Id", "ABCD1234")
	h.Set("Server", "AmazonS3")

	filtered := extractObjMetadata(h)
	if got := filtered.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type not preserved, got %q", got)
	}
	if got := filtered.Get("X-Amz-Meta-Colour"); got != "blue" {
		t.Errorf("user metadata not preserved, got %q", got)
	}
	if got := filtered.Get("X-Amz-Storage-Class"); got != "REDUCED_REDUNDANCY" {
		t.Errorf("storage class not preserved, got %q", got)
	}
	if got := filtered.Get("X-Amz-Request-Id"); got != "" {
		t.Errorf("request id should have been filtered out, got %q", got)
	}
	if got := filtered.Get("Server"); got != "" {
		t.Errorf("server header should have been filtered out, got %q", got)
	}
}

// Tests lifecycle expiration header parsing.
func TestAmzExpirationToExpiryDateRuleID(t *testing.T) {
	expTime, ruleID := amzExpirationToExpiryDateRuleID(`expiry-date="Fri, 21 Dec 2012 00:00:00 GMT", rule-id="Rule for testfile.txt"`)
	expected := time.Date(2012, time.December, 21, 0, 0, 0, 0, time.UTC)
	if !expTime.Equal(expected) {
		t.Errorf("expected expiry %v, got %v", expected, expTime)
	}
	if ruleID != "Rule for testfile.txt" {
		t.Errorf("expected rule id %q, got %q", "Rule for testfile.txt", ruleID)
	}

	expTime, ruleID = amzExpirationToExpiryDateRuleID("")
	if !expTime.IsZero() || ruleID != "" {
		t.Errorf("expected zero values for empty header, got %v, %q", expTime, ruleID)
	}
}

// Tests signature redaction in authorization headers.
func TestRedactSignature(t *testing.T) {
	testCases := []struct {
		authValue        string
		expectedRedacted string
	}{
		{
			authValue:        "AWS 1231313:888x000231==",
			expectedRedacted: "AWS **REDACTED**:**REDACTED**",
		},
		{
			authValue:        "AWS4-HMAC-SHA256 Credential=12312313/20170613/us-east-1/s3/aws4_request, SignedHeaders=host;x-amz-content-sha256;x-amz-date, Signature=02205856d62f744e6868a71132e920aae3cf6a84b28e09be2a2f572fb299b1b9",
			expectedRedacted: "AWS4-HMAC-SHA256 Credential=**REDACTED**/20170613/us-east-1/s3/aws4_request, SignedHeaders=host;x-amz-content-sha256;x-amz-date, Signature=**REDACTED**",
		},
	}
	for i, testCase := range testCases {
		redacted := redactSignature(testCase.authValue)
		if redacted != testCase.expectedRedacted {
			t.Errorf("Test %d: expected %q, got %q", i+1, testCase.expectedRedacted, redacted)
		}
	}
}

// Tests default location resolution from endpoint URLs.
func TestGetDefaultLocation(t *testing.T) {
	testCases := []struct {
		endpointURL      string
		regionOverride   string
		expectedLocation string
	}{
		{"https://s3-fips.us-gov-west-1.amazonaws.com", "", "us-gov-west-1"},
		{"https://s3.us-east-2.amazonaws.com", "", "us-east-2"},
		{"https://s3.amazonaws.com", "", "us-east-1"},
		{"http://192.168.1.1:9000", "", "us-east-1"},
		{"http://192.168.1.1:9000", "us-west-1", "us-west-1"},
	}
	for i, testCase := range testCases {
		u, err := url.Parse(testCase.endpointURL)
		if err != nil {
			t.Fatalf("Test %d: parse error %v", i+1, err)
		}
		location := getDefaultLocation(*u, testCase.regionOverride)
		if location != testCase.expectedLocation {
			t.Errorf("Test %d: expected location %q, got %q", i+1, testCase.expectedLocation, location)
		}
	}
}

// Tests header classification helpers used when building copy and put requests.
func TestHeaderClassifiers(t *testing.T) {
	headers := map[string]struct {
		isStandard     bool
		isStorageClass bool
		isSSE          bool
		isAmz          bool
		isMinio        bool
	}{
		"content-type":                       {isStandard: true},
		"Cache-Control":                      {isStandard: true},
		"x-amz-storage-class":                {isStorageClass: true},
		"x-amz-server-side-encryption":       {isSSE: true, isAmz: true},
		"X-Amz-Meta-User":                    {isAmz: true},
		"x-amz-grant-read":                   {isAmz: true},
		"x-amz-acl":                          {isAmz: true},
		"x-amz-checksum-crc32":               {isAmz: true},
		"X-Minio-Source-Replication-Request": {isMinio: true},
		"x-custom-header":                    {},
	}
	for header, expected := range headers {
		if got := isStandardHeader(header); got != expected.isStandard {
			t.Errorf("isStandardHeader(%q) = %v", header, got)
		}
		if got := isStorageClassHeader(header); got != expected.isStorageClass {
			t.Errorf("isStorageClassHeader(%q) = %v", header, got)
		}
		if got := isSSEHeader(header); got != expected.isSSE {
			t.Errorf("isSSEHeader(%q) = %v", header, got)
		}
		if got := isAmzHeader(header); got != expected.isAmz {
			t.Errorf("isAmzHeader(%q) = %v", header, got)
		}
		if got := isMinioHeader(header); got != expected.isMinio {
			t.Errorf("isMinioHeader(%q) = %v", header, got)
		}
	}
}

// Tests conversion of HTTP response headers to ObjectInfo.
func TestToObjectInfo(t *testing.T) {
	h := http.Header{}
	h.Set("ETag", `"0f1a92e67a53e1f442b38ba38a5b5b63"`)
	h.Set("Content-Length", "1024")
	h.Set("Last-Modified", "Tue, 29 Apr 2014 18:30:38 GMT")
	h.Set("Content-Type", "text/plain")
	h.Set("X-Amz-Meta-Colour", "red")
	h.Set("X-Amz-Version-Id", "dead.beef")

	info, err := ToObjectInfo("test-bucket", "test-object", h)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if info.ETag != "0f1a92e67a53e1f442b38ba38a5b5b63" {
		t.Errorf("unexpected etag %q", info.ETag)
	}
	if info.Size != 1024 {
		t.Errorf("unexpected size %d", info.Size)
	}
	if info.ContentType != "text/plain" {
		t.Errorf("unexpected content type %q", info.ContentType)
	}
	if info.VersionID != "dead.beef" {
		t.Errorf("unexpected version id %q", info.VersionID)
	}
	if info.UserMetadata["Colour"] != "red" {
		t.Errorf("unexpected user metadata %v", info.UserMetadata)
	}
	expectedTime := time.Date(2014, time.April, 29, 18, 30, 38, 0, time.UTC)
	if !info.LastModified.Equal(expectedTime) {
		t.Errorf("unexpected last modified %v", info.LastModified)
	}

	// Bad Content-Length must fail with InternalError.
	h.Set("Content-Length", "not-a-number")
	_, err = ToObjectInfo("test-bucket", "test-object", h)
	if ToErrorResponse(err).Code != "InternalError" {
		t.Errorf("expected InternalError, got %v", err)
	}
}

func ExampleToObjectInfo() {
	h := http.Header{}
	h.Set("ETag", `"9b2cf535f27731c974343645a3985328"`)
	h.Set("Content-Length", "11")
	h.Set("Last-Modified", "Tue, 29 Apr 2014 18:30:38 GMT")
	info, _ := ToObjectInfo("mybucket", "myobject", h)
	fmt.Println(info.ETag, info.Size)
	// Output: 9b2cf535f27731c974343645a3985328 11
}
