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

package s3utils

import (
	"net/url"
	"reflect"
	"testing"
)

// Tests get region from host URL.
func TestGetRegionFromURL(t *testing.T) {
	testCases := []struct {
		u              url.URL
		expectedRegion string
	}{
		{
			u:              url.URL{Host: "storage.googleapis.com"},
			expectedRegion: "",
		},
		{
			u:              url.URL{Host: "s3.cn-north-1.amazonaws.com.cn"},
			expectedRegion: "cn-north-1",
		},
		{
			u:              url.URL{Host: "s3.dualstack.cn-north-1.amazonaws.com.cn"},
			expectedRegion: "cn-north-1",
		},
		{
			u:              url.URL{Host: "s3.amazonaws.com"},
			expectedRegion: "",
		},
		{
			u:              url.URL{Host: "s3-external-1.amazonaws.com"},
			expectedRegion: "",
		},
		{
			u:              url.URL{Host: "s3-us-west-1.amazonaws.com"},
			expectedRegion: "us-west-1",
		},
		{
			u:              url.URL{Host: "s3.us-west-1.amazonaws.com"},
			expectedRegion: "us-west-1",
		},
		{
			u:              url.URL{Host: "s3.dualstack.us-west-1.amazonaws.com"},
			expectedRegion: "us-west-1",
		},
		{
			u:              url.URL{Host: "s3-fips.us-gov-west-1.amazonaws.com"},
			expectedRegion: "us-gov-west-1",
		},
		{
			u:              url.URL{Host: "s3-fips.dualstack.us-east-2.amazonaws.com"},
			expectedRegion: "us-east-2",
		},
		{
			u:              url.URL{Host: "s3.dualstack.amazonaws.com"},
			expectedRegion: "",
		},
		{
			u:              url.URL{Host: "s3.accelerate.amazonaws.com"},
			expectedRegion: "",
		},
		{
			u:              url.URL{Host: "mybalancer.us-east-1.elb.amazonaws.com"},
			expectedRegion: "",
		},
		{
			u:              url.URL{},
			expectedRegion: "",
		},
	}

	for i, testCase := range testCases {
		region := GetRegionFromURL(testCase.u)
		if region != testCase.expectedRegion {
			t.Errorf("Test %d: expected region %q, got %q", i+1, testCase.expectedRegion, region)
		}
	}
}

// Tests for detecting Amazon S3 endpoints.
func TestIsAmazonEndpoint(t *testing.T) {
	testCases := []struct {
		url            string
		expectedResult bool
	}{
		{"https://192.168.1.1", false},
		{"https://amazons3.amazonaws.com", false},
		{"https://storage.googleapis.com", false},
		{"https://s3.amazonaws.com", true},
		{"https://s3-external-1.amazonaws.com", true},
		{"https://s3.cn-north-1.amazonaws.com.cn", true},
		{"https://s3.us-west-1.amazonaws.com", true},
		{"https://s3-us-west-1.amazonaws.com", true},
		{"https://s3.dualstack.us-west-1.amazonaws.com", true},
		{"https://s3-fips.us-east-2.amazonaws.com", true},
	}
	for i, testCase := range testCases {
		u, err := url.Parse(testCase.url)
		if err != nil {
			t.Fatalf("Test %d: parse error %v", i+1, err)
		}
		if got := IsAmazonEndpoint(*u); got != testCase.expectedResult {
			t.Errorf("Test %d: IsAmazonEndpoint(%q) = %v, expected %v", i+1, testCase.url, got, testCase.expectedResult)
		}
	}
}

// Tests for detecting Google Cloud Storage endpoints.
func TestIsGoogleEndpoint(t *testing.T) {
	for _, testCase := range []struct {
		url            string
		expectedResult bool
	}{
		{"https://storage.googleapis.com", true},
		{"http://storage.googleapis.com", true},
		{"https://s3.amazonaws.com", false},
		{"https://storage.googleapis.com.fake.com", false},
	} {
		u, err := url.Parse(testCase.url)
		if err != nil {
			t.Fatal(err)
		}
		if got := IsGoogleEndpoint(*u); got != testCase.expectedResult {
			t.Errorf("IsGoogleEndpoint(%q) = %v, expected %v", testCase.url, got, testCase.expectedResult)
		}
	}
}

// Tests virtual host style support detection.
func TestIsVirtualHostSupported(t *testing.T) {
	testCases := []struct {
		url            string
		bucket         string
		expectedResult bool
	}{
		{"https://s3.amazonaws.com", "mybucket", true},
		{"https://s3.amazonaws.com", "my.bucket", false},
		{"http://s3.amazonaws.com", "my.bucket", true},
		{"https://storage.googleapis.com", "mybucket", false},
		{"https://mystorage.oss-cn-hangzhou.aliyuncs.com", "mybucket", true},
		{"http://192.168.1.1:9000", "mybucket", false},
	}
	for i, testCase := range testCases {
		u, err := url.Parse(testCase.url)
		if err != nil {
			t.Fatalf("Test %d: parse error %v", i+1, err)
		}
		if got := IsVirtualHostSupported(*u, testCase.bucket); got != testCase.expectedResult {
			t.Errorf("Test %d: IsVirtualHostSupported(%q, %q) = %v, expected %v",
				i+1, testCase.url, testCase.bucket, got, testCase.expectedResult)
		}
	}
}

// Tests validate the query encoder.
func TestQueryEncode(t *testing.T) {
	testCases := []struct {
		queryKey      string
		valueToEncode []string
		result        string
	}{
		{"prefix", []string{"test@123", "test@456"}, "prefix=test%40123&prefix=test%40456"},
		{"@prefix", []string{"test@123"}, "%40prefix=test%40123"},
		{"prefix", []string{"test#123"}, "prefix=test%23123"},
		{"prefix#", []string{"test#123"}, "prefix%23=test%23123"},
		{"prefix", []string{"test123"}, "prefix=test123"},
		{"prefix", []string{"test本語123", "test123"}, "prefix=test%E6%9C%AC%E8%AA%9E123&prefix=test123"},
	}

	for i, testCase := range testCases {
		urlValues := make(url.Values)
		for _, valueToEncode := range testCase.valueToEncode {
			urlValues.Add(testCase.queryKey, valueToEncode)
		}
		result := QueryEncode(urlValues)
		if testCase.result != result {
			t.Errorf("Test %d: expected %q, got %q", i+1, testCase.result, result)
		}
	}
}

// Tests validate the URL path encoder.
func TestEncodePath(t *testing.T) {
	testCases := []struct {
		inputStr string
		result   string
	}{
		{"thisisthe%url", "thisisthe%25url"},
		{"本語", "%E6%9C%AC%E8%AA%9E"},
		{"本語.1", "%E6%9C%AC%E8%AA%9E.1"},
		{">123", "%3E123"},
		{"myurl#link", "myurl%23link"},
		{"space in url", "space%20in%20url"},
		{"url+path", "url%2Bpath"},
		{"url/path", "url/path"},
	}

	for i, testCase := range testCases {
		result := EncodePath(testCase.inputStr)
		if testCase.result != result {
			t.Errorf("Test %d: expected %q, got %q", i+1, testCase.result, result)
		}
	}
}

// Tests the canonical tag codec round trips.
func TestTagEncodeDecode(t *testing.T) {
	tags := map[string]string{
		"project": "objstore",
		"owner":   "team a",
		"rate":    "50%",
	}
	encoded := TagEncode(tags)
	decoded := TagDecode(encoded)
	if !reflect.DeepEqual(tags, decoded) {
		t.Errorf("round trip mismatch: %v -> %q -> %v", tags, encoded, decoded)
	}

	if len(TagDecode("")) != 0 {
		t.Error("expected empty map for empty canonical tag")
	}
	if TagEncode(nil) != "" {
		t.Error("expected empty string for nil tags")
	}

	// Keys are sorted in the canonical form.
	if encoded != "owner=team%20a&project=objstore&rate=50%25" {
		t.Errorf("unexpected canonical form %q", encoded)
	}
}

// Tests validate the bucket name validator.
func TestCheckValidBucketName(t *testing.T) {
	testCases := []struct {
		bucketName string
		shouldPass bool
	}{
		{"", false},
		{"my", false},
		{"mybucket", true},
		{"my-bucket", true},
		{"my.bucket", true},
		{"192.168.1.1", false},
		{"my..bucket", false},
		{"my.-bucket", false},
		{"my-.bucket", false},
		{"MyBucket", true},
		{"my_bucket", true},
		{"-mybucket", false},
		{"mybucket-", false},
		{"mybucketmybucketmybucketmybucketmybucketmybucketmybucketmybucket", false},
	}
	for i, testCase := range testCases {
		err := CheckValidBucketName(testCase.bucketName)
		if err != nil && testCase.shouldPass {
			t.Errorf("Test %d: %q should be valid, got %v", i+1, testCase.bucketName, err)
		}
		if err == nil && !testCase.shouldPass {
			t.Errorf("Test %d: %q should be invalid", i+1, testCase.bucketName)
		}
	}
}

// Tests validate the strict bucket name validator.
func TestCheckValidBucketNameStrict(t *testing.T) {
	testCases := []struct {
		bucketName string
		shouldPass bool
	}{
		{"mybucket", true},
		{"my-bucket.with.dots", true},
		{"MyBucket", false},
		{"my_bucket", false},
	}
	for i, testCase := range testCases {
		err := CheckValidBucketNameStrict(testCase.bucketName)
		if err != nil && testCase.shouldPass {
			t.Errorf("Test %d: %q should be valid, got %v", i+1, testCase.bucketName, err)
		}
		if err == nil && !testCase.shouldPass {
			t.Errorf("Test %d: %q should be invalid", i+1, testCase.bucketName)
		}
	}
}

// Tests validate the object name validator.
func TestCheckValidObjectName(t *testing.T) {
	if err := CheckValidObjectName(""); err == nil {
		t.Error("empty object name should be invalid")
	}
	if err := CheckValidObjectName(" "); err == nil {
		t.Error("blank object name should be invalid")
	}
	if err := CheckValidObjectName("photos/2026/photo.jpg"); err != nil {
		t.Errorf("valid object name rejected: %v", err)
	}
	if err := CheckValidObjectName(string([]byte{0xff, 0xfe})); err == nil {
		t.Error("non UTF-8 object name should be invalid")
	}
	if err := CheckValidObjectNamePrefix(""); err != nil {
		t.Errorf("empty prefix should be valid: %v", err)
	}
}
