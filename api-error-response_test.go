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
	"io"
	"net/http"
	"reflect"
	"strconv"
	"testing"
)

// newTestResponse builds a minimal http.Response for error mapping tests.
func newTestResponse(statusCode int, body []byte) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Status:     strconv.Itoa(statusCode) + " " + http.StatusText(statusCode),
		Body:       io.NopCloser(bytes.NewReader(body)),
		Header:     http.Header{},
	}
}

// Tests mapping of an XML error body into ErrorResponse.
func TestHttpRespToErrorResponseWithBody(t *testing.T) {
	body := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<Error>
  <Code>NoSuchBucketPolicy</Code>
  <Message>The bucket policy does not exist</Message>
  <BucketName>mybucket</BucketName>
  <RequestId>F19772218238A85A</RequestId>
  <HostId>GuWkjyviSiGHizehqpmsD1ndz5NClSP19DOT+s2mv7gXGQ8/X1lhbDGiIJEXpGFD</HostId>
</Error>`)
	err := httpRespToErrorResponse(newTestResponse(http.StatusNotFound, body), "mybucket", "")
	errResp := ToErrorResponse(err)
	if errResp.Code != "NoSuchBucketPolicy" {
		t.Errorf("expected code NoSuchBucketPolicy, got %q", errResp.Code)
	}
	if errResp.Message != "The bucket policy does not exist" {
		t.Errorf("unexpected message %q", errResp.Message)
	}
	if errResp.BucketName != "mybucket" {
		t.Errorf("unexpected bucket name %q", errResp.BucketName)
	}
	if errResp.RequestID != "F19772218238A85A" {
		t.Errorf("unexpected request id %q", errResp.RequestID)
	}
	if errResp.StatusCode != http.StatusNotFound {
		t.Errorf("unexpected status code %d", errResp.StatusCode)
	}
}

// Tests the header based fallbacks when the error body is empty.
func TestHttpRespToErrorResponseEmptyBody(t *testing.T) {
	testCases := []struct {
		statusCode   int
		bucketName   string
		objectName   string
		expectedCode string
	}{
		{http.StatusNotFound, "mybucket", "", "NoSuchBucket"},
		{http.StatusNotFound, "mybucket", "myobject", "NoSuchKey"},
		{http.StatusForbidden, "mybucket", "myobject", "AccessDenied"},
		{http.StatusConflict, "", "", "NoSuchBucket"},
		{http.StatusConflict, "mybucket", "", "ResourceConflict"},
		{http.StatusPreconditionFailed, "mybucket", "myobject", "PreconditionFailed"},
		{http.StatusMethodNotAllowed, "mybucket", "myobject", "MethodNotAllowed"},
		{http.StatusNotImplemented, "mybucket", "myobject", "MethodNotAllowed"},
		{http.StatusMovedPermanently, "mybucket", "", "PermanentRedirect"},
		{http.StatusBadRequest, "mybucket", "myobject", "BadRequest"},
	}
	for i, testCase := range testCases {
		err := httpRespToErrorResponse(newTestResponse(testCase.statusCode, nil), testCase.bucketName, testCase.objectName)
		errResp := ToErrorResponse(err)
		if errResp.Code != testCase.expectedCode {
			t.Errorf("Test %d: expected code %q, got %q", i+1, testCase.expectedCode, errResp.Code)
		}
		if errResp.StatusCode != testCase.statusCode {
			t.Errorf("Test %d: expected status %d, got %d", i+1, testCase.statusCode, errResp.StatusCode)
		}
	}
}

// Tests that region and request tracking headers fill in missing fields.
func TestHttpRespToErrorResponseHeaders(t *testing.T) {
	resp := newTestResponse(http.StatusForbidden, nil)
	resp.Header.Set("x-amz-request-id", "REQ1")
	resp.Header.Set("x-amz-id-2", "HOST1")
	resp.Header.Set("x-amz-bucket-region", "eu-west-1")

	errResp := ToErrorResponse(httpRespToErrorResponse(resp, "mybucket", ""))
	if errResp.RequestID != "REQ1" {
		t.Errorf("unexpected request id %q", errResp.RequestID)
	}
	if errResp.HostID != "HOST1" {
		t.Errorf("unexpected host id %q", errResp.HostID)
	}
	if errResp.Region != "eu-west-1" {
		t.Errorf("unexpected region %q", errResp.Region)
	}
}

// Tests the MinIO error code override headers.
func TestHttpRespToErrorResponseMinioHeaders(t *testing.T) {
	resp := newTestResponse(http.StatusBadRequest, nil)
	resp.Header.Set("x-minio-error-code", "XMinioInvalidObjectName")
	resp.Header.Set("x-minio-error-desc", `"Object name contains unsupported characters"`)

	errResp := ToErrorResponse(httpRespToErrorResponse(resp, "mybucket", "myobject"))
	if errResp.Code != "XMinioInvalidObjectName" {
		t.Errorf("unexpected code %q", errResp.Code)
	}
	if errResp.Message != "Object name contains unsupported characters" {
		t.Errorf("unexpected message %q", errResp.Message)
	}
}

// Tests nil response handling.
func TestHttpRespToErrorResponseNil(t *testing.T) {
	err := httpRespToErrorResponse(nil, "mybucket", "")
	errResp := ToErrorResponse(err)
	if errResp.Code != "InvalidArgument" {
		t.Errorf("expected InvalidArgument for nil response, got %q", errResp.Code)
	}
}

// Tests ToErrorResponse on foreign error types.
func TestToErrorResponse(t *testing.T) {
	inner := ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}
	if got := ToErrorResponse(error(inner)); !reflect.DeepEqual(got, inner) {
		t.Errorf("expected %#v, got %#v", inner, got)
	}
	if got := ToErrorResponse(io.EOF); !reflect.DeepEqual(got, ErrorResponse{}) {
		t.Errorf("expected zero ErrorResponse for foreign error, got %#v", got)
	}
}

// Tests the canned error constructors carry proper codes.
func TestErrorConstructors(t *testing.T) {
	if code := ToErrorResponse(errEntityTooLarge(100, 10, "b", "o")).Code; code != "EntityTooLarge" {
		t.Errorf("unexpected code %q", code)
	}
	if code := ToErrorResponse(errEntityTooSmall(-1, "b", "o")).Code; code != "EntityTooSmall" {
		t.Errorf("unexpected code %q", code)
	}
	if code := ToErrorResponse(errUnexpectedEOF(5, 10, "b", "o")).Code; code != "UnexpectedEOF" {
		t.Errorf("unexpected code %q", code)
	}
	if code := ToErrorResponse(errInvalidArgument("bad")).Code; code != "InvalidArgument" {
		t.Errorf("unexpected code %q", code)
	}
	if code := ToErrorResponse(errAPINotSupported("nope")).Code; code != "APINotSupported" {
		t.Errorf("unexpected code %q", code)
	}
}
