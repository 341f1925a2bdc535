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
	"net/http"
	"net/url"
	"strconv"

	"github.com/minio/objstore/pkg/s3utils"
)

// StatObject verifies if object exists, you have permission to access it
// and returns information about the object.
func (c *Client) StatObject(ctx context.Context, bucketName, objectName string, opts StatObjectOptions) (ObjectInfo, error) {
	// Input validation.
	if err := s3utils.CheckValidBucketName(bucketName); err != nil {
		return ObjectInfo{}, ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "InvalidBucketName",
			Message:    err.Error(),
		}
	}
	if err := s3utils.CheckValidObjectName(objectName); err != nil {
		return ObjectInfo{}, ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "XMinioInvalidObjectName",
			Message:    err.Error(),
		}
	}
	if err := c.checkSSERequirements(opts.ServerSideEncryption); err != nil {
		return ObjectInfo{}, err
	}

	headers := opts.Header()
	if opts.Internal.ReplicationDeleteMarker {
		headers.Set(minIOBucketReplicationDeleteMarker, "true")
	}

	urlValues := make(url.Values)
	if opts.VersionID != "" {
		urlValues.Set("versionId", opts.VersionID)
	}
	if opts.PartNumber > 0 {
		urlValues.Set("partNumber", strconv.Itoa(opts.PartNumber))
	}

	// A HEAD that comes back 400 with the bucket region attached means
	// the cached region is stale, relearn and retry exactly once.
	for attempt := 0; attempt < 2; attempt++ {
		// Execute HEAD on objectName.
		resp, err := c.executeMethod(ctx, http.MethodHead, requestMetadata{
			bucketName:       bucketName,
			objectName:       objectName,
			queryValues:      urlValues,
			contentSHA256Hex: emptySHA256Hex,
			customHeader:     headers,
		})
		if err != nil {
			closeResponse(resp)
			return ObjectInfo{}, err
		}

		if resp != nil {
			deleteMarker := resp.Header.Get(amzDeleteMarker) == "true"
			if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
				if resp.StatusCode == http.StatusMethodNotAllowed && opts.VersionID != "" && deleteMarker {
					errResp := ErrorResponse{
						StatusCode: resp.StatusCode,
						Code:       "MethodNotAllowed",
						Message:    "The specified method is not allowed against this resource.",
						BucketName: bucketName,
						Key:        objectName,
					}
					closeResponse(resp)
					return ObjectInfo{
						VersionID:      resp.Header.Get(amzVersionID),
						IsDeleteMarker: deleteMarker,
					}, errResp
				}
				if retryErr := c.shouldRetryHead(resp, bucketName, attempt); retryErr == errRetryHead {
					closeResponse(resp)
					continue
				}
				defer closeResponse(resp)
				return ObjectInfo{
					VersionID:      resp.Header.Get(amzVersionID),
					IsDeleteMarker: deleteMarker,
				}, httpRespToErrorResponse(resp, bucketName, objectName)
			}
		}

		defer closeResponse(resp)
		return ToObjectInfo(bucketName, objectName, resp.Header)
	}

	// Unreachable, the second attempt never yields errRetryHead.
	return ObjectInfo{}, errInvalidArgument("HEAD retry loop exhausted. " + reportIssue)
}

// shouldRetryHead inspects a failed HEAD response, when the server
// hinted the real bucket region it relearns the cache entry and
// reports errRetryHead for the first attempt only.
func (c *Client) shouldRetryHead(resp *http.Response, bucketName string, attempt int) error {
	if attempt > 0 || c.region != "" {
		return nil
	}
	if resp.StatusCode != http.StatusBadRequest {
		if ToErrorResponse(httpRespToErrorResponse(resp, bucketName, "")).Code == "NoSuchBucket" {
			c.bucketLocCache.Delete(bucketName)
		}
		return nil
	}
	region := resp.Header.Get("x-amz-bucket-region")
	if region == "" {
		return nil
	}
	if loc, ok := c.bucketLocCache.Get(bucketName); ok && loc == region {
		return nil
	}
	c.bucketLocCache.Set(bucketName, region)
	return errRetryHead
}
