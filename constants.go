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

// Multipart upload constraints as published by Amazon S3.
const (
	// absMinPartSize - absolute minimum part size (5 MiB) below which
	// a part in a multipart upload may not be uploaded.
	absMinPartSize = 1024 * 1024 * 5

	// maxPartsCount - maximum number of parts for a single multipart session.
	maxPartsCount = 10000

	// maxPartSize - maximum part size 5GiB for a single multipart upload
	// operation.
	maxPartSize = 1024 * 1024 * 1024 * 5

	// maxSinglePutObjectSize - maximum size 5GiB of object per PUT
	// operation.
	maxSinglePutObjectSize = 1024 * 1024 * 1024 * 5

	// maxMultipartPutObjectSize - maximum size 5TiB of object for
	// Multipart operation.
	maxMultipartPutObjectSize = 1024 * 1024 * 1024 * 1024 * 5
)

// optimalReadBufferSize - optimal buffer 5MiB used for reading
// through Read operation.
const optimalReadBufferSize = 1024 * 1024 * 5

// unsignedPayload - value to be set to X-Amz-Content-Sha256 header when
// we don't want to sign the request payload
const unsignedPayload = "UNSIGNED-PAYLOAD"

// Total number of parallel workers used for multipart operation.
const totalWorkers = 4

// Signature related constants.
const (
	signV4Algorithm   = "AWS4-HMAC-SHA256"
	iso8601DateFormat = "20060102T150405Z"
)

// Presign request expiry bounds, in seconds.
const (
	presignExpireMin = 1
	presignExpireMax = 604800 // 7 days
)

// Storage class header.
const amzStorageClass = "X-Amz-Storage-Class"

// Website redirect header.
const amzWebsiteRedirectLocation = "X-Amz-Website-Redirect-Location"

// Object lock and retention headers.
const (
	amzLockMode         = "X-Amz-Object-Lock-Mode"
	amzLockRetainUntil  = "X-Amz-Object-Lock-Retain-Until-Date"
	amzLegalHoldHeader  = "X-Amz-Object-Lock-Legal-Hold"
	amzLockBypassHeader = "X-Amz-Bypass-Governance-Retention"
)

// Object tagging headers.
const (
	amzTaggingHeader          = "X-Amz-Tagging"
	amzTaggingHeaderDirective = "X-Amz-Tagging-Directive"
)

// Version and delete marker headers.
const (
	amzVersionID        = "X-Amz-Version-Id"
	amzDeleteMarker     = "X-Amz-Delete-Marker"
	amzTaggingCount     = "X-Amz-Tagging-Count"
	amzExpiration       = "X-Amz-Expiration"
	amzReplicationReady = "X-Minio-Replication-Ready"
)

// Replication and restore status headers.
const (
	amzReplicationStatus = "X-Amz-Replication-Status"
	amzRestore           = "X-Amz-Restore"
)

// MinIO extension headers used on replication internal calls.
const (
	minIOBucketReplicationDeleteMarker = "X-Minio-Source-DeleteMarker"
	minIOBucketSourceMTime             = "X-Minio-Source-Mtime"
	minIOBucketSourceETag              = "X-Minio-Source-Etag"
	minIOBucketReplicationRequest      = "X-Minio-Source-Replication-Request"
	minIOBucketReplicationProxyRequest = "X-Minio-Source-Proxy-Request"
)

// MinIO extension to force delete buckets and objects.
const minIOForceDelete = "x-minio-force-delete"

// nullVersionID is the version identifier S3 reports for objects
// created while versioning was suspended.
const nullVersionID = "null"
