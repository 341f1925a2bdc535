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

// Package limiter implements upload and download throughput limits
// as an http.RoundTripper wrapper.
package limiter

import (
	"errors"
	"io"
	"net/http"

	"github.com/juju/ratelimit"
)

type limiter struct {
	upload    *ratelimit.Bucket
	download  *ratelimit.Bucket
	transport http.RoundTripper
}

func (l limiter) limitReader(r io.Reader, b *ratelimit.Bucket) io.Reader {
	if b == nil {
		return r
	}
	return ratelimit.Reader(r, b)
}

// RoundTrip throttles request and response bodies against the
// configured token buckets.
func (l limiter) RoundTrip(req *http.Request) (res *http.Response, err error) {
	if l.transport == nil {
		return nil, errors.New("limiter: no transport configured")
	}

	type readCloser struct {
		io.Reader
		io.Closer
	}

	if req.Body != nil {
		req.Body = &readCloser{
			Reader: l.limitReader(req.Body, l.upload),
			Closer: req.Body,
		}
	}

	res, err = l.transport.RoundTrip(req)
	if res != nil && res.Body != nil {
		res.Body = &readCloser{
			Reader: l.limitReader(res.Body, l.download),
			Closer: res.Body,
		}
	}

	return res, err
}

// New returns a rate limited transport. Limits are in bytes per
// second, zero means unlimited.
func New(uploadLimit, downloadLimit int64, transport http.RoundTripper) http.RoundTripper {
	if uploadLimit == 0 && downloadLimit == 0 {
		return transport
	}

	var (
		uploadBucket   *ratelimit.Bucket
		downloadBucket *ratelimit.Bucket
	)

	if uploadLimit > 0 {
		uploadBucket = ratelimit.NewBucketWithRate(float64(uploadLimit), uploadLimit)
	}

	if downloadLimit > 0 {
		downloadBucket = ratelimit.NewBucketWithRate(float64(downloadLimit), downloadLimit)
	}

	return &limiter{
		upload:    uploadBucket,
		download:  downloadBucket,
		transport: transport,
	}
}
