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

// Package httptracer implements a tracing http.RoundTripper which invokes
// user supplied hooks around each HTTP round trip.
package httptracer

import (
	"errors"
	"net/http"

	"github.com/rs/xid"
)

// TraceIDHeader carries a per call trace id so request and response
// hook output can be correlated.
const TraceIDHeader = "X-Trace-Id"

// HTTPTracer provides callback hook mechanism for HTTP transport.
type HTTPTracer interface {
	Request(req *http.Request) error
	Response(res *http.Response) error
}

// RoundTripTrace interposes HTTP transport requests and responses using HTTPTracer hooks.
type RoundTripTrace struct {
	Trace     HTTPTracer        // User provides callback methods
	Transport http.RoundTripper // HTTP transport that needs to be intercepted
}

// RoundTrip executes user provided request and response hooks for each HTTP call.
func (t RoundTripTrace) RoundTrip(req *http.Request) (res *http.Response, err error) {
	if t.Transport == nil {
		return nil, errors.New("httptracer: no transport configured")
	}

	if t.Trace != nil {
		req.Header.Set(TraceIDHeader, xid.New().String())
		if err = t.Trace.Request(req); err != nil {
			return nil, err
		}
	}

	res, err = t.Transport.RoundTrip(req)
	if err != nil {
		return res, err
	}

	if t.Trace != nil {
		res.Header.Set(TraceIDHeader, req.Header.Get(TraceIDHeader))
		if err = t.Trace.Response(res); err != nil {
			return nil, err
		}
	}
	return res, err
}

// GetNewTraceTransport returns a traceable transport
//
// Takes first argument a custom tracer which implements Request(), Response()
// conforming to HTTPTracer interface. Another argument can be a default
// transport or a custom http.RoundTripper implementation.
func GetNewTraceTransport(trace HTTPTracer, transport http.RoundTripper) RoundTripTrace {
	return RoundTripTrace{Trace: trace, Transport: transport}
}
