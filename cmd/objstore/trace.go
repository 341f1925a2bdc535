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

package main

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
	"regexp"
	"strings"

	"github.com/fatih/color"
)

// traceV4 logs signature v4 requests and responses to stderr with the
// signature value redacted.
type traceV4 struct{}

func newTraceV4() traceV4 {
	return traceV4{}
}

var signatureRegexp = regexp.MustCompile(`Signature=([0-9a-f]+)`)

// Request - Trace HTTP Request
func (t traceV4) Request(req *http.Request) (err error) {
	origAuth := req.Header.Get("Authorization")

	if origAuth != "" {
		// Strip the signature from the Authorization header before dumping.
		req.Header.Set("Authorization", signatureRegexp.ReplaceAllString(origAuth, "Signature=**REDACTED**"))

		reqTrace, err := httputil.DumpRequestOut(req, false) // Only display header
		if err == nil {
			console(color.FgYellow, string(reqTrace))
		}

		// Undo
		req.Header.Set("Authorization", origAuth)
	}
	return err
}

// Response - Trace HTTP Response
func (t traceV4) Response(res *http.Response) (err error) {
	resTrace, err := httputil.DumpResponse(res, false) // Only display header
	if err == nil {
		console(color.FgGreen, string(resTrace))
	}
	return err
}

func console(attr color.Attribute, msg string) {
	msg = strings.TrimSuffix(msg, "\r\n")
	fmt.Fprintln(os.Stderr, color.New(attr).Sprint(msg))
}
