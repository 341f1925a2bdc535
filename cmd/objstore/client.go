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
	"strconv"
	"strings"

	"github.com/minio/cli"
	"github.com/minio/objstore"
	"github.com/minio/objstore/pkg/credentials"
	"github.com/minio/objstore/pkg/httptracer"
)

// newClient builds a client from the global flags. Credentials fall
// back from explicit flags to the usual environment and file sources.
func newClient(ctx *cli.Context) (*objstore.Client, error) {
	endpoint := ctx.GlobalString("endpoint")
	secure := !ctx.GlobalBool("insecure")

	var creds *credentials.Credentials
	if accessKey := ctx.GlobalString("access-key"); accessKey != "" {
		creds = credentials.NewStaticV4(accessKey, ctx.GlobalString("secret-key"), "")
	} else {
		creds = credentials.NewChainCredentials([]credentials.Provider{
			&credentials.EnvMinio{},
			&credentials.EnvAWS{},
			&credentials.FileAWSCredentials{},
			&credentials.IAM{},
		})
	}

	transport, err := objstore.DefaultTransport(secure)
	if err != nil {
		return nil, err
	}
	var rt http.RoundTripper = transport
	if globalDebug {
		rt = httptracer.GetNewTraceTransport(newTraceV4(), rt)
	}

	return objstore.New(endpoint, &objstore.Options{
		Creds:                creds,
		Secure:               secure,
		Region:               ctx.GlobalString("region"),
		Transport:            rt,
		MaxUploadBandwidth:   bandwidthFlag(ctx, "limit-upload"),
		MaxDownloadBandwidth: bandwidthFlag(ctx, "limit-download"),
	})
}

// bandwidthFlag parses a KiB/s rate flag into bytes per second.
func bandwidthFlag(ctx *cli.Context, name string) int64 {
	v := ctx.GlobalString(name)
	if v == "" {
		return 0
	}
	kib, err := strconv.ParseInt(v, 10, 64)
	fatalIf(err, "invalid value for --"+name)
	return kib * 1024
}

// splitPath splits BUCKET[/OBJECT] command line arguments.
func splitPath(arg string) (bucket, object string) {
	arg = strings.TrimPrefix(arg, "/")
	if i := strings.Index(arg, "/"); i >= 0 {
		return arg[:i], arg[i+1:]
	}
	return arg, ""
}

// mustSplitObjectPath is splitPath for commands which require an object key.
func mustSplitObjectPath(arg string) (bucket, object string) {
	bucket, object = splitPath(arg)
	if bucket == "" || object == "" {
		fatalIf(fmt.Errorf("%q is not of the form BUCKET/OBJECT", arg), "invalid argument")
	}
	return bucket, object
}
