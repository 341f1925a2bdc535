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
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/minio/cli"
)

var presignCmd = cli.Command{
	Name:      "presign",
	Usage:     "generate a presigned URL for an object",
	ArgsUsage: "BUCKET/OBJECT",
	Action:    mainPresign,
	Flags: []cli.Flag{
		cli.DurationFlag{
			Name:  "expiry",
			Usage: "how long the URL stays valid",
			Value: 7 * 24 * time.Hour,
		},
		cli.StringFlag{
			Name:  "method",
			Usage: "HTTP method to presign, GET, HEAD or PUT",
			Value: http.MethodGet,
		},
		cli.StringFlag{
			Name:  "version-id",
			Usage: "presign a specific object version",
		},
	},
}

func mainPresign(ctx *cli.Context) error {
	if len(ctx.Args()) != 1 {
		cli.ShowCommandHelpAndExit(ctx, "presign", 1)
	}
	client, err := newClient(ctx)
	fatalIf(err, "unable to initialize client")

	bucket, object := mustSplitObjectPath(ctx.Args().First())
	reqParams := make(url.Values)
	if vid := ctx.String("version-id"); vid != "" {
		reqParams.Set("versionId", vid)
	}

	u, err := client.Presign(context.Background(), ctx.String("method"), bucket, object, ctx.Duration("expiry"), reqParams)
	fatalIf(err, fmt.Sprintf("unable to presign %s/%s", bucket, object))
	fmt.Println(u.String())
	return nil
}
