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
	"io"
	"os"

	"github.com/minio/cli"
	"github.com/minio/objstore"
)

var catCmd = cli.Command{
	Name:      "cat",
	Usage:     "stream an object to standard output",
	ArgsUsage: "BUCKET/OBJECT",
	Action:    mainCat,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "version-id",
			Usage: "read a specific object version",
		},
	},
}

func mainCat(ctx *cli.Context) error {
	if len(ctx.Args()) != 1 {
		cli.ShowCommandHelpAndExit(ctx, "cat", 1)
	}
	client, err := newClient(ctx)
	fatalIf(err, "unable to initialize client")

	bucket, object := mustSplitObjectPath(ctx.Args().First())
	opts := objstore.GetObjectOptions{VersionID: ctx.String("version-id")}
	reader, err := client.GetObject(context.Background(), bucket, object, opts)
	fatalIf(err, "unable to read object")
	defer reader.Close()

	_, err = io.Copy(os.Stdout, reader)
	fatalIf(err, "unable to stream object")
	return nil
}
