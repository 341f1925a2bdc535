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
	"os"
	"strings"

	"github.com/cheggaaa/pb"
	"github.com/dustin/go-humanize"
	"github.com/minio/cli"
	"github.com/minio/objstore"
)

var cpCmd = cli.Command{
	Name:      "cp",
	Usage:     "copy a local file to a bucket, or an object to a local file",
	ArgsUsage: "SOURCE TARGET",
	Action:    mainCopy,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "storage-class",
			Usage: "storage class for the uploaded object",
		},
		cli.StringFlag{
			Name:  "content-type",
			Usage: "override the detected content type",
		},
		cli.BoolFlag{
			Name:  "quiet, q",
			Usage: "suppress the progress bar",
		},
	},
}

func mainCopy(ctx *cli.Context) error {
	if len(ctx.Args()) != 2 {
		cli.ShowCommandHelpAndExit(ctx, "cp", 1)
	}
	client, err := newClient(ctx)
	fatalIf(err, "unable to initialize client")

	source, target := ctx.Args().Get(0), ctx.Args().Get(1)
	if isLocalPath(source) {
		uploadFile(ctx, client, source, target)
	} else {
		downloadObject(client, source, target)
	}
	return nil
}

// isLocalPath treats anything that exists on the local filesystem as a
// local source, everything else as BUCKET/OBJECT.
func isLocalPath(arg string) bool {
	_, err := os.Stat(arg)
	return err == nil
}

func uploadFile(ctx *cli.Context, client *objstore.Client, source, target string) {
	bucket, object := splitPath(target)
	if object == "" || strings.HasSuffix(object, "/") {
		// Target names a bucket or a prefix, keep the source basename.
		object += baseName(source)
	}

	fi, err := os.Stat(source)
	fatalIf(err, "unable to stat "+source)

	opts := objstore.PutObjectOptions{
		StorageClass: ctx.String("storage-class"),
		ContentType:  ctx.String("content-type"),
	}
	var bar *pb.ProgressBar
	if !ctx.Bool("quiet") {
		bar = pb.New64(fi.Size()).SetUnits(pb.U_BYTES)
		bar.Start()
		opts.Progress = bar
	}

	info, err := client.FPutObject(context.Background(), bucket, object, source, opts)
	if bar != nil {
		bar.Finish()
	}
	fatalIf(err, fmt.Sprintf("unable to upload %s to %s/%s", source, bucket, object))
	fmt.Printf("`%s` -> `%s/%s` [%s]\n", source, bucket, object, humanize.IBytes(uint64(info.Size)))
}

func downloadObject(client *objstore.Client, source, target string) {
	bucket, object := mustSplitObjectPath(source)
	if fi, err := os.Stat(target); err == nil && fi.IsDir() {
		target = strings.TrimSuffix(target, "/") + "/" + baseName(object)
	}

	err := client.FGetObject(context.Background(), bucket, object, target, objstore.GetObjectOptions{})
	fatalIf(err, fmt.Sprintf("unable to download %s/%s", bucket, object))
	fmt.Printf("`%s/%s` -> `%s`\n", bucket, object, target)
}

func baseName(p string) string {
	p = strings.TrimSuffix(p, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}
