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
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/minio/cli"
	"github.com/minio/objstore"
)

var lsCmd = cli.Command{
	Name:      "ls",
	Usage:     "list buckets or objects",
	ArgsUsage: "[BUCKET[/PREFIX]]",
	Action:    mainList,
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:  "recursive, r",
			Usage: "list recursively",
		},
		cli.BoolFlag{
			Name:  "versions",
			Usage: "list all object versions",
		},
		cli.BoolFlag{
			Name:  "incomplete, I",
			Usage: "list incomplete multipart uploads",
		},
	},
}

const printDate = "2006-01-02 15:04:05 MST"

func mainList(ctx *cli.Context) error {
	client, err := newClient(ctx)
	fatalIf(err, "unable to initialize client")

	if !ctx.Args().Present() {
		buckets, err := client.ListBuckets(context.Background())
		fatalIf(err, "unable to list buckets")
		for _, bucket := range buckets {
			printEntry(bucket.CreationDate.Local().Format(printDate), 0, bucket.Name+"/", false)
		}
		return nil
	}

	bucket, prefix := splitPath(ctx.Args().First())

	if ctx.Bool("incomplete") {
		for upload := range client.ListIncompleteUploads(context.Background(), bucket, prefix, ctx.Bool("recursive")) {
			fatalIf(upload.Err, "unable to list incomplete uploads")
			printEntry(upload.Initiated.Local().Format(printDate), upload.Size, upload.Key, false)
		}
		return nil
	}

	opts := objstore.ListObjectsOptions{
		Prefix:       prefix,
		Recursive:    ctx.Bool("recursive"),
		WithVersions: ctx.Bool("versions"),
	}
	for object := range client.ListObjects(context.Background(), bucket, opts) {
		fatalIf(object.Err, "unable to list objects")
		if strings.HasSuffix(object.Key, "/") && object.Size == 0 {
			printEntry("", 0, object.Key, true)
			continue
		}
		name := object.Key
		if object.VersionID != "" {
			name += " (version " + object.VersionID + ")"
		}
		printEntry(object.LastModified.Local().Format(printDate), object.Size, name, false)
	}
	return nil
}

func printEntry(modTime string, size int64, name string, isDir bool) {
	nameColor := color.New(color.FgWhite)
	if isDir || strings.HasSuffix(name, "/") {
		nameColor = color.New(color.FgCyan)
	}
	fmt.Printf("[%s] %8s %s\n",
		color.New(color.FgGreen).Sprint(modTime),
		color.New(color.FgYellow).Sprint(humanize.IBytes(uint64(size))),
		nameColor.Sprint(name))
}
