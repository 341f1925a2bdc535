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

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/minio/cli"
	"github.com/minio/objstore"
)

var statCmd = cli.Command{
	Name:      "stat",
	Usage:     "show object metadata",
	ArgsUsage: "BUCKET/OBJECT",
	Action:    mainStat,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "version-id",
			Usage: "stat a specific object version",
		},
	},
}

func mainStat(ctx *cli.Context) error {
	if len(ctx.Args()) != 1 {
		cli.ShowCommandHelpAndExit(ctx, "stat", 1)
	}
	client, err := newClient(ctx)
	fatalIf(err, "unable to initialize client")

	bucket, object := mustSplitObjectPath(ctx.Args().First())
	opts := objstore.StatObjectOptions{VersionID: ctx.String("version-id")}
	info, err := client.StatObject(context.Background(), bucket, object, opts)
	fatalIf(err, fmt.Sprintf("unable to stat %s/%s", bucket, object))

	key := color.New(color.FgCyan).SprintFunc()
	fmt.Printf("%s %s\n", key("Name         :"), info.Key)
	fmt.Printf("%s %s\n", key("Date         :"), info.LastModified.Local().Format(printDate))
	fmt.Printf("%s %s (%d bytes)\n", key("Size         :"), humanize.IBytes(uint64(info.Size)), info.Size)
	fmt.Printf("%s %s\n", key("ETag         :"), info.ETag)
	fmt.Printf("%s %s\n", key("Content-Type :"), info.ContentType)
	if info.VersionID != "" {
		fmt.Printf("%s %s\n", key("Version ID   :"), info.VersionID)
	}
	if info.StorageClass != "" {
		fmt.Printf("%s %s\n", key("Storage Class:"), info.StorageClass)
	}
	for name, value := range info.UserMetadata {
		fmt.Printf("%s %s=%s\n", key("Metadata     :"), name, value)
	}
	return nil
}
