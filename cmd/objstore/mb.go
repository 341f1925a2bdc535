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

	"github.com/minio/cli"
	"github.com/minio/objstore"
)

var mbCmd = cli.Command{
	Name:      "mb",
	Usage:     "make a bucket",
	ArgsUsage: "BUCKET",
	Action:    mainMakeBucket,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "region",
			Usage: "region to create the bucket in",
			Value: "us-east-1",
		},
		cli.BoolFlag{
			Name:  "with-lock",
			Usage: "enable object locking on the new bucket",
		},
	},
}

var rbCmd = cli.Command{
	Name:      "rb",
	Usage:     "remove a bucket",
	ArgsUsage: "BUCKET",
	Action:    mainRemoveBucket,
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:  "force",
			Usage: "remove the bucket and all its contents",
		},
	},
}

func mainMakeBucket(ctx *cli.Context) error {
	if len(ctx.Args()) != 1 {
		cli.ShowCommandHelpAndExit(ctx, "mb", 1)
	}
	client, err := newClient(ctx)
	fatalIf(err, "unable to initialize client")

	bucket, _ := splitPath(ctx.Args().First())
	err = client.MakeBucket(context.Background(), bucket, objstore.MakeBucketOptions{
		Region:        ctx.String("region"),
		ObjectLocking: ctx.Bool("with-lock"),
	})
	fatalIf(err, "unable to make bucket "+bucket)
	fmt.Printf("Bucket created successfully `%s`.\n", bucket)
	return nil
}

func mainRemoveBucket(ctx *cli.Context) error {
	if len(ctx.Args()) != 1 {
		cli.ShowCommandHelpAndExit(ctx, "rb", 1)
	}
	client, err := newClient(ctx)
	fatalIf(err, "unable to initialize client")

	bucket, _ := splitPath(ctx.Args().First())
	err = client.RemoveBucketWithOptions(context.Background(), bucket, objstore.RemoveBucketOptions{
		ForceDelete: ctx.Bool("force"),
	})
	fatalIf(err, "unable to remove bucket "+bucket)
	fmt.Printf("Bucket removed successfully `%s`.\n", bucket)
	return nil
}
