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

var rmCmd = cli.Command{
	Name:      "rm",
	Usage:     "remove objects",
	ArgsUsage: "BUCKET/OBJECT | BUCKET/PREFIX --recursive",
	Action:    mainRemove,
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:  "recursive, r",
			Usage: "remove all objects under the prefix",
		},
		cli.StringFlag{
			Name:  "version-id",
			Usage: "remove a specific object version",
		},
		cli.BoolFlag{
			Name:  "bypass-governance",
			Usage: "bypass governance mode retention",
		},
	},
}

func mainRemove(ctx *cli.Context) error {
	if len(ctx.Args()) != 1 {
		cli.ShowCommandHelpAndExit(ctx, "rm", 1)
	}
	client, err := newClient(ctx)
	fatalIf(err, "unable to initialize client")

	if ctx.Bool("recursive") {
		removeRecursive(ctx, client)
		return nil
	}

	bucket, object := mustSplitObjectPath(ctx.Args().First())
	err = client.RemoveObject(context.Background(), bucket, object, objstore.RemoveObjectOptions{
		VersionID:        ctx.String("version-id"),
		GovernanceBypass: ctx.Bool("bypass-governance"),
	})
	fatalIf(err, fmt.Sprintf("unable to remove %s/%s", bucket, object))
	fmt.Printf("Removed `%s/%s`.\n", bucket, object)
	return nil
}

// removeRecursive feeds the listing straight into the batched
// multi-object delete API.
func removeRecursive(ctx *cli.Context, client *objstore.Client) {
	bucket, prefix := splitPath(ctx.Args().First())

	objectsCh := make(chan objstore.ObjectInfo)
	go func() {
		defer close(objectsCh)
		opts := objstore.ListObjectsOptions{Prefix: prefix, Recursive: true}
		for object := range client.ListObjects(context.Background(), bucket, opts) {
			if object.Err != nil {
				fatalIf(object.Err, "unable to list objects for removal")
			}
			objectsCh <- object
		}
	}()

	removeOpts := objstore.RemoveObjectsOptions{
		GovernanceBypass: ctx.Bool("bypass-governance"),
	}
	for rmErr := range client.RemoveObjects(context.Background(), bucket, objectsCh, removeOpts) {
		fatalIf(rmErr.Err, "unable to remove "+rmErr.ObjectName)
	}
	fmt.Printf("Removed all objects under `%s/%s`.\n", bucket, prefix)
}
