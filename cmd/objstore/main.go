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

// objstore is a small command line tool exercising the objstore library
// against any S3 compatible object storage server.
package main

import (
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/minio/cli"
)

var globalDebug bool

var globalFlags = []cli.Flag{
	cli.StringFlag{
		Name:   "endpoint",
		Usage:  "S3 server endpoint HOST[:PORT]",
		EnvVar: "OBJSTORE_ENDPOINT",
		Value:  "s3.amazonaws.com",
	},
	cli.StringFlag{
		Name:   "access-key",
		Usage:  "access key of the server",
		EnvVar: "OBJSTORE_ACCESS_KEY",
	},
	cli.StringFlag{
		Name:   "secret-key",
		Usage:  "secret key of the server",
		EnvVar: "OBJSTORE_SECRET_KEY",
	},
	cli.StringFlag{
		Name:   "region",
		Usage:  "override the server region",
		EnvVar: "OBJSTORE_REGION",
	},
	cli.BoolFlag{
		Name:  "insecure",
		Usage: "disable TLS",
	},
	cli.BoolFlag{
		Name:  "debug",
		Usage: "trace HTTP calls made by the tool",
	},
	cli.BoolFlag{
		Name:  "no-color",
		Usage: "disable colored output",
	},
	cli.StringFlag{
		Name:  "limit-upload",
		Usage: "limit upload bandwidth, KiB/s",
	},
	cli.StringFlag{
		Name:  "limit-download",
		Usage: "limit download bandwidth, KiB/s",
	},
}

var appCommands = []cli.Command{
	lsCmd,
	mbCmd,
	rbCmd,
	cpCmd,
	catCmd,
	rmCmd,
	statCmd,
	presignCmd,
}

func main() {
	app := cli.NewApp()
	app.Name = filepath.Base(os.Args[0])
	app.Usage = "S3 compatible object storage client"
	app.Author = "MinIO, Inc."
	app.Flags = globalFlags
	app.Commands = appCommands
	app.Before = func(ctx *cli.Context) error {
		globalDebug = ctx.Bool("debug")
		if ctx.Bool("no-color") {
			color.NoColor = true
		}
		return nil
	}
	app.RunAndExitOnError()
}

// fatalIf prints the error prefixed with the failing operation and exits.
func fatalIf(err error, msg string) {
	if err == nil {
		return
	}
	errorTag := color.New(color.FgRed, color.Bold).Sprint("error:")
	color.New(color.FgWhite).Fprintln(os.Stderr, errorTag, msg+":", err)
	os.Exit(1)
}
