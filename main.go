// cipherlab - classical ciphers, step by step.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"os"

	"github.com/jeranaias/cipherlab/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	if err := cli.Dispatch(cli.DefaultStreams(), cmd, args); err != nil {
		// JSON errors go to stdout with the rest of the envelope stream.
		w := os.Stderr
		if args.JSON {
			w = os.Stdout
		}
		cli.DisplayError(w, err, args.JSON)
		os.Exit(cli.GetExitCode(err))
	}
}
