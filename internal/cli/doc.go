// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and execution for cipherlab.
//
// # Key Types
//
//   - Command: Enumeration of the available commands
//   - Args: Global flags plus the raw arguments of the command
//   - Streams: The standard streams a command reads and writes
//   - ArgParser: Flag and positional parsing with declared boolean flags
//   - Session: The REPL state, usable without a terminal
//
// # Usage
//
//	cmd, args := cli.Parse()
//	if err := cli.Dispatch(cli.DefaultStreams(), cmd, args); err != nil {
//	    cli.DisplayError(os.Stderr, err, args.JSON)
//	    os.Exit(cli.GetExitCode(err))
//	}
//
// # Commands Overview
//
//   - list: The cipher catalogue
//   - encrypt, decrypt, rot47: Transform text, with --trace for every step
//   - play: Step through a trace in a full-screen player
//   - explain: How a cipher works, rendered as Markdown
//   - repl: Transform each line typed
//   - crack: Break substitution and transposition ciphertext
//   - config: Show and edit ~/.cipherlab/config.toml
//
// All commands support --json, which wraps the result in a JSONResponse.
// Errors map to exit codes through GetExitCode.
package cli
