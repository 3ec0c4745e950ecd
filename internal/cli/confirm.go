// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// confirm.go - Confirmation before destructive actions.
//
//  1. With --force, proceed without prompting
//  2. In --json mode, require --force (no prompts in JSON mode)
//  3. Without a terminal on stdin, require --force (can't prompt)
//  4. Otherwise, ask

package cli

import (
	"bufio"
	"fmt"
	"strings"
)

// ConfirmationOptions describes how a confirmation may be given.
type ConfirmationOptions struct {
	// ConfirmFlag indicates --force was passed
	ConfirmFlag bool
	// JSONMode indicates --json was passed
	JSONMode bool
}

// stdinIsTTY is replaced in tests.
var stdinIsTTY = IsTTY

// confirmOverwrite asks before replacing path.
func confirmOverwrite(s Streams, path string, opts ConfirmationOptions) (bool, error) {
	if opts.ConfirmFlag {
		return true, nil
	}
	if opts.JSONMode || !stdinIsTTY() {
		return false, fmt.Errorf("%s exists: %w", path, errConfirmationRequired)
	}
	return PromptYesNo(s, fmt.Sprintf("%s exists. Overwrite?", path)), nil
}

// PromptYesNo writes question to s.Out and reads a y/N answer from s.In.
func PromptYesNo(s Streams, question string) bool {
	fmt.Fprintf(s.Out, "%s [y/N]: ", question)

	input, err := bufio.NewReader(s.In).ReadString('\n')
	if err != nil && input == "" {
		return false
	}

	response := strings.ToLower(strings.TrimSpace(input))
	return response == "y" || response == "yes"
}
