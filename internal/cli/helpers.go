// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// helpers.go - Input, logging and path helpers shared by the commands.

package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/cipherlab/internal/ui/styles"
)

// maxInputBytes caps --file and stdin input.
const maxInputBytes = 4 << 20

// readText returns the text a command works on: the file named by --file
// ("-" is stdin), a lone "-" positional (stdin), or the positionals from
// start joined with spaces. One trailing newline is dropped from file input.
func readText(s Streams, p *ArgParser, start int) (string, error) {
	src := p.Flag("file")
	if src == "" && p.PositionalCount() == start+1 && p.Positional(start) == "-" {
		src = "-"
	}
	if src == "" {
		return JoinPositionalArgs(p, start), nil
	}

	var r io.Reader
	if src == "-" {
		if s.In == nil {
			return "", errors.New("no standard input")
		}
		r = s.In
	} else {
		f, err := os.Open(src)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", &NotFoundError{Resource: "file", ID: src}
			}
			return "", fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, maxInputBytes+1))
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	if len(data) > maxInputBytes {
		return "", NewValidationError("input", src, fmt.Sprintf("larger than %d bytes", maxInputBytes), "")
	}

	text := string(data)
	text = strings.TrimSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\r")
	return text, nil
}

// newLogger returns a logger on stderr when verbose, otherwise one that
// discards everything.
func newLogger(s Streams, verbose bool) *log.Logger {
	if !verbose || s.Err == nil {
		return log.New(io.Discard, "", 0)
	}
	return log.New(s.Err, "", log.LstdFlags)
}

// newTheme returns a theme sized to the terminal, with ASCII glyphs when the
// locale cannot show the Unicode ones.
func newTheme() *styles.Theme {
	theme := styles.NewTheme()
	if !SupportsUnicode() {
		theme.UseASCII()
	}
	theme.SetSize(GetTerminalWidth(), 24)
	return theme
}

// ValidateOutputPath resolves an export directory and checks that it lies
// within the home, working or temp directory.
func ValidateOutputPath(path string) (string, error) {
	if strings.Contains(path, "..") {
		return "", NewValidationError("--output", path, "path traversal not allowed", "")
	}

	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	home, _ := os.UserHomeDir()
	cwd, _ := os.Getwd()
	for _, dir := range []string{home, cwd, os.TempDir()} {
		if dir != "" && isPathWithinDir(abs, dir) {
			return abs, nil
		}
	}
	return "", NewValidationError("--output", path, "must be within home, cwd, or temp directory", "")
}

// isPathWithinDir checks path boundaries, so /home/userEVIL is not inside
// /home/user.
func isPathWithinDir(path, dir string) bool {
	cleanPath := filepath.Clean(path)
	cleanDir := filepath.Clean(dir)
	if cleanPath == cleanDir {
		return true
	}
	return strings.HasPrefix(cleanPath, cleanDir+string(filepath.Separator))
}
