// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// explain_cmd.go - The explain command: each cipher's Markdown notes,
// rendered with glamour on colour terminals.

package cli

import (
	"fmt"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/cipherlab/internal/engine"
)

// HandleExplain prints how a cipher works.
func HandleExplain(s Streams, args Args) error {
	p := NewArgParser(args.Raw)
	name := p.Positional(0)
	if name == "" {
		return ErrMissingArgument("cipher", "cipherlab explain playfair")
	}
	info, ok := engine.Lookup(name)
	if !ok {
		return ErrUnknownCipher(name)
	}

	if args.JSON {
		return NewJSONResponse("explain", ExplainData{
			Name:     info.Name,
			Title:    info.Title,
			Summary:  info.Summary,
			Markdown: info.Explanation,
		}).Print(s.Out)
	}

	_, err := fmt.Fprint(s.Out, renderMarkdown(info.Explanation, GetTerminalWidth()))
	return err
}

// renderMarkdown renders md for the terminal. Piped output and NO_COLOR get
// the Markdown unchanged, as does any renderer failure.
func renderMarkdown(md string, width int) string {
	if !ColorsEnabled() {
		return md
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
