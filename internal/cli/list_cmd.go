// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// list_cmd.go - The list command.

package cli

import (
	"fmt"
	"strings"

	"github.com/jeranaias/cipherlab/internal/engine"
)

// HandleList prints the cipher catalogue.
func HandleList(s Streams, args Args) error {
	ciphers := engine.Catalog()

	if args.JSON {
		return NewJSONResponse("list", CipherListData{Ciphers: ciphers}).Print(s.Out)
	}

	if args.Quiet {
		for _, info := range ciphers {
			fmt.Fprintln(s.Out, info.Name)
		}
		return nil
	}

	fmt.Fprintln(s.Out, TitleStyle.Render("Ciphers"))
	fmt.Fprintln(s.Out, RenderSeparator(40))
	for _, info := range ciphers {
		line := RenderLabel(info.Name) + ValueStyle.Render(info.Title)
		if len(info.Aliases) > 0 {
			line += DimStyle.Render(" (" + strings.Join(info.Aliases, ", ") + ")")
		}
		fmt.Fprintln(s.Out, line)
		fmt.Fprintln(s.Out, RenderLabel("")+DimStyle.Render(info.Summary))
		fmt.Fprintln(s.Out, RenderLabel("")+DimStyle.Render("key: "+string(info.Key)))
	}
	return nil
}
