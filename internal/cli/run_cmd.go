// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// run_cmd.go - The encrypt, decrypt and rot47 commands.
//
// Command: encrypt <cipher> <text...> [flags]
//          decrypt <cipher> <text...> [flags]
//          rot47 <text...> [flags]
//
// Output, by precedence:
//   --output DIR   export file (format from --format, default txt)
//   --json         JSONResponse envelope with the whole outcome
//   --format FMT   exporter output on stdout
//   -q             the transformed text only
//   (default)      styled summary, plus every step with --trace

package cli

import (
	"fmt"
	"strings"

	"github.com/jeranaias/cipherlab/internal/cipher"
	"github.com/jeranaias/cipherlab/internal/config"
	"github.com/jeranaias/cipherlab/internal/engine"
	"github.com/jeranaias/cipherlab/internal/export"
	"github.com/jeranaias/cipherlab/internal/ui/components"
)

// HandleRun handles "encrypt", "decrypt" and "rot47".
func HandleRun(s Streams, cmd Command, args Args) error {
	p := NewArgParser(args.Raw, runBools...)

	name, dir, start := engine.ROT47, cipher.Encrypt, 0
	command := "rot47"
	switch cmd {
	case CmdDecrypt:
		dir = cipher.Decrypt
		fallthrough
	case CmdEncrypt:
		command = dir.String()
		name, start = p.Positional(0), 1
		if name == "" {
			return ErrMissingArgument("cipher", "cipherlab "+command+" playfair --key MONARQUIA hello")
		}
	}

	if p.PositionalCount() <= start && !p.HasFlag("file") {
		example := "cipherlab rot47 HELLO"
		if cmd != CmdROT47 {
			example = "cipherlab " + command + " " + name + " HELLO"
		}
		return ErrMissingArgument("text", example)
	}
	text, err := readText(s, p, start)
	if err != nil {
		return err
	}

	req, err := buildRequest(config.Global(), p, name, dir)
	if err != nil {
		return err
	}
	req.Text = text

	out, err := engine.Run(req)
	if err != nil {
		return ErrUnknownCipher(name)
	}
	return writeOutcome(s, args, p, command, out)
}

// writeOutcome prints or exports out according to the output flags.
func writeOutcome(s Streams, args Args, p *ArgParser, command string, out *engine.Outcome) error {
	format := strings.ToLower(p.Flag("format"))

	if dir := p.Flag("output"); dir != "" {
		return exportOutcome(s, args, p, dir, format, out)
	}

	if args.JSON {
		return NewJSONResponse(command, out).Print(s.Out)
	}

	if format != "" {
		opts := export.DefaultOptions()
		opts.IncludeMetadata = !args.Quiet
		opts.IncludeFrames = p.BoolFlag("trace")
		exporter, err := export.ForFormat(format, opts)
		if err != nil {
			return err
		}
		data, err := exporter.Export(out)
		if err != nil {
			return err
		}
		_, err = s.Out.Write(data)
		return err
	}

	if args.Quiet {
		_, err := fmt.Fprintln(s.Out, out.Output)
		return err
	}

	view := components.NewTraceView(newTheme(), out)
	view.SetWidth(GetTerminalWidth())
	body := view.Summary()
	if p.BoolFlag("trace") {
		body = view.RenderAll()
	}
	_, err := fmt.Fprintln(s.Out, body)
	return err
}

// exportOutcome writes out to a file in dir and reports the path.
func exportOutcome(s Streams, args Args, p *ArgParser, dir, format string, out *engine.Outcome) error {
	abs, err := ValidateOutputPath(dir)
	if err != nil {
		return err
	}
	if format == "" {
		format = "txt"
	}

	opts := export.DefaultOptions()
	opts.OutputDir = abs
	opts.OpenAfterExport = p.BoolFlag("open")
	exporter, err := export.ForFormat(format, opts)
	if err != nil {
		return err
	}

	path, err := export.ExportToFile(out, exporter, opts)
	if err != nil {
		return NewCommandError("export", format, "could not write trace", err)
	}

	switch {
	case args.JSON:
		return NewJSONResponse("export", ExportData{ID: out.ID, Path: path, Format: format}).Print(s.Out)
	case args.Quiet:
		_, err = fmt.Fprintln(s.Out, path)
	default:
		_, err = fmt.Fprintf(s.Out, "%s %s\n", SuccessStyle.Render("Saved trace to"), path)
	}
	return err
}
