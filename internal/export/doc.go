// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes cipher runs to files.
//
// An engine.Outcome (input, normalized text, output and trace frames) is
// rendered by an Exporter and written atomically.
//
// # Key Types
//
//   - Exporter: Main export interface
//   - Options: Export configuration options
//
// # Supported Formats
//
//   - JSON: Machine-readable, always with every frame
//   - Markdown: Summary plus a trace table
//   - Text: One line per step, the CLI's default output
//   - HTML: Standalone page for viewing in browsers
//
// # Usage
//
//	out, _ := engine.Run(engine.Request{Cipher: "playfair", Text: "HELLO", Key: "MONARQUIA"})
//
//	exporter, err := export.ForFormat("md", nil)
//	if err != nil {
//	    return err
//	}
//	path, err := export.ExportToFile(out, exporter, &export.Options{OutputDir: "traces"})
package export
