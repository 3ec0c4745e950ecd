// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/cipherlab/internal/engine"
)

// TextExporter writes a plain-text report, one trace step per line.
type TextExporter struct {
	options *Options
}

// NewTextExporter creates a new plain-text exporter.
func NewTextExporter(opts *Options) *TextExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &TextExporter{options: opts}
}

// Export converts an outcome to plain text.
func (e *TextExporter) Export(out *engine.Outcome) ([]byte, error) {
	if out == nil {
		return nil, fmt.Errorf("outcome is nil")
	}

	var sb strings.Builder
	field := func(name, value string) {
		sb.WriteString(fmt.Sprintf("%-11s %s\n", name+":", value))
	}

	field("cipher", title(out.Cipher))
	field("direction", out.Direction.String())
	if e.options.IncludeMetadata {
		field("id", out.ID)
		field("exported", formatTimestamp(time.Now()))
	}
	field("input", out.Input)
	field("normalized", out.Normalized)
	field("output", out.Output)
	for _, f := range out.Fallbacks {
		field("fallback", f.String())
	}

	if e.options.IncludeFrames && len(out.Frames) > 0 {
		sb.WriteString("trace:\n")
		width := len(fmt.Sprint(len(out.Frames) - 1))
		for _, f := range out.Frames {
			line := fmt.Sprintf("  [%*d] %s -> %s", width, f.Index, f.Consumed, f.Produced)
			if f.Rule != "" {
				line += "  (" + f.Rule + ")"
			}
			sb.WriteString(line + "\n")
			for _, n := range f.Notes {
				sb.WriteString(fmt.Sprintf("  %*s   %s\n", width, "", n))
			}
		}
	}

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for plain text.
func (e *TextExporter) FileExtension() string {
	return ".txt"
}

// MimeType returns the MIME type for plain text.
func (e *TextExporter) MimeType() string {
	return "text/plain"
}
