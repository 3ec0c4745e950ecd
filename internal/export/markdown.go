// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/cipherlab/internal/engine"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports outcomes to Markdown with a trace table.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts an outcome to Markdown format.
func (e *MarkdownExporter) Export(out *engine.Outcome) ([]byte, error) {
	if out == nil {
		return nil, fmt.Errorf("outcome is nil")
	}

	var sb strings.Builder

	// YAML frontmatter with metadata
	if e.options.IncludeMetadata {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("id: %s\n", escapeYAML(out.ID)))
		sb.WriteString(fmt.Sprintf("cipher: %s\n", escapeYAML(out.Cipher)))
		sb.WriteString(fmt.Sprintf("direction: %s\n", out.Direction))
		sb.WriteString(fmt.Sprintf("steps: %d\n", len(out.Frames)))
		sb.WriteString(fmt.Sprintf("exported: %s\n", time.Now().Format(time.RFC3339)))
		sb.WriteString("generator: cipherlab\n")
		sb.WriteString("---\n\n")
	}

	sb.WriteString(fmt.Sprintf("# %s (%s)\n\n", escapeMarkdown(title(out.Cipher)), out.Direction))

	sb.WriteString(fmt.Sprintf("- **Input**: %s\n", inlineCode(out.Input)))
	sb.WriteString(fmt.Sprintf("- **Normalized**: %s\n", inlineCode(out.Normalized)))
	sb.WriteString(fmt.Sprintf("- **Output**: %s\n", inlineCode(out.Output)))
	sb.WriteString("\n")

	if len(out.Fallbacks) > 0 {
		sb.WriteString("## Fallbacks\n\n")
		for _, f := range out.Fallbacks {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", inlineCode(f.Field), escapeMarkdown(f.Reason)))
		}
		sb.WriteString("\n")
	}

	if e.options.IncludeFrames {
		sb.WriteString("## Trace\n\n")
		if len(out.Frames) == 0 {
			sb.WriteString("*No steps: the input was empty after normalization.*\n\n")
		} else {
			sb.WriteString("| # | In | Out | Rule | Notes |\n")
			sb.WriteString("|---|----|-----|------|-------|\n")
			for _, f := range out.Frames {
				sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s |\n",
					f.Index,
					tableCell(inlineCode(f.Consumed)),
					tableCell(inlineCode(f.Produced)),
					tableCell(f.Rule),
					tableCell(strings.Join(f.Notes, "; ")),
				))
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("---\n\n")
	sb.WriteString(fmt.Sprintf("*Exported from cipherlab on %s*\n",
		time.Now().Format("January 2, 2006 at 3:04 PM")))

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

// escapeMarkdown escapes special Markdown characters in plain text.
func escapeMarkdown(s string) string {
	// Only escape characters that would break formatting in titles/headings
	s = strings.ReplaceAll(s, "#", "\\#")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	return s
}

// escapeYAML escapes special YAML characters in values.
func escapeYAML(s string) string {
	if strings.ContainsAny(s, ":#|>@`\"'[]{}!%&*\n\r\\") || strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ") {
		s = strings.ReplaceAll(s, "\\", "\\\\")
		s = strings.ReplaceAll(s, "\"", "\\\"")
		s = strings.ReplaceAll(s, "\n", "\\n")
		s = strings.ReplaceAll(s, "\r", "\\r")
		return fmt.Sprintf("\"%s\"", s)
	}
	return s
}

// inlineCode wraps s in a code span long enough to contain its own backticks.
// ROT47 output routinely contains them.
func inlineCode(s string) string {
	if s == "" {
		return "*(empty)*"
	}
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	fence := strings.Repeat("`", longest+1)
	if longest > 0 || strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ") {
		return fence + " " + s + " " + fence
	}
	return fence + s + fence
}

// tableCell keeps a value on one table row.
func tableCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
