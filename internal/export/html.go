// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/jeranaias/cipherlab/internal/engine"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter exports outcomes to a standalone HTML page with embedded CSS.
type HTMLExporter struct {
	options *Options
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{options: opts}
}

// Export converts an outcome to HTML format. Every user-supplied value is
// escaped.
func (e *HTMLExporter) Export(out *engine.Outcome) ([]byte, error) {
	if out == nil {
		return nil, fmt.Errorf("outcome is nil")
	}

	theme := e.options.Theme
	if theme != "light" {
		theme = "dark"
	}
	name := html.EscapeString(title(out.Cipher))

	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n")
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	sb.WriteString(fmt.Sprintf("    <title>%s %s</title>\n", name, out.Direction))
	sb.WriteString("    <meta name=\"generator\" content=\"cipherlab\">\n")
	sb.WriteString(e.getCSS())
	sb.WriteString("</head>\n")
	sb.WriteString(fmt.Sprintf("<body class=\"%s-theme\">\n", theme))
	sb.WriteString("    <div class=\"container\">\n")

	sb.WriteString("        <header class=\"header\">\n")
	sb.WriteString(fmt.Sprintf("            <h1>%s <small>%s</small></h1>\n", name, out.Direction))
	if e.options.IncludeMetadata {
		sb.WriteString(fmt.Sprintf("            <div class=\"metadata\"><span>Run %s</span> <span>%d steps</span></div>\n",
			html.EscapeString(out.ID), len(out.Frames)))
	}
	sb.WriteString("        </header>\n")

	sb.WriteString("        <dl class=\"summary\">\n")
	for _, row := range [][2]string{
		{"Input", out.Input},
		{"Normalized", out.Normalized},
		{"Output", out.Output},
	} {
		sb.WriteString(fmt.Sprintf("            <dt>%s</dt><dd><code>%s</code></dd>\n", row[0], html.EscapeString(row[1])))
	}
	sb.WriteString("        </dl>\n")

	if len(out.Fallbacks) > 0 {
		sb.WriteString("        <ul class=\"fallbacks\">\n")
		for _, f := range out.Fallbacks {
			sb.WriteString(fmt.Sprintf("            <li><code>%s</code> %s</li>\n",
				html.EscapeString(f.Field), html.EscapeString(f.Reason)))
		}
		sb.WriteString("        </ul>\n")
	}

	if e.options.IncludeFrames && len(out.Frames) > 0 {
		sb.WriteString(e.renderFrames(out.Frames))
	}

	sb.WriteString("        <footer class=\"footer\">\n")
	sb.WriteString(fmt.Sprintf("            <p>Exported from <strong>cipherlab</strong> on %s</p>\n",
		time.Now().Format("January 2, 2006 at 3:04 PM")))
	sb.WriteString("        </footer>\n")
	sb.WriteString("    </div>\n")
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string {
	return "text/html"
}

// =============================================================================
// RENDERING FUNCTIONS
// =============================================================================

func (e *HTMLExporter) renderFrames(frames []engine.Frame) string {
	var sb strings.Builder
	sb.WriteString("        <table class=\"trace\">\n")
	sb.WriteString("            <thead><tr><th>#</th><th>In</th><th>Out</th><th>Rule</th><th>Notes</th></tr></thead>\n")
	sb.WriteString("            <tbody>\n")
	for _, f := range frames {
		notes := make([]string, len(f.Notes))
		for i, n := range f.Notes {
			notes[i] = html.EscapeString(n)
		}
		sb.WriteString(fmt.Sprintf("                <tr><td>%d</td><td><code>%s</code></td><td><code>%s</code></td><td>%s</td><td>%s</td></tr>\n",
			f.Index,
			html.EscapeString(f.Consumed),
			html.EscapeString(f.Produced),
			html.EscapeString(f.Rule),
			strings.Join(notes, "<br>"),
		))
	}
	sb.WriteString("            </tbody>\n")
	sb.WriteString("        </table>\n")
	return sb.String()
}

func (e *HTMLExporter) getCSS() string {
	return `    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }

        :root {
            --font-sans: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            --font-mono: "SF Mono", "Monaco", "Inconsolata", "Fira Code", "Source Code Pro", monospace;
        }

        .dark-theme {
            --bg-primary: #1a1b26;
            --bg-secondary: #24283b;
            --text-primary: #c0caf5;
            --text-muted: #565f89;
            --border-color: #414868;
            --accent: #7aa2f7;
            --warn: #e0af68;
        }

        .light-theme {
            --bg-primary: #ffffff;
            --bg-secondary: #f5f5f7;
            --text-primary: #1a1b26;
            --text-muted: #6b7280;
            --border-color: #d1d5db;
            --accent: #2563eb;
            --warn: #b45309;
        }

        body {
            font-family: var(--font-sans);
            background: var(--bg-primary);
            color: var(--text-primary);
            line-height: 1.5;
        }

        .container { max-width: 960px; margin: 0 auto; padding: 2rem; }
        .header { border-bottom: 1px solid var(--border-color); padding-bottom: 1rem; margin-bottom: 1.5rem; }
        .header h1 { color: var(--accent); }
        .header small { color: var(--text-muted); font-weight: normal; }
        .metadata { color: var(--text-muted); font-size: 0.9rem; }
        .summary { display: grid; grid-template-columns: max-content 1fr; gap: 0.25rem 1rem; margin-bottom: 1.5rem; }
        .summary dt { color: var(--text-muted); }
        code { font-family: var(--font-mono); background: var(--bg-secondary); padding: 0 0.25rem; border-radius: 3px; }
        .fallbacks { color: var(--warn); margin: 0 0 1.5rem 1.5rem; }
        .trace { width: 100%; border-collapse: collapse; font-size: 0.9rem; }
        .trace th, .trace td { border: 1px solid var(--border-color); padding: 0.25rem 0.5rem; text-align: left; vertical-align: top; }
        .trace th { background: var(--bg-secondary); }
        .footer { margin-top: 2rem; color: var(--text-muted); font-size: 0.8rem; }
    </style>
`
}
