// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"

	"github.com/jeranaias/cipherlab/internal/engine"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports outcomes to JSON format.
// NOTE: JSON exports always include every frame and ignore IncludeFrames, so
// the file is a faithful record of the run.
type JSONExporter struct {
	options *Options
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

// Export converts an outcome to indented JSON.
func (e *JSONExporter) Export(out *engine.Outcome) ([]byte, error) {
	if out == nil {
		return nil, fmt.Errorf("outcome is nil")
	}

	return json.MarshalIndent(out, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
