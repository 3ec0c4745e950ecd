// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - JSON output for --json.
//
// Every command wraps its result in the same envelope so scripts can check
// "success" before reading "data".

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jeranaias/cipherlab/internal/crack"
	"github.com/jeranaias/cipherlab/internal/engine"
)

// JSONResponse is the standardized response format for all CLI commands.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is the RFC3339 time the response was generated
	Timestamp string `json:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a new error JSON response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Print writes the response as indented JSON.
func (r *JSONResponse) Print(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(r)
}

// String returns the JSON response as a string.
func (r *JSONResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":"failed to marshal response: %s","timestamp":"%s"}`,
			err.Error(), time.Now().UTC().Format(time.RFC3339))
	}
	return string(data)
}

// =============================================================================
// RESPONSE DATA
// =============================================================================

// VersionData is the data of "version --json".
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// CipherListData is the data of "list --json".
type CipherListData struct {
	Ciphers []engine.Info `json:"ciphers"`
}

// ExportData is the data of a run written to a file with --output.
type ExportData struct {
	ID     string `json:"id"`
	Path   string `json:"path"`
	Format string `json:"format"`
}

// SubstitutionData is the data of "crack substitution --json".
type SubstitutionData struct {
	// Key maps ciphertext A..Z to these plaintext letters.
	Key       string  `json:"key"`
	Plaintext string  `json:"plaintext"`
	Score     float64 `json:"score"`
	Proposals int     `json:"proposals"`
	Seed      uint64  `json:"seed"`
}

// PermutationData is the data of "crack permutation --json".
type PermutationData struct {
	Candidates []crack.Candidate `json:"candidates"`
	Searched   int               `json:"searched"`
}

// ConfigValueData is the data of "config get --json".
type ConfigValueData struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// ConfigPathData is the data of "config path --json".
type ConfigPathData struct {
	TOML   string `json:"toml"`
	JSON   string `json:"json"`
	Exists bool   `json:"exists"`
}

// ExplainData is the data of "explain --json".
type ExplainData struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Markdown string `json:"markdown"`
}
