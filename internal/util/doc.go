// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds small helpers shared by config, export and the CLI:
// crash-safe file writes and column-aware truncation.
//
//	err := util.AtomicWriteFile(path, data, 0644)
//	line := util.TruncateWidth(candidate, 76)
package util
