// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for cipherlab.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - ChaocipherConfig, RailFenceConfig, KeywordConfig: default cipher keys
//   - CrackConfig: annealing schedules and key ranges of the breakers
//   - UIConfig: step player timing
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (CIPHERLAB_*)
//   - ~/.cipherlab/config.toml
//   - ~/.cipherlab/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Printf("CONFIG | warning=%q", err)
//	}
//
// Access settings:
//
//	rails := cfg.RailFence.Rails
//	opts := cfg.Crack.PermutationOptions()
package config
