// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - The config command.
//
// Command: config [subcommand]
//
// Subcommands:
//   show (default)      Display the effective configuration
//   path                Show configuration file paths
//   init [--force] [--format toml|json]
//                       Write the defaults to config.toml or config.json
//   get <key>           Print one value
//   set <key> <value>   Change one value in the config file
//   keys                List every key
//
// Examples:
//   cipherlab config set playfair.keyword PLAYFAIREXAMPLE
//   cipherlab config set railfence.order 2,0,1
//   cipherlab config set crack.quadgram_file ~/english_quadgrams.txt
//   cipherlab config get ui.step_interval_ms

package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/jeranaias/cipherlab/internal/config"
)

// HandleConfig handles the "config" command.
func HandleConfig(s Streams, args Args) error {
	p := NewArgParser(args.Raw, "force")

	switch sub := strings.ToLower(p.Subcommand()); sub {
	case "", "show":
		return handleConfigShow(s, args)
	case "path":
		return handleConfigPath(s, args)
	case "init":
		return handleConfigInit(s, args, p.BoolFlag("force"), strings.ToLower(p.FlagOrDefault("format", "toml")))
	case "get":
		return handleConfigGet(s, args, p.Positional(1))
	case "set":
		if p.PositionalCount() < 3 {
			return ErrMissingArgument("key and value", "cipherlab config set vigenere.keyword LEMON")
		}
		return handleConfigSet(s, args, p.Positional(1), JoinPositionalArgs(p, 2))
	case "keys":
		return handleConfigKeys(s, args)
	default:
		return &NotFoundError{
			Resource: "config subcommand",
			ID:       sub,
			Hint:     Suggest(sub, []string{"show", "path", "init", "get", "set", "keys"}),
		}
	}
}

func handleConfigShow(s Streams, args Args) error {
	cfg := config.Global()
	if args.JSON {
		return NewJSONResponse("config show", cfg).Print(s.Out)
	}

	fmt.Fprintln(s.Out, TitleStyle.Render("cipherlab configuration"))
	fmt.Fprintln(s.Out, RenderSeparator(41))

	section := ""
	for _, key := range config.GetAllKeys() {
		sec, name, ok := strings.Cut(key, ".")
		if !ok {
			sec, name = "", key
		}
		if sec != section {
			section = sec
			fmt.Fprintln(s.Out, SectionStyle.Render("["+sec+"]"))
		}
		value, err := cfg.Get(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.Out, "  %s%s\n", RenderLabel(name+":", 22), ValueStyle.Render(formatValue(value)))
	}

	if path, err := config.ConfigPathTOML(); err == nil {
		fmt.Fprintln(s.Out)
		fmt.Fprintf(s.Out, "Config file: %s\n", DimStyle.Render(path))
	}
	return nil
}

func handleConfigPath(s Streams, args Args) error {
	tomlPath, err := config.ConfigPathTOML()
	if err != nil {
		return err
	}
	jsonPath, err := config.ConfigPathJSON()
	if err != nil {
		return err
	}
	_, statErr := os.Stat(tomlPath)
	exists := statErr == nil

	if args.JSON {
		return NewJSONResponse("config path", ConfigPathData{TOML: tomlPath, JSON: jsonPath, Exists: exists}).Print(s.Out)
	}
	if args.Quiet {
		_, err := fmt.Fprintln(s.Out, tomlPath)
		return err
	}
	fmt.Fprintln(s.Out, RenderField("config file", tomlPath))
	if !exists {
		fmt.Fprintln(s.Out, DimStyle.Render("(not created yet: run 'cipherlab config init')"))
	}
	return nil
}

func handleConfigInit(s Streams, args Args, force bool, format string) error {
	var path string
	var err error
	switch format {
	case "toml":
		path, err = config.ConfigPathTOML()
	case "json":
		path, err = config.ConfigPathJSON()
	default:
		return ErrUnsupportedFormat(format, []string{"toml", "json"})
	}
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		ok, err := confirmOverwrite(s, path, ConfirmationOptions{ConfirmFlag: force, JSONMode: args.JSON})
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(s.Out, DimStyle.Render("Cancelled."))
			return nil
		}
	}

	if err := saveConfigFile(config.Default(), path); err != nil {
		return NewCommandError("config", "init", "could not write config", err)
	}
	return reportWrite(s, args, "config init", path)
}

func handleConfigGet(s Streams, args Args, key string) error {
	if key == "" {
		return ErrMissingArgument("key", "cipherlab config get railfence.rails")
	}
	value, err := config.Global().Get(key)
	if err != nil {
		return unknownKey(key)
	}
	if args.JSON {
		return NewJSONResponse("config get", ConfigValueData{Key: key, Value: value}).Print(s.Out)
	}
	_, err = fmt.Fprintln(s.Out, formatValue(value))
	return err
}

// handleConfigSet edits the file on disk, not the environment-adjusted
// global, so CIPHERLAB_* overrides are never written back. A value that is
// already set leaves the file untouched.
func handleConfigSet(s Streams, args Args, key, value string) error {
	path, err := configFile()
	if err != nil {
		return err
	}
	cfg := config.Default()
	_, statErr := os.Stat(path)
	exists := statErr == nil
	if exists {
		load := config.LoadTOML
		if filepath.Ext(path) == ".json" {
			load = config.LoadJSON
		}
		if err := load(cfg, path); err != nil {
			return err
		}
	}

	if _, err := cfg.Get(key); err != nil {
		return unknownKey(key)
	}
	before := cfg.Clone()
	if err := cfg.Set(key, value); err != nil {
		return NewValidationError(key, value, err.Error(), "")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if exists && reflect.DeepEqual(before, cfg) {
		if !args.JSON && !args.Quiet {
			_, err := fmt.Fprintf(s.Out, "%s %s\n", DimStyle.Render("Unchanged"), path)
			return err
		}
		return reportWrite(s, args, "config set", path)
	}
	if err := saveConfigFile(cfg, path); err != nil {
		return NewCommandError("config", "set", "could not write config", err)
	}
	if err := config.ReloadGlobal(); err != nil {
		return err
	}
	return reportWrite(s, args, "config set", path)
}

// configFile returns the file Load reads: config.toml when present, else an
// existing config.json, else the config.toml to create.
func configFile() (string, error) {
	tomlPath, err := config.ConfigPathTOML()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath, nil
	}
	jsonPath, err := config.ConfigPathJSON()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath, nil
	}
	return tomlPath, nil
}

func saveConfigFile(cfg *config.Config, path string) error {
	if err := config.EnsureConfigDir(); err != nil {
		return err
	}
	if filepath.Ext(path) == ".json" {
		return config.SaveJSON(cfg, path)
	}
	return config.SaveTOML(cfg, path)
}

func handleConfigKeys(s Streams, args Args) error {
	keys := config.GetAllKeys()
	if args.JSON {
		return NewJSONResponse("config keys", keys).Print(s.Out)
	}
	for _, k := range keys {
		fmt.Fprintln(s.Out, k)
	}
	return nil
}

func reportWrite(s Streams, args Args, command, path string) error {
	if args.JSON {
		data := ConfigPathData{TOML: path, Exists: true}
		if filepath.Ext(path) == ".json" {
			data = ConfigPathData{JSON: path, Exists: true}
		}
		return NewJSONResponse(command, data).Print(s.Out)
	}
	if args.Quiet {
		return nil
	}
	_, err := fmt.Fprintf(s.Out, "%s %s\n", SuccessStyle.Render("Wrote"), path)
	return err
}

func unknownKey(key string) error {
	return &NotFoundError{Resource: "config key", ID: key, Hint: Suggest(key, config.GetAllKeys())}
}

// formatValue prints config values the way "config set" accepts them.
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		if val == "" {
			return `""`
		}
		return val
	case []int:
		return formatOrder(val)
	default:
		return fmt.Sprint(val)
	}
}

// errConfirmationRequired is returned when an overwrite needs --force.
var errConfirmationRequired = errors.New("confirmation required: pass --force")
