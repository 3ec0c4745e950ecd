// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// This test file covers argument parsing, command lookup, suggestions and
// the error to exit code mapping.
package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/cipherlab/internal/config"
	"github.com/jeranaias/cipherlab/internal/engine"
	"github.com/jeranaias/cipherlab/internal/export"
)

func TestMain(m *testing.M) {
	ForceColorsEnabled(false)
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

// testStreams returns streams reading in and the buffers behind Out and Err.
func testStreams(in string) (Streams, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return Streams{In: strings.NewReader(in), Out: &out, Err: &errOut}, &out, &errOut
}

// withConfig points HOME at a temp dir and installs the default config.
func withConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	config.ResetGlobalForTesting()
	cfg := config.Default()
	config.SetGlobal(cfg)
	t.Cleanup(config.ResetGlobalForTesting)
	return cfg
}

// =============================================================================
// ARG PARSER TESTS (args.go)
// =============================================================================

func TestArgParser_BasicParsing(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		bools    []string
		wantSub  string
		validate func(*testing.T, *ArgParser)
	}{
		{
			name:    "simple subcommand",
			args:    []string{"show"},
			wantSub: "show",
		},
		{
			name:    "flag with value",
			args:    []string{"playfair", "--key", "MONARQUIA", "hello"},
			wantSub: "playfair",
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, "MONARQUIA", p.Flag("key"))
				assert.Equal(t, "hello", p.Positional(1))
			},
		},
		{
			name:    "flag with equals",
			args:    []string{"railfence", "--order=2,0,1"},
			wantSub: "railfence",
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, "2,0,1", p.Flag("order"))
			},
		},
		{
			name:    "declared bool keeps the next word positional",
			args:    []string{"vigenere", "--trace", "PALAVRA"},
			bools:   []string{"trace"},
			wantSub: "vigenere",
			validate: func(t *testing.T, p *ArgParser) {
				assert.True(t, p.BoolFlag("trace"))
				assert.Equal(t, 2, p.PositionalCount())
				assert.Equal(t, "PALAVRA", p.Positional(1))
			},
		},
		{
			name:    "undeclared flag swallows the next word",
			args:    []string{"vigenere", "--trace", "PALAVRA"},
			wantSub: "vigenere",
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, "PALAVRA", p.Flag("trace"))
				assert.Equal(t, 1, p.PositionalCount())
			},
		},
		{
			name:    "bool with explicit value",
			args:    []string{"x", "--trace=false"},
			bools:   []string{"trace"},
			wantSub: "x",
			validate: func(t *testing.T, p *ArgParser) {
				assert.False(t, p.BoolFlag("trace"))
			},
		},
		{
			name:    "double dash ends flags",
			args:    []string{"rot47", "--", "--not-a-flag", "-x"},
			wantSub: "rot47",
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, []string{"--not-a-flag", "-x"}, p.PositionalFrom(1))
				assert.False(t, p.HasFlag("not-a-flag"))
			},
		},
		{
			name:    "lone dash is positional",
			args:    []string{"vigenere", "-"},
			wantSub: "vigenere",
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, "-", p.Positional(1))
			},
		},
		{
			name:    "trailing flag is boolean",
			args:    []string{"init", "--force"},
			wantSub: "init",
			validate: func(t *testing.T, p *ArgParser) {
				assert.True(t, p.BoolFlag("force"))
			},
		},
		{
			name:    "empty args",
			args:    []string{},
			wantSub: "",
			validate: func(t *testing.T, p *ArgParser) {
				assert.Zero(t, p.PositionalCount())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewArgParser(tt.args, tt.bools...)
			assert.Equal(t, tt.wantSub, p.Subcommand())
			if tt.validate != nil {
				tt.validate(t, p)
			}
		})
	}
}

func TestArgParser_FlagIntOrDefault(t *testing.T) {
	p := NewArgParser([]string{"--rails", "4", "--top", "many"})

	n, err := p.FlagIntOrDefault("rails", 3)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = p.FlagIntOrDefault("min", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = p.FlagIntOrDefault("top", 5)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "--top", verr.Field)
}

func TestArgParser_FirstFlagAndDefaults(t *testing.T) {
	p := NewArgParser([]string{"-o", "out", "--format", ""})
	assert.Equal(t, "out", p.FirstFlag("output", "o"))
	assert.Equal(t, "txt", p.FlagOrDefault("format", "txt"))
	assert.True(t, p.HasFlag("format"))
	assert.Equal(t, "", flagOr(p, "format", "md"))
	assert.Equal(t, "md", flagOr(p, "missing", "md"))
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"true", "yes", "on", "1", "ON"} {
		b, err := ParseBoolString(s)
		require.NoError(t, err, s)
		assert.True(t, b, s)
	}
	for _, s := range []string{"false", "no", "off", "0"} {
		b, err := ParseBoolString(s)
		require.NoError(t, err, s)
		assert.False(t, b, s)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

// =============================================================================
// COMMAND PARSING TESTS (cli.go)
// =============================================================================

func TestParseArgs(t *testing.T) {
	tests := []struct {
		argv    []string
		want    Command
		wantRaw []string
	}{
		{nil, CmdHelp, nil},
		{[]string{"list"}, CmdList, []string{}},
		{[]string{"ls"}, CmdList, []string{}},
		{[]string{"enc", "playfair", "hi"}, CmdEncrypt, []string{"playfair", "hi"}},
		{[]string{"DECRYPT", "vig", "x"}, CmdDecrypt, []string{"vig", "x"}},
		{[]string{"rot47", "abc"}, CmdROT47, []string{"abc"}},
		{[]string{"play"}, CmdPlay, []string{}},
		{[]string{"explain", "chao"}, CmdExplain, []string{"chao"}},
		{[]string{"repl"}, CmdREPL, []string{}},
		{[]string{"crack", "sub"}, CmdCrack, []string{"sub"}},
		{[]string{"config", "path"}, CmdConfig, []string{"path"}},
		{[]string{"--version"}, CmdVersion, []string{}},
		{[]string{"-h"}, CmdHelp, []string{}},
		{[]string{"encryt"}, CmdUnknown, []string{}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.argv), func(t *testing.T) {
			cmd, args := ParseArgs(tt.argv)
			assert.Equal(t, tt.want, cmd)
			if tt.wantRaw != nil {
				assert.Equal(t, tt.wantRaw, args.Raw)
			}
		})
	}
}

func TestParseArgs_GlobalFlags(t *testing.T) {
	cmd, args := ParseArgs([]string{"--json", "encrypt", "-q", "rot47", "-v", "hi"})
	assert.Equal(t, CmdEncrypt, cmd)
	assert.True(t, args.JSON)
	assert.True(t, args.Quiet)
	assert.True(t, args.Verbose)
	assert.Equal(t, []string{"rot47", "hi"}, args.Raw)

	// After "--" global flags are text.
	_, args = ParseArgs([]string{"rot47", "--", "-q"})
	assert.False(t, args.Quiet)
	assert.Equal(t, []string{"--", "-q"}, args.Raw)
}

func TestDispatch_HelpAndVersion(t *testing.T) {
	s, out, _ := testStreams("")
	require.NoError(t, Dispatch(s, CmdHelp, Args{}))
	assert.Contains(t, out.String(), "cipherlab encrypt <cipher>")

	out.Reset()
	require.NoError(t, Dispatch(s, CmdVersion, Args{}))
	assert.Contains(t, out.String(), "cipherlab version "+Version)

	out.Reset()
	require.NoError(t, Dispatch(s, CmdVersion, Args{JSON: true}))
	assert.Contains(t, out.String(), `"go_version"`)
}

func TestDispatch_UnknownCommandSuggests(t *testing.T) {
	s, _, _ := testStreams("")
	cmd, args := ParseArgs([]string{"encryt"})
	err := Dispatch(s, cmd, args)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "encrypt", nf.Hint)
	assert.Contains(t, err.Error(), `did you mean "encrypt"`)
	assert.Equal(t, ExitNotFoundError, GetExitCode(err))
}

// =============================================================================
// SUGGESTION TESTS (suggest.go)
// =============================================================================

func TestSuggest(t *testing.T) {
	assert.Equal(t, "decrypt", SuggestCommand("decrpyt"))
	assert.Equal(t, "", SuggestCommand("xyzzyplugh"))
	assert.Equal(t, "vigenere", Suggest("vigener", engine.AllNames()))
	assert.Equal(t, "playfair", Suggest("plaifair", engine.AllNames()))
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("rail", "rail"))
	assert.Equal(t, 1, levenshteinDistance("rail", "raul"))
	assert.Equal(t, 3, levenshteinDistance("", "abc"))
	assert.Equal(t, 1, levenshteinDistance("vigenère", "vigenere"))
}

// =============================================================================
// ERROR TESTS (errors.go)
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"validation", NewValidationError("rails", "x", "must be an integer", ""), ExitUsageError},
		{"missing argument", ErrMissingArgument("text", ""), ExitUsageError},
		{"unknown format", fmt.Errorf("export: %w", export.ErrUnknownFormat), ExitUsageError},
		{"unknown cipher", ErrUnknownCipher("enigma"), ExitNotFoundError},
		{"engine unknown cipher", engine.ErrUnknownCipher, ExitNotFoundError},
		{"config validation", config.ValidateErrors{{Field: "railfence.rails", Message: "bad"}}, ExitConfigError},
		{"tty required", &TTYRequiredError{Operation: "play"}, ExitUsageError},
		{"confirmation", fmt.Errorf("x: %w", errConfirmationRequired), ExitUsageError},
		{"interrupted", fmt.Errorf("crack: %w", errInterrupted), ExitInterrupted},
		{"config message", errors.New("failed to parse config file"), ExitConfigError},
		{"other", errors.New("boom"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestErrUnknownCipher_Wraps(t *testing.T) {
	err := ErrUnknownCipher("vigenre")
	assert.ErrorIs(t, err, engine.ErrUnknownCipher)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "vigenere", nf.Hint)
}

func TestCommandError_Unwrap(t *testing.T) {
	inner := errors.New("disk full")
	err := NewCommandError("export", "txt", "could not write trace", inner)
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, ExitGeneralError, GetExitCode(err))
}

func TestDisplayError(t *testing.T) {
	var buf bytes.Buffer
	DisplayError(&buf, NewValidationError("rails", "x", "must be an integer", "--rails 3"), false)
	assert.Contains(t, buf.String(), "[ERROR]")
	assert.Contains(t, buf.String(), "must be an integer")

	buf.Reset()
	DisplayError(&buf, ErrUnknownCipher("enigma"), true)
	assert.Contains(t, buf.String(), `"success": false`)
	assert.Contains(t, buf.String(), "enigma")

	buf.Reset()
	DisplayError(&buf, nil, false)
	assert.Empty(t, buf.String())
}

// =============================================================================
// TERMINAL AND PATH TESTS (terminal.go, helpers.go)
// =============================================================================

func TestSupportsUnicode(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_CTYPE", "")
	t.Setenv("LANG", "en_US.UTF-8")
	assert.True(t, SupportsUnicode())

	t.Setenv("LANG", "C")
	assert.False(t, SupportsUnicode())
}

func TestWrapText(t *testing.T) {
	wrapped := WrapText("the quick brown fox jumps over the lazy dog", 12)
	for _, line := range strings.Split(wrapped, "\n") {
		assert.LessOrEqual(t, len(line), 12, line)
	}
}

func TestValidateOutputPath(t *testing.T) {
	dir := t.TempDir()
	abs, err := ValidateOutputPath(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, abs)

	_, err = ValidateOutputPath(dir + "/../../etc")
	assert.Error(t, err)

	assert.False(t, isPathWithinDir("/home/userEVIL/x", "/home/user"))
	assert.True(t, isPathWithinDir("/home/user/x", "/home/user"))
}
