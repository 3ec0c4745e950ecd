// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/cipherlab/internal/config"
	"github.com/jeranaias/cipherlab/internal/engine"
	"github.com/jeranaias/cipherlab/internal/ui/player"
)

// run parses argv like main does and dispatches it.
func run(t *testing.T, in string, argv ...string) (string, string, error) {
	t.Helper()
	s, out, errOut := testStreams(in)
	cmd, args := ParseArgs(argv)
	err := Dispatch(s, cmd, args)
	return out.String(), errOut.String(), err
}

// =============================================================================
// ENCRYPT / DECRYPT / ROT47
// =============================================================================

func TestRun_Quiet(t *testing.T) {
	withConfig(t)

	tests := []struct {
		name string
		argv []string
		want string
	}{
		{"playfair", []string{"-q", "encrypt", "playfair", "--key", "MONARQUIA", "hello"}, "DFPWWU"},
		{"vigenere decrypt", []string{"-q", "decrypt", "vigenere", "--key", "CHAVE", "RHLVZTH"}, "PALAVRA"},
		{"vigenere config key", []string{"-q", "enc", "vig", "PALAVRA"}, "RHLVZTH"},
		{"railfence", []string{"-q", "encrypt", "railfence", "--rails", "3", "THISISATEST"}, "TIEHSSTSIAT"},
		{"railfence order", []string{"-q", "encrypt", "rf", "--rails", "3", "--order", "2,0,1", "THISISATEST"}, "IATTIEHSSTS"},
		{"chaocipher", []string{"-q", "encrypt", "chao",
			"--alphabet", "HXUCZVAMDSLKPEFJRIGTWOBNYQ", "--plain-alphabet", "PTLNBQDEOYSFAVZKGJRIHWXUMC",
			"WELLDONEISBETTERTHANWELLSAID"}, "OAHQHCNYNXTSZJRRHJBYHQKSOUJY"},
		{"rot47", []string{"-q", "rot47", "Hello,", "World!"}, "w6==@[ (@C=5P"},
		{"trace is not text", []string{"-q", "encrypt", "vigenere", "--trace", "--key", "CHAVE", "PALAVRA"}, "RHLVZTH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, "", tt.argv...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestRun_ReadsStdin(t *testing.T) {
	withConfig(t)

	out, _, err := run(t, "PALAVRA\n", "-q", "encrypt", "vigenere", "--key", "CHAVE", "-")
	require.NoError(t, err)
	assert.Equal(t, "RHLVZTH\n", out)

	out, _, err = run(t, "THISISATEST", "-q", "encrypt", "railfence", "--file", "-")
	require.NoError(t, err)
	assert.Equal(t, "TIEHSSTSIAT\n", out)
}

func TestRun_ReadsFile(t *testing.T) {
	withConfig(t)
	path := filepath.Join(t.TempDir(), "msg.txt")
	require.NoError(t, os.WriteFile(path, []byte("RHLVZTH\n"), 0600))

	out, _, err := run(t, "", "-q", "decrypt", "vigenere", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, "PALAVRA\n", out)

	_, _, err = run(t, "", "decrypt", "vigenere", "--file", path+".missing")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "file", nf.Resource)
}

func TestRun_JSONEnvelope(t *testing.T) {
	withConfig(t)

	out, _, err := run(t, "", "--json", "encrypt", "playfair", "--key", "MONARQUIA", "hello")
	require.NoError(t, err)

	var resp struct {
		Success bool   `json:"success"`
		Command string `json:"command"`
		Data    struct {
			Cipher     string            `json:"cipher"`
			Direction  string            `json:"direction"`
			Normalized string            `json:"normalized"`
			Output     string            `json:"output"`
			Frames     []json.RawMessage `json:"frames"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "encrypt", resp.Command)
	assert.Equal(t, engine.Playfair, resp.Data.Cipher)
	assert.Equal(t, "encrypt", resp.Data.Direction)
	assert.Equal(t, "DFPWWU", resp.Data.Output)
	assert.Len(t, resp.Data.Frames, 3)
}

func TestRun_StyledSummaryAndTrace(t *testing.T) {
	withConfig(t)

	summary, _, err := run(t, "", "encrypt", "railfence", "--rails", "3", "THISISATEST")
	require.NoError(t, err)
	assert.Contains(t, summary, "TIEHSSTSIAT")

	trace, _, err := run(t, "", "encrypt", "railfence", "--rails", "3", "--trace", "THISISATEST")
	require.NoError(t, err)
	assert.Contains(t, trace, "TIEHSSTSIAT")
	assert.Greater(t, len(trace), len(summary))
}

func TestRun_FormatToStdout(t *testing.T) {
	withConfig(t)

	out, _, err := run(t, "", "encrypt", "vigenere", "--key", "CHAVE", "--format", "md", "PALAVRA")
	require.NoError(t, err)
	assert.Contains(t, out, "RHLVZTH")
	assert.Contains(t, out, "#")

	_, _, err = run(t, "", "encrypt", "vigenere", "--format", "pdf", "PALAVRA")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestRun_OutputDir(t *testing.T) {
	withConfig(t)
	dir := t.TempDir()

	out, _, err := run(t, "", "-q", "encrypt", "playfair", "--output", dir, "--format", "html", "hello")
	require.NoError(t, err)

	path := strings.TrimSpace(out)
	require.FileExists(t, path)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.Equal(t, ".html", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DFPWWU")
}

func TestRun_Errors(t *testing.T) {
	withConfig(t)

	_, _, err := run(t, "", "encrypt")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "cipher", verr.Field)

	_, _, err = run(t, "", "encrypt", "playfair")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "text", verr.Field)
	assert.Contains(t, verr.Example, "playfair")

	_, _, err = run(t, "", "rot47")
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Example, "rot47")

	_, _, err = run(t, "", "encrypt", "enigma", "HELLO")
	assert.ErrorIs(t, err, engine.ErrUnknownCipher)
	assert.Equal(t, ExitNotFoundError, GetExitCode(err))

	_, _, err = run(t, "", "encrypt", "railfence", "--rails", "three", "HELLO")
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	_, _, err = run(t, "", "encrypt", "railfence", "--order", "two,zero", "HELLO")
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

// =============================================================================
// LIST / EXPLAIN
// =============================================================================

func TestList(t *testing.T) {
	out, _, err := run(t, "", "-q", "list")
	require.NoError(t, err)
	assert.Equal(t, strings.Join(engine.Names(), "\n")+"\n", out)

	out, _, err = run(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "rail, rf")

	out, _, err = run(t, "", "--json", "list")
	require.NoError(t, err)
	var resp struct {
		Data CipherListData `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Len(t, resp.Data.Ciphers, len(engine.Names()))
}

func TestExplain(t *testing.T) {
	out, _, err := run(t, "", "explain", "pf")
	require.NoError(t, err)
	info, _ := engine.Lookup(engine.Playfair)
	assert.Equal(t, info.Explanation, out)

	out, _, err = run(t, "", "--json", "explain", "rot")
	require.NoError(t, err)
	var resp struct {
		Data ExplainData `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, engine.ROT47, resp.Data.Name)
	assert.NotEmpty(t, resp.Data.Markdown)

	_, _, err = run(t, "", "explain")
	assert.Equal(t, ExitUsageError, GetExitCode(err))
	_, _, err = run(t, "", "explain", "enigma")
	assert.Equal(t, ExitNotFoundError, GetExitCode(err))
}

// =============================================================================
// PLAY
// =============================================================================

func TestPlay(t *testing.T) {
	cfg := withConfig(t)

	var got *engine.Outcome
	var gotOpts player.Options
	runPlayer = func(out *engine.Outcome, opts player.Options) error {
		got, gotOpts = out, opts
		return nil
	}
	requireTTY = func(string) error { return nil }
	t.Cleanup(func() {
		runPlayer = player.Run
		requireTTY = RequiresTTY
	})

	_, _, err := run(t, "", "play", "vig", "decrypt", "--key", "CHAVE", "RHLVZTH")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "PALAVRA", got.Output)
	assert.Equal(t, "key=CHAVE", gotOpts.KeyInfo)
	assert.Equal(t, int64(cfg.UI.StepIntervalMS), gotOpts.Interval.Milliseconds())

	_, _, err = run(t, "", "play", "rf", "encrypt", "--rails", "4", "--interval", "50", "HELLOWORLD")
	require.NoError(t, err)
	assert.Equal(t, "rails=4", gotOpts.KeyInfo)
	assert.Equal(t, int64(50), gotOpts.Interval.Milliseconds())
}

func TestPlay_Errors(t *testing.T) {
	withConfig(t)
	requireTTY = func(op string) error { return &TTYRequiredError{Operation: op} }
	t.Cleanup(func() { requireTTY = RequiresTTY })

	_, _, err := run(t, "", "play", "playfair")
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	_, _, err = run(t, "", "play", "playfair", "sideways", "HELLO")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "direction", verr.Field)

	_, _, err = run(t, "", "play", "playfair", "encrypt", "HELLO")
	var tty *TTYRequiredError
	require.ErrorAs(t, err, &tty)
}

// =============================================================================
// CRACK
// =============================================================================

const crackPlain = "THEQUICKBROWNFOXJUMPSOVERTHELAZYDOGANDTHENRUNSBACKTOTHEFORESTWHEREITLIVES"

func TestCrack_Substitution(t *testing.T) {
	withConfig(t)

	out, _, err := run(t, "", "--json", "crack", "sub", "--seed", "7", crackPlain)
	require.NoError(t, err)

	var resp struct {
		Success bool             `json:"success"`
		Data    SubstitutionData `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, uint64(7), resp.Data.Seed)
	assert.Len(t, resp.Data.Key, 26)
	assert.Len(t, resp.Data.Plaintext, len(crackPlain))
	assert.Positive(t, resp.Data.Proposals)
}

func TestCrack_Permutation(t *testing.T) {
	withConfig(t)

	out, _, err := run(t, "", "--json", "crack", "perm", "--min", "2", "--max", "3", "--top", "2", "TIEHSSTSIAT")
	require.NoError(t, err)

	var resp struct {
		Data PermutationData `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Len(t, resp.Data.Candidates, 2)
	assert.Greater(t, resp.Data.Searched, 2)

	quiet, _, err := run(t, "", "-q", "crack", "permutation", "--min", "2", "--max", "3", "TIEHSSTSIAT")
	require.NoError(t, err)
	assert.Len(t, strings.TrimSpace(quiet), len("TIEHSSTSIAT"))
}

func TestCrack_Errors(t *testing.T) {
	withConfig(t)

	_, _, err := run(t, "", "crack")
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	_, _, err = run(t, "", "crack", "substitutoin", "ABC")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "substitution", nf.Hint)

	_, _, err = run(t, "", "crack", "sub", "12345")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "text", verr.Field)

	_, _, err = run(t, "", "crack", "sub", "--seed=-1", "ABC")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "--seed", verr.Field)

	_, _, err = run(t, "", "crack", "perm", "--min", "5", "--max", "2", "ABCDEF")
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestCrack_Interrupted(t *testing.T) {
	withConfig(t)
	crackContext = func() (context.Context, context.CancelFunc) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx, cancel
	}
	t.Cleanup(func() {
		crackContext = func() (context.Context, context.CancelFunc) {
			return context.WithCancel(context.Background())
		}
	})

	_, _, err := run(t, "", "crack", "sub", crackPlain)
	require.Error(t, err)
	assert.Equal(t, ExitInterrupted, GetExitCode(err))
}

// =============================================================================
// CONFIG
// =============================================================================

func TestConfig_ShowGetKeys(t *testing.T) {
	withConfig(t)

	out, _, err := run(t, "", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "[railfence]")
	assert.Contains(t, out, "MONARQUIA")

	out, _, err = run(t, "", "config", "get", "vigenere.keyword")
	require.NoError(t, err)
	assert.Equal(t, "CHAVE\n", out)

	out, _, err = run(t, "", "config", "keys")
	require.NoError(t, err)
	assert.Contains(t, out, "railfence.rails\n")

	_, _, err = run(t, "", "config", "get", "railfence.rail")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "railfence.rails", nf.Hint)

	_, _, err = run(t, "", "config", "shwo")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "show", nf.Hint)
}

func TestConfig_InitAndSet(t *testing.T) {
	withConfig(t)
	stdinIsTTY = func() bool { return false }
	t.Cleanup(func() { stdinIsTTY = IsTTY })

	path, err := config.ConfigPathTOML()
	require.NoError(t, err)

	_, _, err = run(t, "", "-q", "config", "init")
	require.NoError(t, err)
	require.FileExists(t, path)

	// A second init needs --force without a terminal.
	_, _, err = run(t, "", "config", "init")
	assert.ErrorIs(t, err, errConfirmationRequired)
	_, _, err = run(t, "", "-q", "config", "init", "--force")
	require.NoError(t, err)

	_, _, err = run(t, "", "-q", "config", "set", "railfence.order", "2,0,1")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 1}, config.Global().RailFence.Order)

	out, _, err := run(t, "", "-q", "encrypt", "railfence", "THISISATEST")
	require.NoError(t, err)
	assert.Equal(t, "IATTIEHSSTS\n", out)

	_, _, err = run(t, "", "config", "set", "railfence.rails", "-1")
	assert.Equal(t, ExitConfigError, GetExitCode(err))

	_, _, err = run(t, "", "config", "set", "railfence.rails")
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestConfig_InitJSONAndSet(t *testing.T) {
	withConfig(t)

	jsonPath, err := config.ConfigPathJSON()
	require.NoError(t, err)
	tomlPath, err := config.ConfigPathTOML()
	require.NoError(t, err)

	_, _, err = run(t, "", "-q", "config", "init", "--format", "json")
	require.NoError(t, err)
	require.FileExists(t, jsonPath)
	require.NoFileExists(t, tomlPath)

	// set edits the JSON file that Load reads rather than creating a TOML one.
	_, _, err = run(t, "", "-q", "config", "set", "vigenere.keyword", "LEMON")
	require.NoError(t, err)
	require.NoFileExists(t, tomlPath)
	assert.Equal(t, "LEMON", config.Global().Vigenere.Keyword)

	// Setting the same value again leaves the file alone.
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"LEMON"`)
	marked := append(data, "\n\n"...)
	require.NoError(t, os.WriteFile(jsonPath, marked, 0644))

	out, _, err := run(t, "", "config", "set", "vigenere.keyword", "LEMON")
	require.NoError(t, err)
	assert.Contains(t, out, "Unchanged")
	after, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, marked, after)

	out, _, err = run(t, "", "--json", "config", "set", "vigenere.keyword", "LEMON")
	require.NoError(t, err)
	var resp struct {
		Data ConfigPathData `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, jsonPath, resp.Data.JSON)

	_, _, err = run(t, "", "config", "init", "--format", "yaml")
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestConfig_Path(t *testing.T) {
	withConfig(t)

	out, _, err := run(t, "", "--json", "config", "path")
	require.NoError(t, err)
	var resp struct {
		Data ConfigPathData `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.False(t, resp.Data.Exists)
	assert.Equal(t, "config.toml", filepath.Base(resp.Data.TOML))
}

// =============================================================================
// CONFIRMATION
// =============================================================================

func TestConfirmOverwrite(t *testing.T) {
	s, _, _ := testStreams("")
	ok, err := confirmOverwrite(s, "x", ConfirmationOptions{ConfirmFlag: true})
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = confirmOverwrite(s, "x", ConfirmationOptions{JSONMode: true})
	assert.ErrorIs(t, err, errConfirmationRequired)

	stdinIsTTY = func() bool { return true }
	t.Cleanup(func() { stdinIsTTY = IsTTY })

	s, out, _ := testStreams("y\n")
	ok, err = confirmOverwrite(s, "config.toml", ConfirmationOptions{})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, out.String(), "config.toml exists. Overwrite? [y/N]")
}

func TestPromptYesNo(t *testing.T) {
	for in, want := range map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "": false, "yes": true} {
		s, _, _ := testStreams(in)
		assert.Equal(t, want, PromptYesNo(s, "Go?"), "%q", in)
	}
}
