// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/cipherlab/internal/cipher"
	"github.com/jeranaias/cipherlab/internal/engine"
)

func newTestSession(t *testing.T, name string, raw ...string) *Session {
	t.Helper()
	sess, err := NewSession(withConfig(t), NewArgParser(raw), name)
	require.NoError(t, err)
	return sess
}

func TestSession_Transform(t *testing.T) {
	sess := newTestSession(t, "vig", "--key", "CHAVE")
	assert.Equal(t, "vigenere encrypt> ", sess.Prompt())

	reply, err := sess.Exec("  PALAVRA  ")
	require.NoError(t, err)
	require.NotNil(t, reply.Outcome)
	assert.Equal(t, "RHLVZTH", reply.Outcome.Output)

	reply, err = sess.Exec(":dir decrypt")
	require.NoError(t, err)
	assert.Equal(t, "vigenere decrypt key=CHAVE trace=off", reply.Message)

	reply, err = sess.Exec("RHLVZTH")
	require.NoError(t, err)
	assert.Equal(t, "PALAVRA", reply.Outcome.Output)

	reply, err = sess.Exec("")
	require.NoError(t, err)
	assert.Equal(t, Reply{}, reply)
}

func TestSession_Settings(t *testing.T) {
	sess := newTestSession(t, "playfair")
	assert.Equal(t, "MONARQUIA", sess.Request.Key)

	_, err := sess.Exec(":key PLAYFAIREXAMPLE")
	require.NoError(t, err)
	assert.Equal(t, "PLAYFAIREXAMPLE", sess.Request.Key)

	_, err = sess.Exec(":cipher rf")
	require.NoError(t, err)
	assert.Equal(t, engine.RailFence, sess.Request.Cipher)
	assert.Equal(t, 3, sess.Request.Rails)

	_, err = sess.Exec(":rails 2")
	require.NoError(t, err)
	_, err = sess.Exec(":order 1,0")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, sess.Request.Order)

	reply, err := sess.Exec("HELLOWORLD")
	require.NoError(t, err)
	assert.Equal(t, "ELWRDHLOOL", reply.Outcome.Output)

	_, err = sess.Exec(":order")
	require.NoError(t, err)
	assert.Empty(t, sess.Request.Order)

	_, err = sess.Exec(":trace on")
	require.NoError(t, err)
	assert.True(t, sess.Trace)

	_, err = sess.Exec(":cipher chao")
	require.NoError(t, err)
	_, err = sess.Exec(":alphabet HXUCZVAMDSLKPEFJRIGTWOBNYQ PTLNBQDEOYSFAVZKGJRIHWXUMC")
	require.NoError(t, err)
	reply, err = sess.Exec("WELLDONEISBETTERTHANWELLSAID")
	require.NoError(t, err)
	assert.Equal(t, "OAHQHCNYNXTSZJRRHJBYHQKSOUJY", reply.Outcome.Output)
	assert.Equal(t, cipher.Encrypt, sess.Request.Direction)
}

func TestSession_Errors(t *testing.T) {
	sess := newTestSession(t, "rot47")
	before := sess.Request

	tests := []struct {
		line string
		code int
	}{
		{":key SECRET", ExitUsageError},
		{":dir sideways", ExitUsageError},
		{":rails many", ExitUsageError},
		{":order x,y", ExitUsageError},
		{":alphabet", ExitUsageError},
		{":trace maybe", ExitUsageError},
		{":cipher", ExitUsageError},
		{":cipher enigma", ExitNotFoundError},
		{":chiper vig", ExitNotFoundError},
		{":rails 3", ExitUsageError},
		{":order 1,0", ExitUsageError},
		{":alphabet HXUCZVAMDSLKPEFJRIGTWOBNYQ", ExitUsageError},
	}
	for _, tt := range tests {
		_, err := sess.Exec(tt.line)
		require.Error(t, err, tt.line)
		assert.Equal(t, tt.code, GetExitCode(err), tt.line)
	}
	assert.Equal(t, before, sess.Request)

	_, err := sess.Exec(":chiper vig")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, ":cipher", nf.Hint)
}

func TestSession_SettingsFollowCipher(t *testing.T) {
	sess := newTestSession(t, "vigenere", "--key", "LEMON")

	_, err := sess.Exec(":rails 4")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, ":cipher railfence", ve.Example)
	_, err = sess.Exec(":order 2,0,1")
	require.ErrorAs(t, err, &ve)
	assert.Empty(t, sess.Request.Order)

	_, err = sess.Exec(":cipher railfence")
	require.NoError(t, err)
	_, err = sess.Exec(":rails 4")
	require.NoError(t, err)
	assert.Equal(t, 4, sess.Request.Rails)
	_, err = sess.Exec(":order 2,0,1,3")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 1, 3}, sess.Request.Order)

	_, err = sess.Exec(":alphabet HXUCZVAMDSLKPEFJRIGTWOBNYQ")
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, ":cipher chaocipher", ve.Example)
}

func TestSession_Quit(t *testing.T) {
	sess := newTestSession(t, "rot47")
	for _, line := range []string{":quit", ":q", "exit", "QUIT"} {
		reply, err := sess.Exec(line)
		require.NoError(t, err)
		assert.True(t, reply.Quit, line)
	}
}

func TestComplete(t *testing.T) {
	assert.Equal(t, []string{":cipher"}, complete(":ci"))
	assert.ElementsMatch(t, []string{":rails"}, complete(":ra"))
	assert.Contains(t, complete(":cipher ra"), ":cipher railfence")
	assert.Contains(t, complete(":cipher ra"), ":cipher rail")
	assert.Nil(t, complete("HELLO"))
}

func TestREPL_Script(t *testing.T) {
	withConfig(t)
	stdinIsTTY = func() bool { return false }
	t.Cleanup(func() { stdinIsTTY = IsTTY })

	script := "PALAVRA\n:bogus\n:dir decrypt\nRHLVZTH\n:quit\nNEVER\n"
	out, errOut, err := run(t, script, "repl", "--cipher", "vig", "--key", "CHAVE")
	require.NoError(t, err)

	assert.Contains(t, out, "RHLVZTH\n")
	assert.Contains(t, out, "PALAVRA\n")
	assert.NotContains(t, out, "NEVER")
	assert.NotContains(t, out, "encrypt> ")
	assert.Contains(t, errOut, "[ERROR]")
}

func TestREPL_TraceAndEOF(t *testing.T) {
	withConfig(t)
	stdinIsTTY = func() bool { return false }
	t.Cleanup(func() { stdinIsTTY = IsTTY })

	out, _, err := run(t, ":trace on\nTHISISATEST", "repl", "--cipher", "railfence")
	require.NoError(t, err)
	assert.Contains(t, out, "TIEHSSTSIAT")
	assert.Contains(t, out, "trace=on")

	_, _, err = run(t, "", "repl", "--cipher", "enigma")
	assert.Equal(t, ExitNotFoundError, GetExitCode(err))
}
