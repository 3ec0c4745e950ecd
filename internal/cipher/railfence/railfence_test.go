// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package railfence

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jeranaias/cipherlab/internal/cipher"
)

func TestRun_KnownVectors(t *testing.T) {
	tests := []struct {
		name  string
		plain string
		rails int
		want  string
	}{
		{"three rails", "THISISATEST", 3, "TIEHSSTSIAT"},
		{"classic", "WEAREDISCOVEREDFLEEATONCE", 3, "WECRLTEERDSOEEFEAOCAIVDEN"},
		{"two rails", "HELLOWORLD", 2, "HLOOLELWRD"},
		{"more rails than text", "ABC", 5, "ABC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := Run(tt.plain, Config{Rails: tt.rails}, cipher.Encrypt)
			require.Equal(t, tt.want, enc.Text)

			dec := Run(tt.want, Config{Rails: tt.rails}, cipher.Decrypt)
			require.Equal(t, tt.plain, dec.Text)
		})
	}
}

func TestRun_TraceRows(t *testing.T) {
	res := Run("THISISATEST", Config{Rails: 3}, cipher.Encrypt)
	require.Equal(t, []string{"TIE", "HSSTS", "IAT"}, res.Trace.Rows)
	require.Equal(t, []int{0, 1, 2, 1, 0, 1, 2, 1, 0, 1, 2}, res.Trace.Pattern)
	require.Equal(t, []int{0, 1, 2}, res.Trace.Order)
	require.Nil(t, res.Trace.Ordered)
	require.Empty(t, res.Fallbacks)
}

func TestRun_RoundTripAllRails(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	symbols := []rune("abcXYZ 0123é!漢")
	for i := 0; i < 200; i++ {
		n := rng.IntN(30)
		rs := make([]rune, n)
		for j := range rs {
			rs[j] = symbols[rng.IntN(len(symbols))]
		}
		plain := string(rs)
		for rails := 2; rails <= 8; rails++ {
			enc := Run(plain, Config{Rails: rails}, cipher.Encrypt)
			dec := Run(enc.Text, Config{Rails: rails}, cipher.Decrypt)
			require.Equal(t, plain, dec.Text, "rails=%d", rails)
		}
	}
}

func TestRun_IdentityBelowTwoRails(t *testing.T) {
	for _, rails := range []int{-3, 0, 1} {
		for _, dir := range []cipher.Direction{cipher.Encrypt, cipher.Decrypt} {
			res := Run("keep me as is", Config{Rails: rails}, dir)
			require.Equal(t, "keep me as is", res.Text)
			require.Empty(t, res.Trace.Rows)
			require.Empty(t, res.Trace.Pattern)
		}
	}

	res := Run("", Config{Rails: 3}, cipher.Encrypt)
	require.Empty(t, res.Text)
	require.Empty(t, res.Trace.Rows)
}

func TestRun_CustomOrder(t *testing.T) {
	cfg := Config{Rails: 3, Order: []int{2, 0, 1}}

	enc := Run("THISISATEST", cfg, cipher.Encrypt)
	require.Equal(t, "IATTIEHSSTS", enc.Text)
	require.Equal(t, []string{"IAT", "TIE", "HSSTS"}, enc.Trace.Ordered)
	require.Equal(t, []string{"TIE", "HSSTS", "IAT"}, enc.Trace.Rows)

	dec := Run(enc.Text, cfg, cipher.Decrypt)
	require.Equal(t, "THISISATEST", dec.Text)

	wrong := Run(enc.Text, Config{Rails: 3, Order: []int{1, 0, 2}}, cipher.Decrypt)
	require.NotEqual(t, "THISISATEST", wrong.Text)

	natural := Run(enc.Text, Config{Rails: 3}, cipher.Decrypt)
	require.NotEqual(t, "THISISATEST", natural.Text)
}

func TestRun_CustomOrderRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	plain := "WE ARE DISCOVERED. FLEE AT ONCE!"
	for rails := 2; rails <= 7; rails++ {
		for i := 0; i < 20; i++ {
			cfg := Config{Rails: rails, Order: rng.Perm(rails)}
			enc := Run(plain, cfg, cipher.Encrypt)
			require.Empty(t, enc.Fallbacks)
			dec := Run(enc.Text, cfg, cipher.Decrypt)
			require.Equal(t, plain, dec.Text, "order %v", cfg.Order)
		}
	}
}

func TestRun_InvalidOrderFallsBack(t *testing.T) {
	natural := Run("THISISATEST", Config{Rails: 3}, cipher.Encrypt)

	for _, order := range [][]int{
		{0, 1},       // wrong length
		{0, 1, 3},    // out of range
		{-1, 0, 1},   // negative
		{2, 2, 0},    // duplicate
		{0, 1, 2, 3}, // too long
	} {
		res := Run("THISISATEST", Config{Rails: 3, Order: order}, cipher.Encrypt)
		require.Equal(t, natural.Text, res.Text, "order %v", order)
		require.Equal(t, []int{0, 1, 2}, res.Trace.Order)
		require.Len(t, res.Fallbacks, 1, "order %v", order)
		require.Equal(t, "order", res.Fallbacks[0].Field)
	}
}

func TestPattern(t *testing.T) {
	require.Equal(t, []int{0, 1, 0, 1, 0}, Pattern(5, 2))
	require.Equal(t, []int{0, 1, 2, 3, 2, 1, 0, 1}, Pattern(8, 4))
	require.Equal(t, []int{0, 0, 0}, Pattern(3, 1))
	require.Empty(t, Pattern(0, 3))
}

func TestRun_InvalidUTF8RoundTrip(t *testing.T) {
	enc := Run("AB\xffCD", Config{Rails: 2}, cipher.Encrypt)
	require.Equal(t, "A\xffDBC", enc.Text)
	require.Equal(t, []string{"A\xffD", "BC"}, enc.Trace.Rows)
	require.Len(t, enc.Trace.Pattern, 5)

	dec := Run(enc.Text, Config{Rails: 2}, cipher.Decrypt)
	require.Equal(t, "AB\xffCD", dec.Text)

	rng := rand.New(rand.NewPCG(5, 6))
	for i := 0; i < 200; i++ {
		b := make([]byte, rng.IntN(24))
		for j := range b {
			b[j] = byte(rng.IntN(256))
		}
		cfg := Config{Rails: 2 + rng.IntN(5)}
		cfg.Order = rng.Perm(cfg.Rails)
		enc := Run(string(b), cfg, cipher.Encrypt)
		require.Len(t, enc.Text, len(b))
		require.Equal(t, string(b), Run(enc.Text, cfg, cipher.Decrypt).Text, "%q", b)
	}
}
