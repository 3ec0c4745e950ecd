// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package crack recovers keys for classical ciphers by searching for the
// decryption that scores most like English.
//
// Two breakers are provided:
//
//   - Substitution: simulated annealing over monoalphabetic substitution keys.
//   - Permutation: columnar and block transposition, exhaustive for short keys
//     and annealed for long ones, across a range of key lengths in parallel.
//
// # Usage
//
//	scorer := score.Load(cfg.Crack.QuadgramFile, logger)
//
//	sol, err := crack.Substitution(ctx, ciphertext, scorer, crack.DefaultAnneal(), 42)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(sol.Key.Pretty())
//	fmt.Println(sol.Plaintext)
//
//	opts := crack.DefaultPermutationOptions()
//	opts.Logger = logger
//	candidates, err := crack.Permutation(ctx, ciphertext, scorer, opts)
//	if err != nil {
//	    return err
//	}
//	best := candidates[0]
//
// Every search is seeded, so the same input and options give the same answer.
// Cancelling ctx stops the search and returns ctx.Err().
package crack
