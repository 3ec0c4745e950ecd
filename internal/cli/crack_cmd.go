// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// crack_cmd.go - The crack command: breaking ciphertext without the key.
//
// Command: crack <mode> <text...|--file F> [flags]
//
// Modes:
//   substitution, sub       Simulated annealing over substitution keys
//   permutation, perm       Columnar and block transposition search
//
// Flags:
//   --seed N                Random seed (default: crack.seed)
//   --quadgrams F           "NGRAM COUNT" file (default: crack.quadgram_file)
//   --min N / --max N       Key length range (permutation)
//   --top N                 Candidates to print (permutation, default 5)
//
// Ctrl+C stops a running search. -v logs each finished search to stderr.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/jeranaias/cipherlab/internal/config"
	"github.com/jeranaias/cipherlab/internal/crack"
	"github.com/jeranaias/cipherlab/internal/score"
	"github.com/jeranaias/cipherlab/internal/util"
)

var crackModes = []string{"substitution", "permutation"}

// defaultTop is how many permutation candidates are printed.
const defaultTop = 5

// crackContext returns the context searches run under. Replaced in tests.
var crackContext = func() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// HandleCrack handles "crack substitution" and "crack permutation".
func HandleCrack(s Streams, args Args) error {
	p := NewArgParser(args.Raw)

	mode := strings.ToLower(p.Subcommand())
	switch mode {
	case "substitution", "sub":
		mode = "substitution"
	case "permutation", "perm", "transposition":
		mode = "permutation"
	case "":
		return ErrMissingArgument("mode", "cipherlab crack substitution --file ciphertext.txt")
	default:
		return &NotFoundError{Resource: "crack mode", ID: mode, Hint: Suggest(mode, crackModes)}
	}

	if p.PositionalCount() <= 1 && !p.HasFlag("file") {
		return ErrMissingArgument("text", "cipherlab crack "+mode+" --file ciphertext.txt")
	}
	text, err := readText(s, p, 1)
	if err != nil {
		return err
	}

	cfg := config.Global()
	logger := newLogger(s, args.Verbose)

	seed := cfg.Crack.Seed
	if p.HasFlag("seed") {
		seed, err = strconv.ParseUint(p.Flag("seed"), 10, 64)
		if err != nil {
			return NewValidationError("--seed", p.Flag("seed"), "must be a non-negative integer", "--seed 42")
		}
	}
	scorer := score.Load(flagOr(p, "quadgrams", cfg.Crack.QuadgramFile), logger)

	ctx, stop := crackContext()
	defer stop()

	if mode == "substitution" {
		logger.Printf("CRACK_SUBSTITUTION | start seed=%d", seed)
		sol, err := crack.Substitution(ctx, text, scorer, cfg.Crack.Anneal(), seed)
		if err != nil {
			return crackError(ctx, mode, err)
		}
		logger.Printf("CRACK_SUBSTITUTION | done score=%.2f proposals=%d", sol.Score, sol.Proposals)
		return printSubstitution(s, args, sol, seed)
	}

	opts := cfg.Crack.PermutationOptions()
	opts.Seed = seed
	opts.Logger = logger
	if opts.MinKeyLen, err = p.FlagIntOrDefault("min", opts.MinKeyLen); err != nil {
		return err
	}
	if opts.MaxKeyLen, err = p.FlagIntOrDefault("max", opts.MaxKeyLen); err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return NewValidationError("key length range", fmt.Sprintf("%d..%d", opts.MinKeyLen, opts.MaxKeyLen), err.Error(), "--min 2 --max 8")
	}
	top, err := p.FlagIntOrDefault("top", defaultTop)
	if err != nil {
		return err
	}

	cands, err := crack.Permutation(ctx, text, scorer, opts)
	if err != nil {
		return crackError(ctx, mode, err)
	}
	return printCandidates(s, args, cands, top)
}

// crackError maps search errors to CLI errors.
func crackError(ctx context.Context, mode string, err error) error {
	switch {
	case errors.Is(err, crack.ErrNoText):
		return NewValidationError("text", "", "contains no letters to work on", "")
	case ctx.Err() != nil:
		return fmt.Errorf("crack %s: %w", mode, errInterrupted)
	default:
		return NewCommandError("crack", mode, "search failed", err)
	}
}

func printSubstitution(s Streams, args Args, sol crack.SubstitutionSolution, seed uint64) error {
	if args.JSON {
		return NewJSONResponse("crack", SubstitutionData{
			Key:       sol.Key.String(),
			Plaintext: sol.Plaintext,
			Score:     sol.Score,
			Proposals: sol.Proposals,
			Seed:      seed,
		}).Print(s.Out)
	}
	if args.Quiet {
		_, err := fmt.Fprintln(s.Out, sol.Plaintext)
		return err
	}

	fmt.Fprintln(s.Out, TitleStyle.Render("Substitution key"))
	fmt.Fprintln(s.Out, ValueStyle.Render(sol.Key.Pretty()))
	fmt.Fprintln(s.Out, RenderField("score", strconv.FormatFloat(sol.Score, 'f', 2, 64)))
	fmt.Fprintln(s.Out, RenderField("proposals", strconv.Itoa(sol.Proposals)))
	fmt.Fprintln(s.Out, RenderField("seed", strconv.FormatUint(seed, 10)))
	fmt.Fprintln(s.Out)
	fmt.Fprintln(s.Out, OutputStyle.Render(sol.Plaintext))
	return nil
}

func printCandidates(s Streams, args Args, cands []crack.Candidate, top int) error {
	searched := len(cands)
	if top > 0 && top < len(cands) {
		cands = cands[:top]
	}

	if args.JSON {
		return NewJSONResponse("crack", PermutationData{Candidates: cands, Searched: searched}).Print(s.Out)
	}
	if args.Quiet {
		_, err := fmt.Fprintln(s.Out, cands[0].Text)
		return err
	}

	fmt.Fprintln(s.Out, TitleStyle.Render(fmt.Sprintf("Best %d of %d searches", len(cands), searched)))
	fmt.Fprintln(s.Out, RenderSeparator(60))
	preview := GetTerminalWidth() - 4
	for i, c := range cands {
		how := "annealed"
		if c.Exhaustive {
			how = "exhaustive"
		}
		fmt.Fprintf(s.Out, "%s %s %s\n",
			RenderLabel(fmt.Sprintf("%d. %s", i+1, c.Label())),
			ValueStyle.Render(fmt.Sprintf("key=%s score=%.2f", formatOrder(c.Key), c.Score)),
			DimStyle.Render(how))
		fmt.Fprintln(s.Out, "   "+OutputStyle.Render(util.TruncateWidth(c.Text, preview)))
	}
	return nil
}
