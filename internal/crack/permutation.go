// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package crack

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/jeranaias/cipherlab/internal/score"
)

// Mode is a transposition family.
type Mode string

const (
	Columnar Mode = "columnar"
	Block    Mode = "block"
)

// Modes lists the families Permutation tries, in report order.
var Modes = []Mode{Columnar, Block}

// Decrypt applies the mode's decryption under key.
func (m Mode) Decrypt(text string, key []int) string {
	if m == Block {
		return BlockDecrypt(text, key)
	}
	return ColumnarDecrypt(text, key)
}

// Encrypt applies the mode's encryption under key.
func (m Mode) Encrypt(text string, key []int) string {
	if m == Block {
		return BlockEncrypt(text, key)
	}
	return ColumnarEncrypt(text, key)
}

func (m Mode) index() uint64 {
	if m == Block {
		return 1
	}
	return 0
}

// PermutationOptions configures Permutation.
type PermutationOptions struct {
	MinKeyLen     int
	MaxKeyLen     int
	BruteForceMax int // longest key searched exhaustively

	// Annealing for keys longer than BruteForceMax. Temperature is
	// multiplied by CoolingRate after every proposal.
	Temperature float64
	CoolingRate float64
	Iterations  int

	Seed uint64

	// Parallelism caps concurrent searches. Zero means runtime.NumCPU().
	Parallelism int

	// Logger receives one line per finished search. May be nil.
	Logger *log.Logger
}

// DefaultPermutationOptions returns the options used when nothing is configured.
func DefaultPermutationOptions() PermutationOptions {
	return PermutationOptions{
		MinKeyLen:     2,
		MaxKeyLen:     10,
		BruteForceMax: 8,
		Temperature:   50.0,
		CoolingRate:   0.99,
		Iterations:    100000,
		Seed:          42,
	}
}

// Validate checks key ranges and the annealing schedule.
func (o PermutationOptions) Validate() error {
	switch {
	case o.MinKeyLen < 2:
		return fmt.Errorf("min key length must be at least 2, got %d", o.MinKeyLen)
	case o.MaxKeyLen < o.MinKeyLen:
		return fmt.Errorf("max key length %d is below min %d", o.MaxKeyLen, o.MinKeyLen)
	case o.BruteForceMax < 1 || o.BruteForceMax > 9:
		return fmt.Errorf("brute force limit must be in 1..9, got %d", o.BruteForceMax)
	case o.Temperature <= 0:
		return fmt.Errorf("temperature must be positive, got %v", o.Temperature)
	case o.CoolingRate <= 0 || o.CoolingRate >= 1:
		return fmt.Errorf("cooling rate %v must be in (0,1)", o.CoolingRate)
	case o.Iterations <= 0:
		return fmt.Errorf("iterations must be positive, got %d", o.Iterations)
	}
	return nil
}

// Candidate is the best decryption found for one mode and key length.
type Candidate struct {
	Mode       Mode    `json:"mode"`
	KeyLen     int     `json:"key_len"`
	Key        []int   `json:"key"`
	Text       string  `json:"text"`
	Score      float64 `json:"score"`
	Exhaustive bool    `json:"exhaustive"`
}

// Label names the candidate, e.g. "columnar_5".
func (c Candidate) Label() string {
	return fmt.Sprintf("%s_%d", c.Mode, c.KeyLen)
}

// =============================================================================
// SEARCH
// =============================================================================

// Permutation searches every key length in [MinKeyLen, MaxKeyLen] under both
// modes and returns one candidate per search, best score first. Key lengths
// longer than the prepared text are skipped.
func Permutation(ctx context.Context, ciphertext string, scorer score.Scorer, opts PermutationOptions) ([]Candidate, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	text := Prepare(ciphertext)
	n := len([]rune(text))
	if n == 0 {
		return nil, ErrNoText
	}

	type job struct {
		mode   Mode
		keyLen int
	}
	var jobs []job
	for keyLen := opts.MinKeyLen; keyLen <= opts.MaxKeyLen && keyLen <= n; keyLen++ {
		for _, m := range Modes {
			jobs = append(jobs, job{mode: m, keyLen: keyLen})
		}
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("text of %d symbols is shorter than the minimum key length %d", n, opts.MinKeyLen)
	}

	limit := opts.Parallelism
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	results := make([]Candidate, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, j := range jobs {
		g.Go(func() error {
			var (
				c   Candidate
				err error
			)
			if j.keyLen <= opts.BruteForceMax {
				c, err = exhaustive(ctx, text, j.mode, j.keyLen, scorer)
			} else {
				rng := rand.New(rand.NewPCG(opts.Seed, uint64(j.keyLen)<<1|j.mode.index()))
				c, err = annealPermutation(ctx, text, j.mode, j.keyLen, scorer, opts, rng)
			}
			if err != nil {
				return err
			}
			results[i] = c
			if opts.Logger != nil {
				opts.Logger.Printf("CRACK_PERMUTATION | mode=%s key_len=%d exhaustive=%t score=%.2f",
					c.Mode, c.KeyLen, c.Exhaustive, c.Score)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(a, b int) bool { return results[a].Score > results[b].Score })
	return results, nil
}

// exhaustive tries every permutation in lexicographic order and keeps the
// first best.
func exhaustive(ctx context.Context, text string, mode Mode, keyLen int, scorer score.Scorer) (Candidate, error) {
	key := make([]int, keyLen)
	for i := range key {
		key[i] = i
	}

	best := Candidate{Mode: mode, KeyLen: keyLen, Score: math.Inf(-1), Exhaustive: true}
	for tried := 0; ; tried++ {
		if tried%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Candidate{}, err
			}
		}
		plain := mode.Decrypt(text, key)
		if s := scorer.Score(plain); s > best.Score {
			best.Score = s
			best.Text = plain
			best.Key = append(best.Key[:0], key...)
		}
		if !nextPermutation(key) {
			break
		}
	}
	return best, nil
}

// annealPermutation runs Iterations swap proposals from a random key, cooling
// after each one, and returns the best key seen.
func annealPermutation(ctx context.Context, text string, mode Mode, keyLen int, scorer score.Scorer, opts PermutationOptions, rng *rand.Rand) (Candidate, error) {
	current := rng.Perm(keyLen)
	currentText := mode.Decrypt(text, current)
	currentScore := scorer.Score(currentText)

	best := Candidate{
		Mode:   mode,
		KeyLen: keyLen,
		Key:    append([]int(nil), current...),
		Text:   currentText,
		Score:  currentScore,
	}

	temp := opts.Temperature
	for it := 0; it < opts.Iterations; it++ {
		if it%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Candidate{}, err
			}
		}

		i := rng.IntN(keyLen)
		j := rng.IntN(keyLen - 1)
		if j >= i {
			j++
		}
		current[i], current[j] = current[j], current[i]

		plain := mode.Decrypt(text, current)
		s := scorer.Score(plain)
		if accept(s-currentScore, temp, rng) {
			currentScore = s
			if s > best.Score {
				best.Score = s
				best.Text = plain
				best.Key = append(best.Key[:0], current...)
			}
		} else {
			current[i], current[j] = current[j], current[i]
		}
		temp *= opts.CoolingRate
	}
	return best, nil
}
