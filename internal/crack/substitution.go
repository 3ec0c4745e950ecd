// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package crack

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/jeranaias/cipherlab/internal/score"
	"github.com/jeranaias/cipherlab/internal/substitution"
)

// ErrNoText is returned when the ciphertext has nothing to work on.
var ErrNoText = errors.New("ciphertext is empty")

// checkEvery is how many proposals run between context checks.
const checkEvery = 256

// Anneal is the cooling schedule of the substitution breaker.
type Anneal struct {
	InitialTemp       float64
	FinalTemp         float64
	CoolingRate       float64
	IterationsPerTemp int
}

// DefaultAnneal returns the schedule used when nothing is configured.
func DefaultAnneal() Anneal {
	return Anneal{
		InitialTemp:       15.0,
		FinalTemp:         2.0,
		CoolingRate:       0.97,
		IterationsPerTemp: 500,
	}
}

// Validate rejects schedules that would never terminate or never move.
func (a Anneal) Validate() error {
	switch {
	case a.InitialTemp <= 0 || a.FinalTemp <= 0:
		return fmt.Errorf("temperatures must be positive (initial=%v, final=%v)", a.InitialTemp, a.FinalTemp)
	case a.FinalTemp >= a.InitialTemp:
		return fmt.Errorf("final temperature %v must be below initial %v", a.FinalTemp, a.InitialTemp)
	case a.CoolingRate <= 0 || a.CoolingRate >= 1:
		return fmt.Errorf("cooling rate %v must be in (0,1)", a.CoolingRate)
	case a.IterationsPerTemp <= 0:
		return fmt.Errorf("iterations per temperature must be positive, got %d", a.IterationsPerTemp)
	}
	return nil
}

// SubstitutionSolution is the best key found and what it decrypts to.
type SubstitutionSolution struct {
	Key       substitution.Key `json:"key"`
	Score     float64          `json:"score"`
	Plaintext string           `json:"plaintext"`
	Proposals int              `json:"proposals"`
}

// Substitution anneals over substitution keys, starting from a random key.
// At each temperature it proposes IterationsPerTemp two-letter swaps, accepts
// improvements always and regressions with probability exp(delta/T), and
// multiplies T by CoolingRate until it reaches FinalTemp.
func Substitution(ctx context.Context, ciphertext string, scorer score.Scorer, a Anneal, seed uint64) (SubstitutionSolution, error) {
	if ciphertext == "" {
		return SubstitutionSolution{}, ErrNoText
	}
	if err := a.Validate(); err != nil {
		return SubstitutionSolution{}, err
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x5eed))

	current := substitution.RandomKey(rng)
	currentPlain := current.Decrypt(ciphertext)
	currentScore := scorer.Score(currentPlain)

	best := SubstitutionSolution{Key: current, Score: currentScore, Plaintext: currentPlain}

	for t := a.InitialTemp; t > a.FinalTemp; t *= a.CoolingRate {
		for i := 0; i < a.IterationsPerTemp; i++ {
			if best.Proposals%checkEvery == 0 {
				if err := ctx.Err(); err != nil {
					return best, err
				}
			}
			best.Proposals++

			candidate := current.Neighbour(rng)
			plain := candidate.Decrypt(ciphertext)
			s := scorer.Score(plain)

			if !accept(s-currentScore, t, rng) {
				continue
			}
			current, currentPlain, currentScore = candidate, plain, s
			if currentScore > best.Score {
				best.Key, best.Plaintext, best.Score = current, currentPlain, currentScore
			}
		}
	}

	return best, nil
}

// accept is the Metropolis criterion.
func accept(delta, temp float64, rng *rand.Rand) bool {
	if delta > 0 {
		return true
	}
	return rng.Float64() < math.Exp(delta/temp)
}
