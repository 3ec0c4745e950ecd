// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package score rates how much a candidate plaintext looks like English.
// Higher is better; scores are sums of log10 probabilities.
package score

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
)

// Empty is the score of text without any letter.
const Empty = -1e9

// ErrNoNgrams is returned when an n-gram source has no usable entries.
var ErrNoNgrams = errors.New("no usable n-grams")

// Scorer rates a candidate plaintext.
type Scorer interface {
	Score(text string) float64
}

// filter upper-cases text and keeps A-Z.
func filter(text string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' {
			return r - 'a' + 'A'
		}
		if r >= 'A' && r <= 'Z' {
			return r
		}
		return -1
	}, text)
}

// =============================================================================
// LETTER MODEL
// =============================================================================

// englishFrequencies are relative monogram frequencies for A..Z.
var englishFrequencies = [26]float64{
	0.08167, 0.01492, 0.02782, 0.04253, 0.12702, 0.02228, 0.02015,
	0.06094, 0.06966, 0.00153, 0.00772, 0.04025, 0.02406, 0.06749,
	0.07507, 0.01929, 0.00095, 0.05987, 0.06327, 0.09056, 0.02758,
	0.00978, 0.02360, 0.00150, 0.01974, 0.00074,
}

// Letters scores by single-letter frequency.
type Letters struct {
	logProbs [26]float64
	floor    float64
}

// NewLetters returns the English monogram model.
func NewLetters() *Letters {
	var total float64
	for _, f := range englishFrequencies {
		total += f
	}
	l := &Letters{floor: math.Log10(0.0001 / total)}
	for i, f := range englishFrequencies {
		l.logProbs[i] = math.Log10(f / total)
	}
	return l
}

func (l *Letters) Score(text string) float64 {
	filtered := filter(text)
	if filtered == "" {
		return Empty
	}
	return l.score(filtered)
}

func (l *Letters) score(filtered string) float64 {
	var s float64
	for i := 0; i < len(filtered); i++ {
		s += l.logProbs[filtered[i]-'A']
	}
	return s
}

// =============================================================================
// N-GRAM MODEL
// =============================================================================

// Ngrams scores by overlapping n-letter windows.
type Ngrams struct {
	n        int
	logProbs map[string]float64
	floor    float64
	letters  *Letters
}

// N is the window length.
func (g *Ngrams) N() int { return g.n }

// Len is the number of distinct n-grams loaded.
func (g *Ngrams) Len() int { return len(g.logProbs) }

// Score sums window log probabilities. Texts shorter than one window fall
// back to the letter model.
func (g *Ngrams) Score(text string) float64 {
	filtered := filter(text)
	if filtered == "" {
		return Empty
	}
	if len(filtered) < g.n {
		return g.letters.score(filtered)
	}
	var s float64
	for i := 0; i+g.n <= len(filtered); i++ {
		if p, ok := g.logProbs[filtered[i:i+g.n]]; ok {
			s += p
		} else {
			s += g.floor
		}
	}
	return s
}

// LoadNgrams reads "NGRAM COUNT" lines. Lines with a different shape or
// length are skipped.
func LoadNgrams(r io.Reader, n int) (*Ngrams, error) {
	if n < 1 {
		return nil, fmt.Errorf("invalid n-gram length %d", n)
	}

	counts := make(map[string]int64)
	var total int64

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) != 2 {
			continue
		}
		gram := strings.ToUpper(fields[0])
		if len(gram) != n || filter(gram) != gram {
			continue
		}
		count, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid count %q: %w", line, fields[1], err)
		}
		if count <= 0 {
			continue
		}
		counts[gram] += count
		total += count
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read n-grams: %w", err)
	}
	if total == 0 {
		return nil, ErrNoNgrams
	}

	g := &Ngrams{
		n:        n,
		logProbs: make(map[string]float64, len(counts)),
		floor:    math.Log10(0.01 / float64(total)),
		letters:  NewLetters(),
	}
	for gram, c := range counts {
		g.logProbs[gram] = math.Log10(float64(c) / float64(total))
	}
	return g, nil
}

// LoadNgramFile opens path and calls LoadNgrams.
func LoadNgramFile(path string, n int) (*Ngrams, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open n-gram file: %w", err)
	}
	defer f.Close()

	g, err := LoadNgrams(f, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Load returns the quadgram model from path, or the letter model when path is
// empty or cannot be loaded. logger may be nil.
func Load(path string, logger *log.Logger) Scorer {
	if path == "" {
		logf(logger, "SCORE | model=letters reason=no_quadgram_file")
		return NewLetters()
	}
	g, err := LoadNgramFile(path, 4)
	if err != nil {
		logf(logger, "SCORE | model=letters reason=load_failed error=%q", err)
		return NewLetters()
	}
	logf(logger, "SCORE | model=quadgrams path=%s entries=%d", path, g.Len())
	return g
}

func logf(logger *log.Logger, format string, args ...any) {
	if logger != nil {
		logger.Printf(format, args...)
	}
}
