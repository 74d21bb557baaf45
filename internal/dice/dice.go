// Package dice implements the randomized dice resolution primitive.
// Notation follows the classic tabletop grammar <count>d<sides>[+|-modifier],
// e.g. "3d6", "1d100", "2d6+1". Keep/drop variants (4d6 drop lowest) are the
// caller's job: Result exposes the individual dice for that purpose.
package dice

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidNotation indicates a dice expression that does not match the grammar.
var ErrInvalidNotation = errors.New("invalid dice notation")

// Source produces a uniform integer in [1, sides]. Injected for deterministic tests.
type Source func(sides int) int

// Result contains the finalized total alongside the raw rolls used.
type Result struct {
	Notation string `json:"notation"`
	Total    int    `json:"total"`
	Rolls    []int  `json:"rolls"`
	Modifier int    `json:"modifier"`
}

// Roller evaluates dice notation against an injectable randomness source.
// The zero value is not usable; construct with NewRoller.
type Roller struct {
	source Source
	queue  []int
}

// NewRoller creates a roller backed by crypto/rand.
func NewRoller() *Roller {
	return &Roller{source: secureRand}
}

// NewRollerWithSource creates a roller with a custom randomness source.
func NewRollerWithSource(src Source) *Roller {
	if src == nil {
		src = secureRand
	}
	return &Roller{source: src}
}

// Enqueue prepares a sequence of deterministic die results consumed by
// subsequent calls to Roll, in order, before the source is consulted.
func (r *Roller) Enqueue(values ...int) {
	r.queue = append(r.queue, values...)
}

// ResetQueue clears any queued deterministic results.
func (r *Roller) ResetQueue() {
	r.queue = nil
}

var notationRegex = regexp.MustCompile(`(?i)^(\d+)d(\d+)([+-]\d+)?$`)

// Roll evaluates a notation string into a Result.
// Guarantees count >= 1 and sides >= 2; malformed notation returns an error
// wrapping ErrInvalidNotation, never a silent zero result.
func (r *Roller) Roll(notation string) (Result, error) {
	raw := strings.ReplaceAll(notation, " ", "")
	matches := notationRegex.FindStringSubmatch(raw)
	if matches == nil {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidNotation, notation)
	}

	count, _ := strconv.Atoi(matches[1])
	sides, _ := strconv.Atoi(matches[2])
	if count < 1 {
		return Result{}, fmt.Errorf("%w: %q: dice count must be at least 1", ErrInvalidNotation, notation)
	}
	if sides < 2 {
		return Result{}, fmt.Errorf("%w: %q: die must have at least 2 sides", ErrInvalidNotation, notation)
	}

	res := Result{Notation: raw, Rolls: make([]int, 0, count)}

	for i := 0; i < count; i++ {
		val := 0
		if len(r.queue) > 0 {
			val = r.queue[0]
			r.queue = r.queue[1:]
		} else {
			val = r.source(sides)
		}
		res.Rolls = append(res.Rolls, val)
		res.Total += val
	}

	if matches[3] != "" {
		mod, err := strconv.Atoi(matches[3])
		if err == nil {
			res.Modifier = mod
			res.Total += mod
		}
	}

	return res, nil
}

// secureRand fetches a strongly uniform random integer in [1, sides] via crypto/rand.
func secureRand(sides int) int {
	if sides <= 0 {
		return 0
	}
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(sides)))
	return int(n.Int64()) + 1
}
