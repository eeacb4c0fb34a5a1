// internal/engine/types.go
//
// Core type definitions for the knowledge engine.
// Defines:
//   - TileColor: derived per-tile color (unknown/absent/present/correct).
//   - CharState: authoritative per-(letter, position) certainty.
//   - CharCount: proven bound on how many copies of a letter the word holds.
//   - KnownStates/KnownCounts: per-row knowledge maps.

package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// TileColor is the rendering color derived for one tile. It is never
// authoritative; it is recomputed from the knowledge maps after every submit.
type TileColor string

const (
	TileUnknown TileColor = "unknown"
	TileAbsent  TileColor = "absent"
	TilePresent TileColor = "present"
	TileCorrect TileColor = "correct"
)

// CharState records what is proven about one exact letter at one exact
// board position: nothing yet, proven correct, or proven wrong there.
type CharState int

const (
	StateUnknown CharState = iota
	StateCorrect
	StateAbsent
)

// CharCount is a proven bound on the number of copies of a letter in the
// hidden word. Exact=false means "at least N"; Exact=true means "exactly N"
// (possibly zero). An exact bound is terminal for the rest of the round.
type CharCount struct {
	N     int  `json:"n"`
	Exact bool `json:"exact"`
}

// PosChar keys a CharState: one letter at one board position.
type PosChar struct {
	Char rune
	Pos  int
}

// MarshalText encodes the key as "<letter>:<pos>" so PosChar-keyed maps
// serialize with encoding/json.
func (p PosChar) MarshalText() ([]byte, error) {
	return []byte(string(p.Char) + ":" + strconv.Itoa(p.Pos)), nil
}

// UnmarshalText reverses MarshalText.
func (p *PosChar) UnmarshalText(text []byte) error {
	s := string(text)
	i := strings.LastIndexByte(s, ':')
	if i <= 0 {
		return fmt.Errorf("engine: bad poschar key %q", s)
	}
	runes := []rune(s[:i])
	if len(runes) != 1 {
		return fmt.Errorf("engine: bad poschar key %q", s)
	}
	pos, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return fmt.Errorf("engine: bad poschar key %q", s)
	}
	p.Char, p.Pos = runes[0], pos
	return nil
}

// Tile is one letter cell in a guess row with its derived color.
type Tile struct {
	Char  rune      `json:"char"`
	Color TileColor `json:"color"`
}

// KnownStates holds one (letter, position) → CharState map per guess row.
// Row i+1 is seeded as a copy of row i when row i is submitted, so knowledge
// accumulates strictly forward.
type KnownStates []map[PosChar]CharState

// KnownCounts holds one letter → CharCount map per guess row, with the same
// forward-copy rule as KnownStates.
type KnownCounts []map[rune]CharCount

// NewKnownStates allocates one empty map per guess row.
func NewKnownStates(maxGuesses int) KnownStates {
	ks := make(KnownStates, maxGuesses)
	for i := range ks {
		ks[i] = make(map[PosChar]CharState)
	}
	return ks
}

// NewKnownCounts allocates one empty map per guess row.
func NewKnownCounts(maxGuesses int) KnownCounts {
	kc := make(KnownCounts, maxGuesses)
	for i := range kc {
		kc[i] = make(map[rune]CharCount)
	}
	return kc
}
