// internal/game/types.go
//
// Core type definitions for game instances.
// Defines:
//   - Mode: the five game modes.
//   - Config: dimensions and collaborators for constructing an instance.
//   - Instance: the closed sum over the single-board and quad variants.

package game

import (
	"time"

	"github.com/mtoivan/sanagrid/internal/engine"
	"github.com/mtoivan/sanagrid/internal/words"
)

// Mode selects the game variant and word-selection rule.
type Mode string

const (
	ModeClassic Mode = "classic" // random word per round
	ModeRelay   Mode = "relay"   // winning seeds the next round's first row
	ModeDaily   Mode = "daily"   // one deterministic word per calendar date
	ModeShared  Mode = "shared"  // read-only board decoded from a share link
	ModeQuad    Mode = "quad"    // four boards, one keystroke stream
)

// Modes that never touch the streak counter.
func touchesStreak(m Mode) bool {
	return m == ModeClassic || m == ModeRelay
}

const (
	// DefaultMaxGuesses is the row count for single-board modes.
	DefaultMaxGuesses = 6
	// QuadMaxGuesses is the shared row count for the quad variant.
	QuadMaxGuesses = 9
	// QuadBoards is the number of boards in the quad variant.
	QuadBoards = 4
)

// Config carries the dimensions and collaborators for a new instance.
type Config struct {
	Lists          *words.Table
	Mode           Mode
	List           words.ListID
	Length         int
	MaxGuesses     int
	AllowProfanity bool
	Date           time.Time // word-selection date for daily mode
}

// Instance is the tagged variant over the two game shapes. Exactly one of
// the fields is set; the variant set is closed, so operations dispatch
// explicitly instead of through an open interface.
type Instance struct {
	Board *Board `json:"board,omitempty"`
	Quad  *Quad  `json:"quad,omitempty"`
}

// NewInstance constructs the variant matching cfg.Mode.
func NewInstance(cfg Config) *Instance {
	if cfg.Mode == ModeQuad {
		return &Instance{Quad: NewQuad(cfg)}
	}
	return &Instance{Board: NewBoard(cfg)}
}

// Attach re-binds the non-serialized collaborators after a JSON load.
func (in *Instance) Attach(lists *words.Table, allowProfanity bool) {
	if in.Quad != nil {
		in.Quad.attach(lists, allowProfanity)
		return
	}
	in.Board.attach(lists, allowProfanity)
}

// NextWord starts a new round on the active variant.
func (in *Instance) NextWord(now time.Time) {
	if in.Quad != nil {
		in.Quad.NextWord(now)
		return
	}
	in.Board.NextWord(now)
}

// PushChar appends a letter to the current row(s).
func (in *Instance) PushChar(r rune) {
	if in.Quad != nil {
		in.Quad.PushChar(r)
		return
	}
	in.Board.PushChar(r)
}

// PopChar removes the last letter of the current row(s).
func (in *Instance) PopChar() {
	if in.Quad != nil {
		in.Quad.PopChar()
		return
	}
	in.Board.PopChar()
}

// Submit submits the current row(s); reports whether the guess was accepted.
func (in *Instance) Submit() bool {
	if in.Quad != nil {
		return in.Quad.Submit()
	}
	return in.Board.Submit()
}

// Message is the current human-readable status line.
func (in *Instance) Message() string {
	if in.Quad != nil {
		return in.Quad.Message
	}
	return in.Board.Message
}

// Finished reports whether the round has ended.
func (in *Instance) Finished() bool {
	if in.Quad != nil {
		return in.Quad.Finished()
	}
	return !in.Board.IsGuessing
}

// Won reports an overall win (all boards for the quad variant).
func (in *Instance) Won() bool {
	if in.Quad != nil {
		return in.Quad.Won()
	}
	return in.Board.IsWinner
}

// Streak is the instance's win streak counter.
func (in *Instance) Streak() int {
	if in.Quad != nil {
		return in.Quad.Streak
	}
	return in.Board.Streak
}

// KeyboardColors returns the aggregate key color per board: one entry for a
// single board, four for the quad variant.
func (in *Instance) KeyboardColors(c rune) []engine.TileColor {
	if in.Quad != nil {
		q := in.Quad.KeyboardColors(c)
		return q[:]
	}
	return []engine.TileColor{in.Board.KeyboardColor(c)}
}

// CurrentRow is the index of the row currently being typed (the quad
// variant shares one stream, so its first board's index stands for all).
func (in *Instance) CurrentRow() int {
	if in.Quad != nil {
		return in.Quad.Boards[0].Current
	}
	return in.Board.Current
}

// StorageKey is the composite persistence key for the instance.
func (in *Instance) StorageKey() string {
	if in.Quad != nil {
		return in.Quad.StorageKey()
	}
	return in.Board.StorageKey()
}

// Persistable reports whether the instance participates in persistence.
// Shared and quad games are excluded.
func (in *Instance) Persistable() bool {
	if in.Quad != nil {
		return false
	}
	return in.Board.Mode != ModeShared
}

// StagePrevious stages submitted rows from the previously active instance
// for the mode-switch transition animation.
func (in *Instance) StagePrevious(rows [][]engine.Tile) {
	if in.Quad != nil {
		for _, b := range in.Quad.Boards {
			b.StagePrevious(rows)
		}
		return
	}
	in.Board.StagePrevious(rows)
}

// SubmittedRows returns the fully submitted guess rows of the instance
// (the first board's rows for the quad variant, which shares one stream).
func (in *Instance) SubmittedRows() [][]engine.Tile {
	if in.Quad != nil {
		return in.Quad.Boards[0].SubmittedRows()
	}
	return in.Board.SubmittedRows()
}
