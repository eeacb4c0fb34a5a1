// internal/game/quad.go
//
// Quad variant: four boards with independent hidden words driven by one
// shared keystroke stream and one shared max-guess count. Push/pop/submit
// broadcast to all still-active boards; a submit is all-or-nothing.

package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/mtoivan/sanagrid/internal/engine"
	"github.com/mtoivan/sanagrid/internal/words"
)

// Quad owns four single boards and the aggregate round state.
type Quad struct {
	Boards  [QuadBoards]*Board `json:"boards"`
	Streak  int                `json:"streak"`
	Message string             `json:"message"`
}

// NewQuad constructs four boards with distinct hidden words.
func NewQuad(cfg Config) *Quad {
	cfg.Mode = ModeQuad
	if cfg.MaxGuesses == 0 {
		cfg.MaxGuesses = QuadMaxGuesses
	}
	q := &Quad{}
	for i := range q.Boards {
		q.Boards[i] = NewBoard(cfg)
	}
	q.dedupeWords(cfg.Date)
	return q
}

func (q *Quad) attach(lists *words.Table, allowProfanity bool) {
	for _, b := range q.Boards {
		b.attach(lists, allowProfanity)
	}
}

// NextWord starts a new round on all four boards.
func (q *Quad) NextWord(now time.Time) {
	for _, b := range q.Boards {
		b.NextWord(now)
	}
	q.dedupeWords(now)
	q.Message = ""
}

// dedupeWords rerolls boards until the four hidden words are distinct,
// with a bounded number of attempts per board.
func (q *Quad) dedupeWords(now time.Time) {
	for i := 1; i < len(q.Boards); i++ {
		for tries := 0; tries < 16 && q.duplicateAt(i); tries++ {
			q.Boards[i].NextWord(now)
		}
	}
}

func (q *Quad) duplicateAt(i int) bool {
	for j := 0; j < i; j++ {
		if q.Boards[j].Word == q.Boards[i].Word {
			return true
		}
	}
	return false
}

// PushChar broadcasts a letter to every still-active board.
func (q *Quad) PushChar(r rune) {
	for _, b := range q.Boards {
		b.PushChar(r)
	}
	q.Message = ""
}

// PopChar broadcasts a backspace to every still-active board.
func (q *Quad) PopChar() {
	for _, b := range q.Boards {
		b.PopChar()
	}
	q.Message = ""
}

// Submit is all-or-nothing: every still-active board's current row must
// independently pass that board's own rules. If any active board rejects,
// nothing advances and the rejecting board's message surfaces.
func (q *Quad) Submit() bool {
	if q.Finished() {
		return false
	}
	for _, b := range q.Boards {
		if !b.IsGuessing {
			continue
		}
		if msg, ok := b.ValidateRow(); !ok {
			q.Message = msg
			return false
		}
	}
	for _, b := range q.Boards {
		if b.IsGuessing {
			b.Submit()
		}
	}
	if q.Finished() {
		q.finish()
	} else {
		q.Message = ""
	}
	return true
}

// finish sets the aggregate end-of-round state. Overall win requires all
// four boards won.
func (q *Quad) finish() {
	if q.Won() {
		q.Streak++
		q.Message = "All four solved!"
		return
	}
	q.Streak = 0
	var missed []string
	for _, b := range q.Boards {
		if !b.IsWinner {
			missed = append(missed, strings.ToUpper(b.Word))
		}
	}
	q.Message = fmt.Sprintf("The words were %s.", strings.Join(missed, ", "))
}

// Finished reports whether every board has ended its round.
func (q *Quad) Finished() bool {
	for _, b := range q.Boards {
		if b.IsGuessing {
			return false
		}
	}
	return true
}

// Won reports whether every board was solved.
func (q *Quad) Won() bool {
	for _, b := range q.Boards {
		if !b.IsWinner {
			return false
		}
	}
	return true
}

// KeyboardColors returns one aggregate key color per board.
func (q *Quad) KeyboardColors(c rune) [QuadBoards]engine.TileColor {
	var out [QuadBoards]engine.TileColor
	for i, b := range q.Boards {
		out[i] = b.KeyboardColor(c)
	}
	return out
}

// StorageKey is the composite key for the quad instance (used for the
// background cache; quad games are excluded from persistence).
func (q *Quad) StorageKey() string {
	return q.Boards[0].StorageKey()
}
