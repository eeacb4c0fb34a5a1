// internal/game/board.go
//
// Single-board game instance.
// Responsibilities:
//   - Word selection per mode (random with profanity filter, or daily by
//     day index) and round reset, including relay-chain seeding.
//   - The guess lifecycle: character push/pop with live hint coloring,
//     submission with dictionary validation, win/loss detection, streak and
//     status-message bookkeeping.
//   - Share encoding of a finished board and the daily emoji grid.
//
// Notes:
//   - All knowledge derivation is delegated to the engine package; the board
//     owns the mutable KnownStates/KnownCounts sequences.
//   - The board is persisted as JSON; the word table handle is re-attached
//     after a load.

package game

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/mtoivan/sanagrid/internal/daily"
	"github.com/mtoivan/sanagrid/internal/engine"
	"github.com/mtoivan/sanagrid/internal/share"
	"github.com/mtoivan/sanagrid/internal/words"
)

// Board holds the state of one puzzle instance.
type Board struct {
	Word       string             `json:"word"`
	Mode       Mode               `json:"mode"`
	List       words.ListID       `json:"list"`
	Length     int                `json:"length"`
	MaxGuesses int                `json:"maxGuesses"`
	Rows       [][]engine.Tile    `json:"rows"`
	Current    int                `json:"current"`
	IsGuessing bool               `json:"isGuessing"`
	IsWinner   bool               `json:"isWinner"`
	IsUnknown  bool               `json:"isUnknown"` // hidden word not in the word list (shared games)
	IsReset    bool               `json:"isReset"`   // round was reset on an already-played board
	Message    string             `json:"message"`
	Streak     int                `json:"streak"`
	DateKey    string             `json:"dateKey,omitempty"`  // daily mode: date the word was picked for
	DayIndex   int                `json:"dayIndex,omitempty"` // daily mode: index into the daily list
	Known      engine.KnownStates `json:"known"`
	Counts     engine.KnownCounts `json:"counts"`

	// Previous holds rows staged from the instance that was active before a
	// mode switch, for the transition animation. Never persisted.
	Previous [][]engine.Tile `json:"-"`

	lists          *words.Table
	allowProfanity bool
}

// NewBoard constructs a board and starts its first round.
func NewBoard(cfg Config) *Board {
	maxGuesses := cfg.MaxGuesses
	if maxGuesses == 0 {
		maxGuesses = DefaultMaxGuesses
	}
	b := &Board{
		Mode:           cfg.Mode,
		List:           cfg.List,
		Length:         cfg.Length,
		MaxGuesses:     maxGuesses,
		lists:          cfg.Lists,
		allowProfanity: cfg.AllowProfanity,
	}
	b.NextWord(cfg.Date)
	b.IsReset = false
	return b
}

// attach re-binds the word table after a JSON load.
func (b *Board) attach(lists *words.Table, allowProfanity bool) {
	b.lists = lists
	b.allowProfanity = allowProfanity
}

// NextWord starts a new round: picks the next hidden word, resets rows,
// knowledge maps and flags, and seeds the relay continuation if the previous
// round was won in relay mode.
func (b *Board) NextWord(now time.Time) {
	prevWord := b.Word
	prevWin := b.IsWinner

	if b.Mode == ModeDaily {
		idx := daily.Index(now)
		b.Word = b.lists.DailyWord(idx)
		b.DayIndex = idx
		b.DateKey = daily.DateKey(now)
	} else {
		next := b.lists.Random(b.List, b.Length, b.allowProfanity)
		// Avoid an immediate repeat; bounded so a one-word bucket can't spin.
		for i := 0; i < 16 && next == prevWord; i++ {
			next = b.lists.Random(b.List, b.Length, b.allowProfanity)
		}
		b.Word = next
	}

	b.reset()
	b.IsReset = prevWord != ""
	if b.Mode == ModeRelay && prevWin && prevWord != "" && prevWord != b.Word {
		b.seedRelay(prevWord)
	}
}

// reset clears rows, knowledge, and round flags. Streak is carried across
// rounds and only changes on round end.
func (b *Board) reset() {
	b.Rows = make([][]engine.Tile, b.MaxGuesses)
	b.Known = engine.NewKnownStates(b.MaxGuesses)
	b.Counts = engine.NewKnownCounts(b.MaxGuesses)
	b.Current = 0
	b.IsGuessing = true
	b.IsWinner = false
	b.IsUnknown = false
	b.Message = ""
}

// seedRelay pre-fills row 0 with the word just solved, scored against the
// new hidden word, so accumulated knowledge carries into the next round.
// Play then starts at row 1.
func (b *Board) seedRelay(prev string) {
	row := tilesOf(prev)
	b.Rows[0] = row
	engine.UpdateKnownInformation(b.Known, b.Counts, row, 0, []rune(b.Word))
	b.Current = 1
}

// PushChar appends a letter to the current row when guessing and the row is
// not full, coloring it immediately from prior-row knowledge. Anything else
// is a no-op.
func (b *Board) PushChar(r rune) {
	if !b.IsGuessing || len(b.Rows[b.Current]) >= b.Length {
		return
	}
	r = unicode.ToLower(r)
	if !isAlphabetRune(r) {
		return
	}
	pos := len(b.Rows[b.Current])
	color := engine.HintTileState(b.Known, b.Counts, b.Current, pos, r)
	b.Rows[b.Current] = append(b.Rows[b.Current], engine.Tile{Char: r, Color: color})
	b.Message = ""
}

// PopChar removes the last letter of the current row when guessing and the
// row is non-empty.
func (b *Board) PopChar() {
	if !b.IsGuessing || len(b.Rows[b.Current]) == 0 {
		return
	}
	b.Rows[b.Current] = b.Rows[b.Current][:len(b.Rows[b.Current])-1]
	b.Message = ""
}

// ValidateRow checks the current row against the submission rules without
// mutating anything: full length, and membership in the full word list. An
// exact match of the hidden word is always accepted even when absent from
// the list (shared games can carry unknown words).
func (b *Board) ValidateRow() (string, bool) {
	row := b.Rows[b.Current]
	if len(row) < b.Length {
		return "Not enough letters!", false
	}
	guess := rowString(row)
	if guess != b.Word && !b.lists.Contains(words.ListFull, guess) {
		return fmt.Sprintf("%q is not in the word list!", strings.ToUpper(guess)), false
	}
	return "", true
}

// Submit applies the current row. A rejected row leaves all state untouched
// except the status message. On acceptance the knowledge maps update, and
// the round either ends (win, or last row) or advances.
func (b *Board) Submit() bool {
	if !b.IsGuessing {
		return false
	}
	if msg, ok := b.ValidateRow(); !ok {
		b.Message = msg
		return false
	}

	row := b.Rows[b.Current]
	won := rowString(row) == b.Word
	engine.UpdateKnownInformation(b.Known, b.Counts, row, b.Current, []rune(b.Word))

	if won || b.Current == b.MaxGuesses-1 {
		b.finish(won)
	} else {
		b.Current++
		b.Message = ""
	}
	return true
}

// winMessages is indexed by guesses used minus one; later entries repeat.
var winMessages = []string{
	"Unbelievable!", "Stunning!", "Excellent!", "Great!", "Nice!", "Phew!",
}

// finish ends the round: terminal flags, streak delta, end-of-round message.
// Daily, shared, and quad-owned boards never touch the streak.
func (b *Board) finish(won bool) {
	b.IsGuessing = false
	b.IsWinner = won
	if touchesStreak(b.Mode) {
		if won {
			b.Streak++
		} else {
			b.Streak = 0
		}
	}
	if won {
		i := b.Current
		if i >= len(winMessages) {
			i = len(winMessages) - 1
		}
		b.Message = fmt.Sprintf("%s Solved in %d/%d.", winMessages[i], b.Current+1, b.MaxGuesses)
	} else {
		b.Message = fmt.Sprintf("The word was %q.", strings.ToUpper(b.Word))
	}
}

// KeyboardColor aggregates the key color for letter c as of the current row.
func (b *Board) KeyboardColor(c rune) engine.TileColor {
	return engine.KeyboardTileState(b.Known, b.Counts, b.Current, c)
}

// SubmittedRows returns the rows that have been fully submitted, in order.
func (b *Board) SubmittedRows() [][]engine.Tile {
	end := b.Current
	if !b.IsGuessing {
		end = b.Current + 1
	}
	out := make([][]engine.Tile, 0, end)
	for _, row := range b.Rows[:end] {
		out = append(out, row)
	}
	return out
}

// SubmittedGuesses returns the submitted rows flattened to strings.
func (b *Board) SubmittedGuesses() []string {
	rows := b.SubmittedRows()
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = rowString(row)
	}
	return out
}

// ShareCode encodes the hidden word and the flattened guesses for embedding
// in a share link.
func (b *Board) ShareCode() string {
	return share.Encode(b.Word, b.SubmittedGuesses())
}

// EmojiBoard renders the finished board as an emoji grid with a header line
// carrying the daily round index and the guess count over max guesses.
func (b *Board) EmojiBoard(colorblind bool) string {
	got := "X"
	if b.IsWinner {
		got = strconv.Itoa(b.Current + 1)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Sanagrid #%d %s/%d\n", b.DayIndex, got, b.MaxGuesses)
	for _, row := range b.SubmittedRows() {
		sb.WriteString(share.EmojiRow(row, colorblind))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// StorageKey is the composite persistence key for this board.
func (b *Board) StorageKey() string {
	return fmt.Sprintf("%s|%s|%d", b.Mode, b.List, b.Length)
}

// StagePrevious stores rows from the previously active instance, truncated
// or copied to this board's length per the transition rules.
func (b *Board) StagePrevious(rows [][]engine.Tile) {
	staged := make([][]engine.Tile, 0, len(rows))
	for _, row := range rows {
		if len(row) > b.Length {
			row = row[:b.Length]
		}
		staged = append(staged, row)
	}
	b.Previous = staged
}

// SharedBoard reconstructs a read-only board from a decoded share code. The
// guesses are replayed through the knowledge engine verbatim, skipping
// dictionary validation; the board is marked unknown when the hidden word is
// not a list member.
func SharedBoard(lists *words.Table, word string, guesses []string) *Board {
	length := utf8.RuneCountInString(word)
	maxGuesses := DefaultMaxGuesses
	if len(guesses) > maxGuesses {
		maxGuesses = len(guesses)
	}
	b := &Board{
		Word:       strings.ToLower(word),
		Mode:       ModeShared,
		List:       words.ListFull,
		Length:     length,
		MaxGuesses: maxGuesses,
		lists:      lists,
	}
	b.reset()
	b.IsUnknown = !lists.Contains(words.ListFull, b.Word)

	wordRunes := []rune(b.Word)
	for i, g := range guesses {
		row := tilesOf(strings.ToLower(g))
		b.Rows[i] = row
		engine.UpdateKnownInformation(b.Known, b.Counts, row, i, wordRunes)
		b.Current = i
		if rowString(row) == b.Word {
			b.IsWinner = true
		}
	}
	b.IsGuessing = false
	b.Message = "Shared game."
	return b
}

// rowString flattens a row's letters.
func rowString(row []engine.Tile) string {
	var sb strings.Builder
	for _, t := range row {
		sb.WriteRune(t.Char)
	}
	return sb.String()
}

// tilesOf builds an uncolored row from a word.
func tilesOf(w string) []engine.Tile {
	runes := []rune(w)
	row := make([]engine.Tile, len(runes))
	for i, r := range runes {
		row[i] = engine.Tile{Char: r, Color: engine.TileUnknown}
	}
	return row
}

// isAlphabetRune reports whether r belongs to the game alphabet.
func isAlphabetRune(r rune) bool {
	for _, a := range engine.Alphabet {
		if r == a {
			return true
		}
	}
	return false
}
