package engine

import (
	"encoding/json"
	"reflect"
	"testing"
)

const maxGuesses = 6

func newRow(word string) []Tile {
	runes := []rune(word)
	row := make([]Tile, len(runes))
	for i, r := range runes {
		row[i] = Tile{Char: r, Color: TileUnknown}
	}
	return row
}

func submit(t *testing.T, states KnownStates, counts KnownCounts, guess, word string, rowIdx int) []Tile {
	t.Helper()
	row := newRow(guess)
	UpdateKnownInformation(states, counts, row, rowIdx, []rune(word))
	return row
}

func colors(row []Tile) []TileColor {
	out := make([]TileColor, len(row))
	for i, t := range row {
		out[i] = t.Color
	}
	return out
}

func TestArkkiAgainstKoira(t *testing.T) {
	states := NewKnownStates(maxGuesses)
	counts := NewKnownCounts(maxGuesses)

	row := submit(t, states, counts, "arkki", "koira", 0)

	want := []TileColor{TilePresent, TilePresent, TilePresent, TileAbsent, TilePresent}
	if got := colors(row); !reflect.DeepEqual(got, want) {
		t.Fatalf("colors = %v, want %v", got, want)
	}

	// K appears once in the word but twice in the guess: count exposed exactly.
	if got := counts[0]['k']; got != (CharCount{N: 1, Exact: true}) {
		t.Errorf("count k = %+v, want Exactly(1)", got)
	}
	// R and I appear once each, not over-supplied: lower bound only.
	for _, c := range []rune{'r', 'i', 'a'} {
		if got := counts[0][c]; got != (CharCount{N: 1, Exact: false}) {
			t.Errorf("count %c = %+v, want AtLeast(1)", c, got)
		}
	}
	// A at position 0 is proven wrong there, but not correct anywhere yet.
	if got := states[0][PosChar{'a', 0}]; got != StateAbsent {
		t.Errorf("state (a,0) = %v, want Absent", got)
	}
}

func TestAbsentLetterIsExactlyZero(t *testing.T) {
	states := NewKnownStates(maxGuesses)
	counts := NewKnownCounts(maxGuesses)

	row := submit(t, states, counts, "zzzzz", "koira", 0)

	if got := counts[0]['z']; got != (CharCount{N: 0, Exact: true}) {
		t.Fatalf("count z = %+v, want Exactly(0)", got)
	}
	for i, tile := range row {
		if tile.Color != TileAbsent {
			t.Errorf("tile %d = %v, want absent", i, tile.Color)
		}
	}
}

func TestExactCountIsTerminal(t *testing.T) {
	states := NewKnownStates(maxGuesses)
	counts := NewKnownCounts(maxGuesses)

	submit(t, states, counts, "arkki", "koira", 0) // k becomes Exactly(1)
	before := counts[1]['k']

	// Another over-supplied guess must not move the exact bound.
	submit(t, states, counts, "kukka", "koira", 1)
	if got := counts[1]['k']; got != before || !got.Exact || got.N != 1 {
		t.Fatalf("count k after second guess = %+v, want Exactly(1)", got)
	}
}

func TestAtLeastNeverDecreases(t *testing.T) {
	states := NewKnownStates(maxGuesses)
	counts := NewKnownCounts(maxGuesses)

	// Word holds three a's; first guess proves two, second guess supplies one.
	submit(t, states, counts, "naava", "alava", 0)
	if got := counts[0]['a']; got.Exact || got.N < 2 {
		t.Fatalf("count a after row 0 = %+v, want AtLeast(>=2)", got)
	}
	k := counts[1]['a'].N

	submit(t, states, counts, "pasmi", "alava", 1)
	if got := counts[1]['a']; got.N < k {
		t.Fatalf("count a decreased: %+v after AtLeast(%d)", got, k)
	}
}

func TestCarryForwardIsASnapshot(t *testing.T) {
	states := NewKnownStates(maxGuesses)
	counts := NewKnownCounts(maxGuesses)

	submit(t, states, counts, "arkki", "koira", 0)

	if !reflect.DeepEqual(states[0], states[1]) {
		t.Errorf("states[1] differs from states[0] after carry-forward")
	}
	if !reflect.DeepEqual(counts[0], counts[1]) {
		t.Errorf("counts[1] differs from counts[0] after carry-forward")
	}

	// Row 1's update must not reach back into row 0.
	savedStates := copyStates(states[0])
	savedCounts := copyCounts(counts[0])
	submit(t, states, counts, "koski", "koira", 1)
	if !reflect.DeepEqual(states[0], savedStates) {
		t.Errorf("row 0 states mutated by row 1 submit")
	}
	if !reflect.DeepEqual(counts[0], savedCounts) {
		t.Errorf("row 0 counts mutated by row 1 submit")
	}
}

func TestDuplicateColoringSeedsFromCorrect(t *testing.T) {
	states := NewKnownStates(maxGuesses)
	counts := NewKnownCounts(maxGuesses)

	// eagle vs eerie: e at 0 and 4 are correct, the middle e must go absent
	// because both known e's are already revealed by the correct tiles.
	row := submit(t, states, counts, "eerie", "eagle", 0)

	want := []TileColor{TileCorrect, TileAbsent, TileAbsent, TileAbsent, TileCorrect}
	if got := colors(row); !reflect.DeepEqual(got, want) {
		t.Fatalf("colors = %v, want %v", got, want)
	}
	if got := counts[0]['e']; got != (CharCount{N: 2, Exact: true}) {
		t.Errorf("count e = %+v, want Exactly(2)", got)
	}
}

func TestHintUsesOnlyPriorKnowledge(t *testing.T) {
	states := NewKnownStates(maxGuesses)
	counts := NewKnownCounts(maxGuesses)

	// Nothing known yet: everything previews unknown.
	if got := HintTileState(states, counts, 0, 0, 'k'); got != TileUnknown {
		t.Fatalf("hint before any guess = %v, want unknown", got)
	}

	submit(t, states, counts, "arkki", "koira", 0)

	cases := []struct {
		pos  int
		c    rune
		want TileColor
	}{
		{0, 'a', TileAbsent},  // proven wrong at position 0
		{1, 'a', TilePresent}, // at least one a, position 1 untried
		{2, 'k', TileAbsent},  // proven wrong at position 2
		{0, 'k', TilePresent}, // exactly one k, none pinned yet
		{0, 'z', TileUnknown}, // never observed
	}
	for _, tc := range cases {
		if got := HintTileState(states, counts, 1, tc.pos, tc.c); got != tc.want {
			t.Errorf("hint(%c,%d) = %v, want %v", tc.c, tc.pos, got, tc.want)
		}
	}
}

func TestHintExactCountFullyPinned(t *testing.T) {
	states := NewKnownStates(maxGuesses)
	counts := NewKnownCounts(maxGuesses)

	// eerie vs eagle pins both e's as correct and proves Exactly(2).
	submit(t, states, counts, "eerie", "eagle", 0)

	// A further typed e outside the pinned positions previews absent.
	if got := HintTileState(states, counts, 1, 2, 'e'); got != TileAbsent {
		t.Fatalf("hint(e,2) = %v, want absent", got)
	}
	// Typing e on a pinned position previews correct.
	if got := HintTileState(states, counts, 1, 0, 'e'); got != TileCorrect {
		t.Fatalf("hint(e,0) = %v, want correct", got)
	}
}

func TestKeyboardTileState(t *testing.T) {
	states := NewKnownStates(maxGuesses)
	counts := NewKnownCounts(maxGuesses)

	submit(t, states, counts, "korva", "koira", 0)

	cases := []struct {
		c    rune
		want TileColor
	}{
		{'k', TileCorrect},
		{'o', TileCorrect},
		{'r', TilePresent},
		{'v', TileAbsent},
		{'z', TileUnknown},
	}
	for _, tc := range cases {
		if got := KeyboardTileState(states, counts, 1, tc.c); got != tc.want {
			t.Errorf("keyboard(%c) = %v, want %v", tc.c, got, tc.want)
		}
	}
}

func TestKnowledgeMapsRoundTripJSON(t *testing.T) {
	states := NewKnownStates(maxGuesses)
	counts := NewKnownCounts(maxGuesses)
	submit(t, states, counts, "arkki", "koira", 0)

	bs, err := json.Marshal(states)
	if err != nil {
		t.Fatalf("marshal states: %v", err)
	}
	var gotStates KnownStates
	if err := json.Unmarshal(bs, &gotStates); err != nil {
		t.Fatalf("unmarshal states: %v", err)
	}
	if !reflect.DeepEqual(states, gotStates) {
		t.Errorf("states round-trip mismatch")
	}

	bc, err := json.Marshal(counts)
	if err != nil {
		t.Fatalf("marshal counts: %v", err)
	}
	var gotCounts KnownCounts
	if err := json.Unmarshal(bc, &gotCounts); err != nil {
		t.Fatalf("unmarshal counts: %v", err)
	}
	if !reflect.DeepEqual(counts, gotCounts) {
		t.Errorf("counts round-trip mismatch")
	}
}
