// internal/engine/engine.go
//
// Knowledge engine for a single board.
// Responsibilities:
//   - Fold a submitted guess row into the per-row knowledge maps
//     (UpdateKnownInformation), including the letter-count refinement rule.
//   - Derive final tile colors for a submitted row with correct
//     duplicate-letter handling (UpdateGuessTileStates).
//   - Derive preview colors for the row still being typed (HintTileState)
//     and aggregate per-letter keyboard colors (KeyboardTileState).
//
// Notes:
//   - Pure functions: no I/O, no logging; the knowledge maps passed in are
//     the only thing mutated.
//   - Row indices are the caller's responsibility. An out-of-range index is
//     a sequencing bug, not an input error, and panics via the slice bounds.
package engine

// Alphabet is the fixed letter set: ASCII a–z plus the Nordic extras.
// All engine input is normalized to lowercase before it gets here.
var Alphabet = []rune("abcdefghijklmnopqrstuvwxyzåäö")

// UpdateKnownInformation folds the just-submitted guess row into the
// knowledge maps for rowIdx, carries the knowledge forward into rowIdx+1
// (when there is one), and recolors the row's tiles.
//
// For each position: an exact match is proven Correct; anything else is
// proven Absent at that position, and the letter's count bound is refined
// unless it is already exact.
func UpdateKnownInformation(states KnownStates, counts KnownCounts, row []Tile, rowIdx int, word []rune) {
	for i, t := range row {
		c := t.Char
		if word[i] == c {
			states[rowIdx][PosChar{c, i}] = StateCorrect
			continue
		}
		states[rowIdx][PosChar{c, i}] = StateAbsent
		if cur := counts[rowIdx][c]; !cur.Exact {
			counts[rowIdx][c] = refineCount(cur, c, row, word)
		}
	}

	if rowIdx+1 < len(states) {
		states[rowIdx+1] = copyStates(states[rowIdx])
		counts[rowIdx+1] = copyCounts(counts[rowIdx])
	}

	UpdateGuessTileStates(states, counts, row, rowIdx)
}

// refineCount applies the count-refinement rule for letter c given the
// current bound, this guess row, and the hidden word.
//
//   - Letter absent from the word: Exactly(0), permanently.
//   - Guess over-supplies the letter and the word's true count is not below
//     the known lower bound: the true count is exposed, Exactly(inWord).
//   - Guess supplies exactly the word's count, or more than the current
//     lower bound: raise the bound to AtLeast(inGuess). The guess proves at
//     least this many but not that it is all of them.
//   - Otherwise: no new information.
func refineCount(cur CharCount, c rune, row []Tile, word []rune) CharCount {
	inWord := 0
	for _, r := range word {
		if r == c {
			inWord++
		}
	}
	if inWord == 0 {
		return CharCount{N: 0, Exact: true}
	}
	inGuess := 0
	for _, t := range row {
		if t.Char == c {
			inGuess++
		}
	}
	switch {
	case inGuess > inWord:
		if inWord >= cur.N {
			return CharCount{N: inWord, Exact: true}
		}
		return cur
	case inGuess == inWord || inGuess > cur.N:
		return CharCount{N: inGuess, Exact: false}
	default:
		return cur
	}
}

// UpdateGuessTileStates recolors every tile of a submitted row from the
// knowledge maps. Duplicate letters are only highlighted up to the letter's
// known count bound, matching the official coloring: the running revealed
// count per letter is seeded with the row's proven-Correct occurrences, and
// each further occurrence turns Present only while still under the bound.
func UpdateGuessTileStates(states KnownStates, counts KnownCounts, row []Tile, rowIdx int) {
	// Seed revealed counts from positions proven Correct anywhere in the row.
	revealed := make(map[rune]int, len(row))
	for i, t := range row {
		if states[rowIdx][PosChar{t.Char, i}] == StateCorrect {
			revealed[t.Char]++
		}
	}

	for i := range row {
		c := row[i].Char
		switch states[rowIdx][PosChar{c, i}] {
		case StateCorrect:
			row[i].Color = TileCorrect
		case StateAbsent:
			if revealed[c] < counts[rowIdx][c].N {
				row[i].Color = TilePresent
				revealed[c]++
			} else {
				row[i].Color = TileAbsent
			}
		default:
			row[i].Color = TileUnknown
		}
	}
}

// HintTileState previews a color for a letter just typed at pos on the
// in-progress row, using only knowledge carried in from previous rows.
// The current row's own duplicates are deliberately not counted here; the
// final coloring on submit uses the wider rule in UpdateGuessTileStates.
func HintTileState(states KnownStates, counts KnownCounts, rowIdx int, pos int, c rune) TileColor {
	switch states[rowIdx][PosChar{c, pos}] {
	case StateCorrect:
		return TileCorrect
	case StateAbsent:
		return TileAbsent
	}

	count, ok := counts[rowIdx][c]
	if !ok {
		return TileUnknown
	}
	if count.Exact {
		if count.N == 0 {
			return TileAbsent
		}
		// All known copies already pinned down elsewhere: further typed
		// occurrences of the letter cannot be among them.
		if correctPositions(states[rowIdx], c) >= count.N {
			return TileAbsent
		}
		return TilePresent
	}
	return TilePresent
}

// KeyboardTileState aggregates a letter-level color for on-screen key
// highlighting as of rowIdx.
func KeyboardTileState(states KnownStates, counts KnownCounts, rowIdx int, c rune) TileColor {
	if correctPositions(states[rowIdx], c) > 0 {
		return TileCorrect
	}
	count, ok := counts[rowIdx][c]
	if !ok {
		return TileUnknown
	}
	if count.Exact && count.N == 0 {
		return TileAbsent
	}
	return TilePresent
}

// correctPositions counts how many positions are proven Correct for c.
func correctPositions(states map[PosChar]CharState, c rune) int {
	n := 0
	for k, v := range states {
		if k.Char == c && v == StateCorrect {
			n++
		}
	}
	return n
}

func copyStates(m map[PosChar]CharState) map[PosChar]CharState {
	out := make(map[PosChar]CharState, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyCounts(m map[rune]CharCount) map[rune]CharCount {
	out := make(map[rune]CharCount, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
