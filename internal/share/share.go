// internal/share/share.go
//
// Share-link codec and emoji rendering for finished boards.
// Responsibilities:
//   - Encode (hidden word, flattened guesses) into a URL-safe base64 blob
//     and decode it back; malformed input yields "no shared game", never an
//     error surfaced to the player.
//   - Render a finished board as an emoji grid (daily mode share text),
//     with a default and a colorblind-safe palette.

package share

import (
	"encoding/base64"
	"strings"

	"github.com/mtoivan/sanagrid/internal/engine"
)

const separator = "|"

// Encode packs the hidden word and the submitted guesses into a URL-safe
// string: base64url(word + "|" + concatenated guess letters).
func Encode(word string, guesses []string) string {
	return base64.RawURLEncoding.EncodeToString(
		[]byte(word + separator + strings.Join(guesses, "")))
}

// Decode reverses Encode. The guess blob is re-chunked by the word's rune
// length. Returns ok=false for anything malformed: bad base64, missing
// separator, empty word, or a guess blob that is not a whole number of rows.
func Decode(s string) (word string, guesses []string, ok bool) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return "", nil, false
	}
	parts := strings.SplitN(string(raw), separator, 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", nil, false
	}
	word = parts[0]
	wordLen := len([]rune(word))
	flat := []rune(parts[1])
	if len(flat)%wordLen != 0 {
		return "", nil, false
	}
	for i := 0; i < len(flat); i += wordLen {
		guesses = append(guesses, string(flat[i:i+wordLen]))
	}
	return word, guesses, true
}

// Emoji glyphs per tile color. The colorblind palette swaps yellow/green
// for blue/orange.
var (
	defaultPalette = map[engine.TileColor]string{
		engine.TileUnknown: "⬜",
		engine.TileAbsent:  "⬛",
		engine.TilePresent: "🟨",
		engine.TileCorrect: "🟩",
	}
	colorblindPalette = map[engine.TileColor]string{
		engine.TileUnknown: "⬜",
		engine.TileAbsent:  "⬛",
		engine.TilePresent: "🟦",
		engine.TileCorrect: "🟧",
	}
)

// EmojiRow renders one submitted guess row as emoji glyphs.
func EmojiRow(row []engine.Tile, colorblind bool) string {
	palette := defaultPalette
	if colorblind {
		palette = colorblindPalette
	}
	var b strings.Builder
	for _, t := range row {
		b.WriteString(palette[t.Color])
	}
	return b.String()
}
