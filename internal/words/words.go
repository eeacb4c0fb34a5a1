// internal/words/words.go
//
// Word-list provider for the game engine.
//
// Responsibilities:
//   - Load word buckets keyed by (list id, word length) from an optional
//     directory of files, falling back to embedded defaults.
//   - Maintain sets for quick membership lookups per bucket.
//   - Supply Random (profanity-filtered), Contains, DailyWord, and Stats.
//
// Word lists:
//   - "common": canonical solutions, per word length.
//   - "full":   valid guesses (always includes common).
//   - profanity: separately flagged words, excluded from Random unless the
//     session explicitly allows them; they stay valid guesses.
//   - daily:    fixed ordered list of 5-letter words indexed by day number.
//
// Initialization behavior (Load):
//   1. If a words directory is configured, read common_5.txt, common_6.txt,
//      full_5.txt, full_6.txt, profanity.txt, and daily.txt from it.
//   2. Otherwise fall back to the embedded defaults under data/.
//
// Constraints:
//   • Words are normalized to lowercase and validated against the alphabet.
//   • The table is built once at process start and never mutated afterwards;
//     every game instance shares the same *Table.

package words

import (
	"bufio"
	"crypto/rand"
	"embed"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/mtoivan/sanagrid/internal/engine"
)

//go:embed data/*.txt
var embedded embed.FS

// ListID names a word list.
type ListID string

const (
	ListCommon ListID = "common"
	ListFull   ListID = "full"
)

// Lengths supported by the game.
var Lengths = []int{5, 6}

type bucketKey struct {
	List   ListID
	Length int
}

type bucket struct {
	all   []string            // every word in the bucket
	clean []string            // all minus profanity (Random's default pool)
	set   map[string]struct{} // membership
}

// Table is the immutably-shared word table. Built once, read by every game
// instance, never mutated.
type Table struct {
	buckets   map[bucketKey]*bucket
	profanity map[string]struct{}
	daily     []string
}

// Load builds the table from dir, or from the embedded defaults when dir is
// empty. Returns an error if any common bucket or the daily list ends up
// empty.
func Load(dir string) (*Table, error) {
	read := func(name string) ([]string, error) {
		if dir != "" {
			return readWordFile(filepath.Join(dir, name))
		}
		f, err := embedded.Open("data/" + name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return readWords(f)
	}

	profanity, err := read("profanity.txt")
	if err != nil {
		return nil, fmt.Errorf("load profanity list: %w", err)
	}
	daily, err := read("daily.txt")
	if err != nil {
		return nil, fmt.Errorf("load daily list: %w", err)
	}

	lists := make(map[ListID]map[int][]string)
	for _, id := range []ListID{ListCommon, ListFull} {
		lists[id] = make(map[int][]string)
		for _, n := range Lengths {
			ws, err := read(fmt.Sprintf("%s_%d.txt", id, n))
			if err != nil {
				return nil, fmt.Errorf("load %s/%d list: %w", id, n, err)
			}
			lists[id][n] = ws
		}
	}
	return New(lists, profanity, daily)
}

// New assembles a table from raw lists. The full list is widened to include
// the common list of the same length, and the daily words are folded into
// both full buckets, so every playable word is always a valid guess.
func New(lists map[ListID]map[int][]string, profanity, daily []string) (*Table, error) {
	t := &Table{
		buckets:   make(map[bucketKey]*bucket),
		profanity: toSet(profanity),
		daily:     filterValid(daily),
	}
	if len(t.daily) == 0 {
		return nil, errors.New("words: daily list is empty")
	}

	for _, n := range Lengths {
		common := filterLen(filterValid(lists[ListCommon][n]), n)
		full := filterLen(filterValid(lists[ListFull][n]), n)
		if len(common) == 0 {
			return nil, fmt.Errorf("words: common/%d list is empty", n)
		}
		t.buckets[bucketKey{ListCommon, n}] = t.newBucket(common)
		merged := append(append([]string{}, full...), common...)
		for _, w := range t.daily {
			if utf8.RuneCountInString(w) == n {
				merged = append(merged, w)
			}
		}
		t.buckets[bucketKey{ListFull, n}] = t.newBucket(dedupe(merged))
	}
	return t, nil
}

func (t *Table) newBucket(ws []string) *bucket {
	b := &bucket{all: ws, set: toSet(ws)}
	for _, w := range ws {
		if _, bad := t.profanity[w]; !bad {
			b.clean = append(b.clean, w)
		}
	}
	return b
}

// Contains reports whether w is a member of the (list, its-own-length)
// bucket. Lookup keys are normalized to lowercase.
func (t *Table) Contains(list ListID, w string) bool {
	w = strings.ToLower(w)
	b, ok := t.buckets[bucketKey{list, utf8.RuneCountInString(w)}]
	if !ok {
		return false
	}
	_, ok = b.set[w]
	return ok
}

// Random returns a uniformly random word from the bucket, excluding
// profanity-listed words unless allowProfanity is set.
func (t *Table) Random(list ListID, length int, allowProfanity bool) string {
	b, ok := t.buckets[bucketKey{list, length}]
	if !ok {
		return ""
	}
	pool := b.clean
	if allowProfanity {
		pool = b.all
	}
	if len(pool) == 0 {
		return ""
	}
	return pool[randomIndex(rand.Reader, len(pool))]
}

// randomIndex draws a uniform index in [0, n). The process cannot pick
// words without entropy; a failed read is a fatal environment error, not a
// recoverable one.
func randomIndex(r io.Reader, n int) int {
	nBig, err := rand.Int(r, big.NewInt(int64(n)))
	if err != nil {
		panic(fmt.Sprintf("words: random source failed: %v", err))
	}
	return int(nBig.Int64())
}

// DailyWord returns the daily word for the given day index. The list is
// fixed and ordered; indices beyond its end wrap around.
func (t *Table) DailyWord(index int) string {
	return t.daily[index%len(t.daily)]
}

// IsProfanity reports whether w carries the profanity flag.
func (t *Table) IsProfanity(w string) bool {
	_, ok := t.profanity[strings.ToLower(w)]
	return ok
}

// Stats returns the bucket sizes keyed by "list/length", for diagnostics.
func (t *Table) Stats() map[string]int {
	out := make(map[string]int, len(t.buckets))
	for k, b := range t.buckets {
		out[fmt.Sprintf("%s/%d", k.List, k.Length)] = len(b.all)
	}
	return out
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readWords(f)
}

// readWords lowercases and trims one word per line, skipping blanks and
// comment lines.
func readWords(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		out = append(out, w)
	}
	return out, sc.Err()
}

// filterValid keeps only words made of alphabet letters.
func filterValid(ws []string) []string {
	var out []string
	for _, w := range ws {
		if isAlphabet(w) {
			out = append(out, w)
		}
	}
	return out
}

func filterLen(ws []string, n int) []string {
	var out []string
	for _, w := range ws {
		if utf8.RuneCountInString(w) == n {
			out = append(out, w)
		}
	}
	return out
}

// isAlphabet reports whether every rune of s is in the game alphabet.
func isAlphabet(s string) bool {
	for _, r := range s {
		found := false
		for _, a := range engine.Alphabet {
			if r == a {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return len(s) > 0
}

func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[strings.ToLower(w)] = struct{}{}
	}
	return m
}

func dedupe(ws []string) []string {
	seen := make(map[string]struct{}, len(ws))
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
