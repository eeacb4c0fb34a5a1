package words

import (
	"errors"
	"testing"
	"unicode/utf8"
)

func testTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := New(map[ListID]map[int][]string{
		ListCommon: {
			5: {"koira", "tuuli", "ranta", "paska"},
			6: {"kallio", "myrsky"},
		},
		ListFull: {
			5: {"arkki", "korva"},
			6: {"taivas"},
		},
	}, []string{"paska"}, []string{"koira", "tuuli"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tbl
}

func TestContains(t *testing.T) {
	tbl := testTable(t)

	cases := []struct {
		list ListID
		w    string
		want bool
	}{
		{ListCommon, "koira", true},
		{ListCommon, "arkki", false}, // full-only word
		{ListFull, "arkki", true},
		{ListFull, "koira", true}, // common is folded into full
		{ListFull, "KOIRA", true}, // lookups normalize case
		{ListFull, "zzzzz", false},
		{ListFull, "kallio", true},
		{ListCommon, "koirat", false}, // wrong length bucket
	}
	for _, tc := range cases {
		if got := tbl.Contains(tc.list, tc.w); got != tc.want {
			t.Errorf("Contains(%s, %q) = %v, want %v", tc.list, tc.w, got, tc.want)
		}
	}
}

func TestRandomExcludesProfanity(t *testing.T) {
	tbl := testTable(t)
	for i := 0; i < 50; i++ {
		if w := tbl.Random(ListCommon, 5, false); tbl.IsProfanity(w) {
			t.Fatalf("Random returned profanity-listed word %q", w)
		}
	}
	// Explicitly allowed, the flagged word must be reachable.
	seen := false
	for i := 0; i < 200 && !seen; i++ {
		seen = tbl.Random(ListCommon, 5, true) == "paska"
	}
	if !seen {
		t.Errorf("allowProfanity never produced the flagged word")
	}
}

// deadReader fails every read, simulating a broken entropy source.
type deadReader struct{}

func (deadReader) Read([]byte) (int, error) { return 0, errors.New("no entropy") }

func TestRandomIndexPanicsWithoutEntropy(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("randomIndex with a dead entropy source did not panic")
		}
	}()
	randomIndex(deadReader{}, 3)
}

func TestDailyWordWraps(t *testing.T) {
	tbl := testTable(t)
	if got := tbl.DailyWord(0); got != "koira" {
		t.Errorf("DailyWord(0) = %q, want koira", got)
	}
	if got := tbl.DailyWord(1); got != "tuuli" {
		t.Errorf("DailyWord(1) = %q, want tuuli", got)
	}
	if got := tbl.DailyWord(2); got != "koira" {
		t.Errorf("DailyWord(2) = %q, want wrap to koira", got)
	}
}

func TestLoadEmbeddedDefaults(t *testing.T) {
	tbl, err := Load("")
	if err != nil {
		t.Fatalf("Load embedded: %v", err)
	}
	for _, n := range Lengths {
		w := tbl.Random(ListCommon, n, false)
		if utf8.RuneCountInString(w) != n {
			t.Errorf("Random(common, %d) = %q, wrong length", n, w)
		}
		if !tbl.Contains(ListFull, w) {
			t.Errorf("common word %q missing from full list", w)
		}
	}
	if !tbl.Contains(ListFull, tbl.DailyWord(0)) {
		t.Errorf("daily word missing from full list")
	}
}
