package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteCRUD(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	if _, ok, err := s.Get(ctx, "p1", "settings"); ok || err != nil {
		t.Fatalf("fresh db get: ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "p1", "settings", []byte("a")); err != nil {
		t.Fatalf("set: %v", err)
	}
	// Upsert replaces.
	if err := s.Set(ctx, "p1", "settings", []byte("b")); err != nil {
		t.Fatalf("set again: %v", err)
	}
	v, ok, err := s.Get(ctx, "p1", "settings")
	if err != nil || !ok || string(v) != "b" {
		t.Fatalf("get = %q %v %v", v, ok, err)
	}
	if err := s.Remove(ctx, "p1", "settings"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "p1", "settings"); ok {
		t.Fatalf("value survived remove")
	}
}

func TestSQLiteClaim(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	_ = s.Set(ctx, "anon|1", "a", []byte("anon-a"))
	_ = s.Set(ctx, "anon|1", "b", []byte("anon-b"))
	_ = s.Set(ctx, "user|9", "b", []byte("user-b"))

	if err := s.Claim(ctx, "anon|1", "user|9"); err != nil {
		t.Fatalf("claim: %v", err)
	}

	v, ok, _ := s.Get(ctx, "user|9", "a")
	if !ok || string(v) != "anon-a" {
		t.Errorf("claimed value = %q %v", v, ok)
	}
	// Destination keys win.
	v, _, _ = s.Get(ctx, "user|9", "b")
	if string(v) != "user-b" {
		t.Errorf("destination overwritten: %q", v)
	}
	if _, ok, _ := s.Get(ctx, "anon|1", "a"); ok {
		t.Errorf("source scope not emptied")
	}
}

func TestDailyResults(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	if _, err := s.DB.Exec(`INSERT INTO users (id, username, password_hash, created_at) VALUES
		('u1','matti','x','2026-01-01T00:00:00Z'),
		('u2','liisa','x','2026-01-01T00:00:00Z')`); err != nil {
		t.Fatalf("seed users: %v", err)
	}

	results := []DailyResult{
		{UserID: "u1", Date: "2026-08-26", DayIndex: 2057, Guesses: 4},
		{UserID: "u2", Date: "2026-08-26", DayIndex: 2057, Guesses: 2},
		{UserID: "u1", Date: "2026-08-26", DayIndex: 2057, Guesses: 1}, // replay, ignored
	}
	for _, r := range results {
		if err := s.InsertDailyResult(ctx, r); err != nil {
			t.Fatalf("insert %+v: %v", r, err)
		}
	}

	rows, err := s.DailyLeaderboard(ctx, "2026-08-26", 0)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Username != "liisa" || rows[0].Guesses != 2 {
		t.Errorf("rows[0] = %+v, want liisa with 2 guesses", rows[0])
	}
	if rows[1].Username != "matti" || rows[1].Guesses != 4 {
		t.Errorf("rows[1] = %+v, want matti's first result", rows[1])
	}

	// Other dates are empty.
	rows, err = s.DailyLeaderboard(ctx, "2026-08-27", 0)
	if err != nil || len(rows) != 0 {
		t.Errorf("wrong-date rows = %v err = %v", rows, err)
	}
}
