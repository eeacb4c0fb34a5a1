package daily

import (
	"testing"
	"time"
)

func TestIndexEpochMapping(t *testing.T) {
	if got := Index(Epoch); got != 0 {
		t.Errorf("Index(epoch) = %d, want 0", got)
	}
	if got := Index(Epoch.AddDate(0, 0, 1)); got != 1 {
		t.Errorf("Index(epoch+1d) = %d, want 1", got)
	}
	// Time of day within the same UTC date does not move the index.
	late := Epoch.Add(23*time.Hour + 59*time.Minute)
	if got := Index(late); got != 0 {
		t.Errorf("Index(epoch 23:59) = %d, want 0", got)
	}
}

func TestIndexBeforeEpochPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Index before epoch did not panic")
		}
	}()
	Index(Epoch.AddDate(0, 0, -1))
}

func TestRolled(t *testing.T) {
	now := time.Date(2024, time.March, 2, 12, 0, 0, 0, time.UTC)
	if !Rolled("2024-03-01", now) {
		t.Errorf("yesterday's key should roll")
	}
	if Rolled("2024-03-02", now) {
		t.Errorf("today's key should not roll")
	}
	if Rolled("", now) {
		t.Errorf("empty key should not roll")
	}
}
