// internal/daily/daily.go
//
// Date math for the daily-word mode.
// The daily word is picked deterministically: index = whole days since a
// fixed epoch date, looked up in the ordered daily word list. Same date,
// same word, on every device.

package daily

import "time"

// Epoch is day 0 of the daily word list. Dates before it are unsupported.
var Epoch = time.Date(2021, time.January, 7, 0, 0, 0, 0, time.UTC)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Index returns the daily word index for t: whole days since Epoch.
// A date before the epoch is a sequencing bug, not player input.
func Index(t time.Time) int {
	days := int(t.UTC().Truncate(24*time.Hour).Sub(Epoch).Hours() / 24)
	if days < 0 {
		panic("daily: date before epoch")
	}
	return days
}

// Rolled reports whether the stored date key is older than now's date key,
// i.e. a resumed daily game belongs to a previous day and must refresh.
func Rolled(stored string, now time.Time) bool {
	return stored != "" && stored < DateKey(now)
}
