// internal/session/manager.go
//
// Session manager: owns exactly one active game instance plus a cache of
// suspended instances keyed by (mode, word-list, length).
// Responsibilities:
//   - Serialize every player action through one dispatch point (one mutator
//     at a time, by construction).
//   - Mode/list/length switching with the background cache and the staged
//     transition rows.
//   - Daily-word date rollover on resume, shared-link ingestion, and
//     aggregate statistics (max streak, totals).
//   - Best-effort persistence at defined checkpoints: a failed write is
//     logged and never blocks or rolls back the in-memory change.

package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mtoivan/sanagrid/internal/daily"
	"github.com/mtoivan/sanagrid/internal/game"
	"github.com/mtoivan/sanagrid/internal/share"
	"github.com/mtoivan/sanagrid/internal/store"
	"github.com/mtoivan/sanagrid/internal/words"
)

// Fixed persistence keys for session-level state.
const (
	keySettings = "settings"
	keyStats    = "stats"
)

// Key identifies a game instance slot: one per (mode, list, length).
type Key struct {
	Mode   game.Mode    `json:"mode"`
	List   words.ListID `json:"list"`
	Length int          `json:"length"`
}

// String is the composite storage key, e.g. "daily|common|5".
func (k Key) String() string {
	return fmt.Sprintf("%s|%s|%d", k.Mode, k.List, k.Length)
}

// DefaultKey is where a brand-new session starts.
var DefaultKey = Key{Mode: game.ModeClassic, List: words.ListCommon, Length: 5}

// Stats are the session's aggregate counters.
type Stats struct {
	MaxStreak   int `json:"maxStreak"`
	TotalPlayed int `json:"totalPlayed"`
	TotalSolved int `json:"totalSolved"`
}

// settings is the persisted session-level selector state.
type settings struct {
	Key            Key  `json:"key"`
	AllowProfanity bool `json:"allowProfanity"`
}

// Manager owns one player's session. All methods serialize on the internal
// mutex; nothing suspends mid-update.
type Manager struct {
	mu    sync.Mutex
	kv    store.KV
	lists *words.Table
	log   zerolog.Logger
	scope string
	now   func() time.Time

	active         *game.Instance
	background     map[Key]*game.Instance
	current        Key
	previous       Key
	allowProfanity bool
	stats          Stats
}

// New constructs a manager for one player scope and resumes its persisted
// state. Corrupt or missing stored state falls back to defaults; resume
// never fails.
func New(ctx context.Context, kv store.KV, lists *words.Table, scope string, log zerolog.Logger, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	m := &Manager{
		kv:         kv,
		lists:      lists,
		log:        log.With().Str("scope", scope).Logger(),
		scope:      scope,
		now:        now,
		background: make(map[Key]*game.Instance),
		current:    DefaultKey,
	}
	m.resume(ctx)
	return m
}

// resume loads settings, stats, and the active instance, refreshing a stale
// daily word before the round is handed back to the player.
func (m *Manager) resume(ctx context.Context) {
	var s settings
	if m.get(ctx, keySettings, &s) && s.Key.Length != 0 {
		m.current = s.Key
		m.allowProfanity = s.AllowProfanity
	}
	// A shared game never persists; land on the previous selectors instead.
	if m.current.Mode == game.ModeShared {
		m.current = DefaultKey
	}
	m.get(ctx, keyStats, &m.stats)

	m.active = m.loadInstance(ctx, m.current)
	if m.active == nil {
		m.active = game.NewInstance(m.config(m.current))
	}
	if m.current.Mode == game.ModeDaily {
		if b := m.active.Board; b != nil && daily.Rolled(b.DateKey, m.now()) {
			b.NextWord(m.now())
			m.persistActive(ctx)
		}
	}
}

// config assembles a game config for a key.
func (m *Manager) config(k Key) game.Config {
	return game.Config{
		Lists:          m.lists,
		Mode:           k.Mode,
		List:           k.List,
		Length:         k.Length,
		AllowProfanity: m.allowProfanity,
		Date:           m.now(),
	}
}

// loadInstance reads one persisted instance; any failure means "absent".
func (m *Manager) loadInstance(ctx context.Context, k Key) *game.Instance {
	raw, ok, err := m.kv.Get(ctx, m.scope, k.String())
	if err != nil || !ok {
		if err != nil {
			m.log.Debug().Err(err).Str("key", k.String()).Msg("load instance")
		}
		return nil
	}
	var in game.Instance
	if err := json.Unmarshal(raw, &in); err != nil {
		m.log.Debug().Err(err).Str("key", k.String()).Msg("decode instance")
		return nil
	}
	if in.Board == nil && in.Quad == nil {
		return nil
	}
	in.Attach(m.lists, m.allowProfanity)
	return &in
}

// Push appends a letter to the active instance's current row.
func (m *Manager) Push(ctx context.Context, r rune) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active.PushChar(r)
	m.persistActive(ctx)
}

// Pop removes the last letter of the active instance's current row.
func (m *Manager) Pop(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active.PopChar()
	m.persistActive(ctx)
}

// Submit submits the current row and updates the aggregate stats when the
// round ends. Reports whether the guess was accepted.
func (m *Manager) Submit(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	wasFinished := m.active.Finished()
	accepted := m.active.Submit()
	if accepted && !wasFinished && m.active.Finished() {
		m.stats.TotalPlayed++
		if m.active.Won() {
			m.stats.TotalSolved++
		}
		if s := m.active.Streak(); s > m.stats.MaxStreak {
			m.stats.MaxStreak = s
		}
		m.persist(ctx, keyStats, m.stats)
	}
	m.persistActive(ctx)
	return accepted
}

// NextRound starts a new round on the active instance (reset, or the relay
// continuation after a win).
func (m *Manager) NextRound(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active.NextWord(m.now())
	m.persistActive(ctx)
}

// SetAllowProfanity flips the profanity filter for future word selection.
func (m *Manager) SetAllowProfanity(ctx context.Context, allow bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.allowProfanity = allow
	m.active.Attach(m.lists, allow)
	m.persistSettings(ctx)
}

// Switch changes the active (mode, list, length) slot:
//  1. Same key: no-op.
//  2. Remember the current key as previous.
//  3. Reuse the backgrounded instance for the new key, or a persisted one,
//     or construct a fresh instance.
//  4. Stage the old instance's submitted rows on the new one for the
//     transition animation.
//  5. Background the just-deactivated instance under its own key.
//  6. Persist settings and the newly active instance.
func (m *Manager) Switch(ctx context.Context, k Key) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if k == m.current {
		return
	}

	old := m.active
	oldKey := m.current
	m.previous = oldKey

	next, cached := m.background[k]
	if cached {
		delete(m.background, k)
	} else {
		next = m.loadInstance(ctx, k)
	}
	if next == nil {
		next = game.NewInstance(m.config(k))
	}

	// Only fully-submitted rows participate in the transition animation.
	staged := old.SubmittedRows()
	if cur := old.CurrentRow(); len(staged) > cur {
		staged = staged[:cur]
	}
	next.StagePrevious(staged)

	m.background[oldKey] = old
	m.active = next
	m.current = k

	m.persistSettings(ctx)
	m.persistActive(ctx)
}

// IngestShared decodes a share-link parameter into a read-only instance and
// activates it, backgrounding the in-progress game first. Malformed input
// reports false and changes nothing.
func (m *Manager) IngestShared(ctx context.Context, code string) bool {
	word, guesses, ok := share.Decode(code)
	if !ok {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	board := game.SharedBoard(m.lists, word, guesses)
	k := Key{Mode: game.ModeShared, List: words.ListFull, Length: board.Length}
	if k == m.current {
		m.active = &game.Instance{Board: board}
		return true
	}

	m.background[m.current] = m.active
	m.previous = m.current
	m.active = &game.Instance{Board: board}
	m.current = k
	return true
}

// LeaveShared returns from a shared replay to the game it interrupted, so a
// reload of the session view never stays parked on a read-only board. The
// replay itself is discarded, not backgrounded. No-op when the active game
// is not shared.
func (m *Manager) LeaveShared(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current.Mode != game.ModeShared {
		return
	}

	k := m.previous
	if k.Length == 0 || k.Mode == game.ModeShared {
		k = DefaultKey
	}
	next, cached := m.background[k]
	if cached {
		delete(m.background, k)
	} else {
		next = m.loadInstance(ctx, k)
	}
	if next == nil {
		next = game.NewInstance(m.config(k))
	}

	m.active = next
	m.current = k
	m.persistSettings(ctx)
}

// Stats returns the aggregate counters.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// CurrentKey returns the active selectors.
func (m *Manager) CurrentKey() Key {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// DailyResult reports the finished, solved daily round if that is the
// active game.
func (m *Manager) DailyResult() (date string, day, guesses int, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := m.active.Board
	if b == nil || b.Mode != game.ModeDaily || b.IsGuessing || !b.IsWinner {
		return "", 0, 0, false
	}
	return b.DateKey, b.DayIndex, len(b.SubmittedRows()), true
}

// Share returns the active board's share code and, for daily mode, the
// emoji grid. Only finished single boards are shareable.
func (m *Manager) Share(colorblind bool) (code, emoji string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := m.active.Board
	if b == nil || b.IsGuessing {
		return "", "", false
	}
	code = b.ShareCode()
	if b.Mode == game.ModeDaily {
		emoji = b.EmojiBoard(colorblind)
	}
	return code, emoji, true
}

// ---------------------------- persistence ----------------------------------

// persistActive writes the active instance at a checkpoint. Shared and quad
// instances are excluded from persistence.
func (m *Manager) persistActive(ctx context.Context) {
	if !m.active.Persistable() {
		return
	}
	m.persist(ctx, m.current.String(), m.active)
}

// persistSettings writes the session-level selectors. Shared selectors are
// never persisted, so a reload lands the player back on a real mode.
func (m *Manager) persistSettings(ctx context.Context) {
	k := m.current
	if k.Mode == game.ModeShared {
		k = m.previous
	}
	m.persist(ctx, keySettings, settings{Key: k, AllowProfanity: m.allowProfanity})
}

// persist is the best-effort write: failures are logged and swallowed.
func (m *Manager) persist(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		m.log.Debug().Err(err).Str("key", key).Msg("encode state")
		return
	}
	if err := m.kv.Set(ctx, m.scope, key, raw); err != nil {
		m.log.Debug().Err(err).Str("key", key).Msg("persist state")
	}
}

// get is the fallible read twin of persist: absent or corrupt means false.
func (m *Manager) get(ctx context.Context, key string, v any) bool {
	raw, ok, err := m.kv.Get(ctx, m.scope, key)
	if err != nil || !ok {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}
