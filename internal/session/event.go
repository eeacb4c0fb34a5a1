// internal/session/event.go
//
// Event dispatch: the single serialized entry point used by stream
// transports. Each event maps to one manager mutation.

package session

import (
	"context"

	"github.com/mtoivan/sanagrid/internal/game"
	"github.com/mtoivan/sanagrid/internal/words"
)

// Event names accepted by Apply.
const (
	EventKey       = "key"
	EventBackspace = "backspace"
	EventSubmit    = "submit"
	EventMode      = "mode"
	EventNext      = "next"
)

// Event is one client action.
type Event struct {
	Event  string `json:"event"`
	Char   string `json:"char,omitempty"`
	Mode   string `json:"mode,omitempty"`
	List   string `json:"list,omitempty"`
	Length int    `json:"length,omitempty"`
}

// Apply dispatches one event to the matching mutation. Unknown events and
// events with missing fields are ignored; the caller renders the view
// afterwards either way.
func (m *Manager) Apply(ctx context.Context, ev Event) {
	switch ev.Event {
	case EventKey:
		for _, r := range ev.Char {
			m.Push(ctx, r)
			break // one rune per event
		}
	case EventBackspace:
		m.Pop(ctx)
	case EventSubmit:
		m.Submit(ctx)
	case EventMode:
		if k, ok := KeyFrom(ev.Mode, ev.List, ev.Length); ok {
			m.Switch(ctx, k)
		}
	case EventNext:
		m.NextRound(ctx)
	}
}

// KeyFrom validates raw selector values into a Key. Shared is not a
// selectable mode; it is entered only through a share link.
func KeyFrom(mode, list string, length int) (Key, bool) {
	k := Key{Mode: game.Mode(mode), List: words.ListID(list), Length: length}
	switch k.Mode {
	case game.ModeClassic, game.ModeRelay, game.ModeDaily, game.ModeQuad:
	default:
		return Key{}, false
	}
	switch k.List {
	case words.ListCommon, words.ListFull:
	default:
		return Key{}, false
	}
	ok := false
	for _, l := range words.Lengths {
		if l == k.Length {
			ok = true
		}
	}
	if !ok {
		return Key{}, false
	}
	// The daily word is always drawn from the 5-letter common list.
	if k.Mode == game.ModeDaily {
		k.List, k.Length = words.ListCommon, 5
	}
	return k, true
}
