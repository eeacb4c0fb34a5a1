// internal/session/view.go
//
// Read-only snapshot of a session for transport layers. Built under the
// manager lock so handlers never reach into live game state.

package session

import (
	"github.com/mtoivan/sanagrid/internal/engine"
	"github.com/mtoivan/sanagrid/internal/game"
)

// TileView is one rendered cell.
type TileView struct {
	Char  string           `json:"char"`
	Color engine.TileColor `json:"color"`
}

// BoardView is one board's renderable state.
type BoardView struct {
	Rows       [][]TileView `json:"rows"`
	Previous   [][]TileView `json:"previous,omitempty"`
	Current    int          `json:"current"`
	Length     int          `json:"length"`
	MaxGuesses int          `json:"maxGuesses"`
	IsGuessing bool         `json:"isGuessing"`
	IsWinner   bool         `json:"isWinner"`
	IsUnknown  bool         `json:"isUnknown"`
	IsReset    bool         `json:"isReset"`
	Day        int          `json:"day,omitempty"`
	Date       string       `json:"date,omitempty"`
}

// View is the whole session snapshot returned to clients.
type View struct {
	Mode           game.Mode                     `json:"mode"`
	List           string                        `json:"list"`
	Length         int                           `json:"length"`
	Boards         []BoardView                   `json:"boards"`
	Message        string                        `json:"message"`
	Keyboard       map[string][]engine.TileColor `json:"keyboard"`
	Streak         int                           `json:"streak"`
	Stats          Stats                         `json:"stats"`
	AllowProfanity bool                          `json:"allowProfanity"`
}

// View builds a snapshot of the active instance.
func (m *Manager) View() View {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := View{
		Mode:           m.current.Mode,
		List:           string(m.current.List),
		Length:         m.current.Length,
		Message:        m.active.Message(),
		Keyboard:       make(map[string][]engine.TileColor, len(engine.Alphabet)),
		Streak:         m.active.Streak(),
		Stats:          m.stats,
		AllowProfanity: m.allowProfanity,
	}

	if q := m.active.Quad; q != nil {
		for _, b := range q.Boards {
			v.Boards = append(v.Boards, viewBoard(b))
		}
	} else {
		v.Boards = append(v.Boards, viewBoard(m.active.Board))
	}

	for _, c := range engine.Alphabet {
		v.Keyboard[string(c)] = m.active.KeyboardColors(c)
	}
	return v
}

func viewBoard(b *game.Board) BoardView {
	return BoardView{
		Rows:       viewRows(b.Rows),
		Previous:   viewRows(b.Previous),
		Current:    b.Current,
		Length:     b.Length,
		MaxGuesses: b.MaxGuesses,
		IsGuessing: b.IsGuessing,
		IsWinner:   b.IsWinner,
		IsUnknown:  b.IsUnknown,
		IsReset:    b.IsReset,
		Day:        b.DayIndex,
		Date:       b.DateKey,
	}
}

func viewRows(rows [][]engine.Tile) [][]TileView {
	if rows == nil {
		return nil
	}
	out := make([][]TileView, len(rows))
	for i, row := range rows {
		vr := make([]TileView, len(row))
		for j, t := range row {
			vr[j] = TileView{Char: string(t.Char), Color: t.Color}
		}
		out[i] = vr
	}
	return out
}
