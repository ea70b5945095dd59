// internal/game/snapshot.go
//
// Read-only view of a session for the UI/caller: everything the boundary in
// the serving layer exposes, copied out under the engine lock.

package game

import "github.com/papanpintar/go-server/internal/board"

// Snapshot is the observable state of a session.
type Snapshot struct {
	ID            string          `json:"id"`
	Mode          board.Mode      `json:"mode"`
	ActivityType  ActivityType    `json:"activityType"`
	Phase         Phase           `json:"phase"`
	BoardSize     int             `json:"boardSize"`
	Players       []Player        `json:"players"`
	CurrentPlayer Player          `json:"currentPlayer"`
	CanAct        bool            `json:"canAct"`
	Dice          int             `json:"dice,omitempty"`
	Pending       map[int]string  `json:"pending,omitempty"`
	ActiveContent *PendingContent `json:"activeContent,omitempty"`
	Winner        *Player         `json:"winner,omitempty"`
	LastMove      *Move           `json:"lastMove,omitempty"`
	Turns         int             `json:"turns"`
}

// Snapshot copies out the current observable state.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := Snapshot{
		ID:            g.ID,
		Mode:          g.Config.Mode,
		ActivityType:  g.Activity,
		Phase:         g.Phase,
		BoardSize:     g.Config.Size,
		Players:       append([]Player(nil), g.Players...),
		CurrentPlayer: g.Players[g.Current],
		CanAct:        g.CanAct,
		Turns:         g.Turns,
	}
	if g.Config.Mode == board.ModeTrack {
		s.Dice = g.Dice
	}
	if len(g.Pending) > 0 {
		s.Pending = make(map[int]string, len(g.Pending))
		for id, c := range g.Pending {
			s.Pending[id] = c
		}
	}
	if g.Active != nil {
		a := *g.Active
		s.ActiveContent = &a
	}
	if g.Winner != nil {
		w := *g.Winner
		s.Winner = &w
	}
	if g.LastMove != nil {
		m := *g.LastMove
		m.Path = append([]int(nil), g.LastMove.Path...)
		s.LastMove = &m
	}
	return s
}
