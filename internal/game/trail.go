// internal/game/trail.go
//
// Movement resolution for the 9-level challenge trail.
// No dice: every state change is operator-driven. The current player's level
// task is opened, a teacher validates pass/fail, and a pass moves the player
// up exactly one level. Passing the top level wins — the winner is recorded
// explicitly and the stored level stays at 9 (there is no level 10).

package game

import "github.com/papanpintar/go-server/internal/board"

// advanceLevel reports the level after a successful validation. win is true
// when the player was already on the top level.
func advanceLevel(current int) (next int, win bool) {
	if current >= board.TrailLevels {
		return current, true
	}
	return current + 1, false
}

// trailResolver drives trail-mode turns: open challenge → teacher decision.
type trailResolver struct{}

func (trailResolver) act(g *Game) error {
	g.Phase = PhaseResolving
	g.CanAct = false
	g.Turns++

	p := g.Players[g.Current]
	task, ok := g.Content.Lookup(p.Position)
	if !ok {
		// Trail content is dense, so this should not occur; absent content
		// gates nothing and the turn simply passes.
		g.advanceTurn()
		g.Phase = PhaseAwaitingAction
		g.CanAct = true
		return nil
	}
	g.Active = &PendingContent{PlayerID: p.ID, Square: p.Position, Content: task.Content, Difficulty: task.Difficulty}
	g.Pending[p.ID] = task.Content
	g.Phase = PhaseAwaitingValidation
	return nil
}

func (trailResolver) validate(g *Game, pass bool) error {
	if g.Phase != PhaseAwaitingValidation {
		return ErrNotAllowed
	}
	p := &g.Players[g.Current]
	delete(g.Pending, p.ID)
	g.Active = nil

	if pass {
		next, win := advanceLevel(p.Position)
		if win {
			g.finish(*p)
			return nil
		}
		p.Position = next
	}
	// Pass or fail, the turn moves on; a failed challenge never grants a
	// retry in the same turn.
	g.advanceTurn()
	g.Phase = PhaseAwaitingAction
	g.CanAct = true
	return nil
}
