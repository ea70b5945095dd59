// internal/game/track.go
//
// Movement resolution for the classic linear track.
// Responsibilities:
//   - resolveLanding: landing square + traversed path for a roll, with the
//     bounce-back rule at the end of the board.
//   - resolveShortcut: single-hop shortcut redirection.
//   - Die: the uniform 1–6 roll source, injectable for deterministic tests.
//
// The bounce rule: a player must land exactly on the last square; overshoot
// reflects off it symmetrically (tentative > size ⇒ size - (tentative-size)).
// Landing exactly on the last square is the win condition, which callers
// check before any shortcut or content lookup runs.

package game

import (
	"math/rand"

	"github.com/papanpintar/go-server/internal/board"
)

// Die produces a roll in [1,6].
type Die func() int

// NewDie builds a Die from a rand source. Pass rand.NewSource(seed) for a
// reproducible sequence.
func NewDie(src rand.Source) Die {
	r := rand.New(src)
	return func() int { return r.Intn(6) + 1 }
}

// resolveLanding computes where a roll from start ends up on a board of the
// given size, plus every intermediate square in traversal order: an ascending
// run to the landing square, or — when bouncing — up to the last square and
// back down. start is normally in [1, size-1]; a shortcut ending on the top
// square can also park a player at size, from which every roll reflects
// downward. With size >= board.MinTrackSize the reflection cannot leave the
// board for any roll.
func resolveLanding(size, start, roll int) (landing int, path []int) {
	tentative := start + roll
	if tentative > size {
		landing = size - (tentative - size)
		for i := start + 1; i <= size; i++ {
			path = append(path, i)
		}
		for i := size - 1; i >= landing; i-- {
			path = append(path, i)
		}
		return landing, path
	}
	landing = tentative
	for i := start + 1; i <= landing; i++ {
		path = append(path, i)
	}
	return landing, path
}

// resolveShortcut applies at most one shortcut edge to the landing square.
// Chains are deliberately not followed: redirection is one hop per turn so a
// move stays bounded and visually traceable, even if the redirect target is
// itself another shortcut's start.
func resolveShortcut(landing int, cfg board.Config) int {
	if e, ok := cfg.EdgeFrom(landing); ok {
		return e.End
	}
	return landing
}

// trackResolver drives track-mode turns: roll → bounce → win check →
// shortcut → content gate.
type trackResolver struct{}

func (trackResolver) act(g *Game) error {
	g.Phase = PhaseResolving
	g.CanAct = false
	g.Turns++

	roll := g.die()
	g.Dice = roll

	p := &g.Players[g.Current]
	landing, path := resolveLanding(g.Config.Size, p.Position, roll)
	move := &Move{Roll: roll, Path: path, Landing: landing, Final: landing}
	g.LastMove = move

	// Exact landing on the last square wins immediately; no shortcut or
	// content lookup runs on the terminal square.
	if landing == g.Config.Size {
		p.Position = landing
		g.finish(*p)
		return nil
	}

	final := resolveShortcut(landing, g.Config)
	move.Final = final
	move.Jumped = final != landing
	p.Position = final

	task, gated := g.Content.Lookup(final)
	if gated {
		g.Active = &PendingContent{PlayerID: p.ID, Square: final, Content: task.Content, Difficulty: task.Difficulty}
		if g.Activity == ActivityCognitive {
			g.Pending[p.ID] = task.Content
		}
	}

	// Cognitive play never holds the turn: the next player rolls while the
	// question stays pending against the player who landed. Psychomotor play
	// holds the turn until the modal is dismissed.
	if g.Activity == ActivityCognitive || !gated {
		g.advanceTurn()
		g.Phase = PhaseAwaitingAction
		g.CanAct = true
		return nil
	}
	g.Phase = PhaseAwaitingValidation
	return nil
}

func (trackResolver) validate(g *Game, pass bool) error {
	target, ok := g.validationTarget()
	if !ok {
		return ErrNotAllowed
	}
	// Either outcome resolves the content; there is no retry.
	delete(g.Pending, target)
	g.Active = nil

	switch {
	case g.Activity == ActivityCognitive && pass:
		// Turn already advanced when the question was produced; just
		// re-enable rolling for whoever is current now.
	case g.Activity == ActivityCognitive:
		g.advanceTurn()
	default:
		// Psychomotor: the held turn is released either way.
		g.advanceTurn()
	}
	g.Phase = PhaseAwaitingAction
	g.CanAct = true
	return nil
}
