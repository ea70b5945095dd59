// internal/game/engine.go
//
// Turn state machine for a single board-game session.
// Responsibilities:
//   - Own the roster, current-player index, canAct gating, pending content
//     (keyed by player id), and win detection.
//   - Funnel every state change through one dispatch function (Apply), with
//     the mode-specific movement logic behind a resolver strategy chosen
//     once at construction.
//   - Stay defensively idempotent: an action that is not currently allowed
//     (duplicate trigger, wrong mode, wrong phase, finished game) is a
//     silent no-op reported as ErrNotAllowed, never a mutation.
//
// The whole outcome of an action — path, landing, redirect, content gate —
// is computed synchronously before Apply returns. Animation pacing is the
// caller's concern, driven by the returned Move.

package game

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/papanpintar/go-server/internal/board"
	"github.com/papanpintar/go-server/internal/content"
)

var (
	// ErrNotAllowed marks an action that is invalid in the current state.
	// Callers treat it as a no-op, not a failure.
	ErrNotAllowed = errors.New("action not allowed")
	// ErrEmptyRoster rejects session creation with no players.
	ErrEmptyRoster = errors.New("at least one player is required")
)

// ActionKind enumerates the triggers the caller may dispatch.
type ActionKind string

const (
	ActionRoll          ActionKind = "roll"           // track mode only
	ActionOpenChallenge ActionKind = "open_challenge" // trail mode only
	ActionValidate      ActionKind = "validate"
	ActionCloseModal    ActionKind = "close_modal"
	ActionReset         ActionKind = "reset"
)

// Action is one dispatched trigger. Pass is only meaningful for
// ActionValidate.
type Action struct {
	Kind ActionKind `json:"kind"`
	Pass bool       `json:"pass,omitempty"`
}

// resolver is the per-mode movement strategy, selected once at New.
type resolver interface {
	act(g *Game) error
	validate(g *Game, pass bool) error
}

// Game holds all mutable state of one session. Fields are exported for
// snapshotting; mutation happens exclusively through Apply.
type Game struct {
	ID       string
	Config   board.Config
	Activity ActivityType
	Content  content.Map

	Players  []Player
	Phase    Phase
	Current  int  // index into Players; meaningless once Winner is set
	CanAct   bool // false while a move/validation must resolve first
	Dice     int  // last die face, track mode
	Pending  map[int]string
	Active   *PendingContent
	Winner   *Player
	LastMove *Move
	Turns    int

	StartedAt time.Time

	resolve resolver
	die     Die

	mu sync.Mutex // serializes Apply/Snapshot against concurrent triggers
}

// Option tweaks construction, primarily for tests.
type Option func(*Game)

// WithDie replaces the default random die.
func WithDie(d Die) Option {
	return func(g *Game) { g.die = d }
}

// New constructs a session. The config is validated, the roster must be
// non-empty, and the mode's resolver is fixed here so no mode conditionals
// leak into the transition logic.
func New(id string, cfg board.Config, activity ActivityType, players []Player, cm content.Map, opts ...Option) (*Game, error) {
	if len(players) == 0 {
		return nil, ErrEmptyRoster
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if activity != ActivityCognitive && activity != ActivityPsychomotor {
		return nil, errors.New("unknown activity type")
	}
	if cm == nil {
		cm = content.TrackMap{}
	}
	g := &Game{
		ID:        id,
		Config:    cfg,
		Activity:  activity,
		Content:   cm,
		Players:   append([]Player(nil), players...),
		Phase:     PhaseAwaitingAction,
		CanAct:    true,
		Dice:      1,
		Pending:   make(map[int]string),
		StartedAt: time.Now().UTC(),
		die:       NewDie(rand.NewSource(time.Now().UnixNano())),
	}
	switch cfg.Mode {
	case board.ModeTrail:
		g.resolve = trailResolver{}
	default:
		g.resolve = trackResolver{}
	}
	for i := range g.Players {
		if g.Players[i].Position < 1 {
			g.Players[i].Position = 1
		}
	}
	for _, o := range opts {
		o(g)
	}
	return g, nil
}

// Apply dispatches one action through the state machine.
// Returns ErrNotAllowed (state untouched) when the action is invalid now.
func (g *Game) Apply(a Action) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Phase == PhaseFinished && a.Kind != ActionReset {
		return ErrNotAllowed
	}
	switch a.Kind {
	case ActionRoll:
		if g.Config.Mode != board.ModeTrack || g.Phase != PhaseAwaitingAction || !g.CanAct {
			return ErrNotAllowed
		}
		return g.resolve.act(g)
	case ActionOpenChallenge:
		if g.Config.Mode != board.ModeTrail || g.Phase != PhaseAwaitingAction || !g.CanAct {
			return ErrNotAllowed
		}
		return g.resolve.act(g)
	case ActionValidate:
		return g.resolve.validate(g, a.Pass)
	case ActionCloseModal:
		return g.closeModal()
	case ActionReset:
		g.reset()
		return nil
	default:
		return ErrNotAllowed
	}
}

// Convenience wrappers over Apply, mirroring the action interface the UI
// consumes.

func (g *Game) RollDice() error { return g.Apply(Action{Kind: ActionRoll}) }

func (g *Game) OpenChallenge() error { return g.Apply(Action{Kind: ActionOpenChallenge}) }

func (g *Game) SubmitValidation(pass bool) error {
	return g.Apply(Action{Kind: ActionValidate, Pass: pass})
}

func (g *Game) CloseContentModal() error { return g.Apply(Action{Kind: ActionCloseModal}) }

func (g *Game) Reset() { _ = g.Apply(Action{Kind: ActionReset}) }

// validationTarget picks which player's pending content a validation
// resolves: the on-screen content when a modal is open, otherwise — in
// cognitive play, where the turn has already moved on — the current player's
// carried question.
func (g *Game) validationTarget() (playerID int, ok bool) {
	if g.Active != nil {
		return g.Active.PlayerID, true
	}
	if g.Activity == ActivityCognitive && g.Phase == PhaseAwaitingAction {
		cur := g.Players[g.Current].ID
		if _, has := g.Pending[cur]; has {
			return cur, true
		}
	}
	return 0, false
}

// closeModal dismisses the on-screen content. Under the psychomotor policy
// this is the point where the held turn is released.
func (g *Game) closeModal() error {
	if g.Active == nil {
		return ErrNotAllowed
	}
	g.Active = nil
	if g.Activity == ActivityPsychomotor && g.Phase == PhaseAwaitingValidation {
		g.advanceTurn()
		g.Phase = PhaseAwaitingAction
		g.CanAct = true
	}
	return nil
}

// advanceTurn rotates the current player round-robin.
func (g *Game) advanceTurn() {
	g.Current = (g.Current + 1) % len(g.Players)
}

// finish records the winner and enters the terminal phase. No action other
// than reset mutates any player's position afterwards.
func (g *Game) finish(winner Player) {
	w := winner
	g.Winner = &w
	g.Phase = PhaseFinished
	g.CanAct = false
	g.Active = nil
}

// reset reinitializes the session to a fresh game over the same config,
// roster, and content.
func (g *Game) reset() {
	for i := range g.Players {
		g.Players[i].Position = 1
	}
	g.Phase = PhaseAwaitingAction
	g.Current = 0
	g.CanAct = true
	g.Dice = 1
	g.Pending = make(map[int]string)
	g.Active = nil
	g.Winner = nil
	g.LastMove = nil
	g.Turns = 0
	g.StartedAt = time.Now().UTC()
}

// PlayersAt reports every player currently on a square, in roster order.
// Multiple players may share a square; identity stays stable by ID.
func (g *Game) PlayersAt(square int) []Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []Player
	for _, p := range g.Players {
		if p.Position == square {
			out = append(out, p)
		}
	}
	return out
}

// CurrentPlayer returns the player whose turn it is.
func (g *Game) CurrentPlayer() Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.Players[g.Current]
}
