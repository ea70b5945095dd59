// internal/game/types.go
//
// Core type definitions for the board-game engine.
// Defines:
//   - Phase: lifecycle of one turn (awaiting action → resolving →
//     awaiting validation → back, or finished).
//   - ActivityType: the two turn-gating policies (cognitive/psychomotor).
//   - Player, PendingContent, Move: the observable pieces of a session.

package game

// Phase is the turn state machine's current state.
// Possible values:
//   - "awaiting_action":     the current player may roll / open a challenge.
//   - "resolving":           a move is being computed; non-interactive.
//   - "awaiting_validation": content is on screen awaiting a teacher decision.
//   - "finished":            a winner is set; terminal.
type Phase string

const (
	PhaseAwaitingAction     Phase = "awaiting_action"
	PhaseResolving          Phase = "resolving"
	PhaseAwaitingValidation Phase = "awaiting_validation"
	PhaseFinished           Phase = "finished"
)

// ActivityType selects the turn-advance policy when a square gates content.
//   - cognitive:   the turn passes immediately; the question stays pending
//     against the player who landed, keyed by player id.
//   - psychomotor: the turn is held until the content modal is dismissed.
type ActivityType string

const (
	ActivityCognitive   ActivityType = "cognitive"
	ActivityPsychomotor ActivityType = "psychomotor"
)

// Player is one participant (a student group). ID is stable and unique
// within a session; Position is 1-based and mutated only by the engine.
type Player struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
	Color    string `json:"color"`
}

// PendingContent is the challenge currently on screen: which player it
// belongs to, which square/level produced it, and its text.
type PendingContent struct {
	PlayerID   int    `json:"playerId"`
	Square     int    `json:"square"`
	Content    string `json:"content"`
	Difficulty string `json:"difficulty,omitempty"`
}

// Move describes the last resolved track move so a caller can pace its
// rendering. The whole outcome is decided before this is returned; iterating
// Path with delays is purely presentational.
type Move struct {
	Roll    int   `json:"roll"`
	Path    []int `json:"path"`    // every square traversed, in order
	Landing int   `json:"landing"` // square reached by the roll (after bounce)
	Final   int   `json:"final"`   // square after shortcut redirection
	Jumped  bool  `json:"jumped"`  // true when a shortcut moved Landing → Final
}
