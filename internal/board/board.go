// internal/board/board.go
//
// Static board topology for both game modes.
// Defines:
//   - Mode: which engine variant a session runs (track or trail).
//   - ShortcutEdge: a configured jump between two squares (ladder or rope).
//   - Config: immutable board description validated once at game start.
//
// Notes:
//   - Track boards are a linear path of Size squares with shortcut edges;
//     the Trail board is a fixed 9-level path with no shortcuts or dice.
//   - Edge lookup is first-match-wins; NewTrackConfig stores forward edges
//     ahead of backward edges so ladders take precedence when a square is
//     (mis)configured with both.

package board

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Mode selects which movement engine a session uses.
type Mode string

const (
	// ModeTrack is the classic linear board: dice, bounce-back, shortcuts.
	ModeTrack Mode = "track"
	// ModeTrail is the 9-level scaffolded path: no dice, teacher-gated.
	ModeTrail Mode = "trail"
)

// EdgeKind tags a shortcut's direction. It is informational (the resolver
// applies whatever End is configured); renderers use it to pick artwork.
type EdgeKind string

const (
	EdgeForward  EdgeKind = "forward"  // ladder
	EdgeBackward EdgeKind = "backward" // rope / snake
)

const (
	// DefaultTrackSize is the classic board length.
	DefaultTrackSize = 25
	// MinTrackSize keeps every bounced landing on the board. A shortcut may
	// legally end on the top square, so a later roll of 6 from there reflects
	// down to Size-6; the floor keeps that result >= 1.
	MinTrackSize = 7
	// TrailLevels is the fixed number of levels in trail mode.
	TrailLevels = 9
)

// ShortcutEdge maps a start square to an end square.
type ShortcutEdge struct {
	Start int      `json:"start" validate:"min=1"`
	End   int      `json:"end" validate:"min=1"`
	Kind  EdgeKind `json:"kind,omitempty"`
}

// Config is the immutable board description for one session.
type Config struct {
	Size      int            `json:"size" validate:"min=2"` // see the per-mode floors in Validate
	Shortcuts []ShortcutEdge `json:"shortcuts,omitempty" validate:"omitempty,dive"`
	Mode      Mode           `json:"mode" validate:"required,oneof=track trail"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewTrackConfig builds a track-mode config from separate ladder and rope
// lists. size <= 0 falls back to DefaultTrackSize. Ladders are stored first
// so they win first-match lookup on a doubly-configured square.
func NewTrackConfig(size int, ladders, ropes []ShortcutEdge) Config {
	if size <= 0 {
		size = DefaultTrackSize
	}
	edges := make([]ShortcutEdge, 0, len(ladders)+len(ropes))
	for _, l := range ladders {
		l.Kind = EdgeForward
		edges = append(edges, l)
	}
	for _, r := range ropes {
		r.Kind = EdgeBackward
		edges = append(edges, r)
	}
	return Config{Size: size, Shortcuts: edges, Mode: ModeTrack}
}

// NewTrailConfig builds the fixed 9-level trail-mode config.
func NewTrailConfig() Config {
	return Config{Size: TrailLevels, Mode: ModeTrail}
}

// DefaultTrackShortcuts returns the stock board setup: two ladders and two
// ropes, as pre-filled on the setup screen.
func DefaultTrackShortcuts() (ladders, ropes []ShortcutEdge) {
	ladders = []ShortcutEdge{{Start: 4, End: 14}, {Start: 11, End: 21}}
	ropes = []ShortcutEdge{{Start: 23, End: 5}, {Start: 16, End: 8}}
	return ladders, ropes
}

// Validate checks structural rules plus the edge constraints the struct tags
// cannot express. Duplicate edges sharing a start square are allowed
// (first match wins); out-of-range or self-referential edges are not.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Mode == ModeTrail {
		if c.Size != TrailLevels {
			return fmt.Errorf("trail board must have exactly %d levels", TrailLevels)
		}
		if len(c.Shortcuts) > 0 {
			return errors.New("trail board does not support shortcuts")
		}
		return nil
	}
	if c.Size < MinTrackSize {
		return fmt.Errorf("track board must have at least %d squares", MinTrackSize)
	}
	for _, e := range c.Shortcuts {
		if e.Start == e.End {
			return fmt.Errorf("shortcut at square %d points to itself", e.Start)
		}
		if e.Start < 1 || e.Start >= c.Size {
			return fmt.Errorf("shortcut start %d must be a non-terminal square (1..%d)", e.Start, c.Size-1)
		}
		if e.End < 1 || e.End > c.Size {
			return fmt.Errorf("shortcut end %d is off the board (1..%d)", e.End, c.Size)
		}
	}
	return nil
}

// EdgeFrom returns the first shortcut edge originating at start, if any.
func (c Config) EdgeFrom(start int) (ShortcutEdge, bool) {
	for _, e := range c.Shortcuts {
		if e.Start == start {
			return e, true
		}
	}
	return ShortcutEdge{}, false
}
