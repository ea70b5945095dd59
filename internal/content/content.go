// internal/content/content.go
//
// Per-square / per-level content payloads.
//
// Responsibilities:
//   - TrackMap: sparse square → activity text for the classic board.
//   - TrailSet: dense level → task (content + difficulty) for trail mode.
//   - Map: the lookup interface the game engine gates turns on.
//
// Content is authored manually or produced by an external generative
// provider before a session starts; the engine only ever calls Lookup and
// never re-requests content mid-game. A missing key is not an error — it
// means the square gates nothing and the turn proceeds.

package content

// Task is one piece of board content. Difficulty is only populated in
// trail mode, where levels carry a difficulty label.
type Task struct {
	Content    string `json:"content"`
	Difficulty string `json:"difficulty,omitempty"`
}

// Map is the engine-facing lookup boundary.
type Map interface {
	Lookup(key int) (Task, bool)
}

// TrackMap holds sparse activities for the classic board, keyed by square.
type TrackMap map[int]string

// Lookup returns the activity for a square, if one was configured.
func (m TrackMap) Lookup(square int) (Task, bool) {
	s, ok := m[square]
	if !ok || s == "" {
		return Task{}, false
	}
	return Task{Content: s}, true
}

// LevelTask is a trail-mode task as authored or generated: one per level,
// with strictly increasing difficulty across levels 1..9.
type LevelTask struct {
	Level      int    `json:"level"`
	Difficulty string `json:"difficulty"`
	Content    string `json:"content"`
}

// TrailSet holds the dense 9-level task set.
type TrailSet map[int]LevelTask

// NewTrailSet normalizes an authored/generated task list into a dense set
// covering levels 1..9. Levels the list misses are filled with a placeholder,
// mirroring the setup flow's gap fill; out-of-range entries are dropped.
func NewTrailSet(tasks []LevelTask, max int) TrailSet {
	if max <= 0 {
		max = 9
	}
	set := make(TrailSet, max)
	for _, t := range tasks {
		if t.Level >= 1 && t.Level <= max {
			set[t.Level] = t
		}
	}
	for lvl := 1; lvl <= max; lvl++ {
		if _, ok := set[lvl]; !ok {
			set[lvl] = LevelTask{Level: lvl, Difficulty: "N/A", Content: "No content generated"}
		}
	}
	return set
}

// Lookup returns the task content for a level.
func (s TrailSet) Lookup(level int) (Task, bool) {
	t, ok := s[level]
	if !ok {
		return Task{}, false
	}
	return Task{Content: t.Content, Difficulty: t.Difficulty}, true
}
