package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papanpintar/go-server/internal/board"
	"github.com/papanpintar/go-server/internal/content"
)

func trailTasks() content.TrailSet {
	tasks := []content.LevelTask{
		{Level: 1, Difficulty: "Very easy", Content: "warm-up"},
		{Level: 5, Difficulty: "Medium", Content: "halfway"},
		{Level: 9, Difficulty: "Peak", Content: "final boss"},
	}
	return content.NewTrailSet(tasks, board.TrailLevels)
}

func newTrailGame(t *testing.T, names ...string) *Game {
	t.Helper()
	if len(names) == 0 {
		names = []string{"Group A", "Group B"}
	}
	g, err := New("test-trail", board.NewTrailConfig(), ActivityCognitive, testPlayers(names...), trailTasks())
	require.NoError(t, err)
	return g
}

func TestAdvanceLevel(t *testing.T) {
	for cur := 1; cur < board.TrailLevels; cur++ {
		next, win := advanceLevel(cur)
		assert.False(t, win)
		assert.Equal(t, cur+1, next)
	}
	_, win := advanceLevel(board.TrailLevels)
	assert.True(t, win)
}

func TestTrailPassAdvancesOneLevel(t *testing.T) {
	g := newTrailGame(t)

	require.NoError(t, g.OpenChallenge())
	assert.Equal(t, PhaseAwaitingValidation, g.Phase)
	assert.False(t, g.CanAct)
	require.NotNil(t, g.Active)
	assert.Equal(t, "warm-up", g.Active.Content)
	assert.Equal(t, "Very easy", g.Active.Difficulty)

	require.NoError(t, g.SubmitValidation(true))
	assert.Equal(t, 2, g.Players[0].Position)
	assert.Equal(t, 1, g.Current)
	assert.True(t, g.CanAct)
	assert.Equal(t, PhaseAwaitingAction, g.Phase)
	assert.Empty(t, g.Pending)
}

func TestTrailFailHoldsLevel(t *testing.T) {
	g := newTrailGame(t)

	require.NoError(t, g.OpenChallenge())
	require.NoError(t, g.SubmitValidation(false))
	assert.Equal(t, 1, g.Players[0].Position, "failed challenge never moves the player")
	assert.Equal(t, 1, g.Current, "the turn still passes")
	assert.True(t, g.CanAct)
}

func TestTrailMonotonicity(t *testing.T) {
	g := newTrailGame(t)

	// alternate pass/fail for a while; levels must never decrease and only
	// ever grow by one per pass
	decisions := []bool{true, false, true, true, false, false, true, true}
	for _, pass := range decisions {
		before := make([]int, len(g.Players))
		for i, p := range g.Players {
			before[i] = p.Position
		}
		idx := g.Current
		require.NoError(t, g.OpenChallenge())
		require.NoError(t, g.SubmitValidation(pass))
		for i, p := range g.Players {
			if i == idx && pass {
				assert.Equal(t, before[i]+1, p.Position)
			} else {
				assert.Equal(t, before[i], p.Position)
			}
		}
	}
}

func TestTrailWinAtTopLevel(t *testing.T) {
	g := newTrailGame(t)
	g.Players[0].Position = board.TrailLevels

	require.NoError(t, g.OpenChallenge())
	require.NotNil(t, g.Active)
	assert.Equal(t, "final boss", g.Active.Content)

	require.NoError(t, g.SubmitValidation(true))
	require.NotNil(t, g.Winner)
	assert.Equal(t, 0, g.Winner.ID)
	assert.Equal(t, PhaseFinished, g.Phase)
	// the winner's level stays at 9: the win is explicit, never "level 10"
	assert.Equal(t, board.TrailLevels, g.Players[0].Position)
}

func TestTrailGuards(t *testing.T) {
	g := newTrailGame(t)

	assert.ErrorIs(t, g.RollDice(), ErrNotAllowed, "no dice in trail mode")
	assert.ErrorIs(t, g.SubmitValidation(true), ErrNotAllowed, "nothing to validate yet")

	require.NoError(t, g.OpenChallenge())
	assert.ErrorIs(t, g.OpenChallenge(), ErrNotAllowed, "already awaiting validation")
}
