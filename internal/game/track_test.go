package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papanpintar/go-server/internal/board"
)

func TestResolveLanding(t *testing.T) {
	t.Run("simple ascent", func(t *testing.T) {
		landing, path := resolveLanding(25, 1, 3)
		assert.Equal(t, 4, landing)
		assert.Equal(t, []int{2, 3, 4}, path)
	})

	t.Run("exact landing on the last square", func(t *testing.T) {
		landing, path := resolveLanding(25, 20, 5)
		assert.Equal(t, 25, landing)
		assert.Equal(t, []int{21, 22, 23, 24, 25}, path)
	})

	t.Run("bounce off the last square", func(t *testing.T) {
		// from 22 a roll of 5 overshoots by 2: up to 25, back down to 23
		landing, path := resolveLanding(25, 22, 5)
		assert.Equal(t, 23, landing)
		assert.Equal(t, []int{23, 24, 25, 24, 23}, path)
	})

	t.Run("overshoot on the smallest legal board", func(t *testing.T) {
		// 6+6=12 on a 7-square board lands back on 2
		landing, path := resolveLanding(board.MinTrackSize, 6, 6)
		assert.Equal(t, 2, landing)
		assert.Equal(t, []int{7, 6, 5, 4, 3, 2}, path)

		// a shortcut can park a player on the top square; a max roll from
		// there is the deepest reflection possible and still reaches square 1
		landing, path = resolveLanding(board.MinTrackSize, board.MinTrackSize, 6)
		assert.Equal(t, 1, landing)
		assert.Equal(t, []int{6, 5, 4, 3, 2, 1}, path)
	})

	t.Run("bounce invariant", func(t *testing.T) {
		// start runs up to size itself: shortcuts may deposit a player there
		for _, size := range []int{board.MinTrackSize, 10, 25, 100} {
			for start := 1; start <= size; start++ {
				for roll := 1; roll <= 6; roll++ {
					landing, path := resolveLanding(size, start, roll)
					require.GreaterOrEqual(t, landing, 1)
					require.LessOrEqual(t, landing, size)
					require.NotEmpty(t, path)
					require.Equal(t, landing, path[len(path)-1])
					for _, sq := range path {
						require.GreaterOrEqual(t, sq, 1)
						require.LessOrEqual(t, sq, size)
					}
					if tentative := start + roll; tentative > size {
						require.Equal(t, size-(tentative-size), landing)
						require.Less(t, landing, size)
					}
				}
			}
		}
	})
}

func TestResolveShortcut(t *testing.T) {
	ladders := []board.ShortcutEdge{{Start: 4, End: 14}}
	ropes := []board.ShortcutEdge{{Start: 23, End: 5}}
	cfg := board.NewTrackConfig(25, ladders, ropes)

	t.Run("forward edge", func(t *testing.T) {
		assert.Equal(t, 14, resolveShortcut(4, cfg))
	})
	t.Run("backward edge", func(t *testing.T) {
		assert.Equal(t, 5, resolveShortcut(23, cfg))
	})
	t.Run("no edge", func(t *testing.T) {
		assert.Equal(t, 7, resolveShortcut(7, cfg))
	})

	t.Run("one hop only", func(t *testing.T) {
		// 3 → 7 and 7 → 2: landing on 3 redirects to 7 and stops there
		chained := board.NewTrackConfig(25,
			[]board.ShortcutEdge{{Start: 3, End: 7}},
			[]board.ShortcutEdge{{Start: 7, End: 2}})
		assert.Equal(t, 7, resolveShortcut(3, chained))
	})

	t.Run("first match wins on duplicate start", func(t *testing.T) {
		// a ladder and a rope both configured on 10: the ladder is stored
		// first and takes precedence
		dup := board.NewTrackConfig(25,
			[]board.ShortcutEdge{{Start: 10, End: 20}},
			[]board.ShortcutEdge{{Start: 10, End: 2}})
		assert.Equal(t, 20, resolveShortcut(10, dup))
	})
}
