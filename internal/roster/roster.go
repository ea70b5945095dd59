// internal/roster/roster.go
//
// Player roster creation.
// Responsibilities:
//   - Turn an ordered name list into Players with sequential ids and colors
//     cycled from the fixed palette.
//   - "Smart groups": split a class of students into gender-balanced groups
//     by shuffling each gender pool and dealing round-robin.

package roster

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/papanpintar/go-server/internal/game"
)

// Palette is the fixed set of display colors, assigned round-robin by
// player index.
var Palette = []string{
	"rose", "sky", "emerald", "amber", "violet", "orange", "teal", "fuchsia",
}

// MaxGroups caps the group count at the palette size, as the setup screen
// does.
var MaxGroups = len(Palette)

// Student is one class member used for smart grouping.
type Student struct {
	Name   string `json:"name"`
	Gender string `json:"gender"` // free-form token; balancing buckets by value
}

// Group is a generated group: a player plus its member names.
type Group struct {
	game.Player
	Members []string `json:"members"`
}

// PlayersFromNames builds the roster for a new session. Every player starts
// on square/level 1.
func PlayersFromNames(names []string) []game.Player {
	players := make([]game.Player, 0, len(names))
	for i, name := range names {
		players = append(players, game.Player{
			ID:       i,
			Name:     name,
			Position: 1,
			Color:    Palette[i%len(Palette)],
		})
	}
	return players
}

// SmartGroups distributes students into groupCount groups, balanced by
// gender: each gender pool is shuffled (Fisher-Yates via rand.Shuffle) and
// dealt round-robin, so pools split as evenly as the counts allow.
func SmartGroups(students []Student, groupCount int, rng *rand.Rand) ([]Group, error) {
	if groupCount < 1 {
		return nil, errors.New("group count must be at least 1")
	}
	if groupCount > MaxGroups {
		return nil, fmt.Errorf("at most %d groups are supported", MaxGroups)
	}
	if len(students) == 0 {
		return nil, errors.New("no students to group")
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	pools := make(map[string][]Student)
	var keys []string
	for _, s := range students {
		if _, ok := pools[s.Gender]; !ok {
			keys = append(keys, s.Gender)
		}
		pools[s.Gender] = append(pools[s.Gender], s)
	}
	sort.Strings(keys) // stable deal order across runs with the same seed

	members := make([][]string, groupCount)
	dealt := 0
	for _, k := range keys {
		pool := pools[k]
		rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		for _, s := range pool {
			idx := dealt % groupCount
			members[idx] = append(members[idx], s.Name)
			dealt++
		}
		// Restart the deal at group 0 for the next pool so every pool
		// spreads from the front, matching the source behavior.
		dealt = 0
	}

	groups := make([]Group, groupCount)
	for i := range groups {
		groups[i] = Group{
			Player: game.Player{
				ID:       i,
				Name:     fmt.Sprintf("Kelompok %d", i+1),
				Position: 1,
				Color:    Palette[i%len(Palette)],
			},
			Members: members[i],
		}
	}
	return groups, nil
}
