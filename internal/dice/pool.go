package dice

import (
	"github.com/KirkDiggler/etr-bot-discord/internal/domain/game"
	etrerr "github.com/KirkDiggler/etr-bot-discord/internal/errors"
)

// PoolSides is the only die size Eat the Reich pools use.
const PoolSides = 6

// RollPool rolls a pool of d6s and classifies each die into its tier for
// the given role. Pools are clamped to a minimum of one die, so any
// non-negative size succeeds.
//
// Indices are assigned per tier: the Nth die landing in a tier gets
// index N (1-based), regardless of overall roll order. Together with the
// value and tier this gives every die a stable identity that survives a
// round-trip through storage.
func RollPool(roller Roller, size int, role game.Role) ([]game.Die, error) {
	if roller == nil {
		return nil, etrerr.InvalidArgument("roller cannot be nil")
	}
	if size < 1 {
		size = 1
	}

	values, err := roller.Roll(size, PoolSides)
	if err != nil {
		return nil, etrerr.Wrap(err, "failed to roll dice pool")
	}

	return Classify(values, role), nil
}

// Classify partitions raw die values into tiered dice with per-tier indices.
func Classify(values []int, role game.Role) []game.Die {
	dice := make([]game.Die, 0, len(values))
	counts := make(map[game.Tier]int, 3)

	for _, v := range values {
		tier := game.ClassifyDie(v, role)
		counts[tier]++
		dice = append(dice, game.Die{
			Value: v,
			Index: counts[tier],
			Tier:  tier,
		})
	}

	return dice
}
