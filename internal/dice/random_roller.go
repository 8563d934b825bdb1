package dice

import (
	"math/rand"

	etrerr "github.com/KirkDiggler/etr-bot-discord/internal/errors"
)

// randomRoller implements Roller using math/rand
type randomRoller struct{}

// NewRandomRoller creates a new random dice roller
func NewRandomRoller() Roller {
	return &randomRoller{}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides int) ([]int, error) {
	if count < 1 {
		return nil, etrerr.InvalidArgument("invalid dice count")
	}
	if sides < 1 {
		return nil, etrerr.InvalidArgument("invalid dice size")
	}

	out := make([]int, count)
	for i := 0; i < count; i++ {
		out[i] = rand.Intn(sides) + 1
	}

	return out, nil
}
