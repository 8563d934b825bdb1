// Package game holds the Eat the Reich domain types shared by services,
// repositories, and the Discord layer.
package game

import (
	"time"

	etrerr "github.com/KirkDiggler/etr-bot-discord/internal/errors"
)

// Role distinguishes who rolled the pool. Player pools can score criticals
// and have their dice allocated; threat pools can only be crossed out.
type Role string

const (
	RolePlayer Role = "player"
	RoleThreat Role = "threat"
)

// Tier is the classification bucket a die lands in.
type Tier string

const (
	TierCritical Tier = "critical"
	TierSuccess  Tier = "success"
	TierDiscard  Tier = "discard"
)

// ClassifyDie returns the tier for a die value under the given role.
// Player: 6 is a critical, 4-5 a success, 1-3 a discard.
// Threat: 4-6 a success, 1-3 a discard. Threat rolls never crit.
func ClassifyDie(value int, role Role) Tier {
	if role == RoleThreat {
		if value >= 4 {
			return TierSuccess
		}
		return TierDiscard
	}
	switch {
	case value == 6:
		return TierCritical
	case value >= 4:
		return TierSuccess
	default:
		return TierDiscard
	}
}

// Die is a single die inside a roll record. Index is assigned per tier
// (the Nth die landing in a tier gets index N, 1-based), so the
// (Tier, Index, Value) triple identifies a die across persistence
// round-trips even though the overall roll order is not stored.
type Die struct {
	Value      int  `json:"value"`
	Index      int  `json:"index"`
	Tier       Tier `json:"tier"`
	Allocated  bool `json:"allocated,omitempty"`
	CrossedOut bool `json:"crossed_out,omitempty"`
}

// Disabled reports whether the die can never be interacted with.
// Non-threat dice below 4 are permanently disabled; clicking them is a no-op.
func (d *Die) Disabled(isAttack bool) bool {
	return !isAttack && d.Value < 4
}

// RollConfig is the metadata stored with player stat rolls. The flashback
// flow needs it to rebuild the original pool composition.
type RollConfig struct {
	StatValue     int    `json:"stat_value"`
	EquipmentDice int    `json:"equipment_dice"`
	AbilityDice   int    `json:"ability_dice"`
	StatLabel     string `json:"stat_label"`
}

// FlashbackPool returns the bonus-adjusted pool size for a flashback reroll:
// the original composition plus two bonus dice, floored at one die.
func (c *RollConfig) FlashbackPool() int {
	size := c.StatValue + c.EquipmentDice + c.AbilityDice + 2
	if size < 1 {
		return 1
	}
	return size
}

// RollRecord is one persisted dice pool outcome. Records are append-only:
// after creation only the per-die allocation state is ever mutated.
type RollRecord struct {
	ID        string `json:"id"`
	ActorID   string `json:"actor_id"`
	OwnerID   string `json:"owner_id"`
	GuildID   string `json:"guild_id"`
	ChannelID string `json:"channel_id"`
	MessageID string `json:"message_id"`

	Flavor   string `json:"flavor"`
	IsAttack bool   `json:"is_attack"`
	Dice     []Die  `json:"dice"`

	Config *RollConfig `json:"config,omitempty"`

	IsFlashback      bool   `json:"is_flashback,omitempty"`
	OriginalRecordID string `json:"original_record_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Role returns the role the record was rolled under.
func (r *RollRecord) Role() Role {
	if r.IsAttack {
		return RoleThreat
	}
	return RolePlayer
}

// FindDie locates a die by its full identity triple. Returns nil when no
// die matches. If the uniqueness invariant is violated the first match wins.
func (r *RollRecord) FindDie(tier Tier, index, value int) *Die {
	for i := range r.Dice {
		d := &r.Dice[i]
		if d.Tier == tier && d.Index == index && d.Value == value {
			return d
		}
	}
	return nil
}

// FindDieAnyTier is the degraded lookup used when the tier of a clicked die
// could not be matched; it ignores the tier and matches on (index, value)
// alone. Less reliable when indices repeat across tiers.
func (r *RollRecord) FindDieAnyTier(index, value int) *Die {
	for i := range r.Dice {
		d := &r.Dice[i]
		if d.Index == index && d.Value == value {
			return d
		}
	}
	return nil
}

// Toggle flips the allocation state of the die appropriate to the record's
// role and returns the resulting "marked" state. Player dice toggle
// allocated, threat dice toggle crossed-out; the counterpart flag is cleared
// unconditionally so the two states stay mutually exclusive.
func (r *RollRecord) Toggle(d *Die) (marked bool, err error) {
	if d == nil {
		return false, etrerr.InvalidArgument("die cannot be nil")
	}
	if d.Disabled(r.IsAttack) {
		return false, etrerr.FailedPrecondition("die is disabled and cannot be toggled")
	}

	if r.IsAttack {
		d.CrossedOut = !d.CrossedOut
		d.Allocated = false
		return d.CrossedOut, nil
	}
	d.Allocated = !d.Allocated
	d.CrossedOut = false
	return d.Allocated, nil
}

// CanModify reports whether the given user may mutate allocation state on
// this record: the record's owner, or a GM-equivalent user.
func (r *RollRecord) CanModify(userID string, isGM bool) bool {
	return isGM || (userID != "" && userID == r.OwnerID)
}
