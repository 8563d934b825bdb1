package game

import "time"

// ActorKind separates playable characters from GM-run actors.
type ActorKind string

const (
	ActorCharacter ActorKind = "character"
	ActorNPC       ActorKind = "npc"
	ActorLocation  ActorKind = "location"
)

// Stat is one of the seven Eat the Reich stats.
type Stat string

const (
	StatBrawl   Stat = "brawl"
	StatCon     Stat = "con"
	StatFix     Stat = "fix"
	StatSearch  Stat = "search"
	StatShoot   Stat = "shoot"
	StatSneak   Stat = "sneak"
	StatTerrify Stat = "terrify"
)

// Stats lists all stats in sheet order.
var Stats = []Stat{StatBrawl, StatCon, StatFix, StatSearch, StatShoot, StatSneak, StatTerrify}

// StatLabels maps stats to their display names.
var StatLabels = map[Stat]string{
	StatBrawl:   "Brawl",
	StatCon:     "Con",
	StatFix:     "Fix",
	StatSearch:  "Search",
	StatShoot:   "Shoot",
	StatSneak:   "Sneak",
	StatTerrify: "Terrify",
}

// LastStand is a character's last stand: a named final action with its own
// dice pool, rolled when the character goes down swinging.
type LastStand struct {
	Name string `json:"name"`
	Dice int    `json:"dice"`
}

// Threat is the escalating danger track on NPCs. Attack is the dice pool
// the NPC rolls against the players.
type Threat struct {
	Value  int `json:"value"`
	Max    int `json:"max"`
	Attack int `json:"attack"`
}

// Actor is the subset of a character/NPC/location sheet the dice engine
// needs: identity, ownership, and the numbers pools are built from. Full
// sheet data (items, advances, descriptions) lives outside this bot.
type Actor struct {
	ID      string    `json:"id"`
	OwnerID string    `json:"owner_id"`
	GuildID string    `json:"guild_id"`
	Name    string    `json:"name"`
	Kind    ActorKind `json:"kind"`

	Stats map[Stat]int `json:"stats,omitempty"`
	Blood int          `json:"blood,omitempty"`

	LastStand *LastStand `json:"last_stand,omitempty"`
	Threat    *Threat    `json:"threat,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasPlayerOwner reports whether a player (not the GM) owns this actor.
func (a *Actor) HasPlayerOwner() bool {
	return a.OwnerID != ""
}

// StatValue returns the actor's value for a stat, zero if unset.
func (a *Actor) StatValue(stat Stat) int {
	if a.Stats == nil {
		return 0
	}
	return a.Stats[stat]
}

// InjurySeverity buckets a 1d6 injury roll into its severity band.
func InjurySeverity(value int) string {
	switch {
	case value <= 2:
		return "Minor injury (1-2)"
	case value <= 4:
		return "Serious injury (3-4)"
	default:
		return "Deadly injury (5-6)"
	}
}
