// Package markup renders roll records to the attribute-based die markup
// and parses that markup back into structured dice.
//
// The markup matches the chat-card format tabletop VTT hosts expect. Here
// the structured record is authoritative and the markup is a regenerable
// view, kept byte-compatible so exported rolls can still be dropped into a
// VTT chat log: one node per die carrying its presentation classes plus
// data-die-index, data-die-value, data-is-attack, and the optional
// data-allocated / data-crossed-out state attributes.
package markup

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KirkDiggler/etr-bot-discord/internal/domain/game"
)

// tierOrder is the rendering order of the tier partitions.
var tierOrder = []game.Tier{game.TierCritical, game.TierSuccess, game.TierDiscard}

// Render serializes a record's dice into the die-pool markup. Dice are
// grouped by tier and ordered by their per-tier index, matching how the
// pool template lays them out.
func Render(record *game.RollRecord) string {
	var b strings.Builder

	b.WriteString(`<section class="dice-roll">`)
	if record.Flavor != "" {
		fmt.Fprintf(&b, `<h4 class="dice-flavor">%s</h4>`, escape(record.Flavor))
	}
	b.WriteString(`<div class="dice-result"><ol class="dice-rolls">`)

	for _, tier := range tierOrder {
		dice := diceInTier(record, tier)
		sort.Slice(dice, func(i, j int) bool { return dice[i].Index < dice[j].Index })
		for _, d := range dice {
			writeDie(&b, d, record.IsAttack)
		}
	}

	b.WriteString(`</ol></div></section>`)
	return b.String()
}

func diceInTier(record *game.RollRecord, tier game.Tier) []game.Die {
	var out []game.Die
	for _, d := range record.Dice {
		if d.Tier == tier {
			out = append(out, d)
		}
	}
	return out
}

func writeDie(b *strings.Builder, d game.Die, isAttack bool) {
	fmt.Fprintf(b,
		`<li class="%s" data-die-index="%d" data-die-value="%d" data-is-attack="%t"`,
		strings.Join(PresentationClasses(&d, isAttack), " "), d.Index, d.Value, isAttack,
	)
	if d.Allocated {
		b.WriteString(` data-allocated="true"`)
	}
	if d.CrossedOut {
		b.WriteString(` data-crossed-out="true"`)
	}
	fmt.Fprintf(b, `>%d</li>`, d.Value)
}

// escape covers the characters that matter inside the flavor heading.
func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

// PresentationClasses returns the CSS classes a die renders with. It is a
// pure function of tier, role, and allocation state, recomputable at any
// time, and is never part of the persisted record.
func PresentationClasses(d *game.Die, isAttack bool) []string {
	classes := []string{"roll", "die", "d6", string(d.Tier)}
	if d.Allocated {
		classes = append(classes, "allocated")
	}
	if d.CrossedOut {
		classes = append(classes, "crossed-out")
	}
	if d.Disabled(isAttack) {
		classes = append(classes, "disabled")
	}
	return classes
}
