package handlers

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/etr-bot-discord/internal/discord/builders"
	"github.com/KirkDiggler/etr-bot-discord/internal/discord/core"
	"github.com/KirkDiggler/etr-bot-discord/internal/domain/game"
)

// tierOrder fixes how dice rows are laid out on a roll message.
var tierOrder = []game.Tier{game.TierCritical, game.TierSuccess, game.TierDiscard}

// maxDieButtons caps how many dice get interactive buttons. Discord allows
// five component rows per message and the last row is reserved for actions.
const maxDieButtons = 20

// rollResponse renders a roll record as a message with one button per die.
// Die buttons carry the (tier, index, value) triple in their custom ID so
// a click can be matched back to the stored die.
func rollResponse(record *game.RollRecord, diceIDs, flashbackIDs *core.CustomIDBuilder) *core.Response {
	response := core.NewResponse(rollContent(record))

	components := builders.NewComponentBuilder(diceIDs)
	buttons := 0
	for _, tier := range tierOrder {
		dice := diceInTier(record, tier)
		if len(dice) == 0 {
			continue
		}

		components.NewRow()
		for _, d := range dice {
			if buttons >= maxDieButtons {
				break
			}
			addDieButton(components, record, d, tier)
			buttons++
		}
	}

	rows := components.Build()
	// Five rows max per message, and the action row needs the last one
	if len(rows) > 4 {
		rows = rows[:4]
	}
	rows = append(rows, actionRow(record, diceIDs, flashbackIDs))

	return response.WithComponents(rows...)
}

// actionRow is the last row on every roll message: a flashback entry point
// when the roll qualifies, and an export button for the HTML transcript.
func actionRow(record *game.RollRecord, diceIDs, flashbackIDs *core.CustomIDBuilder) discordgo.MessageComponent {
	var row []discordgo.MessageComponent

	if flashbackAvailable(record) {
		row = append(row, discordgo.Button{
			Label:    "Flashback",
			Style:    discordgo.PrimaryButton,
			CustomID: flashbackIDs.Button("begin", record.ID),
			Emoji:    &discordgo.ComponentEmoji{Name: "🎬"},
		})
	}

	row = append(row, discordgo.Button{
		Label:    "Export",
		Style:    discordgo.SecondaryButton,
		CustomID: diceIDs.Button("export", record.ID),
	})

	return discordgo.ActionsRow{Components: row}
}

func addDieButton(b *builders.ComponentBuilder, record *game.RollRecord, d game.Die, tier game.Tier) {
	label := strconv.Itoa(d.Value)
	if d.Allocated {
		label = "✓ " + label
	}
	if d.CrossedOut {
		label = "✗ " + label
	}

	style := dieStyle(tier)
	args := []string{strconv.Itoa(d.Index), strconv.Itoa(d.Value)}

	if d.Disabled(record.IsAttack) {
		b.DisabledButton(label, style, "toggle", string(tier), args...)
		return
	}
	b.Button(label, style, "toggle", string(tier), args...)
}

func dieStyle(tier game.Tier) discordgo.ButtonStyle {
	switch tier {
	case game.TierCritical:
		return discordgo.SuccessButton
	case game.TierSuccess:
		return discordgo.PrimaryButton
	default:
		return discordgo.SecondaryButton
	}
}

func diceInTier(record *game.RollRecord, tier game.Tier) []game.Die {
	var dice []game.Die
	for _, d := range record.Dice {
		if d.Tier == tier {
			dice = append(dice, d)
		}
	}
	sort.Slice(dice, func(i, j int) bool { return dice[i].Index < dice[j].Index })
	return dice
}

func rollContent(record *game.RollRecord) string {
	var sb strings.Builder
	sb.WriteString("**" + record.Flavor + "**\n")

	criticals := len(diceInTier(record, game.TierCritical))
	successes := len(diceInTier(record, game.TierSuccess))
	discards := len(diceInTier(record, game.TierDiscard))

	if record.IsAttack {
		sb.WriteString(fmt.Sprintf("%s, %s", plural(successes, "success", "successes"), plural(discards, "miss", "misses")))
	} else {
		sb.WriteString(fmt.Sprintf("%s, %s, %s",
			plural(criticals, "critical", "criticals"),
			plural(successes, "success", "successes"),
			plural(discards, "discard", "discards")))
	}

	if record.IsFlashback {
		sb.WriteString("\n*Flashback roll, two bonus dice included*")
	}

	return sb.String()
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, pluralForm)
}

// flashbackAvailable reports whether the roll can spawn a flashback.
// Only player stat rolls that retained their pool composition qualify,
// and a flashback can never chain off another flashback.
func flashbackAvailable(record *game.RollRecord) bool {
	return !record.IsAttack && !record.IsFlashback && record.Config != nil
}
