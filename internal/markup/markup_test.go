package markup_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/etr-bot-discord/internal/domain/game"
	"github.com/KirkDiggler/etr-bot-discord/internal/markup"
)

func playerRecord() *game.RollRecord {
	return &game.RollRecord{
		ID:       "record-1",
		Flavor:   "Shoot check",
		IsAttack: false,
		Dice: []game.Die{
			{Value: 6, Index: 1, Tier: game.TierCritical},
			{Value: 4, Index: 1, Tier: game.TierSuccess},
			{Value: 5, Index: 2, Tier: game.TierSuccess},
			{Value: 2, Index: 1, Tier: game.TierDiscard},
		},
	}
}

func TestRender_WireFormat(t *testing.T) {
	out := markup.Render(playerRecord())

	assert.Contains(t, out, `<section class="dice-roll">`)
	assert.Contains(t, out, `<ol class="dice-rolls">`)
	assert.Contains(t, out, `class="roll die d6 critical" data-die-index="1" data-die-value="6" data-is-attack="false"`)
	assert.Contains(t, out, `class="roll die d6 success" data-die-index="2" data-die-value="5"`)
	assert.Contains(t, out, `class="roll die d6 discard disabled" data-die-index="1" data-die-value="2"`)
	assert.NotContains(t, out, "data-allocated")
	assert.NotContains(t, out, "data-crossed-out")
}

func TestRender_StateAttributes(t *testing.T) {
	record := playerRecord()
	record.Dice[0].Allocated = true

	out := markup.Render(record)
	assert.Contains(t, out, `class="roll die d6 critical allocated"`)
	assert.Contains(t, out, `data-die-value="6" data-is-attack="false" data-allocated="true"`)

	record.Dice[0].Allocated = false
	record.Dice[1].CrossedOut = true

	out = markup.Render(record)
	assert.Contains(t, out, `data-crossed-out="true"`)
	assert.NotContains(t, out, "data-allocated")
}

func TestRender_TierGrouping(t *testing.T) {
	record := &game.RollRecord{
		Dice: []game.Die{
			{Value: 1, Index: 1, Tier: game.TierDiscard},
			{Value: 6, Index: 1, Tier: game.TierCritical},
			{Value: 4, Index: 2, Tier: game.TierSuccess},
			{Value: 5, Index: 1, Tier: game.TierSuccess},
		},
	}

	out := markup.Render(record)

	critical := strings.Index(out, "critical")
	firstSuccess := strings.Index(out, `success" data-die-index="1"`)
	secondSuccess := strings.Index(out, `success" data-die-index="2"`)
	discard := strings.Index(out, "discard")

	assert.Less(t, critical, firstSuccess)
	assert.Less(t, firstSuccess, secondSuccess)
	assert.Less(t, secondSuccess, discard)
}

func TestRender_EscapesFlavor(t *testing.T) {
	record := playerRecord()
	record.Flavor = `Shoot <em>"now"</em> & run`

	out := markup.Render(record)
	assert.Contains(t, out, "Shoot &lt;em&gt;&quot;now&quot;&lt;/em&gt; &amp; run")
}

func TestRoundTrip(t *testing.T) {
	record := playerRecord()
	record.IsAttack = true
	record.Dice[2].Allocated = true

	pool, err := markup.Parse(markup.Render(record))
	require.NoError(t, err)

	require.Len(t, pool.Dice, len(record.Dice))
	assert.True(t, pool.IsAttack)

	for _, want := range record.Dice {
		got := pool.Find(want.Tier, want.Index, want.Value)
		require.NotNil(t, got, "die %s/%d/%d missing after round trip", want.Tier, want.Index, want.Value)
		assert.Equal(t, want.Allocated, got.Allocated)
		assert.Equal(t, want.CrossedOut, got.CrossedOut)
	}
}

func TestParse_SkipsNonDieNodes(t *testing.T) {
	src := `<section><ol class="dice-rolls">` +
		`<li class="roll die d6 success" data-die-index="1" data-die-value="4" data-is-attack="false">4</li>` +
		`<li class="part-total">4</li>` +
		`<li class="roll die d6 discard" data-die-value="oops">?</li>` +
		`</ol></section>`

	pool, err := markup.Parse(src)
	require.NoError(t, err)
	require.Len(t, pool.Dice, 1)
	assert.Equal(t, 4, pool.Dice[0].Value)
}

func TestFind_TierDisambiguates(t *testing.T) {
	pool := &markup.ParsedPool{
		Dice: []game.Die{
			{Value: 4, Index: 1, Tier: game.TierSuccess},
			{Value: 4, Index: 1, Tier: game.TierDiscard, CrossedOut: true},
		},
	}

	got := pool.Find(game.TierDiscard, 1, 4)
	require.NotNil(t, got)
	assert.True(t, got.CrossedOut)

	assert.Nil(t, pool.Find(game.TierCritical, 1, 4))
}

func TestFindAnyTier_Fallback(t *testing.T) {
	pool := &markup.ParsedPool{
		Dice: []game.Die{
			{Value: 5, Index: 2, Tier: game.TierSuccess},
		},
	}

	assert.NotNil(t, pool.FindAnyTier(2, 5))
	assert.Nil(t, pool.FindAnyTier(2, 6))
}

func TestPresentationClasses(t *testing.T) {
	d := &game.Die{Value: 2, Index: 1, Tier: game.TierDiscard}
	assert.Equal(t, []string{"roll", "die", "d6", "discard", "disabled"}, markup.PresentationClasses(d, false))

	d.CrossedOut = true
	assert.Equal(t, []string{"roll", "die", "d6", "discard", "crossed-out"}, markup.PresentationClasses(d, true))

	a := &game.Die{Value: 6, Index: 1, Tier: game.TierCritical, Allocated: true}
	assert.Equal(t, []string{"roll", "die", "d6", "critical", "allocated"}, markup.PresentationClasses(a, false))
}
