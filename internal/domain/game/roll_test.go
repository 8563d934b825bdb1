package game_test

import (
	"testing"

	"github.com/KirkDiggler/etr-bot-discord/internal/domain/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyDie(t *testing.T) {
	tests := []struct {
		value int
		role  game.Role
		want  game.Tier
	}{
		{6, game.RolePlayer, game.TierCritical},
		{5, game.RolePlayer, game.TierSuccess},
		{4, game.RolePlayer, game.TierSuccess},
		{3, game.RolePlayer, game.TierDiscard},
		{2, game.RolePlayer, game.TierDiscard},
		{1, game.RolePlayer, game.TierDiscard},
		{6, game.RoleThreat, game.TierSuccess},
		{5, game.RoleThreat, game.TierSuccess},
		{4, game.RoleThreat, game.TierSuccess},
		{3, game.RoleThreat, game.TierDiscard},
		{1, game.RoleThreat, game.TierDiscard},
	}

	for _, tt := range tests {
		got := game.ClassifyDie(tt.value, tt.role)
		assert.Equal(t, tt.want, got, "value %d role %s", tt.value, tt.role)
	}
}

func TestRollRecord_ToggleIdempotence(t *testing.T) {
	record := &game.RollRecord{
		Dice: []game.Die{{Value: 5, Index: 1, Tier: game.TierSuccess}},
	}
	die := &record.Dice[0]

	marked, err := record.Toggle(die)
	require.NoError(t, err)
	assert.True(t, marked)
	assert.True(t, die.Allocated)

	marked, err = record.Toggle(die)
	require.NoError(t, err)
	assert.False(t, marked)
	assert.False(t, die.Allocated)
	assert.False(t, die.CrossedOut, "player die never jumps to crossed-out")
}

func TestRollRecord_ToggleMutualExclusivity(t *testing.T) {
	record := &game.RollRecord{
		IsAttack: true,
		Dice:     []game.Die{{Value: 2, Index: 1, Tier: game.TierDiscard, Allocated: true}},
	}
	die := &record.Dice[0]

	// A threat toggle clears any stale allocated flag.
	marked, err := record.Toggle(die)
	require.NoError(t, err)
	assert.True(t, marked)
	assert.True(t, die.CrossedOut)
	assert.False(t, die.Allocated)
	assert.False(t, die.Allocated && die.CrossedOut)
}

func TestRollRecord_ToggleDisabledDieFails(t *testing.T) {
	record := &game.RollRecord{
		Dice: []game.Die{{Value: 2, Index: 1, Tier: game.TierDiscard}},
	}
	die := &record.Dice[0]

	_, err := record.Toggle(die)
	assert.Error(t, err)
	assert.False(t, die.Allocated)
	assert.False(t, die.CrossedOut)
}

func TestDie_Disabled(t *testing.T) {
	// Player dice below 4 are disabled; threat dice never are.
	assert.True(t, (&game.Die{Value: 3}).Disabled(false))
	assert.True(t, (&game.Die{Value: 1}).Disabled(false))
	assert.False(t, (&game.Die{Value: 4}).Disabled(false))
	assert.False(t, (&game.Die{Value: 6}).Disabled(false))
	assert.False(t, (&game.Die{Value: 1}).Disabled(true))
	assert.False(t, (&game.Die{Value: 3}).Disabled(true))
}

func TestRollRecord_FindDie(t *testing.T) {
	record := &game.RollRecord{
		Dice: []game.Die{
			{Value: 6, Index: 1, Tier: game.TierCritical},
			{Value: 4, Index: 1, Tier: game.TierSuccess},
			{Value: 4, Index: 2, Tier: game.TierSuccess},
			{Value: 2, Index: 1, Tier: game.TierDiscard},
		},
	}

	die := record.FindDie(game.TierSuccess, 2, 4)
	require.NotNil(t, die)
	assert.Equal(t, 2, die.Index)

	assert.Nil(t, record.FindDie(game.TierCritical, 2, 6))

	// Fallback lookup ignores tier.
	die = record.FindDieAnyTier(1, 2)
	require.NotNil(t, die)
	assert.Equal(t, game.TierDiscard, die.Tier)
}

func TestRollRecord_CanModify(t *testing.T) {
	record := &game.RollRecord{OwnerID: "user-1"}

	assert.True(t, record.CanModify("user-1", false))
	assert.False(t, record.CanModify("user-2", false))
	assert.True(t, record.CanModify("user-2", true), "GM may modify any record")
	assert.False(t, record.CanModify("", false))
}

func TestRollConfig_FlashbackPool(t *testing.T) {
	cfg := &game.RollConfig{StatValue: 2, EquipmentDice: 1, AbilityDice: 0}
	assert.Equal(t, 5, cfg.FlashbackPool())

	// Floored at one die even for degenerate configs.
	cfg = &game.RollConfig{StatValue: -4, EquipmentDice: 0, AbilityDice: 0}
	assert.Equal(t, 1, cfg.FlashbackPool())
}

func TestResolveQuestion(t *testing.T) {
	q := game.ResolveQuestion(game.FlashbackQuestions["promise"], "Chuck")
	assert.Equal(t, "What did you promise Chuck you would never do again?", q)

	// Custom question without a placeholder passes through untouched.
	assert.Equal(t, "Why here?", game.ResolveQuestion("Why here?", "Chuck"))
}

func TestInjurySeverity(t *testing.T) {
	assert.Contains(t, game.InjurySeverity(1), "1-2")
	assert.Contains(t, game.InjurySeverity(2), "1-2")
	assert.Contains(t, game.InjurySeverity(3), "3-4")
	assert.Contains(t, game.InjurySeverity(4), "3-4")
	assert.Contains(t, game.InjurySeverity(5), "5-6")
	assert.Contains(t, game.InjurySeverity(6), "5-6")
}

func TestFlashbackOptionSets(t *testing.T) {
	require.Len(t, game.FlashbackContextKeys, 6)
	require.Len(t, game.FlashbackQuestionKeys, 6)

	for _, key := range game.FlashbackContextKeys {
		assert.NotEmpty(t, game.FlashbackContexts[key], "context %s", key)
	}
	for _, key := range game.FlashbackQuestionKeys {
		assert.Contains(t, game.FlashbackQuestions[key], game.CharacterPlaceholder, "question %s", key)
	}
}
