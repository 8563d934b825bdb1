package roll_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/etr-bot-discord/internal/dice"
	"github.com/KirkDiggler/etr-bot-discord/internal/domain/game"
	etrerr "github.com/KirkDiggler/etr-bot-discord/internal/errors"
	"github.com/KirkDiggler/etr-bot-discord/internal/repositories/actors"
	"github.com/KirkDiggler/etr-bot-discord/internal/repositories/rollrecords"
	"github.com/KirkDiggler/etr-bot-discord/internal/services/roll"
)

type RollServiceTestSuite struct {
	suite.Suite
	roller  *dice.MockRoller
	records rollrecords.Repository
	actors  actors.Repository
	svc     roll.Service
	ctx     context.Context
}

func (s *RollServiceTestSuite) SetupTest() {
	s.roller = dice.NewMockRoller()
	s.records = rollrecords.NewInMemoryRepository()
	s.actors = actors.NewInMemoryRepository()
	s.svc = roll.NewService(&roll.ServiceConfig{
		Roller:           s.roller,
		RecordRepository: s.records,
		ActorRepository:  s.actors,
	})
	s.ctx = context.Background()
}

func TestRollServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RollServiceTestSuite))
}

func (s *RollServiceTestSuite) createActor(actor *game.Actor) *game.Actor {
	if actor.GuildID == "" {
		actor.GuildID = "guild-1"
	}
	s.Require().NoError(s.actors.Create(s.ctx, actor))
	return actor
}

func (s *RollServiceTestSuite) TestRollStat() {
	s.createActor(&game.Actor{
		ID:      "actor-1",
		OwnerID: "user-1",
		Name:    "Ilse",
		Kind:    game.ActorCharacter,
		Stats:   map[game.Stat]int{game.StatShoot: 2},
	})

	// 2 stat + 1 equipment + 1 ability
	s.roller.SetRolls([]int{6, 4, 2, 5})

	record, err := s.svc.RollStat(s.ctx, &roll.RollStatInput{
		ActorID:       "actor-1",
		OwnerID:       "user-1",
		GuildID:       "guild-1",
		ChannelID:     "channel-1",
		Stat:          game.StatShoot,
		EquipmentDice: 1,
		AbilityDice:   1,
	})
	s.Require().NoError(err)

	s.NotEmpty(record.ID)
	s.Equal("Ilse rolls Shoot", record.Flavor)
	s.False(record.IsAttack)
	s.Len(record.Dice, 4)

	s.Require().NotNil(record.Config)
	s.Equal(2, record.Config.StatValue)
	s.Equal(1, record.Config.EquipmentDice)
	s.Equal(1, record.Config.AbilityDice)
	s.Equal("Shoot", record.Config.StatLabel)

	// Persisted
	stored, err := s.records.Get(s.ctx, record.ID)
	s.Require().NoError(err)
	s.Equal(record.Flavor, stored.Flavor)
}

func (s *RollServiceTestSuite) TestRollStat_ZeroStatStillRollsOneDie() {
	s.createActor(&game.Actor{
		ID:      "actor-1",
		OwnerID: "user-1",
		Name:    "Ilse",
		Kind:    game.ActorCharacter,
	})

	s.roller.SetRolls([]int{3})

	record, err := s.svc.RollStat(s.ctx, &roll.RollStatInput{
		ActorID:   "actor-1",
		OwnerID:   "user-1",
		GuildID:   "guild-1",
		ChannelID: "channel-1",
		Stat:      game.StatSneak,
	})
	s.Require().NoError(err)
	s.Len(record.Dice, 1)
}

func (s *RollServiceTestSuite) TestRollStat_UnknownStat() {
	s.createActor(&game.Actor{
		ID:      "actor-1",
		OwnerID: "user-1",
		Name:    "Ilse",
		Kind:    game.ActorCharacter,
	})

	_, err := s.svc.RollStat(s.ctx, &roll.RollStatInput{
		ActorID: "actor-1",
		Stat:    game.Stat("charisma"),
	})
	s.True(etrerr.IsInvalidArgument(err))
}

func (s *RollServiceTestSuite) TestRollAttack_FromThreatPool() {
	s.createActor(&game.Actor{
		ID:     "npc-1",
		Name:   "Panzer Kommandant",
		Kind:   game.ActorNPC,
		Threat: &game.Threat{Value: 3, Max: 6, Attack: 3},
	})

	s.roller.SetRolls([]int{5, 3, 6})

	record, err := s.svc.RollAttack(s.ctx, &roll.RollAttackInput{
		ActorID:   "npc-1",
		OwnerID:   "gm-1",
		GuildID:   "guild-1",
		ChannelID: "channel-1",
	})
	s.Require().NoError(err)

	s.True(record.IsAttack)
	s.Equal("Panzer Kommandant attacks", record.Flavor)
	s.Len(record.Dice, 3)
	s.Nil(record.Config)

	// Threat tiers: 4-6 success, 1-3 discard, never critical
	for _, d := range record.Dice {
		s.NotEqual(game.TierCritical, d.Tier)
	}
}

func (s *RollServiceTestSuite) TestRollAttack_ExplicitDiceWithoutActor() {
	s.roller.SetRolls([]int{4, 1})

	record, err := s.svc.RollAttack(s.ctx, &roll.RollAttackInput{
		OwnerID:   "gm-1",
		GuildID:   "guild-1",
		ChannelID: "channel-1",
		Dice:      2,
	})
	s.Require().NoError(err)
	s.True(record.IsAttack)
	s.Equal("Threat attack", record.Flavor)
	s.Len(record.Dice, 2)
}

func (s *RollServiceTestSuite) TestRollAttack_NoThreatPool() {
	s.createActor(&game.Actor{
		ID:      "actor-1",
		OwnerID: "user-1",
		Name:    "Ilse",
		Kind:    game.ActorCharacter,
	})

	_, err := s.svc.RollAttack(s.ctx, &roll.RollAttackInput{
		ActorID: "actor-1",
		OwnerID: "gm-1",
	})
	s.True(etrerr.IsFailedPrecondition(err))
}

func (s *RollServiceTestSuite) TestRollLastStand() {
	s.createActor(&game.Actor{
		ID:        "actor-1",
		OwnerID:   "user-1",
		Name:      "Ilse",
		Kind:      game.ActorCharacter,
		LastStand: &game.LastStand{Name: "One Last Cigarette", Dice: 3},
	})

	s.roller.SetRolls([]int{6, 6, 1})

	record, err := s.svc.RollLastStand(s.ctx, &roll.RollLastStandInput{
		ActorID:   "actor-1",
		OwnerID:   "user-1",
		GuildID:   "guild-1",
		ChannelID: "channel-1",
	})
	s.Require().NoError(err)

	s.Equal("Ilse: One Last Cigarette", record.Flavor)
	s.False(record.IsAttack)
	s.Len(record.Dice, 3)
	s.Nil(record.Config, "last stands cannot flash back")
}

func (s *RollServiceTestSuite) TestRollLastStand_Missing() {
	s.createActor(&game.Actor{
		ID:      "actor-1",
		OwnerID: "user-1",
		Name:    "Ilse",
		Kind:    game.ActorCharacter,
	})

	_, err := s.svc.RollLastStand(s.ctx, &roll.RollLastStandInput{ActorID: "actor-1"})
	s.True(etrerr.IsFailedPrecondition(err))
}

func (s *RollServiceTestSuite) TestRollInjury() {
	s.roller.SetRolls([]int{3})

	result, err := s.svc.RollInjury(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, result.Value)
	s.Equal("Serious injury (3-4)", result.Severity)
}

func (s *RollServiceTestSuite) TestAttachMessage() {
	s.createActor(&game.Actor{
		ID:      "actor-1",
		OwnerID: "user-1",
		Name:    "Ilse",
		Kind:    game.ActorCharacter,
		Stats:   map[game.Stat]int{game.StatShoot: 1},
	})
	s.roller.SetRolls([]int{4})

	record, err := s.svc.RollStat(s.ctx, &roll.RollStatInput{
		ActorID:   "actor-1",
		OwnerID:   "user-1",
		GuildID:   "guild-1",
		ChannelID: "channel-1",
		Stat:      game.StatShoot,
	})
	s.Require().NoError(err)

	s.Require().NoError(s.svc.AttachMessage(s.ctx, record.ID, "message-1"))

	got, err := s.records.GetByMessage(s.ctx, "message-1")
	s.Require().NoError(err)
	s.Equal(record.ID, got.ID)
}

func (s *RollServiceTestSuite) TestImport_PreservesDiceState() {
	record, err := s.svc.Import(s.ctx, &roll.ImportInput{
		OwnerID:   "user-1",
		GuildID:   "guild-1",
		ChannelID: "channel-1",
		Flavor:    "Recovered Shoot check",
		Dice: []game.Die{
			{Value: 6, Index: 1, Tier: game.TierCritical, Allocated: true},
			{Value: 4, Index: 1, Tier: game.TierSuccess, CrossedOut: true},
			{Value: 2, Index: 1, Tier: game.TierDiscard},
		},
	})
	s.Require().NoError(err)
	s.Require().NotEmpty(record.ID)

	got, err := s.svc.GetRecord(s.ctx, record.ID)
	s.Require().NoError(err)

	s.Equal("Recovered Shoot check", got.Flavor)
	s.Require().Len(got.Dice, 3)
	s.True(got.Dice[0].Allocated)
	s.True(got.Dice[1].CrossedOut)
	s.False(got.IsAttack)
	s.Nil(got.Config, "imported rolls carry no stat configuration")
}

func (s *RollServiceTestSuite) TestImport_DefaultsFlavorAndRequiresDice() {
	record, err := s.svc.Import(s.ctx, &roll.ImportInput{
		OwnerID:  "user-1",
		GuildID:  "guild-1",
		IsAttack: true,
		Dice:     []game.Die{{Value: 5, Index: 1, Tier: game.TierSuccess}},
	})
	s.Require().NoError(err)
	s.Equal("Imported roll", record.Flavor)
	s.True(record.IsAttack)

	_, err = s.svc.Import(s.ctx, &roll.ImportInput{OwnerID: "user-1"})
	s.True(etrerr.IsInvalidArgument(err))
}
