package flashback_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/etr-bot-discord/internal/dice"
	"github.com/KirkDiggler/etr-bot-discord/internal/domain/game"
	etrerr "github.com/KirkDiggler/etr-bot-discord/internal/errors"
	"github.com/KirkDiggler/etr-bot-discord/internal/repositories/actors"
	"github.com/KirkDiggler/etr-bot-discord/internal/repositories/flashbackprompts"
	"github.com/KirkDiggler/etr-bot-discord/internal/repositories/rollrecords"
	"github.com/KirkDiggler/etr-bot-discord/internal/services/flashback"
)

type FlashbackServiceTestSuite struct {
	suite.Suite
	roller  *dice.MockRoller
	records rollrecords.Repository
	actors  actors.Repository
	svc     flashback.Service
	ctx     context.Context
}

func (s *FlashbackServiceTestSuite) SetupTest() {
	s.roller = dice.NewMockRoller()
	s.records = rollrecords.NewInMemoryRepository()
	s.actors = actors.NewInMemoryRepository()
	s.svc = flashback.NewService(&flashback.ServiceConfig{
		Roller:           s.roller,
		RecordRepository: s.records,
		ActorRepository:  s.actors,
		PromptRepository: flashbackprompts.NewInMemoryRepository(),
	})
	s.ctx = context.Background()
}

func TestFlashbackServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FlashbackServiceTestSuite))
}

func (s *FlashbackServiceTestSuite) createOriginal() *game.RollRecord {
	s.createCharacter("actor-1", "user-1", "Ilse")
	record := &game.RollRecord{
		ActorID:   "actor-1",
		OwnerID:   "user-1",
		GuildID:   "guild-1",
		ChannelID: "channel-1",
		MessageID: "message-1",
		Flavor:    "Ilse rolls Shoot",
		Dice: []game.Die{
			{Value: 6, Index: 1, Tier: game.TierCritical},
		},
		Config: &game.RollConfig{
			StatValue:     2,
			EquipmentDice: 1,
			AbilityDice:   0,
			StatLabel:     "Shoot",
		},
	}
	s.Require().NoError(s.records.Create(s.ctx, record))
	return record
}

func (s *FlashbackServiceTestSuite) createCharacter(id, ownerID, name string) {
	s.Require().NoError(s.actors.Create(s.ctx, &game.Actor{
		ID:      id,
		OwnerID: ownerID,
		GuildID: "guild-1",
		Name:    name,
		Kind:    game.ActorCharacter,
	}))
}

func (s *FlashbackServiceTestSuite) begin(recordID string) {
	s.Require().NoError(s.svc.Begin(s.ctx, &flashback.BeginInput{
		UserID:    "user-1",
		GuildID:   "guild-1",
		ChannelID: "channel-1",
		RecordID:  recordID,
		Choice: game.FlashbackChoice{
			Context:       game.FlashbackContexts["training"],
			Question:      game.FlashbackQuestions["promise"],
			CharacterName: "Klara",
		},
	}))
}

func (s *FlashbackServiceTestSuite) TestConfirm_CreatesLinkedRecord() {
	original := s.createOriginal()
	s.begin(original.ID)

	// 2 stat + 1 equipment + 0 ability + 2 bonus dice
	s.roller.SetRolls([]int{6, 5, 4, 2, 1})

	record, err := s.svc.Confirm(s.ctx, &flashback.ConfirmInput{
		UserID:      "user-1",
		Description: "I swore I'd never leave her behind.",
	})
	s.Require().NoError(err)

	s.True(record.IsFlashback)
	s.Equal(original.ID, record.OriginalRecordID)
	s.Equal("user-1", record.OwnerID)
	s.Len(record.Dice, 5)
	s.False(record.IsAttack)

	s.Contains(record.Flavor, "Flashback (Shoot)")
	s.Contains(record.Flavor, "What did you promise Klara you would never do again?")
	s.Contains(record.Flavor, "I swore I'd never leave her behind.")

	// The prompt is consumed
	_, err = s.svc.Pending(s.ctx, "user-1")
	s.True(etrerr.IsNotFound(err))
}

func (s *FlashbackServiceTestSuite) TestConfirm_PoolFloorsAtOne() {
	original := s.createOriginal()
	original.Config = &game.RollConfig{StatValue: -4, StatLabel: "Shoot"}
	s.Require().NoError(s.records.Update(s.ctx, original))
	s.begin(original.ID)

	s.roller.SetRolls([]int{4})

	record, err := s.svc.Confirm(s.ctx, &flashback.ConfirmInput{UserID: "user-1"})
	s.Require().NoError(err)
	s.Len(record.Dice, 1)
}

func (s *FlashbackServiceTestSuite) TestConfirm_WithoutPending() {
	_, err := s.svc.Confirm(s.ctx, &flashback.ConfirmInput{UserID: "user-1"})
	s.True(etrerr.IsNotFound(err))
}

func (s *FlashbackServiceTestSuite) TestCancel_CreatesNothing() {
	original := s.createOriginal()
	s.begin(original.ID)

	s.Require().NoError(s.svc.Cancel(s.ctx, "user-1"))

	_, err := s.svc.Confirm(s.ctx, &flashback.ConfirmInput{UserID: "user-1"})
	s.True(etrerr.IsNotFound(err))

	records, err := s.records.ListByOwner(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Len(records, 1, "only the original record should exist")
	s.False(records[0].IsFlashback)
}

func (s *FlashbackServiceTestSuite) TestBegin_RequiresRollConfig() {
	record := &game.RollRecord{
		OwnerID:   "gm-1",
		GuildID:   "guild-1",
		ChannelID: "channel-1",
		IsAttack:  true,
		Dice:      []game.Die{{Value: 5, Index: 1, Tier: game.TierSuccess}},
	}
	s.Require().NoError(s.records.Create(s.ctx, record))

	err := s.svc.Begin(s.ctx, &flashback.BeginInput{
		UserID:   "gm-1",
		RecordID: record.ID,
	})
	s.True(etrerr.IsFailedPrecondition(err))
}

func (s *FlashbackServiceTestSuite) TestBegin_RejectsFlashbackRecord() {
	original := s.createOriginal()
	original.IsFlashback = true
	s.Require().NoError(s.records.Update(s.ctx, original))

	err := s.svc.Begin(s.ctx, &flashback.BeginInput{
		UserID:   "user-1",
		RecordID: original.ID,
	})
	s.True(etrerr.IsFailedPrecondition(err))
}

func (s *FlashbackServiceTestSuite) TestBegin_RequiresRegisteredSpeaker() {
	record := &game.RollRecord{
		ActorID:   "actor-gone",
		OwnerID:   "user-1",
		GuildID:   "guild-1",
		ChannelID: "channel-1",
		Dice:      []game.Die{{Value: 6, Index: 1, Tier: game.TierCritical}},
		Config:    &game.RollConfig{StatValue: 2, StatLabel: "Shoot"},
	}
	s.Require().NoError(s.records.Create(s.ctx, record))

	err := s.svc.Begin(s.ctx, &flashback.BeginInput{
		UserID:   "user-1",
		RecordID: record.ID,
	})
	s.True(etrerr.IsFailedPrecondition(err))
}

func (s *FlashbackServiceTestSuite) TestConfirm_SpeakerDeletedAfterBegin() {
	original := s.createOriginal()
	s.begin(original.ID)

	s.Require().NoError(s.actors.Delete(s.ctx, "actor-1"))

	_, err := s.svc.Confirm(s.ctx, &flashback.ConfirmInput{UserID: "user-1"})
	s.True(etrerr.IsFailedPrecondition(err))

	records, err := s.records.ListByOwner(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Len(records, 1, "deleting the speaker must not leave a flashback record")
	s.False(records[0].IsFlashback)
}

func (s *FlashbackServiceTestSuite) TestOptions_ExcludesSelfAndNonCharacters() {
	s.createCharacter("actor-1", "user-1", "Ilse")
	s.createCharacter("actor-2", "user-2", "Klara")
	s.createCharacter("actor-3", "user-3", "Yuri")
	s.Require().NoError(s.actors.Create(s.ctx, &game.Actor{
		ID:      "npc-1",
		GuildID: "guild-1",
		Name:    "Gestapo Officer",
		Kind:    game.ActorNPC,
	}))

	opts, err := s.svc.Options(s.ctx, &flashback.OptionsInput{
		GuildID: "guild-1",
		ActorID: "actor-1",
	})
	s.Require().NoError(err)

	var names []string
	for _, o := range opts.Characters {
		names = append(names, o.Key)
	}
	s.Equal([]string{"Klara", "Yuri", game.CustomOption}, names)

	s.Len(opts.Contexts, len(game.FlashbackContextKeys)+1)
	s.Len(opts.Questions, len(game.FlashbackQuestionKeys)+1)
	s.Equal(game.CustomOption, opts.Contexts[len(opts.Contexts)-1].Key)
	s.Equal(game.CustomOption, opts.Questions[len(opts.Questions)-1].Key)
}

func (s *FlashbackServiceTestSuite) TestRandomize() {
	s.createCharacter("actor-1", "user-1", "Ilse")
	s.createCharacter("actor-2", "user-2", "Klara")

	// context pick, question pick, character pick
	s.roller.SetRolls([]int{1, 2, 1})

	choice, err := s.svc.Randomize(s.ctx, &flashback.OptionsInput{
		GuildID: "guild-1",
		ActorID: "actor-1",
	})
	s.Require().NoError(err)

	s.Equal(game.FlashbackContexts["training"], choice.Context)
	s.Equal(game.FlashbackQuestions["warning"], choice.Question)
	s.Equal("Klara", choice.CharacterName)
}
