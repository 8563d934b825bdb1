package rollrecords_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/etr-bot-discord/internal/domain/game"
	etrerr "github.com/KirkDiggler/etr-bot-discord/internal/errors"
	"github.com/KirkDiggler/etr-bot-discord/internal/repositories/rollrecords"
)

type IntegrationTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	repo      rollrecords.Repository
	ctx       context.Context
}

func (s *IntegrationTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.miniRedis = mr

	s.repo = rollrecords.NewRedisRepository(&rollrecords.RedisRepoConfig{
		Client: redis.NewClient(&redis.Options{
			Addr: s.miniRedis.Addr(),
		}),
	})

	s.ctx = context.Background()
}

func (s *IntegrationTestSuite) TearDownTest() {
	s.miniRedis.Close()
}

func TestIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}

func (s *IntegrationTestSuite) newRecord(messageID string) *game.RollRecord {
	return &game.RollRecord{
		OwnerID:   "user-1",
		GuildID:   "guild-1",
		ChannelID: "channel-1",
		MessageID: messageID,
		Flavor:    "Sneak check",
		Dice: []game.Die{
			{Value: 6, Index: 1, Tier: game.TierCritical},
			{Value: 4, Index: 1, Tier: game.TierSuccess},
			{Value: 1, Index: 1, Tier: game.TierDiscard},
		},
	}
}

func (s *IntegrationTestSuite) TestFullRecordLifecycle() {
	record := s.newRecord("message-1")

	s.Require().NoError(s.repo.Create(s.ctx, record))
	s.NotEmpty(record.ID)
	s.False(record.CreatedAt.IsZero())

	got, err := s.repo.Get(s.ctx, record.ID)
	s.Require().NoError(err)
	s.Equal(record.Flavor, got.Flavor)
	s.Len(got.Dice, 3)

	byMessage, err := s.repo.GetByMessage(s.ctx, "message-1")
	s.Require().NoError(err)
	s.Equal(record.ID, byMessage.ID)

	got.Dice[0].Allocated = true
	time.Sleep(time.Millisecond)
	s.Require().NoError(s.repo.Update(s.ctx, got))

	updated, err := s.repo.Get(s.ctx, record.ID)
	s.Require().NoError(err)
	s.True(updated.Dice[0].Allocated)
	s.True(updated.UpdatedAt.After(updated.CreatedAt))

	s.Require().NoError(s.repo.Delete(s.ctx, record.ID))

	_, err = s.repo.Get(s.ctx, record.ID)
	s.True(etrerr.IsNotFound(err))

	_, err = s.repo.GetByMessage(s.ctx, "message-1")
	s.True(etrerr.IsNotFound(err))
}

func (s *IntegrationTestSuite) TestListByOwner() {
	first := s.newRecord("message-1")
	second := s.newRecord("message-2")
	other := s.newRecord("message-3")
	other.OwnerID = "user-2"

	s.Require().NoError(s.repo.Create(s.ctx, first))
	s.Require().NoError(s.repo.Create(s.ctx, second))
	s.Require().NoError(s.repo.Create(s.ctx, other))

	records, err := s.repo.ListByOwner(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Len(records, 2)

	for _, r := range records {
		s.Equal("user-1", r.OwnerID)
	}
}

func (s *IntegrationTestSuite) TestLinkedFlashbackRecord() {
	original := s.newRecord("message-1")
	original.Config = &game.RollConfig{StatValue: 2, EquipmentDice: 1, StatLabel: "Shoot"}
	s.Require().NoError(s.repo.Create(s.ctx, original))

	flashback := s.newRecord("message-2")
	flashback.IsFlashback = true
	flashback.OriginalRecordID = original.ID
	s.Require().NoError(s.repo.Create(s.ctx, flashback))

	got, err := s.repo.Get(s.ctx, flashback.ID)
	s.Require().NoError(err)
	s.True(got.IsFlashback)
	s.Equal(original.ID, got.OriginalRecordID)

	linked, err := s.repo.Get(s.ctx, got.OriginalRecordID)
	s.Require().NoError(err)
	s.Equal("Shoot", linked.Config.StatLabel)
}
