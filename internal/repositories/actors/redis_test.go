package actors_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/etr-bot-discord/internal/domain/game"
	etrerr "github.com/KirkDiggler/etr-bot-discord/internal/errors"
	"github.com/KirkDiggler/etr-bot-discord/internal/repositories/actors"
)

type RedisRepoTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	repo      actors.Repository
	ctx       context.Context
}

func (s *RedisRepoTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.miniRedis = mr

	s.repo = actors.NewRedisRepository(&actors.RedisRepoConfig{
		Client: redis.NewClient(&redis.Options{
			Addr: s.miniRedis.Addr(),
		}),
	})

	s.ctx = context.Background()
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.miniRedis.Close()
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func (s *RedisRepoTestSuite) newCharacter(name, ownerID string) *game.Actor {
	return &game.Actor{
		OwnerID: ownerID,
		GuildID: "guild-1",
		Name:    name,
		Kind:    game.ActorCharacter,
		Stats: map[game.Stat]int{
			game.StatBrawl: 3,
			game.StatSneak: 2,
		},
		Blood: 6,
	}
}

func (s *RedisRepoTestSuite) TestCreateAndGet() {
	actor := s.newCharacter("Klara", "user-1")

	err := s.repo.Create(s.ctx, actor)
	s.Require().NoError(err)
	s.Require().NotEmpty(actor.ID)
	s.Require().False(actor.CreatedAt.IsZero())

	fetched, err := s.repo.Get(s.ctx, actor.ID)
	s.Require().NoError(err)
	s.Equal("Klara", fetched.Name)
	s.Equal(3, fetched.StatValue(game.StatBrawl))
	s.Equal(6, fetched.Blood)
}

func (s *RedisRepoTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, "nope")
	s.Require().Error(err)
	s.True(etrerr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestGetByOwnerFiltersGuildList() {
	s.Require().NoError(s.repo.Create(s.ctx, s.newCharacter("Klara", "user-1")))
	s.Require().NoError(s.repo.Create(s.ctx, s.newCharacter("Yuri", "user-2")))

	npc := &game.Actor{
		GuildID: "guild-1",
		Name:    "Patrol",
		Kind:    game.ActorNPC,
		Threat:  &game.Threat{Max: 6, Attack: 4},
	}
	s.Require().NoError(s.repo.Create(s.ctx, npc))

	owned, err := s.repo.GetByOwner(s.ctx, "guild-1", "user-1")
	s.Require().NoError(err)
	s.Require().Len(owned, 1)
	s.Equal("Klara", owned[0].Name)

	all, err := s.repo.ListByGuild(s.ctx, "guild-1")
	s.Require().NoError(err)
	s.Len(all, 3)
}

func (s *RedisRepoTestSuite) TestUpdate() {
	actor := s.newCharacter("Klara", "user-1")
	s.Require().NoError(s.repo.Create(s.ctx, actor))

	actor.Blood = 2
	s.Require().NoError(s.repo.Update(s.ctx, actor))

	fetched, err := s.repo.Get(s.ctx, actor.ID)
	s.Require().NoError(err)
	s.Equal(2, fetched.Blood)
}

func (s *RedisRepoTestSuite) TestDeleteRemovesGuildIndex() {
	actor := s.newCharacter("Klara", "user-1")
	s.Require().NoError(s.repo.Create(s.ctx, actor))

	s.Require().NoError(s.repo.Delete(s.ctx, actor.ID))

	_, err := s.repo.Get(s.ctx, actor.ID)
	s.True(etrerr.IsNotFound(err))

	all, err := s.repo.ListByGuild(s.ctx, "guild-1")
	s.Require().NoError(err)
	s.Empty(all)
}
