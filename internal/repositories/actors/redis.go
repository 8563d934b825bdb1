package actors

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/etr-bot-discord/internal/domain/game"
	etrerr "github.com/KirkDiggler/etr-bot-discord/internal/errors"
	"github.com/KirkDiggler/etr-bot-discord/internal/uuid"
)

const (
	actorKeyPrefix = "actor:"
	guildActorsFmt = "guild:%s:actors"
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client        redis.UniversalClient
	UUIDGenerator uuid.Generator
}

type redisRepo struct {
	client        redis.UniversalClient
	uuidGenerator uuid.Generator
}

// NewRedisRepository creates a new Redis-backed actor repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg.Client == nil {
		panic("redis client is required")
	}

	gen := cfg.UUIDGenerator
	if gen == nil {
		gen = uuid.NewGoogleUUIDGenerator()
	}

	return &redisRepo{
		client:        cfg.Client,
		uuidGenerator: gen,
	}
}

func (r *redisRepo) Create(ctx context.Context, actor *game.Actor) error {
	if actor == nil {
		return etrerr.InvalidArgument("actor cannot be nil")
	}
	if actor.GuildID == "" {
		return etrerr.InvalidArgument("actor guild ID is required")
	}
	if actor.Name == "" {
		return etrerr.InvalidArgument("actor name is required")
	}

	if actor.ID == "" {
		actor.ID = r.uuidGenerator.New()
	}

	now := time.Now().UTC()
	actor.CreatedAt = now
	actor.UpdatedAt = now

	return r.set(ctx, actor)
}

func (r *redisRepo) Get(ctx context.Context, id string) (*game.Actor, error) {
	if id == "" {
		return nil, etrerr.InvalidArgument("actor ID is required")
	}

	jsonData, err := r.client.Get(ctx, actorKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, etrerr.NotFoundf("actor '%s' not found", id).
				WithMeta("actor_id", id)
		}
		return nil, fmt.Errorf("failed to get actor: %w", err)
	}

	var actor game.Actor
	if err := json.Unmarshal(jsonData, &actor); err != nil {
		return nil, fmt.Errorf("failed to unmarshal actor: %w", err)
	}

	return &actor, nil
}

func (r *redisRepo) GetByOwner(ctx context.Context, guildID, ownerID string) ([]*game.Actor, error) {
	if ownerID == "" {
		return nil, etrerr.InvalidArgument("owner ID is required")
	}

	actors, err := r.ListByGuild(ctx, guildID)
	if err != nil {
		return nil, err
	}

	var result []*game.Actor
	for _, a := range actors {
		if a.OwnerID == ownerID {
			result = append(result, a)
		}
	}

	return result, nil
}

func (r *redisRepo) ListByGuild(ctx context.Context, guildID string) ([]*game.Actor, error) {
	if guildID == "" {
		return nil, etrerr.InvalidArgument("guild ID is required")
	}

	ids, err := r.client.SMembers(ctx, fmt.Sprintf(guildActorsFmt, guildID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list actor IDs: %w", err)
	}

	actors := make([]*game.Actor, 0, len(ids))
	for _, id := range ids {
		actor, err := r.Get(ctx, id)
		if err != nil {
			// Skip actors that can't be loaded
			continue
		}
		actors = append(actors, actor)
	}

	return actors, nil
}

func (r *redisRepo) Update(ctx context.Context, actor *game.Actor) error {
	if actor == nil {
		return etrerr.InvalidArgument("actor cannot be nil")
	}
	if actor.ID == "" {
		return etrerr.InvalidArgument("actor ID is required")
	}

	if _, err := r.Get(ctx, actor.ID); err != nil {
		return err
	}

	actor.UpdatedAt = time.Now().UTC()

	return r.set(ctx, actor)
}

func (r *redisRepo) Delete(ctx context.Context, id string) error {
	actor, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, actorKeyPrefix+id)
	pipe.SRem(ctx, fmt.Sprintf(guildActorsFmt, actor.GuildID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete actor: %w", err)
	}

	return nil
}

func (r *redisRepo) set(ctx context.Context, actor *game.Actor) error {
	jsonData, err := json.Marshal(actor)
	if err != nil {
		return fmt.Errorf("failed to marshal actor: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, actorKeyPrefix+actor.ID, string(jsonData), 0)
	pipe.SAdd(ctx, fmt.Sprintf(guildActorsFmt, actor.GuildID), actor.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store actor: %w", err)
	}

	return nil
}
