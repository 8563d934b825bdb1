package rollrecords

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/etr-bot-discord/internal/domain/game"
	etrerr "github.com/KirkDiggler/etr-bot-discord/internal/errors"
	"github.com/KirkDiggler/etr-bot-discord/internal/uuid"
)

const (
	recordKeyPrefix = "rollrecord:"
	messageKeyFmt   = "message:%s:rollrecord"
	ownerRecordsFmt = "user:%s:rollrecords"
)

// Data represents the serialized form of a roll record in Redis
type Data struct {
	ID               string           `json:"id"`
	ActorID          string           `json:"actor_id,omitempty"`
	OwnerID          string           `json:"owner_id"`
	GuildID          string           `json:"guild_id"`
	ChannelID        string           `json:"channel_id"`
	MessageID        string           `json:"message_id,omitempty"`
	Flavor           string           `json:"flavor,omitempty"`
	IsAttack         bool             `json:"is_attack"`
	Dice             []game.Die       `json:"dice"`
	Config           *game.RollConfig `json:"config,omitempty"`
	IsFlashback      bool             `json:"is_flashback,omitempty"`
	OriginalRecordID string           `json:"original_record_id,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client        redis.UniversalClient
	UUIDGenerator uuid.Generator
	TimeProvider  TimeProvider
}

type redisRepo struct {
	client        redis.UniversalClient
	uuidGenerator uuid.Generator
	timeProvider  TimeProvider
}

// NewRedisRepository creates a new Redis-backed roll record repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg.Client == nil {
		panic("redis client is required")
	}

	gen := cfg.UUIDGenerator
	if gen == nil {
		gen = uuid.NewGoogleUUIDGenerator()
	}

	tp := cfg.TimeProvider
	if tp == nil {
		tp = RealTimeProvider{}
	}

	return &redisRepo{
		client:        cfg.Client,
		uuidGenerator: gen,
		timeProvider:  tp,
	}
}

func (r *redisRepo) Create(ctx context.Context, record *game.RollRecord) error {
	if record == nil {
		return etrerr.InvalidArgument("record cannot be nil")
	}
	if record.OwnerID == "" {
		return etrerr.InvalidArgument("record owner ID is required")
	}

	if record.ID == "" {
		record.ID = r.uuidGenerator.New()
	}

	now := r.timeProvider.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	return r.set(ctx, record)
}

func (r *redisRepo) Get(ctx context.Context, id string) (*game.RollRecord, error) {
	if id == "" {
		return nil, etrerr.InvalidArgument("record ID is required")
	}

	jsonData, err := r.client.Get(ctx, recordKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, etrerr.NotFoundf("roll record '%s' not found", id).
				WithMeta("record_id", id)
		}
		return nil, fmt.Errorf("failed to get roll record: %w", err)
	}

	var data Data
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal roll record: %w", err)
	}

	return toRecord(&data), nil
}

func (r *redisRepo) GetByMessage(ctx context.Context, messageID string) (*game.RollRecord, error) {
	if messageID == "" {
		return nil, etrerr.InvalidArgument("message ID is required")
	}

	id, err := r.client.Get(ctx, fmt.Sprintf(messageKeyFmt, messageID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, etrerr.NotFoundf("no roll record for message '%s'", messageID).
				WithMeta("message_id", messageID)
		}
		return nil, fmt.Errorf("failed to resolve roll record for message: %w", err)
	}

	return r.Get(ctx, id)
}

func (r *redisRepo) Update(ctx context.Context, record *game.RollRecord) error {
	if record == nil {
		return etrerr.InvalidArgument("record cannot be nil")
	}
	if record.ID == "" {
		return etrerr.InvalidArgument("record ID is required")
	}

	if _, err := r.Get(ctx, record.ID); err != nil {
		return err
	}

	record.UpdatedAt = r.timeProvider.Now()

	return r.set(ctx, record)
}

func (r *redisRepo) Delete(ctx context.Context, id string) error {
	record, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, recordKeyPrefix+id)
	if record.MessageID != "" {
		pipe.Del(ctx, fmt.Sprintf(messageKeyFmt, record.MessageID))
	}
	pipe.SRem(ctx, fmt.Sprintf(ownerRecordsFmt, record.OwnerID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete roll record: %w", err)
	}

	return nil
}

func (r *redisRepo) ListByOwner(ctx context.Context, ownerID string) ([]*game.RollRecord, error) {
	if ownerID == "" {
		return nil, etrerr.InvalidArgument("owner ID is required")
	}

	ids, err := r.client.SMembers(ctx, fmt.Sprintf(ownerRecordsFmt, ownerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list roll record IDs: %w", err)
	}

	records := make([]*game.RollRecord, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			record, err := r.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get roll record %s: %w", id, err)
			}
			records[i] = record
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *redisRepo) set(ctx context.Context, record *game.RollRecord) error {
	jsonData, err := json.Marshal(toData(record))
	if err != nil {
		return fmt.Errorf("failed to marshal roll record: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, recordKeyPrefix+record.ID, string(jsonData), 0)
	if record.MessageID != "" {
		pipe.Set(ctx, fmt.Sprintf(messageKeyFmt, record.MessageID), record.ID, 0)
	}
	pipe.SAdd(ctx, fmt.Sprintf(ownerRecordsFmt, record.OwnerID), record.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store roll record: %w", err)
	}

	return nil
}

func toData(record *game.RollRecord) *Data {
	if record == nil {
		return nil
	}

	return &Data{
		ID:               record.ID,
		ActorID:          record.ActorID,
		OwnerID:          record.OwnerID,
		GuildID:          record.GuildID,
		ChannelID:        record.ChannelID,
		MessageID:        record.MessageID,
		Flavor:           record.Flavor,
		IsAttack:         record.IsAttack,
		Dice:             record.Dice,
		Config:           record.Config,
		IsFlashback:      record.IsFlashback,
		OriginalRecordID: record.OriginalRecordID,
		CreatedAt:        record.CreatedAt,
		UpdatedAt:        record.UpdatedAt,
	}
}

func toRecord(data *Data) *game.RollRecord {
	if data == nil {
		return nil
	}

	return &game.RollRecord{
		ID:               data.ID,
		ActorID:          data.ActorID,
		OwnerID:          data.OwnerID,
		GuildID:          data.GuildID,
		ChannelID:        data.ChannelID,
		MessageID:        data.MessageID,
		Flavor:           data.Flavor,
		IsAttack:         data.IsAttack,
		Dice:             data.Dice,
		Config:           data.Config,
		IsFlashback:      data.IsFlashback,
		OriginalRecordID: data.OriginalRecordID,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}
