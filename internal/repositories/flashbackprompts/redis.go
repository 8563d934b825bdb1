package flashbackprompts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	etrerr "github.com/KirkDiggler/etr-bot-discord/internal/errors"
)

const (
	promptKeyFmt = "flashback:prompt:%s"

	// Prompts that are never confirmed expire on their own
	defaultPromptTTL = 15 * time.Minute
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client       redis.UniversalClient
	TimeProvider TimeProvider
	PromptTTL    time.Duration
}

type redisRepo struct {
	client       redis.UniversalClient
	timeProvider TimeProvider
	promptTTL    time.Duration
}

// NewRedisRepository creates a new Redis-backed prompt repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg.Client == nil {
		panic("redis client is required")
	}

	tp := cfg.TimeProvider
	if tp == nil {
		tp = realTimeProvider{}
	}

	ttl := cfg.PromptTTL
	if ttl == 0 {
		ttl = defaultPromptTTL
	}

	return &redisRepo{
		client:       cfg.Client,
		timeProvider: tp,
		promptTTL:    ttl,
	}
}

func (r *redisRepo) Set(ctx context.Context, prompt *Prompt) error {
	if prompt == nil {
		return etrerr.InvalidArgument("prompt cannot be nil")
	}
	if prompt.UserID == "" {
		return etrerr.InvalidArgument("prompt user ID is required")
	}

	prompt.CreatedAt = r.timeProvider.Now()

	jsonData, err := json.Marshal(prompt)
	if err != nil {
		return fmt.Errorf("failed to marshal prompt: %w", err)
	}

	key := fmt.Sprintf(promptKeyFmt, prompt.UserID)
	if err := r.client.Set(ctx, key, string(jsonData), r.promptTTL).Err(); err != nil {
		return fmt.Errorf("failed to store prompt: %w", err)
	}

	return nil
}

func (r *redisRepo) Get(ctx context.Context, userID string) (*Prompt, error) {
	if userID == "" {
		return nil, etrerr.InvalidArgument("user ID is required")
	}

	jsonData, err := r.client.Get(ctx, fmt.Sprintf(promptKeyFmt, userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, etrerr.NotFoundf("no pending flashback prompt for user '%s'", userID).
				WithMeta("user_id", userID)
		}
		return nil, fmt.Errorf("failed to get prompt: %w", err)
	}

	var prompt Prompt
	if err := json.Unmarshal(jsonData, &prompt); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prompt: %w", err)
	}

	return &prompt, nil
}

func (r *redisRepo) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return etrerr.InvalidArgument("user ID is required")
	}

	if err := r.client.Del(ctx, fmt.Sprintf(promptKeyFmt, userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete prompt: %w", err)
	}

	return nil
}
