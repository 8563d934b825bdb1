package flashbackprompts

import (
	"context"
	"sync"
	"time"

	etrerr "github.com/KirkDiggler/etr-bot-discord/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the prompt
// repository. Expiry is checked lazily on read.
type InMemoryRepository struct {
	mu           sync.RWMutex
	prompts      map[string]*Prompt
	timeProvider TimeProvider
	promptTTL    time.Duration
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		prompts:      make(map[string]*Prompt),
		timeProvider: realTimeProvider{},
		promptTTL:    defaultPromptTTL,
	}
}

func (r *InMemoryRepository) Set(ctx context.Context, prompt *Prompt) error {
	if prompt == nil {
		return etrerr.InvalidArgument("prompt cannot be nil")
	}
	if prompt.UserID == "" {
		return etrerr.InvalidArgument("prompt user ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	prompt.CreatedAt = r.timeProvider.Now()

	cp := *prompt
	r.prompts[prompt.UserID] = &cp
	return nil
}

func (r *InMemoryRepository) Get(ctx context.Context, userID string) (*Prompt, error) {
	if userID == "" {
		return nil, etrerr.InvalidArgument("user ID is required")
	}

	r.mu.RLock()
	prompt, exists := r.prompts[userID]
	r.mu.RUnlock()

	if exists && r.timeProvider.Now().Sub(prompt.CreatedAt) > r.promptTTL {
		_ = r.Delete(ctx, userID)
		exists = false
	}

	if !exists {
		return nil, etrerr.NotFoundf("no pending flashback prompt for user '%s'", userID).
			WithMeta("user_id", userID)
	}

	cp := *prompt
	return &cp, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return etrerr.InvalidArgument("user ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.prompts, userID)
	return nil
}
