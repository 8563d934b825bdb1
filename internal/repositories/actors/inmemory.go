package actors

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/etr-bot-discord/internal/domain/game"
	etrerr "github.com/KirkDiggler/etr-bot-discord/internal/errors"
	"github.com/KirkDiggler/etr-bot-discord/internal/uuid"
)

// InMemoryRepository is an in-memory implementation of the actor repository.
// Useful for testing and running without Redis.
type InMemoryRepository struct {
	mu            sync.RWMutex
	actors        map[string]*game.Actor
	uuidGenerator uuid.Generator
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		actors:        make(map[string]*game.Actor),
		uuidGenerator: uuid.NewGoogleUUIDGenerator(),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, actor *game.Actor) error {
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

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.actors[actor.ID]; exists {
		return etrerr.AlreadyExistsf("actor '%s' already exists", actor.ID).
			WithMeta("actor_id", actor.ID)
	}

	now := time.Now().UTC()
	actor.CreatedAt = now
	actor.UpdatedAt = now

	r.actors[actor.ID] = copyActor(actor)
	return nil
}

func (r *InMemoryRepository) Get(ctx context.Context, id string) (*game.Actor, error) {
	if id == "" {
		return nil, etrerr.InvalidArgument("actor ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	actor, exists := r.actors[id]
	if !exists {
		return nil, etrerr.NotFoundf("actor '%s' not found", id).
			WithMeta("actor_id", id)
	}

	return copyActor(actor), nil
}

func (r *InMemoryRepository) GetByOwner(ctx context.Context, guildID, ownerID string) ([]*game.Actor, error) {
	if ownerID == "" {
		return nil, etrerr.InvalidArgument("owner ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*game.Actor
	for _, a := range r.actors {
		if a.GuildID == guildID && a.OwnerID == ownerID {
			result = append(result, copyActor(a))
		}
	}

	return result, nil
}

func (r *InMemoryRepository) ListByGuild(ctx context.Context, guildID string) ([]*game.Actor, error) {
	if guildID == "" {
		return nil, etrerr.InvalidArgument("guild ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*game.Actor
	for _, a := range r.actors {
		if a.GuildID == guildID {
			result = append(result, copyActor(a))
		}
	}

	return result, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, actor *game.Actor) error {
	if actor == nil {
		return etrerr.InvalidArgument("actor cannot be nil")
	}
	if actor.ID == "" {
		return etrerr.InvalidArgument("actor ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.actors[actor.ID]; !exists {
		return etrerr.NotFoundf("actor '%s' not found", actor.ID).
			WithMeta("actor_id", actor.ID)
	}

	actor.UpdatedAt = time.Now().UTC()

	r.actors[actor.ID] = copyActor(actor)
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return etrerr.InvalidArgument("actor ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.actors[id]; !exists {
		return etrerr.NotFoundf("actor '%s' not found", id).
			WithMeta("actor_id", id)
	}

	delete(r.actors, id)
	return nil
}

func copyActor(actor *game.Actor) *game.Actor {
	cp := *actor
	if actor.Stats != nil {
		cp.Stats = make(map[game.Stat]int, len(actor.Stats))
		for k, v := range actor.Stats {
			cp.Stats[k] = v
		}
	}
	if actor.LastStand != nil {
		ls := *actor.LastStand
		cp.LastStand = &ls
	}
	if actor.Threat != nil {
		th := *actor.Threat
		cp.Threat = &th
	}
	return &cp
}
