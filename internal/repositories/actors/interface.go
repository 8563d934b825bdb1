package actors

//go:generate mockgen -destination=mock/mock.go -package=mockactors -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/etr-bot-discord/internal/domain/game"
)

// Repository defines the interface for actor persistence
type Repository interface {
	// Create stores a new actor
	Create(ctx context.Context, actor *game.Actor) error

	// Get retrieves an actor by ID
	Get(ctx context.Context, id string) (*game.Actor, error)

	// GetByOwner retrieves all actors owned by a user in a guild
	GetByOwner(ctx context.Context, guildID, ownerID string) ([]*game.Actor, error)

	// ListByGuild retrieves all actors registered in a guild
	ListByGuild(ctx context.Context, guildID string) ([]*game.Actor, error)

	// Update updates an existing actor
	Update(ctx context.Context, actor *game.Actor) error

	// Delete removes an actor
	Delete(ctx context.Context, id string) error
}
