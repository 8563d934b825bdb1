package rollrecords

//go:generate mockgen -destination=mock/mock.go -package=mockrollrecords -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/etr-bot-discord/internal/domain/game"
)

// Repository defines the interface for roll record persistence
type Repository interface {
	// Create stores a new roll record
	Create(ctx context.Context, record *game.RollRecord) error

	// Get retrieves a roll record by ID
	Get(ctx context.Context, id string) (*game.RollRecord, error)

	// GetByMessage retrieves the roll record bound to a Discord message
	GetByMessage(ctx context.Context, messageID string) (*game.RollRecord, error)

	// Update replaces an existing roll record
	Update(ctx context.Context, record *game.RollRecord) error

	// Delete removes a roll record
	Delete(ctx context.Context, id string) error

	// ListByOwner retrieves all roll records owned by a user
	ListByOwner(ctx context.Context, ownerID string) ([]*game.RollRecord, error)
}
