package rollrecords

import (
	"context"
	"sync"

	"github.com/KirkDiggler/etr-bot-discord/internal/domain/game"
	etrerr "github.com/KirkDiggler/etr-bot-discord/internal/errors"
	"github.com/KirkDiggler/etr-bot-discord/internal/uuid"
)

// InMemoryRepository is an in-memory implementation of the roll record
// repository. Useful for testing and running without Redis.
type InMemoryRepository struct {
	mu            sync.RWMutex
	records       map[string]*game.RollRecord
	byMessage     map[string]string
	uuidGenerator uuid.Generator
	timeProvider  TimeProvider
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		records:       make(map[string]*game.RollRecord),
		byMessage:     make(map[string]string),
		uuidGenerator: uuid.NewGoogleUUIDGenerator(),
		timeProvider:  RealTimeProvider{},
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, record *game.RollRecord) error {
	if record == nil {
		return etrerr.InvalidArgument("record cannot be nil")
	}
	if record.OwnerID == "" {
		return etrerr.InvalidArgument("record owner ID is required")
	}

	if record.ID == "" {
		record.ID = r.uuidGenerator.New()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[record.ID]; exists {
		return etrerr.AlreadyExistsf("roll record '%s' already exists", record.ID).
			WithMeta("record_id", record.ID)
	}

	now := r.timeProvider.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	r.store(record)
	return nil
}

func (r *InMemoryRepository) Get(ctx context.Context, id string) (*game.RollRecord, error) {
	if id == "" {
		return nil, etrerr.InvalidArgument("record ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[id]
	if !exists {
		return nil, etrerr.NotFoundf("roll record '%s' not found", id).
			WithMeta("record_id", id)
	}

	return copyRecord(record), nil
}

func (r *InMemoryRepository) GetByMessage(ctx context.Context, messageID string) (*game.RollRecord, error) {
	if messageID == "" {
		return nil, etrerr.InvalidArgument("message ID is required")
	}

	r.mu.RLock()
	id, exists := r.byMessage[messageID]
	r.mu.RUnlock()

	if !exists {
		return nil, etrerr.NotFoundf("no roll record for message '%s'", messageID).
			WithMeta("message_id", messageID)
	}

	return r.Get(ctx, id)
}

func (r *InMemoryRepository) Update(ctx context.Context, record *game.RollRecord) error {
	if record == nil {
		return etrerr.InvalidArgument("record cannot be nil")
	}
	if record.ID == "" {
		return etrerr.InvalidArgument("record ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[record.ID]; !exists {
		return etrerr.NotFoundf("roll record '%s' not found", record.ID).
			WithMeta("record_id", record.ID)
	}

	record.UpdatedAt = r.timeProvider.Now()

	r.store(record)
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return etrerr.InvalidArgument("record ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	record, exists := r.records[id]
	if !exists {
		return etrerr.NotFoundf("roll record '%s' not found", id).
			WithMeta("record_id", id)
	}

	if record.MessageID != "" {
		delete(r.byMessage, record.MessageID)
	}
	delete(r.records, id)
	return nil
}

func (r *InMemoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*game.RollRecord, error) {
	if ownerID == "" {
		return nil, etrerr.InvalidArgument("owner ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*game.RollRecord
	for _, record := range r.records {
		if record.OwnerID == ownerID {
			result = append(result, copyRecord(record))
		}
	}

	return result, nil
}

func (r *InMemoryRepository) store(record *game.RollRecord) {
	r.records[record.ID] = copyRecord(record)
	if record.MessageID != "" {
		r.byMessage[record.MessageID] = record.ID
	}
}

// copyRecord deep-copies a record so callers never share dice slices
func copyRecord(record *game.RollRecord) *game.RollRecord {
	cp := *record
	cp.Dice = make([]game.Die, len(record.Dice))
	copy(cp.Dice, record.Dice)
	if record.Config != nil {
		cfg := *record.Config
		cp.Config = &cfg
	}
	return &cp
}
