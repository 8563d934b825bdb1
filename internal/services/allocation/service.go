package allocation

//go:generate mockgen -destination=mock/mock_service.go -package=mockallocation -source=service.go

import (
	"context"
	"log"

	"github.com/KirkDiggler/etr-bot-discord/internal/domain/game"
	etrerr "github.com/KirkDiggler/etr-bot-discord/internal/errors"
	"github.com/KirkDiggler/etr-bot-discord/internal/repositories/rollrecords"
)

// Service defines the allocation service interface
type Service interface {
	// ToggleDie flips the allocation state of one die on the record bound
	// to a Discord message and persists the result
	ToggleDie(ctx context.Context, input *ToggleDieInput) (*ToggleDieOutput, error)
}

// ToggleDieInput identifies the clicked die. Tier, Index, and Value come
// from the component the user clicked; the record is re-fetched so the
// stored state stays authoritative.
type ToggleDieInput struct {
	MessageID string
	UserID    string
	IsGM      bool
	Tier      game.Tier
	Index     int
	Value     int
}

// ToggleDieOutput reports the persisted result of a toggle
type ToggleDieOutput struct {
	Record *game.RollRecord
	Die    *game.Die
	Marked bool
}

type service struct {
	records rollrecords.Repository
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	RecordRepository rollrecords.Repository // Required
}

// NewService creates a new allocation service
func NewService(cfg *ServiceConfig) Service {
	if cfg.RecordRepository == nil {
		panic("record repository is required")
	}

	return &service{
		records: cfg.RecordRepository,
	}
}

func (s *service) ToggleDie(ctx context.Context, input *ToggleDieInput) (*ToggleDieOutput, error) {
	if input == nil {
		return nil, etrerr.InvalidArgument("input cannot be nil")
	}
	if input.MessageID == "" {
		return nil, etrerr.InvalidArgument("message ID is required")
	}

	record, err := s.records.GetByMessage(ctx, input.MessageID)
	if err != nil {
		return nil, err
	}

	if !record.CanModify(input.UserID, input.IsGM) {
		return nil, etrerr.PermissionDenied("only the roll's owner or the GM can allocate its dice").
			WithMeta("record_id", record.ID).
			WithMeta("user_id", input.UserID)
	}

	die := record.FindDie(input.Tier, input.Index, input.Value)
	if die == nil {
		// The tier on the clicked component can go stale if the record
		// was rebuilt; fall back to (index, value) before giving up.
		die = record.FindDieAnyTier(input.Index, input.Value)
		if die != nil {
			log.Printf("die lookup fell back to any-tier match: record=%s tier=%s index=%d value=%d",
				record.ID, input.Tier, input.Index, input.Value)
		}
	}
	if die == nil {
		return nil, etrerr.NotFoundf("no die (%s, %d, %d) on record '%s'",
			input.Tier, input.Index, input.Value, record.ID).
			WithMeta("record_id", record.ID)
	}

	marked, err := record.Toggle(die)
	if err != nil {
		return nil, err
	}

	if err := s.records.Update(ctx, record); err != nil {
		return nil, etrerr.Wrap(err, "failed to persist allocation change")
	}

	return &ToggleDieOutput{
		Record: record,
		Die:    die,
		Marked: marked,
	}, nil
}
