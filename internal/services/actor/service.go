package actor

//go:generate mockgen -destination=mock/mock_service.go -package=mockactor -source=service.go

import (
	"context"

	"github.com/KirkDiggler/etr-bot-discord/internal/domain/game"
	etrerr "github.com/KirkDiggler/etr-bot-discord/internal/errors"
	"github.com/KirkDiggler/etr-bot-discord/internal/repositories/actors"
)

// Service defines the actor registry interface
type Service interface {
	// RegisterCharacter registers a player character with its stat line
	RegisterCharacter(ctx context.Context, input *RegisterCharacterInput) (*game.Actor, error)

	// RegisterThreat registers a GM-run threat with its attack pool
	RegisterThreat(ctx context.Context, input *RegisterThreatInput) (*game.Actor, error)

	// Get retrieves an actor by ID
	Get(ctx context.Context, id string) (*game.Actor, error)

	// GetOwned retrieves the actors a user owns in a guild
	GetOwned(ctx context.Context, guildID, ownerID string) ([]*game.Actor, error)

	// ListByGuild retrieves every actor registered in a guild
	ListByGuild(ctx context.Context, guildID string) ([]*game.Actor, error)

	// Delete removes an actor from the registry
	Delete(ctx context.Context, id string) error
}

// RegisterCharacterInput contains data for registering a character
type RegisterCharacterInput struct {
	OwnerID   string
	GuildID   string
	Name      string
	Stats     map[game.Stat]int
	Blood     int
	LastStand *game.LastStand
}

// RegisterThreatInput contains data for registering a threat actor
type RegisterThreatInput struct {
	GuildID    string
	Name       string
	Kind       game.ActorKind
	ThreatMax  int
	AttackDice int
}

type service struct {
	actors actors.Repository
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	ActorRepository actors.Repository // Required
}

// NewService creates a new actor service
func NewService(cfg *ServiceConfig) Service {
	if cfg.ActorRepository == nil {
		panic("actor repository is required")
	}

	return &service{
		actors: cfg.ActorRepository,
	}
}

func (s *service) RegisterCharacter(ctx context.Context, input *RegisterCharacterInput) (*game.Actor, error) {
	if input == nil {
		return nil, etrerr.InvalidArgument("input cannot be nil")
	}
	if input.OwnerID == "" {
		return nil, etrerr.InvalidArgument("characters must have a player owner")
	}

	for stat := range input.Stats {
		if _, ok := game.StatLabels[stat]; !ok {
			return nil, etrerr.InvalidArgumentf("unknown stat '%s'", stat)
		}
	}

	actor := &game.Actor{
		OwnerID:   input.OwnerID,
		GuildID:   input.GuildID,
		Name:      input.Name,
		Kind:      game.ActorCharacter,
		Stats:     input.Stats,
		Blood:     input.Blood,
		LastStand: input.LastStand,
	}

	if err := s.actors.Create(ctx, actor); err != nil {
		return nil, err
	}

	return actor, nil
}

func (s *service) RegisterThreat(ctx context.Context, input *RegisterThreatInput) (*game.Actor, error) {
	if input == nil {
		return nil, etrerr.InvalidArgument("input cannot be nil")
	}

	kind := input.Kind
	if kind == "" {
		kind = game.ActorNPC
	}
	if kind != game.ActorNPC && kind != game.ActorLocation {
		return nil, etrerr.InvalidArgumentf("threats must be NPCs or locations, not '%s'", kind)
	}

	actor := &game.Actor{
		GuildID: input.GuildID,
		Name:    input.Name,
		Kind:    kind,
		Threat: &game.Threat{
			Max:    input.ThreatMax,
			Attack: input.AttackDice,
		},
	}

	if err := s.actors.Create(ctx, actor); err != nil {
		return nil, err
	}

	return actor, nil
}

func (s *service) Get(ctx context.Context, id string) (*game.Actor, error) {
	return s.actors.Get(ctx, id)
}

func (s *service) GetOwned(ctx context.Context, guildID, ownerID string) ([]*game.Actor, error) {
	return s.actors.GetByOwner(ctx, guildID, ownerID)
}

func (s *service) ListByGuild(ctx context.Context, guildID string) ([]*game.Actor, error) {
	return s.actors.ListByGuild(ctx, guildID)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.actors.Delete(ctx, id)
}
