package services

import (
	"github.com/KirkDiggler/etr-bot-discord/internal/dice"
	"github.com/KirkDiggler/etr-bot-discord/internal/repositories/actors"
	"github.com/KirkDiggler/etr-bot-discord/internal/repositories/flashbackprompts"
	"github.com/KirkDiggler/etr-bot-discord/internal/repositories/rollrecords"
	actorService "github.com/KirkDiggler/etr-bot-discord/internal/services/actor"
	allocationService "github.com/KirkDiggler/etr-bot-discord/internal/services/allocation"
	flashbackService "github.com/KirkDiggler/etr-bot-discord/internal/services/flashback"
	rollService "github.com/KirkDiggler/etr-bot-discord/internal/services/roll"
)

// Provider holds all service instances
type Provider struct {
	ActorService      actorService.Service
	RollService       rollService.Service
	AllocationService allocationService.Service
	FlashbackService  flashbackService.Service
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	Roller           dice.Roller
	RecordRepository rollrecords.Repository
	ActorRepository  actors.Repository
	PromptRepository flashbackprompts.Repository
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	roller := cfg.Roller
	if roller == nil {
		roller = dice.NewRandomRoller()
	}

	// Use in-memory repositories if none provided
	recordRepo := cfg.RecordRepository
	if recordRepo == nil {
		recordRepo = rollrecords.NewInMemoryRepository()
	}

	actorRepo := cfg.ActorRepository
	if actorRepo == nil {
		actorRepo = actors.NewInMemoryRepository()
	}

	promptRepo := cfg.PromptRepository
	if promptRepo == nil {
		promptRepo = flashbackprompts.NewInMemoryRepository()
	}

	return &Provider{
		ActorService: actorService.NewService(&actorService.ServiceConfig{
			ActorRepository: actorRepo,
		}),
		RollService: rollService.NewService(&rollService.ServiceConfig{
			Roller:           roller,
			RecordRepository: recordRepo,
			ActorRepository:  actorRepo,
		}),
		AllocationService: allocationService.NewService(&allocationService.ServiceConfig{
			RecordRepository: recordRepo,
		}),
		FlashbackService: flashbackService.NewService(&flashbackService.ServiceConfig{
			Roller:           roller,
			RecordRepository: recordRepo,
			ActorRepository:  actorRepo,
			PromptRepository: promptRepo,
		}),
	}
}
