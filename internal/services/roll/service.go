package roll

//go:generate mockgen -destination=mock/mock_service.go -package=mockroll -source=service.go

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/etr-bot-discord/internal/dice"
	"github.com/KirkDiggler/etr-bot-discord/internal/domain/game"
	etrerr "github.com/KirkDiggler/etr-bot-discord/internal/errors"
	"github.com/KirkDiggler/etr-bot-discord/internal/repositories/actors"
	"github.com/KirkDiggler/etr-bot-discord/internal/repositories/rollrecords"
)

// Service defines the roll service interface
type Service interface {
	// RollStat rolls a player pool built from an actor's stat plus
	// equipment and ability dice, and persists the outcome
	RollStat(ctx context.Context, input *RollStatInput) (*game.RollRecord, error)

	// RollAttack rolls a threat attack pool against the players
	RollAttack(ctx context.Context, input *RollAttackInput) (*game.RollRecord, error)

	// RollLastStand rolls a character's last stand pool
	RollLastStand(ctx context.Context, input *RollLastStandInput) (*game.RollRecord, error)

	// RollInjury rolls a single injury die and buckets it by severity.
	// Injury rolls are informational and never persisted.
	RollInjury(ctx context.Context) (*InjuryResult, error)

	// Import persists already-rolled dice, typically recovered from
	// exported die markup, as a new record. Imported records carry no
	// stat configuration, so they cannot anchor a flashback.
	Import(ctx context.Context, input *ImportInput) (*game.RollRecord, error)

	// GetRecord retrieves a roll record by ID
	GetRecord(ctx context.Context, recordID string) (*game.RollRecord, error)

	// AttachMessage binds a posted Discord message to its record so
	// component interactions can find it later
	AttachMessage(ctx context.Context, recordID, messageID string) error
}

// RollStatInput contains data for a player stat roll
type RollStatInput struct {
	ActorID       string
	OwnerID       string
	GuildID       string
	ChannelID     string
	Stat          game.Stat
	EquipmentDice int
	AbilityDice   int
}

// RollAttackInput contains data for a threat attack roll
type RollAttackInput struct {
	ActorID   string
	OwnerID   string
	GuildID   string
	ChannelID string
	// Dice overrides the actor's threat attack pool when > 0
	Dice int
}

// RollLastStandInput contains data for a last stand roll
type RollLastStandInput struct {
	ActorID   string
	OwnerID   string
	GuildID   string
	ChannelID string
}

// ImportInput contains already-rolled dice to persist as a record
type ImportInput struct {
	OwnerID   string
	GuildID   string
	ChannelID string
	Flavor    string
	IsAttack  bool
	Dice      []game.Die
}

// InjuryResult is the outcome of a 1d6 injury roll
type InjuryResult struct {
	Value    int
	Severity string
}

type service struct {
	roller  dice.Roller
	records rollrecords.Repository
	actors  actors.Repository
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Roller           dice.Roller            // Required
	RecordRepository rollrecords.Repository // Required
	ActorRepository  actors.Repository      // Required
}

// NewService creates a new roll service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Roller == nil {
		panic("roller is required")
	}
	if cfg.RecordRepository == nil {
		panic("record repository is required")
	}
	if cfg.ActorRepository == nil {
		panic("actor repository is required")
	}

	return &service{
		roller:  cfg.Roller,
		records: cfg.RecordRepository,
		actors:  cfg.ActorRepository,
	}
}

func (s *service) RollStat(ctx context.Context, input *RollStatInput) (*game.RollRecord, error) {
	if input == nil {
		return nil, etrerr.InvalidArgument("input cannot be nil")
	}

	actor, err := s.actors.Get(ctx, input.ActorID)
	if err != nil {
		return nil, err
	}

	label, ok := game.StatLabels[input.Stat]
	if !ok {
		return nil, etrerr.InvalidArgumentf("unknown stat '%s'", input.Stat)
	}

	statValue := actor.StatValue(input.Stat)
	size := statValue + input.EquipmentDice + input.AbilityDice

	pool, err := dice.RollPool(s.roller, size, game.RolePlayer)
	if err != nil {
		return nil, err
	}

	record := &game.RollRecord{
		ActorID:   actor.ID,
		OwnerID:   input.OwnerID,
		GuildID:   input.GuildID,
		ChannelID: input.ChannelID,
		Flavor:    fmt.Sprintf("%s rolls %s", actor.Name, label),
		Dice:      pool,
		Config: &game.RollConfig{
			StatValue:     statValue,
			EquipmentDice: input.EquipmentDice,
			AbilityDice:   input.AbilityDice,
			StatLabel:     label,
		},
	}

	if err := s.records.Create(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

func (s *service) RollAttack(ctx context.Context, input *RollAttackInput) (*game.RollRecord, error) {
	if input == nil {
		return nil, etrerr.InvalidArgument("input cannot be nil")
	}

	size := input.Dice
	flavor := "Threat attack"

	if input.ActorID != "" {
		actor, err := s.actors.Get(ctx, input.ActorID)
		if err != nil {
			return nil, err
		}
		if size == 0 {
			if actor.Threat == nil {
				return nil, etrerr.FailedPreconditionf("actor '%s' has no threat attack pool", actor.Name)
			}
			size = actor.Threat.Attack
		}
		flavor = fmt.Sprintf("%s attacks", actor.Name)
	}

	pool, err := dice.RollPool(s.roller, size, game.RoleThreat)
	if err != nil {
		return nil, err
	}

	record := &game.RollRecord{
		ActorID:   input.ActorID,
		OwnerID:   input.OwnerID,
		GuildID:   input.GuildID,
		ChannelID: input.ChannelID,
		Flavor:    flavor,
		IsAttack:  true,
		Dice:      pool,
	}

	if err := s.records.Create(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

func (s *service) RollLastStand(ctx context.Context, input *RollLastStandInput) (*game.RollRecord, error) {
	if input == nil {
		return nil, etrerr.InvalidArgument("input cannot be nil")
	}

	actor, err := s.actors.Get(ctx, input.ActorID)
	if err != nil {
		return nil, err
	}

	if actor.LastStand == nil {
		return nil, etrerr.FailedPreconditionf("actor '%s' has no last stand", actor.Name)
	}

	pool, err := dice.RollPool(s.roller, actor.LastStand.Dice, game.RolePlayer)
	if err != nil {
		return nil, err
	}

	record := &game.RollRecord{
		ActorID:   actor.ID,
		OwnerID:   input.OwnerID,
		GuildID:   input.GuildID,
		ChannelID: input.ChannelID,
		Flavor:    fmt.Sprintf("%s: %s", actor.Name, actor.LastStand.Name),
		Dice:      pool,
	}

	if err := s.records.Create(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

func (s *service) Import(ctx context.Context, input *ImportInput) (*game.RollRecord, error) {
	if input == nil {
		return nil, etrerr.InvalidArgument("input cannot be nil")
	}
	if len(input.Dice) == 0 {
		return nil, etrerr.InvalidArgument("at least one die is required")
	}

	flavor := input.Flavor
	if flavor == "" {
		flavor = "Imported roll"
	}

	record := &game.RollRecord{
		OwnerID:   input.OwnerID,
		GuildID:   input.GuildID,
		ChannelID: input.ChannelID,
		Flavor:    flavor,
		IsAttack:  input.IsAttack,
		Dice:      input.Dice,
	}

	if err := s.records.Create(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

func (s *service) RollInjury(ctx context.Context) (*InjuryResult, error) {
	values, err := s.roller.Roll(1, dice.PoolSides)
	if err != nil {
		return nil, etrerr.Wrap(err, "failed to roll injury die")
	}

	return &InjuryResult{
		Value:    values[0],
		Severity: game.InjurySeverity(values[0]),
	}, nil
}

func (s *service) GetRecord(ctx context.Context, recordID string) (*game.RollRecord, error) {
	return s.records.Get(ctx, recordID)
}

func (s *service) AttachMessage(ctx context.Context, recordID, messageID string) error {
	if messageID == "" {
		return etrerr.InvalidArgument("message ID is required")
	}

	record, err := s.records.Get(ctx, recordID)
	if err != nil {
		return err
	}

	record.MessageID = messageID
	return s.records.Update(ctx, record)
}
