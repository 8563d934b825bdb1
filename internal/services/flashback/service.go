package flashback

//go:generate mockgen -destination=mock/mock_service.go -package=mockflashback -source=service.go

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/KirkDiggler/etr-bot-discord/internal/dice"
	"github.com/KirkDiggler/etr-bot-discord/internal/domain/game"
	etrerr "github.com/KirkDiggler/etr-bot-discord/internal/errors"
	"github.com/KirkDiggler/etr-bot-discord/internal/repositories/actors"
	"github.com/KirkDiggler/etr-bot-discord/internal/repositories/flashbackprompts"
	"github.com/KirkDiggler/etr-bot-discord/internal/repositories/rollrecords"
)

// Service defines the flashback service interface. The flow is two-step:
// Begin stores the player's prompt choices, Confirm rolls the bonus pool
// and creates the linked record. Cancel abandons the prompt; nothing is
// created until Confirm succeeds.
type Service interface {
	// Options assembles the selectable contexts, questions, and characters
	// for the flashback prompt
	Options(ctx context.Context, input *OptionsInput) (*Options, error)

	// Randomize picks a random context, question, and character from the
	// available options
	Randomize(ctx context.Context, input *OptionsInput) (*game.FlashbackChoice, error)

	// Begin stores the player's pending prompt state
	Begin(ctx context.Context, input *BeginInput) error

	// Pending retrieves the user's pending prompt, if any
	Pending(ctx context.Context, userID string) (*flashbackprompts.Prompt, error)

	// Confirm resolves the pending prompt into a new linked roll record
	Confirm(ctx context.Context, input *ConfirmInput) (*game.RollRecord, error)

	// Cancel abandons the pending prompt without creating anything
	Cancel(ctx context.Context, userID string) error
}

// OptionsInput scopes the character list to a guild and excludes the
// flashing-back actor itself
type OptionsInput struct {
	GuildID string
	ActorID string
}

// Option is one selectable entry in a prompt dropdown
type Option struct {
	Key   string
	Label string
}

// Options is everything the flashback prompt offers. Every list ends with
// the custom escape hatch.
type Options struct {
	Contexts   []Option
	Questions  []Option
	Characters []Option
}

// BeginInput contains the resolved prompt choices to hold until Confirm
type BeginInput struct {
	UserID    string
	GuildID   string
	ChannelID string
	RecordID  string
	Choice    game.FlashbackChoice
}

// ConfirmInput finalizes a pending prompt. Description is the player's
// free-text answer to the chosen question.
type ConfirmInput struct {
	UserID      string
	Description string
}

type service struct {
	roller  dice.Roller
	records rollrecords.Repository
	actors  actors.Repository
	prompts flashbackprompts.Repository
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Roller           dice.Roller                 // Required
	RecordRepository rollrecords.Repository      // Required
	ActorRepository  actors.Repository           // Required
	PromptRepository flashbackprompts.Repository // Required
}

// NewService creates a new flashback service
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
	if cfg.PromptRepository == nil {
		panic("prompt repository is required")
	}

	return &service{
		roller:  cfg.Roller,
		records: cfg.RecordRepository,
		actors:  cfg.ActorRepository,
		prompts: cfg.PromptRepository,
	}
}

func (s *service) Options(ctx context.Context, input *OptionsInput) (*Options, error) {
	if input == nil {
		return nil, etrerr.InvalidArgument("input cannot be nil")
	}

	opts := &Options{}

	for _, key := range game.FlashbackContextKeys {
		opts.Contexts = append(opts.Contexts, Option{Key: key, Label: game.FlashbackContexts[key]})
	}
	opts.Contexts = append(opts.Contexts, Option{Key: game.CustomOption, Label: "Write your own..."})

	for _, key := range game.FlashbackQuestionKeys {
		opts.Questions = append(opts.Questions, Option{Key: key, Label: game.FlashbackQuestions[key]})
	}
	opts.Questions = append(opts.Questions, Option{Key: game.CustomOption, Label: "Write your own..."})

	characters, err := s.characterNames(ctx, input)
	if err != nil {
		return nil, err
	}
	for _, name := range characters {
		opts.Characters = append(opts.Characters, Option{Key: name, Label: name})
	}
	opts.Characters = append(opts.Characters, Option{Key: game.CustomOption, Label: "Someone else..."})

	return opts, nil
}

func (s *service) Randomize(ctx context.Context, input *OptionsInput) (*game.FlashbackChoice, error) {
	if input == nil {
		return nil, etrerr.InvalidArgument("input cannot be nil")
	}

	contextKey, err := s.pick(game.FlashbackContextKeys)
	if err != nil {
		return nil, err
	}
	questionKey, err := s.pick(game.FlashbackQuestionKeys)
	if err != nil {
		return nil, err
	}

	choice := &game.FlashbackChoice{
		Context:  game.FlashbackContexts[contextKey],
		Question: game.FlashbackQuestions[questionKey],
	}

	characters, err := s.characterNames(ctx, input)
	if err != nil {
		return nil, err
	}
	if len(characters) > 0 {
		name, err := s.pick(characters)
		if err != nil {
			return nil, err
		}
		choice.CharacterName = name
	}

	return choice, nil
}

func (s *service) Begin(ctx context.Context, input *BeginInput) error {
	if input == nil {
		return etrerr.InvalidArgument("input cannot be nil")
	}
	if input.UserID == "" {
		return etrerr.InvalidArgument("user ID is required")
	}

	if _, err := s.eligibleRecord(ctx, input.RecordID); err != nil {
		return err
	}

	return s.prompts.Set(ctx, &flashbackprompts.Prompt{
		UserID:    input.UserID,
		GuildID:   input.GuildID,
		ChannelID: input.ChannelID,
		RecordID:  input.RecordID,
		Choice:    input.Choice,
	})
}

func (s *service) Pending(ctx context.Context, userID string) (*flashbackprompts.Prompt, error) {
	return s.prompts.Get(ctx, userID)
}

func (s *service) Confirm(ctx context.Context, input *ConfirmInput) (*game.RollRecord, error) {
	if input == nil {
		return nil, etrerr.InvalidArgument("input cannot be nil")
	}

	prompt, err := s.prompts.Get(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	original, err := s.eligibleRecord(ctx, prompt.RecordID)
	if err != nil {
		return nil, err
	}

	pool, err := dice.RollPool(s.roller, original.Config.FlashbackPool(), game.RolePlayer)
	if err != nil {
		return nil, err
	}

	choice := prompt.Choice
	if input.Description != "" {
		choice.Description = input.Description
	}

	record := &game.RollRecord{
		ActorID:          original.ActorID,
		OwnerID:          original.OwnerID,
		GuildID:          prompt.GuildID,
		ChannelID:        prompt.ChannelID,
		Flavor:           flashbackFlavor(original, &choice),
		Dice:             pool,
		Config:           original.Config,
		IsFlashback:      true,
		OriginalRecordID: original.ID,
	}

	if err := s.records.Create(ctx, record); err != nil {
		return nil, err
	}

	// The prompt is spent. A failed delete only means it lingers until
	// its TTL; the record is already created.
	if err := s.prompts.Delete(ctx, input.UserID); err != nil {
		return record, nil
	}

	return record, nil
}

func (s *service) Cancel(ctx context.Context, userID string) error {
	if userID == "" {
		return etrerr.InvalidArgument("user ID is required")
	}
	return s.prompts.Delete(ctx, userID)
}

// characterNames lists player-owned characters in the guild, excluding the
// flashing-back actor itself, in stable name order.
func (s *service) characterNames(ctx context.Context, input *OptionsInput) ([]string, error) {
	all, err := s.actors.ListByGuild(ctx, input.GuildID)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, a := range all {
		if a.Kind != game.ActorCharacter || !a.HasPlayerOwner() {
			continue
		}
		if a.ID == input.ActorID {
			continue
		}
		names = append(names, a.Name)
	}

	sort.Strings(names)
	return names, nil
}

func (s *service) pick(options []string) (string, error) {
	values, err := s.roller.Roll(1, len(options))
	if err != nil {
		return "", etrerr.Wrap(err, "failed to randomize flashback option")
	}
	return options[values[0]-1], nil
}

// eligibleRecord loads a roll record and verifies it can still anchor a
// flashback. The speaker must resolve to a registered actor; a roll whose
// actor has since been deleted cannot flash back.
func (s *service) eligibleRecord(ctx context.Context, recordID string) (*game.RollRecord, error) {
	record, err := s.records.Get(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if err := flashbackEligible(record); err != nil {
		return nil, err
	}

	if record.ActorID == "" {
		return nil, etrerr.FailedPrecondition("roll has no actor to flash back from")
	}
	if _, err := s.actors.Get(ctx, record.ActorID); err != nil {
		if etrerr.IsNotFound(err) {
			return nil, etrerr.FailedPreconditionf("actor '%s' is no longer registered", record.ActorID)
		}
		return nil, err
	}

	return record, nil
}

func flashbackEligible(record *game.RollRecord) error {
	if record.IsFlashback {
		return etrerr.FailedPrecondition("cannot flash back from a flashback roll")
	}
	if record.Config == nil {
		return etrerr.FailedPrecondition("roll has no stat configuration to flash back from")
	}
	return nil
}

func flashbackFlavor(original *game.RollRecord, choice *game.FlashbackChoice) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("Flashback (%s)", original.Config.StatLabel))
	if choice.Context != "" {
		parts = append(parts, choice.Context)
	}
	if choice.Question != "" {
		parts = append(parts, game.ResolveQuestion(choice.Question, choice.CharacterName))
	}
	if choice.Description != "" {
		parts = append(parts, choice.Description)
	}

	return strings.Join(parts, " | ")
}
