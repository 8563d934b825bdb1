package handlers

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/etr-bot-discord/internal/discord/builders"
	"github.com/KirkDiggler/etr-bot-discord/internal/discord/core"
	"github.com/KirkDiggler/etr-bot-discord/internal/domain/game"
	"github.com/KirkDiggler/etr-bot-discord/internal/markup"
	"github.com/KirkDiggler/etr-bot-discord/internal/services/actor"
	"github.com/KirkDiggler/etr-bot-discord/internal/services/roll"
)

// RollHandler handles the /etr roll family of subcommands
type RollHandler struct {
	rollService  roll.Service
	actorService actor.Service
	diceIDs      *core.CustomIDBuilder
	flashbackIDs *core.CustomIDBuilder
}

// RollHandlerConfig holds the configuration
type RollHandlerConfig struct {
	RollService        roll.Service
	ActorService       actor.Service
	DiceIDBuilder      *core.CustomIDBuilder
	FlashbackIDBuilder *core.CustomIDBuilder
}

// NewRollHandler creates a new roll handler
func NewRollHandler(cfg *RollHandlerConfig) (*RollHandler, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.RollService == nil {
		return nil, fmt.Errorf("roll service is required")
	}
	if cfg.ActorService == nil {
		return nil, fmt.Errorf("actor service is required")
	}

	diceIDs := cfg.DiceIDBuilder
	if diceIDs == nil {
		diceIDs = core.NewCustomIDBuilder("dice")
	}
	flashbackIDs := cfg.FlashbackIDBuilder
	if flashbackIDs == nil {
		flashbackIDs = core.NewCustomIDBuilder("flashback")
	}

	return &RollHandler{
		rollService:  cfg.RollService,
		actorService: cfg.ActorService,
		diceIDs:      diceIDs,
		flashbackIDs: flashbackIDs,
	}, nil
}

// HandleRoll handles /etr roll
func (h *RollHandler) HandleRoll(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	character, err := h.resolveCharacter(ctx, ctx.GetStringParam("character"))
	if err != nil {
		return nil, err
	}

	record, err := h.rollService.RollStat(ctx.Context, &roll.RollStatInput{
		ActorID:       character.ID,
		OwnerID:       ctx.UserID,
		GuildID:       ctx.GuildID,
		ChannelID:     ctx.ChannelID,
		Stat:          game.Stat(ctx.GetStringParam("stat")),
		EquipmentDice: ctx.GetIntParam("equipment"),
		AbilityDice:   ctx.GetIntParam("ability"),
	})
	if err != nil {
		return nil, core.FromError(err)
	}

	return h.postRoll(ctx, record)
}

// HandleAttack handles /etr attack
func (h *RollHandler) HandleAttack(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	input := &roll.RollAttackInput{
		OwnerID:   ctx.UserID,
		GuildID:   ctx.GuildID,
		ChannelID: ctx.ChannelID,
		Dice:      ctx.GetIntParam("dice"),
	}

	if name := ctx.GetStringParam("threat"); name != "" {
		threat, err := findActorByName(ctx, h.actorService, name)
		if err != nil {
			return nil, err
		}
		input.ActorID = threat.ID
	} else if input.Dice <= 0 {
		return nil, core.NewValidationError("Name a threat or give an attack pool size")
	}

	record, err := h.rollService.RollAttack(ctx.Context, input)
	if err != nil {
		return nil, core.FromError(err)
	}

	return h.postRoll(ctx, record)
}

// HandleLastStand handles /etr laststand
func (h *RollHandler) HandleLastStand(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	character, err := h.resolveCharacter(ctx, ctx.GetStringParam("character"))
	if err != nil {
		return nil, err
	}

	record, err := h.rollService.RollLastStand(ctx.Context, &roll.RollLastStandInput{
		ActorID:   character.ID,
		OwnerID:   ctx.UserID,
		GuildID:   ctx.GuildID,
		ChannelID: ctx.ChannelID,
	})
	if err != nil {
		return nil, core.FromError(err)
	}

	return h.postRoll(ctx, record)
}

// HandleInjury handles /etr injury. Injury rolls are informational and get
// no buttons or persistence.
func (h *RollHandler) HandleInjury(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	result, err := h.rollService.RollInjury(ctx.Context)
	if err != nil {
		return nil, core.FromError(err)
	}

	embed := builders.NewEmbed().
		Title("Injury roll").
		Description(fmt.Sprintf("Rolled a **%d**: %s", result.Value, result.Severity)).
		Color(builders.ColorWarning).
		Build()

	return &core.HandlerResult{
		Response: core.NewEmbedResponse(embed),
	}, nil
}

// HandleImport handles /etr import. It rebuilds a record from exported die
// markup so an old roll can be allocated again.
func (h *RollHandler) HandleImport(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	pool, err := markup.Parse(ctx.GetStringParam("markup"))
	if err != nil {
		return nil, core.NewValidationError("That does not look like exported die markup")
	}
	if len(pool.Dice) == 0 {
		return nil, core.NewValidationError("No dice found in that markup")
	}

	record, err := h.rollService.Import(ctx.Context, &roll.ImportInput{
		OwnerID:   ctx.UserID,
		GuildID:   ctx.GuildID,
		ChannelID: ctx.ChannelID,
		Flavor:    ctx.GetStringParam("flavor"),
		IsAttack:  pool.IsAttack,
		Dice:      pool.Dice,
	})
	if err != nil {
		return nil, core.FromError(err)
	}

	return h.postRoll(ctx, record)
}

// postRoll posts the roll message and binds the posted message ID back to
// the record so die clicks can find it.
func (h *RollHandler) postRoll(ctx *core.InteractionContext, record *game.RollRecord) (*core.HandlerResult, error) {
	response := rollResponse(record, h.diceIDs, h.flashbackIDs)

	if err := ctx.Responder.Respond(response); err != nil {
		return nil, core.NewInternalError(err)
	}

	msg, err := ctx.Responder.OriginalMessage()
	if err != nil {
		return nil, core.NewInternalError(err)
	}

	if err := h.rollService.AttachMessage(ctx.Context, record.ID, msg.ID); err != nil {
		return nil, core.NewInternalError(err)
	}

	// Already responded above
	return &core.HandlerResult{}, nil
}

// resolveCharacter finds the character to roll for. With no name given the
// user's only character is used; owning several requires naming one.
func (h *RollHandler) resolveCharacter(ctx *core.InteractionContext, name string) (*game.Actor, error) {
	owned, err := h.actorService.GetOwned(ctx.Context, ctx.GuildID, ctx.UserID)
	if err != nil {
		return nil, core.NewInternalError(err)
	}

	var characters []*game.Actor
	for _, a := range owned {
		if a.Kind == game.ActorCharacter {
			characters = append(characters, a)
		}
	}

	if name == "" {
		switch len(characters) {
		case 0:
			return nil, core.NewUserError("You have no registered character. Use /etr character first.", 404)
		case 1:
			return characters[0], nil
		default:
			return nil, core.NewValidationError("You own several characters, name the one to roll for")
		}
	}

	for _, a := range characters {
		if strings.EqualFold(a.Name, name) {
			return a, nil
		}
	}
	return nil, core.NewNotFoundError("character '" + name + "'")
}

// findActorByName matches any registered actor in the guild by name.
func findActorByName(ctx *core.InteractionContext, svc actor.Service, name string) (*game.Actor, error) {
	all, err := svc.ListByGuild(ctx.Context, ctx.GuildID)
	if err != nil {
		return nil, core.NewInternalError(err)
	}

	for _, a := range all {
		if strings.EqualFold(a.Name, name) {
			return a, nil
		}
	}
	return nil, core.NewNotFoundError("actor '" + name + "'")
}
