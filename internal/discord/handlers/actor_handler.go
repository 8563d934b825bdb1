package handlers

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/etr-bot-discord/internal/discord/builders"
	"github.com/KirkDiggler/etr-bot-discord/internal/discord/core"
	"github.com/KirkDiggler/etr-bot-discord/internal/domain/game"
	"github.com/KirkDiggler/etr-bot-discord/internal/services/actor"
)

// ActorHandler handles actor registration and listing
type ActorHandler struct {
	actorService actor.Service
}

// ActorHandlerConfig holds the configuration
type ActorHandlerConfig struct {
	ActorService actor.Service
}

// NewActorHandler creates a new actor handler
func NewActorHandler(cfg *ActorHandlerConfig) (*ActorHandler, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.ActorService == nil {
		return nil, fmt.Errorf("actor service is required")
	}

	return &ActorHandler{actorService: cfg.ActorService}, nil
}

// HandleRegisterCharacter handles /etr character
func (h *ActorHandler) HandleRegisterCharacter(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	stats := make(map[game.Stat]int, len(game.Stats))
	for _, stat := range game.Stats {
		stats[stat] = ctx.GetIntParam(string(stat))
	}

	input := &actor.RegisterCharacterInput{
		OwnerID: ctx.UserID,
		GuildID: ctx.GuildID,
		Name:    ctx.GetStringParam("name"),
		Stats:   stats,
		Blood:   ctx.GetIntParam("blood"),
	}

	if lsName := ctx.GetStringParam("laststand"); lsName != "" {
		input.LastStand = &game.LastStand{
			Name: lsName,
			Dice: ctx.GetIntParam("laststand_dice"),
		}
	}

	registered, err := h.actorService.RegisterCharacter(ctx.Context, input)
	if err != nil {
		return nil, core.FromError(err)
	}

	embed := builders.SuccessEmbed(
		"Character registered",
		fmt.Sprintf("**%s** is ready to eat the Reich.", registered.Name),
	).
		Field("Stats", statLine(registered), false)
	if registered.LastStand != nil {
		embed.Field("Last stand", fmt.Sprintf("%s (%dd6)", registered.LastStand.Name, registered.LastStand.Dice), false)
	}

	return &core.HandlerResult{
		Response: core.NewEmbedResponse(embed.Build()).AsEphemeral(),
	}, nil
}

// HandleRegisterThreat handles /etr threat. Only the GM can run threats.
func (h *ActorHandler) HandleRegisterThreat(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	if !ctx.IsGM() {
		return nil, core.NewForbiddenError("Only the GM can register threats")
	}

	registered, err := h.actorService.RegisterThreat(ctx.Context, &actor.RegisterThreatInput{
		GuildID:    ctx.GuildID,
		Name:       ctx.GetStringParam("name"),
		Kind:       game.ActorKind(ctx.GetStringParam("kind")),
		ThreatMax:  ctx.GetIntParam("max"),
		AttackDice: ctx.GetIntParam("attack"),
	})
	if err != nil {
		return nil, core.FromError(err)
	}

	embed := builders.SuccessEmbed(
		"Threat registered",
		fmt.Sprintf("**%s** now menaces the table with %dd6 attacks.", registered.Name, registered.Threat.Attack),
	).Build()

	return &core.HandlerResult{
		Response: core.NewEmbedResponse(embed).AsEphemeral(),
	}, nil
}

// HandleDelete handles /etr delete. Players can delete their own actors,
// the GM can delete any.
func (h *ActorHandler) HandleDelete(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	target, err := findActorByName(ctx, h.actorService, ctx.GetStringParam("name"))
	if err != nil {
		return nil, err
	}

	if target.OwnerID != ctx.UserID && !ctx.IsGM() {
		return nil, core.NewForbiddenError("Only the owner or the GM can delete an actor")
	}

	if err := h.actorService.Delete(ctx.Context, target.ID); err != nil {
		return nil, core.FromError(err)
	}

	return &core.HandlerResult{
		Response: core.NewEphemeralResponse(fmt.Sprintf("**%s** removed.", target.Name)),
	}, nil
}

// HandleList handles /etr actors
func (h *ActorHandler) HandleList(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	all, err := h.actorService.ListByGuild(ctx.Context, ctx.GuildID)
	if err != nil {
		return nil, core.FromError(err)
	}

	if len(all) == 0 {
		return &core.HandlerResult{
			Response: core.NewEphemeralResponse("No actors registered yet."),
		}, nil
	}

	embed := builders.NewEmbed().
		Title("Registered actors").
		Color(builders.ColorPrimary)

	for _, a := range all {
		embed.Field(a.Name, describeActor(a), false)
	}

	return &core.HandlerResult{
		Response: core.NewEmbedResponse(embed.Build()).AsEphemeral(),
	}, nil
}

func statLine(a *game.Actor) string {
	parts := make([]string, 0, len(game.Stats))
	for _, stat := range game.Stats {
		parts = append(parts, fmt.Sprintf("%s %d", game.StatLabels[stat], a.StatValue(stat)))
	}
	return strings.Join(parts, " | ")
}

func describeActor(a *game.Actor) string {
	switch a.Kind {
	case game.ActorCharacter:
		return fmt.Sprintf("Character owned by <@%s>. %s", a.OwnerID, statLine(a))
	case game.ActorLocation:
		if a.Threat != nil {
			return fmt.Sprintf("Location. Threat %d/%d, attacks with %dd6", a.Threat.Value, a.Threat.Max, a.Threat.Attack)
		}
		return "Location"
	default:
		if a.Threat != nil {
			return fmt.Sprintf("NPC. Threat %d/%d, attacks with %dd6", a.Threat.Value, a.Threat.Max, a.Threat.Attack)
		}
		return "NPC"
	}
}
