package handlers

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/etr-bot-discord/internal/discord/builders"
	"github.com/KirkDiggler/etr-bot-discord/internal/discord/core"
	"github.com/KirkDiggler/etr-bot-discord/internal/domain/game"
	"github.com/KirkDiggler/etr-bot-discord/internal/services/flashback"
	"github.com/KirkDiggler/etr-bot-discord/internal/services/roll"
)

// Custom ID fields the flashback modals use
const (
	fieldContext   = "context"
	fieldQuestion  = "question"
	fieldCharacter = "character"
)

// FlashbackHandler drives the flashback prompt flow: the button on a roll
// message opens an ephemeral prompt, selects and a randomize button fill it
// in, and the confirm modal resolves it into a new linked roll.
type FlashbackHandler struct {
	flashbackService flashback.Service
	rollService      roll.Service
	diceIDs          *core.CustomIDBuilder
	flashbackIDs     *core.CustomIDBuilder
}

// FlashbackHandlerConfig holds the configuration
type FlashbackHandlerConfig struct {
	FlashbackService   flashback.Service
	RollService        roll.Service
	DiceIDBuilder      *core.CustomIDBuilder
	FlashbackIDBuilder *core.CustomIDBuilder
}

// NewFlashbackHandler creates a new flashback handler
func NewFlashbackHandler(cfg *FlashbackHandlerConfig) (*FlashbackHandler, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.FlashbackService == nil {
		return nil, fmt.Errorf("flashback service is required")
	}
	if cfg.RollService == nil {
		return nil, fmt.Errorf("roll service is required")
	}

	diceIDs := cfg.DiceIDBuilder
	if diceIDs == nil {
		diceIDs = core.NewCustomIDBuilder("dice")
	}
	flashbackIDs := cfg.FlashbackIDBuilder
	if flashbackIDs == nil {
		flashbackIDs = core.NewCustomIDBuilder("flashback")
	}

	return &FlashbackHandler{
		flashbackService: cfg.FlashbackService,
		rollService:      cfg.RollService,
		diceIDs:          diceIDs,
		flashbackIDs:     flashbackIDs,
	}, nil
}

// HandleBegin opens the flashback prompt for a roll message
func (h *FlashbackHandler) HandleBegin(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	customID, err := core.ParseCustomID(ctx.GetCustomID())
	if err != nil {
		return nil, core.NewValidationError("Invalid flashback button")
	}

	record, err := h.rollService.GetRecord(ctx.Context, customID.Target)
	if err != nil {
		return nil, core.FromError(err)
	}

	if err := h.flashbackService.Begin(ctx.Context, &flashback.BeginInput{
		UserID:    ctx.UserID,
		GuildID:   ctx.GuildID,
		ChannelID: ctx.ChannelID,
		RecordID:  record.ID,
	}); err != nil {
		return nil, core.FromError(err)
	}

	options, err := h.flashbackService.Options(ctx.Context, &flashback.OptionsInput{
		GuildID: ctx.GuildID,
		ActorID: record.ActorID,
	})
	if err != nil {
		return nil, core.FromError(err)
	}

	response := h.promptResponse(options, game.FlashbackChoice{}).AsEphemeral()

	return &core.HandlerResult{Response: response}, nil
}

// HandleSelect records a dropdown pick on the prompt. Choosing the custom
// entry swaps the dropdown for a modal instead.
func (h *FlashbackHandler) HandleSelect(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	customID, err := core.ParseCustomID(ctx.GetCustomID())
	if err != nil {
		return nil, core.NewValidationError("Invalid selection")
	}

	values := ctx.GetSelectValues()
	if len(values) == 0 {
		return nil, core.NewValidationError("Please make a selection")
	}
	field := customID.Action
	picked := values[0]

	if picked == game.CustomOption {
		return h.openCustomModal(ctx, field)
	}

	prompt, err := h.flashbackService.Pending(ctx.Context, ctx.UserID)
	if err != nil {
		return nil, core.FromError(err)
	}

	choice := prompt.Choice
	switch field {
	case fieldContext:
		choice.Context = game.FlashbackContexts[picked]
	case fieldQuestion:
		choice.Question = game.FlashbackQuestions[picked]
	case fieldCharacter:
		choice.CharacterName = picked
	default:
		return nil, core.NewValidationError("Unknown flashback field")
	}

	return h.storeAndRefresh(ctx, prompt.RecordID, choice)
}

// HandleRandomize lets the dice pick the whole prompt
func (h *FlashbackHandler) HandleRandomize(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	prompt, err := h.flashbackService.Pending(ctx.Context, ctx.UserID)
	if err != nil {
		return nil, core.FromError(err)
	}

	record, err := h.rollService.GetRecord(ctx.Context, prompt.RecordID)
	if err != nil {
		return nil, core.FromError(err)
	}

	choice, err := h.flashbackService.Randomize(ctx.Context, &flashback.OptionsInput{
		GuildID: ctx.GuildID,
		ActorID: record.ActorID,
	})
	if err != nil {
		return nil, core.FromError(err)
	}

	return h.storeAndRefresh(ctx, prompt.RecordID, *choice)
}

// HandleConfirm opens the description modal. The actual roll happens on
// modal submit so the player always answers the question.
func (h *FlashbackHandler) HandleConfirm(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	prompt, err := h.flashbackService.Pending(ctx.Context, ctx.UserID)
	if err != nil {
		return nil, core.FromError(err)
	}

	placeholder := "What happened back then?"
	if prompt.Choice.Question != "" {
		placeholder = game.ResolveQuestion(prompt.Choice.Question, prompt.Choice.CharacterName)
	}
	if len(placeholder) > 100 {
		placeholder = placeholder[:100]
	}

	modal := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: h.flashbackIDs.Modal("submit", ""),
			Title:    "Flashback",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "description",
							Label:       "Your answer",
							Style:       discordgo.TextInputParagraph,
							Placeholder: placeholder,
							Required:    false,
							MaxLength:   500,
						},
					},
				},
			},
		},
	}

	if err := ctx.Session.InteractionRespond(ctx.Interaction.Interaction, modal); err != nil {
		return nil, core.NewInternalError(err)
	}

	return &core.HandlerResult{}, nil
}

// HandleSubmit resolves the prompt into a linked flashback roll
func (h *FlashbackHandler) HandleSubmit(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	record, err := h.flashbackService.Confirm(ctx.Context, &flashback.ConfirmInput{
		UserID:      ctx.UserID,
		Description: ctx.GetStringParam("description"),
	})
	if err != nil {
		return nil, core.FromError(err)
	}

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

	return &core.HandlerResult{}, nil
}

// HandleCustomModal stores a free-text answer for one prompt field
func (h *FlashbackHandler) HandleCustomModal(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	customID, err := core.ParseCustomID(ctx.GetCustomID())
	if err != nil {
		return nil, core.NewValidationError("Invalid modal")
	}

	prompt, err := h.flashbackService.Pending(ctx.Context, ctx.UserID)
	if err != nil {
		return nil, core.FromError(err)
	}

	value := ctx.GetStringParam("value")
	choice := prompt.Choice
	switch customID.Target {
	case fieldContext:
		choice.Context = value
	case fieldQuestion:
		choice.Question = value
	case fieldCharacter:
		choice.CharacterName = value
	default:
		return nil, core.NewValidationError("Unknown flashback field")
	}

	if err := h.flashbackService.Begin(ctx.Context, &flashback.BeginInput{
		UserID:    ctx.UserID,
		GuildID:   prompt.GuildID,
		ChannelID: prompt.ChannelID,
		RecordID:  prompt.RecordID,
		Choice:    choice,
	}); err != nil {
		return nil, core.FromError(err)
	}

	return &core.HandlerResult{
		Response: core.NewEphemeralResponse(fmt.Sprintf("Saved your custom %s. Hit Confirm on the prompt when ready.", customID.Target)),
	}, nil
}

// HandleCancel abandons the prompt without rolling anything
func (h *FlashbackHandler) HandleCancel(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	if err := h.flashbackService.Cancel(ctx.Context, ctx.UserID); err != nil {
		return nil, core.FromError(err)
	}

	response := core.NewResponse("Flashback abandoned. The past stays buried.").AsUpdate()
	return &core.HandlerResult{Response: response}, nil
}

// storeAndRefresh persists the updated choice and re-renders the prompt
func (h *FlashbackHandler) storeAndRefresh(ctx *core.InteractionContext, recordID string, choice game.FlashbackChoice) (*core.HandlerResult, error) {
	if err := h.flashbackService.Begin(ctx.Context, &flashback.BeginInput{
		UserID:    ctx.UserID,
		GuildID:   ctx.GuildID,
		ChannelID: ctx.ChannelID,
		RecordID:  recordID,
		Choice:    choice,
	}); err != nil {
		return nil, core.FromError(err)
	}

	record, err := h.rollService.GetRecord(ctx.Context, recordID)
	if err != nil {
		return nil, core.FromError(err)
	}

	options, err := h.flashbackService.Options(ctx.Context, &flashback.OptionsInput{
		GuildID: ctx.GuildID,
		ActorID: record.ActorID,
	})
	if err != nil {
		return nil, core.FromError(err)
	}

	return &core.HandlerResult{
		Response: h.promptResponse(options, choice).AsUpdate(),
	}, nil
}

// openCustomModal swaps a dropdown for a free-text modal
func (h *FlashbackHandler) openCustomModal(ctx *core.InteractionContext, field string) (*core.HandlerResult, error) {
	modal := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: h.flashbackIDs.Modal("custom", field),
			Title:    "Write your own",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:  "value",
							Label:     "Your " + field,
							Style:     discordgo.TextInputShort,
							Required:  true,
							MaxLength: 200,
						},
					},
				},
			},
		},
	}

	if err := ctx.Session.InteractionRespond(ctx.Interaction.Interaction, modal); err != nil {
		return nil, core.NewInternalError(err)
	}

	return &core.HandlerResult{}, nil
}

// promptResponse renders the ephemeral flashback prompt
func (h *FlashbackHandler) promptResponse(options *flashback.Options, choice game.FlashbackChoice) *core.Response {
	content := "**Flashback**\nSet the scene, then confirm to roll with two bonus dice."

	components := builders.NewComponentBuilder(h.flashbackIDs)

	components.SelectMenu("When does this take place?", fieldContext, "", selectOptions(options.Contexts, choice.Context))
	components.NewRow()
	components.SelectMenu("What question does it answer?", fieldQuestion, "", selectOptions(options.Questions, choice.Question))
	components.NewRow()
	components.SelectMenu("Who shares the memory?", fieldCharacter, "", characterOptionsFor(options.Characters, choice.CharacterName))
	components.NewRow()

	components.EmojiButton("Randomize", "🎲", discordgo.SecondaryButton, "randomize", "")
	components.SuccessButton("Confirm", "confirm", "")
	components.DangerButton("Cancel", "cancel", "")

	return core.NewResponse(content).WithComponents(components.Build()...)
}

// selectOptions marks the currently chosen phrase as the default entry
func selectOptions(opts []flashback.Option, chosen string) []builders.SelectOption {
	out := make([]builders.SelectOption, 0, len(opts))
	for _, opt := range opts {
		out = append(out, builders.SelectOption{
			Label:   opt.Label,
			Value:   opt.Key,
			Default: chosen != "" && opt.Label == chosen,
		})
	}
	return out
}

func characterOptionsFor(opts []flashback.Option, chosen string) []builders.SelectOption {
	out := make([]builders.SelectOption, 0, len(opts))
	for _, opt := range opts {
		out = append(out, builders.SelectOption{
			Label:   opt.Label,
			Value:   opt.Key,
			Default: chosen != "" && opt.Key == chosen,
		})
	}
	return out
}
