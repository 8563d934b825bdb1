package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/etr-bot-discord/internal/discord/core"
	"github.com/KirkDiggler/etr-bot-discord/internal/domain/game"
	"github.com/KirkDiggler/etr-bot-discord/internal/markup"
	"github.com/KirkDiggler/etr-bot-discord/internal/services/allocation"
	"github.com/KirkDiggler/etr-bot-discord/internal/services/roll"
)

// DiceComponentHandler handles clicks on the die buttons of roll messages
type DiceComponentHandler struct {
	allocationService allocation.Service
	rollService       roll.Service
	diceIDs           *core.CustomIDBuilder
	flashbackIDs      *core.CustomIDBuilder
}

// DiceComponentHandlerConfig holds the configuration
type DiceComponentHandlerConfig struct {
	AllocationService  allocation.Service
	RollService        roll.Service
	DiceIDBuilder      *core.CustomIDBuilder
	FlashbackIDBuilder *core.CustomIDBuilder
}

// NewDiceComponentHandler creates a new dice component handler
func NewDiceComponentHandler(cfg *DiceComponentHandlerConfig) (*DiceComponentHandler, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.AllocationService == nil {
		return nil, fmt.Errorf("allocation service is required")
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

	return &DiceComponentHandler{
		allocationService: cfg.AllocationService,
		rollService:       cfg.RollService,
		diceIDs:           diceIDs,
		flashbackIDs:      flashbackIDs,
	}, nil
}

// HandleToggle flips one die's allocation state. The stored record is
// re-fetched and persisted first; only a successful persist updates the
// message, so a failure leaves the message showing the stored state and
// the clicker gets an ephemeral error instead.
func (h *DiceComponentHandler) HandleToggle(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	customID, err := core.ParseCustomID(ctx.GetCustomID())
	if err != nil {
		return nil, core.NewValidationError("Invalid die button")
	}

	index, err := strconv.Atoi(customID.Arg(0))
	if err != nil {
		return nil, core.NewValidationError("Invalid die button")
	}
	value, err := strconv.Atoi(customID.Arg(1))
	if err != nil {
		return nil, core.NewValidationError("Invalid die button")
	}

	out, err := h.allocationService.ToggleDie(ctx.Context, &allocation.ToggleDieInput{
		MessageID: ctx.MessageID(),
		UserID:    ctx.UserID,
		IsGM:      ctx.IsGM(),
		Tier:      game.Tier(customID.Target),
		Index:     index,
		Value:     value,
	})
	if err != nil {
		return nil, core.FromError(err)
	}

	response := rollResponse(out.Record, h.diceIDs, h.flashbackIDs).AsUpdate()

	return &core.HandlerResult{
		Response: response,
	}, nil
}

// HandleExport sends the roll as an HTML fragment attachment
func (h *DiceComponentHandler) HandleExport(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	customID, err := core.ParseCustomID(ctx.GetCustomID())
	if err != nil {
		return nil, core.NewValidationError("Invalid export button")
	}

	record, err := h.rollService.GetRecord(ctx.Context, customID.Target)
	if err != nil {
		return nil, core.FromError(err)
	}

	rendered := markup.Render(record)

	response := core.NewEphemeralResponse("Roll transcript attached.").
		WithFiles(&discordgo.File{
			Name:        "roll.html",
			ContentType: "text/html",
			Reader:      strings.NewReader(rendered),
		})

	return &core.HandlerResult{
		Response: response,
	}, nil
}
