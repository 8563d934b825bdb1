// Package handlers wires the game services to Discord interactions.
package handlers

import (
	"github.com/KirkDiggler/etr-bot-discord/internal/discord/core"
	"github.com/KirkDiggler/etr-bot-discord/internal/services"
)

// RegisterRoutes registers every command, component, and modal route with
// the pipeline. Die buttons live under the "dice" custom ID domain and the
// flashback flow under "flashback".
func RegisterRoutes(pipeline *core.Pipeline, provider *services.Provider) error {
	etrRouter := core.NewRouter("etr", pipeline)
	diceRouter := core.NewRouter("dice", pipeline)
	flashbackRouter := core.NewRouter("flashback", pipeline)

	rollHandler, err := NewRollHandler(&RollHandlerConfig{
		RollService:        provider.RollService,
		ActorService:       provider.ActorService,
		DiceIDBuilder:      diceRouter.GetCustomIDBuilder(),
		FlashbackIDBuilder: flashbackRouter.GetCustomIDBuilder(),
	})
	if err != nil {
		return err
	}

	actorHandler, err := NewActorHandler(&ActorHandlerConfig{
		ActorService: provider.ActorService,
	})
	if err != nil {
		return err
	}

	diceHandler, err := NewDiceComponentHandler(&DiceComponentHandlerConfig{
		AllocationService:  provider.AllocationService,
		RollService:        provider.RollService,
		DiceIDBuilder:      diceRouter.GetCustomIDBuilder(),
		FlashbackIDBuilder: flashbackRouter.GetCustomIDBuilder(),
	})
	if err != nil {
		return err
	}

	flashbackHandler, err := NewFlashbackHandler(&FlashbackHandlerConfig{
		FlashbackService:   provider.FlashbackService,
		RollService:        provider.RollService,
		DiceIDBuilder:      diceRouter.GetCustomIDBuilder(),
		FlashbackIDBuilder: flashbackRouter.GetCustomIDBuilder(),
	})
	if err != nil {
		return err
	}

	etrRouter.
		SubcommandFunc("etr", "roll", rollHandler.HandleRoll).
		SubcommandFunc("etr", "attack", rollHandler.HandleAttack).
		SubcommandFunc("etr", "laststand", rollHandler.HandleLastStand).
		SubcommandFunc("etr", "injury", rollHandler.HandleInjury).
		SubcommandFunc("etr", "import", rollHandler.HandleImport).
		SubcommandFunc("etr", "character", actorHandler.HandleRegisterCharacter).
		SubcommandFunc("etr", "threat", actorHandler.HandleRegisterThreat).
		SubcommandFunc("etr", "actors", actorHandler.HandleList).
		SubcommandFunc("etr", "delete", actorHandler.HandleDelete).
		Register()

	diceRouter.
		ComponentFunc("toggle", diceHandler.HandleToggle).
		ComponentFunc("export", diceHandler.HandleExport).
		Register()

	flashbackRouter.
		ComponentFunc("begin", flashbackHandler.HandleBegin).
		ComponentFunc(fieldContext, flashbackHandler.HandleSelect).
		ComponentFunc(fieldQuestion, flashbackHandler.HandleSelect).
		ComponentFunc(fieldCharacter, flashbackHandler.HandleSelect).
		ComponentFunc("randomize", flashbackHandler.HandleRandomize).
		ComponentFunc("confirm", flashbackHandler.HandleConfirm).
		ComponentFunc("cancel", flashbackHandler.HandleCancel).
		ModalFunc("submit", flashbackHandler.HandleSubmit).
		ModalFunc("custom", flashbackHandler.HandleCustomModal).
		Register()

	return nil
}
