package middleware

import (
	"log"
	"time"

	"github.com/KirkDiggler/etr-bot-discord/internal/discord/core"
)

// LoggingMiddleware logs each handled interaction and its duration
func LoggingMiddleware() core.Middleware {
	return func(next core.Handler) core.Handler {
		return wrap(next, func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
			logRequest(ctx)

			start := time.Now()
			result, err := next.Handle(ctx)
			duration := time.Since(start)

			log.Printf("[discord] %s completed in %v", interactionName(ctx), duration)

			return result, err
		})
	}
}

func logRequest(ctx *core.InteractionContext) {
	switch {
	case ctx.IsCommand():
		log.Printf("[discord] command %s user=%s guild=%s",
			interactionName(ctx), ctx.UserID, ctx.GuildID)
	case ctx.IsComponent():
		log.Printf("[discord] component %s user=%s guild=%s",
			interactionName(ctx), ctx.UserID, ctx.GuildID)
	case ctx.IsModal():
		log.Printf("[discord] modal %s user=%s guild=%s",
			interactionName(ctx), ctx.UserID, ctx.GuildID)
	}
}

func interactionName(ctx *core.InteractionContext) string {
	if ctx.IsCommand() {
		name := ctx.GetCommandName()
		if sub := ctx.GetSubcommand(); sub != "" {
			name += "/" + sub
		}
		return name
	}

	if parsed, err := core.ParseCustomID(ctx.GetCustomID()); err == nil {
		return parsed.Domain + ":" + parsed.Action
	}
	return ctx.GetCustomID()
}
