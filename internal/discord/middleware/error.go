// Package middleware provides cross-cutting handler wrappers for the
// interaction pipeline.
package middleware

import (
	"errors"
	"fmt"
	"log"

	"github.com/KirkDiggler/etr-bot-discord/internal/discord/core"
)

// ErrorConfig configures error handling behavior
type ErrorConfig struct {
	// LogErrors controls whether errors are logged
	LogErrors bool

	// DefaultUserMessage is shown when no user-friendly message exists
	DefaultUserMessage string

	// ErrorLogger allows custom logging
	ErrorLogger ErrorLogger
}

// ErrorLogger logs errors
type ErrorLogger func(ctx *core.InteractionContext, err error)

// DefaultErrorConfig returns sensible defaults
func DefaultErrorConfig() *ErrorConfig {
	return &ErrorConfig{
		LogErrors:          true,
		DefaultUserMessage: "An error occurred while processing your request.",
		ErrorLogger:        defaultErrorLogger,
	}
}

// ErrorMiddleware converts handler errors into ephemeral responses so the
// failure never escapes the triggering interaction
func ErrorMiddleware(config *ErrorConfig) core.Middleware {
	if config == nil {
		config = DefaultErrorConfig()
	}

	return func(next core.Handler) core.Handler {
		return wrap(next, func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
			result, err := next.Handle(ctx)
			if err == nil {
				return result, nil
			}

			if config.LogErrors && config.ErrorLogger != nil {
				config.ErrorLogger(ctx, err)
			}

			var message string
			var handlerErr *core.HandlerError
			if errors.As(err, &handlerErr) && handlerErr.ShowToUser {
				message = handlerErr.UserMessage
			} else {
				message = config.DefaultUserMessage
			}

			return &core.HandlerResult{
				Response: core.NewEphemeralResponse(message),
				Context: map[string]interface{}{
					"error": err,
				},
			}, nil
		})
	}
}

// RecoveryMiddleware recovers from panics in handlers
func RecoveryMiddleware() core.Middleware {
	return func(next core.Handler) core.Handler {
		return wrap(next, func(ctx *core.InteractionContext) (result *core.HandlerResult, err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("panic recovered in handler: %v", r)

					switch v := r.(type) {
					case error:
						err = v
					case string:
						err = errors.New(v)
					default:
						err = fmt.Errorf("panic: %v", r)
					}

					result = &core.HandlerResult{
						Response: core.NewEphemeralResponse("An unexpected error occurred. Please try again later."),
					}
				}
			}()

			return next.Handle(ctx)
		})
	}
}

// wrap preserves the inner handler's CanHandle while replacing Handle
func wrap(inner core.Handler, fn func(*core.InteractionContext) (*core.HandlerResult, error)) core.Handler {
	return &wrappedHandler{inner: inner, fn: fn}
}

type wrappedHandler struct {
	inner core.Handler
	fn    func(*core.InteractionContext) (*core.HandlerResult, error)
}

func (w *wrappedHandler) CanHandle(ctx *core.InteractionContext) bool {
	return w.inner.CanHandle(ctx)
}

func (w *wrappedHandler) Handle(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	return w.fn(ctx)
}

// defaultErrorLogger provides basic error logging
func defaultErrorLogger(ctx *core.InteractionContext, err error) {
	target := ctx.GetCommandName()
	if target == "" {
		target = ctx.GetCustomID()
	}

	log.Printf("handler error: %v (interaction=%s user=%s guild=%s)",
		err, target, ctx.UserID, ctx.GuildID)
}
