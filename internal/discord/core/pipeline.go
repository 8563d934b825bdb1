package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Pipeline manages handler registration and execution
type Pipeline struct {
	handlers     []Handler
	middleware   []Middleware
	errorHandler ErrorHandler

	mu sync.RWMutex
}

// Middleware is a function that wraps a handler
type Middleware func(Handler) Handler

// ErrorHandler handles errors that escape the middleware chain
type ErrorHandler func(ctx *InteractionContext, err error) *HandlerResult

// NewPipeline creates a new handler pipeline
func NewPipeline() *Pipeline {
	return &Pipeline{
		errorHandler: defaultErrorHandler,
	}
}

// Register adds handlers to the pipeline, wrapping each in the pipeline's
// middleware. Middleware must be added before the handlers it should wrap.
func (p *Pipeline) Register(handlers ...Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, h := range handlers {
		wrapped := h
		for i := len(p.middleware) - 1; i >= 0; i-- {
			wrapped = p.middleware[i](wrapped)
		}
		p.handlers = append(p.handlers, wrapped)
	}
}

// Use adds middleware to the pipeline
func (p *Pipeline) Use(middleware ...Middleware) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.middleware = append(p.middleware, middleware...)
}

// SetErrorHandler sets a custom error handler
func (p *Pipeline) SetErrorHandler(handler ErrorHandler) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.errorHandler = handler
}

// Execute runs the pipeline for an interaction. The first handler that can
// handle the interaction wins.
func (p *Pipeline) Execute(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	interactionCtx := NewInteractionContext(ctx, s, i)
	responder := interactionCtx.Responder

	p.mu.RLock()
	handlers := make([]Handler, len(p.handlers))
	copy(handlers, p.handlers)
	errorHandler := p.errorHandler
	p.mu.RUnlock()

	for _, handler := range handlers {
		if !handler.CanHandle(interactionCtx) {
			continue
		}

		result, err := handler.Handle(interactionCtx)
		if err != nil {
			result = errorHandler(interactionCtx, err)
		}

		if result != nil && result.Response != nil {
			if err := p.sendResponse(responder, result); err != nil {
				return fmt.Errorf("failed to send response: %w", err)
			}
		}

		return nil
	}

	if !responder.HasResponded() {
		return p.sendResponse(responder, &HandlerResult{
			Response: NewEphemeralResponse("I don't know how to handle that."),
		})
	}

	return nil
}

// sendResponse sends a response using the responder
func (p *Pipeline) sendResponse(responder *DiscordResponder, result *HandlerResult) error {
	if result.Deferred || responder.IsDeferred() {
		return responder.Edit(result.Response)
	}
	return responder.Respond(result.Response)
}

// HandlerCount returns the number of registered handlers
func (p *Pipeline) HandlerCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.handlers)
}

// defaultErrorHandler turns errors into ephemeral responses
func defaultErrorHandler(ctx *InteractionContext, err error) *HandlerResult {
	if handlerErr, ok := err.(*HandlerError); ok && handlerErr.ShowToUser {
		return &HandlerResult{
			Response: NewEphemeralResponse(handlerErr.UserMessage),
		}
	}

	return &HandlerResult{
		Response: NewEphemeralResponse("An error occurred while processing your request."),
	}
}

// MiddlewareChain creates a single middleware from multiple middleware
func MiddlewareChain(middleware ...Middleware) Middleware {
	return func(next Handler) Handler {
		for i := len(middleware) - 1; i >= 0; i-- {
			next = middleware[i](next)
		}
		return next
	}
}
