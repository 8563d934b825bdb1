package core

import (
	"fmt"
	"strings"
)

// Router manages handlers for a specific domain. For slash commands the
// domain is the command name; for components and modals it is the first
// segment of the custom ID.
type Router struct {
	domain          string
	handlers        map[string]Handler
	middleware      []Middleware
	customIDBuilder *CustomIDBuilder
	pipeline        *Pipeline
}

// NewRouter creates a new domain router
func NewRouter(domain string, pipeline *Pipeline) *Router {
	return &Router{
		domain:          domain,
		handlers:        make(map[string]Handler),
		customIDBuilder: NewCustomIDBuilder(domain),
		pipeline:        pipeline,
	}
}

// Use adds middleware to this router
func (r *Router) Use(middleware ...Middleware) *Router {
	r.middleware = append(r.middleware, middleware...)
	return r
}

// Handle registers a handler for a specific action pattern
func (r *Router) Handle(pattern string, handler Handler) *Router {
	wrapped := handler
	for i := len(r.middleware) - 1; i >= 0; i-- {
		wrapped = r.middleware[i](wrapped)
	}

	r.handlers[pattern] = wrapped
	return r
}

// Command registers a slash command handler
func (r *Router) Command(name string, handler Handler) *Router {
	return r.Handle(fmt.Sprintf("cmd:%s", name), handler)
}

// CommandFunc registers a slash command handler function
func (r *Router) CommandFunc(name string, fn func(*InteractionContext) (*HandlerResult, error)) *Router {
	return r.Command(name, HandlerFunc(fn))
}

// Subcommand registers a subcommand handler
func (r *Router) Subcommand(parent, sub string, handler Handler) *Router {
	return r.Handle(fmt.Sprintf("cmd:%s:%s", parent, sub), handler)
}

// SubcommandFunc registers a subcommand handler function
func (r *Router) SubcommandFunc(parent, sub string, fn func(*InteractionContext) (*HandlerResult, error)) *Router {
	return r.Subcommand(parent, sub, HandlerFunc(fn))
}

// Component registers a component interaction handler
func (r *Router) Component(action string, handler Handler) *Router {
	return r.Handle(fmt.Sprintf("component:%s", action), handler)
}

// ComponentFunc registers a component interaction handler function
func (r *Router) ComponentFunc(action string, fn func(*InteractionContext) (*HandlerResult, error)) *Router {
	return r.Component(action, HandlerFunc(fn))
}

// Modal registers a modal submit handler
func (r *Router) Modal(action string, handler Handler) *Router {
	return r.Handle(fmt.Sprintf("modal:%s", action), handler)
}

// ModalFunc registers a modal submit handler function
func (r *Router) ModalFunc(action string, fn func(*InteractionContext) (*HandlerResult, error)) *Router {
	return r.Modal(action, HandlerFunc(fn))
}

// Build creates a single handler from all registered routes
func (r *Router) Build() Handler {
	return &routerHandler{
		domain:   r.domain,
		handlers: r.handlers,
	}
}

// Register registers this router with the pipeline
func (r *Router) Register() {
	if r.pipeline != nil {
		r.pipeline.Register(r.Build())
	}
}

// GetCustomIDBuilder returns the CustomID builder for this domain
func (r *Router) GetCustomIDBuilder() *CustomIDBuilder {
	return r.customIDBuilder
}

// routerHandler implements Handler for a router
type routerHandler struct {
	domain   string
	handlers map[string]Handler
}

// CanHandle checks if this router can handle the interaction
func (h *routerHandler) CanHandle(ctx *InteractionContext) bool {
	pattern := h.extractPattern(ctx)
	if pattern == "" {
		return false
	}

	_, ok := h.lookup(pattern)
	return ok
}

// Handle processes the interaction
func (h *routerHandler) Handle(ctx *InteractionContext) (*HandlerResult, error) {
	pattern := h.extractPattern(ctx)
	if pattern == "" {
		return nil, NewNotFoundError("handler")
	}

	handler, ok := h.lookup(pattern)
	if !ok {
		return nil, NewNotFoundError("handler")
	}

	return handler.Handle(ctx)
}

// lookup finds a handler by exact pattern, then by wildcard
func (h *routerHandler) lookup(pattern string) (Handler, bool) {
	if handler, ok := h.handlers[pattern]; ok {
		return handler, true
	}

	parts := strings.Split(pattern, ":")
	for i := len(parts); i > 0; i-- {
		wildcard := strings.Join(parts[:i], ":") + ":*"
		if handler, ok := h.handlers[wildcard]; ok {
			return handler, true
		}
	}

	return nil, false
}

// extractPattern extracts the routing pattern from the interaction
func (h *routerHandler) extractPattern(ctx *InteractionContext) string {
	if ctx.IsCommand() {
		if ctx.GetCommandName() != h.domain {
			return ""
		}
		if sub := ctx.GetSubcommand(); sub != "" {
			return fmt.Sprintf("cmd:%s:%s", h.domain, sub)
		}
		return fmt.Sprintf("cmd:%s", h.domain)
	}

	if ctx.IsComponent() || ctx.IsModal() {
		customID, err := ParseCustomID(ctx.GetCustomID())
		if err != nil || customID.Domain != h.domain {
			return ""
		}
		if ctx.IsModal() {
			return fmt.Sprintf("modal:%s", customID.Action)
		}
		return fmt.Sprintf("component:%s", customID.Action)
	}

	return ""
}
