package core

import (
	"fmt"
	"strings"
)

const (
	// CustomIDSeparator is the character used to separate parts
	CustomIDSeparator = ":"

	// MaxCustomIDLength is Discord's limit for custom IDs
	MaxCustomIDLength = 100
)

// CustomID is a parsed custom ID of the form domain:action[:target[:args...]]
type CustomID struct {
	// Domain is the top-level category (e.g., "dice", "flashback")
	Domain string

	// Action is the specific action (e.g., "toggle", "confirm")
	Action string

	// Target is the primary target of the action (e.g., a record ID)
	Target string

	// Args are additional arguments
	Args []string
}

// NewCustomID creates a new CustomID
func NewCustomID(domain, action string) *CustomID {
	return &CustomID{
		Domain: domain,
		Action: action,
	}
}

// WithTarget sets the target
func (c *CustomID) WithTarget(target string) *CustomID {
	c.Target = target
	return c
}

// WithArgs adds arguments
func (c *CustomID) WithArgs(args ...string) *CustomID {
	c.Args = append(c.Args, args...)
	return c
}

// Encode converts the CustomID to a string
func (c *CustomID) Encode() (string, error) {
	parts := []string{c.Domain, c.Action}
	if c.Target != "" {
		parts = append(parts, c.Target)
	}
	parts = append(parts, c.Args...)

	result := strings.Join(parts, CustomIDSeparator)
	if len(result) > MaxCustomIDLength {
		return "", fmt.Errorf("custom ID exceeds maximum length of %d characters", MaxCustomIDLength)
	}

	return result, nil
}

// MustEncode is like Encode but panics on error
func (c *CustomID) MustEncode() string {
	result, err := c.Encode()
	if err != nil {
		panic(err)
	}
	return result
}

// Arg returns the i-th argument, empty when out of range
func (c *CustomID) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// ParseCustomID parses a custom ID string
func ParseCustomID(customID string) (*CustomID, error) {
	if customID == "" {
		return nil, fmt.Errorf("empty custom ID")
	}

	parts := strings.Split(customID, CustomIDSeparator)
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid custom ID format: expected at least domain:action")
	}

	result := &CustomID{
		Domain: parts[0],
		Action: parts[1],
	}

	if len(parts) > 2 {
		result.Target = parts[2]
		result.Args = parts[3:]
	}

	return result, nil
}

// CustomIDBuilder builds custom IDs for a fixed domain
type CustomIDBuilder struct {
	domain string
}

// NewCustomIDBuilder creates a new builder for a domain
func NewCustomIDBuilder(domain string) *CustomIDBuilder {
	return &CustomIDBuilder{domain: domain}
}

// Build creates a CustomID for an action
func (b *CustomIDBuilder) Build(action string) *CustomID {
	return NewCustomID(b.domain, action)
}

// Button creates a button custom ID
func (b *CustomIDBuilder) Button(action, target string, args ...string) string {
	return NewCustomID(b.domain, action).
		WithTarget(target).
		WithArgs(args...).
		MustEncode()
}

// Select creates a select menu custom ID
func (b *CustomIDBuilder) Select(action, target string) string {
	return NewCustomID(b.domain, action).
		WithTarget(target).
		MustEncode()
}

// Modal creates a modal custom ID
func (b *CustomIDBuilder) Modal(action, target string) string {
	return NewCustomID(b.domain, action).
		WithTarget(target).
		MustEncode()
}
