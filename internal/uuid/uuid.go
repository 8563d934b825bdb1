// uuid simple generator that allows mocking
package uuid

import (
	"github.com/google/uuid"
)

// Generator is an interface for generating UUIDs
type Generator interface {
	New() string
}

// GoogleUUIDGenerator implements the Generator interface using Google's UUID package
type GoogleUUIDGenerator struct{}

// New generates a new UUID string
func (g *GoogleUUIDGenerator) New() string {
	return uuid.New().String()
}

// NewGoogleUUIDGenerator creates a new GoogleUUIDGenerator
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}

// FixedGenerator returns a predetermined sequence of IDs, for tests
type FixedGenerator struct {
	ids  []string
	next int
}

// NewFixedGenerator creates a generator that returns the given IDs in order
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// New returns the next predetermined ID, or the last one if exhausted
func (g *FixedGenerator) New() string {
	if len(g.ids) == 0 {
		return ""
	}
	if g.next >= len(g.ids) {
		return g.ids[len(g.ids)-1]
	}
	id := g.ids[g.next]
	g.next++
	return id
}
