package flashbackprompts

//go:generate mockgen -destination=mock/mock.go -package=mockflashbackprompts -source=interface.go

import (
	"context"
	"time"

	"github.com/KirkDiggler/etr-bot-discord/internal/domain/game"
)

// Prompt is the in-flight state of one user's flashback prompt. It exists
// from the moment the prompt is shown until the flashback is confirmed or
// abandoned. Abandoned prompts expire on their own.
type Prompt struct {
	UserID    string               `json:"user_id"`
	GuildID   string               `json:"guild_id"`
	ChannelID string               `json:"channel_id"`
	RecordID  string               `json:"record_id"`
	Choice    game.FlashbackChoice `json:"choice"`
	CreatedAt time.Time            `json:"created_at"`
}

// Repository stores at most one pending flashback prompt per user
type Repository interface {
	// Set stores or replaces the user's pending prompt
	Set(ctx context.Context, prompt *Prompt) error

	// Get retrieves the user's pending prompt
	Get(ctx context.Context, userID string) (*Prompt, error)

	// Delete removes the user's pending prompt
	Delete(ctx context.Context, userID string) error
}

type TimeProvider interface {
	Now() time.Time
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
