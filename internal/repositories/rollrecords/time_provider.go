package rollrecords

import "time"

//go:generate mockgen -destination=mock/mock_time_provider.go -package=mockrollrecords github.com/KirkDiggler/etr-bot-discord/internal/repositories/rollrecords TimeProvider

type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider returns the wall clock
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
