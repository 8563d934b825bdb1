package allocation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/etr-bot-discord/internal/domain/game"
	etrerr "github.com/KirkDiggler/etr-bot-discord/internal/errors"
	mockrollrecords "github.com/KirkDiggler/etr-bot-discord/internal/repositories/rollrecords/mock"
	"github.com/KirkDiggler/etr-bot-discord/internal/services/allocation"
)

func playerRecord() *game.RollRecord {
	return &game.RollRecord{
		ID:        "record-1",
		OwnerID:   "user-1",
		MessageID: "message-1",
		Dice: []game.Die{
			{Value: 6, Index: 1, Tier: game.TierCritical},
			{Value: 4, Index: 1, Tier: game.TierSuccess},
			{Value: 2, Index: 1, Tier: game.TierDiscard},
		},
	}
}

func threatRecord() *game.RollRecord {
	return &game.RollRecord{
		ID:        "record-2",
		OwnerID:   "gm-1",
		MessageID: "message-2",
		IsAttack:  true,
		Dice: []game.Die{
			{Value: 5, Index: 1, Tier: game.TierSuccess},
			{Value: 2, Index: 1, Tier: game.TierDiscard},
		},
	}
}

func newService(t *testing.T) (allocation.Service, *mockrollrecords.MockRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mockrollrecords.NewMockRepository(ctrl)
	svc := allocation.NewService(&allocation.ServiceConfig{
		RecordRepository: repo,
	})
	return svc, repo
}

func TestToggleDie_AllocatesPlayerDie(t *testing.T) {
	svc, repo := newService(t)

	repo.EXPECT().
		GetByMessage(gomock.Any(), "message-1").
		Return(playerRecord(), nil)
	repo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record *game.RollRecord) error {
			assert.True(t, record.Dice[0].Allocated)
			return nil
		})

	out, err := svc.ToggleDie(context.Background(), &allocation.ToggleDieInput{
		MessageID: "message-1",
		UserID:    "user-1",
		Tier:      game.TierCritical,
		Index:     1,
		Value:     6,
	})
	require.NoError(t, err)
	assert.True(t, out.Marked)
	assert.True(t, out.Die.Allocated)
	assert.False(t, out.Die.CrossedOut)
}

func TestToggleDie_SecondToggleClears(t *testing.T) {
	svc, repo := newService(t)

	record := playerRecord()
	record.Dice[0].Allocated = true

	repo.EXPECT().GetByMessage(gomock.Any(), "message-1").Return(record, nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	out, err := svc.ToggleDie(context.Background(), &allocation.ToggleDieInput{
		MessageID: "message-1",
		UserID:    "user-1",
		Tier:      game.TierCritical,
		Index:     1,
		Value:     6,
	})
	require.NoError(t, err)
	assert.False(t, out.Marked)
	assert.False(t, out.Die.Allocated)
}

func TestToggleDie_ThreatCrossesOut(t *testing.T) {
	svc, repo := newService(t)

	repo.EXPECT().GetByMessage(gomock.Any(), "message-2").Return(threatRecord(), nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	out, err := svc.ToggleDie(context.Background(), &allocation.ToggleDieInput{
		MessageID: "message-2",
		UserID:    "gm-1",
		IsGM:      true,
		Tier:      game.TierSuccess,
		Index:     1,
		Value:     5,
	})
	require.NoError(t, err)
	assert.True(t, out.Marked)
	assert.True(t, out.Die.CrossedOut)
	assert.False(t, out.Die.Allocated)
}

func TestToggleDie_DisabledDieRejected(t *testing.T) {
	svc, repo := newService(t)

	repo.EXPECT().GetByMessage(gomock.Any(), "message-1").Return(playerRecord(), nil)

	_, err := svc.ToggleDie(context.Background(), &allocation.ToggleDieInput{
		MessageID: "message-1",
		UserID:    "user-1",
		Tier:      game.TierDiscard,
		Index:     1,
		Value:     2,
	})
	require.Error(t, err)
	assert.True(t, etrerr.IsFailedPrecondition(err))
}

func TestToggleDie_PermissionDenied(t *testing.T) {
	svc, repo := newService(t)

	repo.EXPECT().GetByMessage(gomock.Any(), "message-1").Return(playerRecord(), nil)

	_, err := svc.ToggleDie(context.Background(), &allocation.ToggleDieInput{
		MessageID: "message-1",
		UserID:    "someone-else",
		Tier:      game.TierCritical,
		Index:     1,
		Value:     6,
	})
	require.Error(t, err)
	assert.True(t, etrerr.IsPermissionDenied(err))
}

func TestToggleDie_GMCanToggleAnyRecord(t *testing.T) {
	svc, repo := newService(t)

	repo.EXPECT().GetByMessage(gomock.Any(), "message-1").Return(playerRecord(), nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	out, err := svc.ToggleDie(context.Background(), &allocation.ToggleDieInput{
		MessageID: "message-1",
		UserID:    "gm-1",
		IsGM:      true,
		Tier:      game.TierCritical,
		Index:     1,
		Value:     6,
	})
	require.NoError(t, err)
	assert.True(t, out.Marked)
}

func TestToggleDie_FallbackLookupIgnoresTier(t *testing.T) {
	svc, repo := newService(t)

	repo.EXPECT().GetByMessage(gomock.Any(), "message-1").Return(playerRecord(), nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	// Stale tier on the clicked component: the die (1, 4) lives in the
	// success tier, not critical.
	out, err := svc.ToggleDie(context.Background(), &allocation.ToggleDieInput{
		MessageID: "message-1",
		UserID:    "user-1",
		Tier:      game.TierCritical,
		Index:     1,
		Value:     4,
	})
	require.NoError(t, err)
	assert.Equal(t, game.TierSuccess, out.Die.Tier)
	assert.True(t, out.Marked)
}

func TestToggleDie_DieNotFound(t *testing.T) {
	svc, repo := newService(t)

	repo.EXPECT().GetByMessage(gomock.Any(), "message-1").Return(playerRecord(), nil)

	_, err := svc.ToggleDie(context.Background(), &allocation.ToggleDieInput{
		MessageID: "message-1",
		UserID:    "user-1",
		Tier:      game.TierCritical,
		Index:     9,
		Value:     6,
	})
	require.Error(t, err)
	assert.True(t, etrerr.IsNotFound(err))
}

func TestToggleDie_PersistFailureSurfaces(t *testing.T) {
	svc, repo := newService(t)

	repo.EXPECT().GetByMessage(gomock.Any(), "message-1").Return(playerRecord(), nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(etrerr.Internal("redis down"))

	_, err := svc.ToggleDie(context.Background(), &allocation.ToggleDieInput{
		MessageID: "message-1",
		UserID:    "user-1",
		Tier:      game.TierCritical,
		Index:     1,
		Value:     6,
	})
	require.Error(t, err)
}

func TestToggleDie_RecordNotFound(t *testing.T) {
	svc, repo := newService(t)

	repo.EXPECT().
		GetByMessage(gomock.Any(), "missing").
		Return(nil, etrerr.NotFound("no roll record"))

	_, err := svc.ToggleDie(context.Background(), &allocation.ToggleDieInput{
		MessageID: "missing",
		UserID:    "user-1",
	})
	require.Error(t, err)
	assert.True(t, etrerr.IsNotFound(err))
}
