package reconcile

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/raffler-space/backend/internal/domain/blockchain/types"
	"github.com/raffler-space/backend/internal/entity"
	"github.com/raffler-space/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

type fakeReaderProvider struct {
	info    types.RaffleInfo
	infoErr error
	err     error
}

func (p fakeReaderProvider) Reader(chain string) (RaffleInfoReader, error) {
	if p.err != nil {
		return nil, p.err
	}

	return fakeReader{info: p.info, err: p.infoErr}, nil
}

type fakeReader struct {
	info types.RaffleInfo
	err  error
}

func (r fakeReader) RaffleInfo(ctx context.Context, contractRaffleID int64) (types.RaffleInfo, error) {
	return r.info, r.err
}

func Test_Reconciler_MirrorOnlyBeforeDeploy(t *testing.T) {
	ctx := testutil.MockContext()
	reconciler := NewReconciler(fakeReaderProvider{})

	view := reconciler.Resolve(ctx, &entity.Raffle{
		Base:        entity.Base{ID: "raffle1"},
		Chain:       "eth",
		Status:      entity.RaffleDraft,
		TicketsSold: 3,
	})

	require.False(t, view.OnChain)
	require.Equal(t, string(entity.RaffleDraft), view.Status)
	require.Equal(t, int64(3), view.TicketsSold)
	require.Nil(t, view.ContractRaffleID)
}

func Test_Reconciler_ContractWins(t *testing.T) {
	ctx := testutil.MockContext()

	// The mirror lags behind the contract by two tickets.
	reconciler := &Reconciler{
		readers: fakeReaderProvider{
			info: types.RaffleInfo{
				ContractRaffleID: 5,
				TicketsSold:      12,
				MaxTickets:       100,
				EndTime:          time.Now().Add(time.Hour),
				IsActive:         true,
			},
		},
		now: time.Now,
	}

	view := reconciler.Resolve(ctx, &entity.Raffle{
		Base:             entity.Base{ID: "raffle1"},
		Chain:            "eth",
		ContractRaffleID: sql.NullInt64{Int64: 5, Valid: true},
		Status:           entity.RaffleActive,
		TicketsSold:      10,
	})

	require.True(t, view.OnChain)
	require.True(t, view.IsActive)
	require.False(t, view.HasEnded)
	require.Equal(t, int64(12), view.TicketsSold)
	require.Equal(t, string(entity.RaffleActive), view.Status)
}

func Test_Reconciler_EndedOnChain(t *testing.T) {
	ctx := testutil.MockContext()

	endTime := time.Now().Add(-time.Minute)
	reconciler := &Reconciler{
		readers: fakeReaderProvider{
			info: types.RaffleInfo{
				ContractRaffleID: 5,
				EndTime:          endTime,
				Winner:           "0xwinner",
				IsActive:         true,
			},
		},
		now: time.Now,
	}

	view := reconciler.Resolve(ctx, &entity.Raffle{
		Base:             entity.Base{ID: "raffle1"},
		Chain:            "eth",
		ContractRaffleID: sql.NullInt64{Int64: 5, Valid: true},
		Status:           entity.RaffleActive,
	})

	require.True(t, view.HasEnded)
	require.False(t, view.IsActive)
	require.Equal(t, "0xwinner", view.WinnerAddress)
	require.Equal(t, string(entity.RaffleCompleted), view.Status)
}

func Test_Reconciler_DegradeToMirrorOnChainFailure(t *testing.T) {
	ctx := testutil.MockContext()

	reconciler := NewReconciler(fakeReaderProvider{
		infoErr: errors.New("connection refused"),
	})

	view := reconciler.Resolve(ctx, &entity.Raffle{
		Base:             entity.Base{ID: "raffle1"},
		Chain:            "eth",
		ContractRaffleID: sql.NullInt64{Int64: 5, Valid: true},
		Status:           entity.RaffleActive,
		TicketsSold:      10,
	})

	require.False(t, view.OnChain)
	require.True(t, view.IsActive)
	require.Equal(t, int64(10), view.TicketsSold)
	require.Equal(t, string(entity.RaffleActive), view.Status)
}

func Test_Reconciler_ResolveAllSurvivesFailures(t *testing.T) {
	ctx := testutil.MockContext()

	reconciler := NewReconciler(fakeReaderProvider{
		err: errors.New("chain is not supported"),
	})

	views := reconciler.ResolveAll(ctx, []entity.Raffle{
		{Base: entity.Base{ID: "raffle1"}, Status: entity.RaffleActive},
		{
			Base:             entity.Base{ID: "raffle2"},
			ContractRaffleID: sql.NullInt64{Int64: 1, Valid: true},
			Status:           entity.RafflePending,
		},
	})

	require.Len(t, views, 2)
	require.Equal(t, "raffle1", views[0].ID)
	require.Equal(t, "raffle2", views[1].ID)
	require.False(t, views[1].OnChain)
}
