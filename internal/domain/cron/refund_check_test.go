package cron

import (
	"context"
	"database/sql"
	"sync/atomic"
	"testing"
	"time"

	"github.com/raffler-space/backend/internal/domain/blockchain"
	"github.com/raffler-space/backend/internal/domain/blockchain/types"
	"github.com/raffler-space/backend/internal/entity"
	"github.com/raffler-space/backend/internal/repository"
	"github.com/raffler-space/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_RefundCheckCronJob_Threshold(t *testing.T) {
	ctx := testutil.MockContext()
	raffleRepo := repository.NewRaffleRepository()

	_, err := testutil.SampleBlockchain(ctx, nil)
	require.NoError(t, err)

	// Sold counters per contract raffle id: one raffle exactly at the
	// threshold, one just below it.
	sold := map[int64]int64{1: 9900, 2: 9899}
	manager := blockchain.NewManager(ctx, repository.NewBlockChainRepository())
	manager.AddEthClient("eth", &testutil.MockEthClient{
		RaffleInfoFunc: func(ctx context.Context, contractRaffleID int64) (types.RaffleInfo, error) {
			return types.RaffleInfo{
				ContractRaffleID: contractRaffleID,
				TicketsSold:      sold[contractRaffleID],
				MaxTickets:       10000,
			}, nil
		},
	})

	atThreshold, err := testutil.SampleRaffle(ctx, &entity.Raffle{
		ContractRaffleID: sql.NullInt64{Int64: 1, Valid: true},
		MaxTickets:       10000,
		Status:           entity.RaffleActive,
		DrawDate:         time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)

	belowThreshold, err := testutil.SampleRaffle(ctx, &entity.Raffle{
		ContractRaffleID: sql.NullInt64{Int64: 2, Valid: true},
		MaxTickets:       10000,
		Status:           entity.RaffleActive,
		DrawDate:         time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)

	NewRefundCheckCronJob(raffleRepo, manager).Do(ctx)

	// 99.00% sold is completion territory, the drift job takes it from here.
	got, err := raffleRepo.GetByID(ctx, atThreshold.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RaffleActive, got.Status)

	// 98.99% sold misses the threshold, the raffle moves to refunding.
	got, err = raffleRepo.GetByID(ctx, belowThreshold.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RaffleRefunding, got.Status)
}

func Test_RefundCheckCronJob_SkipBeforeDrawDate(t *testing.T) {
	ctx := testutil.MockContext()
	raffleRepo := repository.NewRaffleRepository()

	_, err := testutil.SampleBlockchain(ctx, nil)
	require.NoError(t, err)

	manager := blockchain.NewManager(ctx, repository.NewBlockChainRepository())
	manager.AddEthClient("eth", &testutil.MockEthClient{
		RaffleInfoFunc: func(ctx context.Context, contractRaffleID int64) (types.RaffleInfo, error) {
			return types.RaffleInfo{ContractRaffleID: contractRaffleID, MaxTickets: 100}, nil
		},
	})

	running, err := testutil.SampleRaffle(ctx, &entity.Raffle{
		ContractRaffleID: sql.NullInt64{Int64: 1, Valid: true},
		Status:           entity.RaffleActive,
		DrawDate:         time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	NewRefundCheckCronJob(raffleRepo, manager).Do(ctx)

	// Nothing sold yet, but the draw date is still ahead.
	got, err := raffleRepo.GetByID(ctx, running.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RaffleActive, got.Status)
}

func Test_RefundCheckCronJob_BulkChainScan(t *testing.T) {
	ctx := testutil.MockContext()
	raffleRepo := repository.NewRaffleRepository()

	_, err := testutil.SampleBlockchain(ctx, nil)
	require.NoError(t, err)

	sold := map[int64]int64{0: 100, 1: 9900, 2: 9800}
	var reads atomic.Int64
	manager := blockchain.NewManager(ctx, repository.NewBlockChainRepository())
	manager.AddEthClient("eth", &testutil.MockEthClient{
		RaffleCounterFunc: func(ctx context.Context) (int64, error) {
			return 3, nil
		},
		RaffleInfoFunc: func(ctx context.Context, contractRaffleID int64) (types.RaffleInfo, error) {
			reads.Add(1)
			return types.RaffleInfo{
				ContractRaffleID: contractRaffleID,
				TicketsSold:      sold[contractRaffleID],
				MaxTickets:       10000,
			}, nil
		},
	})

	aboveThreshold, err := testutil.SampleRaffle(ctx, &entity.Raffle{
		ContractRaffleID: sql.NullInt64{Int64: 1, Valid: true},
		MaxTickets:       10000,
		Status:           entity.RaffleActive,
		DrawDate:         time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)

	belowThreshold, err := testutil.SampleRaffle(ctx, &entity.Raffle{
		ContractRaffleID: sql.NullInt64{Int64: 2, Valid: true},
		MaxTickets:       10000,
		Status:           entity.RaffleActive,
		DrawDate:         time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)

	NewRefundCheckCronJob(raffleRepo, manager).Do(ctx)

	got, err := raffleRepo.GetByID(ctx, aboveThreshold.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RaffleActive, got.Status)

	got, err = raffleRepo.GetByID(ctx, belowThreshold.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RaffleRefunding, got.Status)

	// One full scan serves both raffles, no per-raffle reads on top of it.
	require.EqualValues(t, 3, reads.Load())
}

func Test_RefundCheckCronJob_FallBackToMirrorCounter(t *testing.T) {
	ctx := testutil.MockContext()
	raffleRepo := repository.NewRaffleRepository()

	// No chain is registered at all, the mirror counter decides.
	manager := blockchain.NewManager(ctx, repository.NewBlockChainRepository())

	underSold, err := testutil.SampleRaffle(ctx, &entity.Raffle{
		ContractRaffleID: sql.NullInt64{Int64: 1, Valid: true},
		MaxTickets:       100,
		TicketsSold:      50,
		Status:           entity.RaffleActive,
		DrawDate:         time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)

	NewRefundCheckCronJob(raffleRepo, manager).Do(ctx)

	got, err := raffleRepo.GetByID(ctx, underSold.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RaffleRefunding, got.Status)
}
