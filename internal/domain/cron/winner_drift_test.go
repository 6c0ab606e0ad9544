package cron

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/raffler-space/backend/internal/domain/blockchain"
	"github.com/raffler-space/backend/internal/domain/blockchain/types"
	"github.com/raffler-space/backend/internal/entity"
	"github.com/raffler-space/backend/internal/repository"
	"github.com/raffler-space/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_WinnerDriftCronJob_RecordDriftedWinner(t *testing.T) {
	ctx := testutil.MockContext()
	raffleRepo := repository.NewRaffleRepository()

	_, err := testutil.SampleBlockchain(ctx, nil)
	require.NoError(t, err)

	manager := blockchain.NewManager(ctx, repository.NewBlockChainRepository())
	manager.AddEthClient("eth", &testutil.MockEthClient{
		RaffleInfoFunc: func(ctx context.Context, contractRaffleID int64) (types.RaffleInfo, error) {
			return types.RaffleInfo{
				ContractRaffleID: contractRaffleID,
				Winner:           "0x00000000000000000000000000000000000000aa",
			}, nil
		},
	})

	drawing, err := testutil.SampleRaffle(ctx, &entity.Raffle{
		ContractRaffleID: sql.NullInt64{Int64: 1, Valid: true},
		Status:           entity.RaffleDrawing,
	})
	require.NoError(t, err)

	NewWinnerDriftCronJob(raffleRepo, manager).Do(ctx)

	got, err := raffleRepo.GetByID(ctx, drawing.ID)
	require.NoError(t, err)
	require.Equal(t, "0x00000000000000000000000000000000000000aa", got.WinnerAddress)
	require.Equal(t, entity.RaffleCompleted, got.Status)
	require.True(t, got.CompletedAt.Valid)
}

func Test_WinnerDriftCronJob_NoWinnerYet(t *testing.T) {
	ctx := testutil.MockContext()
	raffleRepo := repository.NewRaffleRepository()

	_, err := testutil.SampleBlockchain(ctx, nil)
	require.NoError(t, err)

	manager := blockchain.NewManager(ctx, repository.NewBlockChainRepository())
	manager.AddEthClient("eth", &testutil.MockEthClient{})

	drawing, err := testutil.SampleRaffle(ctx, &entity.Raffle{
		ContractRaffleID: sql.NullInt64{Int64: 1, Valid: true},
		Status:           entity.RaffleDrawing,
	})
	require.NoError(t, err)

	NewWinnerDriftCronJob(raffleRepo, manager).Do(ctx)

	got, err := raffleRepo.GetByID(ctx, drawing.ID)
	require.NoError(t, err)
	require.Empty(t, got.WinnerAddress)
	require.Equal(t, entity.RaffleDrawing, got.Status)
}

func Test_WinnerDriftCronJob_ZeroAddressWinnerIgnored(t *testing.T) {
	ctx := testutil.MockContext()
	raffleRepo := repository.NewRaffleRepository()

	_, err := testutil.SampleBlockchain(ctx, nil)
	require.NoError(t, err)

	// Some providers report an undrawn winner as the zero address instead
	// of leaving the field out.
	manager := blockchain.NewManager(ctx, repository.NewBlockChainRepository())
	manager.AddEthClient("eth", &testutil.MockEthClient{
		RaffleInfoFunc: func(ctx context.Context, contractRaffleID int64) (types.RaffleInfo, error) {
			return types.RaffleInfo{
				ContractRaffleID: contractRaffleID,
				Winner:           "0x0000000000000000000000000000000000000000",
			}, nil
		},
	})

	drawing, err := testutil.SampleRaffle(ctx, &entity.Raffle{
		ContractRaffleID: sql.NullInt64{Int64: 1, Valid: true},
		Status:           entity.RaffleDrawing,
	})
	require.NoError(t, err)

	NewWinnerDriftCronJob(raffleRepo, manager).Do(ctx)

	got, err := raffleRepo.GetByID(ctx, drawing.ID)
	require.NoError(t, err)
	require.Empty(t, got.WinnerAddress)
	require.Equal(t, entity.RaffleDrawing, got.Status)
}

func Test_WinnerDriftCronJob_RetryOnOtherNetwork(t *testing.T) {
	ctx := testutil.MockContext()
	raffleRepo := repository.NewRaffleRepository()

	_, err := testutil.SampleBlockchain(ctx, nil)
	require.NoError(t, err)
	_, err = testutil.SampleBlockchain(ctx, &entity.Blockchain{Name: "polygon", ID: 2})
	require.NoError(t, err)

	// The home network is down, the other deployment still answers.
	manager := blockchain.NewManager(ctx, repository.NewBlockChainRepository())
	manager.AddEthClient("eth", &testutil.MockEthClient{
		RaffleInfoFunc: func(ctx context.Context, contractRaffleID int64) (types.RaffleInfo, error) {
			return types.RaffleInfo{}, errors.New("connection refused")
		},
	})
	manager.AddEthClient("polygon", &testutil.MockEthClient{
		RaffleInfoFunc: func(ctx context.Context, contractRaffleID int64) (types.RaffleInfo, error) {
			return types.RaffleInfo{
				ContractRaffleID: contractRaffleID,
				Winner:           "0x00000000000000000000000000000000000000bb",
			}, nil
		},
	})

	drawing, err := testutil.SampleRaffle(ctx, &entity.Raffle{
		ContractRaffleID: sql.NullInt64{Int64: 1, Valid: true},
		Status:           entity.RaffleDrawing,
	})
	require.NoError(t, err)

	NewWinnerDriftCronJob(raffleRepo, manager).Do(ctx)

	got, err := raffleRepo.GetByID(ctx, drawing.ID)
	require.NoError(t, err)
	require.Equal(t, "0x00000000000000000000000000000000000000bb", got.WinnerAddress)
	require.Equal(t, entity.RaffleCompleted, got.Status)
}

func Test_LaunchRaffleCronJob(t *testing.T) {
	ctx := testutil.MockContext()
	raffleRepo := repository.NewRaffleRepository()

	due, err := testutil.SampleRaffle(ctx, &entity.Raffle{
		ContractRaffleID: sql.NullInt64{Int64: 1, Valid: true},
		LaunchTime:       sql.NullTime{Time: time.Now().Add(-time.Minute), Valid: true},
	})
	require.NoError(t, err)

	notDeployed, err := testutil.SampleRaffle(ctx, &entity.Raffle{
		LaunchTime: sql.NullTime{Time: time.Now().Add(-time.Minute), Valid: true},
	})
	require.NoError(t, err)

	future, err := testutil.SampleRaffle(ctx, &entity.Raffle{
		ContractRaffleID: sql.NullInt64{Int64: 2, Valid: true},
		LaunchTime:       sql.NullTime{Time: time.Now().Add(time.Hour), Valid: true},
	})
	require.NoError(t, err)

	NewLaunchRaffleCronJob(raffleRepo).Do(ctx)

	got, err := raffleRepo.GetByID(ctx, due.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RaffleActive, got.Status)

	// An undeployed draft has nothing to sell against, it stays a draft.
	got, err = raffleRepo.GetByID(ctx, notDeployed.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RaffleDraft, got.Status)

	got, err = raffleRepo.GetByID(ctx, future.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RaffleDraft, got.Status)
}
