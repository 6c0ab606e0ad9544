package cron

import (
	"context"
	"time"

	"github.com/raffler-space/backend/internal/domain/blockchain"
	"github.com/raffler-space/backend/internal/domain/blockchain/types"
	"github.com/raffler-space/backend/internal/entity"
	"github.com/raffler-space/backend/internal/repository"
	"github.com/raffler-space/backend/pkg/ethutil"
	"github.com/raffler-space/backend/pkg/xcontext"
)

// WinnerDriftCronJob detects winners drawn on chain that the mirror has not
// recorded yet. A raffle may exist on one network's deployment but not the
// other, so a failed read on the home network retries on the other one.
type WinnerDriftCronJob struct {
	raffleRepo repository.RaffleRepository
	chains     *blockchain.Manager
}

func NewWinnerDriftCronJob(
	raffleRepo repository.RaffleRepository,
	chains *blockchain.Manager,
) *WinnerDriftCronJob {
	return &WinnerDriftCronJob{raffleRepo: raffleRepo, chains: chains}
}

func (job *WinnerDriftCronJob) Do(ctx context.Context) {
	raffles, err := job.raffleRepo.GetList(ctx, repository.GetListRaffleFilter{
		Statuses: []entity.RaffleStatus{
			entity.RaffleActive, entity.RaffleDrawing, entity.RaffleCompleted,
		},
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get raffles for drift check: %v", err)
		return
	}

	for _, raffle := range raffles {
		if !raffle.ContractRaffleID.Valid {
			continue
		}

		info, err := job.readInfo(ctx, &raffle)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot read raffle %s on any network: %v", raffle.ID, err)
			continue
		}

		if ethutil.IsZeroAddress(info.Winner) {
			continue
		}

		if ethutil.SameAddress(info.Winner, raffle.WinnerAddress) {
			continue
		}

		xcontext.Logger(ctx).Infof("Raffle %s drifted, recording winner %s", raffle.ID, info.Winner)
		if err := job.raffleRepo.RecordWinner(ctx, raffle.ID, info.Winner, time.Now()); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot record winner of raffle %s: %v", raffle.ID, err)
		}
	}
}

func (job *WinnerDriftCronJob) readInfo(
	ctx context.Context, raffle *entity.Raffle,
) (types.RaffleInfo, error) {
	var firstErr error
	if reader, err := job.chains.Reader(raffle.Chain); err != nil {
		firstErr = err
	} else if info, err := reader.RaffleInfo(ctx, raffle.ContractRaffleID.Int64); err != nil {
		firstErr = err
	} else {
		return info, nil
	}

	otherChain, ok := job.chains.OtherChain(raffle.Chain)
	if !ok {
		return types.RaffleInfo{}, firstErr
	}

	otherReader, otherErr := job.chains.Reader(otherChain)
	if otherErr != nil {
		return types.RaffleInfo{}, otherErr
	}

	return otherReader.RaffleInfo(ctx, raffle.ContractRaffleID.Int64)
}

func (job *WinnerDriftCronJob) RunNow() bool {
	return true
}

func (job *WinnerDriftCronJob) Next() time.Time {
	return time.Now().Add(time.Minute)
}
