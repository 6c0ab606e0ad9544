package cron

import (
	"context"
	"time"

	"github.com/raffler-space/backend/internal/domain/blockchain"
	"github.com/raffler-space/backend/internal/entity"
	"github.com/raffler-space/backend/internal/repository"
	"github.com/raffler-space/backend/pkg/xcontext"
)

// soldThresholdPercentage is the cut between a completed draw and a refund.
// A raffle at or above it after the draw date is left for the drift job to
// complete; below it the raffle moves to refunding.
const soldThresholdPercentage = float64(99)

type RefundCheckCronJob struct {
	raffleRepo repository.RaffleRepository
	chains     *blockchain.Manager
}

func NewRefundCheckCronJob(
	raffleRepo repository.RaffleRepository,
	chains *blockchain.Manager,
) *RefundCheckCronJob {
	return &RefundCheckCronJob{raffleRepo: raffleRepo, chains: chains}
}

func (job *RefundCheckCronJob) Do(ctx context.Context) {
	raffles, err := job.raffleRepo.GetList(ctx, repository.GetListRaffleFilter{
		Statuses:    []entity.RaffleStatus{entity.RaffleActive, entity.RaffleDrawing},
		DrawnBefore: time.Now(),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get raffles for refund check: %v", err)
		return
	}

	scans := map[string]map[int64]int64{}
	for _, raffle := range raffles {
		if raffle.MaxTickets <= 0 {
			continue
		}

		ticketsSold := job.soldCounter(ctx, &raffle, job.chainScan(ctx, raffle.Chain, scans))
		soldPercentage := float64(ticketsSold) / float64(raffle.MaxTickets) * 100
		if soldPercentage >= soldThresholdPercentage {
			// Completion candidate, the drift job picks the winner up.
			continue
		}

		xcontext.Logger(ctx).Infof("Raffle %s sold %.2f%% before the draw date, refunding",
			raffle.ID, soldPercentage)

		err := job.raffleRepo.UpdateStatus(ctx, raffle.ID, raffle.Status, entity.RaffleRefunding)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot move raffle %s to refunding: %v", raffle.ID, err)
		}
	}
}

// chainScan reads the sold counters of every raffle deployed on a chain with
// a single full scan, cached for the rest of the run. A failed scan leaves the
// map empty and soldCounter falls back to single reads.
func (job *RefundCheckCronJob) chainScan(
	ctx context.Context, chain string, cache map[string]map[int64]int64,
) map[int64]int64 {
	if scan, ok := cache[chain]; ok {
		return scan
	}

	scan := map[int64]int64{}
	cache[chain] = scan

	reader, err := job.chains.Reader(chain)
	if err != nil {
		return scan
	}

	infos, err := reader.AllRaffles(ctx)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot scan raffles on chain %s: %v", chain, err)
		return scan
	}

	for _, info := range infos {
		scan[info.ContractRaffleID] = info.TicketsSold
	}

	return scan
}

// soldCounter prefers the contract's sold counter, falling back to the mirror
// when the chain is unreachable.
func (job *RefundCheckCronJob) soldCounter(
	ctx context.Context, raffle *entity.Raffle, scan map[int64]int64,
) int64 {
	if !raffle.ContractRaffleID.Valid {
		return raffle.TicketsSold
	}

	if sold, ok := scan[raffle.ContractRaffleID.Int64]; ok {
		return sold
	}

	reader, err := job.chains.Reader(raffle.Chain)
	if err != nil {
		return raffle.TicketsSold
	}

	info, err := reader.RaffleInfo(ctx, raffle.ContractRaffleID.Int64)
	if err != nil {
		return raffle.TicketsSold
	}

	return info.TicketsSold
}

func (job *RefundCheckCronJob) RunNow() bool {
	return false
}

func (job *RefundCheckCronJob) Next() time.Time {
	return time.Now().Add(5 * time.Minute)
}
