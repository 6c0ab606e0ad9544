package cron

import (
	"context"
	"time"

	"github.com/raffler-space/backend/internal/entity"
	"github.com/raffler-space/backend/internal/repository"
	"github.com/raffler-space/backend/pkg/xcontext"
)

// LaunchRaffleCronJob flips drafts whose launch time has arrived to active.
// Drafts that never got deployed on chain stay drafts, there is nothing to
// sell tickets against.
type LaunchRaffleCronJob struct {
	raffleRepo repository.RaffleRepository
}

func NewLaunchRaffleCronJob(raffleRepo repository.RaffleRepository) *LaunchRaffleCronJob {
	return &LaunchRaffleCronJob{raffleRepo: raffleRepo}
}

func (job *LaunchRaffleCronJob) Do(ctx context.Context) {
	raffles, err := job.raffleRepo.GetList(ctx, repository.GetListRaffleFilter{
		Statuses:      []entity.RaffleStatus{entity.RaffleDraft},
		LaunchedUntil: time.Now(),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get due draft raffles: %v", err)
		return
	}

	for _, raffle := range raffles {
		if !raffle.ContractRaffleID.Valid {
			continue
		}

		err := job.raffleRepo.UpdateStatus(ctx, raffle.ID, entity.RaffleDraft, entity.RaffleActive)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot launch raffle %s: %v", raffle.ID, err)
			continue
		}

		xcontext.Logger(ctx).Infof("Raffle %s launched", raffle.ID)
	}
}

func (job *LaunchRaffleCronJob) RunNow() bool {
	return true
}

func (job *LaunchRaffleCronJob) Next() time.Time {
	return time.Now().Add(time.Minute)
}
