package reconcile

import (
	"context"
	"time"

	"github.com/raffler-space/backend/internal/domain/blockchain/types"
	"github.com/raffler-space/backend/internal/entity"
	"github.com/raffler-space/backend/internal/model"
	"github.com/raffler-space/backend/pkg/xcontext"
)

// RaffleInfoReader is the read surface the reconciler needs from a chain.
type RaffleInfoReader interface {
	RaffleInfo(ctx context.Context, contractRaffleID int64) (types.RaffleInfo, error)
}

// ReaderProvider looks up the reader of a chain. Readers may be missing while
// the chain list has not been loaded yet, that is a normal degraded state.
type ReaderProvider interface {
	Reader(chain string) (RaffleInfoReader, error)
}

// Reconciler merges mirror rows with live contract state into the unified
// raffle view. The contract always wins when it is reachable; any failure
// degrades to the mirror row for that raffle only.
type Reconciler struct {
	readers ReaderProvider
	now     func() time.Time
}

func NewReconciler(readers ReaderProvider) *Reconciler {
	return &Reconciler{readers: readers, now: time.Now}
}

// Resolve builds the unified view of one raffle.
func (r *Reconciler) Resolve(ctx context.Context, raffle *entity.Raffle) model.Raffle {
	view := mirrorView(raffle)

	if !raffle.ContractRaffleID.Valid {
		return view
	}

	reader, err := r.readers.Reader(raffle.Chain)
	if err != nil {
		return view
	}

	info, err := reader.RaffleInfo(ctx, raffle.ContractRaffleID.Int64)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot read raffle %s from chain %s, using mirror: %v",
			raffle.ID, raffle.Chain, err)
		return view
	}

	hasEnded := r.now().After(info.EndTime)
	isActive := info.IsActive && !hasEnded

	view.OnChain = true
	view.HasEnded = hasEnded
	view.IsActive = isActive
	view.TicketsSold = info.TicketsSold
	view.WinnerAddress = info.Winner

	switch {
	case hasEnded:
		view.Status = string(entity.RaffleCompleted)
	case isActive:
		view.Status = string(entity.RaffleActive)
	default:
		view.Status = string(entity.RafflePending)
	}

	return view
}

// ResolveAll resolves every raffle in the list. A chain failure on one raffle
// never fails the listing.
func (r *Reconciler) ResolveAll(ctx context.Context, raffles []entity.Raffle) []model.Raffle {
	views := make([]model.Raffle, 0, len(raffles))
	for i := range raffles {
		views = append(views, r.Resolve(ctx, &raffles[i]))
	}

	return views
}

// mirrorView renders the raffle from the database row alone.
func mirrorView(raffle *entity.Raffle) model.Raffle {
	view := model.Raffle{
		ID:               raffle.ID,
		Name:             raffle.Name,
		Description:      raffle.Description,
		PrizeDescription: raffle.PrizeDescription,
		Chain:            raffle.Chain,
		NFTContract:      raffle.NFTContract,
		TicketPrice:      raffle.TicketPrice,
		MaxTickets:       raffle.MaxTickets,
		TicketsSold:      raffle.TicketsSold,
		Status:           string(raffle.Status),
		DrawDate:         raffle.DrawDate,
		WinnerAddress:    raffle.WinnerAddress,
		DrawTxHash:       raffle.DrawTxHash,
		ImageURL:         raffle.ImageURL,
		GalleryImages:    raffle.GalleryImages,
		IsActive:         raffle.Status == entity.RaffleActive,
		HasEnded:         raffle.Status == entity.RaffleCompleted,
	}

	if raffle.ContractRaffleID.Valid {
		id := raffle.ContractRaffleID.Int64
		view.ContractRaffleID = &id
	}

	if raffle.LaunchTime.Valid {
		view.LaunchTime = raffle.LaunchTime.Time
	}

	return view
}
