package repository

import (
	"context"
	"time"

	"github.com/raffler-space/backend/internal/entity"
	"github.com/raffler-space/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GetListRaffleFilter struct {
	Statuses      []entity.RaffleStatus
	Chain         string
	VisibleOnly   bool
	DrawnBefore   time.Time
	LaunchedUntil time.Time
}

type RaffleRepository interface {
	Create(ctx context.Context, raffle *entity.Raffle) error
	GetByID(ctx context.Context, id string) (*entity.Raffle, error)
	GetByContractID(ctx context.Context, chain string, contractRaffleID int64) (*entity.Raffle, error)
	GetList(ctx context.Context, filter GetListRaffleFilter) ([]entity.Raffle, error)
	UpdateByID(ctx context.Context, id string, raffle entity.Raffle) error
	UpdateDisplayByID(ctx context.Context, id string, displayOrder int, isVisible bool) error
	UpdateStatus(ctx context.Context, id string, from, to entity.RaffleStatus) error
	SetContractRaffleID(ctx context.Context, id string, contractRaffleID int64, txHash string) error
	RecordWinner(ctx context.Context, id, winnerAddress string, completedAt time.Time) error

	// SellTickets bumps the mirrored sold-counter by quantity, guarded by the
	// max-ticket bound, and returns the new counter value. The bump and the
	// read-back are atomic when the context carries a database transaction.
	SellTickets(ctx context.Context, id string, quantity int64) (int64, error)
}

type raffleRepository struct{}

func NewRaffleRepository() *raffleRepository {
	return &raffleRepository{}
}

func (r *raffleRepository) Create(ctx context.Context, raffle *entity.Raffle) error {
	return xcontext.DB(ctx).Create(raffle).Error
}

func (r *raffleRepository) GetByID(ctx context.Context, id string) (*entity.Raffle, error) {
	var result entity.Raffle
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *raffleRepository) GetByContractID(
	ctx context.Context, chain string, contractRaffleID int64,
) (*entity.Raffle, error) {
	var result entity.Raffle
	err := xcontext.DB(ctx).
		Take(&result, "chain=? AND contract_raffle_id=?", chain, contractRaffleID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *raffleRepository) GetList(
	ctx context.Context, filter GetListRaffleFilter,
) ([]entity.Raffle, error) {
	tx := xcontext.DB(ctx).Model(&entity.Raffle{})
	if len(filter.Statuses) > 0 {
		tx = tx.Where("status IN (?)", filter.Statuses)
	}

	if filter.Chain != "" {
		tx = tx.Where("chain=?", filter.Chain)
	}

	if filter.VisibleOnly {
		tx = tx.Where("is_visible=?", true)
	}

	if !filter.DrawnBefore.IsZero() {
		tx = tx.Where("draw_date < ?", filter.DrawnBefore)
	}

	if !filter.LaunchedUntil.IsZero() {
		tx = tx.Where("launch_time IS NOT NULL AND launch_time <= ?", filter.LaunchedUntil)
	}

	var result []entity.Raffle
	if err := tx.Order("display_order ASC, created_at DESC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *raffleRepository) UpdateByID(ctx context.Context, id string, raffle entity.Raffle) error {
	return xcontext.DB(ctx).
		Model(&entity.Raffle{}).
		Where("id=?", id).
		Updates(raffle).Error
}

// UpdateStatus only transitions from an expected status, so concurrent jobs
// cannot double-apply a transition.
func (r *raffleRepository) UpdateStatus(
	ctx context.Context, id string, from, to entity.RaffleStatus,
) error {
	tx := xcontext.DB(ctx).Model(&entity.Raffle{}).
		Where("id=? AND status=?", id, from).
		Update("status", to)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *raffleRepository) SetContractRaffleID(
	ctx context.Context, id string, contractRaffleID int64, txHash string,
) error {
	return xcontext.DB(ctx).Model(&entity.Raffle{}).
		Where("id=?", id).
		Updates(map[string]any{
			"contract_raffle_id": contractRaffleID,
			"draw_tx_hash":       txHash,
		}).Error
}

// UpdateDisplayByID uses a map so a false visibility or a zero display order
// is still written.
func (r *raffleRepository) UpdateDisplayByID(
	ctx context.Context, id string, displayOrder int, isVisible bool,
) error {
	return xcontext.DB(ctx).Model(&entity.Raffle{}).
		Where("id=?", id).
		Updates(map[string]any{
			"display_order": displayOrder,
			"is_visible":    isVisible,
		}).Error
}

func (r *raffleRepository) RecordWinner(
	ctx context.Context, id, winnerAddress string, completedAt time.Time,
) error {
	return xcontext.DB(ctx).Model(&entity.Raffle{}).
		Where("id=?", id).
		Updates(map[string]any{
			"winner_address": winnerAddress,
			"status":         entity.RaffleCompleted,
			"completed_at":   completedAt,
		}).Error
}

func (r *raffleRepository) SellTickets(
	ctx context.Context, id string, quantity int64,
) (int64, error) {
	tx := xcontext.DB(ctx).Model(&entity.Raffle{}).
		Where("id=? AND tickets_sold + ? <= max_tickets", id, quantity).
		Update("tickets_sold", gorm.Expr("tickets_sold+?", quantity))
	if tx.Error != nil {
		return 0, tx.Error
	}

	if tx.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	var result entity.Raffle
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return 0, err
	}

	return result.TicketsSold, nil
}
