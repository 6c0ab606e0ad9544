package repository

import (
	"context"

	"github.com/raffler-space/backend/internal/entity"
	"github.com/raffler-space/backend/pkg/xcontext"
)

type TicketRepository interface {
	Create(ctx context.Context, tickets ...*entity.Ticket) error
	GetByRaffleID(ctx context.Context, raffleID string) ([]entity.Ticket, error)
	GetByUserID(ctx context.Context, userID, raffleID string) ([]entity.Ticket, error)
	GetByWalletAddress(ctx context.Context, walletAddress, raffleID string) ([]entity.Ticket, error)
	CountByRaffleID(ctx context.Context, raffleID string) (int64, error)
}

type ticketRepository struct{}

func NewTicketRepository() *ticketRepository {
	return &ticketRepository{}
}

func (r *ticketRepository) Create(ctx context.Context, tickets ...*entity.Ticket) error {
	return xcontext.DB(ctx).Create(tickets).Error
}

func (r *ticketRepository) GetByRaffleID(
	ctx context.Context, raffleID string,
) ([]entity.Ticket, error) {
	var result []entity.Ticket
	err := xcontext.DB(ctx).
		Order("ticket_number ASC").
		Find(&result, "raffle_id=?", raffleID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *ticketRepository) GetByUserID(
	ctx context.Context, userID, raffleID string,
) ([]entity.Ticket, error) {
	tx := xcontext.DB(ctx).Where("user_id=?", userID)
	if raffleID != "" {
		tx = tx.Where("raffle_id=?", raffleID)
	}

	var result []entity.Ticket
	if err := tx.Order("ticket_number ASC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *ticketRepository) GetByWalletAddress(
	ctx context.Context, walletAddress, raffleID string,
) ([]entity.Ticket, error) {
	var result []entity.Ticket
	err := xcontext.DB(ctx).
		Where("wallet_address=? AND raffle_id=?", walletAddress, raffleID).
		Order("ticket_number ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *ticketRepository) CountByRaffleID(ctx context.Context, raffleID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Ticket{}).
		Where("raffle_id=?", raffleID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
