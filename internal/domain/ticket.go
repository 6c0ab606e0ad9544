package domain

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/google/uuid"
	"github.com/raffler-space/backend/internal/common"
	"github.com/raffler-space/backend/internal/domain/blockchain"
	"github.com/raffler-space/backend/internal/domain/reconcile"
	"github.com/raffler-space/backend/internal/entity"
	"github.com/raffler-space/backend/internal/model"
	"github.com/raffler-space/backend/internal/repository"
	"github.com/raffler-space/backend/pkg/emailer"
	"github.com/raffler-space/backend/pkg/errorx"
	"github.com/raffler-space/backend/pkg/ethutil"
	"github.com/raffler-space/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type TicketDomain interface {
	Buy(context.Context, *model.BuyTicketsRequest) (*model.BuyTicketsResponse, error)
	GetMyTickets(context.Context, *model.GetMyTicketsRequest) (*model.GetMyTicketsResponse, error)
	GetUserEntries(context.Context, *model.GetUserEntriesRequest) (*model.GetUserEntriesResponse, error)
}

type ticketDomain struct {
	raffleRepo     repository.RaffleRepository
	ticketRepo     repository.TicketRepository
	userRepo       repository.UserRepository
	blockchainRepo repository.BlockChainRepository
	chains         *blockchain.Manager
	reconciler     *reconcile.Reconciler
	emailer        emailer.Emailer
}

func NewTicketDomain(
	raffleRepo repository.RaffleRepository,
	ticketRepo repository.TicketRepository,
	userRepo repository.UserRepository,
	blockchainRepo repository.BlockChainRepository,
	chains *blockchain.Manager,
	reconciler *reconcile.Reconciler,
	emailer emailer.Emailer,
) *ticketDomain {
	return &ticketDomain{
		raffleRepo:     raffleRepo,
		ticketRepo:     ticketRepo,
		userRepo:       userRepo,
		blockchainRepo: blockchainRepo,
		chains:         chains,
		reconciler:     reconciler,
		emailer:        emailer,
	}
}

// Buy purchases quantity tickets of a raffle with the caller's custodial
// wallet. All validation happens before any contract call: an invalid request
// never costs gas. Once the purchase confirms on chain it is a success no
// matter what the mirror does, a failed mirror write only degrades the
// response to a warning.
func (d *ticketDomain) Buy(
	ctx context.Context, req *model.BuyTicketsRequest,
) (*model.BuyTicketsResponse, error) {
	if req.Quantity <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Quantity must be a positive number")
	}

	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if user.Address == "" || user.WalletNonce == "" {
		return nil, errorx.New(errorx.Unavailable, "User has no wallet")
	}

	raffle, err := d.raffleRepo.GetByID(ctx, req.RaffleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found raffle")
		}

		xcontext.Logger(ctx).Errorf("Cannot get raffle: %v", err)
		return nil, errorx.Unknown
	}

	if !d.chains.IsSupported(raffle.Chain) {
		return nil, errorx.New(errorx.WrongNetwork,
			"Raffle runs on %s which is not supported now", raffle.Chain)
	}

	if !raffle.ContractRaffleID.Valid {
		return nil, errorx.New(errorx.Unavailable, "Raffle is not open for purchase yet")
	}

	view := d.reconciler.Resolve(ctx, raffle)
	if view.HasEnded {
		return nil, errorx.New(errorx.Unavailable, "Raffle has ended")
	}

	if !view.IsActive {
		return nil, errorx.New(errorx.Unavailable, "Raffle is not active")
	}

	remaining := view.MaxTickets - view.TicketsSold
	if req.Quantity > remaining {
		return nil, errorx.New(errorx.SoldOut, "Only %d tickets left", remaining)
	}

	chain, err := d.blockchainRepo.Get(ctx, raffle.Chain)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get blockchain %s: %v", raffle.Chain, err)
		return nil, errorx.Unknown
	}

	secret := []byte(xcontext.Configs(ctx).Blockchain.SecretKey)
	walletAddress, err := ethutil.GeneratePublicKey(secret, []byte(user.WalletNonce))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot derive wallet of user %s: %v", user.ID, err)
		return nil, errorx.Unknown
	}

	unitPrice := big.NewInt(int64(raffle.TicketPrice * math.Pow10(chain.TokenDecimals)))
	cost := new(big.Int).Mul(unitPrice, big.NewInt(req.Quantity))

	reader, err := d.chains.Reader(raffle.Chain)
	if err != nil {
		return nil, errorx.New(errorx.WrongNetwork,
			"Raffle runs on %s which is not supported now", raffle.Chain)
	}

	balance, err := reader.TokenBalance(ctx, walletAddress.Hex())
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot read token balance: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Network is temporarily unreachable")
	}

	if balance.Cmp(cost) < 0 {
		return nil, errorx.New(errorx.InsufficientBalance,
			"Not enough token balance to buy %d tickets", req.Quantity)
	}

	writer, err := d.chains.Writer(raffle.Chain)
	if err != nil {
		return nil, errorx.New(errorx.WrongNetwork,
			"Raffle runs on %s which is not supported now", raffle.Chain)
	}

	allowance, err := reader.TokenAllowance(ctx, walletAddress.Hex())
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot read token allowance: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Network is temporarily unreachable")
	}

	if allowance.Cmp(cost) < 0 {
		if _, err := writer.Approve(ctx, user.WalletNonce, walletAddress.Hex(), cost); err != nil {
			return nil, convertChainError(ctx, "approve", errorx.ApprovalFailed, err)
		}
	}

	txHash, err := writer.BuyTickets(ctx, user.WalletNonce, raffle.ContractRaffleID.Int64, req.Quantity)
	if err != nil {
		return nil, convertChainError(ctx, "buyTickets", errorx.PurchaseFailed, err)
	}

	numbers, err := d.persistTickets(ctx, raffle, user, walletAddress.Hex(), txHash, req.Quantity)
	if err != nil {
		xcontext.Logger(ctx).Errorf(
			"Cannot mirror purchase of tx %s, the purchase itself succeeded: %v", txHash, err)
		common.PromCounters[common.MirrorWriteFailure].WithLabelValues("buyTickets").Inc()

		return &model.BuyTicketsResponse{
			TxHash: txHash,
			Warning: fmt.Sprintf(
				"Purchase confirmed with transaction %s but recording it failed, "+
					"your tickets will appear after the next sync", txHash),
		}, nil
	}

	d.sendPurchaseEmail(ctx, user, raffle, txHash, req.Quantity)

	return &model.BuyTicketsResponse{TxHash: txHash, TicketNumbers: numbers}, nil
}

// persistTickets bumps the sold counter and writes the ticket rows in one
// database transaction. Numbers are contiguous ending at the new counter
// value.
func (d *ticketDomain) persistTickets(
	ctx context.Context,
	raffle *entity.Raffle,
	user *entity.User,
	walletAddress, txHash string,
	quantity int64,
) ([]int64, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	newSold, err := d.raffleRepo.SellTickets(ctx, raffle.ID, quantity)
	if err != nil {
		return nil, err
	}

	numbers := make([]int64, 0, quantity)
	tickets := make([]*entity.Ticket, 0, quantity)
	for i := int64(0); i < quantity; i++ {
		number := newSold - quantity + i + 1
		numbers = append(numbers, number)
		tickets = append(tickets, &entity.Ticket{
			Base:          entity.Base{ID: uuid.NewString()},
			RaffleID:      raffle.ID,
			UserID:        user.ID,
			WalletAddress: walletAddress,
			TicketNumber:  number,
			PurchasePrice: raffle.TicketPrice,
			TxHash:        txHash,
		})
	}

	if err := d.ticketRepo.Create(ctx, tickets...); err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)
	return numbers, nil
}

func (d *ticketDomain) sendPurchaseEmail(
	ctx context.Context, user *entity.User, raffle *entity.Raffle, txHash string, quantity int64,
) {
	if d.emailer == nil || user.Email == "" {
		return
	}

	subject := fmt.Sprintf("Your %d ticket(s) for %s", quantity, raffle.Name)
	body := fmt.Sprintf(
		"You bought %d ticket(s) for raffle %s.<br>Transaction: %s",
		quantity, raffle.Name, txHash)

	if err := d.emailer.Send(ctx, user.Email, subject, body); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot send purchase email to %s: %v", user.Email, err)
	}
}

func (d *ticketDomain) GetMyTickets(
	ctx context.Context, req *model.GetMyTicketsRequest,
) (*model.GetMyTicketsResponse, error) {
	tickets, err := d.ticketRepo.GetByUserID(ctx, xcontext.RequestUserID(ctx), req.RaffleID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tickets: %v", err)
		return nil, errorx.Unknown
	}

	clientTickets := make([]model.Ticket, 0, len(tickets))
	for i := range tickets {
		clientTickets = append(clientTickets, convertTicket(&tickets[i]))
	}

	return &model.GetMyTicketsResponse{Tickets: clientTickets}, nil
}

// GetUserEntries returns the mirrored ticket numbers of an address plus the
// contract's entry count. The count falls back to the mirrored length when
// the chain is unreachable.
func (d *ticketDomain) GetUserEntries(
	ctx context.Context, req *model.GetUserEntriesRequest,
) (*model.GetUserEntriesResponse, error) {
	if req.Address == "" {
		return nil, errorx.New(errorx.BadRequest, "Require an address")
	}

	raffle, err := d.raffleRepo.GetByID(ctx, req.RaffleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found raffle")
		}

		xcontext.Logger(ctx).Errorf("Cannot get raffle: %v", err)
		return nil, errorx.Unknown
	}

	tickets, err := d.ticketRepo.GetByWalletAddress(ctx, req.Address, raffle.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tickets: %v", err)
		return nil, errorx.Unknown
	}

	entries := make([]int64, 0, len(tickets))
	for _, t := range tickets {
		entries = append(entries, t.TicketNumber)
	}

	count := int64(len(entries))
	if raffle.ContractRaffleID.Valid {
		if reader, err := d.chains.Reader(raffle.Chain); err == nil {
			chainCount, err := reader.UserEntries(ctx, req.Address, raffle.ContractRaffleID.Int64)
			if err != nil {
				xcontext.Logger(ctx).Warnf("Cannot count entries on chain: %v", err)
			} else {
				count = chainCount
			}
		}
	}

	return &model.GetUserEntriesResponse{Entries: entries, Count: count}, nil
}

func convertTicket(ticket *entity.Ticket) model.Ticket {
	return model.Ticket{
		ID:            ticket.ID,
		RaffleID:      ticket.RaffleID,
		WalletAddress: ticket.WalletAddress,
		TicketNumber:  ticket.TicketNumber,
		PurchasePrice: ticket.PurchasePrice,
		TxHash:        ticket.TxHash,
		PurchasedAt:   ticket.CreatedAt,
	}
}
