package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/raffler-space/backend/internal/common"
	"github.com/raffler-space/backend/internal/domain/blockchain"
	"github.com/raffler-space/backend/internal/domain/reconcile"
	"github.com/raffler-space/backend/internal/entity"
	"github.com/raffler-space/backend/internal/model"
	"github.com/raffler-space/backend/internal/repository"
	"github.com/raffler-space/backend/pkg/errorx"
	"github.com/raffler-space/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type RaffleDomain interface {
	GetRaffle(context.Context, *model.GetRaffleRequest) (*model.GetRaffleResponse, error)
	GetRaffles(context.Context, *model.GetRafflesRequest) (*model.GetRafflesResponse, error)
	CreateRaffle(context.Context, *model.CreateRaffleRequest) (*model.CreateRaffleResponse, error)
	UpdateRaffle(context.Context, *model.UpdateRaffleRequest) (*model.UpdateRaffleResponse, error)
	ActivateRaffle(context.Context, *model.ActivateRaffleRequest) (*model.ActivateRaffleResponse, error)
	SelectWinner(context.Context, *model.SelectWinnerRequest) (*model.SelectWinnerResponse, error)
	ClaimPrize(context.Context, *model.ClaimPrizeRequest) (*model.ClaimPrizeResponse, error)
	WithdrawFees(context.Context, *model.WithdrawFeesRequest) (*model.WithdrawFeesResponse, error)
}

type raffleDomain struct {
	raffleRepo         repository.RaffleRepository
	chains             *blockchain.Manager
	reconciler         *reconcile.Reconciler
	globalRoleVerifier *common.GlobalRoleVerifier
}

func NewRaffleDomain(
	raffleRepo repository.RaffleRepository,
	userRepo repository.UserRepository,
	chains *blockchain.Manager,
	reconciler *reconcile.Reconciler,
) *raffleDomain {
	return &raffleDomain{
		raffleRepo:         raffleRepo,
		chains:             chains,
		reconciler:         reconciler,
		globalRoleVerifier: common.NewGlobalRoleVerifier(userRepo),
	}
}

func (d *raffleDomain) GetRaffle(
	ctx context.Context, req *model.GetRaffleRequest,
) (*model.GetRaffleResponse, error) {
	raffle, err := d.raffleRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found raffle")
		}

		xcontext.Logger(ctx).Errorf("Cannot get raffle: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetRaffleResponse{Raffle: d.reconciler.Resolve(ctx, raffle)}, nil
}

func (d *raffleDomain) GetRaffles(
	ctx context.Context, req *model.GetRafflesRequest,
) (*model.GetRafflesResponse, error) {
	filter := repository.GetListRaffleFilter{VisibleOnly: true}
	if req.IncludeHidden {
		if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
			return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
		}

		filter.VisibleOnly = false
	}

	raffles, err := d.raffleRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot list raffles: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetRafflesResponse{Raffles: d.reconciler.ResolveAll(ctx, raffles)}, nil
}

func (d *raffleDomain) CreateRaffle(
	ctx context.Context, req *model.CreateRaffleRequest,
) (*model.CreateRaffleResponse, error) {
	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a raffle name")
	}

	if req.TicketPrice <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Ticket price must be a positive number")
	}

	if req.MaxTickets <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Max tickets must be a positive number")
	}

	if !req.DrawDate.After(time.Now()) {
		return nil, errorx.New(errorx.BadRequest, "Draw date must be in the future")
	}

	if !d.chains.IsSupported(req.Chain) {
		return nil, errorx.New(errorx.WrongNetwork, "Chain %s is not supported", req.Chain)
	}

	raffle := &entity.Raffle{
		Base:             entity.Base{ID: uuid.NewString()},
		Name:             req.Name,
		Description:      req.Description,
		PrizeDescription: req.PrizeDescription,
		Chain:            req.Chain,
		NFTContract:      req.NFTContract,
		TicketPrice:      req.TicketPrice,
		MaxTickets:       req.MaxTickets,
		Status:           entity.RaffleDraft,
		DrawDate:         req.DrawDate,
		ImageURL:         req.ImageURL,
		IsVisible:        true,
	}

	if !req.LaunchTime.IsZero() {
		raffle.LaunchTime = sql.NullTime{Valid: true, Time: req.LaunchTime}
	}

	if err := d.raffleRepo.Create(ctx, raffle); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create raffle: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateRaffleResponse{ID: raffle.ID}, nil
}

func (d *raffleDomain) UpdateRaffle(
	ctx context.Context, req *model.UpdateRaffleRequest,
) (*model.UpdateRaffleResponse, error) {
	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if _, err := d.raffleRepo.GetByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found raffle")
		}

		xcontext.Logger(ctx).Errorf("Cannot get raffle: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err := d.raffleRepo.UpdateByID(ctx, req.ID, entity.Raffle{
		Name:             req.Name,
		Description:      req.Description,
		PrizeDescription: req.PrizeDescription,
		ImageURL:         req.ImageURL,
		GalleryImages:    req.GalleryImages,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update raffle: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.raffleRepo.UpdateDisplayByID(ctx, req.ID, req.DisplayOrder, req.IsVisible); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update raffle display: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.UpdateRaffleResponse{}, nil
}

// ActivateRaffle deploys a draft raffle on its chain and records the contract
// raffle id the deployment got. The raffle goes active immediately unless its
// launch time is still ahead, then the launch job flips it later.
func (d *raffleDomain) ActivateRaffle(
	ctx context.Context, req *model.ActivateRaffleRequest,
) (*model.ActivateRaffleResponse, error) {
	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	raffle, err := d.raffleRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found raffle")
		}

		xcontext.Logger(ctx).Errorf("Cannot get raffle: %v", err)
		return nil, errorx.Unknown
	}

	if raffle.Status != entity.RaffleDraft {
		return nil, errorx.New(errorx.Unavailable, "Raffle is not a draft")
	}

	if raffle.ContractRaffleID.Valid {
		return nil, errorx.New(errorx.AlreadyExists, "Raffle is already deployed on-chain")
	}

	writer, err := d.chains.Writer(raffle.Chain)
	if err != nil {
		return nil, errorx.New(errorx.WrongNetwork, "Chain %s is not supported", raffle.Chain)
	}

	txHash, contractRaffleID, err := writer.CreateRaffle(
		ctx, raffle.TicketPrice, raffle.MaxTickets, raffle.DrawDate, raffle.NFTContract)
	if err != nil {
		return nil, convertChainError(ctx, "createRaffle", errorx.Unavailable, err)
	}

	err = d.raffleRepo.SetContractRaffleID(ctx, raffle.ID, contractRaffleID, txHash)
	if err != nil {
		xcontext.Logger(ctx).Errorf(
			"Cannot record contract raffle id %d (tx %s): %v", contractRaffleID, txHash, err)
		return nil, errorx.Unknown
	}

	if !raffle.LaunchTime.Valid || !raffle.LaunchTime.Time.After(time.Now()) {
		err := d.raffleRepo.UpdateStatus(ctx, raffle.ID, entity.RaffleDraft, entity.RaffleActive)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot activate raffle %s: %v", raffle.ID, err)
			return nil, errorx.Unknown
		}
	}

	return &model.ActivateRaffleResponse{
		ContractRaffleID: contractRaffleID,
		TxHash:           txHash,
	}, nil
}

// SelectWinner asks the contract to draw a winner. The winner address itself
// lands asynchronously, the drift job mirrors it once the
// randomness settles on chain.
func (d *raffleDomain) SelectWinner(
	ctx context.Context, req *model.SelectWinnerRequest,
) (*model.SelectWinnerResponse, error) {
	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	raffle, err := d.raffleRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found raffle")
		}

		xcontext.Logger(ctx).Errorf("Cannot get raffle: %v", err)
		return nil, errorx.Unknown
	}

	if !raffle.ContractRaffleID.Valid {
		return nil, errorx.New(errorx.Unavailable, "Raffle is not deployed on-chain")
	}

	view := d.reconciler.Resolve(ctx, raffle)
	if !view.HasEnded {
		return nil, errorx.New(errorx.Unavailable, "Raffle has not ended yet")
	}

	writer, err := d.chains.Writer(raffle.Chain)
	if err != nil {
		return nil, errorx.New(errorx.WrongNetwork, "Chain %s is not supported", raffle.Chain)
	}

	txHash, err := writer.SelectWinner(ctx, raffle.ContractRaffleID.Int64)
	if err != nil {
		return nil, convertChainError(ctx, "selectWinner", errorx.Unavailable, err)
	}

	err = d.raffleRepo.UpdateByID(ctx, raffle.ID, entity.Raffle{
		Status:     entity.RaffleDrawing,
		DrawTxHash: txHash,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot record draw tx %s: %v", txHash, err)
	}

	return &model.SelectWinnerResponse{TxHash: txHash}, nil
}

func (d *raffleDomain) ClaimPrize(
	ctx context.Context, req *model.ClaimPrizeRequest,
) (*model.ClaimPrizeResponse, error) {
	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	raffle, err := d.raffleRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found raffle")
		}

		xcontext.Logger(ctx).Errorf("Cannot get raffle: %v", err)
		return nil, errorx.Unknown
	}

	if !raffle.ContractRaffleID.Valid {
		return nil, errorx.New(errorx.Unavailable, "Raffle is not deployed on-chain")
	}

	writer, err := d.chains.Writer(raffle.Chain)
	if err != nil {
		return nil, errorx.New(errorx.WrongNetwork, "Chain %s is not supported", raffle.Chain)
	}

	txHash, err := writer.ClaimPrize(ctx, raffle.ContractRaffleID.Int64)
	if err != nil {
		return nil, convertChainError(ctx, "claimPrize", errorx.Unavailable, err)
	}

	return &model.ClaimPrizeResponse{TxHash: txHash}, nil
}

func (d *raffleDomain) WithdrawFees(
	ctx context.Context, req *model.WithdrawFeesRequest,
) (*model.WithdrawFeesResponse, error) {
	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	writer, err := d.chains.Writer(req.Chain)
	if err != nil {
		return nil, errorx.New(errorx.WrongNetwork, "Chain %s is not supported", req.Chain)
	}

	txHash, err := writer.WithdrawFees(ctx)
	if err != nil {
		return nil, convertChainError(ctx, "withdrawFees", errorx.Unavailable, err)
	}

	return &model.WithdrawFeesResponse{TxHash: txHash}, nil
}
