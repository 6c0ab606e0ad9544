package domain

import (
	"context"
	"database/sql"
	"errors"
	"math/big"
	"testing"
	"time"

	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/raffler-space/backend/internal/domain/blockchain"
	"github.com/raffler-space/backend/internal/domain/blockchain/types"
	"github.com/raffler-space/backend/internal/domain/reconcile"
	"github.com/raffler-space/backend/internal/entity"
	"github.com/raffler-space/backend/internal/model"
	"github.com/raffler-space/backend/internal/repository"
	"github.com/raffler-space/backend/pkg/errorx"
	"github.com/raffler-space/backend/pkg/testutil"
	"github.com/raffler-space/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type buyFixture struct {
	ctx    context.Context
	user   entity.User
	raffle entity.Raffle
	domain *ticketDomain
	client *testutil.MockEthClient
}

// newBuyFixture wires a deployed active raffle, a user with a custodial wallet
// and a chain whose client answers with client. The raffle costs 10 a ticket
// with 6 token decimals, so one ticket is 10^7 base units.
func newBuyFixture(t *testing.T, client *testutil.MockEthClient) *buyFixture {
	ctx := testutil.MockContext()

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	_, err = testutil.SampleBlockchain(ctx, nil)
	require.NoError(t, err)

	raffle, err := testutil.SampleRaffle(ctx, &entity.Raffle{
		ContractRaffleID: sql.NullInt64{Int64: 5, Valid: true},
		Status:           entity.RaffleActive,
	})
	require.NoError(t, err)

	if client.RaffleInfoFunc == nil {
		client.RaffleInfoFunc = func(
			ctx context.Context, contractRaffleID int64,
		) (types.RaffleInfo, error) {
			return types.RaffleInfo{
				ContractRaffleID: 5,
				MaxTickets:       raffle.MaxTickets,
				EndTime:          time.Now().Add(time.Hour),
				IsActive:         true,
			}, nil
		}
	}

	blockchainRepo := repository.NewBlockChainRepository()
	manager := blockchain.NewManager(ctx, blockchainRepo)
	manager.AddEthClient("eth", client)

	domain := &ticketDomain{
		raffleRepo:     repository.NewRaffleRepository(),
		ticketRepo:     repository.NewTicketRepository(),
		userRepo:       repository.NewUserRepository(),
		blockchainRepo: blockchainRepo,
		chains:         manager,
		reconciler:     reconcile.NewReconciler(reconcile.NewManagerProvider(manager)),
	}

	return &buyFixture{ctx: ctx, user: user, raffle: raffle, domain: domain, client: client}
}

func Test_ticketDomain_Buy(t *testing.T) {
	buyCalls := 0
	client := &testutil.MockEthClient{
		ERC20BalanceOfFunc: func(ctx context.Context, accountAddress string) (*big.Int, error) {
			return big.NewInt(100_000_000), nil
		},
		ERC20AllowanceFunc: func(ctx context.Context, ownerAddress string) (*big.Int, error) {
			return big.NewInt(100_000_000), nil
		},
		GetSignedBuyTicketsTxFunc: func(
			ctx context.Context, senderNonce string, contractRaffleID, quantity int64, gasLimit uint64,
		) (*ethtypes.Transaction, error) {
			buyCalls++
			return testutil.SignedTx(uint64(buyCalls), gasLimit), nil
		},
	}

	f := newBuyFixture(t, client)

	resp, err := f.domain.Buy(f.ctx, &model.BuyTicketsRequest{RaffleID: f.raffle.ID, Quantity: 3})
	require.NoError(t, err)
	require.NotEmpty(t, resp.TxHash)
	require.Empty(t, resp.Warning)
	require.Equal(t, []int64{1, 2, 3}, resp.TicketNumbers)

	// The next purchase continues the numbering.
	resp, err = f.domain.Buy(f.ctx, &model.BuyTicketsRequest{RaffleID: f.raffle.ID, Quantity: 2})
	require.NoError(t, err)
	require.Equal(t, []int64{4, 5}, resp.TicketNumbers)

	raffle, err := f.domain.raffleRepo.GetByID(f.ctx, f.raffle.ID)
	require.NoError(t, err)
	require.Equal(t, int64(5), raffle.TicketsSold)

	tickets, err := f.domain.ticketRepo.GetByUserID(f.ctx, f.user.ID, f.raffle.ID)
	require.NoError(t, err)
	require.Len(t, tickets, 5)
}

func Test_ticketDomain_Buy_ApproveWhenAllowanceTooLow(t *testing.T) {
	var calls []string
	client := &testutil.MockEthClient{
		ERC20BalanceOfFunc: func(ctx context.Context, accountAddress string) (*big.Int, error) {
			return big.NewInt(100_000_000), nil
		},
		GetSignedApproveTxFunc: func(
			ctx context.Context, senderNonce string, amount *big.Int,
		) (*ethtypes.Transaction, error) {
			calls = append(calls, "approve")
			require.Equal(t, big.NewInt(30_000_000), amount)
			return testutil.SignedTx(uint64(len(calls)), 100_000), nil
		},
		GetSignedBuyTicketsTxFunc: func(
			ctx context.Context, senderNonce string, contractRaffleID, quantity int64, gasLimit uint64,
		) (*ethtypes.Transaction, error) {
			calls = append(calls, "buy")
			return testutil.SignedTx(uint64(len(calls)), gasLimit), nil
		},
	}

	f := newBuyFixture(t, client)

	_, err := f.domain.Buy(f.ctx, &model.BuyTicketsRequest{RaffleID: f.raffle.ID, Quantity: 3})
	require.NoError(t, err)
	require.Equal(t, []string{"approve", "buy"}, calls)
}

func Test_ticketDomain_Buy_InsufficientBalance(t *testing.T) {
	contractCalled := false
	client := &testutil.MockEthClient{
		ERC20BalanceOfFunc: func(ctx context.Context, accountAddress string) (*big.Int, error) {
			return big.NewInt(29_999_999), nil
		},
		GetSignedApproveTxFunc: func(
			ctx context.Context, senderNonce string, amount *big.Int,
		) (*ethtypes.Transaction, error) {
			contractCalled = true
			return nil, errors.New("must not be called")
		},
		GetSignedBuyTicketsTxFunc: func(
			ctx context.Context, senderNonce string, contractRaffleID, quantity int64, gasLimit uint64,
		) (*ethtypes.Transaction, error) {
			contractCalled = true
			return nil, errors.New("must not be called")
		},
	}

	f := newBuyFixture(t, client)

	_, err := f.domain.Buy(f.ctx, &model.BuyTicketsRequest{RaffleID: f.raffle.ID, Quantity: 3})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.InsufficientBalance, errx.Code)
	require.False(t, contractCalled)
}

func Test_ticketDomain_Buy_SoldOut(t *testing.T) {
	client := &testutil.MockEthClient{
		RaffleInfoFunc: func(ctx context.Context, contractRaffleID int64) (types.RaffleInfo, error) {
			return types.RaffleInfo{
				ContractRaffleID: 5,
				TicketsSold:      98,
				MaxTickets:       100,
				EndTime:          time.Now().Add(time.Hour),
				IsActive:         true,
			}, nil
		},
	}

	f := newBuyFixture(t, client)

	// Only two tickets left, three is never clamped down.
	_, err := f.domain.Buy(f.ctx, &model.BuyTicketsRequest{RaffleID: f.raffle.ID, Quantity: 3})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.SoldOut, errx.Code)
}

func Test_ticketDomain_Buy_EndedRaffle(t *testing.T) {
	client := &testutil.MockEthClient{
		RaffleInfoFunc: func(ctx context.Context, contractRaffleID int64) (types.RaffleInfo, error) {
			return types.RaffleInfo{
				ContractRaffleID: 5,
				EndTime:          time.Now().Add(-time.Minute),
				IsActive:         true,
			}, nil
		},
	}

	f := newBuyFixture(t, client)

	_, err := f.domain.Buy(f.ctx, &model.BuyTicketsRequest{RaffleID: f.raffle.ID, Quantity: 1})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unavailable, errx.Code)
	require.Equal(t, "Raffle has ended", errx.Message)
}

type failingTicketRepo struct {
	repository.TicketRepository
}

func (r failingTicketRepo) Create(ctx context.Context, tickets ...*entity.Ticket) error {
	return errors.New("disk is full")
}

func Test_ticketDomain_Buy_ChainSuccessOutranksMirrorFailure(t *testing.T) {
	client := &testutil.MockEthClient{
		ERC20BalanceOfFunc: func(ctx context.Context, accountAddress string) (*big.Int, error) {
			return big.NewInt(100_000_000), nil
		},
		ERC20AllowanceFunc: func(ctx context.Context, ownerAddress string) (*big.Int, error) {
			return big.NewInt(100_000_000), nil
		},
		GetSignedBuyTicketsTxFunc: func(
			ctx context.Context, senderNonce string, contractRaffleID, quantity int64, gasLimit uint64,
		) (*ethtypes.Transaction, error) {
			return testutil.SignedTx(0, gasLimit), nil
		},
	}

	f := newBuyFixture(t, client)
	f.domain.ticketRepo = failingTicketRepo{f.domain.ticketRepo}

	resp, err := f.domain.Buy(f.ctx, &model.BuyTicketsRequest{RaffleID: f.raffle.ID, Quantity: 2})
	require.NoError(t, err)
	require.NotEmpty(t, resp.TxHash)
	require.NotEmpty(t, resp.Warning)
	require.Empty(t, resp.TicketNumbers)

	// The failed mirror write is rolled back entirely.
	raffle, err := f.domain.raffleRepo.GetByID(f.ctx, f.raffle.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), raffle.TicketsSold)
}

func Test_ticketDomain_Buy_NoWallet(t *testing.T) {
	f := newBuyFixture(t, &testutil.MockEthClient{})

	// gorm skips zero fields on struct updates, clear the nonce directly.
	err := xcontext.DB(f.ctx).Model(&entity.User{}).
		Where("id=?", f.user.ID).Update("wallet_nonce", "").Error
	require.NoError(t, err)

	_, err = f.domain.Buy(f.ctx, &model.BuyTicketsRequest{RaffleID: f.raffle.ID, Quantity: 1})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unavailable, errx.Code)
}

func Test_ticketDomain_GetUserEntries(t *testing.T) {
	client := &testutil.MockEthClient{
		UserEntriesFunc: func(
			ctx context.Context, accountAddress string, contractRaffleID int64,
		) (int64, error) {
			return 4, nil
		},
	}

	f := newBuyFixture(t, client)

	for i := int64(1); i <= 2; i++ {
		_, err := testutil.SampleTicket(f.ctx, &entity.Ticket{
			RaffleID:      f.raffle.ID,
			UserID:        f.user.ID,
			WalletAddress: "0xholder",
			TicketNumber:  i,
		})
		require.NoError(t, err)
	}

	resp, err := f.domain.GetUserEntries(f.ctx, &model.GetUserEntriesRequest{
		RaffleID: f.raffle.ID,
		Address:  "0xholder",
	})
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2}, resp.Entries)

	// The contract sees more entries than the mirror, its count wins.
	require.Equal(t, int64(4), resp.Count)
}
