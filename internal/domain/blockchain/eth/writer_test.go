package eth

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/raffler-space/backend/internal/domain/blockchain/types"
	"github.com/raffler-space/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_Writer_Approve_SkipResetWithoutAllowance(t *testing.T) {
	ctx := testutil.MockContext()

	var approvedAmounts []*big.Int
	client := &testutil.MockEthClient{
		ERC20AllowanceFunc: func(ctx context.Context, ownerAddress string) (*big.Int, error) {
			return big.NewInt(0), nil
		},
		GetSignedApproveTxFunc: func(
			ctx context.Context, senderNonce string, amount *big.Int,
		) (*ethtypes.Transaction, error) {
			approvedAmounts = append(approvedAmounts, amount)
			return testutil.SignedTx(uint64(len(approvedAmounts)), 100_000), nil
		},
	}

	writer := NewWriter(client, "eth")
	txHash, err := writer.Approve(ctx, "nonce", "0xabc", big.NewInt(500))
	require.NoError(t, err)
	require.NotEmpty(t, txHash)

	require.Len(t, approvedAmounts, 1)
	require.Equal(t, big.NewInt(500), approvedAmounts[0])
}

func Test_Writer_Approve_ResetExistingAllowanceFirst(t *testing.T) {
	ctx := testutil.MockContext()

	var approvedAmounts []*big.Int
	client := &testutil.MockEthClient{
		ERC20AllowanceFunc: func(ctx context.Context, ownerAddress string) (*big.Int, error) {
			return big.NewInt(42), nil
		},
		GetSignedApproveTxFunc: func(
			ctx context.Context, senderNonce string, amount *big.Int,
		) (*ethtypes.Transaction, error) {
			approvedAmounts = append(approvedAmounts, amount)
			return testutil.SignedTx(uint64(len(approvedAmounts)), 100_000), nil
		},
	}

	writer := NewWriter(client, "eth")
	_, err := writer.Approve(ctx, "nonce", "0xabc", big.NewInt(500))
	require.NoError(t, err)

	require.Len(t, approvedAmounts, 2)
	require.Equal(t, big.NewInt(0), approvedAmounts[0])
	require.Equal(t, big.NewInt(500), approvedAmounts[1])
}

func Test_Writer_Approve_FailedReset(t *testing.T) {
	ctx := testutil.MockContext()

	client := &testutil.MockEthClient{
		ERC20AllowanceFunc: func(ctx context.Context, ownerAddress string) (*big.Int, error) {
			return big.NewInt(42), nil
		},
		GetSignedApproveTxFunc: func(
			ctx context.Context, senderNonce string, amount *big.Int,
		) (*ethtypes.Transaction, error) {
			return testutil.SignedTx(0, 100_000), nil
		},
		TransactionReceiptFunc: func(
			ctx context.Context, txHash common.Hash,
		) (*ethtypes.Receipt, error) {
			return &ethtypes.Receipt{Status: ethtypes.ReceiptStatusFailed, TxHash: txHash}, nil
		},
	}

	writer := NewWriter(client, "eth")
	_, err := writer.Approve(ctx, "nonce", "0xabc", big.NewInt(500))

	var resetErr *types.AllowanceResetError
	require.ErrorAs(t, err, &resetErr)
	require.NotEmpty(t, resetErr.TxHash)
}

func Test_Writer_BuyTickets_GasEscalation(t *testing.T) {
	ctx := testutil.MockContext()

	var gasLimits []uint64
	client := &testutil.MockEthClient{
		GetSignedBuyTicketsTxFunc: func(
			ctx context.Context, senderNonce string, contractRaffleID, quantity int64, gasLimit uint64,
		) (*ethtypes.Transaction, error) {
			gasLimits = append(gasLimits, gasLimit)
			if len(gasLimits) == 1 {
				return nil, errors.New("intrinsic gas too low")
			}

			return testutil.SignedTx(uint64(len(gasLimits)), gasLimit), nil
		},
	}

	writer := NewWriter(client, "eth")
	txHash, err := writer.BuyTickets(ctx, "nonce", 3, 10)
	require.NoError(t, err)
	require.NotEmpty(t, txHash)

	require.Equal(t, []uint64{1_500_000, 2_500_000}, gasLimits)
}

func Test_Writer_BuyTickets_GasLimitCap(t *testing.T) {
	ctx := testutil.MockContext()

	var gasLimits []uint64
	client := &testutil.MockEthClient{
		GetSignedBuyTicketsTxFunc: func(
			ctx context.Context, senderNonce string, contractRaffleID, quantity int64, gasLimit uint64,
		) (*ethtypes.Transaction, error) {
			gasLimits = append(gasLimits, gasLimit)
			return testutil.SignedTx(uint64(len(gasLimits)), gasLimit), nil
		},
	}

	writer := NewWriter(client, "eth")
	_, err := writer.BuyTickets(ctx, "nonce", 3, 1000)
	require.NoError(t, err)

	require.Equal(t, []uint64{8_000_000}, gasLimits)
}

func Test_Writer_BuyTickets_NoRetryAfterRevert(t *testing.T) {
	ctx := testutil.MockContext()

	signings := 0
	client := &testutil.MockEthClient{
		GetSignedBuyTicketsTxFunc: func(
			ctx context.Context, senderNonce string, contractRaffleID, quantity int64, gasLimit uint64,
		) (*ethtypes.Transaction, error) {
			signings++
			return testutil.SignedTx(uint64(signings), gasLimit), nil
		},
		TransactionReceiptFunc: func(
			ctx context.Context, txHash common.Hash,
		) (*ethtypes.Receipt, error) {
			return &ethtypes.Receipt{Status: ethtypes.ReceiptStatusFailed, TxHash: txHash}, nil
		},
	}

	writer := NewWriter(client, "eth")
	_, err := writer.BuyTickets(ctx, "nonce", 3, 10)

	var revertErr *types.TxRevertedError
	require.ErrorAs(t, err, &revertErr)
	require.Equal(t, 1, signings)
}

func Test_Writer_BuyTickets_NetworkUnreachable(t *testing.T) {
	ctx := testutil.MockContext()

	client := &testutil.MockEthClient{
		GetSignedBuyTicketsTxFunc: func(
			ctx context.Context, senderNonce string, contractRaffleID, quantity int64, gasLimit uint64,
		) (*ethtypes.Transaction, error) {
			return testutil.SignedTx(0, gasLimit), nil
		},
		BalanceAtFunc: func(
			ctx context.Context, from common.Address, block *big.Int,
		) (*big.Int, error) {
			return nil, errors.New("connection refused")
		},
	}

	writer := NewWriter(client, "eth")
	_, err := writer.BuyTickets(ctx, "nonce", 3, 1)
	require.ErrorIs(t, err, types.ErrNetworkUnreachable)
}

func Test_Writer_BuyTickets_NoRetryOnSubmitFailure(t *testing.T) {
	ctx := testutil.MockContext()

	// A bigger gas limit only helps gas estimation failures. A rejected
	// submission must surface immediately without a second attempt.
	signings := 0
	client := &testutil.MockEthClient{
		GetSignedBuyTicketsTxFunc: func(
			ctx context.Context, senderNonce string, contractRaffleID, quantity int64, gasLimit uint64,
		) (*ethtypes.Transaction, error) {
			signings++
			return testutil.SignedTx(uint64(signings), gasLimit), nil
		},
		SendTransactionFunc: func(ctx context.Context, tx *ethtypes.Transaction) error {
			return errors.New("transaction underpriced")
		},
	}

	writer := NewWriter(client, "eth")
	_, err := writer.BuyTickets(ctx, "nonce", 3, 10)

	var revertErr *types.ContractRevertedError
	require.ErrorAs(t, err, &revertErr)
	require.Equal(t, 1, signings)
}

func Test_Writer_CreateRaffle_ReadBackContractID(t *testing.T) {
	ctx := testutil.MockContext()

	client := &testutil.MockEthClient{
		GetSignedCreateRaffleTxFunc: func(
			ctx context.Context, ticketPrice float64, maxTickets int64,
			endTime time.Time, nftContract string,
		) (*ethtypes.Transaction, error) {
			return testutil.SignedTx(0, 1_000_000), nil
		},
		RaffleCounterFunc: func(ctx context.Context) (int64, error) {
			return 7, nil
		},
	}

	writer := NewWriter(client, "eth")
	txHash, contractID, err := writer.CreateRaffle(
		ctx, 10, 100, time.Now().Add(time.Hour), "")
	require.NoError(t, err)
	require.NotEmpty(t, txHash)
	require.Equal(t, int64(6), contractID)
}
