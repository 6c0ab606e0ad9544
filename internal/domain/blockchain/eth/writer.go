package eth

import (
	"context"
	"errors"
	"math/big"
	"time"

	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/raffler-space/backend/internal/domain/blockchain/types"
	"github.com/raffler-space/backend/pkg/numberutil"
	"github.com/raffler-space/backend/pkg/xcontext"
)

var errNotEnoughNativeToken = errors.New("not enough native token to cover gas")

const (
	buyTicketsBaseGas      = 500_000
	buyTicketsGasPerTicket = 100_000
	buyTicketsMaxGas       = 8_000_000

	buyTicketsRetryBaseGas      = 1_000_000
	buyTicketsRetryGasPerTicket = 150_000
	buyTicketsRetryMaxGas       = 10_000_000
)

// Writer signs and submits raffle transactions with wallet keys derived from
// the platform secret. Provider errors are converted once at this boundary to
// the typed errors of the types package.
type Writer struct {
	chain      string
	client     EthClient
	dispatcher *EthDispatcher
	receipts   receiptFetcher
}

func NewWriter(client EthClient, chain string) *Writer {
	return &Writer{
		chain:      chain,
		client:     client,
		dispatcher: NewEthDispatcher(client),
		receipts:   newReceiptFetcher(client, chain),
	}
}

// Approve grants the raffle contract an allowance of amount. Some stable
// coins refuse a non-zero approval while one is outstanding, so a non-zero
// current allowance is reset to zero first and the reset must confirm before
// the real approval goes out.
func (w *Writer) Approve(
	ctx context.Context, senderNonce, senderAddress string, amount *big.Int,
) (string, error) {
	allowance, err := w.client.ERC20Allowance(ctx, senderAddress)
	if err != nil {
		return "", err
	}

	if allowance.Sign() > 0 {
		resetTx, err := w.client.GetSignedApproveTx(ctx, senderNonce, big.NewInt(0))
		if err != nil {
			return "", w.convert(err)
		}

		receipt, err := w.submit(ctx, resetTx)
		if err != nil {
			return "", &types.AllowanceResetError{TxHash: resetTx.Hash().Hex()}
		}

		if receipt.Status != ethtypes.ReceiptStatusSuccessful {
			return "", &types.AllowanceResetError{TxHash: resetTx.Hash().Hex()}
		}
	}

	tx, err := w.client.GetSignedApproveTx(ctx, senderNonce, amount)
	if err != nil {
		return "", w.convert(err)
	}

	receipt, err := w.submit(ctx, tx)
	if err != nil {
		return "", err
	}

	if receipt.Status != ethtypes.ReceiptStatusSuccessful {
		return "", &types.TxRevertedError{TxHash: tx.Hash().Hex()}
	}

	return tx.Hash().Hex(), nil
}

// BuyTickets purchases quantity tickets of a deployed raffle. The gas limit
// scales with quantity; if gas estimation fails on the first limit the
// purchase is retried once with a larger one before giving up. Reverts and
// unreachable networks are not retried, a bigger limit cannot help them.
func (w *Writer) BuyTickets(
	ctx context.Context, senderNonce string, contractRaffleID, quantity int64,
) (string, error) {
	gasLimit := numberutil.MinInt64(
		buyTicketsBaseGas+quantity*buyTicketsGasPerTicket, buyTicketsMaxGas)

	txHash, err := w.tryBuyTickets(ctx, senderNonce, contractRaffleID, quantity, uint64(gasLimit))
	if err == nil {
		return txHash, nil
	}

	var gasErr *types.GasEstimationError
	if !errors.As(err, &gasErr) {
		return "", err
	}

	xcontext.Logger(ctx).Warnf("Buy tickets failed with gas limit %d, retrying: %v", gasLimit, err)

	retryGasLimit := numberutil.MinInt64(
		buyTicketsRetryBaseGas+quantity*buyTicketsRetryGasPerTicket, buyTicketsRetryMaxGas)

	txHash, retryErr := w.tryBuyTickets(
		ctx, senderNonce, contractRaffleID, quantity, uint64(retryGasLimit))
	if retryErr == nil {
		return txHash, nil
	}

	return "", retryErr
}

func (w *Writer) tryBuyTickets(
	ctx context.Context, senderNonce string, contractRaffleID, quantity int64, gasLimit uint64,
) (string, error) {
	tx, err := w.client.GetSignedBuyTicketsTx(ctx, senderNonce, contractRaffleID, quantity, gasLimit)
	if err != nil {
		return "", w.convert(err)
	}

	receipt, err := w.submit(ctx, tx)
	if err != nil {
		return "", err
	}

	if receipt.Status != ethtypes.ReceiptStatusSuccessful {
		return "", &types.TxRevertedError{TxHash: tx.Hash().Hex()}
	}

	return tx.Hash().Hex(), nil
}

// CreateRaffle deploys a new raffle on chain and returns the tx hash together
// with the contract raffle id it got. The contract assigns ids sequentially,
// so the id is read back from the counter once the deploy confirms.
func (w *Writer) CreateRaffle(
	ctx context.Context, ticketPrice float64, maxTickets int64, endTime time.Time, nftContract string,
) (string, int64, error) {
	tx, err := w.client.GetSignedCreateRaffleTx(ctx, ticketPrice, maxTickets, endTime, nftContract)
	if err != nil {
		return "", 0, w.convert(err)
	}

	receipt, err := w.submit(ctx, tx)
	if err != nil {
		return "", 0, err
	}

	if receipt.Status != ethtypes.ReceiptStatusSuccessful {
		return "", 0, &types.TxRevertedError{TxHash: tx.Hash().Hex()}
	}

	counter, err := w.client.RaffleCounter(ctx)
	if err != nil {
		return "", 0, err
	}

	return tx.Hash().Hex(), counter - 1, nil
}

func (w *Writer) SelectWinner(ctx context.Context, contractRaffleID int64) (string, error) {
	tx, err := w.client.GetSignedSelectWinnerTx(ctx, contractRaffleID)
	if err != nil {
		return "", w.convert(err)
	}

	return w.submitChecked(ctx, tx)
}

func (w *Writer) ClaimPrize(ctx context.Context, contractRaffleID int64) (string, error) {
	tx, err := w.client.GetSignedClaimPrizeTx(ctx, contractRaffleID)
	if err != nil {
		return "", w.convert(err)
	}

	return w.submitChecked(ctx, tx)
}

func (w *Writer) WithdrawFees(ctx context.Context) (string, error) {
	tx, err := w.client.GetSignedWithdrawFeesTx(ctx)
	if err != nil {
		return "", w.convert(err)
	}

	return w.submitChecked(ctx, tx)
}

func (w *Writer) submitChecked(ctx context.Context, tx *ethtypes.Transaction) (string, error) {
	receipt, err := w.submit(ctx, tx)
	if err != nil {
		return "", err
	}

	if receipt.Status != ethtypes.ReceiptStatusSuccessful {
		return "", &types.TxRevertedError{TxHash: tx.Hash().Hex()}
	}

	return tx.Hash().Hex(), nil
}

func (w *Writer) submit(ctx context.Context, tx *ethtypes.Transaction) (*ethtypes.Receipt, error) {
	result := w.dispatcher.Dispatch(ctx, &types.DispatchedTxRequest{Chain: w.chain, Tx: tx})
	if !result.Success {
		switch result.Err {
		case types.ErrNotEnoughBalance:
			return nil, &types.GasEstimationError{Err: errNotEnoughNativeToken}
		case types.ErrSubmitTx:
			return nil, &types.ContractRevertedError{}
		default:
			return nil, types.ErrNetworkUnreachable
		}
	}

	return w.receipts.waitForReceipt(ctx, tx.Hash())
}

// convert maps a raw provider error to the typed hierarchy.
func (w *Writer) convert(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, types.ErrNetworkUnreachable) {
		return err
	}

	if reason := revertReason(err); reason != "" {
		return &types.ContractRevertedError{Reason: reason}
	}

	return &types.GasEstimationError{Err: err}
}
