package testutil

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/raffler-space/backend/internal/domain/blockchain/types"
	"github.com/raffler-space/backend/pkg/ethutil"
)

// MockEthClient fakes a chain node. Unset funcs answer with permissive
// defaults: submissions succeed, receipts confirm, balances are huge. Signing
// funcs have no sane default and must be provided by the test.
type MockEthClient struct {
	BlockNumberFunc        func(ctx context.Context) (uint64, error)
	TransactionReceiptFunc func(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error)
	SuggestGasPriceFunc    func(ctx context.Context) (*big.Int, error)
	PendingNonceAtFunc     func(ctx context.Context, account common.Address) (uint64, error)
	SendTransactionFunc    func(ctx context.Context, tx *ethtypes.Transaction) error
	BalanceAtFunc          func(ctx context.Context, from common.Address, block *big.Int) (*big.Int, error)

	RaffleInfoFunc         func(ctx context.Context, contractRaffleID int64) (types.RaffleInfo, error)
	RaffleCounterFunc      func(ctx context.Context) (int64, error)
	RaffleOwnerFunc        func(ctx context.Context) (string, error)
	UserEntriesFunc        func(ctx context.Context, accountAddress string, contractRaffleID int64) (int64, error)
	RaffleParticipantsFunc func(ctx context.Context, contractRaffleID int64) ([]string, error)

	ERC20TokenInfoFunc func(ctx context.Context, address string) (types.TokenInfo, error)
	ERC20BalanceOfFunc func(ctx context.Context, accountAddress string) (*big.Int, error)
	ERC20AllowanceFunc func(ctx context.Context, ownerAddress string) (*big.Int, error)

	GetSignedApproveTxFunc      func(ctx context.Context, senderNonce string, amount *big.Int) (*ethtypes.Transaction, error)
	GetSignedBuyTicketsTxFunc   func(ctx context.Context, senderNonce string, contractRaffleID, quantity int64, gasLimit uint64) (*ethtypes.Transaction, error)
	GetSignedCreateRaffleTxFunc func(ctx context.Context, ticketPrice float64, maxTickets int64, endTime time.Time, nftContract string) (*ethtypes.Transaction, error)
	GetSignedSelectWinnerTxFunc func(ctx context.Context, contractRaffleID int64) (*ethtypes.Transaction, error)
	GetSignedClaimPrizeTxFunc   func(ctx context.Context, contractRaffleID int64) (*ethtypes.Transaction, error)
	GetSignedWithdrawFeesTxFunc func(ctx context.Context) (*ethtypes.Transaction, error)
}

// SignedTx builds a signed legacy transaction. The dispatcher recovers the
// sender from the signature before submitting, so a bare unsigned transaction
// is not enough for tests going through it.
func SignedTx(nonce, gasLimit uint64) *ethtypes.Transaction {
	key, err := ethutil.GeneratePrivateKey([]byte("wallet-secret"), []byte("tx-signer"))
	if err != nil {
		panic(err)
	}

	tx := ethtypes.NewTransaction(nonce, common.Address{}, big.NewInt(0), gasLimit, big.NewInt(1), nil)
	signed, err := ethtypes.SignTx(tx, ethtypes.NewEIP155Signer(big.NewInt(1)), key)
	if err != nil {
		panic(err)
	}

	return signed
}

func (m *MockEthClient) Start(ctx context.Context) {}

func (m *MockEthClient) BlockNumber(ctx context.Context) (uint64, error) {
	if m.BlockNumberFunc != nil {
		return m.BlockNumberFunc(ctx)
	}

	return 1, nil
}

func (m *MockEthClient) TransactionReceipt(
	ctx context.Context, txHash common.Hash,
) (*ethtypes.Receipt, error) {
	if m.TransactionReceiptFunc != nil {
		return m.TransactionReceiptFunc(ctx, txHash)
	}

	return &ethtypes.Receipt{Status: ethtypes.ReceiptStatusSuccessful, TxHash: txHash}, nil
}

func (m *MockEthClient) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	if m.SuggestGasPriceFunc != nil {
		return m.SuggestGasPriceFunc(ctx)
	}

	return big.NewInt(1), nil
}

func (m *MockEthClient) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	if m.PendingNonceAtFunc != nil {
		return m.PendingNonceAtFunc(ctx, account)
	}

	return 0, nil
}

func (m *MockEthClient) SendTransaction(ctx context.Context, tx *ethtypes.Transaction) error {
	if m.SendTransactionFunc != nil {
		return m.SendTransactionFunc(ctx, tx)
	}

	return nil
}

func (m *MockEthClient) BalanceAt(
	ctx context.Context, from common.Address, block *big.Int,
) (*big.Int, error) {
	if m.BalanceAtFunc != nil {
		return m.BalanceAtFunc(ctx, from, block)
	}

	return new(big.Int).Lsh(big.NewInt(1), 128), nil
}

func (m *MockEthClient) RaffleInfo(
	ctx context.Context, contractRaffleID int64,
) (types.RaffleInfo, error) {
	if m.RaffleInfoFunc != nil {
		return m.RaffleInfoFunc(ctx, contractRaffleID)
	}

	return types.RaffleInfo{}, nil
}

func (m *MockEthClient) RaffleCounter(ctx context.Context) (int64, error) {
	if m.RaffleCounterFunc != nil {
		return m.RaffleCounterFunc(ctx)
	}

	return 0, nil
}

func (m *MockEthClient) RaffleOwner(ctx context.Context) (string, error) {
	if m.RaffleOwnerFunc != nil {
		return m.RaffleOwnerFunc(ctx)
	}

	return "", nil
}

func (m *MockEthClient) UserEntries(
	ctx context.Context, accountAddress string, contractRaffleID int64,
) (int64, error) {
	if m.UserEntriesFunc != nil {
		return m.UserEntriesFunc(ctx, accountAddress, contractRaffleID)
	}

	return 0, nil
}

func (m *MockEthClient) RaffleParticipants(
	ctx context.Context, contractRaffleID int64,
) ([]string, error) {
	if m.RaffleParticipantsFunc != nil {
		return m.RaffleParticipantsFunc(ctx, contractRaffleID)
	}

	return nil, nil
}

func (m *MockEthClient) ERC20TokenInfo(ctx context.Context, address string) (types.TokenInfo, error) {
	if m.ERC20TokenInfoFunc != nil {
		return m.ERC20TokenInfoFunc(ctx, address)
	}

	return types.TokenInfo{Name: "Tether USD", Symbol: "USDT", Decimals: 6}, nil
}

func (m *MockEthClient) ERC20BalanceOf(ctx context.Context, accountAddress string) (*big.Int, error) {
	if m.ERC20BalanceOfFunc != nil {
		return m.ERC20BalanceOfFunc(ctx, accountAddress)
	}

	return big.NewInt(0), nil
}

func (m *MockEthClient) ERC20Allowance(ctx context.Context, ownerAddress string) (*big.Int, error) {
	if m.ERC20AllowanceFunc != nil {
		return m.ERC20AllowanceFunc(ctx, ownerAddress)
	}

	return big.NewInt(0), nil
}

func (m *MockEthClient) GetSignedApproveTx(
	ctx context.Context, senderNonce string, amount *big.Int,
) (*ethtypes.Transaction, error) {
	if m.GetSignedApproveTxFunc != nil {
		return m.GetSignedApproveTxFunc(ctx, senderNonce, amount)
	}

	return nil, errors.New("not implemented")
}

func (m *MockEthClient) GetSignedBuyTicketsTx(
	ctx context.Context, senderNonce string, contractRaffleID, quantity int64, gasLimit uint64,
) (*ethtypes.Transaction, error) {
	if m.GetSignedBuyTicketsTxFunc != nil {
		return m.GetSignedBuyTicketsTxFunc(ctx, senderNonce, contractRaffleID, quantity, gasLimit)
	}

	return nil, errors.New("not implemented")
}

func (m *MockEthClient) GetSignedCreateRaffleTx(
	ctx context.Context, ticketPrice float64, maxTickets int64, endTime time.Time, nftContract string,
) (*ethtypes.Transaction, error) {
	if m.GetSignedCreateRaffleTxFunc != nil {
		return m.GetSignedCreateRaffleTxFunc(ctx, ticketPrice, maxTickets, endTime, nftContract)
	}

	return nil, errors.New("not implemented")
}

func (m *MockEthClient) GetSignedSelectWinnerTx(
	ctx context.Context, contractRaffleID int64,
) (*ethtypes.Transaction, error) {
	if m.GetSignedSelectWinnerTxFunc != nil {
		return m.GetSignedSelectWinnerTxFunc(ctx, contractRaffleID)
	}

	return nil, errors.New("not implemented")
}

func (m *MockEthClient) GetSignedClaimPrizeTx(
	ctx context.Context, contractRaffleID int64,
) (*ethtypes.Transaction, error) {
	if m.GetSignedClaimPrizeTxFunc != nil {
		return m.GetSignedClaimPrizeTxFunc(ctx, contractRaffleID)
	}

	return nil, errors.New("not implemented")
}

func (m *MockEthClient) GetSignedWithdrawFeesTx(ctx context.Context) (*ethtypes.Transaction, error) {
	if m.GetSignedWithdrawFeesTxFunc != nil {
		return m.GetSignedWithdrawFeesTxFunc(ctx)
	}

	return nil, errors.New("not implemented")
}
