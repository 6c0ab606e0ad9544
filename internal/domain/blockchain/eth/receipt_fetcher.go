package eth

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	etypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/raffler-space/backend/pkg/xcontext"
)

// timeAfter is swapped out in tests to avoid real waits.
var timeAfter = time.After

type receiptFetcher interface {
	waitForReceipt(ctx context.Context, txHash common.Hash) (*etypes.Receipt, error)
}

type defaultReceiptFetcher struct {
	chain  string
	client EthClient
}

func newReceiptFetcher(client EthClient, chain string) receiptFetcher {
	return &defaultReceiptFetcher{
		chain:  chain,
		client: client,
	}
}

// waitForReceipt polls the chain until the transaction is mined or the retry
// budget runs out. A receipt with a failed status is still a valid result, the
// caller decides what a revert means.
func (rf *defaultReceiptFetcher) waitForReceipt(
	ctx context.Context, txHash common.Hash,
) (*etypes.Receipt, error) {
	pollFrequency := xcontext.Configs(ctx).Blockchain.ReceiptPollFrequency.Duration
	maxRetry := xcontext.Configs(ctx).Blockchain.ReceiptMaxRetry

	for retry := 0; ; retry++ {
		receiptCtx, cancel := context.WithTimeout(ctx, RpcTimeOut)
		receipt, err := rf.client.TransactionReceipt(receiptCtx, txHash)
		cancel()

		if err == nil && receipt != nil {
			return receipt, nil
		}

		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot get receipt for tx hash %s: %v", txHash.Hex(), err)
		}

		if retry >= maxRetry {
			xcontext.Logger(ctx).Errorf("Cannot get receipt for tx with hash %s on chain %s",
				txHash.Hex(), rf.chain)
			return nil, fmt.Errorf("no receipt for tx %s after %d retries", txHash.Hex(), maxRetry)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timeAfter(pollFrequency):
		}
	}
}
