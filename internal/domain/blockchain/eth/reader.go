package eth

import (
	"context"
	"math/big"

	"github.com/raffler-space/backend/internal/domain/blockchain/types"
	"github.com/raffler-space/backend/pkg/xcontext"
	"golang.org/x/sync/errgroup"
)

// Reader exposes the read side of the raffle contract. Every error it returns
// is non-fatal to callers, they must fall back to the database mirror.
type Reader struct {
	chain  string
	client EthClient
}

func NewReader(client EthClient, chain string) *Reader {
	return &Reader{chain: chain, client: client}
}

func (r *Reader) RaffleInfo(ctx context.Context, contractRaffleID int64) (types.RaffleInfo, error) {
	return r.client.RaffleInfo(ctx, contractRaffleID)
}

func (r *Reader) RaffleCounter(ctx context.Context) (int64, error) {
	return r.client.RaffleCounter(ctx)
}

func (r *Reader) Owner(ctx context.Context) (string, error) {
	return r.client.RaffleOwner(ctx)
}

func (r *Reader) UserEntries(ctx context.Context, accountAddress string, contractRaffleID int64) (int64, error) {
	return r.client.UserEntries(ctx, accountAddress, contractRaffleID)
}

func (r *Reader) RaffleParticipants(ctx context.Context, contractRaffleID int64) ([]string, error) {
	return r.client.RaffleParticipants(ctx, contractRaffleID)
}

// AllRaffles scans ids 0..raffleCounter-1. A failure on a single id is logged
// and skipped, it never fails the whole scan.
func (r *Reader) AllRaffles(ctx context.Context) ([]types.RaffleInfo, error) {
	counter, err := r.client.RaffleCounter(ctx)
	if err != nil {
		return nil, err
	}

	// Unreadable raffles are skipped, a flaky id must not hide the rest.
	results := make([]*types.RaffleInfo, counter)

	var group errgroup.Group
	group.SetLimit(8)
	for id := int64(0); id < counter; id++ {
		id := id
		group.Go(func() error {
			info, err := r.client.RaffleInfo(ctx, id)
			if err != nil {
				xcontext.Logger(ctx).Warnf("Cannot read raffle %d on chain %s: %v", id, r.chain, err)
				return nil
			}

			results[id] = &info
			return nil
		})
	}
	group.Wait()

	raffles := make([]types.RaffleInfo, 0, counter)
	for _, info := range results {
		if info != nil {
			raffles = append(raffles, *info)
		}
	}

	return raffles, nil
}

func (r *Reader) TokenBalance(ctx context.Context, accountAddress string) (*big.Int, error) {
	return r.client.ERC20BalanceOf(ctx, accountAddress)
}

func (r *Reader) TokenAllowance(ctx context.Context, ownerAddress string) (*big.Int, error) {
	return r.client.ERC20Allowance(ctx, ownerAddress)
}
