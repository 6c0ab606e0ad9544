package eth

import (
	"context"
	"errors"
	"testing"

	"github.com/raffler-space/backend/internal/domain/blockchain/types"
	"github.com/raffler-space/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_Reader_AllRaffles_SkipUnreadableRaffle(t *testing.T) {
	ctx := testutil.MockContext()

	client := &testutil.MockEthClient{
		RaffleCounterFunc: func(ctx context.Context) (int64, error) {
			return 4, nil
		},
		RaffleInfoFunc: func(ctx context.Context, contractRaffleID int64) (types.RaffleInfo, error) {
			if contractRaffleID == 2 {
				return types.RaffleInfo{}, errors.New("execution aborted")
			}

			return types.RaffleInfo{
				ContractRaffleID: contractRaffleID,
				TicketsSold:      contractRaffleID * 10,
				MaxTickets:       100,
			}, nil
		},
	}

	raffles, err := NewReader(client, "eth").AllRaffles(ctx)
	require.NoError(t, err)

	ids := make([]int64, 0, len(raffles))
	for _, info := range raffles {
		ids = append(ids, info.ContractRaffleID)
	}
	require.Equal(t, []int64{0, 1, 3}, ids)
}

func Test_Reader_AllRaffles_CounterFailure(t *testing.T) {
	ctx := testutil.MockContext()

	client := &testutil.MockEthClient{
		RaffleCounterFunc: func(ctx context.Context) (int64, error) {
			return 0, errors.New("connection refused")
		},
	}

	_, err := NewReader(client, "eth").AllRaffles(ctx)
	require.Error(t, err)
}
