package domain

import (
	"context"
	"errors"

	"github.com/raffler-space/backend/internal/common"
	"github.com/raffler-space/backend/internal/domain/blockchain/types"
	"github.com/raffler-space/backend/pkg/errorx"
	"github.com/raffler-space/backend/pkg/xcontext"
)

// convertChainError maps a typed chain error to a client-facing error and
// bumps the failure counter. Reverts surface under revertCode so a failed
// approval and a failed purchase stay distinguishable; the raw error is
// logged, never returned.
func convertChainError(ctx context.Context, method string, revertCode errorx.Code, err error) error {
	common.PromCounters[common.BlockchainTransactionFailure].
		WithLabelValues(method).Inc()

	var gasErr *types.GasEstimationError
	var revertErr *types.ContractRevertedError
	var txErr *types.TxRevertedError
	var resetErr *types.AllowanceResetError

	switch {
	case errors.Is(err, types.ErrNetworkUnreachable):
		xcontext.Logger(ctx).Warnf("No healthy rpc for %s: %v", method, err)
		return errorx.New(errorx.Unavailable, "Network is temporarily unreachable")

	case errors.As(err, &resetErr):
		xcontext.Logger(ctx).Errorf("Allowance reset failed for %s: %v", method, err)
		return errorx.New(errorx.ApprovalFailed,
			"Cannot reset the existing token allowance")

	case errors.As(err, &revertErr):
		xcontext.Logger(ctx).Warnf("Contract reverted on %s: %v", method, err)
		if revertErr.Reason != "" {
			return errorx.New(revertCode, "Contract rejected the call: %s", revertErr.Reason)
		}

		return errorx.New(revertCode, "Contract rejected the call")

	case errors.As(err, &txErr):
		xcontext.Logger(ctx).Warnf("Transaction reverted on %s: %v", method, err)
		return errorx.New(revertCode, "Transaction reverted on chain")

	case errors.As(err, &gasErr):
		xcontext.Logger(ctx).Warnf("Cannot estimate gas for %s: %v", method, err)
		return errorx.New(errorx.Unavailable, "Cannot prepare the transaction")

	default:
		xcontext.Logger(ctx).Errorf("Unexpected chain error on %s: %v", method, err)
		return errorx.Unknown
	}
}
