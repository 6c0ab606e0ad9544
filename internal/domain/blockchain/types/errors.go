package types

import (
	"errors"
	"fmt"
)

// ErrNetworkUnreachable is returned when no healthy RPC answers for a chain.
var ErrNetworkUnreachable = errors.New("network unreachable")

// GasEstimationError wraps a provider failure while estimating or allocating
// gas for a transaction. The caller may retry once with a larger limit.
type GasEstimationError struct {
	Err error
}

func (e *GasEstimationError) Error() string {
	return fmt.Sprintf("gas estimation failed: %v", e.Err)
}

func (e *GasEstimationError) Unwrap() error {
	return e.Err
}

// ContractRevertedError is returned when the node rejects a transaction with
// an execution revert. Reason holds the revert string when the node returned
// one.
type ContractRevertedError struct {
	Reason string
}

func (e *ContractRevertedError) Error() string {
	if e.Reason == "" {
		return "contract execution reverted"
	}

	return fmt.Sprintf("contract execution reverted: %s", e.Reason)
}

// AllowanceResetError is returned when the zero-amount approval preceding a
// real approval does not confirm.
type AllowanceResetError struct {
	TxHash string
}

func (e *AllowanceResetError) Error() string {
	return fmt.Sprintf("allowance reset tx %s failed", e.TxHash)
}

// TxRevertedError is returned when a mined transaction has a failed receipt
// status. The hash points at the on-chain evidence.
type TxRevertedError struct {
	TxHash string
}

func (e *TxRevertedError) Error() string {
	return fmt.Sprintf("tx %s reverted on chain", e.TxHash)
}
