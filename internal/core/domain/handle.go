package domain

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// TxHandle is a pending reference to an in-flight transaction.
// Wait may be called once; later calls return ErrHandleConsumed.
type TxHandle interface {
	// Hash returns the transaction hash.
	Hash() common.Hash

	// Wait blocks until the transaction is final. A reverted transaction
	// yields a *WaitError carrying its receipt.
	Wait(ctx context.Context) (*Receipt, error)
}
