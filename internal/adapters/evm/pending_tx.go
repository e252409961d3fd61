package evm

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"evm_tx_toolkit/internal/core/domain"
	"evm_tx_toolkit/internal/core/domain/client"
	"evm_tx_toolkit/internal/logger"
	"evm_tx_toolkit/internal/utils"
)

// PendingTx is a handle to a broadcast transaction whose receipt is polled from the node.
type PendingTx struct {
	node         client.NodeClient
	hash         common.Hash
	pollInterval time.Duration
	logger       logger.AppLogger
	consumed     atomic.Bool
}

var _ domain.TxHandle = (*PendingTx)(nil)

// NewPendingTx creates a handle for hash, polling every pollInterval.
func NewPendingTx(node client.NodeClient, hash common.Hash, pollInterval time.Duration, appLogger logger.AppLogger) *PendingTx {
	return &PendingTx{
		node:         node,
		hash:         hash,
		pollInterval: pollInterval,
		logger:       appLogger.With("txHash", hash.Hex()),
	}
}

// Hash returns the transaction hash.
func (p *PendingTx) Hash() common.Hash {
	return p.hash
}

// Wait polls until the node reports a receipt. A receipt with status 0 is
// returned inside a *domain.WaitError. Any error other than "not found" ends the wait.
func (p *PendingTx) Wait(ctx context.Context) (*domain.Receipt, error) {
	if !p.consumed.CompareAndSwap(false, true) {
		return nil, domain.ErrHandleConsumed
	}

	for attempt := 1; ; attempt++ {
		receipt, err := p.node.TransactionReceipt(ctx, p.hash)
		switch {
		case err == nil && receipt != nil:
			if receipt.HasStatus() && *receipt.Status == domain.ReceiptStatusFailed {
				return nil, &domain.WaitError{
					Receipt: receipt,
					Err:     fmt.Errorf("%w: %s reverted", domain.ErrTxFailed, p.hash.Hex()),
				}
			}
			return receipt, nil
		case err != nil && !errors.Is(err, ethereum.NotFound):
			return nil, &domain.WaitError{Err: err}
		}

		p.logger.Debug("Receipt not available yet", "attempt", attempt)
		if err := utils.Sleep(ctx, p.pollInterval); err != nil {
			return nil, &domain.WaitError{Err: err}
		}
	}
}
