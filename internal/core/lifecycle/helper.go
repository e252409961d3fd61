// Package lifecycle submits transactions, awaits their receipts and extracts
// status and event data from them.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"evm_tx_toolkit/internal/core/domain"
	"evm_tx_toolkit/internal/logger"
)

// SubmitFunc sends a transaction and returns a handle to await it.
type SubmitFunc func(ctx context.Context, args ...any) (domain.TxHandle, error)

// Future is a pending receipt, resolved by calling it.
type Future func(ctx context.Context) (*domain.Receipt, error)

// Helper implements the transaction lifecycle operations.
type Helper struct {
	logger logger.AppLogger
	out    io.Writer
}

// NewHelper creates a Helper. Status lines are written to out, or to stdout when out is nil.
func NewHelper(appLogger logger.AppLogger, out io.Writer) (*Helper, error) {
	if appLogger == nil {
		return nil, errors.New("NewHelper: appLogger is nil")
	}
	if out == nil {
		out = os.Stdout
	}
	return &Helper{
		logger: appLogger,
		out:    out,
	}, nil
}

// SubmitAndAwait calls submit once with args and waits once for the resulting handle.
//
// On success the receipt is returned unchanged. When the wait fails with a
// *domain.WaitError carrying a receipt, that partial receipt is returned along
// with an error wrapping domain.ErrTxFailed. A wait failure without receipt
// returns a nil receipt and domain.ErrNoReceipt. There are no retries.
func (h *Helper) SubmitAndAwait(ctx context.Context, submit SubmitFunc, args ...any) (*domain.Receipt, error) {
	if submit == nil {
		return nil, fmt.Errorf("%w: submit function is nil", domain.ErrSubmit)
	}

	handle, err := submit(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSubmit, err)
	}
	if handle == nil {
		return nil, fmt.Errorf("%w: submit returned no handle", domain.ErrSubmit)
	}

	logger := h.logger.With("txHash", handle.Hash().Hex())
	logger.Debug("Transaction submitted, awaiting receipt")

	receipt, err := handle.Wait(ctx)
	if err == nil {
		logger.Debug("Transaction finalized", "status", ExtractStatus(receipt).Status)
		return receipt, nil
	}

	var waitErr *domain.WaitError
	if errors.As(err, &waitErr) && waitErr.Receipt != nil {
		logger.Debug("Transaction wait failed with receipt", "error", err)
		return waitErr.Receipt, fmt.Errorf("%w: %w", domain.ErrTxFailed, err)
	}

	logger.Debug("Transaction wait failed without receipt", "error", err)
	return nil, fmt.Errorf("%w: %w", domain.ErrNoReceipt, err)
}

// Absorb returns a Future that runs SubmitAndAwait and drops wait failures,
// resolving to the partial receipt (possibly nil) instead. Submit failures and
// context cancellation are still returned.
func (h *Helper) Absorb(submit SubmitFunc, args ...any) Future {
	return func(ctx context.Context) (*domain.Receipt, error) {
		receipt, err := h.SubmitAndAwait(ctx, submit, args...)
		if err == nil {
			return receipt, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		if domain.KindOf(err) == domain.KindSubmit {
			return nil, err
		}
		h.logger.Warn("Transaction wait failed", "kind", domain.KindOf(err), "error", err)
		return receipt, nil
	}
}
