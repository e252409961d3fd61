// Package txhelper defines the public API of the transaction lifecycle helpers.
package txhelper

import (
	"context"
	"io"

	"evm_tx_toolkit/internal/core/domain"
	"evm_tx_toolkit/internal/core/lifecycle"
	"evm_tx_toolkit/internal/logger"
)

type (
	// Receipt is the outcome record of a finalized (or failed) transaction.
	Receipt = domain.Receipt
	// StatusSummary is the {status, height} pair derived from a receipt.
	StatusSummary = domain.StatusSummary
	// TxHandle is a pending reference to an in-flight transaction.
	TxHandle = domain.TxHandle
	// SubmitFunc sends a transaction and returns a handle to await it.
	SubmitFunc = lifecycle.SubmitFunc
	// Future is a pending receipt, resolved by calling it.
	Future = lifecycle.Future
	// LogDecoder turns the entries of a receipt into event records.
	LogDecoder = lifecycle.LogDecoder
)

// Helper defines the public interface for the transaction lifecycle helpers.
type Helper interface {
	// SubmitAndAwait submits once, waits once and returns the receipt or the
	// partial receipt of a failed wait.
	SubmitAndAwait(ctx context.Context, submit SubmitFunc, args ...any) (*Receipt, error)

	// Absorb wraps SubmitAndAwait into a Future that drops wait failures.
	Absorb(submit SubmitFunc, args ...any) Future

	// AwaitAll resolves futures concurrently and prints their status lines in input order.
	AwaitAll(ctx context.Context, futures []Future) ([]StatusSummary, error)

	// ExtractStatus normalizes a receipt into its {status, height} pair.
	ExtractStatus(receipt *Receipt) StatusSummary

	// ExtractEvent returns the payload of the first event named eventName.
	ExtractEvent(receipt *Receipt, decoder LogDecoder, eventName string) (any, error)

	// ExtractEventOrEmpty is ExtractEvent with every failure collapsed to "".
	ExtractEventOrEmpty(receipt *Receipt, decoder LogDecoder, eventName string) any
}

// Compile-time check to ensure lifecycle.Helper implements Helper
var _ Helper = (*lifecycle.Helper)(nil)

// New creates a Helper logging to appLogger and printing status lines to out (stdout when nil).
func New(appLogger logger.AppLogger, out io.Writer) (Helper, error) {
	helper, err := lifecycle.NewHelper(appLogger, out)
	if err != nil {
		return nil, err
	}
	return helper, nil
}
