package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so callers can tell them apart.
type ErrorKind string

// Error kinds.
const (
	KindNone            ErrorKind = ""
	KindTransport       ErrorKind = "transport"
	KindSubmit          ErrorKind = "submit"
	KindTxFailed        ErrorKind = "tx_failed"
	KindNoReceipt       ErrorKind = "no_receipt"
	KindTxNotSuccessful ErrorKind = "tx_not_successful"
	KindEventNotFound   ErrorKind = "event_not_found"
	KindDecodeFailure   ErrorKind = "decode_failure"
	KindHandleConsumed  ErrorKind = "handle_consumed"
	KindFilesystem      ErrorKind = "filesystem"
	KindUnknown         ErrorKind = "unknown"
)

var (
	// ErrTransport indicates the RPC endpoint could not be reached or answered with an error.
	ErrTransport = errors.New("rpc transport failure")

	// ErrSubmit indicates the submit callable failed before a handle was produced.
	ErrSubmit = errors.New("transaction submission failed")

	// ErrTxFailed indicates the wait ended with a failure that carried a receipt.
	ErrTxFailed = errors.New("transaction failed")

	// ErrNoReceipt indicates the wait failed and no receipt was attached.
	ErrNoReceipt = errors.New("transaction wait failed without receipt")

	// ErrTxNotSuccessful indicates the receipt status is absent or not 1.
	ErrTxNotSuccessful = errors.New("transaction status is not successful")

	// ErrEventNotFound indicates no log matched the requested event name.
	ErrEventNotFound = errors.New("event not found in receipt")

	// ErrDecodeFailure indicates a log could not be decoded into an event.
	ErrDecodeFailure = errors.New("failed to decode log")

	// ErrHandleConsumed indicates a transaction handle was awaited more than once.
	ErrHandleConsumed = errors.New("transaction handle already awaited")

	// ErrFilesystem indicates a file helper failed.
	ErrFilesystem = errors.New("filesystem operation failed")
)

// kindOrder is checked in order; the first match wins.
var kindOrder = []struct {
	err  error
	kind ErrorKind
}{
	{ErrSubmit, KindSubmit},
	{ErrTxFailed, KindTxFailed},
	{ErrNoReceipt, KindNoReceipt},
	{ErrHandleConsumed, KindHandleConsumed},
	{ErrTxNotSuccessful, KindTxNotSuccessful},
	{ErrEventNotFound, KindEventNotFound},
	{ErrDecodeFailure, KindDecodeFailure},
	{ErrTransport, KindTransport},
	{ErrFilesystem, KindFilesystem},
}

// KindOf classifies err. A nil error has KindNone.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	for _, k := range kindOrder {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindUnknown
}

// WaitError is returned by TxHandle.Wait when the transaction did not succeed.
// Receipt is the partial receipt, if the node produced one.
type WaitError struct {
	Receipt *Receipt
	Err     error
}

// Error implements error.
func (e *WaitError) Error() string {
	if e.Receipt != nil {
		return fmt.Sprintf("transaction %s: %v", e.Receipt.TxHash.Hex(), e.Err)
	}
	return fmt.Sprintf("transaction wait: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *WaitError) Unwrap() error {
	return e.Err
}
