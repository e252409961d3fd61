// Package domain defines the core domain models of the transaction lifecycle.
package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Receipt status values reported by the node.
const (
	ReceiptStatusFailed     uint64 = 0
	ReceiptStatusSuccessful uint64 = 1
)

// Receipt is the outcome record of a finalized (or failed) transaction.
//
// Status and BlockNumber are pointers because either may be absent: receipts
// of pre-Byzantium blocks carry a state root instead of a status, and partial
// receipts attached to wait failures may lack both.
type Receipt struct {
	TxHash      common.Hash
	Status      *uint64
	BlockNumber *big.Int
	Logs        []*types.Log

	// Events holds entries already classified upstream. Only the
	// pre-decoded event list decoder reads it.
	Events []EventRecord
}

// HasStatus reports whether the receipt carries a status attribute.
func (r *Receipt) HasStatus() bool {
	return r != nil && r.Status != nil
}

// Succeeded reports whether the receipt carries status 1.
func (r *Receipt) Succeeded() bool {
	return r.HasStatus() && *r.Status == ReceiptStatusSuccessful
}

// NewStatus returns a pointer to status, for building receipts.
func NewStatus(status uint64) *uint64 {
	return &status
}

// EventRecord is one decoded event: its name and its arguments in declaration order.
type EventRecord struct {
	Name string
	Args []any

	// Data is the whole payload of a pre-decoded entry.
	Data any
}

// FirstArg returns the first decoded argument, or nil when there is none.
func (e EventRecord) FirstArg() any {
	if len(e.Args) == 0 {
		return nil
	}
	return e.Args[0]
}

// StatusSummary is the {status, height} pair derived from a receipt.
// Both fields are empty when the receipt has no status.
type StatusSummary struct {
	Status string
	Height string
}

// IsUnknown reports whether the summary is the "unknown outcome" sentinel.
func (s StatusSummary) IsUnknown() bool {
	return s.Status == ""
}

// String renders the summary as a status line.
func (s StatusSummary) String() string {
	return "Tx Status:" + s.Status + " Height:" + s.Height
}
