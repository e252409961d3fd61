package evm

import (
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"

	"evm_tx_toolkit/internal/core/domain"
)

// mapReceiptToDomain converts a go-ethereum receipt to the domain model.
// Receipts carrying a post-state root predate status codes and map to a receipt without status.
func mapReceiptToDomain(receipt *types.Receipt) *domain.Receipt {
	if receipt == nil {
		return nil
	}

	domainReceipt := &domain.Receipt{
		TxHash: receipt.TxHash,
		Logs:   receipt.Logs,
	}
	if len(receipt.PostState) == 0 {
		domainReceipt.Status = domain.NewStatus(receipt.Status)
	}
	if receipt.BlockNumber != nil {
		domainReceipt.BlockNumber = new(big.Int).Set(receipt.BlockNumber)
	}

	return domainReceipt
}
