package lifecycle

import (
	"strconv"

	"evm_tx_toolkit/internal/core/domain"
)

// ExtractStatus normalizes a receipt into its {status, height} pair.
// Status 0 counts as present; a receipt without status (or a nil receipt)
// yields the empty sentinel.
func ExtractStatus(receipt *domain.Receipt) domain.StatusSummary {
	if !receipt.HasStatus() {
		return domain.StatusSummary{}
	}

	height := ""
	if receipt.BlockNumber != nil {
		height = receipt.BlockNumber.String()
	}

	return domain.StatusSummary{
		Status: strconv.FormatUint(*receipt.Status, 10),
		Height: height,
	}
}

// ExtractStatus is the method form of the package level ExtractStatus.
func (h *Helper) ExtractStatus(receipt *domain.Receipt) domain.StatusSummary {
	return ExtractStatus(receipt)
}
