package lifecycle

import (
	"errors"
	"fmt"

	"evm_tx_toolkit/internal/core/domain"
)

// ExtractEvent returns the payload of the first record named eventName.
//
// Only receipts with status 1 are inspected. Records that fail to decode are
// logged and skipped; scanning stops at the first match, so later logs are
// never decoded.
func (h *Helper) ExtractEvent(receipt *domain.Receipt, decoder LogDecoder, eventName string) (any, error) {
	if !receipt.Succeeded() {
		return nil, fmt.Errorf("%w: status %q", domain.ErrTxNotSuccessful, ExtractStatus(receipt).Status)
	}
	if decoder == nil {
		return nil, errors.New("ExtractEvent: decoder is nil")
	}

	logger := h.logger.With("txHash", receipt.TxHash.Hex(), "event", eventName)

	var decodeErrs []error
	index := 0
	for record, err := range decoder.Records(receipt) {
		if err != nil {
			logger.Warn("Failed to decode receipt log", "logIndex", index, "error", err)
			decodeErrs = append(decodeErrs, err)
		} else if record.Name == eventName {
			return decoder.Payload(record), nil
		}
		index++
	}

	notFound := fmt.Errorf("%w: %s", domain.ErrEventNotFound, eventName)
	if len(decodeErrs) > 0 {
		return nil, errors.Join(append([]error{notFound}, decodeErrs...)...)
	}
	return nil, notFound
}

// ExtractEventOrEmpty is ExtractEvent collapsed to the empty string on any failure.
func (h *Helper) ExtractEventOrEmpty(receipt *domain.Receipt, decoder LogDecoder, eventName string) any {
	payload, err := h.ExtractEvent(receipt, decoder, eventName)
	if err != nil {
		return ""
	}
	return payload
}
