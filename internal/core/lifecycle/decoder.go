package lifecycle

import (
	"fmt"
	"io"
	"iter"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/core/types"

	"evm_tx_toolkit/internal/config"
	"evm_tx_toolkit/internal/core/domain"
)

// LogDecoder turns the entries of a receipt into event records.
type LogDecoder interface {
	// Records yields one record (or decode error) per receipt entry, in order.
	// Decoding is lazy: entries after the point where iteration stops are not decoded.
	Records(receipt *domain.Receipt) iter.Seq2[domain.EventRecord, error]

	// Payload selects the value returned for a matching record.
	Payload(record domain.EventRecord) any
}

// PreDecodedEventList scans receipt.Events, which were classified upstream,
// and returns the whole Data of the matching entry.
type PreDecodedEventList struct{}

var _ LogDecoder = PreDecodedEventList{}

// Records yields the receipt's pre-decoded events.
func (PreDecodedEventList) Records(receipt *domain.Receipt) iter.Seq2[domain.EventRecord, error] {
	return func(yield func(domain.EventRecord, error) bool) {
		if receipt == nil {
			return
		}
		for _, event := range receipt.Events {
			if !yield(event, nil) {
				return
			}
		}
	}
}

// Payload returns the record's whole data.
func (PreDecodedEventList) Payload(record domain.EventRecord) any {
	return record.Data
}

// RawLogWithInterfaceDecoder decodes raw receipt logs against a contract ABI
// and returns the first argument of the matching event.
type RawLogWithInterfaceDecoder struct {
	contract abi.ABI
}

var _ LogDecoder = (*RawLogWithInterfaceDecoder)(nil)

// NewRawLogDecoder creates a decoder for events declared in contract.
func NewRawLogDecoder(contract abi.ABI) *RawLogWithInterfaceDecoder {
	return &RawLogWithInterfaceDecoder{contract: contract}
}

// ParseABI reads a JSON contract ABI.
func ParseABI(r io.Reader) (abi.ABI, error) {
	parsed, err := abi.JSON(r)
	if err != nil {
		return abi.ABI{}, fmt.Errorf("failed to parse contract ABI: %w", err)
	}
	return parsed, nil
}

// Records yields one decoded record per receipt log.
func (d *RawLogWithInterfaceDecoder) Records(receipt *domain.Receipt) iter.Seq2[domain.EventRecord, error] {
	return func(yield func(domain.EventRecord, error) bool) {
		if receipt == nil {
			return
		}
		for _, lg := range receipt.Logs {
			if !yield(d.Decode(lg)) {
				return
			}
		}
	}
}

// Payload returns the record's first argument.
func (d *RawLogWithInterfaceDecoder) Payload(record domain.EventRecord) any {
	return record.FirstArg()
}

// Decode parses one log. Arguments are returned in declaration order, with
// indexed arguments taken from the topics. Data maps argument names to values.
func (d *RawLogWithInterfaceDecoder) Decode(lg *types.Log) (domain.EventRecord, error) {
	if lg == nil || len(lg.Topics) == 0 {
		return domain.EventRecord{}, fmt.Errorf("%w: log has no topics", domain.ErrDecodeFailure)
	}

	event, err := d.contract.EventByID(lg.Topics[0])
	if err != nil {
		return domain.EventRecord{}, fmt.Errorf("%w: topic %s: %w", domain.ErrDecodeFailure, lg.Topics[0].Hex(), err)
	}

	nonIndexed, err := event.Inputs.NonIndexed().Unpack(lg.Data)
	if err != nil {
		return domain.EventRecord{}, fmt.Errorf("%w: event %s data: %w", domain.ErrDecodeFailure, event.Name, err)
	}

	var indexedArgs abi.Arguments
	for _, input := range event.Inputs {
		if input.Indexed {
			indexedArgs = append(indexedArgs, input)
		}
	}
	topicValues := make(map[string]any, len(indexedArgs))
	if err := abi.ParseTopicsIntoMap(topicValues, indexedArgs, lg.Topics[1:]); err != nil {
		return domain.EventRecord{}, fmt.Errorf("%w: event %s topics: %w", domain.ErrDecodeFailure, event.Name, err)
	}

	args := make([]any, 0, len(event.Inputs))
	named := make(map[string]any, len(event.Inputs))
	next := 0
	for _, input := range event.Inputs {
		var value any
		if input.Indexed {
			value = topicValues[input.Name]
		} else {
			value = nonIndexed[next]
			next++
		}
		args = append(args, value)
		if input.Name != "" {
			named[input.Name] = value
		}
	}

	return domain.EventRecord{Name: event.Name, Args: args, Data: named}, nil
}

// Classify returns a copy of receipt whose Events hold every log that decodes.
// Logs that do not decode are dropped. The input receipt is not modified.
func (d *RawLogWithInterfaceDecoder) Classify(receipt *domain.Receipt) *domain.Receipt {
	if receipt == nil {
		return nil
	}
	events := make([]domain.EventRecord, 0, len(receipt.Logs))
	for record, err := range d.Records(receipt) {
		if err != nil {
			continue
		}
		events = append(events, record)
	}

	classified := *receipt
	classified.Events = events
	return &classified
}

// NewLogDecoder selects the decoder for mode. contract is required for raw log decoding.
func NewLogDecoder(mode config.EventDecoding, contract *abi.ABI) (LogDecoder, error) {
	switch mode {
	case config.EventDecodingPreDecoded:
		return PreDecodedEventList{}, nil
	case config.EventDecodingRawLog, "":
		if contract == nil {
			return nil, fmt.Errorf("event decoding %q requires a contract ABI", config.EventDecodingRawLog)
		}
		return NewRawLogDecoder(*contract), nil
	default:
		return nil, fmt.Errorf("unsupported event decoding: %s", mode)
	}
}
