package main

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"evm_tx_toolkit/internal/core/domain"
)

// txFlags are the flags shared by commands that build a transaction request.
type txFlags struct {
	to    string
	value string
	data  string
	key   string
}

func (f *txFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.to, "to", "", "Recipient address (empty for contract creation)")
	cmd.Flags().StringVar(&f.value, "value", "0", "Value in wei, decimal or 0x-prefixed hex")
	cmd.Flags().StringVar(&f.data, "data", "", "Call data as 0x-prefixed hex")
	cmd.Flags().StringVar(&f.key, "key", "", "Hex private key of the sender (default: $"+privateKeyEnv+")")
}

func (f *txFlags) request() (domain.TxRequest, error) {
	var to domain.Address
	if strings.TrimSpace(f.to) != "" {
		addr, err := domain.NewAddress(f.to)
		if err != nil {
			return domain.TxRequest{}, err
		}
		to = addr
	}

	value, err := domain.NewWeiValue(f.value)
	if err != nil {
		return domain.TxRequest{}, err
	}

	var data []byte
	if f.data != "" {
		data, err = hexutil.Decode(f.data)
		if err != nil {
			return domain.TxRequest{}, fmt.Errorf("invalid call data: %w", err)
		}
	}

	if to.IsZero() && len(data) == 0 {
		return domain.TxRequest{}, fmt.Errorf("either --to or --data is required")
	}

	return domain.NewTxRequest(to, value, data), nil
}
