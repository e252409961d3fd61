package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"evm_tx_toolkit/internal/config"
	"evm_tx_toolkit/internal/core/domain"
	"evm_tx_toolkit/internal/core/lifecycle"
)

func newEventCmd(a *app) *cobra.Command {
	var (
		abiPath string
		lenient bool
	)

	cmd := &cobra.Command{
		Use:   "event <tx-hash> <event-name>",
		Short: "Print the payload of the first matching event of a transaction",
		Long: `Await the receipt of a transaction and print the payload of the first event
with the given name. In raw_log mode the payload is the first event argument;
in pre_decoded mode it is the whole decoded event.

Examples:
  txtool event 0x5c50...e1 Transfer --abi ./erc20.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hashes, err := parseHashes(args[:1])
			if err != nil {
				return err
			}
			eventName := args[1]

			decoder, err := a.newDecoder(abiPath)
			if err != nil {
				return err
			}

			ctx, cancel := a.waitContext(cmd.Context())
			defer cancel()

			node, err := a.dialNode(ctx)
			if err != nil {
				return err
			}
			defer node.Close()

			helper, err := a.newHelper(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			receipt, err := helper.SubmitAndAwait(ctx, a.trackBroadcast(node), hashes[0])
			if err != nil && !errors.Is(err, domain.ErrTxFailed) {
				return err
			}

			if a.cfg.Lifecycle.EventDecoding == config.EventDecodingPreDecoded {
				receipt, err = a.classify(receipt, abiPath)
				if err != nil {
					return err
				}
			}

			if lenient {
				fmt.Fprintln(cmd.OutOrStdout(), formatValue(helper.ExtractEventOrEmpty(receipt, decoder, eventName)))
				return nil
			}

			payload, err := helper.ExtractEvent(receipt, decoder, eventName)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatValue(payload))
			return nil
		},
	}

	cmd.Flags().StringVar(&abiPath, "abi", "", "Path to the contract ABI JSON (default: lifecycle.abi_path)")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "Print an empty line instead of failing when no event is found")

	return cmd
}

// classify decodes the receipt's raw logs into its event list for the pre_decoded mode.
func (a *app) classify(receipt *domain.Receipt, abiPath string) (*domain.Receipt, error) {
	if receipt == nil {
		return nil, nil
	}

	contract, err := a.loadABI(abiPath)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, errors.New("pre_decoded events are classified from receipt logs and need a contract ABI (--abi or lifecycle.abi_path)")
	}

	classified := lifecycle.NewRawLogDecoder(*contract).Classify(receipt)
	a.logger.Debug("Classified receipt logs", "events", len(classified.Events), "logs", len(receipt.Logs))
	return classified, nil
}
