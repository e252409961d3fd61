package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"evm_tx_toolkit/internal/adapters/evm"
	"evm_tx_toolkit/internal/adapters/signer"
	"evm_tx_toolkit/internal/core/lifecycle"
)

func newSendCmd(a *app) *cobra.Command {
	var flags txFlags

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Sign, broadcast and await a single transaction",
		Long: `Sign a transaction with a local key, broadcast it and await its receipt.
Nonce, gas price, gas limit and chain ID are taken from the node.

Examples:
  txtool send --to 0x7099...79C8 --value 1000000000000000000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request()
			if err != nil {
				return err
			}
			key, err := a.privateKey(flags.key)
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

			localSigner, err := signer.NewLocalSigner(node, key)
			if err != nil {
				return err
			}

			helper, err := a.newHelper(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			submitter := evm.NewSubmitter(node, a.pollInterval(), a.logger)
			receipt, err := helper.SubmitAndAwait(ctx, submitter.SignAndSend(localSigner), req)
			if receipt != nil {
				fmt.Fprintln(cmd.OutOrStdout(), colorStatus(lifecycle.ExtractStatus(receipt)))
			}
			return err
		},
	}

	flags.register(cmd)
	return cmd
}
