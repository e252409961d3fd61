package main

import (
	"github.com/spf13/cobra"

	"evm_tx_toolkit/internal/adapters/evm"
	"evm_tx_toolkit/internal/core/batch"
	"evm_tx_toolkit/internal/core/lifecycle"
	"evm_tx_toolkit/internal/utils"
)

func newSendBatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "send-batch [batch-file]",
		Short: "Broadcast a file of pre-signed transactions and await them all",
		Long: `Broadcast every transaction of a batch file written by presign, await all
receipts concurrently and print one status line per transaction in file order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var override string
			if len(args) == 1 {
				override = args[0]
			}
			path := a.batchPath(override)

			content, err := utils.ReadFile(a.fs, path)
			if err != nil {
				return err
			}
			rawTxs, err := batch.ReadBatch(content)
			if err != nil {
				return err
			}
			a.logger.Info("Broadcasting batch", "path", path, "count", len(rawTxs))

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

			sendRaw := evm.NewSubmitter(node, a.pollInterval(), a.logger).SendRaw()
			futures := make([]lifecycle.Future, 0, len(rawTxs))
			for _, rawTx := range rawTxs {
				futures = append(futures, helper.Absorb(sendRaw, rawTx))
			}

			_, err = helper.AwaitAll(ctx, futures)
			return err
		},
	}
}
