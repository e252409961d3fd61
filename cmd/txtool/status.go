package main

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"evm_tx_toolkit/internal/adapters/evm"
	"evm_tx_toolkit/internal/core/domain"
	"evm_tx_toolkit/internal/core/domain/client"
	"evm_tx_toolkit/internal/core/lifecycle"
)

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status <tx-hash>...",
		Short: "Await transactions and print one status line each",
		Long: `Await the receipts of already broadcast transactions concurrently and print
"Tx Status:<status> Height:<block>" for each, in argument order.

Examples:
  txtool status 0x5c50...e1 0x9a1f...07`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hashes, err := parseHashes(args)
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

			track := a.trackBroadcast(node)
			futures := make([]lifecycle.Future, 0, len(hashes))
			for _, hash := range hashes {
				futures = append(futures, helper.Absorb(track, hash))
			}

			_, err = helper.AwaitAll(ctx, futures)
			return err
		},
	}
}

// trackBroadcast returns a submit function that does not send anything: it
// hands back a handle for the already broadcast transaction given as argument.
func (a *app) trackBroadcast(node client.NodeClient) lifecycle.SubmitFunc {
	return func(_ context.Context, args ...any) (domain.TxHandle, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("expected one transaction hash argument, got %d", len(args))
		}
		hash, ok := args[0].(common.Hash)
		if !ok {
			return nil, fmt.Errorf("unsupported transaction hash argument type %T", args[0])
		}
		return evm.NewPendingTx(node, hash, a.pollInterval(), a.logger), nil
	}
}

func parseHashes(args []string) ([]common.Hash, error) {
	hashes := make([]common.Hash, 0, len(args))
	for _, arg := range args {
		txHash, err := domain.NewTransactionHash(arg)
		if err != nil {
			return nil, err
		}
		hashes = append(hashes, txHash.Common())
	}
	return hashes, nil
}
