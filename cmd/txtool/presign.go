package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"evm_tx_toolkit/internal/adapters/signer"
	"evm_tx_toolkit/internal/core/batch"
	"evm_tx_toolkit/internal/core/domain"
	"evm_tx_toolkit/internal/core/domain/client"
	"evm_tx_toolkit/internal/utils"
)

func newPresignCmd(a *app) *cobra.Command {
	var (
		flags   txFlags
		count   int
		nonce   string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "presign",
		Short: "Sign transactions without broadcasting and append them to a batch file",
		Long: `Sign one or more transactions with consecutive nonces and append each one as
"0x<raw>," on its own line to the batch file. Broadcast them later with send-batch.

Examples:
  txtool presign --to 0x7099...79C8 --value 1 --count 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				return fmt.Errorf("--count must be greater than 0")
			}
			req, err := flags.request()
			if err != nil {
				return err
			}
			key, err := a.privateKey(flags.key)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			node, err := a.dialNode(ctx)
			if err != nil {
				return err
			}
			defer node.Close()

			localSigner, err := signer.NewLocalSigner(node, key)
			if err != nil {
				return err
			}

			var next uint64
			if nonce != "" {
				next, err = utils.ParseQuantity(nonce)
				if err != nil {
					return fmt.Errorf("invalid --nonce: %w", err)
				}
			} else {
				next, err = node.PendingNonceAt(ctx, localSigner.Address())
				if err != nil {
					return err
				}
			}

			path := a.batchPath(outPath)
			if err := writeBatch(ctx, a.fs, path, localSigner, req, next, count); err != nil {
				return err
			}

			a.logger.Info("Pre-signed transactions written", "count", count, "path", path, "firstNonce", next)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&count, "count", 1, "Number of transactions to sign")
	cmd.Flags().StringVar(&nonce, "nonce", "", "Nonce of the first transaction, decimal or 0x-prefixed hex (default: pending nonce)")
	cmd.Flags().StringVar(&outPath, "out", "", "Batch file (default: files.output_dir/files.batch_file)")

	return cmd
}

// writeBatch signs count requests with consecutive nonces starting at first and
// appends them to the batch file at path.
func writeBatch(ctx context.Context, fs afero.Fs, path string, txSigner client.Signer, req domain.TxRequest, first uint64, count int) error {
	if err := utils.EnsurePath(fs, filepath.Dir(path)); err != nil {
		return err
	}
	file, err := utils.NewFile(fs, path)
	if err != nil {
		return err
	}

	for i := 0; i < count; i++ {
		txNonce := first + uint64(i)
		req.Nonce = &txNonce
		if _, err := batch.WritePreSignedTx(ctx, file, txSigner, req); err != nil {
			_ = file.Close()
			return err
		}
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", domain.ErrFilesystem, path, err)
	}
	return nil
}

// batchPath resolves the batch file location.
func (a *app) batchPath(override string) string {
	if override != "" {
		return override
	}
	return filepath.Join(a.cfg.Files.OutputDir, a.cfg.Files.BatchFile)
}
