// Package batch writes and reads files of pre-signed raw transactions.
//
// A batch file holds one hex encoded signed transaction per line, each
// terminated by ",\n". The file as a whole is not a JSON array.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"evm_tx_toolkit/internal/core/domain"
	"evm_tx_toolkit/internal/core/domain/client"
)

// Separator terminates every entry of a batch file.
const Separator = ",\n"

// ErrEmptyEntry indicates a batch file entry without transaction bytes.
var ErrEmptyEntry = errors.New("empty batch entry")

// WritePreSignedTx asks signer to populate and sign req, then appends the
// raw signed transaction and Separator to w. Exactly one entry is written per call.
func WritePreSignedTx(ctx context.Context, w io.Writer, signer client.Signer, req domain.TxRequest) (string, error) {
	if signer == nil {
		return "", errors.New("WritePreSignedTx: signer is nil")
	}

	rawTx, err := signer.SignRequest(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to sign transaction request: %w", err)
	}

	entry := hexutil.Encode(rawTx)
	if _, err := io.WriteString(w, entry+Separator); err != nil {
		return "", fmt.Errorf("%w: failed to append signed transaction: %w", domain.ErrFilesystem, err)
	}

	return entry, nil
}

// ReadBatch splits batch file content back into raw signed transactions.
// A trailing separator and surrounding whitespace are ignored.
func ReadBatch(content string) ([][]byte, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, nil
	}
	trimmed = strings.TrimSuffix(trimmed, ",")

	entries := strings.Split(trimmed, strings.TrimSuffix(Separator, "\n"))
	rawTxs := make([][]byte, 0, len(entries))
	for i, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			return nil, fmt.Errorf("entry %d: %w", i, ErrEmptyEntry)
		}
		rawTx, err := hexutil.Decode(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: invalid hex: %w", i, err)
		}
		rawTxs = append(rawTxs, rawTx)
	}

	return rawTxs, nil
}
