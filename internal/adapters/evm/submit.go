package evm

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"evm_tx_toolkit/internal/core/domain"
	"evm_tx_toolkit/internal/core/domain/client"
	"evm_tx_toolkit/internal/core/lifecycle"
	"evm_tx_toolkit/internal/logger"
)

// Submitter builds submit functions that broadcast through a node client.
type Submitter struct {
	node         client.NodeClient
	pollInterval time.Duration
	logger       logger.AppLogger
}

// NewSubmitter creates a Submitter whose handles poll every pollInterval.
func NewSubmitter(node client.NodeClient, pollInterval time.Duration, appLogger logger.AppLogger) *Submitter {
	return &Submitter{
		node:         node,
		pollInterval: pollInterval,
		logger:       appLogger,
	}
}

// SendRaw returns a submit function that broadcasts its single argument, a
// signed transaction given as []byte or as a 0x-prefixed hex string.
func (s *Submitter) SendRaw() lifecycle.SubmitFunc {
	return func(ctx context.Context, args ...any) (domain.TxHandle, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("expected one raw transaction argument, got %d", len(args))
		}

		var rawTx []byte
		switch v := args[0].(type) {
		case []byte:
			rawTx = v
		case string:
			decoded, err := hexutil.Decode(v)
			if err != nil {
				return nil, fmt.Errorf("invalid raw transaction hex: %w", err)
			}
			rawTx = decoded
		default:
			return nil, fmt.Errorf("unsupported raw transaction argument type %T", args[0])
		}

		hash, err := s.node.SendRawTransaction(ctx, rawTx)
		if err != nil {
			return nil, err
		}
		s.logger.Info("Transaction broadcast", "txHash", hash.Hex())
		return NewPendingTx(s.node, hash, s.pollInterval, s.logger), nil
	}
}

// SignAndSend returns a submit function that signs its single domain.TxRequest
// argument with signer and broadcasts it.
func (s *Submitter) SignAndSend(signer client.Signer) lifecycle.SubmitFunc {
	sendRaw := s.SendRaw()
	return func(ctx context.Context, args ...any) (domain.TxHandle, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("expected one transaction request argument, got %d", len(args))
		}
		req, ok := args[0].(domain.TxRequest)
		if !ok {
			return nil, fmt.Errorf("unsupported transaction request argument type %T", args[0])
		}

		rawTx, err := signer.SignRequest(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("failed to sign transaction: %w", err)
		}
		return sendRaw(ctx, rawTx)
	}
}
