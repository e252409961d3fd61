// Package client defines interfaces for external service clients, such as an EVM node client.
//
//go:generate mockery --name=NodeClient --output=../../mocks/mock_client --outpkg=mock_client
package client

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"evm_tx_toolkit/internal/core/domain"
)

// NodeClient defines the interface for interacting with an EVM node.
type NodeClient interface {
	// TransactionReceipt fetches the receipt of a mined transaction.
	// It returns ethereum.NotFound while the transaction is pending.
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*domain.Receipt, error)

	// SendRawTransaction broadcasts an RLP or typed-envelope encoded signed transaction.
	SendRawTransaction(ctx context.Context, rawTx []byte) (common.Hash, error)

	// PendingNonceAt returns the next nonce for account.
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)

	// SuggestGasPrice returns the node's gas price suggestion.
	SuggestGasPrice(ctx context.Context) (*big.Int, error)

	// EstimateGas estimates the gas needed to execute msg.
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)

	// ChainID returns the chain ID of the connected network.
	ChainID(ctx context.Context) (*big.Int, error)
}

// Signer populates and signs transaction requests.
type Signer interface {
	// Address returns the account the signer signs for.
	Address() common.Address

	// SignRequest fills missing fields of req from the node and returns the
	// binary encoded signed transaction.
	SignRequest(ctx context.Context, req domain.TxRequest) ([]byte, error)
}
