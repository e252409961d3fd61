// Package evm implements client.NodeClient on top of go-ethereum's ethclient.
package evm

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"evm_tx_toolkit/internal/core/domain"
	"evm_tx_toolkit/internal/core/domain/client"
)

// backend is the subset of *ethclient.Client used by Client.
type backend interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

// Client implements client.NodeClient using go-ethereum.
type Client struct {
	backend backend
	closeFn func()
}

// Compile-time check to ensure Client implements client.NodeClient
var _ client.NodeClient = (*Client)(nil)

// Dial connects to the EVM JSON-RPC endpoint at rpcURL.
func Dial(ctx context.Context, rpcURL string, timeout time.Duration) (*Client, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	ethClient, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to EVM RPC: %w", domain.ErrTransport, err)
	}
	return &Client{backend: ethClient, closeFn: ethClient.Close}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() {
	if c.closeFn != nil {
		c.closeFn()
	}
}

// TransactionReceipt fetches and maps the receipt of txHash.
// ethereum.NotFound is passed through unwrapped so pollers can detect pending transactions.
func (c *Client) TransactionReceipt(ctx context.Context, txHash common.Hash) (*domain.Receipt, error) {
	receipt, err := c.backend.TransactionReceipt(ctx, txHash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, ethereum.NotFound
		}
		return nil, fmt.Errorf("%w: failed to get receipt %s: %w", domain.ErrTransport, txHash.Hex(), err)
	}
	return mapReceiptToDomain(receipt), nil
}

// SendRawTransaction decodes a signed transaction and broadcasts it.
func (c *Client) SendRawTransaction(ctx context.Context, rawTx []byte) (common.Hash, error) {
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(rawTx); err != nil {
		return common.Hash{}, fmt.Errorf("failed to decode transaction: %w", err)
	}

	if err := c.backend.SendTransaction(ctx, tx); err != nil {
		return common.Hash{}, fmt.Errorf("%w: failed to send transaction: %w", domain.ErrTransport, err)
	}

	return tx.Hash(), nil
}

// PendingNonceAt retrieves the pending nonce for account.
func (c *Client) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	nonce, err := c.backend.PendingNonceAt(ctx, account)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to get nonce: %w", domain.ErrTransport, err)
	}
	return nonce, nil
}

// SuggestGasPrice returns a suggested gas price.
func (c *Client) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	gasPrice, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to suggest gas price: %w", domain.ErrTransport, err)
	}
	return gasPrice, nil
}

// EstimateGas estimates gas for msg.
func (c *Client) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	gas, err := c.backend.EstimateGas(ctx, msg)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to estimate gas: %w", domain.ErrTransport, err)
	}
	return gas, nil
}

// ChainID returns the chain ID.
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	chainID, err := c.backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get chain ID: %w", domain.ErrTransport, err)
	}
	return chainID, nil
}
