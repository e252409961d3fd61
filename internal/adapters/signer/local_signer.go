// Package signer implements client.Signer with a local ECDSA private key.
package signer

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"evm_tx_toolkit/internal/core/domain"
	"evm_tx_toolkit/internal/core/domain/client"
)

// DefaultTransferGasLimit is used for plain value transfers when gas is not estimated.
const DefaultTransferGasLimit uint64 = 21000

// LocalSigner signs transaction requests with an in-memory private key.
type LocalSigner struct {
	node    client.NodeClient
	key     *ecdsa.PrivateKey
	address common.Address
}

// Compile-time check to ensure LocalSigner implements client.Signer
var _ client.Signer = (*LocalSigner)(nil)

// NewLocalSigner creates a signer from a hex encoded private key, with or without 0x prefix.
func NewLocalSigner(node client.NodeClient, hexKey string) (*LocalSigner, error) {
	if node == nil {
		return nil, errors.New("NewLocalSigner: node client is nil")
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("load private key: %w", err)
	}

	return &LocalSigner{
		node:    node,
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// Address returns the account derived from the private key.
func (s *LocalSigner) Address() common.Address {
	return s.address
}

// SignRequest fills nonce, gas price, gas limit and chain ID from the node where
// req leaves them unset, signs a legacy transaction and returns its binary encoding.
func (s *LocalSigner) SignRequest(ctx context.Context, req domain.TxRequest) ([]byte, error) {
	nonce, err := s.nonce(ctx, req)
	if err != nil {
		return nil, err
	}

	gasPrice := req.GasPrice
	if gasPrice == nil {
		gasPrice, err = s.node.SuggestGasPrice(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get suggested gas price: %w", err)
		}
	}

	var to *common.Address
	if !req.IsContractCreation() {
		addr := req.To.Common()
		to = &addr
	}

	gasLimit := req.GasLimit
	if gasLimit == 0 {
		gasLimit, err = s.estimateGas(ctx, to, req)
		if err != nil {
			return nil, err
		}
	}

	chainID := req.ChainID
	if chainID == nil {
		chainID, err = s.node.ChainID(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get chain ID: %w", err)
		}
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gasLimit,
		To:       to,
		Value:    req.Value.BigInt(),
		Data:     req.Data,
	})

	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), s.key)
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}

	raw, err := signedTx.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("encode signed transaction: %w", err)
	}
	return raw, nil
}

func (s *LocalSigner) nonce(ctx context.Context, req domain.TxRequest) (uint64, error) {
	if req.Nonce != nil {
		return *req.Nonce, nil
	}
	nonce, err := s.node.PendingNonceAt(ctx, s.address)
	if err != nil {
		return 0, fmt.Errorf("failed to get pending nonce: %w", err)
	}
	return nonce, nil
}

func (s *LocalSigner) estimateGas(ctx context.Context, to *common.Address, req domain.TxRequest) (uint64, error) {
	if to != nil && len(req.Data) == 0 {
		return DefaultTransferGasLimit, nil
	}

	msg := ethereum.CallMsg{
		From:  s.address,
		To:    to,
		Value: req.Value.BigInt(),
		Data:  req.Data,
	}
	gas, err := s.node.EstimateGas(ctx, msg)
	if err != nil {
		return 0, fmt.Errorf("failed to estimate gas: %w", err)
	}
	return gas, nil
}
