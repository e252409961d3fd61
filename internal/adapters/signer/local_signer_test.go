package signer_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"evm_tx_toolkit/internal/adapters/signer"
	"evm_tx_toolkit/internal/core/domain"
	"evm_tx_toolkit/internal/core/mocks/mock_client"
)

// Well-known development key (anvil/hardhat account #0).
const (
	devKey     = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	devAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func decodeTx(t *testing.T, raw []byte) *types.Transaction {
	t.Helper()
	tx := new(types.Transaction)
	require.NoError(t, tx.UnmarshalBinary(raw))
	return tx
}

func TestNewLocalSigner(t *testing.T) {
	node := mock_client.NewNodeClient(t)

	s, err := signer.NewLocalSigner(node, devKey)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(devAddress), s.Address())

	_, err = signer.NewLocalSigner(node, "0xzz")
	assert.Error(t, err)

	_, err = signer.NewLocalSigner(nil, devKey)
	assert.Error(t, err)
}

func TestLocalSigner_SignRequest_FillsFromNode(t *testing.T) {
	node := mock_client.NewNodeClient(t)
	from := common.HexToAddress(devAddress)
	node.On("PendingNonceAt", mock.Anything, from).Return(uint64(3), nil).Once()
	node.On("SuggestGasPrice", mock.Anything).Return(big.NewInt(2_000_000_000), nil).Once()
	node.On("ChainID", mock.Anything).Return(big.NewInt(1337), nil).Once()

	s, err := signer.NewLocalSigner(node, devKey)
	require.NoError(t, err)

	to, err := domain.NewAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	require.NoError(t, err)
	value, err := domain.NewWeiValue("1000")
	require.NoError(t, err)

	raw, err := s.SignRequest(context.Background(), domain.NewTxRequest(to, value, nil))
	require.NoError(t, err)

	tx := decodeTx(t, raw)
	assert.Equal(t, uint64(3), tx.Nonce())
	assert.Equal(t, big.NewInt(2_000_000_000), tx.GasPrice())
	assert.Equal(t, signer.DefaultTransferGasLimit, tx.Gas())
	assert.Equal(t, big.NewInt(1000), tx.Value())
	assert.Equal(t, to.Common(), *tx.To())
	assert.Equal(t, big.NewInt(1337), tx.ChainId())

	sender, err := types.Sender(types.LatestSignerForChainID(big.NewInt(1337)), tx)
	require.NoError(t, err)
	assert.Equal(t, from, sender)
}

func TestLocalSigner_SignRequest_EstimatesContractCalls(t *testing.T) {
	node := mock_client.NewNodeClient(t)
	from := common.HexToAddress(devAddress)
	data := []byte{0xa9, 0x05, 0x9c, 0xbb}
	node.On("EstimateGas", mock.Anything, mock.MatchedBy(func(msg ethereum.CallMsg) bool {
		return msg.From == from && msg.To == nil && len(msg.Data) == len(data)
	})).Return(uint64(90_000), nil).Once()

	s, err := signer.NewLocalSigner(node, devKey)
	require.NoError(t, err)

	nonce := uint64(11)
	req := domain.TxRequest{
		Data:     data,
		Nonce:    &nonce,
		GasPrice: big.NewInt(7),
		ChainID:  big.NewInt(5),
	}

	raw, err := s.SignRequest(context.Background(), req)
	require.NoError(t, err)

	tx := decodeTx(t, raw)
	assert.Nil(t, tx.To())
	assert.Equal(t, uint64(11), tx.Nonce())
	assert.Equal(t, uint64(90_000), tx.Gas())
	assert.Equal(t, data, tx.Data())
}

func TestLocalSigner_SignRequest_NodeFailure(t *testing.T) {
	node := mock_client.NewNodeClient(t)
	node.On("PendingNonceAt", mock.Anything, mock.Anything).Return(uint64(0), errors.New("connection refused")).Once()

	s, err := signer.NewLocalSigner(node, devKey)
	require.NoError(t, err)

	_, err = s.SignRequest(context.Background(), domain.TxRequest{})
	assert.Error(t, err)
}
