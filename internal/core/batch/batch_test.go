package batch_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"evm_tx_toolkit/internal/core/batch"
	"evm_tx_toolkit/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSigner struct {
	mock.Mock
}

func (m *mockSigner) Address() common.Address {
	return m.Called().Get(0).(common.Address)
}

func (m *mockSigner) SignRequest(ctx context.Context, req domain.TxRequest) ([]byte, error) {
	ret := m.Called(ctx, req)
	raw, _ := ret.Get(0).([]byte)
	return raw, ret.Error(1)
}

func TestWritePreSignedTx_OneLinePerCall(t *testing.T) {
	ctx := context.Background()
	signer := &mockSigner{}
	req := domain.TxRequest{}

	payloads := [][]byte{{0x02, 0xf8, 0x6b}, {0x0a, 0x2c, 0x0a}, {}}
	for _, p := range payloads {
		signer.On("SignRequest", ctx, req).Return(p, nil).Once()
	}

	var buf bytes.Buffer
	for range payloads {
		_, err := batch.WritePreSignedTx(ctx, &buf, signer, req)
		require.NoError(t, err)
	}

	assert.Equal(t, "0x02f86b,\n0x0a2c0a,\n0x,\n", buf.String())
	assert.Equal(t, len(payloads), strings.Count(buf.String(), batch.Separator))
	signer.AssertExpectations(t)
}

func TestWritePreSignedTx_SignError(t *testing.T) {
	ctx := context.Background()
	signer := &mockSigner{}
	signer.On("SignRequest", ctx, mock.Anything).Return(nil, errors.New("unknown account"))

	var buf bytes.Buffer
	_, err := batch.WritePreSignedTx(ctx, &buf, signer, domain.TxRequest{})
	assert.Error(t, err)
	assert.Empty(t, buf.String())

	_, err = batch.WritePreSignedTx(ctx, &buf, nil, domain.TxRequest{})
	assert.Error(t, err)
}

func TestReadBatch_RoundTrip(t *testing.T) {
	ctx := context.Background()
	signer := &mockSigner{}
	want := [][]byte{{0x01, 0x02}, {0xff}}
	for _, raw := range want {
		signer.On("SignRequest", ctx, mock.Anything).Return(raw, nil).Once()
	}

	var buf bytes.Buffer
	for range want {
		_, err := batch.WritePreSignedTx(ctx, &buf, signer, domain.TxRequest{})
		require.NoError(t, err)
	}

	got, err := batch.ReadBatch(buf.String())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadBatch_Invalid(t *testing.T) {
	got, err := batch.ReadBatch("  \n")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = batch.ReadBatch("0x01,\n,\n")
	assert.ErrorIs(t, err, batch.ErrEmptyEntry)

	_, err = batch.ReadBatch("zz,\n")
	assert.Error(t, err)
}
