package lifecycle_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"testing"
	"time"

	"evm_tx_toolkit/internal/core/domain"
	"evm_tx_toolkit/internal/core/lifecycle"
	applogger "evm_tx_toolkit/internal/logger"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHandle struct {
	hash    common.Hash
	delay   time.Duration
	receipt *domain.Receipt
	err     error
}

func (f *fakeHandle) Hash() common.Hash { return f.hash }

func (f *fakeHandle) Wait(ctx context.Context) (*domain.Receipt, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.receipt, f.err
}

func submitReturning(handle domain.TxHandle) lifecycle.SubmitFunc {
	return func(_ context.Context, _ ...any) (domain.TxHandle, error) {
		return handle, nil
	}
}

func newReceipt(status uint64, height int64) *domain.Receipt {
	return &domain.Receipt{
		Status:      domain.NewStatus(status),
		BlockNumber: big.NewInt(height),
	}
}

// newTestHelper returns a helper writing status lines to out and logs to logs.
func newTestHelper(t *testing.T, out, logs io.Writer) *lifecycle.Helper {
	t.Helper()
	if logs == nil {
		logs = io.Discard
	}
	testAppLogger := applogger.NewSlogAdapter(slog.New(slog.NewTextHandler(logs, nil)))
	helper, err := lifecycle.NewHelper(testAppLogger, out)
	require.NoError(t, err)
	return helper
}

func TestNewHelper_NilLogger(t *testing.T) {
	_, err := lifecycle.NewHelper(nil, nil)
	assert.Error(t, err)
}

func TestHelper_SubmitAndAwait_Success(t *testing.T) {
	helper := newTestHelper(t, io.Discard, nil)
	want := newReceipt(1, 100)

	var gotArgs []any
	submit := func(_ context.Context, args ...any) (domain.TxHandle, error) {
		gotArgs = args
		return &fakeHandle{receipt: want}, nil
	}

	got, err := helper.SubmitAndAwait(context.Background(), submit, "0xabc", 42)
	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Equal(t, []any{"0xabc", 42}, gotArgs)
}

func TestHelper_SubmitAndAwait_WaitErrorWithReceipt(t *testing.T) {
	helper := newTestHelper(t, io.Discard, nil)
	partial := newReceipt(0, 50)
	handle := &fakeHandle{err: &domain.WaitError{Receipt: partial, Err: errors.New("execution reverted")}}

	got, err := helper.SubmitAndAwait(context.Background(), submitReturning(handle))
	assert.Same(t, partial, got)
	assert.ErrorIs(t, err, domain.ErrTxFailed)
	assert.Equal(t, domain.KindTxFailed, domain.KindOf(err))
	assert.Equal(t, domain.StatusSummary{Status: "0", Height: "50"}, lifecycle.ExtractStatus(got))
}

func TestHelper_SubmitAndAwait_WaitErrorWithoutReceipt(t *testing.T) {
	helper := newTestHelper(t, io.Discard, nil)
	handle := &fakeHandle{err: errors.New("connection reset")}

	got, err := helper.SubmitAndAwait(context.Background(), submitReturning(handle))
	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrNoReceipt)
}

func TestHelper_SubmitAndAwait_SubmitError(t *testing.T) {
	helper := newTestHelper(t, io.Discard, nil)
	submit := func(_ context.Context, _ ...any) (domain.TxHandle, error) {
		return nil, errors.New("insufficient funds")
	}

	got, err := helper.SubmitAndAwait(context.Background(), submit)
	assert.Nil(t, got)
	assert.Equal(t, domain.KindSubmit, domain.KindOf(err))

	_, err = helper.SubmitAndAwait(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrSubmit)
}

func TestHelper_Absorb(t *testing.T) {
	helper := newTestHelper(t, io.Discard, nil)
	partial := newReceipt(0, 7)

	reverted := helper.Absorb(submitReturning(&fakeHandle{err: &domain.WaitError{Receipt: partial, Err: domain.ErrTxFailed}}))
	got, err := reverted(context.Background())
	require.NoError(t, err)
	assert.Same(t, partial, got)

	lost := helper.Absorb(submitReturning(&fakeHandle{err: errors.New("dropped")}))
	got, err = lost(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)

	failedSubmit := helper.Absorb(func(_ context.Context, _ ...any) (domain.TxHandle, error) {
		return nil, errors.New("nonce too low")
	})
	_, err = failedSubmit(context.Background())
	assert.ErrorIs(t, err, domain.ErrSubmit)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cancelled := helper.Absorb(submitReturning(&fakeHandle{delay: time.Minute}))
	_, err = cancelled(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractStatus(t *testing.T) {
	tests := []struct {
		name    string
		receipt *domain.Receipt
		want    domain.StatusSummary
	}{
		{name: "Success", receipt: newReceipt(1, 100), want: domain.StatusSummary{Status: "1", Height: "100"}},
		{name: "Failure status zero is present", receipt: newReceipt(0, 101), want: domain.StatusSummary{Status: "0", Height: "101"}},
		{name: "Missing status", receipt: &domain.Receipt{BlockNumber: big.NewInt(5)}, want: domain.StatusSummary{}},
		{name: "Nil receipt", receipt: nil, want: domain.StatusSummary{}},
		{
			name:    "Status without height",
			receipt: &domain.Receipt{Status: domain.NewStatus(1)},
			want:    domain.StatusSummary{Status: "1", Height: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lifecycle.ExtractStatus(tt.receipt))
		})
	}
}

func TestHelper_AwaitAll_InputOrder(t *testing.T) {
	var out bytes.Buffer
	helper := newTestHelper(t, &out, nil)

	slow := helper.Absorb(submitReturning(&fakeHandle{delay: 50 * time.Millisecond, receipt: newReceipt(1, 100)}))
	fast := helper.Absorb(submitReturning(&fakeHandle{receipt: newReceipt(0, 101)}))

	summaries, err := helper.AwaitAll(context.Background(), []lifecycle.Future{slow, fast})
	require.NoError(t, err)
	assert.Equal(t, "Tx Status:1 Height:100\nTx Status:0 Height:101\n", out.String())
	assert.Equal(t, []domain.StatusSummary{{Status: "1", Height: "100"}, {Status: "0", Height: "101"}}, summaries)
}

func TestHelper_AwaitAll_AbsorbedFailures(t *testing.T) {
	var out bytes.Buffer
	helper := newTestHelper(t, &out, nil)

	reverted := helper.Absorb(submitReturning(&fakeHandle{err: &domain.WaitError{Receipt: newReceipt(0, 9), Err: domain.ErrTxFailed}}))
	lost := helper.Absorb(submitReturning(&fakeHandle{err: errors.New("timeout")}))

	_, err := helper.AwaitAll(context.Background(), []lifecycle.Future{reverted, lost})
	require.NoError(t, err)
	assert.Equal(t, "Tx Status:0 Height:9\nTx Status: Height:\n", out.String())
}

func TestHelper_AwaitAll_AggregateFailure(t *testing.T) {
	var out, logs bytes.Buffer
	helper := newTestHelper(t, &out, &logs)

	ok := func(_ context.Context) (*domain.Receipt, error) { return newReceipt(1, 1), nil }
	failing := func(_ context.Context) (*domain.Receipt, error) { return nil, errors.New("rpc unavailable") }

	summaries, err := helper.AwaitAll(context.Background(), []lifecycle.Future{ok, failing})
	assert.Error(t, err)
	assert.Nil(t, summaries)
	assert.Empty(t, out.String())
	assert.Contains(t, logs.String(), "rpc unavailable")
}

func TestHelper_AwaitAll_FailureDoesNotCancelSiblings(t *testing.T) {
	var out bytes.Buffer
	helper := newTestHelper(t, &out, nil)

	failing := func(_ context.Context) (*domain.Receipt, error) { return nil, errors.New("nonce too low") }

	siblingErr := make(chan error, 1)
	broadcasting := func(ctx context.Context) (*domain.Receipt, error) {
		select {
		case <-time.After(50 * time.Millisecond):
			siblingErr <- nil
			return newReceipt(1, 2), nil
		case <-ctx.Done():
			siblingErr <- ctx.Err()
			return nil, ctx.Err()
		}
	}

	_, err := helper.AwaitAll(context.Background(), []lifecycle.Future{failing, broadcasting})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonce too low")
	assert.NoError(t, <-siblingErr, "sibling future must run to completion")
	assert.Empty(t, out.String())
}

func TestHelper_AwaitAll_Empty(t *testing.T) {
	var out bytes.Buffer
	helper := newTestHelper(t, &out, nil)

	summaries, err := helper.AwaitAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, summaries)
	assert.Empty(t, out.String())

	_, err = helper.AwaitAll(context.Background(), []lifecycle.Future{nil})
	assert.Error(t, err)
}
