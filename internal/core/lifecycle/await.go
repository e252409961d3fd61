package lifecycle

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"evm_tx_toolkit/internal/core/domain"
)

// AwaitAll resolves every future concurrently and writes one status line per
// receipt, in input order, once all of them are available.
//
// If any future fails the whole batch fails: the error is logged and no status
// line is written. A failure does not cancel the other futures; each runs with ctx.
func (h *Helper) AwaitAll(ctx context.Context, futures []Future) ([]domain.StatusSummary, error) {
	for i, future := range futures {
		if future == nil {
			return nil, fmt.Errorf("future %d is nil", i)
		}
	}

	receipts := make([]*domain.Receipt, len(futures))

	var g errgroup.Group
	for i, future := range futures {
		g.Go(func() error {
			receipt, err := future(ctx)
			if err != nil {
				return fmt.Errorf("future %d: %w", i, err)
			}
			receipts[i] = receipt
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		h.logger.Error("Awaiting transactions failed", "count", len(futures), "error", err)
		return nil, err
	}

	summaries := make([]domain.StatusSummary, 0, len(receipts))
	for _, receipt := range receipts {
		summary := ExtractStatus(receipt)
		if _, err := fmt.Fprintln(h.out, summary.String()); err != nil {
			return summaries, fmt.Errorf("failed to write status line: %w", err)
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}
