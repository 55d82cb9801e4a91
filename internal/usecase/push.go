package usecase

import (
	"context"
	"errors"

	"moneymgr/internal/entity"

	"go.uber.org/zap"
)

type PushResult struct {
	Pushed []string
	Kept   []string
	// Dropped holds overrides of transactions the ledger no longer has.
	Dropped []string
}

// PushCached sends cached transactions to the ledger, oldest first. Pending
// ones are created, cached overrides of remote ones are updated. Each success
// leaves the cache; the first network failure stops the run. An override of a
// transaction the ledger no longer has is dropped.
type PushCached struct {
	ledger    remoteLedger
	cache     localCache
	reconcile *Reconcile
	logger    *zap.Logger
}

func NewPushCached(ledger remoteLedger, cache localCache, reconcile *Reconcile, logger *zap.Logger) *PushCached {
	return &PushCached{
		ledger:    ledger,
		cache:     cache,
		reconcile: reconcile,
		logger:    logger,
	}
}

func (p *PushCached) Execute(ctx context.Context, view *entity.View) PushResult {
	var result PushResult

	cached := p.cache.ReadAll()
	for i := len(cached) - 1; i >= 0; i-- {
		t := cached[i]

		var err error
		if t.Pending() {
			_, err = p.ledger.Create(ctx, t.Fields)
		} else {
			err = p.ledger.Update(ctx, t.ID, t.Fields)
		}

		if err != nil {
			p.logger.Warn("push failed", zap.String("id", t.ID), zap.Error(err))
			if errors.Is(err, entity.NetworkErr) {
				for j := i; j >= 0; j-- {
					result.Kept = append(result.Kept, cached[j].ID)
				}
				break
			}
			if errors.Is(err, entity.NotFoundErr) && !t.Pending() {
				p.cache.Remove(t.ID)
				result.Dropped = append(result.Dropped, t.ID)
				continue
			}
			result.Kept = append(result.Kept, t.ID)
			continue
		}

		p.cache.Remove(t.ID)
		result.Pushed = append(result.Pushed, t.ID)
	}

	if len(result.Pushed) > 0 || len(result.Dropped) > 0 {
		p.reconcile.refresh(ctx, view)
	}
	return result
}
