package usecase

import (
	"context"

	"moneymgr/internal/entity"

	"go.uber.org/zap"
)

// Reconcile rebuilds the displayed list from the remote ledger and the local
// cache. Remote transactions come first in ledger order, followed by cached
// ones the ledger does not know, in cache order. It never fails: when the
// ledger is unreachable the cached transactions are returned as they are.
type Reconcile struct {
	ledger remoteLedger
	cache  localCache
	logger *zap.Logger
}

func NewReconcile(ledger remoteLedger, cache localCache, logger *zap.Logger) *Reconcile {
	return &Reconcile{
		ledger: ledger,
		cache:  cache,
		logger: logger,
	}
}

func (r *Reconcile) Execute(ctx context.Context) []entity.Transaction {
	txns, _ := r.run(ctx)
	return txns
}

// run also reports whether the ledger answered.
func (r *Reconcile) run(ctx context.Context) ([]entity.Transaction, bool) {
	remote, err := r.ledger.List(ctx)
	local := r.cache.ReadAll()

	if err != nil {
		r.logger.Warn("ledger list failed, serving local cache",
			zap.Error(err),
			zap.Int("cached", len(local)),
		)
		return local, false
	}

	return merge(remote, local), true
}

// refresh replaces view with a fresh reconcile result. A degraded result is
// ignored so the optimistic state survives a ledger that answered the
// mutation but not the listing.
func (r *Reconcile) refresh(ctx context.Context, view *entity.View) {
	txns, fresh := r.run(ctx)
	if !fresh {
		r.logger.Warn("follow-up reconcile degraded, keeping optimistic view")
		return
	}
	view.Set(txns)
}

// merge lists remote first, then cache-only entries in cache order. Each id
// appears once; the first remote copy wins.
func merge(remote, local []entity.Transaction) []entity.Transaction {
	seen := make(map[string]struct{}, len(remote)+len(local))
	merged := make([]entity.Transaction, 0, len(remote)+len(local))

	for _, txns := range [][]entity.Transaction{remote, local} {
		for _, t := range txns {
			if _, ok := seen[t.ID]; ok {
				continue
			}
			seen[t.ID] = struct{}{}
			merged = append(merged, t)
		}
	}

	return merged
}
