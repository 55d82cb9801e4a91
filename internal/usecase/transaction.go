package usecase

import (
	"context"
	"fmt"

	"moneymgr/internal/entity"

	"go.uber.org/zap"
)

// CreateTransaction shows a new transaction under a pending id before the
// ledger is asked to store it. If the ledger fails the transaction is kept in
// the local cache instead.
type CreateTransaction struct {
	ledger    remoteLedger
	cache     localCache
	ids       pendingIDs
	reconcile *Reconcile
	logger    *zap.Logger
}

func NewCreateTransaction(ledger remoteLedger, cache localCache, ids pendingIDs, reconcile *Reconcile, logger *zap.Logger) *CreateTransaction {
	return &CreateTransaction{
		ledger:    ledger,
		cache:     cache,
		ids:       ids,
		reconcile: reconcile,
		logger:    logger,
	}
}

func (c *CreateTransaction) Execute(ctx context.Context, view *entity.View, draft entity.Draft) (*entity.Notice, error) {
	fields, err := draft.Validate()
	if err != nil {
		return nil, err
	}

	t := entity.Transaction{ID: c.ids.Next(), Fields: fields}
	view.Prepend(t)

	if _, err := c.ledger.Create(ctx, fields); err != nil {
		c.cache.Upsert(t)
		return offline(c.logger, entity.CreateSavedOffline, t.ID, err), nil
	}

	c.reconcile.refresh(ctx, view)
	return nil, nil
}

// UpdateTransaction edits a transaction in place. Pending transactions are
// only ever edited in the local cache.
type UpdateTransaction struct {
	ledger    remoteLedger
	cache     localCache
	reconcile *Reconcile
	logger    *zap.Logger
}

func NewUpdateTransaction(ledger remoteLedger, cache localCache, reconcile *Reconcile, logger *zap.Logger) *UpdateTransaction {
	return &UpdateTransaction{
		ledger:    ledger,
		cache:     cache,
		reconcile: reconcile,
		logger:    logger,
	}
}

func (u *UpdateTransaction) Execute(ctx context.Context, view *entity.View, id string, draft entity.Draft) (*entity.Notice, error) {
	fields, err := draft.Validate()
	if err != nil {
		return nil, err
	}

	updated := entity.Transaction{ID: id, Fields: fields}
	if !view.Replace(updated) {
		return nil, fmt.Errorf("%w: %s", entity.NotInViewErr, id)
	}

	if entity.IsPending(id) {
		u.cache.Upsert(updated)
		return nil, nil
	}

	if err := u.ledger.Update(ctx, id, fields); err != nil {
		// The cached copy overrides the stale remote one until pushed.
		u.cache.Upsert(updated)
		return offline(u.logger, entity.UpdateSavedOffline, id, err), nil
	}

	u.cache.Remove(id)
	u.reconcile.refresh(ctx, view)
	return nil, nil
}

// DeleteTransaction removes a transaction from the view and the cache no
// matter what the ledger answers.
type DeleteTransaction struct {
	ledger    remoteLedger
	cache     localCache
	reconcile *Reconcile
	logger    *zap.Logger
}

func NewDeleteTransaction(ledger remoteLedger, cache localCache, reconcile *Reconcile, logger *zap.Logger) *DeleteTransaction {
	return &DeleteTransaction{
		ledger:    ledger,
		cache:     cache,
		reconcile: reconcile,
		logger:    logger,
	}
}

func (d *DeleteTransaction) Execute(ctx context.Context, view *entity.View, id string) *entity.Notice {
	view.Remove(id)

	if entity.IsPending(id) {
		d.cache.Remove(id)
		return nil
	}

	if err := d.ledger.Delete(ctx, id); err != nil {
		d.cache.Remove(id)
		return offline(d.logger, entity.DeleteRemovedLocally, id, err)
	}

	d.cache.Remove(id)
	d.reconcile.refresh(ctx, view)
	return nil
}

func offline(logger *zap.Logger, kind entity.NoticeKind, id string, cause error) *entity.Notice {
	logger.Info("mutation degraded to local only",
		zap.String("kind", string(kind)),
		zap.String("id", id),
		zap.Error(cause),
	)
	return &entity.Notice{Kind: kind, ID: id, Cause: cause}
}
