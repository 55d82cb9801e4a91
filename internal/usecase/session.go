package usecase

import (
	"context"
	"sync"
	"time"

	"moneymgr/internal/entity"

	"go.uber.org/zap"
)

// Session owns the current view of a front-end. Every operation holds the
// session lock for its whole duration, network calls included, so mutations
// and refreshes never interleave.
type Session struct {
	mu   sync.Mutex
	view entity.View

	reconcile *Reconcile
	create    *CreateTransaction
	update    *UpdateTransaction
	remove    *DeleteTransaction
	push      *PushCached

	logger *zap.Logger
}

func NewSession(ledger remoteLedger, cache localCache, ids pendingIDs, logger *zap.Logger) *Session {
	reconcile := NewReconcile(ledger, cache, logger)
	return &Session{
		reconcile: reconcile,
		create:    NewCreateTransaction(ledger, cache, ids, reconcile, logger),
		update:    NewUpdateTransaction(ledger, cache, reconcile, logger),
		remove:    NewDeleteTransaction(ledger, cache, reconcile, logger),
		push:      NewPushCached(ledger, cache, reconcile, logger),
		logger:    logger,
	}
}

// Refresh replaces the view with a reconcile result and returns a copy of it.
func (s *Session) Refresh(ctx context.Context) []entity.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.view.Set(s.reconcile.Execute(ctx))
	return s.view.Clone()
}

func (s *Session) Create(ctx context.Context, draft entity.Draft) (*entity.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.create.Execute(ctx, &s.view, draft)
}

func (s *Session) Update(ctx context.Context, id string, draft entity.Draft) (*entity.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.update.Execute(ctx, &s.view, id, draft)
}

func (s *Session) Delete(ctx context.Context, id string) *entity.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.remove.Execute(ctx, &s.view, id)
}

func (s *Session) Push(ctx context.Context) PushResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.push.Execute(ctx, &s.view)
}

func (s *Session) Snapshot() []entity.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.view.Clone()
}

func (s *Session) Find(id string) (entity.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.view.Find(id)
}

// Run refreshes the view every interval until ctx is done. A non-positive
// interval disables background refresh.
func (s *Session) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			txns := s.Refresh(ctx)
			s.logger.Debug("background refresh", zap.Int("transactions", len(txns)))
		}
	}
}
