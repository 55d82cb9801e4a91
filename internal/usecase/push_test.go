package usecase

import (
	"context"
	"testing"

	"moneymgr/internal/entity"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func newPush(t *testing.T, ledger remoteLedger, cache localCache) *PushCached {
	logger := zaptest.NewLogger(t)
	return NewPushCached(ledger, cache, NewReconcile(ledger, cache, logger), logger)
}

func TestPush_PromotesPendingOldestFirst(t *testing.T) {
	ledger := &fakeLedger{}
	cache := &memCache{txns: []entity.Transaction{txn("local-2", "newer"), txn("local-1", "older")}}
	var view entity.View

	result := newPush(t, ledger, cache).Execute(context.Background(), &view)

	assert.Equal(t, []string{"local-1", "local-2"}, result.Pushed)
	assert.Empty(t, result.Kept)
	assert.Empty(t, cache.ReadAll())
	assert.Equal(t, []string{"1", "2"}, ids(view))
	assert.Equal(t, "older", view[0].Description)
}

func TestPush_UpdatesOverrides(t *testing.T) {
	ledger := &fakeLedger{txns: []entity.Transaction{txn("1", "stale")}}
	cache := &memCache{txns: []entity.Transaction{txn("1", "edited offline")}}
	var view entity.View

	result := newPush(t, ledger, cache).Execute(context.Background(), &view)

	assert.Equal(t, []string{"1"}, result.Pushed)
	assert.Equal(t, "edited offline", view[0].Description)
	assert.Empty(t, cache.ReadAll())
}

func TestPush_StopsAtNetworkFailure(t *testing.T) {
	ledger := &fakeLedger{down: true}
	cache := &memCache{txns: []entity.Transaction{txn("local-2", "b"), txn("local-1", "a")}}
	view := entity.View{txn("local-2", "b"), txn("local-1", "a")}

	result := newPush(t, ledger, cache).Execute(context.Background(), &view)

	assert.Empty(t, result.Pushed)
	assert.Equal(t, []string{"local-1", "local-2"}, result.Kept)
	assert.Len(t, cache.ReadAll(), 2)
	assert.Equal(t, []string{"local-2", "local-1"}, ids(view))
}

func TestPush_KeepsRejectedAndContinues(t *testing.T) {
	ledger := &MockLedger{
		UpdateFunc: func(context.Context, string, entity.Fields) error { return entity.ServerErr },
	}
	cache := &memCache{txns: []entity.Transaction{txn("local-1", "new"), txn("5", "rejected")}}
	var view entity.View

	result := newPush(t, ledger, cache).Execute(context.Background(), &view)

	assert.Equal(t, []string{"local-1"}, result.Pushed)
	assert.Equal(t, []string{"5"}, result.Kept)
	assert.Empty(t, result.Dropped)
	assert.Equal(t, []string{"5"}, ids(cache.ReadAll()))
}

func TestPush_DropsOverrideOfDeletedTransaction(t *testing.T) {
	ledger := &fakeLedger{txns: []entity.Transaction{txn("1", "still there")}}
	cache := &memCache{txns: []entity.Transaction{txn("9", "deleted elsewhere")}}
	view := entity.View{txn("1", "still there"), txn("9", "deleted elsewhere")}

	result := newPush(t, ledger, cache).Execute(context.Background(), &view)

	assert.Empty(t, result.Pushed)
	assert.Empty(t, result.Kept)
	assert.Equal(t, []string{"9"}, result.Dropped)
	assert.Empty(t, cache.ReadAll())
	assert.Equal(t, []string{"1"}, ids(view))

	again := newPush(t, ledger, cache).Execute(context.Background(), &view)
	assert.Empty(t, again.Dropped)
	assert.Empty(t, again.Kept)
}
