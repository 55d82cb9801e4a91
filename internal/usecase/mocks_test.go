package usecase

import (
	"context"
	"strconv"
	"sync"
	"time"

	"moneymgr/internal/entity"

	"github.com/shopspring/decimal"
)

// MockLedger is a remoteLedger whose behaviour is set per test. Unset
// functions succeed with zero values.
type MockLedger struct {
	ListFunc   func(ctx context.Context) ([]entity.Transaction, error)
	CreateFunc func(ctx context.Context, f entity.Fields) (entity.Transaction, error)
	UpdateFunc func(ctx context.Context, id string, f entity.Fields) error
	DeleteFunc func(ctx context.Context, id string) error

	mu    sync.Mutex
	calls []string
}

func (m *MockLedger) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *MockLedger) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockLedger) List(ctx context.Context) ([]entity.Transaction, error) {
	m.record("list")
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockLedger) Create(ctx context.Context, f entity.Fields) (entity.Transaction, error) {
	m.record("create")
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, f)
	}
	return entity.Transaction{Fields: f}, nil
}

func (m *MockLedger) Update(ctx context.Context, id string, f entity.Fields) error {
	m.record("update " + id)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, f)
	}
	return nil
}

func (m *MockLedger) Delete(ctx context.Context, id string) error {
	m.record("delete " + id)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// fakeLedger is a working in-memory ledger for scenario tests.
type fakeLedger struct {
	mu     sync.Mutex
	txns   []entity.Transaction
	nextID int
	down   bool
}

func (f *fakeLedger) List(context.Context) ([]entity.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return nil, entity.NetworkErr
	}
	return append([]entity.Transaction(nil), f.txns...), nil
}

func (f *fakeLedger) Create(_ context.Context, fields entity.Fields) (entity.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return entity.Transaction{}, entity.NetworkErr
	}
	f.nextID++
	for f.has(strconv.Itoa(f.nextID)) {
		f.nextID++
	}
	t := entity.Transaction{ID: strconv.Itoa(f.nextID), Fields: fields}
	f.txns = append(f.txns, t)
	return t, nil
}

func (f *fakeLedger) Update(_ context.Context, id string, fields entity.Fields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return entity.NetworkErr
	}
	for i := range f.txns {
		if f.txns[i].ID == id {
			f.txns[i].Fields = fields
			return nil
		}
	}
	return entity.NotFoundErr
}

func (f *fakeLedger) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return entity.NetworkErr
	}
	for i := range f.txns {
		if f.txns[i].ID == id {
			f.txns = append(f.txns[:i], f.txns[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeLedger) has(id string) bool {
	for _, t := range f.txns {
		if t.ID == id {
			return true
		}
	}
	return false
}

func (f *fakeLedger) setDown(down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.down = down
}

// memCache is an in-memory localCache with the same ordering rules as the
// bolt one.
type memCache struct {
	mu   sync.Mutex
	txns []entity.Transaction
}

func (c *memCache) ReadAll() []entity.Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]entity.Transaction{}, c.txns...)
}

func (c *memCache) WriteAll(txns []entity.Transaction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.txns = append([]entity.Transaction(nil), txns...)
}

func (c *memCache) Upsert(t entity.Transaction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.txns {
		if c.txns[i].ID == t.ID {
			c.txns[i] = t
			return
		}
	}
	c.txns = append([]entity.Transaction{t}, c.txns...)
}

func (c *memCache) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.txns {
		if c.txns[i].ID == id {
			c.txns = append(c.txns[:i], c.txns[i+1:]...)
			return
		}
	}
}

type seqIDs struct{ n int }

func (s *seqIDs) Next() string {
	s.n++
	return "local-" + strconv.Itoa(s.n)
}

func txn(id, description string) entity.Transaction {
	return entity.Transaction{ID: id, Fields: entity.Fields{
		Description: description,
		Amount:      decimal.RequireFromString("10.00"),
		Type:        entity.Expense,
		Date:        entity.NewDate(2024, time.January, 1),
	}}
}

func coffee() entity.Draft {
	return entity.Draft{Description: "Coffee", Amount: "3.50", Type: "EXPENSE", Date: "2024-01-01"}
}

func ids(txns []entity.Transaction) []string {
	out := make([]string, 0, len(txns))
	for _, t := range txns {
		out = append(out, t.ID)
	}
	return out
}
