package cache

import (
	"encoding/json"
	"fmt"
	"sync"

	"moneymgr/internal/entity"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

var (
	slotsBucketName = []byte("slots")
	transactionsKey = []byte("mm_txns")
)

// BoltDBRepository keeps locally-pending transactions as one JSON array in a
// single named slot. Storage failures are logged and swallowed: callers keep
// working from their in-memory view.
type BoltDBRepository struct {
	db     *bolt.DB
	logger *zap.Logger

	mu sync.Mutex
}

func NewBoltDB(db *bolt.DB, logger *zap.Logger) (*BoltDBRepository, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(slotsBucketName)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &BoltDBRepository{db: db, logger: logger}, nil
}

// ReadAll returns the cached transactions in stored order. A missing or
// unreadable slot reads as empty.
func (r *BoltDBRepository) ReadAll() []entity.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.read()
}

func (r *BoltDBRepository) WriteAll(txns []entity.Transaction) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.write(txns)
}

// Upsert replaces the entry with the same id in place, or puts t first.
func (r *BoltDBRepository) Upsert(t entity.Transaction) {
	r.mu.Lock()
	defer r.mu.Unlock()

	txns := r.read()
	for i := range txns {
		if txns[i].ID == t.ID {
			txns[i] = t
			r.write(txns)
			return
		}
	}

	r.write(append([]entity.Transaction{t}, txns...))
}

func (r *BoltDBRepository) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	txns := r.read()
	for i := range txns {
		if txns[i].ID == id {
			r.write(append(txns[:i], txns[i+1:]...))
			return
		}
	}
}

func (r *BoltDBRepository) read() []entity.Transaction {
	var txns []entity.Transaction

	err := r.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(slotsBucketName)
		if bucket == nil {
			return nil
		}

		raw := bucket.Get(transactionsKey)
		if raw == nil {
			return nil
		}

		return json.Unmarshal(raw, &txns)
	})
	if err != nil {
		r.degraded("read", err)
		return []entity.Transaction{}
	}

	if txns == nil {
		return []entity.Transaction{}
	}
	return txns
}

func (r *BoltDBRepository) write(txns []entity.Transaction) {
	if txns == nil {
		txns = []entity.Transaction{}
	}

	raw, err := json.Marshal(txns)
	if err != nil {
		r.degraded("encode", err)
		return
	}

	err = r.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(slotsBucketName)
		if err != nil {
			return err
		}
		return bucket.Put(transactionsKey, raw)
	})
	if err != nil {
		r.degraded("write", err)
	}
}

func (r *BoltDBRepository) degraded(op string, err error) {
	r.logger.Warn("local cache "+op+" failed",
		zap.Error(fmt.Errorf("%w: %v", entity.CacheDegradedErr, err)),
	)
}
