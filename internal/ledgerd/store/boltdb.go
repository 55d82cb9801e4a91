package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strconv"

	"moneymgr/internal/entity"

	bolt "go.etcd.io/bbolt"
)

var (
	transactionsBucketName = []byte("transactions")
	byIDBucketName         = []byte("byID")
	byDateBucketName       = []byte("byDate")
)

// BoltDBStore keeps every transaction under byID and a copy of its key under
// byDate/<YYYY-MM-DD> for date listings.
type BoltDBStore struct {
	db *bolt.DB
}

func NewBoltDB(db *bolt.DB) (*BoltDBStore, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		tBucket, err := tx.CreateBucketIfNotExists(transactionsBucketName)
		if err != nil {
			return err
		}

		_, err = tBucket.CreateBucketIfNotExists(byIDBucketName)
		if err != nil {
			return err
		}

		_, err = tBucket.CreateBucketIfNotExists(byDateBucketName)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &BoltDBStore{db: db}, nil
}

func (s *BoltDBStore) Create(_ context.Context, f entity.Fields) (entity.Transaction, error) {
	var t entity.Transaction

	err := s.db.Update(func(tx *bolt.Tx) error {
		tBucket := tx.Bucket(transactionsBucketName)
		byIDBucket := tBucket.Bucket(byIDBucketName)

		seq, err := byIDBucket.NextSequence()
		if err != nil {
			return err
		}

		t = entity.Transaction{ID: strconv.FormatUint(seq, 10), Fields: f}
		return put(tBucket, seq, t)
	})
	if err != nil {
		return entity.Transaction{}, err
	}

	return t, nil
}

func (s *BoltDBStore) Update(_ context.Context, id string, f entity.Fields) error {
	seq, ok := parseID(id)
	if !ok {
		return fmt.Errorf("%w: %s", entity.NotFoundErr, id)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		tBucket := tx.Bucket(transactionsBucketName)

		old, found, err := get(tBucket, seq)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: %s", entity.NotFoundErr, id)
		}

		if err := unindex(tBucket, seq, old.Date); err != nil {
			return err
		}
		return put(tBucket, seq, entity.Transaction{ID: id, Fields: f})
	})
}

func (s *BoltDBStore) Delete(_ context.Context, id string) error {
	seq, ok := parseID(id)
	if !ok {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		tBucket := tx.Bucket(transactionsBucketName)

		old, found, err := get(tBucket, seq)
		if err != nil || !found {
			return err
		}

		if err := unindex(tBucket, seq, old.Date); err != nil {
			return err
		}
		return tBucket.Bucket(byIDBucketName).Delete(itob(seq))
	})
}

func (s *BoltDBStore) Get(_ context.Context, id string) (entity.Transaction, error) {
	seq, ok := parseID(id)
	if !ok {
		return entity.Transaction{}, fmt.Errorf("%w: %s", entity.NotFoundErr, id)
	}

	var (
		t     entity.Transaction
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		t, found, err = get(tx.Bucket(transactionsBucketName), seq)
		return err
	})
	if err != nil {
		return entity.Transaction{}, err
	}
	if !found {
		return entity.Transaction{}, fmt.Errorf("%w: %s", entity.NotFoundErr, id)
	}

	return t, nil
}

func (s *BoltDBStore) List(_ context.Context) ([]entity.Transaction, error) {
	transactions := []entity.Transaction{}

	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(transactionsBucketName).Bucket(byIDBucketName).ForEach(func(_, v []byte) error {
			var t entity.Transaction
			if err := json.Unmarshal(v, &t); err != nil {
				return err
			}
			transactions = append(transactions, t)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

func (s *BoltDBStore) ListByDate(_ context.Context, date entity.Date) ([]entity.Transaction, error) {
	transactions := []entity.Transaction{}

	err := s.db.View(func(tx *bolt.Tx) error {
		tBucket := tx.Bucket(transactionsBucketName)
		bucket := tBucket.Bucket(byDateBucketName).Bucket([]byte(date.String()))
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, _ []byte) error {
			t, found, err := get(tBucket, binary.BigEndian.Uint64(k))
			if err != nil {
				return err
			}
			if found {
				transactions = append(transactions, t)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

func get(tBucket *bolt.Bucket, seq uint64) (entity.Transaction, bool, error) {
	raw := tBucket.Bucket(byIDBucketName).Get(itob(seq))
	if raw == nil {
		return entity.Transaction{}, false, nil
	}

	var t entity.Transaction
	if err := json.Unmarshal(raw, &t); err != nil {
		return entity.Transaction{}, false, err
	}
	return t, true, nil
}

func put(tBucket *bolt.Bucket, seq uint64, t entity.Transaction) error {
	raw, err := json.Marshal(t)
	if err != nil {
		return err
	}

	key := itob(seq)
	if err := tBucket.Bucket(byIDBucketName).Put(key, raw); err != nil {
		return err
	}

	bucket, err := tBucket.Bucket(byDateBucketName).CreateBucketIfNotExists([]byte(t.Date.String()))
	if err != nil {
		return err
	}
	return bucket.Put(key, []byte{})
}

func unindex(tBucket *bolt.Bucket, seq uint64, date entity.Date) error {
	bucket := tBucket.Bucket(byDateBucketName).Bucket([]byte(date.String()))
	if bucket == nil {
		return nil
	}
	return bucket.Delete(itob(seq))
}

func parseID(id string) (uint64, bool) {
	seq, err := strconv.ParseUint(id, 10, 64)
	return seq, err == nil && seq > 0
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
