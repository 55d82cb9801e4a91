package idempotence

import (
	"encoding/binary"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	idempotenceBucketName = []byte("idempotence")
)

// BoltDBRepository remembers which front-end events were already applied,
// stamped with the time they were first seen.
type BoltDBRepository struct {
	db  *bolt.DB
	now func() time.Time
}

func NewBoltDB(db *bolt.DB) (*BoltDBRepository, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(idempotenceBucketName)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &BoltDBRepository{db: db, now: time.Now}, nil
}

func (r *BoltDBRepository) MakeRecord(id string) (ok bool, err error) {
	err = r.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(idempotenceBucketName)
		if bucket.Get([]byte(id)) != nil {
			ok = false
			return nil
		}

		ok = true
		return bucket.Put([]byte(id), stamp(r.now()))
	})
	return
}

// Prune forgets records first seen before the cutoff and returns how many went.
func (r *BoltDBRepository) Prune(before time.Time) (removed int, err error) {
	err = r.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(idempotenceBucketName)

		var stale [][]byte
		err := bucket.ForEach(func(k, v []byte) error {
			if len(v) != 8 || int64(binary.BigEndian.Uint64(v)) < before.UnixNano() {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, k := range stale {
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})
	return
}

func stamp(t time.Time) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(t.UnixNano()))
	return b
}
