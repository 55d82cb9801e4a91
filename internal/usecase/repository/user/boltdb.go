package user

import (
	"encoding/json"

	"moneymgr/internal/entity"

	bolt "go.etcd.io/bbolt"
)

var (
	slotsBucketName = []byte("slots")
	userKey         = []byte("mm_user")
)

type BoltDBRepository struct {
	db *bolt.DB
}

func NewBoltDB(db *bolt.DB) (*BoltDBRepository, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(slotsBucketName)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &BoltDBRepository{db: db}, nil
}

func (r *BoltDBRepository) Save(u entity.User) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		raw, err := json.Marshal(u)
		if err != nil {
			return err
		}
		return tx.Bucket(slotsBucketName).Put(userKey, raw)
	})
}

func (r *BoltDBRepository) Get() (entity.User, error) {
	var u entity.User

	err := r.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(slotsBucketName).Get(userKey)
		if raw == nil {
			return entity.UserNotFoundErr
		}
		return json.Unmarshal(raw, &u)
	})
	if err != nil {
		return entity.User{}, err
	}

	return u, nil
}

func (r *BoltDBRepository) Delete() error {
	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(slotsBucketName).Delete(userKey)
	})
}
