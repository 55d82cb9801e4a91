package usecase

import (
	"context"
	"time"

	"moneymgr/internal/entity"
)

type remoteLedger interface {
	List(ctx context.Context) ([]entity.Transaction, error)
	Create(ctx context.Context, f entity.Fields) (entity.Transaction, error)
	Update(ctx context.Context, id string, f entity.Fields) error
	Delete(ctx context.Context, id string) error
}

// localCache never reports errors; a failing store degrades to empty reads
// and dropped writes.
type localCache interface {
	ReadAll() []entity.Transaction
	WriteAll([]entity.Transaction)
	Upsert(entity.Transaction)
	Remove(id string)
}

type pendingIDs interface {
	Next() string
}

type idempotenceRepository interface {
	// MakeRecord return true if it was first time to call this method with same id
	MakeRecord(string) (bool, error)
	Prune(before time.Time) (int, error)
}

type userRepository interface {
	Get() (entity.User, error)
	Save(entity.User) error
	Delete() error
}
