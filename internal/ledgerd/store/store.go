// Package store persists the ledger service's transactions. Ids are assigned
// by the store and are decimal integers rendered as strings.
package store

import (
	"context"

	"moneymgr/internal/entity"
)

type Store interface {
	List(ctx context.Context) ([]entity.Transaction, error)
	ListByDate(ctx context.Context, date entity.Date) ([]entity.Transaction, error)
	Get(ctx context.Context, id string) (entity.Transaction, error)
	Create(ctx context.Context, f entity.Fields) (entity.Transaction, error)
	// Update fails with entity.NotFoundErr when id does not exist.
	Update(ctx context.Context, id string, f entity.Fields) error
	// Delete of a missing id is not an error.
	Delete(ctx context.Context, id string) error
}
