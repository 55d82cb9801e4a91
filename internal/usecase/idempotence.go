package usecase

import "time"

type Idempotence struct {
	repo idempotenceRepository
}

func NewIdempotence(repo idempotenceRepository) *Idempotence {
	return &Idempotence{
		repo: repo,
	}
}

func (u *Idempotence) Execute(id string) (bool, error) {
	return u.repo.MakeRecord(id)
}

// Forget drops records older than maxAge.
func (u *Idempotence) Forget(maxAge time.Duration) (int, error) {
	return u.repo.Prune(time.Now().Add(-maxAge))
}
