package entity

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

const PendingPrefix = "local-"

// IsPending reports whether id was issued locally rather than by the remote ledger.
func IsPending(id string) bool {
	suffix, ok := strings.CutPrefix(id, PendingPrefix)
	if !ok || suffix == "" {
		return false
	}
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// PendingIDs issues local-<unix millis> ids. Two calls within the same
// millisecond, or a clock that steps back, still get distinct increasing suffixes.
type PendingIDs struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewPendingIDs(now func() time.Time) *PendingIDs {
	if now == nil {
		now = time.Now
	}
	return &PendingIDs{now: now}
}

func (p *PendingIDs) Next() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	ms := p.now().UnixMilli()
	if ms <= p.last {
		ms = p.last + 1
	}
	p.last = ms

	return PendingPrefix + strconv.FormatInt(ms, 10)
}
