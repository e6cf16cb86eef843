package gemledger

import (
	"context"
	"sync"

	"github.com/petorang/superpet-api/internal/domain"
	"github.com/petorang/superpet-api/internal/ports/out/gemledger"
)

// Repo is an in-memory implementation of gemledger.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu      sync.RWMutex
	records map[domain.MemberID][]gemledger.Record
}

func NewRepo() *Repo {
	return &Repo{records: make(map[domain.MemberID][]gemledger.Record)}
}

func (r *Repo) Append(ctx context.Context, rec gemledger.Record) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[rec.MemberID] = append(r.records[rec.MemberID], cloneRecord(rec))
	return nil
}

// SumBalance sums under the lock, so the result reflects a single consistent
// snapshot of the member's records.
func (r *Repo) SumBalance(ctx context.Context, member domain.MemberID) (int64, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	var sum int64
	for _, rec := range r.records[member] {
		sum += rec.Amount
	}
	return sum, nil
}

func cloneRecord(rec gemledger.Record) gemledger.Record {
	out := rec
	if rec.Memo != nil {
		v := *rec.Memo
		out.Memo = &v
	}
	return out
}
