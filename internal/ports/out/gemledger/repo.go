package gemledger

import (
	"context"
	"time"

	"github.com/petorang/superpet-api/internal/domain"
)

// EntryType distinguishes grants from spends; the amount sign is the source of
// truth (credits positive, debits negative).
type EntryType string

const (
	TypeIssue EntryType = "issue"
	TypeUse   EntryType = "use"
)

// Record is one immutable ledger row.
type Record struct {
	MemberID domain.MemberID
	Type     EntryType
	// Amount is a signed, denomination-agnostic integer.
	Amount    int64
	Source    string
	Memo      *string
	CreatedAt time.Time
}

// Repository is the append-only gem ledger.
//
// Records are never updated or deleted through this port; corrections are new
// offsetting records. A member's balance is defined as the sum of all their
// records — there is no stored running total.
type Repository interface {
	// Append stores one record.
	Append(ctx context.Context, rec Record) error

	// SumBalance computes the member's balance as a single aggregate at the
	// storage boundary. Implementations must not fetch rows and sum them
	// application-side: that window can race with concurrent appends.
	// No records means balance 0, not an error.
	SumBalance(ctx context.Context, member domain.MemberID) (int64, error)
}
