package gems

import (
	"context"

	"github.com/petorang/superpet-api/internal/domain"
	clockport "github.com/petorang/superpet-api/internal/ports/out/clock"
	"github.com/petorang/superpet-api/internal/ports/out/gemledger"
)

// Service implements the gem ledger use cases. Balances are always derived
// from the ledger by aggregation; the service holds no balance state.
type Service struct {
	ledger gemledger.Repository
	clk    clockport.Clock
}

func NewService(ledger gemledger.Repository, clk clockport.Clock) *Service {
	return &Service{ledger: ledger, clk: clk}
}

// Balance returns the member's current balance. A member with no ledger
// records has balance 0.
func (s *Service) Balance(ctx context.Context, member domain.MemberID) (int64, error) {
	return s.ledger.SumBalance(ctx, member)
}

// Issue appends a credit record and returns the resulting balance.
//
// When in.TargetMemberID is set the credit goes to that member instead of the
// caller (system/admin grants). An admin permission check is still open here,
// matching the current trust model where issue is called by trusted surfaces.
func (s *Service) Issue(ctx context.Context, caller domain.MemberID, in IssueInput) (IssueResult, error) {
	if in.Amount <= 0 {
		return IssueResult{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "invalid amount",
			Details: map[string]any{"amount": "must be a positive integer"},
		}
	}
	if !IsValidIssueSource(in.Source) {
		return IssueResult{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "invalid issue source",
			Details: map[string]any{"source": "unknown issue source"},
		}
	}

	target := caller
	if in.TargetMemberID != nil {
		target = *in.TargetMemberID
	}

	rec := gemledger.Record{
		MemberID:  target,
		Type:      gemledger.TypeIssue,
		Amount:    in.Amount,
		Source:    in.Source,
		Memo:      in.Memo,
		CreatedAt: s.clk.Now(),
	}
	if err := s.ledger.Append(ctx, rec); err != nil {
		return IssueResult{}, err
	}

	balance, err := s.ledger.SumBalance(ctx, target)
	if err != nil {
		return IssueResult{}, err
	}
	return IssueResult{Issued: in.Amount, Balance: balance}, nil
}

// Spend appends a debit record after checking the caller's balance.
//
// The check and the append are two storage operations; concurrent spends for
// the same member may interleave between them. The ledger itself stays
// consistent either way — the balance is always the sum of committed records.
func (s *Service) Spend(ctx context.Context, caller domain.MemberID, in SpendInput) (SpendResult, error) {
	if in.Amount <= 0 {
		return SpendResult{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "invalid amount",
			Details: map[string]any{"amount": "must be a positive integer"},
		}
	}
	if !IsValidUseSource(in.Source) {
		return SpendResult{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "invalid use source",
			Details: map[string]any{"source": "unknown use source"},
		}
	}

	balance, err := s.ledger.SumBalance(ctx, caller)
	if err != nil {
		return SpendResult{}, err
	}
	if balance < in.Amount {
		return SpendResult{}, &Error{
			Status:  400,
			Code:    "INSUFFICIENT_GEMS",
			Message: "not enough gems",
			Details: map[string]any{"required": in.Amount, "balance": balance},
		}
	}

	rec := gemledger.Record{
		MemberID:  caller,
		Type:      gemledger.TypeUse,
		Amount:    -in.Amount,
		Source:    in.Source,
		Memo:      in.Memo,
		CreatedAt: s.clk.Now(),
	}
	if err := s.ledger.Append(ctx, rec); err != nil {
		return SpendResult{}, err
	}
	return SpendResult{Used: in.Amount, Balance: balance - in.Amount}, nil
}
