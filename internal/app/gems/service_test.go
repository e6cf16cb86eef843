package gems

import (
	"context"
	"errors"
	"testing"
	"time"

	memclock "github.com/petorang/superpet-api/internal/adapters/memory/clock"
	memgemledger "github.com/petorang/superpet-api/internal/adapters/memory/gemledger"
	"github.com/petorang/superpet-api/internal/domain"
)

func newTestService() *Service {
	repo := memgemledger.NewRepo()
	clk := memclock.NewManualClock(time.Unix(1000, 0).UTC())
	return NewService(repo, clk)
}

func TestService_Balance_Empty(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	balance, err := svc.Balance(context.Background(), domain.MemberID(1))
	if err != nil {
		t.Fatalf("Balance err=%v", err)
	}
	if balance != 0 {
		t.Fatalf("balance=%d, want 0", balance)
	}
}

func TestService_Balance_SumsAllRecords(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()
	a := domain.MemberID(1)
	b := domain.MemberID(2)

	if _, err := svc.Issue(ctx, a, IssueInput{Amount: 100, Source: "reward"}); err != nil {
		t.Fatalf("Issue err=%v", err)
	}
	if _, err := svc.Spend(ctx, a, SpendInput{Amount: 30, Source: "gacha"}); err != nil {
		t.Fatalf("Spend err=%v", err)
	}
	if _, err := svc.Issue(ctx, a, IssueInput{Amount: 5, Source: "event"}); err != nil {
		t.Fatalf("Issue err=%v", err)
	}
	// Interleaved records for another member must not affect a's balance.
	if _, err := svc.Issue(ctx, b, IssueInput{Amount: 999, Source: "admin"}); err != nil {
		t.Fatalf("Issue b err=%v", err)
	}

	balance, err := svc.Balance(ctx, a)
	if err != nil {
		t.Fatalf("Balance err=%v", err)
	}
	if balance != 75 {
		t.Fatalf("balance=%d, want 75", balance)
	}

	balanceB, err := svc.Balance(ctx, b)
	if err != nil {
		t.Fatalf("Balance b err=%v", err)
	}
	if balanceB != 999 {
		t.Fatalf("balance b=%d, want 999", balanceB)
	}
}

func TestService_Issue_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	for name, in := range map[string]IssueInput{
		"zero amount":     {Amount: 0, Source: "reward"},
		"negative amount": {Amount: -5, Source: "reward"},
		"bad source":      {Amount: 10, Source: "hacked"},
		"use source":      {Amount: 10, Source: "gacha"},
	} {
		_, err := svc.Issue(ctx, domain.MemberID(1), in)
		ae := (*Error)(nil)
		if !errors.As(err, &ae) || ae.Status != 422 || ae.Code != "VALIDATION_ERROR" {
			t.Fatalf("%s: err=%v, want VALIDATION_ERROR 422", name, err)
		}
	}
}

func TestService_Issue_TargetMember(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()
	caller := domain.MemberID(1)
	target := domain.MemberID(7)

	res, err := svc.Issue(ctx, caller, IssueInput{Amount: 50, Source: "admin", TargetMemberID: &target})
	if err != nil {
		t.Fatalf("Issue err=%v", err)
	}
	if res.Issued != 50 || res.Balance != 50 {
		t.Fatalf("res=%+v", res)
	}

	callerBalance, err := svc.Balance(ctx, caller)
	if err != nil {
		t.Fatalf("Balance err=%v", err)
	}
	if callerBalance != 0 {
		t.Fatalf("caller balance=%d, want 0", callerBalance)
	}
}

func TestService_Spend_Insufficient(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()
	m := domain.MemberID(1)

	if _, err := svc.Issue(ctx, m, IssueInput{Amount: 20, Source: "reward"}); err != nil {
		t.Fatalf("Issue err=%v", err)
	}

	_, err := svc.Spend(ctx, m, SpendInput{Amount: 21, Source: "revive"})
	ae := (*Error)(nil)
	if !errors.As(err, &ae) || ae.Code != "INSUFFICIENT_GEMS" {
		t.Fatalf("err=%v, want INSUFFICIENT_GEMS", err)
	}
	if ae.Details["required"] != int64(21) || ae.Details["balance"] != int64(20) {
		t.Fatalf("details=%+v", ae.Details)
	}

	// The failed spend must not have appended a record.
	balance, err := svc.Balance(ctx, m)
	if err != nil {
		t.Fatalf("Balance err=%v", err)
	}
	if balance != 20 {
		t.Fatalf("balance=%d, want 20", balance)
	}
}

func TestService_Spend_ExactBalance(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()
	m := domain.MemberID(1)

	if _, err := svc.Issue(ctx, m, IssueInput{Amount: 20, Source: "purchase"}); err != nil {
		t.Fatalf("Issue err=%v", err)
	}
	res, err := svc.Spend(ctx, m, SpendInput{Amount: 20, Source: "shop_item"})
	if err != nil {
		t.Fatalf("Spend err=%v", err)
	}
	if res.Used != 20 || res.Balance != 0 {
		t.Fatalf("res=%+v", res)
	}
}
