package gems

import "github.com/petorang/superpet-api/internal/domain"

type IssueInput struct {
	Amount int64
	Source string
	Memo   *string
	// TargetMemberID credits another member when set; defaults to the caller.
	TargetMemberID *domain.MemberID
}

type IssueResult struct {
	Issued  int64
	Balance int64
}

type SpendInput struct {
	Amount int64
	Source string
	Memo   *string
}

type SpendResult struct {
	Used    int64
	Balance int64
}
