package memberrepo

import (
	"context"
	"strings"
	"sync"

	"github.com/petorang/superpet-api/internal/domain"
	"github.com/petorang/superpet-api/internal/ports/out/memberrepo"
)

// Repo is an in-memory implementation of memberrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu sync.RWMutex

	nextID    domain.MemberID
	byID      map[domain.MemberID]memberrepo.Member
	idByEmail map[string]domain.MemberID
}

func NewRepo() *Repo {
	return &Repo{
		byID:      make(map[domain.MemberID]memberrepo.Member),
		idByEmail: make(map[string]domain.MemberID),
	}
}

func (r *Repo) Create(ctx context.Context, m memberrepo.Member) (domain.MemberID, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.idByEmail[emailKey(m.Email)]; ok {
		return 0, memberrepo.ErrEmailTaken
	}

	r.nextID++
	m.ID = r.nextID
	r.byID[m.ID] = cloneMember(m)
	r.idByEmail[emailKey(m.Email)] = m.ID
	return m.ID, nil
}

func (r *Repo) Update(ctx context.Context, m memberrepo.Member) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[m.ID]
	if !ok {
		return memberrepo.ErrNotFound
	}
	// Email binding is immutable through Update.
	m.Email = existing.Email
	r.byID[m.ID] = cloneMember(m)
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.MemberID) (memberrepo.Member, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byID[id]
	if !ok {
		return memberrepo.Member{}, memberrepo.ErrNotFound
	}
	return cloneMember(m), nil
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (memberrepo.Member, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.idByEmail[emailKey(email)]
	if !ok {
		return memberrepo.Member{}, memberrepo.ErrNotFound
	}
	m, ok := r.byID[id]
	if !ok {
		return memberrepo.Member{}, memberrepo.ErrNotFound
	}
	return cloneMember(m), nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func cloneMember(m memberrepo.Member) memberrepo.Member {
	out := m
	if m.Name != nil {
		v := *m.Name
		out.Name = &v
	}
	return out
}
