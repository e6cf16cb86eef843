package memberrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/petorang/superpet-api/internal/adapters/postgres"
	"github.com/petorang/superpet-api/internal/domain"
	"github.com/petorang/superpet-api/internal/ports/out/memberrepo"
)

// Repo is a Postgres implementation of memberrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, m memberrepo.Member) (domain.MemberID, error) {
	if r.pool == nil {
		return 0, errors.New("nil postgres pool")
	}
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO members (email, name, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`,
		normalizeEmail(m.Email),
		m.Name,
		m.PasswordHash,
		m.CreatedAt.UTC(),
		m.UpdatedAt.UTC(),
	).Scan(&id)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return 0, memberrepo.ErrEmailTaken
		}
		return 0, postgres.WrapUnavailable(err)
	}
	return domain.MemberID(id), nil
}

func (r *Repo) Update(ctx context.Context, m memberrepo.Member) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	// Email is immutable; only name and password hash can change.
	ct, err := r.pool.Exec(ctx, `
		UPDATE members
		SET name = $2,
		    password_hash = $3,
		    updated_at = $4
		WHERE id = $1
	`,
		int64(m.ID),
		m.Name,
		m.PasswordHash,
		m.UpdatedAt.UTC(),
	)
	if err != nil {
		return postgres.WrapUnavailable(err)
	}
	if ct.RowsAffected() == 0 {
		return memberrepo.ErrNotFound
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.MemberID) (memberrepo.Member, error) {
	if r.pool == nil {
		return memberrepo.Member{}, errors.New("nil postgres pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, name, password_hash, created_at, updated_at
		FROM members
		WHERE id = $1
	`, int64(id))
	return scanMember(row)
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (memberrepo.Member, error) {
	if r.pool == nil {
		return memberrepo.Member{}, errors.New("nil postgres pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, name, password_hash, created_at, updated_at
		FROM members
		WHERE email = $1
	`, normalizeEmail(email))
	return scanMember(row)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func scanMember(row pgx.Row) (memberrepo.Member, error) {
	var (
		id           int64
		email        string
		name         *string
		passwordHash string
		createdAt    time.Time
		updatedAt    time.Time
	)
	if err := row.Scan(&id, &email, &name, &passwordHash, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return memberrepo.Member{}, memberrepo.ErrNotFound
		}
		return memberrepo.Member{}, postgres.WrapUnavailable(err)
	}
	return memberrepo.Member{
		ID:           domain.MemberID(id),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    createdAt.UTC(),
		UpdatedAt:    updatedAt.UTC(),
	}, nil
}
