// Package gamesaverepo is a Redis-backed game save store. It exists for
// deployments that want save traffic off the primary database; the postgres
// adapter remains the default.
package gamesaverepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/petorang/superpet-api/internal/domain"
	"github.com/petorang/superpet-api/internal/ports/out/gamesaverepo"
	"github.com/petorang/superpet-api/internal/ports/out/storage"
)

const keyPrefix = "superpet"

const (
	fieldSessionID = "session_id"
	fieldData      = "data"
)

// saveKey returns the Redis key for a member's save hash.
func saveKey(member domain.MemberID) string {
	return fmt.Sprintf("%s:save:%d", keyPrefix, member)
}

// Config holds Redis connection settings.
type Config struct {
	// URL is the Redis connection URL (e.g. redis://localhost:6379).
	URL string

	PoolSize     int
	MinIdleConns int
}

// Repo is a Redis implementation of gamesaverepo.Repository. Each save is one
// hash; rotation and payload writes each touch a single field with one HSET,
// so concurrent writers never clobber the other field.
type Repo struct {
	client *redis.Client
}

// New connects to Redis and pings it once before returning.
func New(cfg Config) (*Repo, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Repo{client: client}, nil
}

// NewWithClient wraps an existing client (for testing).
func NewWithClient(client *redis.Client) *Repo {
	return &Repo{client: client}
}

func (r *Repo) Close() error {
	return r.client.Close()
}

var _ gamesaverepo.Repository = (*Repo)(nil)

func (r *Repo) RotateSession(ctx context.Context, member domain.MemberID, sessionID string) error {
	err := r.client.HSet(ctx, saveKey(member), fieldSessionID, sessionID).Err()
	return wrapUnavailable(err)
}

func (r *Repo) PutData(ctx context.Context, member domain.MemberID, data []byte) error {
	err := r.client.HSet(ctx, saveKey(member), fieldData, data).Err()
	return wrapUnavailable(err)
}

func (r *Repo) Get(ctx context.Context, member domain.MemberID) (gamesaverepo.Save, error) {
	fields, err := r.client.HGetAll(ctx, saveKey(member)).Result()
	if err != nil {
		return gamesaverepo.Save{}, wrapUnavailable(err)
	}
	// HGETALL returns an empty map, not redis.Nil, for a missing key.
	if len(fields) == 0 {
		return gamesaverepo.Save{}, gamesaverepo.ErrNotFound
	}
	save := gamesaverepo.Save{
		MemberID:  member,
		SessionID: fields[fieldSessionID],
	}
	if data := fields[fieldData]; data != "" {
		save.Data = []byte(data)
	}
	return save, nil
}

func wrapUnavailable(err error) error {
	if err == nil || errors.Is(err, redis.Nil) {
		return err
	}
	return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
}
