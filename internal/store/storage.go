package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"revtrack/internal/ledger"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrConflict          = errors.New("resource already exists")
	QueryTimeoutDuration = time.Second * 5
)

type Storage struct {
	Users interface {
		UpsertGoogleUser(context.Context, *User) error
		GetByID(context.Context, int64) (*User, error)
		ListByIDs(context.Context, []int64) ([]User, error)
		List(ctx context.Context, limit, offset int) ([]User, int64, error)
		SetActive(ctx context.Context, userID int64, active bool) error
		Delete(context.Context, int64) error
		SaveRefreshToken(ctx context.Context, userID int64, token string) error
		GetRefreshToken(ctx context.Context, userID int64) (string, error)
		DeleteRefreshToken(ctx context.Context, userID int64) error
	}
	Businesses interface {
		Create(context.Context, *Business) error
		GetByID(context.Context, int64) (*Business, error)
		List(ctx context.Context, limit, offset int) ([]Business, int64, error)
		Update(context.Context, *Business) error
		SetActive(ctx context.Context, businessID int64, active bool) error
		Delete(context.Context, int64) error
	}
	Reviews interface {
		Create(context.Context, *ReviewEntry) error
		GetByID(context.Context, int64) (*ReviewEntry, error)
		Update(context.Context, *ReviewEntry) error
		Delete(context.Context, int64) error
		LedgerPage(ctx context.Context, userID int64, f ledger.Filter, limit, offset int) ([]ReviewEntry, error)
		WindowCounts(ctx context.Context, userID int64, f ledger.Filter) ([]ledger.EntryCounts, error)
		MarkPaid(ctx context.Context, reviewID int64) (*ReviewEntry, error)
		MarkPaidRange(ctx context.Context, start, end time.Time) (int64, []int64, error)
		GlobalStats(context.Context) (*GlobalStats, error)
	}
}

func NewStorage(db *pgxpool.Pool) Storage {
	return Storage{
		Users:      &UsersStore{db},
		Businesses: &BusinessStore{db},
		Reviews:    &ReviewStore{db},
	}
}
