package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"revtrack/internal/ledger"
)

type ReviewEntry struct {
	ID              int64      `json:"id"`
	BusinessID      int64      `json:"business_id"`
	UserID          int64      `json:"user_id"`
	ReviewDate      time.Time  `json:"review_date"`
	ReviewCount     int64      `json:"review_count"`
	ReviewLink      []string   `json:"review_link"`
	IsPaid          bool       `json:"is_paid"`
	PaidReviewCount int64      `json:"paid_review_count"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Joined business metadata on ledger pages.
	Business *Business `json:"business,omitempty"`
}

// Counts returns the reconciliation slice of the entry.
func (r *ReviewEntry) Counts() ledger.EntryCounts {
	return ledger.EntryCounts{
		IsPaid:          r.IsPaid,
		ReviewCount:     r.ReviewCount,
		PaidReviewCount: r.PaidReviewCount,
	}
}

// GlobalStats is the admin-wide summary behind /reviews/stats/all.
type GlobalStats struct {
	TotalUsers      int64 `json:"total_users"`
	TotalBusinesses int64 `json:"total_businesses"`
	TotalEntries    int64 `json:"total_entries"`
	TotalReviews    int64 `json:"total_review_count"`
	TotalPaid       int64 `json:"total_paid_review_count"`
	TotalPending    int64 `json:"total_pending_review_count"`
}

type ReviewStore struct {
	db *pgxpool.Pool
}

func (s *ReviewStore) Create(ctx context.Context, entry *ReviewEntry) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO reviews (business_id, user_id, review_date, review_count, review_link)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_paid, paid_review_count, created_at, updated_at
	`
	err := s.db.QueryRow(ctx, query,
		entry.BusinessID,
		entry.UserID,
		entry.ReviewDate,
		entry.ReviewCount,
		entry.ReviewLink,
	).Scan(&entry.ID, &entry.IsPaid, &entry.PaidReviewCount, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			// Unknown business or user.
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *ReviewStore) GetByID(ctx context.Context, reviewID int64) (*ReviewEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var entry ReviewEntry
	err := s.db.QueryRow(ctx, `
		SELECT id, business_id, user_id, review_date, review_count, review_link,
		       is_paid, paid_review_count, paid_at, created_at, updated_at
		FROM reviews WHERE id = $1
	`, reviewID).Scan(
		&entry.ID,
		&entry.BusinessID,
		&entry.UserID,
		&entry.ReviewDate,
		&entry.ReviewCount,
		&entry.ReviewLink,
		&entry.IsPaid,
		&entry.PaidReviewCount,
		&entry.PaidAt,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// Update rewrites the user-editable attributes: date, count and links.
// Settlement fields only move through MarkPaid / MarkPaidRange.
func (s *ReviewStore) Update(ctx context.Context, entry *ReviewEntry) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		UPDATE reviews
		SET business_id = $1, review_date = $2, review_count = $3, review_link = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`
	err := s.db.QueryRow(ctx, query,
		entry.BusinessID,
		entry.ReviewDate,
		entry.ReviewCount,
		entry.ReviewLink,
		entry.ID,
	).Scan(&entry.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *ReviewStore) Delete(ctx context.Context, reviewID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := s.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, reviewID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// LedgerPage returns one page of a user's entries inside the filter window,
// newest review date first, with business metadata joined in.
func (s *ReviewStore) LedgerPage(ctx context.Context, userID int64, f ledger.Filter, limit, offset int) ([]ReviewEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT r.id, r.business_id, r.user_id, r.review_date, r.review_count, r.review_link,
		       r.is_paid, r.paid_review_count, r.paid_at, r.created_at, r.updated_at,
		       b.id, b.business_name, b.location, b.short_code, b.is_active, b.created_at, b.updated_at
		FROM reviews r
		JOIN businesses b ON b.id = r.business_id
		WHERE r.user_id = $1
		  AND ($2::date IS NULL OR r.review_date BETWEEN $2 AND $3)
		ORDER BY r.review_date DESC, r.id DESC
		LIMIT $4 OFFSET $5
	`
	start, end := windowArgs(f)
	rows, err := s.db.Query(ctx, query, userID, start, end, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []ReviewEntry
	for rows.Next() {
		var (
			entry ReviewEntry
			b     Business
		)
		if err := rows.Scan(
			&entry.ID, &entry.BusinessID, &entry.UserID, &entry.ReviewDate, &entry.ReviewCount, &entry.ReviewLink,
			&entry.IsPaid, &entry.PaidReviewCount, &entry.PaidAt, &entry.CreatedAt, &entry.UpdatedAt,
			&b.ID, &b.BusinessName, &b.Location, &b.ShortCode, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entry.Business = &b
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// WindowCounts fetches the reconciliation counts of every entry in the
// window, not just the page, so totals are derived over the whole scope.
func (s *ReviewStore) WindowCounts(ctx context.Context, userID int64, f ledger.Filter) ([]ledger.EntryCounts, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT is_paid, review_count, paid_review_count
		FROM reviews
		WHERE user_id = $1
		  AND ($2::date IS NULL OR review_date BETWEEN $2 AND $3)
	`
	start, end := windowArgs(f)
	rows, err := s.db.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []ledger.EntryCounts
	for rows.Next() {
		var c ledger.EntryCounts
		if err := rows.Scan(&c.IsPaid, &c.ReviewCount, &c.PaidReviewCount); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// MarkPaid settles one entry: the settled count snaps to the live count no
// matter which settlement action was pending. Settling an already-settled
// entry is a no-op by construction.
func (s *ReviewStore) MarkPaid(ctx context.Context, reviewID int64) (*ReviewEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		UPDATE reviews
		SET is_paid = TRUE, paid_review_count = review_count, paid_at = NOW(), updated_at = NOW()
		WHERE id = $1
		RETURNING id, business_id, user_id, review_date, review_count, review_link,
		          is_paid, paid_review_count, paid_at, created_at, updated_at
	`
	var entry ReviewEntry
	err := s.db.QueryRow(ctx, query, reviewID).Scan(
		&entry.ID,
		&entry.BusinessID,
		&entry.UserID,
		&entry.ReviewDate,
		&entry.ReviewCount,
		&entry.ReviewLink,
		&entry.IsPaid,
		&entry.PaidReviewCount,
		&entry.PaidAt,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// MarkPaidRange settles every unpaid entry whose review_date falls in the
// inclusive range. Returns how many entries were settled and the distinct
// owners affected.
func (s *ReviewStore) MarkPaidRange(ctx context.Context, start, end time.Time) (int64, []int64, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		UPDATE reviews
		SET is_paid = TRUE, paid_review_count = review_count, paid_at = NOW(), updated_at = NOW()
		WHERE is_paid = FALSE AND review_date BETWEEN $1 AND $2
		RETURNING user_id
	`
	rows, err := s.db.Query(ctx, query, start, end)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	var (
		settled int64
		seen    = map[int64]bool{}
		owners  []int64
	)
	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			return 0, nil, err
		}
		settled++
		if !seen[userID] {
			seen[userID] = true
			owners = append(owners, userID)
		}
	}
	return settled, owners, rows.Err()
}

func (s *ReviewStore) GlobalStats(ctx context.Context) (*GlobalStats, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var stats GlobalStats
	err := s.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM businesses),
			(SELECT COUNT(*) FROM reviews),
			(SELECT COALESCE(SUM(review_count), 0) FROM reviews),
			(SELECT COALESCE(SUM(review_count), 0) FROM reviews WHERE is_paid),
			(SELECT COALESCE(SUM(review_count), 0) FROM reviews WHERE NOT is_paid)
	`).Scan(
		&stats.TotalUsers,
		&stats.TotalBusinesses,
		&stats.TotalEntries,
		&stats.TotalReviews,
		&stats.TotalPaid,
		&stats.TotalPending,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// windowArgs maps a filter onto the ($start, $end) query arguments; an
// unbounded filter passes NULLs so the date predicate collapses away.
func windowArgs(f ledger.Filter) (*time.Time, *time.Time) {
	if !f.Bounded {
		return nil, nil
	}
	start, end := f.Start, f.End
	return &start, &end
}
