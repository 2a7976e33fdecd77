package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Business struct {
	ID           int64     `json:"id"`
	BusinessName string    `json:"business_name"`
	Location     string    `json:"location"`
	ShortCode    string    `json:"short_code"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type BusinessStore struct {
	db *pgxpool.Pool
}

func (s *BusinessStore) Create(ctx context.Context, business *Business) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO businesses (business_name, location, short_code, is_active)
		VALUES ($1, $2, $3, TRUE)
		RETURNING id, is_active, created_at, updated_at
	`
	err := s.db.QueryRow(ctx, query,
		business.BusinessName,
		business.Location,
		business.ShortCode,
	).Scan(&business.ID, &business.IsActive, &business.CreatedAt, &business.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *BusinessStore) GetByID(ctx context.Context, businessID int64) (*Business, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var b Business
	err := s.db.QueryRow(ctx, `
		SELECT id, business_name, location, short_code, is_active, created_at, updated_at
		FROM businesses WHERE id = $1
	`, businessID).Scan(&b.ID, &b.BusinessName, &b.Location, &b.ShortCode, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (s *BusinessStore) List(ctx context.Context, limit, offset int) ([]Business, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT id, business_name, location, short_code, is_active, created_at, updated_at,
		       COUNT(*) OVER()
		FROM businesses
		ORDER BY business_name ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		businesses []Business
		total      int64
	)
	for rows.Next() {
		var b Business
		if err := rows.Scan(&b.ID, &b.BusinessName, &b.Location, &b.ShortCode, &b.IsActive, &b.CreatedAt, &b.UpdatedAt, &total); err != nil {
			return nil, 0, err
		}
		businesses = append(businesses, b)
	}
	return businesses, total, rows.Err()
}

func (s *BusinessStore) Update(ctx context.Context, business *Business) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		UPDATE businesses
		SET business_name = $1, location = $2, short_code = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`
	err := s.db.QueryRow(ctx, query,
		business.BusinessName,
		business.Location,
		business.ShortCode,
		business.ID,
	).Scan(&business.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *BusinessStore) SetActive(ctx context.Context, businessID int64, active bool) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := s.db.Exec(ctx, `UPDATE businesses SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, businessID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *BusinessStore) Delete(ctx context.Context, businessID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := s.db.Exec(ctx, `DELETE FROM businesses WHERE id = $1`, businessID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
