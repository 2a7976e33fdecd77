package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	Username     string     `json:"username"`
	GoogleID     string     `json:"-"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"is_active"`
	TotalReviews int64      `json:"total_reviews"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// IsNew reports whether the last upsert created this user.
	IsNew bool `json:"-"`
}

type UsersStore struct {
	db *pgxpool.Pool
}

// UpsertGoogleUser creates the user on first OAuth exchange and refreshes
// username and last_login on every subsequent one. Role is never touched
// here; promoting to admin happens out of band.
func (s *UsersStore) UpsertGoogleUser(ctx context.Context, user *User) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO users (email, username, google_id, role, is_active, last_login_at)
		VALUES ($1, $2, $3, 'user', TRUE, NOW())
		ON CONFLICT (google_id) DO UPDATE
		SET username = EXCLUDED.username, last_login_at = NOW(), updated_at = NOW()
		RETURNING id, role, is_active, created_at, last_login_at, updated_at, (xmax = 0)
	`
	err := s.db.QueryRow(ctx, query, user.Email, user.Username, user.GoogleID).Scan(
		&user.ID,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
		&user.LastLoginAt,
		&user.UpdatedAt,
		&user.IsNew,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Same email under a different google_id.
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *UsersStore) GetByID(ctx context.Context, userID int64) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT u.id, u.email, u.username, u.google_id, u.role, u.is_active,
		       COALESCE(r.cnt, 0), u.created_at, u.last_login_at, u.updated_at
		FROM users u
		LEFT JOIN (
			SELECT user_id, SUM(review_count) AS cnt FROM reviews GROUP BY user_id
		) r ON r.user_id = u.id
		WHERE u.id = $1
	`
	var user User
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.GoogleID,
		&user.Role,
		&user.IsActive,
		&user.TotalReviews,
		&user.CreatedAt,
		&user.LastLoginAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UsersStore) ListByIDs(ctx context.Context, ids []int64) ([]User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT id, email, username, role, is_active, created_at, updated_at
		FROM users WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// List returns one page of users with their denormalized review totals,
// newest first, plus the overall user count for pagination.
func (s *UsersStore) List(ctx context.Context, limit, offset int) ([]User, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT u.id, u.email, u.username, u.role, u.is_active,
		       COALESCE(r.cnt, 0), u.created_at, u.last_login_at, u.updated_at,
		       COUNT(*) OVER()
		FROM users u
		LEFT JOIN (
			SELECT user_id, SUM(review_count) AS cnt FROM reviews GROUP BY user_id
		) r ON r.user_id = u.id
		ORDER BY u.created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		users []User
		total int64
	)
	for rows.Next() {
		var u User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.Username, &u.Role, &u.IsActive,
			&u.TotalReviews, &u.CreatedAt, &u.LastLoginAt, &u.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

func (s *UsersStore) SetActive(ctx context.Context, userID int64, active bool) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := s.db.Exec(ctx, `UPDATE users SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the user and, through FK cascade, every review they own.
func (s *UsersStore) Delete(ctx context.Context, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *UsersStore) SaveRefreshToken(ctx context.Context, userID int64, token string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := s.db.Exec(ctx, `UPDATE users SET refresh_token = $1, updated_at = NOW() WHERE id = $2`, token, userID)
	return err
}

func (s *UsersStore) GetRefreshToken(ctx context.Context, userID int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var token *string
	err := s.db.QueryRow(ctx, `SELECT refresh_token FROM users WHERE id = $1`, userID).Scan(&token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	if token == nil {
		return "", ErrNotFound
	}
	return *token, nil
}

func (s *UsersStore) DeleteRefreshToken(ctx context.Context, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := s.db.Exec(ctx, `UPDATE users SET refresh_token = NULL, updated_at = NOW() WHERE id = $1`, userID)
	return err
}
