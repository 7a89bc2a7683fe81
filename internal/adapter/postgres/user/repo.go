// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/consejoapp/consejo-backend/internal/adapter/postgres"
	"github.com/consejoapp/consejo-backend/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const userColumns = `id, email, username, password_hash, karma, badge, avatar_url, created_at, updated_at`

const createUserSQL = `
INSERT INTO users (email, username, password_hash)
VALUES ($1, $2, $3)
RETURNING ` + userColumns

const getUserByIDSQL = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

const getUserByEmailSQL = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

const addKarmaSQL = `
UPDATE users SET karma = karma + $2, updated_at = now()
WHERE id = $1
RETURNING karma`

const setBadgeSQL = `
UPDATE users SET badge = $2, updated_at = now()
WHERE id = $1`

const countActivitySQL = `
SELECT
    (SELECT count(*) FROM decisions WHERE user_id = $1),
    (SELECT count(*) FROM votes WHERE user_id = $1)`

// Create inserts a new user and returns the persisted domain.User.
// Returns domain.ErrAlreadyExists if the email or username is taken.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, createUserSQL, u.Email, u.Username, u.PasswordHash)
	created, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}

	return created, nil
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(q.QueryRow(ctx, getUserByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}

	return u, nil
}

// GetByEmail returns a user by email address.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(q.QueryRow(ctx, getUserByEmailSQL, email))
	if err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}

	return u, nil
}

// AddKarma applies a karma delta atomically in SQL and returns the new total.
// The delta may be negative; karma has no floor.
func (r *Repo) AddKarma(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var karma int
	if err := q.QueryRow(ctx, addKarmaSQL, id, delta).Scan(&karma); err != nil {
		return 0, postgres.MapError(err, "user", id)
	}

	return karma, nil
}

// SetBadge stores the derived badge classification.
func (r *Repo) SetBadge(ctx context.Context, id uuid.UUID, badge domain.Badge) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, setBadgeSQL, id, badge.String())
	if err != nil {
		return postgres.MapError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// CountActivity returns how many decisions the user has authored and how
// many votes they have cast. Both counts come from one round trip so the
// badge recompute sees a consistent pair.
func (r *Repo) CountActivity(ctx context.Context, id uuid.UUID) (decisions, votes int, err error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if err := q.QueryRow(ctx, countActivitySQL, id).Scan(&decisions, &votes); err != nil {
		return 0, 0, postgres.MapError(err, "user", id)
	}

	return decisions, votes, nil
}

// scanUser scans a single user row.
func scanUser(row interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var (
		u         domain.User
		badge     string
		avatarURL pgtype.Text
	)

	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash,
		&u.Karma, &badge, &avatarURL, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}

	u.Badge = domain.Badge(badge)
	if avatarURL.Valid {
		u.AvatarURL = &avatarURL.String
	}

	return &u, nil
}
