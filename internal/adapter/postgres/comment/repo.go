// Package comment implements the Comment repository using PostgreSQL.
// Comments are append-only; there are no update or delete operations.
package comment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/consejoapp/consejo-backend/internal/adapter/postgres"
	"github.com/consejoapp/consejo-backend/internal/domain"
)

// Repo provides comment persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new comment repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createCommentSQL = `
INSERT INTO comments (user_id, decision_id, content)
VALUES ($1, $2, $3)
RETURNING id, user_id, decision_id, content, created_at`

const listByDecisionSQL = `
SELECT c.id, c.user_id, c.decision_id, c.content, c.created_at,
       u.username, u.karma, u.badge, u.avatar_url
FROM comments c
JOIN users u ON u.id = c.user_id
WHERE c.decision_id = $1
ORDER BY c.created_at
LIMIT $2 OFFSET $3`

const countByDecisionSQL = `SELECT count(*) FROM comments WHERE decision_id = $1`

// Create appends a comment to a decision's feed.
func (r *Repo) Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var created domain.Comment
	err := q.QueryRow(ctx, createCommentSQL, c.AuthorID, c.DecisionID, c.Content).
		Scan(&created.ID, &created.AuthorID, &created.DecisionID, &created.Content, &created.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "comment", uuid.Nil)
	}

	return &created, nil
}

// ListByDecision returns a page of comments ordered by creation, with the
// author's display data attached, plus the total comment count.
func (r *Repo) ListByDecision(ctx context.Context, decisionID uuid.UUID, limit, offset int) ([]*domain.Comment, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listByDecisionSQL, decisionID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var result []*domain.Comment
	for rows.Next() {
		var (
			c         domain.Comment
			author    domain.User
			badge     string
			avatarURL pgtype.Text
		)
		err := rows.Scan(&c.ID, &c.AuthorID, &c.DecisionID, &c.Content, &c.CreatedAt,
			&author.Username, &author.Karma, &badge, &avatarURL)
		if err != nil {
			return nil, 0, fmt.Errorf("list comments: %w", err)
		}
		author.ID = c.AuthorID
		author.Badge = domain.Badge(badge)
		if avatarURL.Valid {
			author.AvatarURL = &avatarURL.String
		}
		c.Author = &author
		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}
	if result == nil {
		result = []*domain.Comment{}
	}

	var total int
	if err := q.QueryRow(ctx, countByDecisionSQL, decisionID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	return result, total, nil
}
