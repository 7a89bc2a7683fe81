// Package vote implements the Vote repository using PostgreSQL.
// The votes table carries a UNIQUE (user_id, decision_id) constraint; a
// concurrent duplicate insert surfaces as domain.ErrDuplicateVote here
// rather than relying on the service-level existence check.
package vote

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/consejoapp/consejo-backend/internal/adapter/postgres"
	"github.com/consejoapp/consejo-backend/internal/domain"
)

// Repo provides vote persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new vote repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const voteColumns = `id, user_id, decision_id, option_id, comment, created_at`

const createVoteSQL = `
INSERT INTO votes (user_id, decision_id, option_id, comment)
VALUES ($1, $2, $3, $4)
RETURNING ` + voteColumns

const getVoteByIDSQL = `SELECT ` + voteColumns + ` FROM votes WHERE id = $1`

const getVoteByVoterSQL = `
SELECT ` + voteColumns + ` FROM votes WHERE user_id = $1 AND decision_id = $2`

const deleteVoteSQL = `DELETE FROM votes WHERE id = $1`

const countByDecisionSQL = `SELECT count(*) FROM votes WHERE decision_id = $1`

// Create inserts a vote. Returns domain.ErrDuplicateVote when the voter
// already has a vote on the decision (unique constraint violation).
func (r *Repo) Create(ctx context.Context, v *domain.Vote) (*domain.Vote, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, createVoteSQL, v.VoterID, v.DecisionID, v.OptionID, v.Comment)
	created, err := scanVote(row)
	if err != nil {
		mapped := postgres.MapError(err, "vote", uuid.Nil)
		if errors.Is(mapped, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("vote by %s on %s: %w", v.VoterID, v.DecisionID, domain.ErrDuplicateVote)
		}
		return nil, mapped
	}

	return created, nil
}

// GetByID returns a vote by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vote, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	v, err := scanVote(q.QueryRow(ctx, getVoteByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "vote", id)
	}

	return v, nil
}

// GetByVoterAndDecision returns the voter's vote on a decision, or
// domain.ErrNotFound when they have not voted.
func (r *Repo) GetByVoterAndDecision(ctx context.Context, voterID, decisionID uuid.UUID) (*domain.Vote, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	v, err := scanVote(q.QueryRow(ctx, getVoteByVoterSQL, voterID, decisionID))
	if err != nil {
		return nil, postgres.MapError(err, "vote", uuid.Nil)
	}

	return v, nil
}

// HasVoted reports whether the voter already has a vote on the decision.
func (r *Repo) HasVoted(ctx context.Context, voterID, decisionID uuid.UUID) (bool, error) {
	_, err := r.GetByVoterAndDecision(ctx, voterID, decisionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Delete removes a vote. Returns domain.ErrNotFound if no row was deleted.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteVoteSQL, id)
	if err != nil {
		return postgres.MapError(err, "vote", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("vote %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// CountByDecision counts the vote rows for a decision. Used by tests to
// assert the tallies never drift from their source rows.
func (r *Repo) CountByDecision(ctx context.Context, decisionID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := q.QueryRow(ctx, countByDecisionSQL, decisionID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count votes: %w", err)
	}

	return count, nil
}

func scanVote(row pgx.Row) (*domain.Vote, error) {
	var (
		v       domain.Vote
		comment pgtype.Text
	)

	err := row.Scan(&v.ID, &v.VoterID, &v.DecisionID, &v.OptionID, &comment, &v.CreatedAt)
	if err != nil {
		return nil, err
	}

	if comment.Valid {
		v.Comment = &comment.String
	}

	return &v, nil
}
