// Package vote implements the vote ledger: casting and retracting votes
// while keeping option tallies and voter karma consistent.
package vote

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/consejoapp/consejo-backend/internal/domain"
)

type voteRepo interface {
	Create(ctx context.Context, v *domain.Vote) (*domain.Vote, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Vote, error)
	HasVoted(ctx context.Context, voterID, decisionID uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type decisionRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Decision, error)
	GetOption(ctx context.Context, optionID uuid.UUID) (*domain.Option, error)
	MarkExpired(ctx context.Context, id uuid.UUID) error
	IncrementOptionVotes(ctx context.Context, optionID uuid.UUID) error
	DecrementOptionVotes(ctx context.Context, optionID uuid.UUID) error
}

type reputation interface {
	AwardVoteCast(ctx context.Context, userID uuid.UUID) error
	RevertVoteCast(ctx context.Context, userID uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the vote ledger business logic.
type Service struct {
	votes     voteRepo
	decisions decisionRepo
	karma     reputation
	tx        txManager
	log       *slog.Logger
}

// NewService creates a new Vote service.
func NewService(
	log *slog.Logger,
	votes voteRepo,
	decisions decisionRepo,
	karma reputation,
	tx txManager,
) *Service {
	return &Service{
		votes:     votes,
		decisions: decisions,
		karma:     karma,
		tx:        tx,
		log:       log.With("service", "vote"),
	}
}
