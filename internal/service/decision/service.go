// Package decision implements the decision lifecycle: creation, listing,
// status transitions, and deletion.
package decision

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/consejoapp/consejo-backend/internal/domain"
)

type decisionRepo interface {
	Create(ctx context.Context, d *domain.Decision, optionTexts []string) (*domain.Decision, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Decision, error)
	List(ctx context.Context, f domain.DecisionFilter) ([]*domain.Decision, int, error)
	ListByAuthor(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Decision, int, error)
	ListVotedBy(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Decision, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DecisionStatus, finalOptionID *uuid.UUID) error
	MarkExpired(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type voteRepo interface {
	GetByVoterAndDecision(ctx context.Context, voterID, decisionID uuid.UUID) (*domain.Vote, error)
}

type reputation interface {
	AwardDecisionCreated(ctx context.Context, userID uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the decision lifecycle business logic.
type Service struct {
	decisions decisionRepo
	votes     voteRepo
	karma     reputation
	tx        txManager
	log       *slog.Logger
}

// NewService creates a new Decision service.
func NewService(
	log *slog.Logger,
	decisions decisionRepo,
	votes voteRepo,
	karma reputation,
	tx txManager,
) *Service {
	return &Service{
		decisions: decisions,
		votes:     votes,
		karma:     karma,
		tx:        tx,
		log:       log.With("service", "decision"),
	}
}
