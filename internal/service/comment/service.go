// Package comment implements posting and listing free-form advice comments
// on decisions.
package comment

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/consejoapp/consejo-backend/internal/domain"
)

type commentRepo interface {
	Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	ListByDecision(ctx context.Context, decisionID uuid.UUID, limit, offset int) ([]*domain.Comment, int, error)
}

type decisionRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Decision, error)
	MarkExpired(ctx context.Context, id uuid.UUID) error
}

type reputation interface {
	AwardCommentPosted(ctx context.Context, userID uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the comment business logic.
type Service struct {
	comments  commentRepo
	decisions decisionRepo
	karma     reputation
	tx        txManager
	log       *slog.Logger
}

// NewService creates a new Comment service.
func NewService(
	log *slog.Logger,
	comments commentRepo,
	decisions decisionRepo,
	karma reputation,
	tx txManager,
) *Service {
	return &Service{
		comments:  comments,
		decisions: decisions,
		karma:     karma,
		tx:        tx,
		log:       log.With("service", "comment"),
	}
}
