package decision

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/consejoapp/consejo-backend/internal/domain"
	"github.com/consejoapp/consejo-backend/pkg/ctxutil"
)

// Create posts a new decision with its options, awards the author karma,
// and recomputes their badge, all in one transaction.
func (s *Service) Create(ctx context.Context, input CreateDecisionInput) (*domain.Decision, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	d := &domain.Decision{
		AuthorID:    userID,
		Title:       input.Title,
		Context:     input.Context,
		Type:        input.Type,
		IsAnonymous: input.IsAnonymous,
		Status:      domain.StatusOpen,
		ExpiresAt:   input.ExpiresAt,
	}

	var created *domain.Decision
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.decisions.Create(txCtx, d, input.Options)
		if createErr != nil {
			return fmt.Errorf("create decision: %w", createErr)
		}

		if err := s.karma.AwardDecisionCreated(txCtx, userID); err != nil {
			return fmt.Errorf("award karma: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "decision created",
		slog.String("decision_id", created.ID.String()),
		slog.String("user_id", userID.String()),
		slog.String("type", created.Type.String()),
		slog.Int("options", len(created.Options)),
	)

	return created, nil
}
