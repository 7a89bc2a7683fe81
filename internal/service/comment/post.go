package comment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/consejoapp/consejo-backend/internal/domain"
	"github.com/consejoapp/consejo-backend/pkg/ctxutil"
)

// Post adds a comment to a decision and awards the commenter karma. Comments
// stay open on decided and expired decisions; only existence is required.
func (s *Service) Post(ctx context.Context, input PostCommentInput) (*domain.Comment, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	d, err := s.decisions.GetByID(ctx, input.DecisionID)
	if err != nil {
		return nil, fmt.Errorf("get decision: %w", err)
	}

	// Observing the decision counts as a read, so overdue ones expire here too.
	if d.Status == domain.StatusOpen && d.IsExpired(time.Now()) {
		if err := s.decisions.MarkExpired(ctx, d.ID); err != nil {
			return nil, fmt.Errorf("mark expired: %w", err)
		}
	}

	var created *domain.Comment
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.comments.Create(txCtx, &domain.Comment{
			AuthorID:   userID,
			DecisionID: d.ID,
			Content:    input.Content,
		})
		if createErr != nil {
			return fmt.Errorf("create comment: %w", createErr)
		}

		if err := s.karma.AwardCommentPosted(txCtx, userID); err != nil {
			return fmt.Errorf("award karma: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "comment posted",
		slog.String("comment_id", created.ID.String()),
		slog.String("decision_id", d.ID.String()),
		slog.String("user_id", userID.String()),
	)

	return created, nil
}
