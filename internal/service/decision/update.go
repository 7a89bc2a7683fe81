package decision

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/consejoapp/consejo-backend/internal/domain"
	"github.com/consejoapp/consejo-backend/pkg/ctxutil"
)

// Update closes a decision as decided or archived. Only the author may do
// this, only from the open status, and marking decided requires a final
// option that belongs to the decision.
func (s *Service) Update(ctx context.Context, input UpdateDecisionInput) (*domain.Decision, error) {
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

	if d.AuthorID != userID {
		return nil, domain.ErrForbidden
	}

	// An overdue decision expires before the author's transition is weighed.
	if err := s.refreshExpiry(ctx, d); err != nil {
		return nil, err
	}

	if !d.CanTransitionTo(input.Status) {
		return nil, domain.NewValidationError("status", "decision is no longer open")
	}

	var finalOptionID *uuid.UUID
	if input.Status == domain.StatusDecided {
		if !d.HasOption(*input.FinalOptionID) {
			return nil, fmt.Errorf("option %s: %w", *input.FinalOptionID, domain.ErrInvalidOption)
		}
		finalOptionID = input.FinalOptionID
	}

	if err := s.decisions.UpdateStatus(ctx, d.ID, input.Status, finalOptionID); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	d.Status = input.Status
	d.FinalOptionID = finalOptionID

	s.log.InfoContext(ctx, "decision closed",
		slog.String("decision_id", d.ID.String()),
		slog.String("status", d.Status.String()),
	)

	return d, nil
}
