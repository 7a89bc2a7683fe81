package decision

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/consejoapp/consejo-backend/internal/domain"
	"github.com/consejoapp/consejo-backend/pkg/ctxutil"
)

// Delete removes a decision. Author only. Options, votes, and comments go
// with it via the schema's cascades.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	d, err := s.decisions.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get decision: %w", err)
	}

	if d.AuthorID != userID {
		return domain.ErrForbidden
	}

	if err := s.decisions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete decision: %w", err)
	}

	s.log.InfoContext(ctx, "decision deleted",
		slog.String("decision_id", id.String()),
		slog.String("user_id", userID.String()),
	)

	return nil
}
