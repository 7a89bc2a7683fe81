package vote

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/consejoapp/consejo-backend/internal/domain"
	"github.com/consejoapp/consejo-backend/pkg/ctxutil"
)

// Retract removes the caller's own vote, reversing the option tally and the
// karma grant in the same transaction. Retracted karma may push the voter
// negative.
func (s *Service) Retract(ctx context.Context, voteID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	v, err := s.votes.GetByID(ctx, voteID)
	if err != nil {
		return fmt.Errorf("get vote: %w", err)
	}

	if v.VoterID != userID {
		return domain.ErrForbidden
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.votes.Delete(txCtx, voteID); err != nil {
			return fmt.Errorf("delete vote: %w", err)
		}

		if err := s.decisions.DecrementOptionVotes(txCtx, v.OptionID); err != nil {
			return fmt.Errorf("decrement tally: %w", err)
		}

		if err := s.karma.RevertVoteCast(txCtx, userID); err != nil {
			return fmt.Errorf("revert karma: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "vote retracted",
		slog.String("vote_id", voteID.String()),
		slog.String("decision_id", v.DecisionID.String()),
		slog.String("user_id", userID.String()),
	)

	return nil
}
