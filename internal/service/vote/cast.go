package vote

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/consejoapp/consejo-backend/internal/domain"
	"github.com/consejoapp/consejo-backend/pkg/ctxutil"
)

// Cast records a vote on one option of an open decision. Preconditions are
// checked in a fixed order and each failure surfaces as a distinct error:
// unknown decision or option, an option belonging to another decision,
// closed decision, expired decision (which also persists the expired
// status), the author voting on their own decision, and a repeat vote. On success the vote row, the option tally,
// and the voter's karma move in one transaction.
func (s *Service) Cast(ctx context.Context, input CastVoteInput) (*domain.Vote, error) {
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

	opt, err := s.decisions.GetOption(ctx, input.OptionID)
	if err != nil {
		return nil, fmt.Errorf("get option: %w", err)
	}
	if opt.DecisionID != d.ID {
		return nil, fmt.Errorf("option %s: %w", input.OptionID, domain.ErrInvalidOption)
	}

	if d.Status != domain.StatusOpen {
		return nil, fmt.Errorf("decision %s: %w", d.ID, domain.ErrDecisionClosed)
	}

	if d.IsExpired(time.Now()) {
		if err := s.decisions.MarkExpired(ctx, d.ID); err != nil {
			return nil, fmt.Errorf("mark expired: %w", err)
		}
		return nil, fmt.Errorf("decision %s: %w", d.ID, domain.ErrDecisionExpired)
	}

	if d.AuthorID == userID {
		return nil, fmt.Errorf("decision %s: %w", d.ID, domain.ErrSelfVote)
	}

	// Early duplicate check for the common case. The unique constraint on
	// (user_id, decision_id) settles races this check cannot see.
	voted, err := s.votes.HasVoted(ctx, userID, d.ID)
	if err != nil {
		return nil, fmt.Errorf("check existing vote: %w", err)
	}
	if voted {
		return nil, fmt.Errorf("decision %s: %w", d.ID, domain.ErrDuplicateVote)
	}

	var created *domain.Vote
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.votes.Create(txCtx, &domain.Vote{
			VoterID:    userID,
			DecisionID: d.ID,
			OptionID:   input.OptionID,
			Comment:    input.Comment,
		})
		if createErr != nil {
			return fmt.Errorf("create vote: %w", createErr)
		}

		if err := s.decisions.IncrementOptionVotes(txCtx, input.OptionID); err != nil {
			return fmt.Errorf("increment tally: %w", err)
		}

		if err := s.karma.AwardVoteCast(txCtx, userID); err != nil {
			return fmt.Errorf("award karma: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "vote cast",
		slog.String("vote_id", created.ID.String()),
		slog.String("decision_id", d.ID.String()),
		slog.String("option_id", input.OptionID.String()),
		slog.String("user_id", userID.String()),
	)

	return created, nil
}
