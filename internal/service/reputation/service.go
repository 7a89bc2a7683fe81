// Package reputation maintains user karma and badges. It is the only
// writer of the users.karma and users.badge columns.
package reputation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/consejoapp/consejo-backend/internal/domain"
)

type userRepo interface {
	AddKarma(ctx context.Context, id uuid.UUID, delta int) (int, error)
	SetBadge(ctx context.Context, id uuid.UUID, badge domain.Badge) error
	CountActivity(ctx context.Context, id uuid.UUID) (decisions, votes int, err error)
}

// Service applies karma deltas and recomputes badges from activity counts.
// Callers invoke it inside their own transactions so reputation changes
// commit or roll back with the action that caused them.
type Service struct {
	users userRepo
	log   *slog.Logger
}

// NewService creates a new Reputation service.
func NewService(log *slog.Logger, users userRepo) *Service {
	return &Service{
		users: users,
		log:   log.With("service", "reputation"),
	}
}

// AwardDecisionCreated grants karma for posting a decision and recomputes
// the author's badge.
func (s *Service) AwardDecisionCreated(ctx context.Context, userID uuid.UUID) error {
	return s.apply(ctx, userID, domain.KarmaDecisionCreated, true)
}

// AwardVoteCast grants karma for casting a vote and recomputes the badge.
func (s *Service) AwardVoteCast(ctx context.Context, userID uuid.UUID) error {
	return s.apply(ctx, userID, domain.KarmaVoteCast, true)
}

// RevertVoteCast takes back the karma for a retracted vote and recomputes
// the badge. Karma may go negative.
func (s *Service) RevertVoteCast(ctx context.Context, userID uuid.UUID) error {
	return s.apply(ctx, userID, -domain.KarmaVoteCast, true)
}

// AwardCommentPosted grants karma for a comment. Comments do not feed the
// badge formula, so no recompute happens.
func (s *Service) AwardCommentPosted(ctx context.Context, userID uuid.UUID) error {
	return s.apply(ctx, userID, domain.KarmaCommentPosted, false)
}

func (s *Service) apply(ctx context.Context, userID uuid.UUID, delta int, recomputeBadge bool) error {
	total, err := s.users.AddKarma(ctx, userID, delta)
	if err != nil {
		return fmt.Errorf("add karma: %w", err)
	}

	if recomputeBadge {
		decisions, votes, err := s.users.CountActivity(ctx, userID)
		if err != nil {
			return fmt.Errorf("count activity: %w", err)
		}

		badge := domain.BadgeFor(decisions, votes)
		if err := s.users.SetBadge(ctx, userID, badge); err != nil {
			return fmt.Errorf("set badge: %w", err)
		}
	}

	s.log.DebugContext(ctx, "karma applied",
		slog.String("user_id", userID.String()),
		slog.Int("delta", delta),
		slog.Int("total", total),
	)

	return nil
}
