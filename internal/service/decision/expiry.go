package decision

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/consejoapp/consejo-backend/internal/domain"
	"github.com/consejoapp/consejo-backend/pkg/ctxutil"
)

// refreshExpiry materializes the expired status for an open decision whose
// deadline has passed. There is no background sweeper; every read path calls
// this, so an expired decision is persisted the first time anyone looks at it.
func (s *Service) refreshExpiry(ctx context.Context, d *domain.Decision) error {
	if d.Status != domain.StatusOpen || !d.IsExpired(time.Now()) {
		return nil
	}

	if err := s.decisions.MarkExpired(ctx, d.ID); err != nil {
		return fmt.Errorf("mark expired: %w", err)
	}
	d.Status = domain.StatusExpired

	return nil
}

// refreshExpiryAll applies refreshExpiry to a listing page.
func (s *Service) refreshExpiryAll(ctx context.Context, decisions []*domain.Decision) error {
	for _, d := range decisions {
		if err := s.refreshExpiry(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

// viewerVote returns the authenticated viewer's vote on the decision, or nil
// when the viewer is anonymous or has not voted.
func (s *Service) viewerVote(ctx context.Context, decisionID uuid.UUID) (*domain.Vote, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, nil
	}

	v, err := s.votes.GetByVoterAndDecision(ctx, userID, decisionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get viewer vote: %w", err)
	}

	return v, nil
}
