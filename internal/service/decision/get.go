package decision

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Get returns a decision with options, author, total votes, and the viewer's
// own vote when authenticated. Lazy expiry is applied before anything else.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Detail, error) {
	d, err := s.decisions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get decision: %w", err)
	}

	if err := s.refreshExpiry(ctx, d); err != nil {
		return nil, err
	}

	vote, err := s.viewerVote(ctx, d.ID)
	if err != nil {
		return nil, err
	}

	return &Detail{Decision: d, ViewerVote: vote}, nil
}
