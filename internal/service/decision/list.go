package decision

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/consejoapp/consejo-backend/internal/domain"
	"github.com/consejoapp/consejo-backend/pkg/ctxutil"
)

// List returns a page of the public feed of open decisions. Decisions whose
// deadline passed since the last observation come back with status expired.
func (s *Service) List(ctx context.Context, input ListDecisionsInput) (*Page, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	page := input.Page
	if page < 1 {
		page = 1
	}

	decisions, total, err := s.decisions.List(ctx, domain.DecisionFilter{
		Type:   input.Type,
		Sort:   input.Sort,
		Limit:  domain.DecisionPageSize,
		Offset: (page - 1) * domain.DecisionPageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}

	if err := s.refreshExpiryAll(ctx, decisions); err != nil {
		return nil, err
	}

	return &Page{
		Decisions: decisions,
		Total:     total,
		Page:      page,
		PerPage:   domain.DecisionPageSize,
	}, nil
}

// MyDecisions returns a page of the authenticated user's own decisions,
// newest first, regardless of status.
func (s *Service) MyDecisions(ctx context.Context, page int) (*Page, error) {
	return s.userPage(ctx, page, s.decisions.ListByAuthor)
}

// VotedDecisions returns a page of decisions the authenticated user has
// voted on, newest first.
func (s *Service) VotedDecisions(ctx context.Context, page int) (*Page, error) {
	return s.userPage(ctx, page, s.decisions.ListVotedBy)
}

func (s *Service) userPage(
	ctx context.Context,
	page int,
	list func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Decision, int, error),
) (*Page, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if page < 1 {
		page = 1
	}

	decisions, total, err := list(ctx, userID, domain.DecisionPageSize, (page-1)*domain.DecisionPageSize)
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}

	if err := s.refreshExpiryAll(ctx, decisions); err != nil {
		return nil, err
	}

	return &Page{
		Decisions: decisions,
		Total:     total,
		Page:      page,
		PerPage:   domain.DecisionPageSize,
	}, nil
}
