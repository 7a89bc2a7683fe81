package comment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/consejoapp/consejo-backend/internal/domain"
)

// Page is one page of a decision's comments, oldest first.
type Page struct {
	Comments []*domain.Comment
	Total    int
	Page     int
	PerPage  int
}

// List returns a page of a decision's comments in creation order, with
// author display data attached.
func (s *Service) List(ctx context.Context, decisionID uuid.UUID, page int) (*Page, error) {
	if _, err := s.decisions.GetByID(ctx, decisionID); err != nil {
		return nil, fmt.Errorf("get decision: %w", err)
	}

	if page < 1 {
		page = 1
	}

	comments, total, err := s.comments.ListByDecision(ctx, decisionID,
		domain.CommentPageSize, (page-1)*domain.CommentPageSize)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	return &Page{
		Comments: comments,
		Total:    total,
		Page:     page,
		PerPage:  domain.CommentPageSize,
	}, nil
}
