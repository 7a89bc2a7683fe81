package comment

import (
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/consejoapp/consejo-backend/internal/domain"
)

// PostCommentInput holds the parameters for posting a comment.
type PostCommentInput struct {
	DecisionID uuid.UUID
	Content    string
}

// Validate checks all fields and collects all errors.
func (i *PostCommentInput) Validate() error {
	var errs []domain.FieldError

	if i.DecisionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "decision_id", Message: "required"})
	}
	// Limits count characters, not bytes, matching the check constraint
	// on the comments table.
	if n := utf8.RuneCountInString(i.Content); n < 10 {
		errs = append(errs, domain.FieldError{Field: "content", Message: "min 10 characters"})
	} else if n > 1000 {
		errs = append(errs, domain.FieldError{Field: "content", Message: "max 1000 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
