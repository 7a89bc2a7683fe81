package vote

import (
	"github.com/google/uuid"

	"github.com/consejoapp/consejo-backend/internal/domain"
)

// CastVoteInput holds the parameters for casting a vote.
type CastVoteInput struct {
	DecisionID uuid.UUID
	OptionID   uuid.UUID
	Comment    *string
}

// Validate checks all fields and collects all errors.
func (i *CastVoteInput) Validate() error {
	var errs []domain.FieldError

	if i.DecisionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "decision_id", Message: "required"})
	}
	if i.OptionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "option_id", Message: "required"})
	}
	if i.Comment != nil && len(*i.Comment) > 255 {
		errs = append(errs, domain.FieldError{Field: "comment", Message: "max 255 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
