package decision

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/consejoapp/consejo-backend/internal/domain"
)

// CreateDecisionInput holds the parameters for posting a decision.
type CreateDecisionInput struct {
	Title       string
	Context     string
	Type        domain.DecisionType
	IsAnonymous bool
	ExpiresAt   time.Time
	Options     []string
}

// Validate checks all fields and collects all errors.
func (i *CreateDecisionInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if utf8.RuneCountInString(i.Title) > 255 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 255 characters"})
	}
	if strings.TrimSpace(i.Context) == "" {
		errs = append(errs, domain.FieldError{Field: "context", Message: "required"})
	}
	if !i.Type.Valid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "must be career, technical, life, financial, or startup"})
	}
	if !i.ExpiresAt.After(time.Now()) {
		errs = append(errs, domain.FieldError{Field: "expires_at", Message: "must be in the future"})
	}

	if len(i.Options) < 2 || len(i.Options) > 4 {
		errs = append(errs, domain.FieldError{Field: "options", Message: "must have between 2 and 4 options"})
	}
	for n, opt := range i.Options {
		if strings.TrimSpace(opt) == "" {
			errs = append(errs, domain.FieldError{Field: "options", Message: "option " + strconv.Itoa(n+1) + " is empty"})
		} else if utf8.RuneCountInString(opt) > 255 {
			errs = append(errs, domain.FieldError{Field: "options", Message: "option " + strconv.Itoa(n+1) + " exceeds 255 characters"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListDecisionsInput holds the parameters for the public decision feed.
type ListDecisionsInput struct {
	Type *domain.DecisionType
	Sort string
	Page int
}

// Validate checks all fields and collects all errors.
func (i *ListDecisionsInput) Validate() error {
	var errs []domain.FieldError

	if i.Type != nil && !i.Type.Valid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "unknown decision type"})
	}
	if i.Page < 0 {
		errs = append(errs, domain.FieldError{Field: "page", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateDecisionInput holds the parameters for closing a decision.
type UpdateDecisionInput struct {
	DecisionID    uuid.UUID
	Status        domain.DecisionStatus
	FinalOptionID *uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *UpdateDecisionInput) Validate() error {
	var errs []domain.FieldError

	if i.DecisionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "decision_id", Message: "required"})
	}
	if i.Status != domain.StatusDecided && i.Status != domain.StatusArchived {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be decided or archived"})
	}
	if i.Status == domain.StatusDecided && i.FinalOptionID == nil {
		errs = append(errs, domain.FieldError{Field: "final_option_id", Message: "required when marking decided"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
