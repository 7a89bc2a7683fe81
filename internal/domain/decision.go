package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// DecisionType classifies a decision by subject area.
type DecisionType string

const (
	TypeCareer    DecisionType = "career"
	TypeTechnical DecisionType = "technical"
	TypeLife      DecisionType = "life"
	TypeFinancial DecisionType = "financial"
	TypeStartup   DecisionType = "startup"
)

// Valid reports whether t is a known decision type.
func (t DecisionType) Valid() bool {
	switch t {
	case TypeCareer, TypeTechnical, TypeLife, TypeFinancial, TypeStartup:
		return true
	}
	return false
}

func (t DecisionType) String() string { return string(t) }

// DecisionStatus is the lifecycle state of a decision.
// Transitions only move forward: open -> decided|expired|archived.
type DecisionStatus string

const (
	StatusDraft    DecisionStatus = "draft"
	StatusOpen     DecisionStatus = "open"
	StatusDecided  DecisionStatus = "decided"
	StatusExpired  DecisionStatus = "expired"
	StatusArchived DecisionStatus = "archived"
)

func (s DecisionStatus) String() string { return string(s) }

// Terminal reports whether s admits no further transitions.
func (s DecisionStatus) Terminal() bool {
	switch s {
	case StatusDecided, StatusExpired, StatusArchived:
		return true
	}
	return false
}

// Option is one selectable choice within a decision. VotesCount is a
// denormalized tally kept consistent with the vote rows by the vote ledger;
// no other writer touches it.
type Option struct {
	ID         uuid.UUID
	DecisionID uuid.UUID
	Text       string
	VotesCount int
	CreatedAt  time.Time
}

// Decision is a poll posted by a user with 2-4 mutually exclusive options
// and an expiry deadline.
type Decision struct {
	ID            uuid.UUID
	AuthorID      uuid.UUID
	Title         string
	Context       string
	Type          DecisionType
	IsAnonymous   bool
	Status        DecisionStatus
	ExpiresAt     time.Time
	FinalOptionID *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Loaded on read paths.
	Options    []Option
	Author     *User
	TotalVotes int
}

// IsExpired reports whether the expiry deadline has passed at now.
// It is independent of Status: the expired status is only materialized
// lazily when the decision is observed.
func (d *Decision) IsExpired(now time.Time) bool {
	return now.After(d.ExpiresAt)
}

// HasOption reports whether optionID belongs to this decision.
// Options must be loaded.
func (d *Decision) HasOption(optionID uuid.UUID) bool {
	for _, o := range d.Options {
		if o.ID == optionID {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether the status machine permits moving to next.
// Only open decisions transition; terminal states never leave.
func (d *Decision) CanTransitionTo(next DecisionStatus) bool {
	if d.Status != StatusOpen {
		return false
	}
	return next.Terminal()
}

// Percentage derives an option's share of the total vote count, rounded to
// one decimal place. Zero total yields zero for every option.
func Percentage(optionVotes, totalVotes int) float64 {
	if totalVotes == 0 {
		return 0
	}
	return math.Round(float64(optionVotes)/float64(totalVotes)*1000) / 10
}
