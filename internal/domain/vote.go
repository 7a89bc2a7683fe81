package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vote is a single user's binding choice of one option for one decision.
// At most one vote exists per (voter, decision) pair; the database enforces
// this with a unique constraint, the service check is an optimization.
type Vote struct {
	ID         uuid.UUID
	VoterID    uuid.UUID
	DecisionID uuid.UUID
	OptionID   uuid.UUID
	Comment    *string
	CreatedAt  time.Time
}

// Comment is one entry in a decision's append-only text feed.
// There is no edit or delete.
type Comment struct {
	ID         uuid.UUID
	AuthorID   uuid.UUID
	DecisionID uuid.UUID
	Content    string
	CreatedAt  time.Time

	// Loaded on read paths.
	Author *User
}
