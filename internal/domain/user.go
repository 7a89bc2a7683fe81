package domain

import (
	"time"

	"github.com/google/uuid"
)

// Badge is the derived reputation classification shown next to a user.
type Badge string

const (
	// BadgeOverthinker marks users who post far more decisions than they vote.
	BadgeOverthinker Badge = "Overthinker"
	// BadgeConsejero marks users who vote far more than they post.
	BadgeConsejero Badge = "Consejero"
	// BadgeDecisivo is the balanced default, including brand-new users.
	BadgeDecisivo Badge = "Decisivo"
)

func (b Badge) String() string { return string(b) }

// Karma deltas for qualifying actions. Deltas are additive with no cap and
// no floor besides what retraction naturally produces.
const (
	KarmaDecisionCreated = 10
	KarmaVoteCast        = 5
	KarmaCommentPosted   = 5
)

// BadgeFor computes the badge from activity counts. Ties (d == 2v or
// v == 2d exactly) fall to Decisivo since neither strict inequality holds,
// which also covers new users with zero activity.
func BadgeFor(decisionsAuthored, votesCast int) Badge {
	switch {
	case decisionsAuthored > votesCast*2:
		return BadgeOverthinker
	case votesCast > decisionsAuthored*2:
		return BadgeConsejero
	default:
		return BadgeDecisivo
	}
}

// User represents an authenticated application user. Karma and Badge are
// global mutable reputation state maintained by the reputation service.
type User struct {
	ID           uuid.UUID
	Email        string
	Username     string
	PasswordHash string
	Karma        int
	Badge        Badge
	AvatarURL    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RefreshToken represents a hashed refresh token stored in the database.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// IsRevoked returns true if the token has been revoked.
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsExpired returns true if the token has expired relative to now.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
