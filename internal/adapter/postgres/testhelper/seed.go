package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/consejoapp/consejo-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with zero karma and the default badge.
// Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Email:        "testuser-" + suffix + "@example.com",
		Username:     "testuser-" + suffix,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Karma:        0,
		Badge:        domain.BadgeDecisivo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, username, password_hash, karma, badge, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.ID, user.Email, user.Username, user.PasswordHash, user.Karma, string(user.Badge), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedDecision creates an open decision with the given options for the author.
// Expiry is 72 hours from now. Returns a filled domain.Decision with Options.
func SeedDecision(t *testing.T, pool *pgxpool.Pool, authorID uuid.UUID, optionTexts ...string) domain.Decision {
	t.Helper()
	ctx := context.Background()

	if len(optionTexts) == 0 {
		optionTexts = []string{"Option A", "Option B"}
	}

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	decision := domain.Decision{
		ID:        uuid.New(),
		AuthorID:  authorID,
		Title:     "Decision " + suffix,
		Context:   "Context for decision " + suffix + ", long enough to be plausible.",
		Type:      domain.TypeCareer,
		Status:    domain.StatusOpen,
		ExpiresAt: now.Add(72 * time.Hour),
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO decisions (id, user_id, title, context, type, is_anonymous, status, expires_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		decision.ID, decision.AuthorID, decision.Title, decision.Context, string(decision.Type),
		decision.IsAnonymous, string(decision.Status), decision.ExpiresAt, decision.CreatedAt, decision.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDecision insert decision: %v", err)
	}

	decision.Options = make([]domain.Option, len(optionTexts))
	for i, text := range optionTexts {
		opt := domain.Option{
			ID:         uuid.New(),
			DecisionID: decision.ID,
			Text:       text,
			CreatedAt:  now,
		}

		_, err := pool.Exec(ctx,
			`INSERT INTO options (id, decision_id, text, votes_count, created_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			opt.ID, opt.DecisionID, opt.Text, opt.VotesCount, opt.CreatedAt,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedDecision insert option[%d]: %v", i, err)
		}
		decision.Options[i] = opt
	}

	return decision
}

// SeedExpiredDecision creates a decision whose expiry is already in the past
// but whose status is still 'open'. Used to exercise lazy expiry transitions.
func SeedExpiredDecision(t *testing.T, pool *pgxpool.Pool, authorID uuid.UUID) domain.Decision {
	t.Helper()
	ctx := context.Background()

	decision := SeedDecision(t, pool, authorID)

	expired := time.Now().UTC().Add(-time.Hour).Truncate(time.Microsecond)
	_, err := pool.Exec(ctx,
		`UPDATE decisions SET expires_at = $2 WHERE id = $1`,
		decision.ID, expired,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedExpiredDecision update expires_at: %v", err)
	}
	decision.ExpiresAt = expired

	return decision
}

// SeedVote creates a vote on the given option and bumps the option tally,
// mirroring what the vote service does in one transaction.
// Returns a filled domain.Vote.
func SeedVote(t *testing.T, pool *pgxpool.Pool, voterID, decisionID, optionID uuid.UUID) domain.Vote {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	vote := domain.Vote{
		ID:         uuid.New(),
		VoterID:    voterID,
		DecisionID: decisionID,
		OptionID:   optionID,
		CreatedAt:  now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO votes (id, user_id, decision_id, option_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		vote.ID, vote.VoterID, vote.DecisionID, vote.OptionID, vote.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedVote insert vote: %v", err)
	}

	_, err = pool.Exec(ctx,
		`UPDATE options SET votes_count = votes_count + 1 WHERE id = $1`,
		optionID,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedVote bump votes_count: %v", err)
	}

	return vote
}

// SeedComment creates a comment on a decision. Returns a filled domain.Comment.
func SeedComment(t *testing.T, pool *pgxpool.Pool, authorID, decisionID uuid.UUID) domain.Comment {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	comment := domain.Comment{
		ID:         uuid.New(),
		AuthorID:   authorID,
		DecisionID: decisionID,
		Content:    "Seeded comment " + suffix + " with enough length.",
		CreatedAt:  now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO comments (id, user_id, decision_id, content, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		comment.ID, comment.AuthorID, comment.DecisionID, comment.Content, comment.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedComment insert comment: %v", err)
	}

	return comment
}
