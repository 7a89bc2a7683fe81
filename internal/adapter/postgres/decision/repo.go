// Package decision implements the Decision and Option repository using
// PostgreSQL. Options are created and destroyed with their parent decision;
// their denormalized vote tallies are mutated only through the increment and
// decrement methods called by the vote ledger.
package decision

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/consejoapp/consejo-backend/internal/adapter/postgres"
	"github.com/consejoapp/consejo-backend/internal/domain"
)

// Repo provides decision and option persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new decision repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// psql builds queries with PostgreSQL positional placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const decisionColumns = `id, user_id, title, context, type, is_anonymous, status, expires_at, final_option_id, created_at, updated_at`

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const createDecisionSQL = `
INSERT INTO decisions (user_id, title, context, type, is_anonymous, status, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + decisionColumns

const createOptionSQL = `
INSERT INTO options (decision_id, text)
VALUES ($1, $2)
RETURNING id, decision_id, text, votes_count, created_at`

const getDecisionByIDSQL = `SELECT ` + decisionColumns + ` FROM decisions WHERE id = $1`

const listOptionsSQL = `
SELECT id, decision_id, text, votes_count, created_at
FROM options
WHERE decision_id = ANY($1::uuid[])
ORDER BY decision_id, created_at`

const listAuthorsSQL = `
SELECT id, email, username, karma, badge, avatar_url, created_at
FROM users
WHERE id = ANY($1::uuid[])`

const updateStatusSQL = `
UPDATE decisions SET status = $2, final_option_id = $3, updated_at = now()
WHERE id = $1`

const markExpiredSQL = `
UPDATE decisions SET status = 'expired', updated_at = now()
WHERE id = $1 AND status = 'open'`

const deleteDecisionSQL = `DELETE FROM decisions WHERE id = $1`

const getOptionByIDSQL = `
SELECT id, decision_id, text, votes_count, created_at
FROM options
WHERE id = $1`

const incrementOptionSQL = `
UPDATE options SET votes_count = votes_count + 1 WHERE id = $1`

const decrementOptionSQL = `
UPDATE options SET votes_count = votes_count - 1 WHERE id = $1`

const listByAuthorSQL = `
SELECT ` + decisionColumns + `
FROM decisions
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

const countByAuthorSQL = `SELECT count(*) FROM decisions WHERE user_id = $1`

const listVotedBySQL = `
SELECT ` + decisionColumns + `
FROM decisions
WHERE id IN (SELECT decision_id FROM votes WHERE user_id = $1)
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

const countVotedBySQL = `
SELECT count(DISTINCT decision_id) FROM votes WHERE user_id = $1`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a decision and its options as one unit. The caller is
// expected to wrap this in a transaction so the decision never exists
// without its options.
func (r *Repo) Create(ctx context.Context, d *domain.Decision, optionTexts []string) (*domain.Decision, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, createDecisionSQL,
		d.AuthorID, d.Title, d.Context, d.Type.String(), d.IsAnonymous,
		d.Status.String(), d.ExpiresAt)

	created, err := scanDecision(row)
	if err != nil {
		return nil, postgres.MapError(err, "decision", uuid.Nil)
	}

	created.Options = make([]domain.Option, 0, len(optionTexts))
	for _, text := range optionTexts {
		opt, err := scanOption(q.QueryRow(ctx, createOptionSQL, created.ID, text))
		if err != nil {
			return nil, postgres.MapError(err, "option", created.ID)
		}
		created.Options = append(created.Options, *opt)
	}

	return created, nil
}

// UpdateStatus sets a decision's status and final option reference.
// finalOptionID is nil for every status except decided.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DecisionStatus, finalOptionID *uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, updateStatusSQL, id, status.String(), finalOptionID)
	if err != nil {
		return postgres.MapError(err, "decision", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("decision %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// MarkExpired transitions an open decision to expired. Idempotent: a
// decision already out of open is left untouched (0 rows affected is OK),
// so concurrent lazy-expiry refreshes never fight each other.
func (r *Repo) MarkExpired(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, markExpiredSQL, id); err != nil {
		return postgres.MapError(err, "decision", id)
	}

	return nil
}

// Delete removes a decision. The schema cascades to options, votes, and
// comments. Returns domain.ErrNotFound if no row was deleted.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteDecisionSQL, id)
	if err != nil {
		return postgres.MapError(err, "decision", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("decision %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// IncrementOptionVotes bumps an option's denormalized tally. Called only by
// the vote ledger inside the vote-cast transaction.
func (r *Repo) IncrementOptionVotes(ctx context.Context, optionID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, incrementOptionSQL, optionID)
	if err != nil {
		return postgres.MapError(err, "option", optionID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("option %s: %w", optionID, domain.ErrNotFound)
	}

	return nil
}

// DecrementOptionVotes reverses one vote from an option's tally. The
// votes_count >= 0 check constraint guards against drift below zero.
func (r *Repo) DecrementOptionVotes(ctx context.Context, optionID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, decrementOptionSQL, optionID)
	if err != nil {
		return postgres.MapError(err, "option", optionID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("option %s: %w", optionID, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a decision with its options and author loaded.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Decision, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	d, err := scanDecision(q.QueryRow(ctx, getDecisionByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "decision", id)
	}

	decisions := []*domain.Decision{d}
	if err := r.loadOptions(ctx, decisions); err != nil {
		return nil, err
	}
	if err := r.loadAuthors(ctx, decisions); err != nil {
		return nil, err
	}

	return d, nil
}

// GetOption returns a single option by primary key.
func (r *Repo) GetOption(ctx context.Context, optionID uuid.UUID) (*domain.Option, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	opt, err := scanOption(q.QueryRow(ctx, getOptionByIDSQL, optionID))
	if err != nil {
		return nil, postgres.MapError(err, "option", optionID)
	}

	return opt, nil
}

// List returns a page of open decisions matching the filter, plus the total
// match count for pagination. Options and authors are loaded for the page.
func (r *Repo) List(ctx context.Context, f domain.DecisionFilter) ([]*domain.Decision, int, error) {
	f.Normalize()
	q := postgres.QuerierFromCtx(ctx, r.pool)

	base := psql.Select(decisionColumns).
		From("decisions").
		Where(sq.Eq{"status": domain.StatusOpen.String()})

	countQ := psql.Select("count(*)").
		From("decisions").
		Where(sq.Eq{"status": domain.StatusOpen.String()})

	if f.Type != nil {
		base = base.Where(sq.Eq{"type": f.Type.String()})
		countQ = countQ.Where(sq.Eq{"type": f.Type.String()})
	}
	if f.Sort == domain.SortNoVotes {
		noVotes := "NOT EXISTS (SELECT 1 FROM votes v WHERE v.decision_id = decisions.id)"
		base = base.Where(noVotes)
		countQ = countQ.Where(noVotes)
	}

	base = base.OrderBy(orderClause(f)).
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset))

	sqlStr, args, err := base.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list decisions: %w", err)
	}
	defer rows.Close()

	decisions, err := scanDecisions(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("list decisions: %w", err)
	}

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count decisions: %w", err)
	}

	if err := r.loadOptions(ctx, decisions); err != nil {
		return nil, 0, err
	}
	if err := r.loadAuthors(ctx, decisions); err != nil {
		return nil, 0, err
	}

	return decisions, total, nil
}

// ListByAuthor returns a page of decisions authored by userID, newest first.
func (r *Repo) ListByAuthor(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Decision, int, error) {
	return r.listPage(ctx, listByAuthorSQL, countByAuthorSQL, userID, limit, offset)
}

// ListVotedBy returns a page of decisions the user has voted on, newest first.
func (r *Repo) ListVotedBy(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Decision, int, error) {
	return r.listPage(ctx, listVotedBySQL, countVotedBySQL, userID, limit, offset)
}

func (r *Repo) listPage(ctx context.Context, listSQL, countSQL string, userID uuid.UUID, limit, offset int) ([]*domain.Decision, int, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listSQL, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list decisions for user: %w", err)
	}
	defer rows.Close()

	decisions, err := scanDecisions(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("list decisions for user: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, countSQL, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count decisions for user: %w", err)
	}

	if err := r.loadOptions(ctx, decisions); err != nil {
		return nil, 0, err
	}
	if err := r.loadAuthors(ctx, decisions); err != nil {
		return nil, 0, err
	}

	return decisions, total, nil
}

// ---------------------------------------------------------------------------
// Eager loading
// ---------------------------------------------------------------------------

// loadOptions attaches options to each decision and derives TotalVotes from
// the tallies. The tallies equal the vote row counts by the ledger's
// invariant, so no second aggregate query is needed.
func (r *Repo) loadOptions(ctx context.Context, decisions []*domain.Decision) error {
	if len(decisions) == 0 {
		return nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	ids := make([]uuid.UUID, len(decisions))
	byID := make(map[uuid.UUID]*domain.Decision, len(decisions))
	for i, d := range decisions {
		ids[i] = d.ID
		byID[d.ID] = d
		d.Options = nil
		d.TotalVotes = 0
	}

	rows, err := q.Query(ctx, listOptionsSQL, ids)
	if err != nil {
		return fmt.Errorf("load options: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var opt domain.Option
		if err := rows.Scan(&opt.ID, &opt.DecisionID, &opt.Text, &opt.VotesCount, &opt.CreatedAt); err != nil {
			return fmt.Errorf("load options: %w", err)
		}
		d := byID[opt.DecisionID]
		d.Options = append(d.Options, opt)
		d.TotalVotes += opt.VotesCount
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load options: %w", err)
	}

	return nil
}

// loadAuthors attaches author display data to each decision.
func (r *Repo) loadAuthors(ctx context.Context, decisions []*domain.Decision) error {
	if len(decisions) == 0 {
		return nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	ids := make([]uuid.UUID, 0, len(decisions))
	seen := make(map[uuid.UUID]bool, len(decisions))
	for _, d := range decisions {
		if !seen[d.AuthorID] {
			seen[d.AuthorID] = true
			ids = append(ids, d.AuthorID)
		}
	}

	rows, err := q.Query(ctx, listAuthorsSQL, ids)
	if err != nil {
		return fmt.Errorf("load authors: %w", err)
	}
	defer rows.Close()

	authors := make(map[uuid.UUID]*domain.User, len(ids))
	for rows.Next() {
		var (
			u         domain.User
			badge     string
			avatarURL pgtype.Text
		)
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.Karma, &badge, &avatarURL, &u.CreatedAt); err != nil {
			return fmt.Errorf("load authors: %w", err)
		}
		u.Badge = domain.Badge(badge)
		if avatarURL.Valid {
			u.AvatarURL = &avatarURL.String
		}
		authors[u.ID] = &u
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load authors: %w", err)
	}

	for _, d := range decisions {
		d.Author = authors[d.AuthorID]
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning
// ---------------------------------------------------------------------------

func scanDecision(row interface{ Scan(dest ...any) error }) (*domain.Decision, error) {
	var (
		d             domain.Decision
		typ, status   string
		finalOptionID pgtype.UUID
	)

	err := row.Scan(&d.ID, &d.AuthorID, &d.Title, &d.Context, &typ, &d.IsAnonymous,
		&status, &d.ExpiresAt, &finalOptionID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}

	d.Type = domain.DecisionType(typ)
	d.Status = domain.DecisionStatus(status)
	if finalOptionID.Valid {
		id := uuid.UUID(finalOptionID.Bytes)
		d.FinalOptionID = &id
	}

	return &d, nil
}

func scanDecisions(rows pgx.Rows) ([]*domain.Decision, error) {
	var result []*domain.Decision
	for rows.Next() {
		d, err := scanDecision(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []*domain.Decision{}
	}

	return result, nil
}

func scanOption(row interface{ Scan(dest ...any) error }) (*domain.Option, error) {
	var opt domain.Option
	err := row.Scan(&opt.ID, &opt.DecisionID, &opt.Text, &opt.VotesCount, &opt.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &opt, nil
}
