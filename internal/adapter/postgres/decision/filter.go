package decision

import (
	"github.com/consejoapp/consejo-backend/internal/domain"
)

// defaultLimit bounds user-scoped listings when the caller passes no limit.
const defaultLimit = domain.DecisionPageSize

// orderClause returns the ORDER BY expression for a normalized filter's sort.
func orderClause(f domain.DecisionFilter) string {
	switch f.Sort {
	case domain.SortMostVoted:
		return "(SELECT count(*) FROM votes v WHERE v.decision_id = decisions.id) DESC, created_at DESC"
	case domain.SortExpiringSoon:
		return "expires_at ASC"
	default:
		// no_votes filters rather than sorts; it lists recent-first too.
		return "created_at DESC"
	}
}
