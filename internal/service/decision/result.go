package decision

import "github.com/consejoapp/consejo-backend/internal/domain"

// Detail is a decision together with the viewing user's vote, when there
// is one. ViewerVote is nil for anonymous viewers and non-voters.
type Detail struct {
	Decision   *domain.Decision
	ViewerVote *domain.Vote
}

// Page is one page of a decision listing.
type Page struct {
	Decisions []*domain.Decision
	Total     int
	Page      int
	PerPage   int
}
