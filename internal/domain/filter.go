package domain

// Sort orders for decision listings.
const (
	SortRecent       = "recent"
	SortMostVoted    = "most_voted"
	SortExpiringSoon = "expiring_soon"
	SortNoVotes      = "no_votes"
)

// Page sizes for listings.
const (
	DecisionPageSize = 12
	CommentPageSize  = 20
	MaxPageSize      = 50
)

// DecisionFilter contains filtering/pagination parameters for decision listings.
type DecisionFilter struct {
	// Type restricts the listing to one decision type. nil means all types.
	Type *DecisionType

	// Sort is one of recent (default), most_voted, expiring_soon, no_votes.
	// Unknown values fall back to recent.
	Sort string

	Limit  int
	Offset int
}

// Normalize applies defaults and clamps values.
func (f *DecisionFilter) Normalize() {
	switch f.Sort {
	case SortRecent, SortMostVoted, SortExpiringSoon, SortNoVotes:
		// valid
	default:
		f.Sort = SortRecent
	}

	if f.Limit <= 0 {
		f.Limit = DecisionPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}

	if f.Offset < 0 {
		f.Offset = 0
	}
}
