package rest

import "net/http"

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth     *AuthHandler
	Decision *DecisionHandler
	Vote     *VoteHandler
	Comment  *CommentHandler
	Health   *HealthHandler
}

// NewRouter builds the route table. Middleware (request IDs, logging,
// auth) is applied by the caller around the returned mux.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)

	mux.HandleFunc("POST /api/v1/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/v1/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/v1/auth/refresh", h.Auth.Refresh)
	mux.HandleFunc("POST /api/v1/auth/logout", h.Auth.Logout)

	mux.HandleFunc("GET /api/v1/decisions", h.Decision.List)
	mux.HandleFunc("POST /api/v1/decisions", h.Decision.Create)
	mux.HandleFunc("GET /api/v1/decisions/{id}", h.Decision.Get)
	mux.HandleFunc("PATCH /api/v1/decisions/{id}", h.Decision.Update)
	mux.HandleFunc("DELETE /api/v1/decisions/{id}", h.Decision.Delete)
	mux.HandleFunc("GET /api/v1/my-decisions", h.Decision.Mine)
	mux.HandleFunc("GET /api/v1/voted-decisions", h.Decision.Voted)

	mux.HandleFunc("POST /api/v1/votes", h.Vote.Cast)
	mux.HandleFunc("DELETE /api/v1/votes/{id}", h.Vote.Retract)

	mux.HandleFunc("GET /api/v1/decisions/{id}/comments", h.Comment.List)
	mux.HandleFunc("POST /api/v1/decisions/{id}/comments", h.Comment.Post)

	return mux
}
