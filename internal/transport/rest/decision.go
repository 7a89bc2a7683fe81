package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/consejoapp/consejo-backend/internal/domain"
	"github.com/consejoapp/consejo-backend/internal/service/decision"
)

// decisionService defines the minimal interface needed by DecisionHandler.
type decisionService interface {
	Create(ctx context.Context, input decision.CreateDecisionInput) (*domain.Decision, error)
	Get(ctx context.Context, id uuid.UUID) (*decision.Detail, error)
	List(ctx context.Context, input decision.ListDecisionsInput) (*decision.Page, error)
	MyDecisions(ctx context.Context, page int) (*decision.Page, error)
	VotedDecisions(ctx context.Context, page int) (*decision.Page, error)
	Update(ctx context.Context, input decision.UpdateDecisionInput) (*domain.Decision, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DecisionHandler serves decision REST endpoints.
type DecisionHandler struct {
	svc decisionService
	log *slog.Logger
}

// NewDecisionHandler creates a DecisionHandler.
func NewDecisionHandler(svc decisionService, logger *slog.Logger) *DecisionHandler {
	return &DecisionHandler{svc: svc, log: logger.With("handler", "decision")}
}

type createDecisionRequest struct {
	Title       string    `json:"title"`
	Context     string    `json:"context"`
	Type        string    `json:"type"`
	IsAnonymous bool      `json:"isAnonymous"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Options     []string  `json:"options"`
}

type updateDecisionRequest struct {
	Status        string  `json:"status"`
	FinalOptionID *string `json:"finalOptionId"`
}

type decisionDetailResponse struct {
	decisionResponse
	ViewerVote *voteResponse `json:"viewerVote,omitempty"`
}

type decisionPageResponse struct {
	Decisions []decisionResponse `json:"decisions"`
	pageMeta
}

// Create handles POST /decisions.
func (h *DecisionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.svc.Create(r.Context(), decision.CreateDecisionInput{
		Title:       req.Title,
		Context:     req.Context,
		Type:        domain.DecisionType(req.Type),
		IsAnonymous: req.IsAnonymous,
		ExpiresAt:   req.ExpiresAt,
		Options:     req.Options,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toDecisionResponse(d))
}

// Get handles GET /decisions/{id}.
func (h *DecisionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid decision id")
		return
	}

	detail, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := decisionDetailResponse{decisionResponse: toDecisionResponse(detail.Decision)}
	if detail.ViewerVote != nil {
		vote := toVoteResponse(detail.ViewerVote)
		resp.ViewerVote = &vote
	}
	writeJSON(w, http.StatusOK, resp)
}

// List handles GET /decisions. Supported query parameters: type, filter
// (ordering: recent, most_voted, expiring_soon, no_votes), page.
func (h *DecisionHandler) List(w http.ResponseWriter, r *http.Request) {
	input := decision.ListDecisionsInput{
		Sort: r.URL.Query().Get("filter"),
		Page: queryPage(r),
	}
	if v := r.URL.Query().Get("type"); v != "" {
		t := domain.DecisionType(v)
		input.Type = &t
	}

	page, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toDecisionPageResponse(page))
}

// Mine handles GET /my-decisions.
func (h *DecisionHandler) Mine(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.MyDecisions(r.Context(), queryPage(r))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toDecisionPageResponse(page))
}

// Voted handles GET /voted-decisions.
func (h *DecisionHandler) Voted(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.VotedDecisions(r.Context(), queryPage(r))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toDecisionPageResponse(page))
}

// Update handles PATCH /decisions/{id}. Authors use it to close a decision
// as decided or archived.
func (h *DecisionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid decision id")
		return
	}

	var req updateDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := decision.UpdateDecisionInput{
		DecisionID: id,
		Status:     domain.DecisionStatus(req.Status),
	}
	if req.FinalOptionID != nil {
		optionID, err := uuid.Parse(*req.FinalOptionID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid final option id")
			return
		}
		input.FinalOptionID = &optionID
	}

	d, err := h.svc.Update(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toDecisionResponse(d))
}

// Delete handles DELETE /decisions/{id}.
func (h *DecisionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid decision id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toDecisionPageResponse(page *decision.Page) decisionPageResponse {
	return decisionPageResponse{
		Decisions: toDecisionResponses(page.Decisions),
		pageMeta: pageMeta{
			Total:   page.Total,
			Page:    page.Page,
			PerPage: page.PerPage,
		},
	}
}
