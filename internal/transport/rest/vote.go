package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/consejoapp/consejo-backend/internal/domain"
	"github.com/consejoapp/consejo-backend/internal/service/decision"
	"github.com/consejoapp/consejo-backend/internal/service/vote"
)

// voteService defines the minimal interface needed by VoteHandler.
type voteService interface {
	Cast(ctx context.Context, input vote.CastVoteInput) (*domain.Vote, error)
	Retract(ctx context.Context, voteID uuid.UUID) error
}

// decisionGetter reloads a decision after a vote so the response carries
// the updated tallies.
type decisionGetter interface {
	Get(ctx context.Context, id uuid.UUID) (*decision.Detail, error)
}

// VoteHandler serves vote REST endpoints.
type VoteHandler struct {
	svc       voteService
	decisions decisionGetter
	log       *slog.Logger
}

// NewVoteHandler creates a VoteHandler.
func NewVoteHandler(svc voteService, decisions decisionGetter, logger *slog.Logger) *VoteHandler {
	return &VoteHandler{svc: svc, decisions: decisions, log: logger.With("handler", "vote")}
}

type castVoteRequest struct {
	DecisionID string  `json:"decisionId"`
	OptionID   string  `json:"optionId"`
	Comment    *string `json:"comment"`
}

type castVoteResponse struct {
	Vote     voteResponse     `json:"vote"`
	Decision decisionResponse `json:"decision"`
}

// Cast handles POST /votes.
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	var req castVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := vote.CastVoteInput{Comment: req.Comment}
	if req.DecisionID != "" {
		id, err := uuid.Parse(req.DecisionID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid decision id")
			return
		}
		input.DecisionID = id
	}
	if req.OptionID != "" {
		id, err := uuid.Parse(req.OptionID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid option id")
			return
		}
		input.OptionID = id
	}

	v, err := h.svc.Cast(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	detail, err := h.decisions.Get(r.Context(), v.DecisionID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, castVoteResponse{
		Vote:     toVoteResponse(v),
		Decision: toDecisionResponse(detail.Decision),
	})
}

// Retract handles DELETE /votes/{id}.
func (h *VoteHandler) Retract(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid vote id")
		return
	}

	if err := h.svc.Retract(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
