package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/consejoapp/consejo-backend/internal/domain"
	"github.com/consejoapp/consejo-backend/internal/service/comment"
)

// commentService defines the minimal interface needed by CommentHandler.
type commentService interface {
	Post(ctx context.Context, input comment.PostCommentInput) (*domain.Comment, error)
	List(ctx context.Context, decisionID uuid.UUID, page int) (*comment.Page, error)
}

// CommentHandler serves comment REST endpoints.
type CommentHandler struct {
	svc commentService
	log *slog.Logger
}

// NewCommentHandler creates a CommentHandler.
func NewCommentHandler(svc commentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{svc: svc, log: logger.With("handler", "comment")}
}

type postCommentRequest struct {
	Content string `json:"content"`
}

type commentPageResponse struct {
	Comments []commentResponse `json:"comments"`
	pageMeta
}

// Post handles POST /decisions/{id}/comments.
func (h *CommentHandler) Post(w http.ResponseWriter, r *http.Request) {
	decisionID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid decision id")
		return
	}

	var req postCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.svc.Post(r.Context(), comment.PostCommentInput{
		DecisionID: decisionID,
		Content:    req.Content,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCommentResponse(c))
}

// List handles GET /decisions/{id}/comments.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	decisionID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid decision id")
		return
	}

	page, err := h.svc.List(r.Context(), decisionID, queryPage(r))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	comments := make([]commentResponse, len(page.Comments))
	for n, c := range page.Comments {
		comments[n] = toCommentResponse(c)
	}

	writeJSON(w, http.StatusOK, commentPageResponse{
		Comments: comments,
		pageMeta: pageMeta{
			Total:   page.Total,
			Page:    page.Page,
			PerPage: page.PerPage,
		},
	})
}
