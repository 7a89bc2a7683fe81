package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/consejoapp/consejo-backend/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// errorResponse is the body for validation failures, with per-field details.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// voteErrorMessages maps vote precondition failures to user-facing text.
var voteErrorMessages = []struct {
	err     error
	message string
}{
	{domain.ErrInvalidOption, "Invalid option for this decision"},
	{domain.ErrDecisionClosed, "Decision is not open for voting"},
	{domain.ErrDecisionExpired, "Decision has expired"},
	{domain.ErrSelfVote, "You cannot vote on your own decision"},
	{domain.ErrDuplicateVote, "You have already voted on this decision"},
}

// handleError translates service errors into HTTP responses. All handlers
// route their non-decode errors through here so the status mapping stays
// in one place.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		fields := make(map[string]string, len(vErr.Errors))
		for _, fe := range vErr.Errors {
			fields[fe.Field] = fe.Message
		}
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  "validation failed",
			Fields: fields,
		})
		return
	}

	for _, ve := range voteErrorMessages {
		if errors.Is(err, ve.err) {
			writeError(w, http.StatusUnprocessableEntity, ve.message)
			return
		}
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// pathID parses the {id} path segment as a UUID.
func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue("id"))
}

// queryPage reads the page query parameter, defaulting to 1.
func queryPage(r *http.Request) int {
	v := r.URL.Query().Get("page")
	if v == "" {
		return 1
	}
	page, err := strconv.Atoi(v)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// pageMeta is the pagination envelope shared by list responses.
type pageMeta struct {
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"perPage"`
}
