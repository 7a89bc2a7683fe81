package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/consejoapp/consejo-backend/internal/domain"
	"github.com/consejoapp/consejo-backend/internal/service/decision"
)

var _ decisionService = &decisionServiceMock{}

type decisionServiceMock struct {
	CreateFunc         func(ctx context.Context, input decision.CreateDecisionInput) (*domain.Decision, error)
	GetFunc            func(ctx context.Context, id uuid.UUID) (*decision.Detail, error)
	ListFunc           func(ctx context.Context, input decision.ListDecisionsInput) (*decision.Page, error)
	MyDecisionsFunc    func(ctx context.Context, page int) (*decision.Page, error)
	VotedDecisionsFunc func(ctx context.Context, page int) (*decision.Page, error)
	UpdateFunc         func(ctx context.Context, input decision.UpdateDecisionInput) (*domain.Decision, error)
	DeleteFunc         func(ctx context.Context, id uuid.UUID) error
}

func (m *decisionServiceMock) Create(ctx context.Context, input decision.CreateDecisionInput) (*domain.Decision, error) {
	return m.CreateFunc(ctx, input)
}

func (m *decisionServiceMock) Get(ctx context.Context, id uuid.UUID) (*decision.Detail, error) {
	return m.GetFunc(ctx, id)
}

func (m *decisionServiceMock) List(ctx context.Context, input decision.ListDecisionsInput) (*decision.Page, error) {
	return m.ListFunc(ctx, input)
}

func (m *decisionServiceMock) MyDecisions(ctx context.Context, page int) (*decision.Page, error) {
	return m.MyDecisionsFunc(ctx, page)
}

func (m *decisionServiceMock) VotedDecisions(ctx context.Context, page int) (*decision.Page, error) {
	return m.VotedDecisionsFunc(ctx, page)
}

func (m *decisionServiceMock) Update(ctx context.Context, input decision.UpdateDecisionInput) (*domain.Decision, error) {
	return m.UpdateFunc(ctx, input)
}

func (m *decisionServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleDecision() *domain.Decision {
	authorID := uuid.New()
	return &domain.Decision{
		ID:        uuid.New(),
		AuthorID:  authorID,
		Title:     "Take the offer?",
		Context:   "Remote role, smaller company, better pay.",
		Type:      domain.TypeCareer,
		Status:    domain.StatusOpen,
		ExpiresAt: time.Now().Add(48 * time.Hour),
		Options: []domain.Option{
			{ID: uuid.New(), Text: "Take it", VotesCount: 3},
			{ID: uuid.New(), Text: "Stay put", VotesCount: 1},
		},
		Author:     &domain.User{ID: authorID, Username: "consejera", Email: "author@example.com"},
		TotalVotes: 4,
		CreatedAt:  time.Now(),
	}
}

func TestDecisionCreate_HappyPath(t *testing.T) {
	t.Parallel()

	d := sampleDecision()
	svc := &decisionServiceMock{
		CreateFunc: func(ctx context.Context, input decision.CreateDecisionInput) (*domain.Decision, error) {
			if input.Title != "Take the offer?" {
				t.Errorf("title: got %q", input.Title)
			}
			if len(input.Options) != 2 {
				t.Errorf("options: got %d", len(input.Options))
			}
			return d, nil
		},
	}
	h := NewDecisionHandler(svc, testLogger())

	body := `{"title":"Take the offer?","context":"ctx","type":"career","expiresAt":"2026-12-01T00:00:00Z","options":["Take it","Stay put"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/decisions", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp decisionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != d.ID.String() {
		t.Errorf("id: got %q, want %q", resp.ID, d.ID)
	}
	if len(resp.Options) != 2 {
		t.Fatalf("options: got %d", len(resp.Options))
	}
	if resp.Options[0].Percentage != 75.0 {
		t.Errorf("percentage: got %v, want 75", resp.Options[0].Percentage)
	}
	if resp.Author == nil || resp.Author.Username != "consejera" {
		t.Errorf("author should be included for non-anonymous decisions")
	}
	if resp.Author.Email != "" {
		t.Errorf("author email must not leak, got %q", resp.Author.Email)
	}
}

func TestDecisionCreate_InvalidBody(t *testing.T) {
	t.Parallel()

	h := NewDecisionHandler(&decisionServiceMock{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/decisions", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestDecisionCreate_ValidationError(t *testing.T) {
	t.Parallel()

	svc := &decisionServiceMock{
		CreateFunc: func(ctx context.Context, input decision.CreateDecisionInput) (*domain.Decision, error) {
			return nil, domain.NewValidationError("title", "required")
		},
	}
	h := NewDecisionHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/decisions", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Fields["title"] != "required" {
		t.Errorf("fields: got %v", resp.Fields)
	}
}

func TestDecisionGet_HappyPath(t *testing.T) {
	t.Parallel()

	d := sampleDecision()
	viewerVote := &domain.Vote{
		ID:         uuid.New(),
		DecisionID: d.ID,
		OptionID:   d.Options[0].ID,
	}
	svc := &decisionServiceMock{
		GetFunc: func(ctx context.Context, id uuid.UUID) (*decision.Detail, error) {
			if id != d.ID {
				t.Errorf("id: got %s, want %s", id, d.ID)
			}
			return &decision.Detail{Decision: d, ViewerVote: viewerVote}, nil
		},
	}
	h := NewDecisionHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/decisions/"+d.ID.String(), nil)
	req.SetPathValue("id", d.ID.String())
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp decisionDetailResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ViewerVote == nil || resp.ViewerVote.OptionID != d.Options[0].ID.String() {
		t.Errorf("viewer vote missing or wrong: %+v", resp.ViewerVote)
	}
}

func TestDecisionGet_AnonymousHidesAuthor(t *testing.T) {
	t.Parallel()

	d := sampleDecision()
	d.IsAnonymous = true
	svc := &decisionServiceMock{
		GetFunc: func(ctx context.Context, id uuid.UUID) (*decision.Detail, error) {
			return &decision.Detail{Decision: d}, nil
		},
	}
	h := NewDecisionHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/decisions/"+d.ID.String(), nil)
	req.SetPathValue("id", d.ID.String())
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	var resp decisionDetailResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Author != nil {
		t.Errorf("anonymous decision must not expose its author, got %+v", resp.Author)
	}
	if !resp.IsAnonymous {
		t.Error("isAnonymous flag should be set")
	}
}

func TestDecisionGet_InvalidID(t *testing.T) {
	t.Parallel()

	h := NewDecisionHandler(&decisionServiceMock{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/decisions/not-a-uuid", nil)
	req.SetPathValue("id", "not-a-uuid")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestDecisionGet_NotFound(t *testing.T) {
	t.Parallel()

	svc := &decisionServiceMock{
		GetFunc: func(ctx context.Context, id uuid.UUID) (*decision.Detail, error) {
			return nil, domain.ErrNotFound
		},
	}
	h := NewDecisionHandler(svc, testLogger())

	id := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/decisions/"+id, nil)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestDecisionList_PassesQueryParams(t *testing.T) {
	t.Parallel()

	svc := &decisionServiceMock{
		ListFunc: func(ctx context.Context, input decision.ListDecisionsInput) (*decision.Page, error) {
			if input.Type == nil || *input.Type != domain.TypeCareer {
				t.Errorf("type filter not passed through: %+v", input.Type)
			}
			if input.Sort != domain.SortMostVoted {
				t.Errorf("sort: got %q", input.Sort)
			}
			if input.Page != 3 {
				t.Errorf("page: got %d", input.Page)
			}
			return &decision.Page{Page: 3, PerPage: domain.DecisionPageSize}, nil
		},
	}
	h := NewDecisionHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/decisions?type=career&filter=most_voted&page=3", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp decisionPageResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Page != 3 || resp.PerPage != domain.DecisionPageSize {
		t.Errorf("page meta: %+v", resp.pageMeta)
	}
	if resp.Decisions == nil {
		t.Error("decisions should encode as an empty array, not null")
	}
}

func TestDecisionUpdate_MarkDecided(t *testing.T) {
	t.Parallel()

	d := sampleDecision()
	finalID := d.Options[0].ID
	svc := &decisionServiceMock{
		UpdateFunc: func(ctx context.Context, input decision.UpdateDecisionInput) (*domain.Decision, error) {
			if input.Status != domain.StatusDecided {
				t.Errorf("status: got %q", input.Status)
			}
			if input.FinalOptionID == nil || *input.FinalOptionID != finalID {
				t.Errorf("final option: got %v", input.FinalOptionID)
			}
			d.Status = domain.StatusDecided
			d.FinalOptionID = &finalID
			return d, nil
		},
	}
	h := NewDecisionHandler(svc, testLogger())

	body := `{"status":"decided","finalOptionId":"` + finalID.String() + `"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/decisions/"+d.ID.String(), strings.NewReader(body))
	req.SetPathValue("id", d.ID.String())
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp decisionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != string(domain.StatusDecided) {
		t.Errorf("status: got %q", resp.Status)
	}
	if resp.FinalOptionID == nil || *resp.FinalOptionID != finalID.String() {
		t.Errorf("final option id: got %v", resp.FinalOptionID)
	}
}

func TestDecisionUpdate_Forbidden(t *testing.T) {
	t.Parallel()

	svc := &decisionServiceMock{
		UpdateFunc: func(ctx context.Context, input decision.UpdateDecisionInput) (*domain.Decision, error) {
			return nil, domain.ErrForbidden
		},
	}
	h := NewDecisionHandler(svc, testLogger())

	id := uuid.New().String()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/decisions/"+id, strings.NewReader(`{"status":"archived"}`))
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
}

func TestDecisionDelete_NoContent(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	var deleted uuid.UUID
	svc := &decisionServiceMock{
		DeleteFunc: func(ctx context.Context, got uuid.UUID) error {
			deleted = got
			return nil
		},
	}
	h := NewDecisionHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/decisions/"+id.String(), nil)
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if deleted != id {
		t.Errorf("deleted: got %s, want %s", deleted, id)
	}
}
