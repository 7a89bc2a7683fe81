package decision

import (
	"context"

	"github.com/google/uuid"

	"github.com/consejoapp/consejo-backend/internal/domain"
)

var (
	_ decisionRepo = &decisionRepoMock{}
	_ voteRepo     = &voteRepoMock{}
	_ reputation   = &reputationMock{}
	_ txManager    = &txManagerMock{}
)

type decisionRepoMock struct {
	CreateFunc       func(ctx context.Context, d *domain.Decision, optionTexts []string) (*domain.Decision, error)
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Decision, error)
	ListFunc         func(ctx context.Context, f domain.DecisionFilter) ([]*domain.Decision, int, error)
	ListByAuthorFunc func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Decision, int, error)
	ListVotedByFunc  func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Decision, int, error)
	UpdateStatusFunc func(ctx context.Context, id uuid.UUID, status domain.DecisionStatus, finalOptionID *uuid.UUID) error
	MarkExpiredFunc  func(ctx context.Context, id uuid.UUID) error
	DeleteFunc       func(ctx context.Context, id uuid.UUID) error

	markExpiredCalls []uuid.UUID
}

func (m *decisionRepoMock) Create(ctx context.Context, d *domain.Decision, optionTexts []string) (*domain.Decision, error) {
	return m.CreateFunc(ctx, d, optionTexts)
}

func (m *decisionRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Decision, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *decisionRepoMock) List(ctx context.Context, f domain.DecisionFilter) ([]*domain.Decision, int, error) {
	return m.ListFunc(ctx, f)
}

func (m *decisionRepoMock) ListByAuthor(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Decision, int, error) {
	return m.ListByAuthorFunc(ctx, userID, limit, offset)
}

func (m *decisionRepoMock) ListVotedBy(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Decision, int, error) {
	return m.ListVotedByFunc(ctx, userID, limit, offset)
}

func (m *decisionRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DecisionStatus, finalOptionID *uuid.UUID) error {
	return m.UpdateStatusFunc(ctx, id, status, finalOptionID)
}

func (m *decisionRepoMock) MarkExpired(ctx context.Context, id uuid.UUID) error {
	m.markExpiredCalls = append(m.markExpiredCalls, id)
	return m.MarkExpiredFunc(ctx, id)
}

func (m *decisionRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

type voteRepoMock struct {
	GetByVoterAndDecisionFunc func(ctx context.Context, voterID, decisionID uuid.UUID) (*domain.Vote, error)
}

func (m *voteRepoMock) GetByVoterAndDecision(ctx context.Context, voterID, decisionID uuid.UUID) (*domain.Vote, error) {
	return m.GetByVoterAndDecisionFunc(ctx, voterID, decisionID)
}

type reputationMock struct {
	AwardDecisionCreatedFunc func(ctx context.Context, userID uuid.UUID) error

	awardCalls int
}

func (m *reputationMock) AwardDecisionCreated(ctx context.Context, userID uuid.UUID) error {
	m.awardCalls++
	return m.AwardDecisionCreatedFunc(ctx, userID)
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}
