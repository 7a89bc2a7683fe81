package vote

import (
	"context"

	"github.com/google/uuid"

	"github.com/consejoapp/consejo-backend/internal/domain"
)

var (
	_ voteRepo     = &voteRepoMock{}
	_ decisionRepo = &decisionRepoMock{}
	_ reputation   = &reputationMock{}
	_ txManager    = &txManagerMock{}
)

type voteRepoMock struct {
	CreateFunc   func(ctx context.Context, v *domain.Vote) (*domain.Vote, error)
	GetByIDFunc  func(ctx context.Context, id uuid.UUID) (*domain.Vote, error)
	HasVotedFunc func(ctx context.Context, voterID, decisionID uuid.UUID) (bool, error)
	DeleteFunc   func(ctx context.Context, id uuid.UUID) error

	createCalls int
	deleteCalls int
}

func (m *voteRepoMock) Create(ctx context.Context, v *domain.Vote) (*domain.Vote, error) {
	m.createCalls++
	return m.CreateFunc(ctx, v)
}

func (m *voteRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vote, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *voteRepoMock) HasVoted(ctx context.Context, voterID, decisionID uuid.UUID) (bool, error) {
	return m.HasVotedFunc(ctx, voterID, decisionID)
}

func (m *voteRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	m.deleteCalls++
	return m.DeleteFunc(ctx, id)
}

type decisionRepoMock struct {
	GetByIDFunc              func(ctx context.Context, id uuid.UUID) (*domain.Decision, error)
	GetOptionFunc            func(ctx context.Context, optionID uuid.UUID) (*domain.Option, error)
	MarkExpiredFunc          func(ctx context.Context, id uuid.UUID) error
	IncrementOptionVotesFunc func(ctx context.Context, optionID uuid.UUID) error
	DecrementOptionVotesFunc func(ctx context.Context, optionID uuid.UUID) error

	markExpiredCalls []uuid.UUID
	incrementCalls   []uuid.UUID
	decrementCalls   []uuid.UUID
}

func (m *decisionRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Decision, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *decisionRepoMock) GetOption(ctx context.Context, optionID uuid.UUID) (*domain.Option, error) {
	return m.GetOptionFunc(ctx, optionID)
}

func (m *decisionRepoMock) MarkExpired(ctx context.Context, id uuid.UUID) error {
	m.markExpiredCalls = append(m.markExpiredCalls, id)
	return m.MarkExpiredFunc(ctx, id)
}

func (m *decisionRepoMock) IncrementOptionVotes(ctx context.Context, optionID uuid.UUID) error {
	m.incrementCalls = append(m.incrementCalls, optionID)
	return m.IncrementOptionVotesFunc(ctx, optionID)
}

func (m *decisionRepoMock) DecrementOptionVotes(ctx context.Context, optionID uuid.UUID) error {
	m.decrementCalls = append(m.decrementCalls, optionID)
	return m.DecrementOptionVotesFunc(ctx, optionID)
}

type reputationMock struct {
	AwardVoteCastFunc  func(ctx context.Context, userID uuid.UUID) error
	RevertVoteCastFunc func(ctx context.Context, userID uuid.UUID) error

	awardCalls  int
	revertCalls int
}

func (m *reputationMock) AwardVoteCast(ctx context.Context, userID uuid.UUID) error {
	m.awardCalls++
	return m.AwardVoteCastFunc(ctx, userID)
}

func (m *reputationMock) RevertVoteCast(ctx context.Context, userID uuid.UUID) error {
	m.revertCalls++
	return m.RevertVoteCastFunc(ctx, userID)
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
