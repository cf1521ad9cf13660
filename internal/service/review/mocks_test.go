package review

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kelime/kelime-backend/internal/domain"
)

var _ knowledgeRepo = &knowledgeRepoMock{}

type knowledgeRepoMock struct {
	GetByUserWordFunc  func(ctx context.Context, userID, wordID uuid.UUID) (*domain.UserWordKnowledge, error)
	GetDueLearningFunc func(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]*domain.UserWordKnowledge, error)
	GetTopNewFunc      func(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.UserWordKnowledge, error)
	MarkLearningFunc   func(ctx context.Context, id uuid.UUID, due time.Time) error
	UpdateSRSFunc      func(ctx context.Context, id uuid.UUID, params domain.SRSUpdateParams) error
	SetStateFunc       func(ctx context.Context, userID, wordID uuid.UUID, state domain.WordState, due time.Time) (*domain.UserWordKnowledge, error)
	CountByStatusFunc  func(ctx context.Context, userID uuid.UUID) (domain.KnowledgeStatusCounts, error)
	CountDueFunc       func(ctx context.Context, userID uuid.UUID, now time.Time) (int, error)

	mu    sync.Mutex
	calls struct {
		GetByUserWord  []uuid.UUID
		GetDueLearning []int
		GetTopNew      []int
		MarkLearning   []uuid.UUID
		UpdateSRS      []domain.SRSUpdateParams
		SetState       []domain.WordState
		CountByStatus  []uuid.UUID
		CountDue       []uuid.UUID
	}
}

func (m *knowledgeRepoMock) GetByUserWord(ctx context.Context, userID, wordID uuid.UUID) (*domain.UserWordKnowledge, error) {
	if m.GetByUserWordFunc == nil {
		panic("knowledgeRepoMock.GetByUserWordFunc is nil")
	}
	m.mu.Lock()
	m.calls.GetByUserWord = append(m.calls.GetByUserWord, wordID)
	m.mu.Unlock()
	return m.GetByUserWordFunc(ctx, userID, wordID)
}

func (m *knowledgeRepoMock) GetDueLearning(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]*domain.UserWordKnowledge, error) {
	if m.GetDueLearningFunc == nil {
		panic("knowledgeRepoMock.GetDueLearningFunc is nil")
	}
	m.mu.Lock()
	m.calls.GetDueLearning = append(m.calls.GetDueLearning, limit)
	m.mu.Unlock()
	return m.GetDueLearningFunc(ctx, userID, now, limit)
}

func (m *knowledgeRepoMock) GetTopNew(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.UserWordKnowledge, error) {
	if m.GetTopNewFunc == nil {
		panic("knowledgeRepoMock.GetTopNewFunc is nil")
	}
	m.mu.Lock()
	m.calls.GetTopNew = append(m.calls.GetTopNew, limit)
	m.mu.Unlock()
	return m.GetTopNewFunc(ctx, userID, limit)
}

func (m *knowledgeRepoMock) MarkLearning(ctx context.Context, id uuid.UUID, due time.Time) error {
	if m.MarkLearningFunc == nil {
		panic("knowledgeRepoMock.MarkLearningFunc is nil")
	}
	m.mu.Lock()
	m.calls.MarkLearning = append(m.calls.MarkLearning, id)
	m.mu.Unlock()
	return m.MarkLearningFunc(ctx, id, due)
}

func (m *knowledgeRepoMock) UpdateSRS(ctx context.Context, id uuid.UUID, params domain.SRSUpdateParams) error {
	if m.UpdateSRSFunc == nil {
		panic("knowledgeRepoMock.UpdateSRSFunc is nil")
	}
	m.mu.Lock()
	m.calls.UpdateSRS = append(m.calls.UpdateSRS, params)
	m.mu.Unlock()
	return m.UpdateSRSFunc(ctx, id, params)
}

func (m *knowledgeRepoMock) SetState(ctx context.Context, userID, wordID uuid.UUID, state domain.WordState, due time.Time) (*domain.UserWordKnowledge, error) {
	if m.SetStateFunc == nil {
		panic("knowledgeRepoMock.SetStateFunc is nil")
	}
	m.mu.Lock()
	m.calls.SetState = append(m.calls.SetState, state)
	m.mu.Unlock()
	return m.SetStateFunc(ctx, userID, wordID, state, due)
}

func (m *knowledgeRepoMock) CountByStatus(ctx context.Context, userID uuid.UUID) (domain.KnowledgeStatusCounts, error) {
	if m.CountByStatusFunc == nil {
		panic("knowledgeRepoMock.CountByStatusFunc is nil")
	}
	m.mu.Lock()
	m.calls.CountByStatus = append(m.calls.CountByStatus, userID)
	m.mu.Unlock()
	return m.CountByStatusFunc(ctx, userID)
}

func (m *knowledgeRepoMock) CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	if m.CountDueFunc == nil {
		panic("knowledgeRepoMock.CountDueFunc is nil")
	}
	m.mu.Lock()
	m.calls.CountDue = append(m.calls.CountDue, userID)
	m.mu.Unlock()
	return m.CountDueFunc(ctx, userID, now)
}

func (m *knowledgeRepoMock) MarkLearningCalls() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.MarkLearning
}

func (m *knowledgeRepoMock) UpdateSRSCalls() []domain.SRSUpdateParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.UpdateSRS
}

func (m *knowledgeRepoMock) GetTopNewCalls() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.GetTopNew
}

func (m *knowledgeRepoMock) SetStateCalls() []domain.WordState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.SetState
}

var _ wordRepo = &wordRepoMock{}

type wordRepoMock struct {
	GetByIDFunc   func(ctx context.Context, id uuid.UUID) (*domain.Word, error)
	GetByTextFunc func(ctx context.Context, text string) (*domain.Word, error)

	mu    sync.Mutex
	calls struct {
		GetByID   []uuid.UUID
		GetByText []string
	}
}

func (m *wordRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	if m.GetByIDFunc == nil {
		panic("wordRepoMock.GetByIDFunc is nil")
	}
	m.mu.Lock()
	m.calls.GetByID = append(m.calls.GetByID, id)
	m.mu.Unlock()
	return m.GetByIDFunc(ctx, id)
}

func (m *wordRepoMock) GetByText(ctx context.Context, text string) (*domain.Word, error) {
	if m.GetByTextFunc == nil {
		panic("wordRepoMock.GetByTextFunc is nil")
	}
	m.mu.Lock()
	m.calls.GetByText = append(m.calls.GetByText, text)
	m.mu.Unlock()
	return m.GetByTextFunc(ctx, text)
}

func (m *wordRepoMock) GetByTextCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.GetByText
}

var _ profileRepo = &profileRepoMock{}

type profileRepoMock struct {
	GetOrCreateFunc     func(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error)
	SetLearnedTodayFunc func(ctx context.Context, userID uuid.UUID, count int, day time.Time) error

	mu    sync.Mutex
	calls struct {
		GetOrCreate     []uuid.UUID
		SetLearnedToday []int
	}
}

func (m *profileRepoMock) GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	if m.GetOrCreateFunc == nil {
		panic("profileRepoMock.GetOrCreateFunc is nil")
	}
	m.mu.Lock()
	m.calls.GetOrCreate = append(m.calls.GetOrCreate, userID)
	m.mu.Unlock()
	return m.GetOrCreateFunc(ctx, userID)
}

func (m *profileRepoMock) SetLearnedToday(ctx context.Context, userID uuid.UUID, count int, day time.Time) error {
	if m.SetLearnedTodayFunc == nil {
		panic("profileRepoMock.SetLearnedTodayFunc is nil")
	}
	m.mu.Lock()
	m.calls.SetLearnedToday = append(m.calls.SetLearnedToday, count)
	m.mu.Unlock()
	return m.SetLearnedTodayFunc(ctx, userID, count, day)
}

func (m *profileRepoMock) SetLearnedTodayCalls() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.SetLearnedToday
}

var _ reviewLogRepo = &reviewLogRepoMock{}

type reviewLogRepoMock struct {
	CreateFunc      func(ctx context.Context, rl *domain.ReviewLog) error
	CountTodayFunc  func(ctx context.Context, userID uuid.UUID, dayStart time.Time) (int, error)
	DailyCountsFunc func(ctx context.Context, userID uuid.UUID, from, to time.Time, timezone string) ([]domain.DayReviewCount, error)
	ReviewDaysFunc  func(ctx context.Context, userID uuid.UUID, from time.Time, timezone string) ([]time.Time, error)

	mu    sync.Mutex
	calls struct {
		Create      []*domain.ReviewLog
		CountToday  []time.Time
		DailyCounts []string
		ReviewDays  []string
	}
}

func (m *reviewLogRepoMock) Create(ctx context.Context, rl *domain.ReviewLog) error {
	if m.CreateFunc == nil {
		panic("reviewLogRepoMock.CreateFunc is nil")
	}
	m.mu.Lock()
	m.calls.Create = append(m.calls.Create, rl)
	m.mu.Unlock()
	return m.CreateFunc(ctx, rl)
}

func (m *reviewLogRepoMock) CountToday(ctx context.Context, userID uuid.UUID, dayStart time.Time) (int, error) {
	if m.CountTodayFunc == nil {
		panic("reviewLogRepoMock.CountTodayFunc is nil")
	}
	m.mu.Lock()
	m.calls.CountToday = append(m.calls.CountToday, dayStart)
	m.mu.Unlock()
	return m.CountTodayFunc(ctx, userID, dayStart)
}

func (m *reviewLogRepoMock) DailyCounts(ctx context.Context, userID uuid.UUID, from, to time.Time, timezone string) ([]domain.DayReviewCount, error) {
	if m.DailyCountsFunc == nil {
		panic("reviewLogRepoMock.DailyCountsFunc is nil")
	}
	m.mu.Lock()
	m.calls.DailyCounts = append(m.calls.DailyCounts, timezone)
	m.mu.Unlock()
	return m.DailyCountsFunc(ctx, userID, from, to, timezone)
}

func (m *reviewLogRepoMock) ReviewDays(ctx context.Context, userID uuid.UUID, from time.Time, timezone string) ([]time.Time, error) {
	if m.ReviewDaysFunc == nil {
		panic("reviewLogRepoMock.ReviewDaysFunc is nil")
	}
	m.mu.Lock()
	m.calls.ReviewDays = append(m.calls.ReviewDays, timezone)
	m.mu.Unlock()
	return m.ReviewDaysFunc(ctx, userID, from, timezone)
}

func (m *reviewLogRepoMock) CreateCalls() []*domain.ReviewLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Create
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc == nil {
		return fn(ctx)
	}
	return m.RunInTxFunc(ctx, fn)
}
