package ingest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/kelime/kelime-backend/internal/domain"
)

var _ wordRepo = &wordRepoMock{}

type wordRepoMock struct {
	UpsertBatchFunc      func(ctx context.Context, counts map[string]int, order []string) ([]domain.WordUpsert, error)
	UpdateEnrichmentFunc func(ctx context.Context, id uuid.UUID, e domain.WordEnrichment) error

	mu    sync.Mutex
	calls struct {
		UpsertBatch      []map[string]int
		UpdateEnrichment []uuid.UUID
	}
}

func (m *wordRepoMock) UpsertBatch(ctx context.Context, counts map[string]int, order []string) ([]domain.WordUpsert, error) {
	if m.UpsertBatchFunc == nil {
		panic("wordRepoMock.UpsertBatchFunc is nil")
	}
	m.mu.Lock()
	m.calls.UpsertBatch = append(m.calls.UpsertBatch, counts)
	m.mu.Unlock()
	return m.UpsertBatchFunc(ctx, counts, order)
}

func (m *wordRepoMock) UpdateEnrichment(ctx context.Context, id uuid.UUID, e domain.WordEnrichment) error {
	if m.UpdateEnrichmentFunc == nil {
		panic("wordRepoMock.UpdateEnrichmentFunc is nil")
	}
	m.mu.Lock()
	m.calls.UpdateEnrichment = append(m.calls.UpdateEnrichment, id)
	m.mu.Unlock()
	return m.UpdateEnrichmentFunc(ctx, id, e)
}

func (m *wordRepoMock) UpsertBatchCalls() []map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.UpsertBatch
}

func (m *wordRepoMock) UpdateEnrichmentCalls() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.UpdateEnrichment
}

var _ knowledgeRepo = &knowledgeRepoMock{}

type knowledgeRepoMock struct {
	UpsertMergePriorityFunc func(ctx context.Context, userID uuid.UUID, items []domain.WordPriority) ([]domain.KnowledgeUpsert, error)

	mu    sync.Mutex
	calls struct {
		UpsertMergePriority [][]domain.WordPriority
	}
}

func (m *knowledgeRepoMock) UpsertMergePriority(ctx context.Context, userID uuid.UUID, items []domain.WordPriority) ([]domain.KnowledgeUpsert, error) {
	if m.UpsertMergePriorityFunc == nil {
		panic("knowledgeRepoMock.UpsertMergePriorityFunc is nil")
	}
	m.mu.Lock()
	m.calls.UpsertMergePriority = append(m.calls.UpsertMergePriority, items)
	m.mu.Unlock()
	return m.UpsertMergePriorityFunc(ctx, userID, items)
}

func (m *knowledgeRepoMock) UpsertMergePriorityCalls() [][]domain.WordPriority {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.UpsertMergePriority
}

var _ sourceRepo = &sourceRepoMock{}

type sourceRepoMock struct {
	CreateFunc      func(ctx context.Context, src *domain.Source) error
	GetByIDFunc     func(ctx context.Context, userID, id uuid.UUID) (*domain.Source, error)
	ListByUserFunc  func(ctx context.Context, userID uuid.UUID, filter domain.SourceFilter) ([]*domain.Source, error)
	DeleteFunc      func(ctx context.Context, userID, id uuid.UUID) error
	SetAnalysisFunc func(ctx context.Context, id uuid.UUID, a domain.SourceAnalysis) error
	LinkWordsFunc   func(ctx context.Context, sourceID uuid.UUID, links []domain.WordSourceLink) error

	mu    sync.Mutex
	calls struct {
		Create      []*domain.Source
		ListByUser  []domain.SourceFilter
		SetAnalysis []domain.SourceAnalysis
		LinkWords   [][]domain.WordSourceLink
	}
}

func (m *sourceRepoMock) Create(ctx context.Context, src *domain.Source) error {
	if m.CreateFunc == nil {
		panic("sourceRepoMock.CreateFunc is nil")
	}
	m.mu.Lock()
	m.calls.Create = append(m.calls.Create, src)
	m.mu.Unlock()
	return m.CreateFunc(ctx, src)
}

func (m *sourceRepoMock) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Source, error) {
	if m.GetByIDFunc == nil {
		panic("sourceRepoMock.GetByIDFunc is nil")
	}
	return m.GetByIDFunc(ctx, userID, id)
}

func (m *sourceRepoMock) ListByUser(ctx context.Context, userID uuid.UUID, filter domain.SourceFilter) ([]*domain.Source, error) {
	if m.ListByUserFunc == nil {
		panic("sourceRepoMock.ListByUserFunc is nil")
	}
	m.mu.Lock()
	m.calls.ListByUser = append(m.calls.ListByUser, filter)
	m.mu.Unlock()
	return m.ListByUserFunc(ctx, userID, filter)
}

func (m *sourceRepoMock) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("sourceRepoMock.DeleteFunc is nil")
	}
	return m.DeleteFunc(ctx, userID, id)
}

func (m *sourceRepoMock) SetAnalysis(ctx context.Context, id uuid.UUID, a domain.SourceAnalysis) error {
	if m.SetAnalysisFunc == nil {
		panic("sourceRepoMock.SetAnalysisFunc is nil")
	}
	m.mu.Lock()
	m.calls.SetAnalysis = append(m.calls.SetAnalysis, a)
	m.mu.Unlock()
	return m.SetAnalysisFunc(ctx, id, a)
}

func (m *sourceRepoMock) LinkWords(ctx context.Context, sourceID uuid.UUID, links []domain.WordSourceLink) error {
	if m.LinkWordsFunc == nil {
		panic("sourceRepoMock.LinkWordsFunc is nil")
	}
	m.mu.Lock()
	m.calls.LinkWords = append(m.calls.LinkWords, links)
	m.mu.Unlock()
	return m.LinkWordsFunc(ctx, sourceID, links)
}

func (m *sourceRepoMock) CreateCalls() []*domain.Source {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Create
}

func (m *sourceRepoMock) ListByUserCalls() []domain.SourceFilter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.ListByUser
}

func (m *sourceRepoMock) SetAnalysisCalls() []domain.SourceAnalysis {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.SetAnalysis
}

func (m *sourceRepoMock) LinkWordsCalls() [][]domain.WordSourceLink {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.LinkWords
}

var _ profileRepo = &profileRepoMock{}

type profileRepoMock struct {
	GetOrCreateFunc func(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error)
}

func (m *profileRepoMock) GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	if m.GetOrCreateFunc == nil {
		panic("profileRepoMock.GetOrCreateFunc is nil")
	}
	return m.GetOrCreateFunc(ctx, userID)
}

var _ enricher = &enricherMock{}

type enricherMock struct {
	FetchFunc func(ctx context.Context, word string) (*domain.WordEnrichment, error)

	mu    sync.Mutex
	calls struct {
		Fetch []string
	}
}

func (m *enricherMock) Fetch(ctx context.Context, word string) (*domain.WordEnrichment, error) {
	if m.FetchFunc == nil {
		panic("enricherMock.FetchFunc is nil")
	}
	m.mu.Lock()
	m.calls.Fetch = append(m.calls.Fetch, word)
	m.mu.Unlock()
	return m.FetchFunc(ctx, word)
}

func (m *enricherMock) FetchCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Fetch
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
