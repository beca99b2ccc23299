package testutil

import (
	"sync"

	"audiocheck/internal/app/model"
	"audiocheck/internal/app/repository"
)

// MockResultStore is an in-memory repository.ResultStore with failure
// injection for persistence-error tests.
type MockResultStore struct {
	mu sync.Mutex

	sets      map[string]*model.ParticipantResultSet
	SaveError error
	LoadError error
	saveCount int
}

// NewMockResultStore creates an empty in-memory result store.
func NewMockResultStore() *MockResultStore {
	return &MockResultStore{sets: make(map[string]*model.ParticipantResultSet)}
}

// WithSaveError makes Save fail.
func (m *MockResultStore) WithSaveError(err error) *MockResultStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveError = err
	return m
}

// WithLoadError makes Load fail.
func (m *MockResultStore) WithLoadError(err error) *MockResultStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadError = err
	return m
}

func (m *MockResultStore) Load(participantID string) (*model.ParticipantResultSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.LoadError != nil {
		return nil, m.LoadError
	}

	set, ok := m.sets[participantID]
	if !ok {
		return &model.ParticipantResultSet{ParticipantID: participantID}, nil
	}
	return copySet(set), nil
}

func (m *MockResultStore) Save(set *model.ParticipantResultSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveError != nil {
		return m.SaveError
	}

	m.saveCount++
	m.sets[set.ParticipantID] = copySet(set)
	return nil
}

func (m *MockResultStore) Exists(participantID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sets[participantID]
	return ok, nil
}

// SaveCount returns how many times Save succeeded.
func (m *MockResultStore) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveCount
}

// copySet deep-copies a result set so callers cannot mutate stored state.
func copySet(set *model.ParticipantResultSet) *model.ParticipantResultSet {
	out := &model.ParticipantResultSet{ParticipantID: set.ParticipantID}
	out.Results = append([]model.TranscriptionResult(nil), set.Results...)
	return out
}

var _ repository.ResultStore = (*MockResultStore)(nil)
