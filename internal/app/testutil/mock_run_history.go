package testutil

import (
	"sync"
	"time"

	"audiocheck/internal/app/model"
	"audiocheck/internal/app/repository"
)

// MockRunHistoryDAO is an in-memory repository.RunHistoryDAO.
type MockRunHistoryDAO struct {
	mu sync.Mutex

	Records     []repository.RunRecord
	RecordError error
	CloseError  error
	closeCalled bool
}

// NewMockRunHistoryDAO creates an empty in-memory run history.
func NewMockRunHistoryDAO() *MockRunHistoryDAO {
	return &MockRunHistoryDAO{}
}

// WithRecordError makes RecordRun fail.
func (m *MockRunHistoryDAO) WithRecordError(err error) *MockRunHistoryDAO {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordError = err
	return m
}

// WithCloseError makes Close fail.
func (m *MockRunHistoryDAO) WithCloseError(err error) *MockRunHistoryDAO {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseError = err
	return m
}

func (m *MockRunHistoryDAO) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeCalled = true
	return m.CloseError
}

// WasCloseCalled reports whether Close was invoked.
func (m *MockRunHistoryDAO) WasCloseCalled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCalled
}

func (m *MockRunHistoryDAO) RecordRun(participantID string, key model.TrialKey, audioPath, targetPhrase, hypothesis string,
	score float64, runAt time.Time, hasError int, errorMessage string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.RecordError != nil {
		return m.RecordError
	}

	m.Records = append(m.Records, repository.RunRecord{
		ID:            len(m.Records) + 1,
		ParticipantID: participantID,
		Block:         key.Block,
		Trial:         key.Trial,
		AudioPath:     audioPath,
		TargetPhrase:  targetPhrase,
		Hypothesis:    hypothesis,
		Score:         score,
		RunAt:         runAt,
		HasError:      hasError,
		ErrorMessage:  errorMessage,
	})
	return nil
}

func (m *MockRunHistoryDAO) GetAllByParticipant(participantID string) ([]repository.RunRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var records []repository.RunRecord
	for _, r := range m.Records {
		if r.ParticipantID == participantID {
			records = append(records, r)
		}
	}
	return records, nil
}

func (m *MockRunHistoryDAO) GetStats(participantID string) (*repository.RunStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := &repository.RunStats{ParticipantID: participantID}
	var sum float64
	var scored int
	for _, r := range m.Records {
		if r.ParticipantID != participantID {
			continue
		}
		stats.TotalRuns++
		if r.HasError != 0 {
			stats.FailedRuns++
			continue
		}
		sum += r.Score
		scored++
	}
	if scored > 0 {
		stats.MeanScore = sum / float64(scored)
	}
	return stats, nil
}

var _ repository.RunHistoryDAO = (*MockRunHistoryDAO)(nil)
