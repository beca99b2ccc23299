// Package testutil provides shared mocks for the transcription and
// persistence interfaces.
package testutil

import (
	"sync"

	"audiocheck/internal/app/asr"
)

// MockTranscriber is a configurable implementation of asr.Transcriber for
// tests: per-file responses and errors plus call tracking.
type MockTranscriber struct {
	mu sync.Mutex

	DefaultResponse string
	DefaultError    error
	ResponseMap     map[string]string
	ErrorMap        map[string]error

	callCount int
	calls     []string
}

// NewMockTranscriber creates a MockTranscriber with a neutral default response.
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{
		DefaultResponse: "mock transcription",
		ResponseMap:     make(map[string]string),
		ErrorMap:        make(map[string]error),
	}
}

// WithDefaultResponse sets the response returned for unconfigured files.
func (m *MockTranscriber) WithDefaultResponse(response string) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DefaultResponse = response
	return m
}

// WithResponse sets the response for a specific file path.
func (m *MockTranscriber) WithResponse(filePath, response string) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResponseMap[filePath] = response
	return m
}

// WithError sets the error returned for a specific file path.
func (m *MockTranscriber) WithError(filePath string, err error) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorMap[filePath] = err
	return m
}

// WithDefaultError sets the error returned for every unconfigured file.
func (m *MockTranscriber) WithDefaultError(err error) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DefaultError = err
	return m
}

// Transcript implements asr.Transcriber.
func (m *MockTranscriber) Transcript(inputFilePath string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callCount++
	m.calls = append(m.calls, inputFilePath)

	if err, ok := m.ErrorMap[inputFilePath]; ok {
		return "", err
	}
	if m.DefaultError != nil {
		return "", m.DefaultError
	}
	if response, ok := m.ResponseMap[inputFilePath]; ok {
		return response, nil
	}
	return m.DefaultResponse, nil
}

// GetCallCount returns the number of Transcript calls made.
func (m *MockTranscriber) GetCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// WasCalledWith reports whether Transcript was invoked for filePath.
func (m *MockTranscriber) WasCalledWith(filePath string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, call := range m.calls {
		if call == filePath {
			return true
		}
	}
	return false
}

var _ asr.Transcriber = (*MockTranscriber)(nil)
