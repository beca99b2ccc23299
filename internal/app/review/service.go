// Package review implements the reviewer-facing store operations: load a
// participant's result table and apply single-field edits with synchronous
// durable persistence (autosave-on-change).
package review

import (
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	apperrors "audiocheck/internal/app/errors"
	"audiocheck/internal/app/model"
	"audiocheck/internal/app/repository"
	"audiocheck/internal/app/text"
)

// Service mediates reviewer edits against the result store. A single active
// reviewer per participant is assumed; the mutex only serializes in-process
// callers, there is no cross-process locking.
type Service struct {
	store  repository.ResultStore
	logger *zap.SugaredLogger
	clock  func() time.Time
	mu     sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the edit timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// NewService creates a review Service backed by store.
func NewService(store repository.ResultStore, logger *zap.SugaredLogger, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: logger,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the participant's result set. A participant with no results
// file yields an empty set.
func (s *Service) Load(participantID string) (*model.ParticipantResultSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Load(participantID)
}

// ApplyEdit applies one field edit to one row and persists the table before
// returning. Editing the hypothesis text recomputes the similarity score
// against the target phrase and stamps last_edited; the original model
// output is preserved for change tracking. A write failure is returned to
// the caller - a silently lost correction is the worst-case outcome here.
func (s *Service) ApplyEdit(participantID string, key model.TrialKey, field, value string) (*model.TranscriptionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.store.Load(participantID)
	if err != nil {
		return nil, err
	}

	result := set.Find(key)
	if result == nil {
		return nil, apperrors.Wrapf(apperrors.ErrUnknownTrial, "%s for participant %s", key, participantID)
	}

	switch field {
	case model.FieldTranscribedText:
		result.TranscribedText = value
		result.SimilarityScore = text.Score(value, result.TargetPhrase)
	case model.FieldManualCorrect:
		correct, err := strconv.ParseBool(value)
		if err != nil {
			return nil, apperrors.Wrapf(apperrors.ErrInvalidValue, "manual_correct wants a boolean, got %q", value)
		}
		result.ManualCorrect = correct
	default:
		return nil, apperrors.Wrapf(apperrors.ErrUnknownField, "%q", field)
	}
	result.LastEdited = s.clock()

	if err := s.store.Save(set); err != nil {
		return nil, err
	}

	s.logger.Infow("edit saved",
		"participant", participantID,
		"block", key.Block,
		"trial", key.Trial,
		"field", field)

	edited := *result
	return &edited, nil
}
