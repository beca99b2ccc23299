package model

import "time"

// Editable result fields accepted by the review store.
const (
	FieldTranscribedText = "transcribed_text"
	FieldManualCorrect   = "manual_correct"
)

// TranscriptionResult is the reviewable row for one trial. Created by the
// transcription runner, mutated only through reviewer edits.
type TranscriptionResult struct {
	Key          TrialKey
	AudioPath    string
	TargetPhrase string
	// TranscribedText is the current hypothesis, possibly reviewer-edited.
	TranscribedText string
	// OriginalTranscription is the model output as first recorded, kept for
	// change tracking when a reviewer edits the text.
	OriginalTranscription string
	// SimilarityScore is in [0,1]; 1.0 means normalized equality with the
	// target phrase.
	SimilarityScore float64
	// ManualCorrect is the reviewer's correctness override.
	ManualCorrect bool
	ErrorMessage  string
	LastEdited    time.Time
}

// Failed reports whether the trial could not be transcribed.
func (r TranscriptionResult) Failed() bool {
	return r.ErrorMessage != ""
}

// ParticipantResultSet is the ordered result table for one participant,
// backed by one results CSV. Rows keep metadata-file order.
type ParticipantResultSet struct {
	ParticipantID string
	Results       []TranscriptionResult
}

// Find returns a pointer to the row with the given key, or nil.
func (s *ParticipantResultSet) Find(key TrialKey) *TranscriptionResult {
	for i := range s.Results {
		if s.Results[i].Key == key {
			return &s.Results[i]
		}
	}
	return nil
}
