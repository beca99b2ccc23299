package repository

import (
	"time"

	"audiocheck/internal/app/model"
)

// ResultStore persists one result table per participant. Implementations
// must make every write durable before returning: a reviewer's correction
// lost on crash is the worst-case outcome this design avoids.
type ResultStore interface {
	// Load returns the participant's result set. A participant without a
	// results file yields an empty set, not an error.
	Load(participantID string) (*model.ParticipantResultSet, error)

	// Save replaces the participant's result table wholesale. Used by the
	// transcription runner; overwrites any reviewer edits (documented
	// rerun behavior).
	Save(set *model.ParticipantResultSet) error

	// Exists reports whether a results file has been written for the
	// participant.
	Exists(participantID string) (bool, error)
}

// RunHistoryDAO records one row per trial per transcription run, in the
// style of an append-only conversion log. Feeds export and stats.
type RunHistoryDAO interface {
	Close() error

	RecordRun(participantID string, key model.TrialKey, audioPath, targetPhrase, hypothesis string,
		score float64, runAt time.Time, hasError int, errorMessage string) error

	GetAllByParticipant(participantID string) ([]RunRecord, error)

	GetStats(participantID string) (*RunStats, error)
}

// RunRecord is one row of the run history table.
type RunRecord struct {
	ID            int
	ParticipantID string
	Block         string
	Trial         string
	AudioPath     string
	TargetPhrase  string
	Hypothesis    string
	Score         float64
	RunAt         time.Time
	HasError      int
	ErrorMessage  string
}

// RunStats summarizes a participant's run history.
type RunStats struct {
	ParticipantID string
	TotalRuns     int
	FailedRuns    int
	MeanScore     float64
}
