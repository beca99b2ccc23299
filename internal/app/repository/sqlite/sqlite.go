// Package sqlite keeps an append-only history of transcription runs in a
// local sqlite database, one row per trial per run. The per-participant CSV
// stays the review artifact; this table feeds export and stats.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	apperrors "audiocheck/internal/app/errors"
	"audiocheck/internal/app/model"
	"audiocheck/internal/app/repository"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS run_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	participant_id TEXT NOT NULL,
	block TEXT NOT NULL,
	trial TEXT NOT NULL,
	audio_path TEXT NOT NULL,
	target_phrase TEXT NOT NULL,
	hypothesis TEXT NOT NULL,
	score REAL NOT NULL,
	run_at TIMESTAMP NOT NULL,
	has_error INTEGER NOT NULL DEFAULT 0,
	error_message TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_run_history_participant ON run_history(participant_id);
`

// DB implements repository.RunHistoryDAO on sqlite.
type DB struct {
	db *sql.DB
}

// Open opens (creating if necessary) the run history database at dbFilePath.
func Open(dbFilePath string) (*DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc", dbFilePath))
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to open database %s", dbFilePath)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, apperrors.Wrap(err, "failed to create run_history table")
	}
	return &DB{db: db}, nil
}

// New wraps an existing connection. Used by tests.
func New(db *sql.DB) *DB {
	return &DB{db: db}
}

func (s *DB) Close() error {
	return s.db.Close()
}

// RecordRun appends one run row.
func (s *DB) RecordRun(participantID string, key model.TrialKey, audioPath, targetPhrase, hypothesis string,
	score float64, runAt time.Time, hasError int, errorMessage string) error {
	insertSQL := `INSERT INTO run_history (participant_id, block, trial, audio_path, target_phrase, hypothesis, score, run_at, has_error, error_message) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`
	_, err := s.db.Exec(insertSQL, participantID, key.Block, key.Trial, audioPath, targetPhrase, hypothesis,
		score, runAt, hasError, errorMessage)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInsertFailed, err.Error())
	}
	return nil
}

// GetAllByParticipant returns the participant's run rows, newest first.
func (s *DB) GetAllByParticipant(participantID string) ([]repository.RunRecord, error) {
	sqlStr := `
		SELECT id, participant_id, block, trial, audio_path, target_phrase, hypothesis, score, run_at, has_error, error_message
		FROM run_history
		WHERE participant_id = ?
		ORDER BY run_at DESC, id DESC;`
	rows, err := s.db.Query(sqlStr, participantID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrQueryFailed, err.Error())
	}
	defer rows.Close()

	records := make([]repository.RunRecord, 0)
	for rows.Next() {
		var r repository.RunRecord
		err = rows.Scan(&r.ID, &r.ParticipantID, &r.Block, &r.Trial, &r.AudioPath, &r.TargetPhrase,
			&r.Hypothesis, &r.Score, &r.RunAt, &r.HasError, &r.ErrorMessage)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrQueryFailed, err.Error())
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrQueryFailed, err.Error())
	}
	return records, nil
}

// GetStats summarizes the participant's run history.
func (s *DB) GetStats(participantID string) (*repository.RunStats, error) {
	sqlStr := `
		SELECT COUNT(*), COALESCE(SUM(has_error), 0), COALESCE(AVG(CASE WHEN has_error = 0 THEN score END), 0)
		FROM run_history
		WHERE participant_id = ?;`
	row := s.db.QueryRow(sqlStr, participantID)

	stats := &repository.RunStats{ParticipantID: participantID}
	if err := row.Scan(&stats.TotalRuns, &stats.FailedRuns, &stats.MeanScore); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrQueryFailed, err.Error())
	}
	return stats, nil
}
