// Package csvfile stores a participant's result table as
// <id>_transcription_results.csv inside the participant folder. Every
// mutation rewrites the file through a temp file, fsyncs it and renames it
// into place, so an edit is durable before the call returns.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	apperrors "audiocheck/internal/app/errors"
	"audiocheck/internal/app/model"
)

var header = []string{
	"block",
	"trial",
	"audio_filename",
	"target_phrase",
	"transcribed_text",
	"original_transcription",
	"similarity_score",
	"manual_correct",
	"error",
	"last_edited",
}

// Store implements repository.ResultStore on per-participant CSV files.
type Store struct {
	dataRoot string
}

// NewStore creates a Store rooted at dataRoot.
func NewStore(dataRoot string) *Store {
	return &Store{dataRoot: dataRoot}
}

func (s *Store) resultsPath(participantID string) string {
	return filepath.Join(s.dataRoot, participantID, participantID+"_transcription_results.csv")
}

// Exists reports whether the participant already has a results file.
func (s *Store) Exists(participantID string) (bool, error) {
	_, err := os.Stat(s.resultsPath(participantID))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Load reads the participant's result table. A missing file yields an empty
// result set in source order.
func (s *Store) Load(participantID string) (*model.ParticipantResultSet, error) {
	set := &model.ParticipantResultSet{ParticipantID: participantID}

	f, err := os.Open(s.resultsPath(participantID))
	if err != nil {
		if os.IsNotExist(err) {
			return set, nil
		}
		return nil, apperrors.Wrapf(err, "failed to open results for participant %s", participantID)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to parse results for participant %s", participantID)
	}
	if len(records) == 0 {
		return set, nil
	}

	for _, record := range records[1:] {
		result, err := fromRecord(record)
		if err != nil {
			return nil, apperrors.Wrapf(err, "corrupt results row for participant %s", participantID)
		}
		set.Results = append(set.Results, result)
	}

	return set, nil
}

// Save rewrites the participant's result table atomically and durably.
func (s *Store) Save(set *model.ParticipantResultSet) error {
	path := s.resultsPath(set.ParticipantID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return apperrors.Wrap(apperrors.ErrWriteFailed, err.Error())
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".results-*.csv")
	if err != nil {
		return apperrors.Wrap(apperrors.ErrWriteFailed, err.Error())
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	writer := csv.NewWriter(tmp)
	if err := writer.Write(header); err != nil {
		tmp.Close()
		return apperrors.Wrap(apperrors.ErrWriteFailed, err.Error())
	}
	for _, result := range set.Results {
		if err := writer.Write(toRecord(result)); err != nil {
			tmp.Close()
			return apperrors.Wrap(apperrors.ErrWriteFailed, err.Error())
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		return apperrors.Wrap(apperrors.ErrWriteFailed, err.Error())
	}

	// Durability contract: the bytes hit disk before the rename makes them
	// visible.
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return apperrors.Wrap(apperrors.ErrWriteFailed, err.Error())
	}
	if err := tmp.Close(); err != nil {
		return apperrors.Wrap(apperrors.ErrWriteFailed, err.Error())
	}
	if err := os.Rename(tmpName, path); err != nil {
		return apperrors.Wrap(apperrors.ErrWriteFailed, err.Error())
	}

	return nil
}

func toRecord(r model.TranscriptionResult) []string {
	lastEdited := ""
	if !r.LastEdited.IsZero() {
		lastEdited = r.LastEdited.UTC().Format(time.RFC3339)
	}
	return []string{
		r.Key.Block,
		r.Key.Trial,
		r.AudioPath,
		r.TargetPhrase,
		r.TranscribedText,
		r.OriginalTranscription,
		strconv.FormatFloat(r.SimilarityScore, 'f', -1, 64),
		strconv.FormatBool(r.ManualCorrect),
		r.ErrorMessage,
		lastEdited,
	}
}

func fromRecord(record []string) (model.TranscriptionResult, error) {
	if len(record) < len(header) {
		return model.TranscriptionResult{}, fmt.Errorf("expected %d columns, got %d", len(header), len(record))
	}

	score, err := strconv.ParseFloat(record[6], 64)
	if err != nil {
		return model.TranscriptionResult{}, fmt.Errorf("bad similarity_score %q: %w", record[6], err)
	}

	manualCorrect := false
	if record[7] != "" {
		manualCorrect, err = strconv.ParseBool(record[7])
		if err != nil {
			return model.TranscriptionResult{}, fmt.Errorf("bad manual_correct %q: %w", record[7], err)
		}
	}

	var lastEdited time.Time
	if record[9] != "" {
		lastEdited, err = time.Parse(time.RFC3339, record[9])
		if err != nil {
			return model.TranscriptionResult{}, fmt.Errorf("bad last_edited %q: %w", record[9], err)
		}
	}

	return model.TranscriptionResult{
		Key:                   model.TrialKey{Block: record[0], Trial: record[1]},
		AudioPath:             record[2],
		TargetPhrase:          record[3],
		TranscribedText:       record[4],
		OriginalTranscription: record[5],
		SimilarityScore:       score,
		ManualCorrect:         manualCorrect,
		ErrorMessage:          record[8],
		LastEdited:            lastEdited,
	}, nil
}
