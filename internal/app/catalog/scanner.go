// Package catalog enumerates a participant's trials from the metadata CSV
// and the audio subtree beneath the data root.
package catalog

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/samber/lo"
	"go.uber.org/zap"

	apperrors "audiocheck/internal/app/errors"
	"audiocheck/internal/app/model"
)

// Metadata CSV column names, matching the acquisition tool's output.
const (
	colBlock  = "block"
	colTrial  = "trial"
	colPhrase = "phrase"
	colAudio  = "audio_filename"
)

// Scanner discovers trials for participants under a data root.
type Scanner struct {
	dataRoot string
	logger   *zap.SugaredLogger
}

// NewScanner creates a Scanner rooted at dataRoot.
func NewScanner(dataRoot string, logger *zap.SugaredLogger) *Scanner {
	return &Scanner{dataRoot: dataRoot, logger: logger}
}

// DataRoot returns the scanner's data root directory.
func (s *Scanner) DataRoot() string {
	return s.dataRoot
}

// ListParticipants returns the participant IDs found under the data root,
// sorted. Participant folders are directories whose names are all digits.
func (s *Scanner) ListParticipants() ([]string, error) {
	entries, err := os.ReadDir(s.dataRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrNoDataRoot
		}
		return nil, apperrors.Wrap(err, "failed to read data root")
	}

	participants := lo.FilterMap(entries, func(e os.DirEntry, _ int) (string, bool) {
		return e.Name(), e.IsDir() && isAllDigits(e.Name())
	})
	sort.Strings(participants)
	return participants, nil
}

// Scan reads the participant's metadata CSV and returns trials in source-file
// order. Trials whose audio file cannot be found are retained with the
// Unresolved marker; malformed rows are skipped. A missing participant
// folder or metadata file yields apperrors.ErrNoData.
func (s *Scanner) Scan(participantID string) ([]model.Trial, error) {
	participantDir := filepath.Join(s.dataRoot, participantID)
	csvPath := filepath.Join(participantDir, participantID+"_data.csv")

	f, err := os.Open(csvPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrapf(apperrors.ErrNoData, "metadata file %s", csvPath)
		}
		return nil, apperrors.Wrapf(err, "failed to open metadata file %s", csvPath)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrNoData, "metadata file %s is empty or unreadable", csvPath)
	}

	cols := indexColumns(header)
	var trials []model.Trial

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.logger.Warnw("skipping malformed metadata row", "participant", participantID, "error", err)
			continue
		}

		trial := model.Trial{
			ParticipantID: participantID,
			Key: model.TrialKey{
				Block: field(record, cols, colBlock),
				Trial: field(record, cols, colTrial),
			},
			TargetPhrase: field(record, cols, colPhrase),
			AudioPath:    normalizeAudioPath(field(record, cols, colAudio)),
		}

		if trial.Key.Block == "" && trial.Key.Trial == "" {
			s.logger.Warnw("skipping metadata row without block/trial identifiers", "participant", participantID)
			continue
		}

		trial.ResolvedAudioPath = s.resolveAudio(participantDir, trial.AudioPath)
		trial.Unresolved = trial.ResolvedAudioPath == ""

		trials = append(trials, trial)
	}

	return trials, nil
}

// resolveAudio looks for the audio file relative to the participant folder,
// the data root and finally as given. Returns "" when the file is missing.
func (s *Scanner) resolveAudio(participantDir, audioPath string) string {
	if audioPath == "" {
		return ""
	}

	candidates := []string{
		filepath.Join(participantDir, audioPath),
		filepath.Join(s.dataRoot, audioPath),
		audioPath,
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			abs, err := filepath.Abs(candidate)
			if err != nil {
				return candidate
			}
			return abs
		}
	}

	return ""
}

// normalizeAudioPath fixes Windows-style separators from metadata files
// written on other machines.
func normalizeAudioPath(p string) string {
	return filepath.FromSlash(strings.ReplaceAll(strings.TrimSpace(p), "\\", "/"))
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}

func field(record []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
