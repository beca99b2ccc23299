package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"audiocheck/internal/app/model"
)

func TestToExcel(t *testing.T) {
	set := &model.ParticipantResultSet{
		ParticipantID: "101",
		Results: []model.TranscriptionResult{
			{
				Key:                   model.TrialKey{Block: "block1", Trial: "trial1"},
				AudioPath:             "block1/trial1.wav",
				TargetPhrase:          "open the door",
				TranscribedText:       "open the door",
				OriginalTranscription: "open the door",
				SimilarityScore:       1.0,
				ManualCorrect:         true,
				LastEdited:            time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC),
			},
			{
				Key:          model.TrialKey{Block: "block2", Trial: "trial1"},
				AudioPath:    "block2/missing.wav",
				TargetPhrase: "turn on the light",
				ErrorMessage: "audio file not found",
			},
		},
	}

	path := filepath.Join(t.TempDir(), "results.xlsx")
	require.NoError(t, ToExcel(set, path))

	file, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Results", sheet.Name)
	require.Len(t, sheet.Rows, 3)

	assert.Equal(t, "Block", sheet.Rows[0].Cells[0].Value)
	assert.Equal(t, "block1", sheet.Rows[1].Cells[0].Value)
	assert.Equal(t, "1.0000", sheet.Rows[1].Cells[6].Value)
	assert.Equal(t, "true", sheet.Rows[1].Cells[7].Value)
	assert.Equal(t, "2025-11-03T09:00:00Z", sheet.Rows[1].Cells[9].Value)

	assert.Equal(t, "audio file not found", sheet.Rows[2].Cells[8].Value)
	assert.Equal(t, "", sheet.Rows[2].Cells[9].Value, "never-edited rows leave last_edited blank")
}

func TestToExcel_BadPath(t *testing.T) {
	set := &model.ParticipantResultSet{ParticipantID: "101"}

	err := ToExcel(set, filepath.Join(t.TempDir(), "no", "such", "dir", "out.xlsx"))

	assert.Error(t, err)
}
