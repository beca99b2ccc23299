package csvfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audiocheck/internal/app/model"
)

func sampleSet(pid string) *model.ParticipantResultSet {
	return &model.ParticipantResultSet{
		ParticipantID: pid,
		Results: []model.TranscriptionResult{
			{
				Key:                   model.TrialKey{Block: "block1", Trial: "trial1"},
				AudioPath:             "block1/trial1.wav",
				TargetPhrase:          "open the door",
				TranscribedText:       "open the door",
				OriginalTranscription: "open the door",
				SimilarityScore:       1.0,
			},
			{
				Key:                   model.TrialKey{Block: "block1", Trial: "trial2"},
				AudioPath:             "block1/trial2.wav",
				TargetPhrase:          "close the window",
				TranscribedText:       "close window",
				OriginalTranscription: "close window",
				SimilarityScore:       0.75,
				ManualCorrect:         true,
				LastEdited:            time.Date(2025, 11, 3, 10, 30, 0, 0, time.UTC),
			},
			{
				Key:          model.TrialKey{Block: "block2", Trial: "trial1"},
				AudioPath:    "block2/trial1.wav",
				TargetPhrase: "turn on the light",
				ErrorMessage: "audio file not found",
			},
		},
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	dataRoot := t.TempDir()
	store := NewStore(dataRoot)
	set := sampleSet("101")

	require.NoError(t, store.Save(set))

	loaded, err := store.Load("101")
	require.NoError(t, err)

	assert.Equal(t, set.ParticipantID, loaded.ParticipantID)
	assert.Equal(t, set.Results, loaded.Results)
}

func TestStore_LoadMissingFileYieldsEmptySet(t *testing.T) {
	store := NewStore(t.TempDir())

	set, err := store.Load("999")

	require.NoError(t, err)
	assert.Equal(t, "999", set.ParticipantID)
	assert.Empty(t, set.Results)
}

func TestStore_Exists(t *testing.T) {
	dataRoot := t.TempDir()
	store := NewStore(dataRoot)

	exists, err := store.Exists("101")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Save(sampleSet("101")))

	exists, err = store.Exists("101")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestStore_SaveOverwrites(t *testing.T) {
	dataRoot := t.TempDir()
	store := NewStore(dataRoot)

	first := sampleSet("101")
	require.NoError(t, store.Save(first))

	second := sampleSet("101")
	second.Results = second.Results[:1]
	second.Results[0].TranscribedText = "rerun output"
	second.Results[0].ManualCorrect = false
	require.NoError(t, store.Save(second))

	loaded, err := store.Load("101")
	require.NoError(t, err)

	// A rerun replaces the whole table, manual edits included.
	require.Len(t, loaded.Results, 1)
	assert.Equal(t, "rerun output", loaded.Results[0].TranscribedText)
	assert.False(t, loaded.Results[0].ManualCorrect)
}

func TestStore_SaveLeavesNoTempFiles(t *testing.T) {
	dataRoot := t.TempDir()
	store := NewStore(dataRoot)
	require.NoError(t, store.Save(sampleSet("101")))

	entries, err := os.ReadDir(filepath.Join(dataRoot, "101"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "101_transcription_results.csv", entries[0].Name())
}

func TestStore_LoadCorruptFile(t *testing.T) {
	dataRoot := t.TempDir()
	store := NewStore(dataRoot)

	dir := filepath.Join(dataRoot, "101")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	content := "block,trial,audio_filename,target_phrase,transcribed_text,original_transcription,similarity_score,manual_correct,error,last_edited\n" +
		"block1,trial1,a.wav,phrase,text,text,not-a-number,false,,\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "101_transcription_results.csv"), []byte(content), 0o644))

	_, err := store.Load("101")

	assert.Error(t, err)
}

func TestStore_RoundTripPreservesCommasAndQuotes(t *testing.T) {
	dataRoot := t.TempDir()
	store := NewStore(dataRoot)

	set := &model.ParticipantResultSet{
		ParticipantID: "101",
		Results: []model.TranscriptionResult{
			{
				Key:             model.TrialKey{Block: "block1", Trial: "trial1"},
				TargetPhrase:    `say "hello, world" now`,
				TranscribedText: `say "hello world" now`,
				SimilarityScore: 0.95,
			},
		},
	}

	require.NoError(t, store.Save(set))
	loaded, err := store.Load("101")
	require.NoError(t, err)
	assert.Equal(t, set.Results, loaded.Results)
}
