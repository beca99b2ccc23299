// Package dto defines the request and response bodies of the review API.
package dto

import (
	"time"

	"audiocheck/internal/app/model"
	"audiocheck/internal/app/repository"
	apierrors "audiocheck/internal/server/errors"
)

// EditRequest is the body of PATCH .../results/:block/:trial.
type EditRequest struct {
	Field string `json:"field" binding:"required"`
	// Value is the new field content. Empty is valid for transcribed_text.
	Value string `json:"value"`
}

// Validate checks that the target field is editable.
func (r *EditRequest) Validate() error {
	switch r.Field {
	case model.FieldTranscribedText, model.FieldManualCorrect:
		return nil
	default:
		return apierrors.NewValidationError("Validation failed", map[string]string{
			"field": "must be one of the allowed values",
		})
	}
}

// ResultRow is one trial's result as rendered to the review GUI.
type ResultRow struct {
	Block                 string  `json:"block"`
	Trial                 string  `json:"trial"`
	AudioFilename         string  `json:"audio_filename"`
	TargetPhrase          string  `json:"target_phrase"`
	TranscribedText       string  `json:"transcribed_text"`
	OriginalTranscription string  `json:"original_transcription"`
	SimilarityScore       float64 `json:"similarity_score"`
	ManualCorrect         bool    `json:"manual_correct"`
	Error                 string  `json:"error,omitempty"`
	LastEdited            string  `json:"last_edited,omitempty"`
}

// ResultsResponse is the body of GET .../results and POST .../transcribe.
type ResultsResponse struct {
	ParticipantID string      `json:"participant_id"`
	Results       []ResultRow `json:"results"`
}

// ParticipantsResponse lists the participant folders found under the data
// root.
type ParticipantsResponse struct {
	Participants []string `json:"participants"`
}

// StatsResponse summarizes a participant's run history.
type StatsResponse struct {
	ParticipantID string  `json:"participant_id"`
	TotalRuns     int     `json:"total_runs"`
	FailedRuns    int     `json:"failed_runs"`
	MeanScore     float64 `json:"mean_score"`
}

// NewResultRow converts a domain result to its API shape.
func NewResultRow(r model.TranscriptionResult) ResultRow {
	row := ResultRow{
		Block:                 r.Key.Block,
		Trial:                 r.Key.Trial,
		AudioFilename:         r.AudioPath,
		TargetPhrase:          r.TargetPhrase,
		TranscribedText:       r.TranscribedText,
		OriginalTranscription: r.OriginalTranscription,
		SimilarityScore:       r.SimilarityScore,
		ManualCorrect:         r.ManualCorrect,
		Error:                 r.ErrorMessage,
	}
	if !r.LastEdited.IsZero() {
		row.LastEdited = r.LastEdited.Format(time.RFC3339)
	}
	return row
}

// NewResultsResponse converts a result set.
func NewResultsResponse(set *model.ParticipantResultSet) ResultsResponse {
	resp := ResultsResponse{
		ParticipantID: set.ParticipantID,
		Results:       make([]ResultRow, 0, len(set.Results)),
	}
	for _, r := range set.Results {
		resp.Results = append(resp.Results, NewResultRow(r))
	}
	return resp
}

// NewStatsResponse converts run history stats.
func NewStatsResponse(stats *repository.RunStats) StatsResponse {
	return StatsResponse{
		ParticipantID: stats.ParticipantID,
		TotalRuns:     stats.TotalRuns,
		FailedRuns:    stats.FailedRuns,
		MeanScore:     stats.MeanScore,
	}
}
