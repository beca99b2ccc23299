// Package handlers implements the HTTP handlers of the review API.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "audiocheck/internal/app/errors"
	"audiocheck/internal/app/model"
	"audiocheck/internal/app/repository"
	"audiocheck/internal/server/dto"
	apierrors "audiocheck/internal/server/errors"
	"audiocheck/internal/server/middleware"
)

// ParticipantLister enumerates participant folders under the data root.
type ParticipantLister interface {
	ListParticipants() ([]string, error)
}

// TranscriptionRunner runs the batch transcription for one participant.
type TranscriptionRunner interface {
	Run(ctx context.Context, participantID string) (*model.ParticipantResultSet, error)
}

// ReviewService loads result tables and applies reviewer edits.
type ReviewService interface {
	Load(participantID string) (*model.ParticipantResultSet, error)
	ApplyEdit(participantID string, key model.TrialKey, field, value string) (*model.TranscriptionResult, error)
}

// ReviewHandler serves the participant, results, edit and stats routes.
type ReviewHandler struct {
	participants ParticipantLister
	runner       TranscriptionRunner
	review       ReviewService
	history      repository.RunHistoryDAO
}

// NewReviewHandler creates a review handler.
func NewReviewHandler(participants ParticipantLister, runner TranscriptionRunner,
	review ReviewService, history repository.RunHistoryDAO) *ReviewHandler {
	return &ReviewHandler{
		participants: participants,
		runner:       runner,
		review:       review,
		history:      history,
	}
}

// ListParticipants handles GET /api/v1/participants.
func (h *ReviewHandler) ListParticipants(c *gin.Context) {
	participants, err := h.participants.ListParticipants()
	if err != nil {
		middleware.HandleError(c, toAPIError(err))
		return
	}

	c.JSON(http.StatusOK, dto.ParticipantsResponse{Participants: participants})
}

// GetResults handles GET /api/v1/participants/:id/results.
func (h *ReviewHandler) GetResults(c *gin.Context) {
	set, err := h.review.Load(c.Param("id"))
	if err != nil {
		middleware.HandleError(c, toAPIError(err))
		return
	}

	c.JSON(http.StatusOK, dto.NewResultsResponse(set))
}

// Transcribe handles POST /api/v1/participants/:id/transcribe. An explicit
// re-run: any existing results file, including manual edits, is replaced.
func (h *ReviewHandler) Transcribe(c *gin.Context) {
	set, err := h.runner.Run(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, toAPIError(err))
		return
	}

	c.JSON(http.StatusOK, dto.NewResultsResponse(set))
}

// ApplyEdit handles PATCH /api/v1/participants/:id/results/:block/:trial.
func (h *ReviewHandler) ApplyEdit(c *gin.Context) {
	var req dto.EditRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	key := model.TrialKey{Block: c.Param("block"), Trial: c.Param("trial")}
	result, err := h.review.ApplyEdit(c.Param("id"), key, req.Field, req.Value)
	if err != nil {
		middleware.HandleError(c, toAPIError(err))
		return
	}

	c.JSON(http.StatusOK, dto.NewResultRow(*result))
}

// GetStats handles GET /api/v1/participants/:id/stats.
func (h *ReviewHandler) GetStats(c *gin.Context) {
	stats, err := h.history.GetStats(c.Param("id"))
	if err != nil {
		middleware.HandleError(c, toAPIError(err))
		return
	}

	c.JSON(http.StatusOK, dto.NewStatsResponse(stats))
}

// toAPIError maps domain errors to API error responses.
func toAPIError(err error) error {
	switch {
	case errors.Is(err, apperrors.ErrNoData), errors.Is(err, apperrors.ErrNoDataRoot):
		return apierrors.NewNotFoundError("participant data")
	case errors.Is(err, apperrors.ErrUnknownTrial):
		return apierrors.NewNotFoundError("trial")
	case errors.Is(err, apperrors.ErrUnknownField), errors.Is(err, apperrors.ErrInvalidValue):
		return apierrors.NewBadRequestError(err.Error())
	default:
		return apierrors.NewInternalError(err.Error())
	}
}
