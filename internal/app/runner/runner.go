// Package runner executes the transcription batch for a participant:
// scan the catalog, run each trial through the model sequentially, score
// against the target phrase and persist the result table.
package runner

import (
	"context"
	"time"

	"go.uber.org/zap"

	"audiocheck/internal/app/asr"
	"audiocheck/internal/app/catalog"
	"audiocheck/internal/app/model"
	"audiocheck/internal/app/repository"
	"audiocheck/internal/app/text"
)

// TranscriberFactory builds the model handle on first use. The model is an
// explicitly passed, lazily-initialized dependency - never a package
// singleton - so tests can substitute a fake.
type TranscriberFactory func() (asr.Transcriber, error)

// Runner orchestrates one participant batch at a time.
type Runner struct {
	scanner  *catalog.Scanner
	newModel TranscriberFactory
	results  repository.ResultStore
	history  repository.RunHistoryDAO
	logger   *zap.SugaredLogger
	clock    func() time.Time
	progress ProgressReporter
	model    asr.Transcriber
}

// Option configures a Runner.
type Option func(*Runner)

// WithClock overrides the time source. Tests use it for deterministic rows.
func WithClock(clock func() time.Time) Option {
	return func(r *Runner) { r.clock = clock }
}

// WithProgress attaches a progress reporter for interactive runs.
func WithProgress(p ProgressReporter) Option {
	return func(r *Runner) { r.progress = p }
}

// NewRunner creates a Runner. The transcriber factory is invoked on the
// first batch only.
func NewRunner(scanner *catalog.Scanner, newModel TranscriberFactory,
	results repository.ResultStore, history repository.RunHistoryDAO,
	logger *zap.SugaredLogger, opts ...Option) *Runner {
	r := &Runner{
		scanner:  scanner,
		newModel: newModel,
		results:  results,
		history:  history,
		logger:   logger,
		clock:    time.Now,
		progress: NopProgress{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run transcribes every trial of the participant, in metadata order, and
// replaces the participant's result table. Per-trial failures (missing
// audio, model errors) are recorded on that row; they never abort the batch.
// Rerunning overwrites prior hypotheses and scores unconditionally,
// including reviewer edits - an explicit caller-chosen action.
func (r *Runner) Run(ctx context.Context, participantID string) (*model.ParticipantResultSet, error) {
	trials, err := r.scanner.Scan(participantID)
	if err != nil {
		return nil, err
	}

	if exists, err := r.results.Exists(participantID); err == nil && exists {
		r.logger.Warnw("overwriting existing results, manual edits will be lost",
			"participant", participantID)
	}

	batchesRun.Inc()
	runAt := r.clock()
	set := &model.ParticipantResultSet{ParticipantID: participantID}
	bar := r.progress.StartBatch(participantID, len(trials))

	for i, trial := range trials {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		r.logger.Infow("processing trial",
			"participant", participantID,
			"block", trial.Key.Block,
			"trial", trial.Key.Trial,
			"progress", i+1,
			"total", len(trials))

		result := r.transcribeTrial(trial)
		set.Results = append(set.Results, result)

		hasError := 0
		if result.Failed() {
			hasError = 1
			trialsFailed.Inc()
		}
		trialsProcessed.Inc()

		if err := r.history.RecordRun(participantID, trial.Key, trial.AudioPath, trial.TargetPhrase,
			result.TranscribedText, result.SimilarityScore, runAt, hasError, result.ErrorMessage); err != nil {
			r.logger.Warnw("failed to record run history", "trial", trial.Key, "error", err)
		}

		bar.Increment()
	}
	bar.Complete()

	if err := r.results.Save(set); err != nil {
		return nil, err
	}

	r.logger.Infow("batch complete", "participant", participantID, "trials", len(set.Results))
	return set, nil
}

// transcribeTrial produces the result row for a single trial. All failure
// modes collapse to an empty hypothesis with score 0 and an error message.
func (r *Runner) transcribeTrial(trial model.Trial) model.TranscriptionResult {
	result := model.TranscriptionResult{
		Key:          trial.Key,
		AudioPath:    trial.AudioPath,
		TargetPhrase: trial.TargetPhrase,
	}

	if trial.Unresolved {
		result.ErrorMessage = "audio file not found"
		return result
	}

	transcriber, err := r.transcriber()
	if err != nil {
		result.ErrorMessage = "model initialization failed: " + err.Error()
		return result
	}

	hypothesis, err := transcriber.Transcript(trial.ResolvedAudioPath)
	if err != nil {
		r.logger.Warnw("transcription failed",
			"trial", trial.Key, "audio", trial.ResolvedAudioPath, "error", err)
		result.ErrorMessage = "transcription error: " + err.Error()
		return result
	}

	normalized := text.Normalize(hypothesis)
	result.TranscribedText = normalized
	result.OriginalTranscription = normalized
	result.SimilarityScore = text.Score(normalized, trial.TargetPhrase)
	return result
}

// Close releases the run history store.
func (r *Runner) Close() error {
	return r.history.Close()
}

// transcriber returns the lazily-initialized model handle.
func (r *Runner) transcriber() (asr.Transcriber, error) {
	if r.model != nil {
		return r.model, nil
	}
	model, err := r.newModel()
	if err != nil {
		return nil, err
	}
	r.model = model
	return r.model, nil
}
