//go:build wireinject
// +build wireinject

package app

import (
	"path/filepath"

	"github.com/google/wire"
	"go.uber.org/zap"

	"audiocheck/internal/app/asr"
	openaiasr "audiocheck/internal/app/asr/openai"
	"audiocheck/internal/app/asr/whispercpp"
	"audiocheck/internal/app/catalog"
	"audiocheck/internal/app/repository"
	"audiocheck/internal/app/repository/csvfile"
	"audiocheck/internal/app/repository/sqlite"
	"audiocheck/internal/app/review"
	"audiocheck/internal/app/runner"
	"audiocheck/internal/config"
	"audiocheck/internal/server"
	"audiocheck/internal/server/handlers"
)

// provideTranscriberFactory selects the ASR backend from configuration. The
// factory is invoked lazily by the runner on the first trial.
func provideTranscriberFactory(cfg *config.Config, logger *zap.SugaredLogger) runner.TranscriberFactory {
	return func() (asr.Transcriber, error) {
		switch cfg.ASRProvider {
		case config.ProviderOpenAI:
			return openaiasr.NewRemoteTranscriber(openaiasr.NewClient(cfg.OpenAIKey)), nil
		default:
			t := whispercpp.NewLocalTranscriber(cfg.WhisperCpp.BinaryPath, cfg.WhisperCpp.ModelPath, logger)
			if err := t.Validate(); err != nil {
				return nil, err
			}
			return t, nil
		}
	}
}

func provideScanner(cfg *config.Config, logger *zap.SugaredLogger) *catalog.Scanner {
	return catalog.NewScanner(cfg.DataRoot, logger)
}

func provideResultStore(cfg *config.Config) repository.ResultStore {
	return csvfile.NewStore(cfg.DataRoot)
}

// provideRunHistoryDAO opens the run history database next to the
// participant folders.
func provideRunHistoryDAO(cfg *config.Config) (repository.RunHistoryDAO, error) {
	return sqlite.Open(filepath.Join(cfg.DataRoot, "audiocheck.db"))
}

func newRunner(scanner *catalog.Scanner, factory runner.TranscriberFactory,
	results repository.ResultStore, history repository.RunHistoryDAO,
	logger *zap.SugaredLogger, progress runner.ProgressReporter) *runner.Runner {
	return runner.NewRunner(scanner, factory, results, history, logger, runner.WithProgress(progress))
}

func newReviewService(store repository.ResultStore, logger *zap.SugaredLogger) *review.Service {
	return review.NewService(store, logger)
}

// InitializeRunner builds the batch transcription runner.
func InitializeRunner(cfg *config.Config, logger *zap.SugaredLogger,
	progress runner.ProgressReporter) (*runner.Runner, error) {
	wire.Build(
		newRunner,
		provideScanner,
		provideTranscriberFactory,
		provideResultStore,
		provideRunHistoryDAO,
	)
	return &runner.Runner{}, nil
}

// InitializeReviewService builds the review service over the CSV store.
func InitializeReviewService(cfg *config.Config, logger *zap.SugaredLogger) *review.Service {
	wire.Build(newReviewService, provideResultStore)
	return &review.Service{}
}

// InitializeServer builds the review API server with all its dependencies.
func InitializeServer(cfg *config.Config, serverCfg server.Config,
	logger *zap.SugaredLogger) (*server.Server, error) {
	wire.Build(
		server.NewServer,
		handlers.NewReviewHandler,
		newRunner,
		newReviewService,
		provideScanner,
		provideTranscriberFactory,
		provideResultStore,
		provideRunHistoryDAO,
		wire.InterfaceValue(new(runner.ProgressReporter), runner.NopProgress{}),
		wire.Bind(new(handlers.ParticipantLister), new(*catalog.Scanner)),
		wire.Bind(new(handlers.TranscriptionRunner), new(*runner.Runner)),
		wire.Bind(new(handlers.ReviewService), new(*review.Service)),
	)
	return &server.Server{}, nil
}
