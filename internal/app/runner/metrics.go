package runner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	trialsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "audiocheck_trials_processed_total",
		Help: "Number of trials run through the transcription model.",
	})
	trialsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "audiocheck_trials_failed_total",
		Help: "Number of trials that failed transcription (missing audio or model error).",
	})
	batchesRun = promauto.NewCounter(prometheus.CounterOpts{
		Name: "audiocheck_batches_total",
		Help: "Number of participant transcription batches executed.",
	})
)
