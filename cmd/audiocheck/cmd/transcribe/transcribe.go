package transcribe

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"audiocheck/internal/app"
	apperrors "audiocheck/internal/app/errors"
	"audiocheck/internal/app/runner"
	"audiocheck/internal/config"
	"audiocheck/internal/logging"
)

var participantID string

func init() {
	Cmd.Flags().StringVarP(&participantID, "participant", "p", "",
		"participant folder name under the data root, example: 101")

	Cmd.MarkFlagRequired("participant")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe",
	Short: "Run the speech model over every trial of a participant",
	Long: `Run the speech model over every trial of a participant

- Reads <id>_data.csv from the participant folder and processes trials in order
- Scores each hypothesis against the target phrase (0.0 to 1.0)
- Writes <id>_transcription_results.csv, REPLACING any existing results file
  including manual corrections made during review`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.InitializeConfig()
		if err != nil {
			if errors.Is(err, apperrors.ErrNoDataRoot) {
				fmt.Fprintln(os.Stderr, config.SetupGuidance())
				os.Exit(1)
			}
			return err
		}
		if err := cfg.ValidateProvider(); err != nil {
			return err
		}

		verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
		logger := logging.MustNewLogger(verbose)
		defer logger.Sync()

		var progress runner.ProgressReporter = runner.NopProgress{}
		var bars *runner.MpbProgress
		if runner.IsTTY(os.Stderr) {
			bars = runner.NewMpbProgress(os.Stderr)
			progress = bars
		}

		r, err := app.InitializeRunner(cfg, logger, progress)
		if err != nil {
			return err
		}
		defer r.Close()

		set, err := r.Run(context.Background(), participantID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNoData) {
				fmt.Fprintf(os.Stderr, "No trial data found for participant %s.\n", participantID)
				fmt.Fprintln(os.Stderr, config.SetupGuidance())
				os.Exit(1)
			}
			return err
		}
		if bars != nil {
			bars.Wait()
		}

		failed := 0
		var sum float64
		for _, result := range set.Results {
			if result.Failed() {
				failed++
				continue
			}
			sum += result.SimilarityScore
		}
		fmt.Printf("transcribed %d trials for participant %s (%d failed)\n",
			len(set.Results), participantID, failed)
		if scored := len(set.Results) - failed; scored > 0 {
			fmt.Printf("mean similarity score: %.4f\n", sum/float64(scored))
		}
		return nil
	},
}
