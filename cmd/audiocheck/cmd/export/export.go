package export

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apperrors "audiocheck/internal/app/errors"
	"audiocheck/internal/app/export"
	"audiocheck/internal/app/repository/csvfile"
	"audiocheck/internal/config"
)

var participantID string
var outputFilePath string

func init() {
	Cmd.Flags().StringVarP(&participantID, "participant", "p", "", "participant folder name under the data root")
	Cmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "set outputFilePath")

	Cmd.MarkFlagRequired("participant")
	Cmd.MarkFlagRequired("outputFilePath")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export a participant's result table to excel",
	Long: `Export a participant's result table to excel

- Reads the participant's results CSV, including any manual corrections`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.InitializeConfig()
		if err != nil {
			if errors.Is(err, apperrors.ErrNoDataRoot) {
				fmt.Fprintln(os.Stderr, config.SetupGuidance())
				os.Exit(1)
			}
			return err
		}

		store := csvfile.NewStore(cfg.DataRoot)
		set, err := store.Load(participantID)
		if err != nil {
			return err
		}
		if len(set.Results) == 0 {
			return fmt.Errorf("no results for participant %s, run 'audiocheck transcribe -p %s' first",
				participantID, participantID)
		}

		if err := export.ToExcel(set, outputFilePath); err != nil {
			return err
		}
		fmt.Printf("export finished, exported file path: %v\n", outputFilePath)
		return nil
	},
}
