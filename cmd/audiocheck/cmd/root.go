package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"audiocheck/cmd/audiocheck/cmd/export"
	"audiocheck/cmd/audiocheck/cmd/serve"
	"audiocheck/cmd/audiocheck/cmd/transcribe"
	"audiocheck/cmd/audiocheck/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "audiocheck",
	Short: "Verify machine transcriptions of trial audio against target phrases",
	Long: `Verify machine transcriptions of trial audio against target phrases.

- Each participant folder holds a <id>_data.csv trial list and the audio files
- 'transcribe' runs every trial through the speech model and scores the result
- 'serve' starts the review API so corrections can be made and saved
- The per-participant results CSV is the reviewable output`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolP("verbose", "V", false, "verbose output")
}
