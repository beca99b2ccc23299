package serve

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"audiocheck/internal/app"
	apperrors "audiocheck/internal/app/errors"
	"audiocheck/internal/config"
	"audiocheck/internal/logging"
	"audiocheck/internal/server"
)

var (
	host        string
	port        string
	environment string
)

func init() {
	Cmd.Flags().StringVar(&host, "host", "127.0.0.1", "interface to listen on")
	Cmd.Flags().StringVar(&port, "port", "8090", "port to listen on")
	Cmd.Flags().StringVar(&environment, "env", "development", "runtime environment (development or production)")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the review API",
	Long: `Start the review API

- Serves participant result tables to the review GUI
- Edits are written through to the results CSV immediately
- POST .../transcribe triggers a full re-run for a participant`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.InitializeConfig()
		if err != nil {
			if errors.Is(err, apperrors.ErrNoDataRoot) {
				fmt.Fprintln(os.Stderr, config.SetupGuidance())
				os.Exit(1)
			}
			return err
		}

		verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
		logger := logging.MustNewLogger(verbose)
		defer logger.Sync()

		serverCfg := server.DefaultConfig()
		serverCfg.Host = host
		serverCfg.Port = port
		serverCfg.Environment = environment

		srv, err := app.InitializeServer(cfg, serverCfg, logger)
		if err != nil {
			return err
		}

		if err := srv.Start(); err != nil {
			return err
		}

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}
