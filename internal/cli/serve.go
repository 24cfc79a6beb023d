package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/execdash/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard API server",
	Long: `Start the executive dashboard API server.

Examples:
  execdash serve              # Start on EXECDASH_PORT (default 8080)
  execdash serve --port 3000  # Start on port 3000`,
	RunE: runServe,
}

var servePort int

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides EXECDASH_PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(context.Background()); err != nil {
			a.Log.Warn().Err(err).Msg("closing app")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			a.Log.Info().Msg("shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()

	port := a.Config.Port
	if servePort > 0 {
		port = servePort
	}

	server := web.NewServer(a.Service, port, web.Limits{
		MaxWindowDays: a.Config.MaxWindowDays,
		MaxChannels:   a.Config.MaxChannels,
	}, a.Log)
	server.SetShutdownTimeout(a.Config.ShutdownTimeout)
	return server.Start(ctx)
}
