package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/intern-eval/internal/evaluation"
	"github.com/jonathan/intern-eval/internal/export"
	"github.com/jonathan/intern-eval/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the evaluation store, review parsing and CSV export.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	port := appConfig.Port
	if servePort != 0 {
		port = servePort
	}

	source := newAcquirer(appConfig, logger)
	store := evaluation.NewStore(source, evaluation.WithStoreLogger(logger))

	srv := server.New(server.Config{
		Port:           port,
		AILimitPerHour: appConfig.AILimitPerHour,
		Export: export.Options{
			Role:         appConfig.Role,
			BareProgress: appConfig.BareProgress,
		},
	}, store, source, logger)

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Start(ctx)
}

// commandContext falls back to Background when cobra has no context
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
