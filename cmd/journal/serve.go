package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"journal-go/internal/app"
	"journal-go/internal/config"
	"journal-go/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the journal HTTP API",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		if err := config.CheckEnv(config.JWTSecretEnv); err != nil {
			return err
		}

		metrics := server.NewMetrics()
		a, err := newApp("serve", app.WithAnalyzerWrapper(metrics.InstrumentAnalyzer))
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		if err := a.TrackChanges(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg := a.Config()
		srv := server.New(ctx, a.Service(), server.Options{
			Addr:              cfg.Server.Addr,
			JWTSecret:         []byte(os.Getenv(config.JWTSecretEnv)),
			RateLimit:         cfg.Server.RateLimit,
			RateBurst:         cfg.Server.RateBurst,
			DefaultWindowDays: cfg.Trends.WindowDays,
			Logger:            a.Logger(),
			Metrics:           metrics,
		})

		fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s\n", cfg.Server.Addr)
		return srv.Run(ctx)
	},
}
