package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iss-spotter/iss-spotter/internal/api"
	"github.com/iss-spotter/iss-spotter/internal/pkg/config"
	"github.com/iss-spotter/iss-spotter/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(osSignal <-chan os.Signal) *cobra.Command {
	return &cobra.Command{
		Use:                   "serve",
		Short:                 "Run the HTTP API",
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loadDotEnv()
			cfg, err := config.LoadFrom(cmd.Context(), lookuper())
			if err != nil {
				return err
			}
			log := logger.Init(loggerOptions(cfg))

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			a, err := newApp(ctx, cfg, log, appOptions{history: true})
			if err != nil {
				return err
			}
			defer a.close()
			// Runs before a.close so the recorder workers can drain and exit.
			defer cancel()

			e := api.NewRouter(api.Deps{
				Flyover:   a.flyover,
				Lookups:   a.lookups,
				Mongo:     a.mongoDB,
				Redis:     a.redis,
				JWTSecret: cfg.JWTSecret,
				Logger:    log,
			})

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server starting")
				if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-osSignal:
				log.Info().Str("signal", sig.String()).Msg("shutting down")
			}

			shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
			defer stop()
			if err := e.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("http server shutdown")
				return err
			}
			log.Info().Msg("http server stopped")
			return nil
		},
	}
}
