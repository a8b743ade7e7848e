package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"petcontrol/internal/adapters/auth/gotrue"
	"petcontrol/internal/adapters/plans/static"
	"petcontrol/internal/adapters/storage/memory"
	"petcontrol/internal/adapters/storage/postgres"
	"petcontrol/internal/adapters/storage/rest"
	"petcontrol/internal/platform/config"
	"petcontrol/internal/ports/records"
	"petcontrol/internal/router"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Levanta el servidor HTTP",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	resolver, err := static.LoadFile(cfg.PlansFile)
	if err != nil {
		return err
	}

	opts := router.Options{
		Logger:        log,
		Store:         store,
		Plans:         resolver,
		Contact:       cfg.ProvisioningContact,
		WebhookSecret: cfg.WebhookSecret,
		DevPlan:       cfg.DevPlan,
	}

	if cfg.IdentityConfigured() {
		client, err := gotrue.NewClient(gotrue.Config{
			BaseURL: cfg.SupabaseURL,
			APIKey:  cfg.SupabaseKey,
			Timeout: cfg.HTTPTimeout,
			Log:     log,
		})
		if err != nil {
			return err
		}
		opts.IdP = client
		opts.Verifier = gotrue.NewVerifier(client)
	} else {
		log.Warn("identity provider not configured: dev mode, sessions come from " +
			"X-Debug-User-ID and login/signup answer 503")
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server",
			zap.String("addr", srv.Addr),
			zap.String("store", string(cfg.Store)),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore elige el backend según STORE_BACKEND.
func openStore(ctx context.Context, cfg *config.Config) (records.Store, func(), error) {
	switch cfg.Store {
	case config.StorePostgres:
		pool, err := postgres.Open(ctx, cfg.DBDSN)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewStore(pool), pool.Close, nil
	case config.StoreREST:
		s, err := rest.NewStore(rest.Config{
			BaseURL: cfg.SupabaseURL,
			APIKey:  cfg.SupabaseKey,
			Timeout: cfg.HTTPTimeout,
			Log:     log,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	default:
		log.Warn("using in-memory store, data is lost on restart")
		return memory.NewStore(), func() {}, nil
	}
}
