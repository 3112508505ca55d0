// Command server runs the SmartAviation site: the public page, the JSON API
// and the uploaded images.
//
//	@title						SmartAviation Site API
//	@version					1.0
//	@description				Public content, lead capture and admin management for the SmartAviation site.
//	@BasePath					/api
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/smartaviation/site/internal/api"
	"github.com/smartaviation/site/internal/api/handler"
	"github.com/smartaviation/site/internal/core/service"
	"github.com/smartaviation/site/internal/infrastructure/config"
	"github.com/smartaviation/site/internal/infrastructure/session"
	"github.com/smartaviation/site/internal/infrastructure/storage/jsonfile"
	"github.com/smartaviation/site/internal/infrastructure/storage/uploads"
	"github.com/smartaviation/site/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "server:", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Service: "smartaviation-site",
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
	})

	store := jsonfile.New(cfg.Storage.DataFile)
	if err := seed(ctx, store, cfg.Seed, log); err != nil {
		return err
	}

	images := uploads.New(cfg.Storage.UploadDir, "/uploads")
	if err := images.EnsureDir(); err != nil {
		return fmt.Errorf("upload dir: %w", err)
	}

	sessions := session.NewMemoryStore(cfg.Session.TTL)
	go session.NewJanitor(sessions, cfg.Session.SweepInterval, log).Run(ctx)

	svc := api.Services{
		Auth:     service.NewAuthService(store, sessions, log),
		Content:  service.NewContentService(store, log),
		Products: service.NewProductService(store, images, log),
		Requests: service.NewRequestService(store, log),
		Users:    service.NewUserService(store, sessions, log),
	}

	e := api.NewRouter(svc, api.Options{
		UploadDir:      images.Dir(),
		MaxUploadBytes: cfg.Storage.MaxUploadBytes,
		BodyLimit:      cfg.HTTP.BodyLimit,
		CORSOrigins:    cfg.HTTP.CORSOrigins,
		Probes: []handler.Probe{
			{Name: "data_file", Check: func(ctx context.Context) error {
				_, err := store.Read(ctx)
				return err
			}},
			{Name: "upload_dir", Check: func(context.Context) error {
				return images.Writable()
			}},
		},
	}, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("data_file", store.Path()).Msg("server listening")
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

// seed writes the default document with one administrator when the data file
// does not exist yet. An existing file is never touched.
func seed(ctx context.Context, store *jsonfile.Store, cfg config.SeedConfig, log zerolog.Logger) error {
	if store.Exists() {
		return nil
	}
	if cfg.AdminPassword == "" {
		return errors.New("data file missing and SEED_ADMIN_PASSWORD is not set")
	}

	doc, err := service.SeedDocument(cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return err
	}
	if err := store.Write(ctx, doc); err != nil {
		return fmt.Errorf("seed data file: %w", err)
	}
	log.Info().Str("path", store.Path()).Str("admin", cfg.AdminEmail).Msg("data file seeded")
	return nil
}
