package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/emzola/blogapi/clients"
	"github.com/emzola/blogapi/config"
	"github.com/emzola/blogapi/handler"
	"github.com/emzola/blogapi/interactor"
	"github.com/emzola/blogapi/internal/auth"
	"github.com/emzola/blogapi/internal/jsonlog"
	"github.com/emzola/blogapi/internal/mailer"
	"github.com/emzola/blogapi/repository"
	"github.com/emzola/blogapi/repository/postgres"
	"github.com/emzola/blogapi/service"
	"github.com/jellydator/ttlcache/v3"
	"github.com/spf13/cobra"
)

// app defines the application's layers and shared resources.
type app struct {
	config     config.Config
	logger     *jsonlog.Logger
	repo       repository.Repository
	service    service.Service
	interactor interactor.Interactor
	handler    *handler.Handler
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Initialize database connection
	db, err := postgres.OpenDBConn(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	logger.PrintInfo("database connection pool established", nil)

	// Post images are only accepted when a bucket is configured.
	var images service.ImageStore
	if cfg.S3Enabled() {
		store, err := clients.NewS3ImageStore(ctx, cfg)
		if err != nil {
			return err
		}
		images = store
		logger.PrintInfo("image storage configured", map[string]string{"bucket": cfg.S3.Bucket})
	}

	tokens, err := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	if err != nil {
		return err
	}

	// Other shared resources: waitgroup and in-memory cache
	var wg sync.WaitGroup
	cache := ttlcache.New(ttlcache.WithTTL[string, int64](30 * time.Minute))
	go cache.Start()
	defer cache.Stop()

	// Application layers
	repo := repository.New(db)
	svc := service.New(cfg, logger, repo, images)
	m := mailer.New(cfg.Smtp.Host, cfg.Smtp.Port, cfg.Smtp.Username, cfg.Smtp.Password, cfg.Smtp.Sender)
	inter := interactor.New(cfg, logger, svc, m, tokens, &wg)

	a := &app{
		config:     cfg,
		logger:     logger,
		repo:       repo,
		service:    svc,
		interactor: inter,
		handler:    handler.New(cfg, logger, cache, inter),
	}
	return a.serve(&wg)
}

func (a *app) serve(wg *sync.WaitGroup) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", a.config.Server.Port),
		Handler:      a.handler.Routes(),
		ErrorLog:     log.New(a.logger, "", 0),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// Graceful shutdown
	shutdownError := make(chan error)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit
		a.logger.PrintInfo("shutting down server", map[string]string{
			"signal": s.String(),
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}
		a.logger.PrintInfo("completing background tasks", map[string]string{
			"addr": srv.Addr,
		})
		wg.Wait()
		shutdownError <- nil
	}()

	a.logger.PrintInfo("starting server", map[string]string{
		"addr": srv.Addr,
		"env":  a.config.Server.Env,
	})
	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	err = <-shutdownError
	if err != nil {
		return err
	}
	a.logger.PrintInfo("stopped server", map[string]string{
		"addr": srv.Addr,
	})
	return nil
}
