package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/phillip/autoclub-go/actions"
	"github.com/phillip/autoclub-go/auth"
	"github.com/phillip/autoclub-go/config"
	"github.com/phillip/autoclub-go/controllers"
	"github.com/phillip/autoclub-go/logging"
	"github.com/phillip/autoclub-go/middleware"
	"github.com/phillip/autoclub-go/models"
	"github.com/phillip/autoclub-go/queries"
	"github.com/phillip/autoclub-go/revalidate"
	"github.com/phillip/autoclub-go/routes"
	"github.com/phillip/autoclub-go/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.IsDevelopment())
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	db, err := store.Connect(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Close(closeCtx); err != nil {
			logger.Error("failed to disconnect from MongoDB", "error", err)
		}
	}()
	logger.Info("connected to MongoDB", "db", cfg.DBName)

	if err := db.EnsureIndexes(ctx); err != nil {
		return err
	}

	notifier := revalidate.Multi{revalidate.LogNotifier{Logger: logger}}
	if cfg.UseAMQP() {
		pub, err := revalidate.DialAMQP(cfg.AMQPURL, cfg.RevalidateExchange, logger)
		if err != nil {
			return err
		}
		defer pub.Close()
		notifier = append(notifier, pub)
		logger.Info("publishing revalidation notices", "exchange", cfg.RevalidateExchange)
	}

	validator := models.NewValidator()
	sessions := auth.NewSessionManager(cfg.JWTSecret, cfg.SessionTTL)
	if cfg.DemoAccounts {
		logger.Warn("demo accounts enabled")
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(logger), middleware.CORS(cfg.CORSOrigins))

	routes.SetupRoutes(r, routes.Deps{
		Actions:       actions.New(db, validator, notifier, logger),
		Queries:       queries.New(db, cfg.BookingURL, logger),
		Authenticator: auth.NewAuthenticator(db.Users(), validator, cfg.DemoAccounts, logger),
		Sessions:      sessions,
		Cookie:        controllers.SessionCookie{Name: cfg.SessionCookie, Secure: !cfg.IsDevelopment()},
		DB:            db,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server gracefully stopped")
	return nil
}
