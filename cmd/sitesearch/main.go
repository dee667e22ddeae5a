package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/sitesearch/internal/config"
	dbRedis "github.com/kailas-cloud/sitesearch/internal/db/redis"
	logpkg "github.com/kailas-cloud/sitesearch/internal/logger"
	"github.com/kailas-cloud/sitesearch/internal/metrics"
	memberrepo "github.com/kailas-cloud/sitesearch/internal/repository/member"
	pageconfigrepo "github.com/kailas-cloud/sitesearch/internal/repository/pageconfig"
	searchrepo "github.com/kailas-cloud/sitesearch/internal/repository/search"
	chiTransport "github.com/kailas-cloud/sitesearch/internal/transport/chi"
	healthuc "github.com/kailas-cloud/sitesearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/sitesearch/internal/usecase/search"
	"github.com/kailas-cloud/sitesearch/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting sitesearch API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("category_filter_operator", string(cfg.Search.Operator())),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	// Repositories
	sc := cfg.Search
	pagesRepo := searchrepo.New(store, sc.PagesIndex, sc.PagesPrefix)
	membersRepo := memberrepo.New(store, sc.MembersIndex, sc.MembersPrefix, sc.MemberKeySeparator, sc.MemberLimit)
	pageCfgRepo := pageconfigrepo.New(store, sc.PageConfigPrefix)

	if sc.EnsureIndexes {
		if err := pagesRepo.EnsureIndex(ctx); err != nil {
			logger.Fatal("Failed to ensure pages index", zap.Error(err))
		}
		if sc.MembersEnabled {
			if err := membersRepo.EnsureIndex(ctx); err != nil {
				logger.Fatal("Failed to ensure members index", zap.Error(err))
			}
		}
		logger.Info("Indexes ready", zap.String("pages", sc.PagesIndex), zap.String("members", sc.MembersIndex))
	}

	// Use case services
	opts := []searchuc.Option{
		searchuc.WithPageSizeSource(pageCfgRepo),
		searchuc.WithRanker(searchuc.KeyPrefixRanker{Separator: sc.MemberKeySeparator}),
		searchuc.WithExternalType(sc.ExternalType),
		searchuc.WithMaxCandidates(sc.MaxCandidates),
		searchuc.WithExplain(sc.Explain()),
	}
	indexNames := []string{sc.PagesIndex}
	if sc.MembersEnabled {
		opts = append(opts, searchuc.WithMemberDirectory(membersRepo))
		indexNames = append(indexNames, sc.MembersIndex)
	}
	searchSvc := searchuc.New(pagesRepo, searchuc.StaticOperator(sc.Operator()), opts...)
	healthSvc := healthuc.New(store, store, indexNames...)

	// Create chi server
	server := chiTransport.NewServer(searchSvc, healthSvc, logger, time.Duration(sc.TimeoutSec)*time.Second)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	chiTransport.HandlerWithOptions(server, chiTransport.ChiServerOptions{
		BaseRouter: r,
		ErrorHandlerFunc: func(w http.ResponseWriter, _ *http.Request, err error) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
				Code:    chiTransport.ErrorResponseCodeBadRequest,
				Message: "invalid request",
			})
		},
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
