package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/xavierca1/fluent-crm/internal/config"
	"github.com/xavierca1/fluent-crm/internal/infra/database"
	"github.com/xavierca1/fluent-crm/internal/infra/http/handlers"
	"github.com/xavierca1/fluent-crm/internal/infra/http/middleware"
	"github.com/xavierca1/fluent-crm/internal/infra/mail"
	"github.com/xavierca1/fluent-crm/internal/infra/queue"
	"github.com/xavierca1/fluent-crm/internal/infra/worker"
	"github.com/xavierca1/fluent-crm/internal/logger"
	"github.com/xavierca1/fluent-crm/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg, err := logger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Database (optional: without it the overview degrades to empty)
	var db *sql.DB
	if url := cfg.DatabaseURL(); url != "" {
		db, err = database.NewDBConnection(ctx, cfg.Database.Driver, url)
		if err != nil {
			logg.Error("database unavailable, running degraded", zap.Error(err))
			db = nil
		} else {
			defer db.Close()
		}
	} else {
		logg.Warn("no database configured, running degraded")
	}

	repos := usecase.Repositories{
		Contacts:     database.NewContactRepository(db),
		Companies:    database.NewCompanyRepository(db),
		Deals:        database.NewDealRepository(db),
		Tasks:        database.NewTaskRepository(db),
		Interactions: database.NewInteractionRepository(db),
	}

	// 2. Broker and welcome worker (optional)
	var (
		broker handlers.Broker
		events usecase.LeadEventPublisher
	)
	if cfg.RabbitMQURL != "" {
		rabbit, err := queue.NewRabbitMQ(ctx, cfg.RabbitMQURL, logg)
		if err != nil {
			logg.Error("rabbitmq unavailable, lead events disabled", zap.Error(err))
		} else {
			defer rabbit.Close()
			broker = rabbit
			events = queue.NewProducer(rabbit.Ch)
			startWelcomeWorker(ctx, cfg, rabbit, logg)
		}
	}

	// 3. UseCases
	captureLead := usecase.NewCaptureLeadUseCase(repos.Contacts, events, logg)
	overview := usecase.NewOverviewUseCase(repos, logg)

	// 4. Handlers
	set := handlers.Set{
		Health:       handlers.NewHealthHandler(db, broker, cfg.Version),
		Leads:        handlers.NewLeadHandler(captureLead, handlers.NewRateLimiter(ctx, cfg.LeadRateLimit, cfg.LeadRateWindow), logg),
		Overview:     handlers.NewOverviewHandler(overview),
		Contacts:     handlers.NewContactHandler(usecase.NewContactUseCase(repos, logg), logg),
		Deals:        handlers.NewDealHandler(usecase.NewDealUseCase(repos, logg), logg),
		Tasks:        handlers.NewTaskHandler(usecase.NewTaskUseCase(repos, logg), logg),
		Interactions: handlers.NewInteractionHandler(usecase.NewInteractionUseCase(repos, logg), logg),
	}

	go worker.NewMetricsRefresher(overview, cfg.MetricsRefreshInterval, logg).Start(ctx)

	// 5. Router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Handle("/metrics", promhttp.Handler())
	handlers.Register(r, set)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logg.Info("server listening", zap.String("addr", srv.Addr), zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("graceful shutdown failed", zap.Error(err))
	}
}

func startWelcomeWorker(ctx context.Context, cfg *config.Config, rabbit *queue.RabbitMQ, logg *zap.Logger) {
	if !cfg.Mail.Enabled() {
		logg.Info("mail not configured, welcome worker disabled")
		return
	}

	sender, err := mail.NewEmailSender(mail.Config{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		User:     cfg.Mail.User,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
	})
	if err != nil {
		logg.Error("welcome worker disabled", zap.Error(err))
		return
	}

	// the worker gets its own channel so consuming never blocks publishing
	ch, err := rabbit.Conn.Channel()
	if err != nil {
		logg.Error("failed to open worker channel", zap.Error(err))
		return
	}

	go func() {
		defer ch.Close()
		if err := queue.NewWorker(ch, sender, logg).Start(ctx, queue.QueueName); err != nil {
			logg.Error("welcome worker stopped", zap.Error(err))
		}
	}()
}
