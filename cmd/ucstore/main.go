// Package main запускает HTTP-сервер витрины UC.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/ucstore/internal/config"
	"github.com/mmeshcher/ucstore/internal/handler"
	"github.com/mmeshcher/ucstore/internal/metrics"
	"github.com/mmeshcher/ucstore/internal/middleware"
	"github.com/mmeshcher/ucstore/internal/service"
	"github.com/mmeshcher/ucstore/internal/upstream"
	"github.com/mmeshcher/ucstore/internal/workflow"
)

const sweepInterval = time.Minute

func main() {
	cfg, err := config.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger initialization error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	sugar := logger.Sugar()

	if cfg.SessionSecret == "" {
		cfg.SessionSecret = uuid.NewString()
		sugar.Warn("session secret is not set, sessions will not survive a restart")
	}
	if cfg.OrderServiceURL == "" || cfg.PaymentServiceURL == "" {
		sugar.Warnw("order or payment service is not configured, submissions will fail",
			"order_url", cfg.OrderServiceURL, "payment_url", cfg.PaymentServiceURL)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	client := upstream.NewClient(upstream.Endpoints{
		OrderURL:    cfg.OrderServiceURL,
		PaymentURL:  cfg.PaymentServiceURL,
		SettingsURL: cfg.SettingsServiceURL,
	}, cfg.RequestTimeout, upstream.WithTransport(m.InstrumentTransport(nil)))

	contacts := service.NewContactBook()
	sessions := workflow.NewStore()
	engine := workflow.NewEngine(client, client, logger)
	svc := service.NewService(sessions, engine, contacts)

	sessionMiddleware := middleware.NewSessionMiddleware(cfg.SessionSecret)
	h := handler.NewHandler(svc, logger, sessionMiddleware,
		handler.WithObserver(m),
		handler.WithMount("/metrics", metrics.Handler(reg)),
	)

	r := h.SetupRouter(m.Middleware)

	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Контакты поддержки загружаются один раз при старте
	if cfg.SettingsServiceURL != "" {
		g.Go(func() error {
			service.LoadContacts(ctx, client, contacts, logger)
			return nil
		})
	}

	// Очистка брошенных диалогов заказа
	g.Go(func() error {
		svc.StartSessionSweeper(ctx, sweepInterval, cfg.SessionIdleTimeout)
		return nil
	})

	g.Go(func() error {
		sugar.Infow("starting ucstore server", "addr", cfg.RunAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка в другой горутине)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout+5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}
