// Package main is the entry point for the API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/iskolarhq/iskor/internal/api"
	"github.com/iskolarhq/iskor/internal/config"
	"github.com/iskolarhq/iskor/internal/health"
	"github.com/iskolarhq/iskor/internal/middleware"
	"github.com/iskolarhq/iskor/internal/ranking"
	"github.com/iskolarhq/iskor/internal/tracing"
)

func main() {
	help := flag.Bool("help", false, "display help message")
	configPath := flag.String("config", "", "path to optional YAML config file")
	flag.Parse()

	if *help {
		fmt.Println("Iskor Applicant Ranking API Server")
		fmt.Println()
		fmt.Println("Usage: api [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	// Load configuration
	cfg, cfgErrs := config.Load(*configPath)
	if len(cfgErrs) > 0 {
		for _, err := range cfgErrs {
			fmt.Fprintln(os.Stderr, "config error:", err)
		}
		os.Exit(1)
	}

	// Initialize logger
	logger := middleware.NewLogger(cfg.Env)
	slog.SetDefault(logger)

	summary := cfg.LogSummary()
	attrs := make([]any, 0, len(summary)*2)
	for k, v := range summary {
		attrs = append(attrs, k, v)
	}
	logger.Info("configuration loaded", attrs...)

	// Initialize tracing
	tracerProvider, err := tracing.NewProvider(tracing.Config{
		ServiceName:  "iskor-api",
		Enabled:      cfg.TracingEnabled,
		Environment:  cfg.Env,
		ExporterType: cfg.TracingExporter,
		OTLPEndpoint: cfg.TracingEndpoint,
		SamplingRate: cfg.TracingSamplingRate,
		InsecureMode: cfg.TracingInsecure,
	})
	if err != nil {
		logger.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}

	// Prometheus registry with process and Go runtime collectors
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	httpMetrics := middleware.NewMetrics()
	if err := httpMetrics.Register(registry); err != nil {
		logger.Error("failed to register HTTP metrics", "error", err)
		os.Exit(1)
	}

	rankingMetrics := ranking.NewMetrics()
	if err := rankingMetrics.Register(registry); err != nil {
		logger.Error("failed to register ranking metrics", "error", err)
		os.Exit(1)
	}

	// Rate limit store: Redis when configured, in-memory otherwise
	var rateLimitStore middleware.RateLimitStore
	var redisChecker api.HealthChecker
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		rateLimitStore = middleware.NewRedisRateLimitStore(redisClient).WithMetrics(httpMetrics)
		redisChecker = health.NewRedisChecker(redisClient)
		logger.Info("using redis rate limit store", "addr", cfg.RedisAddr)
	} else {
		memStore := middleware.NewInMemoryRateLimitStore()
		rateLimitStore = memStore

		// Evict expired buckets periodically so the map does not grow unbounded.
		go func() {
			ticker := time.NewTicker(5 * time.Minute)
			defer ticker.Stop()
			for range ticker.C {
				memStore.Cleanup()
			}
		}()
	}

	// Scoring weights: defaults plus optional calibration file overrides
	weights := ranking.DefaultWeights()
	if cfg.CalibrationPath != "" {
		loaded, err := ranking.LoadCalibration(cfg.CalibrationPath)
		if err != nil {
			logger.Warn("failed to load calibration, using defaults",
				"path", cfg.CalibrationPath, "error", err)
		} else {
			weights = loaded
		}
	}

	rankHandlers := api.NewRankHandlers(api.RankHandlersConfig{
		Weights:         weights,
		Metrics:         rankingMetrics,
		MaxRequestBytes: cfg.MaxRequestBytes,
		Workers:         cfg.Workers,
	})
	healthHandlers := api.NewHealthHandlers(api.HealthHandlersConfig{
		RedisChecker:   redisChecker,
		MetricsEnabled: true,
	})

	// The ranking endpoint carries its own, stricter limit on top of the
	// global one since each call scores a whole batch.
	rankingLimit := middleware.DefaultRankingLimit()
	rankingLimit.RequestsPerWindow = cfg.RateLimitRankingPerMinute
	rankEndpoint := middleware.RateLimiter(rateLimitStore, rankingLimit, middleware.IPKeyFunc(), httpMetrics, "/rankings")(
		http.HandlerFunc(rankHandlers.Rank))

	mux := http.NewServeMux()
	mux.Handle("/rankings", rankEndpoint)
	mux.HandleFunc("/rankings/weights", rankHandlers.Weights)
	mux.HandleFunc("/health", healthHandlers.Health)
	mux.HandleFunc("/ready", healthHandlers.Ready)
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// Root endpoint doubles as the 404 handler for unknown paths
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			ctx := middleware.SetErrorCode(r.Context(), api.ErrCodeNotFound)
			api.WriteError(w, ctx, http.StatusNotFound, api.ErrCodeNotFound, "The requested resource was not found")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"service":"iskor-api","version":"0.0.1"}`)); err != nil {
			slog.Error("failed to write response", "error", err)
		}
	})

	corsConfig := middleware.CORSConfig{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         600,
	}

	globalLimit := middleware.DefaultGlobalLimit()
	globalLimit.RequestsPerWindow = cfg.RateLimitGlobalPerMinute

	// Middleware chain, outermost first:
	// RequestID -> Tracing -> Logging -> HTTPMetrics -> CORS -> RateLimiter -> mux
	var handler http.Handler = mux
	handler = middleware.RateLimiter(rateLimitStore, globalLimit, middleware.IPKeyFunc(), httpMetrics, "global")(handler)
	handler = middleware.CORS(corsConfig)(handler)
	handler = middleware.HTTPMetrics(httpMetrics)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Tracing("iskor-api")(handler)
	handler = middleware.RequestID(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting server", "port", cfg.Port, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Create context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	if err := tracerProvider.Shutdown(ctx); err != nil {
		logger.Error("failed to shut down tracer provider", "error", err)
	}

	logger.Info("server stopped")
}
