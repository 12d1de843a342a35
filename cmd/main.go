package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"gocatalog/config"
	"gocatalog/internal/display"
	"gocatalog/internal/pkg/cache"
	"gocatalog/internal/pkg/database"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/pkg/metrics"
	"gocatalog/internal/pkg/middleware"
	"gocatalog/internal/pkg/token"
	"gocatalog/internal/pkg/tracing"

	"gocatalog/internal/api/book"
	"gocatalog/internal/api/order"
	"gocatalog/internal/api/product"
	"gocatalog/internal/api/router"
	"gocatalog/internal/repository/bookrepo"
	"gocatalog/internal/repository/orderrepo"
	"gocatalog/internal/repository/productrepo"
	"gocatalog/internal/service/bookservice"
	"gocatalog/internal/service/orderservice"
	"gocatalog/internal/service/productservice"
)

func main() {
	// 0. .env é opcional; em container as variáveis vêm do ambiente.
	if err := godotenv.Load(); err != nil {
		stdlog.Println("warning: .env not found, using system environment only")
	}

	// 1. Configuração e Logger
	cfg, err := config.LoadConfig()
	if err != nil {
		stdlog.Fatalf("failed to load config: %v", err)
	}

	log, err := logger.NewLogger(cfg.LogLevel)
	if err != nil {
		stdlog.Fatalf("failed to build logger: %v", err)
	}
	if zl, ok := log.(*logger.ZapLogger); ok {
		defer func() { _ = zl.Sync() }()
	}
	log.Info("configuration loaded", map[string]interface{}{"env": cfg.Environment, "port": cfg.Port})

	// 2. Infraestrutura

	// A. Banco de Dados (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", err)
	}
	defer db.Close()
	log.Info("postgres connection established", nil)

	// B. Cache (Redis ou memória)
	var cacheClient cache.Client
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedisClient(cfg.RedisAddr, cfg.CacheTimeout)
		if err != nil {
			log.Fatal("failed to connect to redis", err)
		}
		defer rc.Close()
		cacheClient = rc
		log.Info("redis connection established", map[string]interface{}{"addr": cfg.RedisAddr})
	} else {
		cacheClient = cache.NewMemoryClient()
		log.Warn("REDIS_ADDR not set, using in-memory cache", nil)
	}

	// C. Tracing (opcional)
	if cfg.JaegerEndpoint != "" {
		shutdown, err := tracing.InitTracing(cfg.ServiceName, cfg.JaegerEndpoint)
		if err != nil {
			log.Fatal("failed to initialize tracing", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				log.Error("tracer shutdown failed", err)
			}
		}()
		log.Info("tracing enabled", map[string]interface{}{"endpoint": cfg.JaegerEndpoint})
	}

	// D. Métricas
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewPrometheusRecorder(registry, log)

	// 3. Injeção de dependências: Repository -> Service -> Handler
	prices := display.NewPriceFormatter(cfg.PriceLocale)

	orderRepo := orderrepo.NewOrderRepository(db, cfg.DBTimeout)
	orderSvc := orderservice.NewService(orderRepo, cacheClient, cfg.CacheTTL, orderservice.NewMapper(prices), recorder, log)

	productRepo := productrepo.NewProductRepository(db, cfg.DBTimeout, log)
	productSvc := productservice.NewService(productRepo, cacheClient, cfg.CacheTTL, productservice.NewMapper(prices), recorder, log)

	bookSvc := bookservice.NewService(bookrepo.NewBookRepository(db, cfg.DBTimeout), log)

	// Tokens só quando JWT_SECRET_KEY estiver definido
	var tokens middleware.TokenValidator
	if cfg.AuthEnabled() {
		tokens = token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
		log.Info("write routes require an admin token", nil)
	}

	// 4. Roteador e Servidor
	r := router.NewRouter(router.Handlers{
		Orders:   order.NewHandler(orderSvc, log),
		Products: product.NewHandler(productSvc, log),
		Books:    book.NewHandler(bookSvc, log),
	}, router.Options{
		Logger:         log,
		Cache:          cacheClient,
		Tokens:         tokens,
		Registry:       registry,
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimit:      cfg.RateLimitMaxRequests,
		RatePeriod:     cfg.RateLimitPeriod,
		RequestTimeout: 30 * time.Second,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		log.Info("gocatalog listening", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("forced server shutdown", err)
	}
	log.Info("server stopped", nil)
}
