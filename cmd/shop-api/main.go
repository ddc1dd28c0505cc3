package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Tenchi88/flask-shop/internal/api"
	"github.com/Tenchi88/flask-shop/internal/api/middleware"
	"github.com/Tenchi88/flask-shop/internal/cache"
	"github.com/Tenchi88/flask-shop/internal/config"
	"github.com/Tenchi88/flask-shop/internal/health"
	"github.com/Tenchi88/flask-shop/internal/metrics"
	"github.com/Tenchi88/flask-shop/internal/models"
	"github.com/Tenchi88/flask-shop/internal/ratelimit"
	repository "github.com/Tenchi88/flask-shop/internal/repositories"
	service "github.com/Tenchi88/flask-shop/internal/services"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// .env is optional, real deployments configure via the environment
	_ = godotenv.Load()

	// Load config
	cfg := config.MustLoad()

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("Database connection closed")
		}
	}()

	// Detail responses are cached in Redis when an address is configured.
	responseCache := cache.NewNopCache()

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := client.Ping(pingCtx).Err(); err != nil {
			slog.Error("Error accessing the redis instance", slog.String("error", err.Error()))
			os.Exit(1)
		}

		responseCache = cache.NewRedisCache(client, &cfg.Cache)
	}

	defer func() {
		if err := responseCache.Close(); err != nil {
			slog.Error("Error closing cache", slog.String("error", err.Error()))
		}
	}()

	// Access gate shared by both collections
	counter := ratelimit.NewCounter()
	gate := middleware.NewGate(repos.APIKeys, counter, &cfg.Gate)

	productService := service.NewResourceService("products", models.NewSchema(models.ProductModel()), repos.Products, responseCache)
	categoryService := service.NewResourceService("categories", models.NewSchema(models.CategoryModel()), repos.Categories, responseCache)

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	api.AddResource(routerMux, cfg.APIVersion, "products", productService, gate)
	api.AddResource(routerMux, cfg.APIVersion, "categories", categoryService, gate)

	routerMux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, fmt.Sprintf("/v%d/products/", cfg.APIVersion), http.StatusFound)
	})

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("Error building health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: handler,
	}

	slog.Info("Server is starting...", slog.String("address", cfg.HTTPServer.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("Server shut down gracefully. All connections closed.")
	}
}
