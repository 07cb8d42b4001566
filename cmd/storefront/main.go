package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/aaravmahajanofficial/storefront/docs"
	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/cache"
	"github.com/aaravmahajanofficial/storefront/internal/catalog"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/events"
	"github.com/aaravmahajanofficial/storefront/internal/health"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	redisRepo "github.com/aaravmahajanofficial/storefront/internal/repository/redis"
	"github.com/aaravmahajanofficial/storefront/internal/search"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/session"
	"github.com/aaravmahajanofficial/storefront/internal/tracing"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

//	@title			Storefront API
//	@version		1.0
//	@description	Backend-for-frontend over a remote product catalog: listings, search suggestions and a per-session cart.
//	@host			localhost:8080
//	@BasePath		/api/v1

func main() {

	// Load config
	cfg := config.MustLoad()

	// Logger setup
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tracing setup
	shutdownTracing, err := tracing.Init(ctx, cfg.Otel)
	if err != nil {
		slog.Error("❌ Error initializing tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Catalog client
	var catalogClient catalog.Client
	catalogClient, err = catalog.NewClient(cfg.Catalog, nil)
	if err != nil {
		slog.Error("❌ Error configuring the catalog client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Redis setup, optional
	var redisClient *redis.Client
	if cfg.RedisConnect.Enabled() {
		redisClient, err = redisRepo.NewClient(ctx, cfg.RedisConnect)
		if err != nil {
			slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
			os.Exit(1)
		}

		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
			} else {
				slog.Info("✅ Redis connection closed")
			}
		}()

		catalogCache := cache.NewRedisCache(redisClient, &cfg.Cache)
		catalogClient = catalog.NewCachedClient(catalogClient, catalogCache, cfg.Cache.DefaultTTL)
	} else {
		slog.Warn("Redis not configured, catalog cache and suggestion rate limiting disabled")
	}

	// Cart events, optional
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled() {
		publisher = events.NewKafkaPublisher(cfg.Kafka)
		slog.Info("Publishing cart events", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("topic", cfg.Kafka.Topic))
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			slog.Error("⚠️ Error closing cart event publisher", slog.String("error", err.Error()))
		}
	}()

	// Sessions
	sessions := session.NewManager(catalogClient, search.Options{
		Debounce: cfg.Search.DebounceDelay,
		MinLen:   cfg.Search.MinQueryLength,
		Limit:    cfg.Search.SuggestionLimit,
	}, cfg.Session.TTL)
	sessions.OnCartChange(func(_ string, change models.CartChange) {
		metrics.IncCartMutation(string(change.Op))
	})
	sessions.OnCartChange(events.Listener(publisher))
	go sessions.Run(ctx, cfg.Session.SweepInterval)

	productService := service.NewProductService(catalogClient, cfg.Catalog.SimilarLimit)
	productHandler := handlers.NewProductHandler(productService, cfg.Catalog.DefaultPageSize)
	cartService := service.NewCartService(catalogClient)
	cartHandler := handlers.NewCartHandler(cartService)
	sessionMiddleware := middleware.NewSessionMiddleware(sessions, cfg.Session)

	suggestions := http.Handler(productHandler.Suggestions())
	if redisClient != nil {
		limiter := redisRepo.NewRateLimiter(redisClient, cfg.RateConfig, "suggest")
		suggestions = middleware.RateLimit(limiter, suggestions)
	}

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{Catalog: catalogClient})
	if err != nil {
		slog.Error("❌ Error creating the health handler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storefront initialized", slog.String("env", cfg.Env), slog.String("catalog", cfg.Catalog.BaseURL), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("GET /api/v1/categories", productHandler.ListCategories())
	routerMux.HandleFunc("GET /api/v1/search", productHandler.SearchProducts())
	routerMux.HandleFunc("GET /api/v1/search/suggestions", sessionMiddleware.Attach(suggestions))
	routerMux.HandleFunc("GET /api/v1/cart", sessionMiddleware.Attach(cartHandler.GetCart()))
	routerMux.HandleFunc("GET /api/v1/cart/count", sessionMiddleware.Attach(cartHandler.CartCount()))
	routerMux.HandleFunc("GET /api/v1/cart/events", sessionMiddleware.Attach(cartHandler.CartEvents()))
	routerMux.HandleFunc("POST /api/v1/cart/items", sessionMiddleware.Attach(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/cart/items/{id}", sessionMiddleware.Attach(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", sessionMiddleware.Attach(cartHandler.RemoveItem()))
	routerMux.HandleFunc("DELETE /api/v1/cart", sessionMiddleware.Attach(cartHandler.ClearCart()))
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "storefront")

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadTimeout,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	go func() { // Starts the HTTP server in a new goroutine so it doesn't block the main thread.

		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done() // blocks until SIGINT/SIGTERM, or the listener failed

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
	}
}
