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

	"github.com/aaravmahajanofficial/storefront-checkout/docs"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/cache"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/health"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/metrics"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	service "github.com/aaravmahajanofficial/storefront-checkout/internal/services"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/session"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/tracing"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/validation"
	"github.com/aaravmahajanofficial/storefront-checkout/pkg/mailer"
	"github.com/aaravmahajanofficial/storefront-checkout/pkg/orderapi"
	paymentClient "github.com/aaravmahajanofficial/storefront-checkout/pkg/stripe"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// @title						Storefront Checkout API
// @version					1.0
// @description				Cart, checkout flow and order submission for the storefront.
// @BasePath					/api/v1
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
// @description				Type "Bearer" followed by a space and the JWT.
func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx := context.Background()

	shutdownTracing, err := tracing.Setup(ctx, cfg.Otel, cfg.Env)
	if err != nil {
		slog.Error("❌ Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	redisCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	defer redisCache.Close()

	validator := validation.New()
	rateLimiter := repository.NewRateLimitRepo(redisClient, cfg.RateLimit)
	registry := session.NewRegistry(repository.NewCartRepo(repos.DB))
	invalidator := service.NewOrderInvalidator(redisCache)
	jwtKey := []byte(cfg.Security.JWTKey)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	var mail mailer.Mailer = mailer.NewLogMailer(logger)
	if cfg.SendGrid.APIKey != "" {
		mail = mailer.NewSendGridMailer(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	}

	var payments paymentClient.Client
	if cfg.Stripe.APIKey != "" {
		payments = paymentClient.NewStripeClient(paymentClient.Settings{
			APIKey:        cfg.Stripe.APIKey,
			Currency:      cfg.Stripe.Currency,
			WebhookSecret: cfg.Stripe.WebhookSecret,
			BackendURL:    cfg.Stripe.BackendURL,
		})
	}

	// Orders are created locally unless a remote order API is configured.
	var orderService service.OrderService
	var orders service.OrderAPI
	if cfg.OrderAPI.BaseURL == "" {
		orderService = service.NewOrderService(repository.NewOrderRepository(repos.DB), validator, payments, invalidator)
		orders = orderService
	} else {
		orders = service.NewRemoteOrderAPI(orderapi.NewClient(orderapi.Settings{
			BaseURL:            cfg.OrderAPI.BaseURL,
			Timeout:            cfg.OrderAPI.Timeout,
			BreakerMaxFailures: cfg.OrderAPI.BreakerMaxFailures,
			BreakerOpenTimeout: cfg.OrderAPI.BreakerOpenTimeout,
		}, orderapi.WithTokenSource(middleware.TokenFromContext)))
	}

	cartService := service.NewCartService(registry)
	cartHandler := handlers.NewCartHandler(cartService, validator)
	checkoutService := service.NewCheckoutService(registry, validator, orders, rateLimiter, invalidator, mail)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	orderQueryService := service.NewOrderQueryService(orders, redisCache, cfg.Cache.DefaultTTL)
	orderHandler := handlers.NewOrderHandler(orderService, orderQueryService, validator)

	healthEndpoints := &health.Endpoints{}
	if payments != nil {
		healthEndpoints.Stripe = payments
	}

	healthHandler, err := health.NewHealthHandler(cfg, healthEndpoints)
	if err != nil {
		slog.Error("❌ Error creating health handler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized",
		slog.String("env", cfg.Env),
		slog.String("version", docs.SwaggerInfo.Version),
		slog.Bool("remote_orders", cfg.OrderAPI.BaseURL != ""),
	)

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/cart", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("DELETE /api/v1/cart", authMiddleware.Authenticate(cartHandler.ClearCart()))
	routerMux.HandleFunc("POST /api/v1/cart/items", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/cart/items/{productId}", authMiddleware.Authenticate(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{productId}", authMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("GET /api/v1/checkout", authMiddleware.Authenticate(checkoutHandler.GetCheckout()))
	routerMux.HandleFunc("DELETE /api/v1/checkout", authMiddleware.Authenticate(checkoutHandler.Reset()))
	routerMux.HandleFunc("POST /api/v1/checkout/shipping", authMiddleware.Authenticate(checkoutHandler.SubmitShipping()))
	routerMux.HandleFunc("POST /api/v1/checkout/payment", authMiddleware.Authenticate(checkoutHandler.SubmitPayment()))
	routerMux.HandleFunc("POST /api/v1/checkout/back", authMiddleware.Authenticate(checkoutHandler.Back()))
	routerMux.HandleFunc("POST /api/v1/checkout/submit", authMiddleware.Authenticate(checkoutHandler.SubmitOrder()))
	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.Authenticate(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))

	if orderService != nil {
		routerMux.HandleFunc("POST /api/v1/orders", authMiddleware.Authenticate(orderHandler.CreateOrder()))
		routerMux.HandleFunc("PATCH /api/v1/orders/{id}/status", authMiddleware.Authenticate(orderHandler.UpdateOrderStatus()))

		if payments != nil {
			paymentHandler := handlers.NewPaymentWebhookHandler(payments, orderService)
			routerMux.HandleFunc("POST /api/v1/payments/webhook", paymentHandler.HandleWebhook())
		}
	}

	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Middleware chaining; metrics wraps the mux directly so it can read the matched pattern
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, cfg.Otel.ServiceName)

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
			done <- syscall.SIGTERM
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	// carts written after the last request still need to reach the database
	if err := registry.Close(shutdownCtx); err != nil {
		slog.Error("⚠️ Failed to flush carts", slog.String("error", err.Error()))
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Failed to flush traces", slog.String("error", err.Error()))
	}
}
