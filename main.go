package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rezensionsheld/backend/api"
	"github.com/rezensionsheld/backend/cache"
	"github.com/rezensionsheld/backend/config"
	"github.com/rezensionsheld/backend/db"
	"github.com/rezensionsheld/backend/mailer"
	"github.com/rezensionsheld/backend/middleware"
	"github.com/rezensionsheld/backend/providers"
	"github.com/rezensionsheld/backend/services"
	"github.com/rezensionsheld/backend/stores"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("configuration invalid: %v", err)
	}

	var orderStore *stores.OrderStore
	if cfg.HasDatabase() {
		conn, err := db.Connect(cfg.DatabaseURL, db.DefaultPoolConfig())
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		if err := db.Migrate(conn); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}
		orderStore = stores.NewOrderStore(conn)
		log.Println("database connected")
	} else {
		log.Println("DATABASE_URL not set, running without persistence")
	}

	var cacheStore cache.Store
	if cfg.HasRedis() {
		redisCache, err := cache.NewRedis(cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Printf("failed to connect to Redis: %v (falling back to in-memory cache)", err)
			cacheStore = cache.NewMemory()
		} else {
			defer redisCache.Close()
			cacheStore = redisCache
			log.Printf("redis cache connected at %s", cfg.Redis.Addr)
		}
	} else {
		cacheStore = cache.NewMemory()
	}

	var mail *mailer.Mailer
	if cfg.HasSMTP() {
		mail = mailer.NewMailer(mailer.Config{
			Host:          cfg.SMTP.Host,
			Port:          cfg.SMTP.Port,
			User:          cfg.SMTP.User,
			Password:      cfg.SMTP.Password,
			Secure:        cfg.SMTP.Secure,
			AdminEmail:    cfg.AdminEmail,
			SkipTLSVerify: !cfg.IsProduction(),
		})
		defer mail.Close()
		log.Printf("mailer configured for %s", cfg.SMTP.Host)
	} else {
		log.Println("SMTP not configured, notification mails disabled")
	}

	provider := providers.NewGoogleReviewsProvider(cfg.ReviewAPI.Key, cfg.ReviewAPI.BaseURL)

	reviewService := services.NewReviewService(provider, cacheStore)

	var persister services.OrderPersister
	var reader services.OrderReader
	if orderStore != nil {
		persister = orderStore
		reader = orderStore
	}

	var notifier services.Notifier
	if mail != nil {
		notifier = mail
	}

	orderService := services.NewOrderService(persister, notifier)
	reportService := services.NewReportService(reader)

	reviewHandler := api.NewReviewHandler(reviewService, !cfg.IsProduction())
	orderHandler := api.NewOrderHandler(orderService)
	adminHandler := api.NewAdminHandler(reportService)
	healthHandler := api.NewHealthHandler(cfg.Environment, cfg.HasDatabase(), cfg.HasSMTP())
	miscHandler := api.NewMiscHandler(mail, reportService, cacheStore)

	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.RecoveryMiddleware)
	router.Use(middleware.RateLimitMiddleware)

	router.HandleFunc("/api/reviews/{placeId}", reviewHandler.HandleGetReviews).Methods("GET")
	router.HandleFunc("/api/submit-order", orderHandler.HandleSubmitOrder).Methods("POST")
	router.HandleFunc("/api/admin/orders", adminHandler.HandleListOrders).Methods("GET")
	router.HandleFunc("/api/admin/orders-detailed", adminHandler.HandleListOrdersDetailed).Methods("GET")
	router.HandleFunc("/api/admin/order/{orderId}", adminHandler.HandleGetOrder).Methods("GET")
	router.HandleFunc("/api/health", healthHandler.HandleHealth).Methods("GET")
	router.HandleFunc("/api/business/{placeId}", miscHandler.HandleGetBusiness).Methods("GET")
	router.HandleFunc("/api/test-email", miscHandler.HandleTestEmail).Methods("GET")
	router.HandleFunc("/api/debug/orders-raw", miscHandler.HandleDebugOrdersRaw).Methods("GET")

	router.PathPrefix("/").Handler(api.NewStaticHandler(cfg.StaticDir))

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("listening on port %s (%s)", cfg.Server.Port, cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("server stopped")
}
