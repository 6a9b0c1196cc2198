package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"betternotes/internal/config"
	"betternotes/internal/db"
	"betternotes/internal/httpserver"
	"betternotes/internal/imageurl"
	"betternotes/internal/pagestate"
	discountrepo "betternotes/internal/repository/discount"
	noterepo "betternotes/internal/repository/note"
	slideshowrepo "betternotes/internal/repository/slideshow"
	subjectrepo "betternotes/internal/repository/subject"
	"betternotes/internal/session"
	cartsvc "betternotes/internal/service/cart"
	catalogsvc "betternotes/internal/service/catalog"
	checkoutsvc "betternotes/internal/service/checkout"
	discountsvc "betternotes/internal/service/discount"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	var store session.Store
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatalf("connect to redis: %v", err)
		}
		defer client.Close()
		store = session.NewRedis(client, cfg.SessionTTL)
	} else {
		logger.Printf("REDIS_ADDR not set, using in-memory session store")
		store = session.NewMemory()
	}

	noteRepo := noterepo.NewPostgres(dbpool, logger)
	subjectRepo := subjectrepo.NewPostgres(dbpool, logger)
	slideshowRepo := slideshowrepo.NewPostgres(dbpool, logger)
	discountRepo := discountrepo.NewPostgres(dbpool, logger)

	catalogService := catalogsvc.New(noteRepo, subjectRepo, slideshowRepo)
	cartService := cartsvc.New(store, cfg.DiscountTiers, logger)
	discountService := discountsvc.New(discountRepo)
	checkoutService := checkoutsvc.New(cartService, cfg.TelegramHandle)
	tracker := pagestate.NewTracker(store, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CatalogSvc:     catalogService,
		CartSvc:        cartService,
		DiscountSvc:    discountService,
		CheckoutSvc:    checkoutService,
		PageState:      tracker,
		Images:         imageurl.New(cfg.ImageCDNBase),
		AllowedOrigins: cfg.AllowedOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
