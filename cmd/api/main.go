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

	"monsavonvert/internal/config"
	"monsavonvert/internal/db"
	"monsavonvert/internal/httpserver"
	"monsavonvert/internal/publisher"
	orderrepo "monsavonvert/internal/repository/order"
	sessionrepo "monsavonvert/internal/repository/session"
	cartsvc "monsavonvert/internal/service/cart"
	checkoutsvc "monsavonvert/internal/service/checkout"
	"monsavonvert/internal/upstream"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	sessionStore := sessionrepo.NewRedis(redisClient)
	cartService := cartsvc.New(sessionStore)
	orderRepo := orderrepo.NewPostgres(dbpool)
	customerClient := upstream.NewCustomerClient(cfg.CustomerAPIURL)
	paymentClient := upstream.NewPaymentClient(cfg.PaymentAPIURL)
	checkoutService := checkoutsvc.New(sessionStore, cartService, orderRepo, customerClient, paymentClient, logger)

	relay := publisher.New(orderRepo, logger, cfg.KafkaBrokers...)
	go relay.Run(ctx)

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Carts:    cartService,
		Checkout: checkoutService,
	}, cfg.CORSOrigins)

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
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
