package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"GiftBoxPayments/internal/config"
	"GiftBoxPayments/internal/db"
	"GiftBoxPayments/internal/gateway"
	internalhttp "GiftBoxPayments/internal/http"
	"GiftBoxPayments/internal/identity"
	"GiftBoxPayments/internal/services"
	"GiftBoxPayments/internal/store"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	st := store.New(pool)
	checkout := &services.CheckoutService{
		Store:           st,
		Gateway:         gateway.NewRazorpayClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret),
		Identity:        identity.NewClient(cfg.Identity.BaseURL, cfg.Identity.ServiceKey),
		KeySecret:       cfg.Razorpay.KeySecret,
		DefaultCurrency: cfg.Orders.DefaultCurrency,
	}

	h := internalhttp.NewHandler(checkout)
	srv := internalhttp.NewServer(h)

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Router,
	}

	go func() {
		log.Printf("api listening on %s", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctxShutdown)
}
