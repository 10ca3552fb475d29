package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/example/lesson-shop/internal/api"
	"github.com/example/lesson-shop/internal/backend"
	"github.com/example/lesson-shop/internal/events"
	"github.com/example/lesson-shop/internal/shop"
	"github.com/joho/godotenv"
)

func main() {
	// Best-effort .env for local development.
	_ = godotenv.Load()

	addr := getEnv("SHOP_ADDR", ":8080")
	backendURL := getEnv("BACKEND_URL", "https://cw1-backend.onrender.com/Kitten")
	backendTimeout := 15 * time.Second
	kafkaBrokersStr := os.Getenv("KAFKA_BROKERS")
	kafkaTopic := getEnv("KAFKA_TOPIC", "shop-events")

	log.Println("[Shop] ========================================")
	log.Println("[Shop] Lesson Shop - Storefront Session Service")
	log.Println("[Shop] ========================================")
	log.Printf("[Shop] Backend: %s", backendURL)
	if kafkaBrokersStr != "" {
		log.Printf("[Shop] Kafka: %s (topic %s)", kafkaBrokersStr, kafkaTopic)
	} else {
		log.Println("[Shop] Kafka: disabled")
	}

	client := backend.NewClient(backendURL, backendTimeout)
	session := shop.NewSession(client)

	// Bridge session events to Kafka when brokers are configured.
	if kafkaBrokersStr != "" {
		producer := events.NewProducer(strings.Split(kafkaBrokersStr, ","), kafkaTopic)
		defer producer.Close()

		session.Subscribe(func(eventType string, data any) {
			env, err := events.NewEnvelope(eventType, data)
			if err != nil {
				log.Printf("[Shop] Failed to wrap %s event: %v", eventType, err)
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := producer.Publish(ctx, session.ID(), env); err != nil {
				log.Printf("[Shop] Failed to publish %s event: %v", eventType, err)
			}
		})
	}

	// Initial catalog load. A failure is logged, not fatal: the
	// catalog can be refreshed once the store comes back.
	startCtx, startCancel := context.WithTimeout(context.Background(), backendTimeout)
	if err := session.RefreshCatalog(startCtx); err != nil {
		log.Printf("[Shop] Initial catalog fetch failed: %v", err)
	} else {
		log.Printf("[Shop] Catalog loaded: %d lessons", len(session.Catalog()))
	}
	startCancel()

	handlers := api.NewHandlers(session)
	server := &http.Server{
		Addr:    addr,
		Handler: api.NewRouter(handlers),
	}

	go func() {
		log.Printf("[Shop] Server started on %s", addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("[Shop] Server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[Shop] Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	server.Shutdown(shutdownCtx)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
