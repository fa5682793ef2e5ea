package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/amarkules1/football-stats-tracker/internal/api/rest"
	"github.com/amarkules1/football-stats-tracker/internal/api/websocket"
	"github.com/amarkules1/football-stats-tracker/internal/cache"
	"github.com/amarkules1/football-stats-tracker/internal/ingest/gemini"
	"github.com/amarkules1/football-stats-tracker/internal/publisher"
	"github.com/amarkules1/football-stats-tracker/internal/session"
)

const (
	serviceName    = "football-stats-tracker"
	serviceVersion = "1.0.0"
)

func main() {
	log.Printf("Starting %s v%s - NFL Stats Extraction Service", serviceName, serviceVersion)

	// Load .env if present, then configuration from environment
	_ = godotenv.Load()
	config := loadConfig()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize Gemini client - fatal without a credential, no call attempted
	client, err := gemini.New(ctx, config.GeminiAPIKey, config.GeminiModel)
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}
	defer client.Close()

	log.Println("✓ Gemini client ready")

	// Redis is optional: without it there is no schedule cache and no
	// extraction stream, but extractions still work.
	var redisCache *cache.RedisCache
	var redisPublisher *publisher.RedisPublisher
	if config.RedisURL != "" {
		maxRetries := 5
		retryDelay := 2 * time.Second

		log.Println("Connecting to Redis...")
		for i := 0; i < maxRetries; i++ {
			redisCache, err = cache.NewRedisCache(config.RedisURL)
			if err == nil {
				break
			}
			if i < maxRetries-1 {
				log.Printf("Redis connection attempt %d/%d failed: %v (retrying in %v)", i+1, maxRetries, err, retryDelay)
				time.Sleep(retryDelay)
			}
		}
		if redisCache == nil {
			log.Printf("⚠️  Redis unavailable after %d attempts, continuing without cache", maxRetries)
		} else {
			defer redisCache.Close()
			log.Println("✓ Connected to Redis")

			redisPublisher, err = publisher.NewRedisPublisher(config.RedisURL)
			if err != nil {
				log.Printf("⚠️  Redis publisher unavailable: %v (continuing without stream)", err)
			} else {
				defer redisPublisher.Close()
				log.Println("✓ Redis publisher initialized")
			}
		}
	} else {
		log.Println("REDIS_URL not set, running without cache or stream")
	}

	// Extraction gateway
	var ingester *gemini.Ingester
	if redisCache != nil {
		ingester = gemini.NewIngester(client, redisCache)
	} else {
		ingester = gemini.NewIngester(client, nil)
	}

	// WebSocket server doubles as the orchestrator's state notifier
	wsServer := websocket.NewServer()

	var pub session.Publisher
	if redisPublisher != nil {
		pub = redisPublisher
	}
	orchestrator := session.NewOrchestrator(ingester, wsServer, pub)

	log.Println("✓ Extraction orchestrator ready")

	// Initialize REST API server
	restServer := rest.NewServer(config.RESTPort, orchestrator)
	go func() {
		log.Printf("Starting REST API server on port %s", config.RESTPort)
		if err := restServer.Start(); err != nil {
			log.Printf("REST server error: %v", err)
		}
	}()

	log.Printf("✓ REST API server listening on :%s", config.RESTPort)

	go func() {
		if err := wsServer.Start(config.WSPort); err != nil {
			log.Printf("WebSocket server error: %v", err)
		}
	}()

	log.Printf("✓ WebSocket server listening on :%s", config.WSPort)
	log.Printf("✓ %s v%s started successfully", serviceName, serviceVersion)
	log.Printf("  REST API: http://0.0.0.0:%s", config.RESTPort)
	log.Printf("  WebSocket: ws://0.0.0.0:%s", config.WSPort)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST API server shutdown error: %v", err)
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("WebSocket server shutdown error: %v", err)
	}

	log.Printf("%s stopped", serviceName)
}

type Config struct {
	GeminiAPIKey string
	GeminiModel  string
	RedisURL     string
	RESTPort     string
	WSPort       string
}

func loadConfig() Config {
	return Config{
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", gemini.DefaultModel),
		RedisURL:     getEnv("REDIS_URL", ""),
		RESTPort:     getEnv("REST_PORT", "8080"),
		WSPort:       getEnv("WS_PORT", "8081"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
