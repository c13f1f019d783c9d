package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tigoviajes/catalog/internal/cache"
	"github.com/tigoviajes/catalog/internal/config"
	"github.com/tigoviajes/catalog/internal/middleware"
	"github.com/tigoviajes/catalog/internal/repository"
	"github.com/tigoviajes/catalog/internal/server"
	"github.com/tigoviajes/catalog/internal/service"
	"github.com/tigoviajes/catalog/internal/telemetry"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Println("Starting Tigo Viajes Catalog Service...")

	ctx := context.Background()

	otelProvider, err := telemetry.Initialize(ctx, cfg.OTEL)
	if err != nil {
		log.Printf("Warning: Failed to initialize OpenTelemetry: %v", err)
	}
	if otelProvider != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelProvider.Shutdown(shutdownCtx); err != nil {
				log.Printf("Error shutting down OpenTelemetry: %v", err)
			}
		}()
	}

	// Connect to MongoDB with OpenTelemetry instrumentation
	ctxMongo, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoOpts := options.Client().ApplyURI(cfg.MongoDB.URI)
	if cfg.OTEL.Enabled {
		mongoOpts.SetMonitor(otelmongo.NewMonitor())
	}

	mongoClient, err := mongo.Connect(ctxMongo, mongoOpts)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	if err := mongoClient.Ping(ctxMongo, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	log.Println("✓ MongoDB connected")

	mongoDB := mongoClient.Database(cfg.MongoDB.Database)
	if err := repository.EnsureIndexes(ctxMongo, mongoDB); err != nil {
		log.Fatalf("Failed to create MongoDB indexes: %v", err)
	}

	// Redis backs the shared cache and admin idempotency. Without it the
	// memory cache still works and idempotency is disabled.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		if cfg.Cache.Driver == config.CacheDriverRedis {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Printf("Warning: Redis unavailable, idempotency disabled: %v", err)
		_ = redisClient.Close()
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Println("✓ Redis connected")
	}

	cacheCfg := cache.DefaultConfig()
	cacheCfg.TTL = cfg.Cache.TTL
	cacheCfg.Capacity = cfg.Cache.Capacity
	cacheCfg.NumShards = cfg.Cache.NumShards
	catalogCache, err := cache.New(cfg.Cache.Driver, cacheCfg, redisClient)
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}
	log.Printf("✓ Cache ready (driver=%s, ttl=%s)", cfg.Cache.Driver, cfg.Cache.TTL)

	deps := server.AppDependencies{
		Config:       cfg,
		Repositories: service.NewMongoRepositories(mongoDB),
		Cache:        catalogCache,
		RedisClient:  redisClient,
	}

	// Firebase is only needed for admin login
	if cfg.Firebase.Enabled() {
		authClient, err := middleware.InitFirebase(ctx, cfg.Firebase.ProjectID, cfg.Firebase.PrivateKey, cfg.Firebase.ClientEmail)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		deps.AuthClient = authClient
		log.Println("✓ Firebase initialized")
	}

	if cfg.S3.Enabled() {
		imageStore, err := repository.NewS3ImageStore(ctx, cfg.S3)
		if err != nil {
			log.Printf("Warning: Failed to initialize S3 image store: %v", err)
		} else {
			deps.ImageStore = imageStore
			log.Println("✓ S3 image store ready")
		}
	}

	app := server.NewApp(deps)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down gracefully...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	log.Printf("🚀 Server starting on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
