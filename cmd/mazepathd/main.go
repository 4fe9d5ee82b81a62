// Command mazepathd serves the maze solver over HTTP.
//
// Configuration comes from the environment (and an optional .env file);
// see package config for the keys. SIGINT or SIGTERM drains in-flight
// requests, then closes the Redis and MongoDB clients.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/schlac/mazepath/api"
	"github.com/schlac/mazepath/cache"
	"github.com/schlac/mazepath/config"
	"github.com/schlac/mazepath/logging"
	"github.com/schlac/mazepath/repo"
	"github.com/schlac/mazepath/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	gin.SetMode(cfg.GinMode)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	checks := map[string]api.Pinger{}
	backend, closeCache := initCache(ctx, cfg, log, checks)
	defer closeCache()
	store, closeStore := initStore(ctx, cfg, log, checks)
	defer closeStore()

	svc := service.New(service.Config{
		Backend:      backend,
		Store:        store,
		Logger:       log,
		MaxMazeBytes: cfg.MaxMazeBytes,
	})

	router := api.NewRouter(api.Config{
		Addr:    cfg.Addr(),
		BaseURL: "/api",
		Logger:  log,
		Controllers: []api.Controller{
			api.NewSolveController(svc, log),
			api.NewHealthController(checks),
		},
	})

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := router.Run(sigCtx); err != nil {
		log.WithError(err).Error("server stopped")
		return
	}
	log.Info("server stopped")
}

// initCache returns the configured backend and a func releasing it.
func initCache(ctx context.Context, cfg config.Config, log *logrus.Logger, checks map[string]api.Pinger) (cache.Backend, func()) {
	if cfg.CacheBackend != config.CacheRedis {
		log.WithFields(logrus.Fields{"ttl": cfg.CacheTTL, "max_entries": cfg.CacheMaxEntries}).Info("Using in-memory cache")
		mem := cache.NewMemory(cfg.CacheTTL)
		mem.SetMaxEntries(cfg.CacheMaxEntries)
		return mem, func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).WithField("addr", cfg.RedisAddr).Fatal("Redis ping failed")
	}
	checks["redis"] = api.PingFunc(func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
	log.WithField("addr", cfg.RedisAddr).Info("Connected to Redis")

	closeClient := func() {
		if err := client.Close(); err != nil {
			log.WithError(err).Warn("Closing Redis client")
		}
	}

	return cache.NewRedis(client, cfg.CacheTTL), closeClient
}

// initStore returns the configured store and a func releasing it.
func initStore(ctx context.Context, cfg config.Config, log *logrus.Logger, checks map[string]api.Pinger) (repo.Store, func()) {
	if cfg.MongoURI == "" {
		log.Info("Using in-memory solve history")
		return repo.NewMemoryStore(), func() {}
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.WithError(err).Fatal("MongoDB ping failed")
	}
	checks["mongo"] = api.PingFunc(func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	})

	solves := repo.NewSolveRepo(client, cfg.MongoDB, cfg.MongoCollection)
	if err := solves.EnsureIndexes(ctx); err != nil {
		log.WithError(err).Warn("Could not create indexes")
	}
	log.WithFields(logrus.Fields{"db": cfg.MongoDB, "collection": cfg.MongoCollection}).Info("Connected to MongoDB")

	disconnect := func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			log.WithError(err).Warn("Disconnecting from MongoDB")
		}
	}

	return solves, disconnect
}
