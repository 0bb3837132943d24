package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/farmconnect/farmconnect/backend/api/handlers"
	"github.com/farmconnect/farmconnect/backend/api/internal/config"
	"github.com/farmconnect/farmconnect/backend/api/internal/database"
	"github.com/farmconnect/farmconnect/backend/api/internal/farm/handler"
	"github.com/farmconnect/farmconnect/backend/api/internal/farm/repository"
	"github.com/farmconnect/farmconnect/backend/api/internal/farm/service"
	"github.com/farmconnect/farmconnect/backend/api/internal/storage"
	"github.com/farmconnect/farmconnect/backend/api/pkg/logger"
	"github.com/farmconnect/farmconnect/backend/api/pkg/metrics"
	"github.com/farmconnect/farmconnect/backend/api/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.SetOutput(os.Stdout, cfg.Log.Format)
	logger.Init(cfg.Log.Level)
	logger.Infof("config loaded: mongo=%v driver=%s redis=%v minio=%v", cfg.MongoDB.URI != "", cfg.MongoDB.Driver, cfg.Redis.Host != "", cfg.MinIO.Endpoint != "")

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	ctx := context.Background()

	store := openStore(ctx, cfg)
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("redis ping failed (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
		}
		defer redisClient.Close()
	}

	var media handlers.MediaStore
	if cfg.MinIO.Endpoint != "" {
		ms, err := storage.NewMediaStorage(ctx, cfg.MinIO)
		if err != nil {
			logger.Warnf("media uploads disabled: %v", err)
		} else {
			media = ms
		}
	}

	r := gin.New()
	r.Use(middleware.RequestID(), gin.Logger(), gin.Recovery(), middleware.CORS(), middleware.RequestMetrics())
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	handlers.NewStatusHandler(store, redisClient, cfg.MongoDB.URI != "").Register(r)
	handlers.RegisterSwagger(r)
	handlers.RegisterMediaRoutes(r, media)
	handler.New(service.New(store)).Register(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("FarmConnect API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
	if ms, ok := store.(*repository.MongoStore); ok {
		_ = ms.Disconnect(shutdownCtx)
	}
}

// openStore builds the document store once. It returns nil when no store is
// configured or the single connection attempt fails; data endpoints then
// report the database as not configured.
func openStore(ctx context.Context, cfg *config.Config) repository.Store {
	if cfg.MongoDB.Driver == "memory" {
		logger.Warnf("using in-memory store; records are lost on restart")
		return repository.NewMemoryStore(cfg.MongoDB.Database)
	}
	if cfg.MongoDB.URI == "" {
		logger.Warnf("DATABASE_URL not set; data endpoints are unavailable")
		return nil
	}
	db, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Database, cfg.MongoDB.Timeout)
	if err != nil {
		logger.Errorf("could not connect to MongoDB: %v", err)
		return nil
	}
	logger.Infof("connected to MongoDB database %q", db.Name())
	return repository.NewMongoStore(db)
}
