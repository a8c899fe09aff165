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

	"guestgallery/cache"
	"guestgallery/config"
	"guestgallery/controller"
	"guestgallery/database"
	"guestgallery/events"
	"guestgallery/media"
	"guestgallery/middlewares"
	"guestgallery/models"
	"guestgallery/route"
	"guestgallery/scan"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	cfg := config.MustLoad()
	gin.SetMode(gin.ReleaseMode)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mediaStore, err := media.Open(ctx, media.Options{
		Driver: cfg.Media.Driver,
		S3: media.S3Options{
			Bucket:        cfg.Media.Bucket,
			Region:        cfg.Media.Region,
			Endpoint:      cfg.Media.Endpoint,
			PublicBaseURL: cfg.Media.PublicBaseURL,
		},
		Minio: media.MinioOptions{
			Endpoint:  cfg.Media.MinioEndpoint,
			AccessKey: cfg.Media.MinioAccessKey,
			SecretKey: cfg.Media.MinioSecretKey,
			Bucket:    cfg.Media.Bucket,
			UseSSL:    cfg.Media.MinioUseSSL,
		},
	})
	if err != nil {
		slog.Error("failed to open media store", "driver", cfg.Media.Driver, "error", err)
		os.Exit(1)
	}

	store, err := database.Open(ctx, database.Options{
		Driver:        cfg.Database.Driver,
		MongoURI:      cfg.Database.MongoURI,
		MongoDatabase: cfg.Database.MongoDatabase,
		SQLitePath:    cfg.Database.SQLitePath,
		PostgresDSN:   cfg.Database.PostgresDSN,
		Media:         mediaStore,
		MediaFolder:   cfg.Media.Folder,
	})
	if err != nil {
		slog.Error("failed to open record store", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	records := database.NewRecords(store)

	opts := []controller.Option{
		controller.WithFolder(cfg.Media.Folder),
		controller.WithSessionSecret(cfg.SessionSecret),
	}
	if cfg.SessionSecret == "" {
		slog.Info("SESSION_SECRET not set, guest name cookie disabled")
	}
	if cfg.Media.Presign {
		opts = append(opts, controller.WithPresign(cfg.Media.PresignTTL))
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			slog.Warn("redis unreachable, listing cache disabled", "addr", cfg.RedisAddr, "error", err)
			_ = redisClient.Close()
			redisClient = nil
		} else {
			listing := cache.New[models.ImageRecord](cache.NewRedisSlot(redisClient, "guestgallery:"))
			saves := cache.NewRedisGeneration(redisClient, "guestgallery:"+cache.DefaultGenerationKey)
			opts = append(opts, controller.WithListingCache(listing), controller.WithSaveGeneration(saves))
		}
	}

	var publisher events.Publisher = events.Noop{}
	if cfg.NATSURL != "" {
		nc, err := events.ConnectNATS(cfg.NATSURL)
		if err != nil {
			slog.Warn("[NATS] connection failed, image events disabled", "error", err)
		} else {
			publisher = nc
		}
	}
	opts = append(opts, controller.WithPublisher(publisher))

	if cfg.ClamAVURL != "" {
		scanner := scan.NewClamdScanner(cfg.ClamAVURL)
		if err := scanner.Ping(); err != nil {
			slog.Warn("clamd did not answer, uploads will be rejected until it does", "url", cfg.ClamAVURL, "error", err)
		}
		opts = append(opts, controller.WithScanner(scanner))
	}

	routerOpts := route.Options{CORSOrigins: cfg.CORSOrigins}
	stopTracing := func() {}
	if cfg.TraceEnabled {
		routerOpts.Tracing, stopTracing = middlewares.StartTracing()
	}
	limiter := middlewares.NewRateLimiter(cfg.UploadRateLimit, cfg.RateWindow)
	routerOpts.UploadLimit = limiter.Middleware()

	gallery := controller.NewGallery(records, mediaStore, opts...)
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           route.NewRouter(gallery, routerOpts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("guest gallery listening", "addr", server.Addr, "db", store.Driver(), "media", mediaStore.Driver())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	slog.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	limiter.Stop()
	publisher.Close()
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if err := records.Close(shutdownCtx); err != nil {
		slog.Error("record store close error", "error", err)
	}
	stopTracing()
}
