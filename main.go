package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restropos-services/internal/config"
	"restropos-services/internal/db"
	httpapi "restropos-services/internal/http"
	"restropos-services/internal/http/handlers"
	"restropos-services/internal/logger"
	"restropos-services/internal/orderstore"
	"restropos-services/internal/queue"
	"restropos-services/internal/storage"
	"restropos-services/internal/ws"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatal("schema migration failed", zap.Error(err))
	}

	orders := orderstore.New(pool)

	var archive *storage.ReceiptArchive
	if cfg.ObjectStoreEnabled() {
		archive, err = storage.NewReceiptArchive(ctx, storage.Config{
			Endpoint:        cfg.ObjectStoreEndpoint,
			Region:          cfg.ObjectStoreRegion,
			AccessKeyID:     cfg.ObjectStoreAccessKeyID,
			SecretAccessKey: cfg.ObjectStoreSecretAccessKey,
			Bucket:          cfg.ObjectStoreBucket,
			PublicBaseURL:   cfg.ObjectStorePublicBaseURL,
		})
		if err != nil {
			if cfg.Env == "production" {
				log.Fatal("object store init failed", zap.Error(err))
			}
			log.Warn("object store init failed; receipts will not be archived", zap.Error(err))
			archive = nil
		} else {
			log.Info("receipt archive enabled", zap.String("bucket", cfg.ObjectStoreBucket))
		}
	}

	var queueClient *queue.Client
	if cfg.RabbitMQURL != "" {
		qc, err := queue.New(cfg.RabbitMQURL)
		if err != nil {
			if cfg.Env == "production" {
				log.Fatal("rabbitmq connection failed", zap.Error(err))
			}
			log.Warn("rabbitmq connection failed; continuing without events", zap.Error(err))
			qc = nil
		}
		if qc != nil {
			if err := qc.EnsureTopology(); err != nil {
				if cfg.Env == "production" {
					log.Fatal("rabbitmq topology failed", zap.Error(err))
				}
				log.Warn("rabbitmq topology failed; continuing without events", zap.Error(err))
				_ = qc.Close()
				qc = nil
			}
		}

		queueClient = qc
		if qc != nil {
			defer qc.Close()
		}

		if queueClient != nil {
			if cfg.RabbitMQWorkerMode == "daemon" {
				log.Info("receipt archiver enabled", zap.String("mode", "daemon"))
				go func() {
					err := queueClient.ConsumeWithRetry(queue.ReceiptsQueue, func(ctx context.Context, body []byte) error {
						return queue.ArchiveCompletedReceipt(ctx, orders, archive, body)
					}, 5, 5*time.Second)
					if err != nil {
						log.Error("receipt consumer stopped", zap.Error(err))
					}
				}()
			} else {
				log.Info("receipt archiver disabled", zap.String("mode", cfg.RabbitMQWorkerMode))
			}
		}
	} else {
		log.Info("event publishing disabled (RABBITMQ_URL is empty)")
	}

	hub := ws.New(log, cfg)
	h := handlers.New(handlers.Handler{
		DB:      pool,
		Orders:  orders,
		Logger:  log,
		Config:  cfg,
		Queue:   queueClient,
		WS:      hub,
		Archive: archive,
	})

	apiServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(cfg, log, h, hub),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("restropos api ready", zap.String("base", "/api"))
		log.Info("restropos ws ready", zap.String("base", "/ws"))
		log.Info("restropos listening", zap.String("addr", cfg.HTTPAddr))
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxShutdown); err != nil {
		log.Error("http server shutdown failed", zap.Error(err))
	}
}
