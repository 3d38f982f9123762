package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-admin/config"
	"catalog-admin/internal/api"
	"catalog-admin/internal/broker"
	"catalog-admin/internal/redisclient"
	"catalog-admin/internal/remote"
	"catalog-admin/internal/service"
	"catalog-admin/internal/store"
	"catalog-admin/internal/util"
	"catalog-admin/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting catalog admin gateway")

	tp, err := util.InitTracer("catalog-admin", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	remoteClient := remote.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	log.Printf("Upstream client ready: %s", cfg.Upstream.BaseURL)

	var cache *redisclient.Client
	if cfg.Redis.Enabled {
		cache, err = redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.CatalogTTL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer cache.Close()
		log.Println("Catalog cache connected")
	}

	var eventPublisher *broker.EventPublisher
	var auditStore *store.Store
	var auditWorker *worker.AuditWorker

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	if cfg.Kafka.Enabled {
		producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicAudit)
		defer producer.Close()
		eventPublisher = broker.NewEventPublisher(producer)
		log.Println("Audit event publisher initialized")

		if cfg.Database.Enabled {
			auditStore, err = store.NewStore(cfg.Database.URL)
			if err != nil {
				log.Fatalf("Failed to connect to database: %v", err)
			}
			defer auditStore.Close()
			log.Println("Audit store connected")

			consumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicAudit, cfg.Kafka.ConsumerGroup)
			auditWorker = worker.NewAuditWorker(consumer, auditStore)
			go func() {
				if err := auditWorker.Start(workerCtx); err != nil {
					log.Printf("Audit worker error: %v", err)
				}
			}()
		}
	}

	productService := service.NewProductService(remoteClient, cache, eventPublisher)
	orderService := service.NewOrderService(remoteClient, cache, eventPublisher)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler := api.NewHandler(productService, orderService, auditStore)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	if auditWorker != nil {
		auditWorker.Stop()
	}

	log.Println("Server exited")
}
