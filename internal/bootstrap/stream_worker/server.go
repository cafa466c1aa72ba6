package stream_worker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cod-fraud-system/config"
	"cod-fraud-system/internal/api/rest"
	"cod-fraud-system/internal/logger"
	"cod-fraud-system/internal/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ServiceName имя сервиса в журнале событий и метриках
const ServiceName = "stream-worker"

// StartStreamWorker читает заказы из Kafka и оценивает их до сигнала остановки
func StartStreamWorker(cfg *config.Config) {
	deps, err := InitializeDependencies(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize dependencies", zap.Error(err))
	}
	defer deps.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		logger.Info("Starting Kafka consumer...")
		if err := deps.KafkaConsumer.Start(ctx); err != nil {
			logger.Fatal("Kafka consumer error", zap.Error(err))
		}
	}()

	// Служебные endpoints: health, metrics, events, stats
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(metrics.Middleware(ServiceName))
	rest.SetupCommonEndpoints(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.WorkerPort),
		Handler: router,
	}

	go func() {
		logger.Info("Stream Worker starting", zap.Int("port", cfg.Server.WorkerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down services...")
	cancel()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Services exited")
}
