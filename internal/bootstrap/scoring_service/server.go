package scoring_service

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
	_ "cod-fraud-system/docs" // Swagger docs
	"cod-fraud-system/internal/api/rest"
	"cod-fraud-system/internal/grpc"
	"cod-fraud-system/internal/logger"

	"go.uber.org/zap"
)

// ServiceName имя сервиса в журнале событий и метриках
const ServiceName = "scoring-service"

// StartScoringService запускает REST и gRPC API сервиса оценки
func StartScoringService(cfg *config.Config) {
	deps, err := InitializeDependencies(cfg, ServiceName)
	if err != nil {
		logger.Fatal("Failed to initialize dependencies", zap.Error(err))
	}
	defer deps.Close()

	// Настройка REST API
	handlers := rest.NewHandlers(deps.ScoringService)
	router := rest.SetupRouter(ServiceName, handlers)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler: router,
	}

	go func() {
		logger.Info("Scoring Service starting", zap.Int("port", cfg.Server.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Запуск gRPC сервера в отдельной горутине
	grpcServer := grpc.NewGRPCServer(grpc.NewScoringGRPCServer(deps.ScoringService))
	go func() {
		if err := grpc.StartGRPCServer(cfg, grpcServer); err != nil {
			logger.Fatal("Failed to start gRPC server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down services...")
	grpcServer.GracefulStop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Services exited")
}
