package main

import (
	"log"

	"cod-fraud-system/config"
	"cod-fraud-system/internal/bootstrap/scoring_service"
	"cod-fraud-system/internal/logger"
)

// @title COD Fraud Scoring API
// @version 1.0
// @description Оценка риска мошенничества для заказов с оплатой при получении
// @host localhost:8080
// @BasePath /api/v1
func main() {
	cfg := config.Load()
	if err := logger.Init(cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	scoring_service.StartScoringService(cfg)
}
