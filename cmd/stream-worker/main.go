package main

import (
	"log"

	"cod-fraud-system/config"
	"cod-fraud-system/internal/bootstrap/stream_worker"
	"cod-fraud-system/internal/logger"
)

func main() {
	cfg := config.Load()
	if err := logger.Init(cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	stream_worker.StartStreamWorker(cfg)
}
