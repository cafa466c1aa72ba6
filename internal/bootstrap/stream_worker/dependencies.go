package stream_worker

import (
	"cod-fraud-system/config"
	"cod-fraud-system/internal/bootstrap/scoring_service"
	"cod-fraud-system/internal/kafka"
	"cod-fraud-system/internal/logger"
	"cod-fraud-system/internal/models"
)

// Dependencies зависимости stream worker: сервис оценки и Kafka consumer
type Dependencies struct {
	*scoring_service.Dependencies
	KafkaConsumer kafka.Consumer
}

// InitializeDependencies собирает сервис оценки и подписывает его на топик заказов
func InitializeDependencies(cfg *config.Config) (*Dependencies, error) {
	base, err := scoring_service.InitializeDependencies(cfg, ServiceName)
	if err != nil {
		return nil, err
	}

	handler := func(event *models.OrderEvent) error {
		return processOrder(event, base.ScoringService, cfg.Scoring.StreamSessionID, cfg.Kafka.OrderTopic)
	}

	logger.Info("Connecting to Kafka...")
	consumer, err := kafka.NewConsumer(cfg, handler)
	if err != nil {
		base.Close()
		return nil, err
	}
	logger.Info("Kafka consumer connected successfully")

	return &Dependencies{
		Dependencies:  base,
		KafkaConsumer: consumer,
	}, nil
}

// Close закрывает consumer и соединения сервиса оценки
func (d *Dependencies) Close() error {
	if d.KafkaConsumer != nil {
		if err := d.KafkaConsumer.Close(); err != nil {
			return err
		}
	}
	return d.Dependencies.Close()
}
