package stream_worker

import (
	"errors"

	"cod-fraud-system/internal/logger"
	"cod-fraud-system/internal/models"
	"cod-fraud-system/internal/scoring"
	"cod-fraud-system/internal/services"

	"go.uber.org/zap"
)

// processOrder оценивает заказ из Kafka события в общем сеансе потока.
// Невалидный заказ пропускается, чтобы не блокировать партицию.
func processOrder(event *models.OrderEvent, svc services.ScoringService, sessionID, topic string) error {
	logger.LogEvent(logger.EventKafkaReceived, ServiceName, "kafka", map[string]interface{}{
		"order_id": event.Data.OrderID,
		"event_id": event.EventID,
		"topic":    topic,
	})

	if _, err := svc.OpenSession(sessionID); err != nil {
		return err
	}

	verdict, err := svc.ScoreOrder(sessionID, &event.Data)
	if err != nil {
		var verr *scoring.ValidationError
		if errors.As(err, &verr) {
			logger.Warn("Skipping invalid order",
				zap.String("event_id", event.EventID),
				zap.Any("errors", verr.Errors),
			)
			return nil
		}
		logger.Error("Error scoring order", zap.Int64("order_id", event.Data.OrderID), zap.Error(err))
		return err
	}

	logger.Info("Order scored",
		zap.Int64("order_id", verdict.OrderID),
		zap.Float64("risk_percent", verdict.RiskPercent),
		zap.Bool("flagged", verdict.Flagged),
	)
	return nil
}
