package kafka

import (
	"context"

	"cod-fraud-system/internal/models"
)

// Producer определяет интерфейс для отправки сообщений в Kafka
type Producer interface {
	// SendOrderEvent публикует входящий заказ в топик заказов
	SendOrderEvent(event *models.OrderEvent) error

	// SendVerdictEvent публикует вердикт в топик вердиктов
	SendVerdictEvent(event *models.VerdictEvent) error

	Close() error
}

// Consumer читает входящие заказы из Kafka
type Consumer interface {
	Start(ctx context.Context) error
	Close() error
}

// OrderHandler обработчик входящего заказа
type OrderHandler func(event *models.OrderEvent) error
