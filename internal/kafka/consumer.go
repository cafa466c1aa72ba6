package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"cod-fraud-system/config"
	"cod-fraud-system/internal/logger"
	"cod-fraud-system/internal/metrics"
	"cod-fraud-system/internal/models"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

type ConsumerImpl struct {
	consumer sarama.ConsumerGroup
	topic    string
	handler  OrderHandler
}

func NewConsumer(cfg *config.Config, handler OrderHandler) (Consumer, error) {
	config := sarama.NewConfig()
	config.Consumer.Group.Rebalance.Strategy = sarama.NewBalanceStrategyRoundRobin()
	config.Consumer.Offsets.Initial = sarama.OffsetOldest
	config.Consumer.Return.Errors = true
	config.Version = sarama.V2_8_0_0

	consumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.Kafka.ConsumerGroupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer: %w", err)
	}

	logger.Info("Kafka consumer created",
		zap.String("topic", cfg.Kafka.OrderTopic),
		zap.String("group", cfg.Kafka.ConsumerGroupID),
	)
	return &ConsumerImpl{
		consumer: consumer,
		topic:    cfg.Kafka.OrderTopic,
		handler:  handler,
	}, nil
}

// Start читает сообщения до отмены контекста
func (c *ConsumerImpl) Start(ctx context.Context) error {
	topics := []string{c.topic}

	handler := &consumerGroupHandler{
		handler: c.handler,
	}

	wg := &sync.WaitGroup{}
	wg.Add(1)

	go func() {
		defer wg.Done()
		for {
			if err := c.consumer.Consume(ctx, topics, handler); err != nil {
				logger.Error("Error from consumer", zap.Error(err))
				return
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	go func() {
		for {
			select {
			case err, ok := <-c.consumer.Errors():
				if !ok {
					return
				}
				logger.Warn("Consumer error", zap.Error(err))
			case <-ctx.Done():
				return
			}
		}
	}()

	<-ctx.Done()
	logger.Info("Consumer context cancelled, shutting down")
	wg.Wait()
	return c.consumer.Close()
}

func (c *ConsumerImpl) Close() error {
	return c.consumer.Close()
}

type consumerGroupHandler struct {
	handler OrderHandler
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

// ConsumeClaim битые сообщения и ошибки обработки логируются, смещение все равно фиксируется
func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok || message == nil {
				return nil
			}

			var event models.OrderEvent
			if err := json.Unmarshal(message.Value, &event); err != nil {
				logger.Warn("Error unmarshaling message",
					zap.Int64("offset", message.Offset),
					zap.Error(err),
				)
				metrics.StreamMessages.WithLabelValues(metrics.OutcomeBadPayload).Inc()
				session.MarkMessage(message, "")
				continue
			}

			if err := h.handler(&event); err != nil {
				logger.Error("Error handling message",
					zap.Int64("order_id", event.Data.OrderID),
					zap.Error(err),
				)
				metrics.StreamMessages.WithLabelValues(metrics.OutcomeFailed).Inc()
			} else {
				metrics.StreamMessages.WithLabelValues(metrics.OutcomeHandled).Inc()
			}

			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}
