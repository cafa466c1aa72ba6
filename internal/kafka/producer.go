package kafka

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"cod-fraud-system/config"
	"cod-fraud-system/internal/logger"
	"cod-fraud-system/internal/models"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

type ProducerImpl struct {
	producer     sarama.SyncProducer
	orderTopic   string
	verdictTopic string
}

func NewProducer(cfg *config.Config) (Producer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Info("Kafka producer created", zap.Strings("brokers", cfg.Kafka.Brokers))
	return NewProducerFromSync(producer, cfg.Kafka.OrderTopic, cfg.Kafka.VerdictTopic), nil
}

// NewProducerFromSync оборачивает готовый sarama.SyncProducer
func NewProducerFromSync(producer sarama.SyncProducer, orderTopic, verdictTopic string) Producer {
	return &ProducerImpl{
		producer:     producer,
		orderTopic:   orderTopic,
		verdictTopic: verdictTopic,
	}
}

func (p *ProducerImpl) SendOrderEvent(event *models.OrderEvent) error {
	return p.send(p.orderTopic, strconv.FormatInt(event.Data.OrderID, 10), event)
}

func (p *ProducerImpl) SendVerdictEvent(event *models.VerdictEvent) error {
	return p.send(p.verdictTopic, strconv.FormatInt(event.Data.OrderID, 10), event)
}

func (p *ProducerImpl) send(topic, key string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     topic,
		Key:       sarama.StringEncoder(key),
		Value:     sarama.StringEncoder(data),
		Timestamp: time.Now(),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	logger.Debug("Message sent",
		zap.String("topic", topic),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)
	return nil
}

func (p *ProducerImpl) Close() error {
	return p.producer.Close()
}
