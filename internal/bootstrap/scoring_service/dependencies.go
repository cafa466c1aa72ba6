package scoring_service

import (
	"fmt"
	"time"

	"cod-fraud-system/config"
	"cod-fraud-system/internal/classifier"
	"cod-fraud-system/internal/fraud"
	"cod-fraud-system/internal/generator"
	"cod-fraud-system/internal/kafka"
	"cod-fraud-system/internal/logger"
	"cod-fraud-system/internal/redis"
	"cod-fraud-system/internal/scoring"
	"cod-fraud-system/internal/services"
	"cod-fraud-system/internal/session"
	"cod-fraud-system/internal/storage"
	"cod-fraud-system/internal/storage/sqlite"

	"go.uber.org/zap"
)

// IP history backends
const (
	HistoryMemory = "memory"
	HistoryRedis  = "redis"
)

// Dependencies содержит все зависимости сервиса оценки
type Dependencies struct {
	StorageConn    *sqlite.SQLiteStorage
	StorageRepo    storage.VerdictRepository
	RedisClient    *redis.Client
	KafkaProducer  kafka.Producer
	Model          *classifier.LogisticModel
	ScoringService services.ScoringService
}

// InitializeDependencies поднимает хранилища, обучает модель и собирает сервис оценки.
// Redis и Kafka опциональны, кроме случая IP_HISTORY_BACKEND=redis.
func InitializeDependencies(cfg *config.Config, serviceName string) (*Dependencies, error) {
	deps := &Dependencies{}

	// Инициализация SQLite
	storageConn, err := sqlite.NewConnection(cfg)
	if err != nil {
		return nil, err
	}
	deps.StorageConn = storageConn
	deps.StorageRepo = sqlite.NewRepository(storageConn)

	// Инициализация Redis
	logger.Info("Connecting to Redis...")
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		if cfg.Scoring.IPHistory == HistoryRedis {
			deps.Close()
			return nil, fmt.Errorf("redis is required for IP history backend: %w", err)
		}
		logger.Warn("Redis unavailable, verdict cache disabled", zap.Error(err))
	} else {
		deps.RedisClient = redisClient
		logger.Info("Redis connection established")
	}

	// Инициализация Kafka Producer
	logger.Info("Connecting to Kafka...")
	producer, err := kafka.NewProducer(cfg)
	if err != nil {
		logger.Warn("Kafka unavailable, verdict publishing disabled", zap.Error(err))
	} else {
		deps.KafkaProducer = producer
		logger.Info("Kafka producer connected successfully")
	}

	model, err := TrainModel(cfg, serviceName)
	if err != nil {
		deps.Close()
		return nil, err
	}
	deps.Model = model

	scoringDeps := services.ScoringDeps{
		Pipeline: scoring.NewPipeline(model),
		Model:    model,
		Repo:     deps.StorageRepo,
		Sessions: session.NewStore(),
		History:  historyFactory(cfg, deps.RedisClient),
	}
	// Интерфейсные поля заполняем только реальными клиентами, иначе nil-указатель станет не-nil интерфейсом
	if deps.RedisClient != nil {
		scoringDeps.Redis = deps.RedisClient
	}
	if deps.KafkaProducer != nil {
		scoringDeps.Producer = deps.KafkaProducer
	}

	deps.ScoringService = services.NewScoringService(scoringDeps, services.ScoringConfig{
		ServiceName: serviceName,
		QueueSize:   cfg.Scoring.QueueSize,
		Seed:        cfg.Scoring.TrainingSeed,
	})

	return deps, nil
}

// TrainModel генерирует обучающую выборку и обучает классификатор
func TrainModel(cfg *config.Config, serviceName string) (*classifier.LogisticModel, error) {
	start := time.Now()

	dataset, err := generator.NewOrderGenerator(cfg.Scoring.TrainingSeed).Generate(cfg.Scoring.TrainingRows)
	if err != nil {
		return nil, fmt.Errorf("failed to generate training data: %w", err)
	}

	model, err := classifier.Train(dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to train classifier: %w", err)
	}

	summary := model.Summary()
	stats := dataset.Stats()
	logger.LogEvent(logger.EventModelTrained, serviceName, "classifier", map[string]interface{}{
		"rows":         summary.TrainingRows,
		"fraud_rows":   stats.FraudCount,
		"iterations":   summary.Iterations,
		"accuracy":     summary.TrainingAccuracy,
		"duration_ms":  time.Since(start).Milliseconds(),
		"coefficients": summary.Coefficients,
	})
	logger.Info("Classifier trained",
		zap.Int("rows", summary.TrainingRows),
		zap.Int("iterations", summary.Iterations),
		zap.Float64("accuracy", summary.TrainingAccuracy),
	)

	return model, nil
}

func historyFactory(cfg *config.Config, redisClient *redis.Client) services.HistoryFactory {
	if cfg.Scoring.IPHistory == HistoryRedis && redisClient != nil {
		return redisClient.SeenIPs
	}
	return func(string) fraud.IPHistory { return session.NewSeenIPSet() }
}

// Close закрывает все соединения
func (d *Dependencies) Close() error {
	if d.KafkaProducer != nil {
		if err := d.KafkaProducer.Close(); err != nil {
			return err
		}
	}
	if d.RedisClient != nil {
		if err := d.RedisClient.Close(); err != nil {
			return err
		}
	}
	if d.StorageConn != nil {
		if err := d.StorageConn.Close(); err != nil {
			return err
		}
	}
	return nil
}
