package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	DB          DBConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	Server      ServerConfig
	Scoring     ScoringConfig
}

type DBConfig struct {
	DBPath string // Путь к файлу SQLite, ":memory:" - без сохранения между запусками
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type KafkaConfig struct {
	Brokers         []string
	OrderTopic      string
	VerdictTopic    string
	ConsumerGroupID string
}

type ServerConfig struct {
	HTTPPort   int
	GRPCPort   int
	WorkerPort int // служебный HTTP порт stream worker (health, metrics)
}

// ScoringConfig параметры обучения и сеансов
type ScoringConfig struct {
	TrainingRows    int
	TrainingSeed    int64
	QueueSize       int
	IPHistory       string // memory или redis
	StreamSessionID string
}

func Load() *Config {
	// Загружаем .env файл, если он существует
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		DB: DBConfig{
			DBPath: getEnv("DB_PATH", ":memory:"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Kafka: KafkaConfig{
			Brokers:         getEnvAsList("KAFKA_BROKERS", []string{"localhost:9092"}),
			OrderTopic:      getEnv("KAFKA_ORDER_TOPIC", "cod.orders.received"),
			VerdictTopic:    getEnv("KAFKA_VERDICT_TOPIC", "cod.orders.scored"),
			ConsumerGroupID: getEnv("KAFKA_CONSUMER_GROUP", "cod-stream-worker"),
		},
		Server: ServerConfig{
			HTTPPort:   getEnvAsInt("HTTP_PORT", 8080),
			GRPCPort:   getEnvAsInt("GRPC_PORT", 50051),
			WorkerPort: getEnvAsInt("WORKER_HTTP_PORT", 8081),
		},
		Scoring: ScoringConfig{
			TrainingRows:    getEnvAsInt("TRAINING_ROWS", 500),
			TrainingSeed:    getEnvAsInt64("TRAINING_SEED", 42),
			QueueSize:       getEnvAsInt("INCOMING_QUEUE_SIZE", 20),
			IPHistory:       getEnv("IP_HISTORY_BACKEND", "memory"),
			StreamSessionID: getEnv("STREAM_SESSION_ID", "stream"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList список через запятую
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
