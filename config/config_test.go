package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"DB_PATH", "KAFKA_BROKERS", "TRAINING_ROWS", "TRAINING_SEED", "INCOMING_QUEUE_SIZE", "IP_HISTORY_BACKEND", "WORKER_HTTP_PORT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, ":memory:", cfg.DB.DBPath)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "cod.orders.scored", cfg.Kafka.VerdictTopic)
	assert.Equal(t, 500, cfg.Scoring.TrainingRows)
	assert.Equal(t, int64(42), cfg.Scoring.TrainingSeed)
	assert.Equal(t, 20, cfg.Scoring.QueueSize)
	assert.Equal(t, "memory", cfg.Scoring.IPHistory)
	assert.Equal(t, 8081, cfg.Server.WorkerPort)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("TRAINING_SEED", "7")
	t.Setenv("TRAINING_ROWS", "not-a-number")

	cfg := Load()

	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, int64(7), cfg.Scoring.TrainingSeed)
	assert.Equal(t, 500, cfg.Scoring.TrainingRows)
}
