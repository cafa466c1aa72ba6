package services

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"cod-fraud-system/internal/fraud"
	"cod-fraud-system/internal/generator"
	"cod-fraud-system/internal/kafka"
	"cod-fraud-system/internal/logger"
	"cod-fraud-system/internal/metrics"
	"cod-fraud-system/internal/models"
	"cod-fraud-system/internal/redis"
	"cod-fraud-system/internal/scoring"
	"cod-fraud-system/internal/session"
	"cod-fraud-system/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultVerdictLimit = 100
	MaxVerdictLimit     = 500
	maxGenerateCount    = 1000
)

// ScoringDeps зависимости сервиса. Redis и Producer опциональны.
type ScoringDeps struct {
	Pipeline *scoring.Pipeline
	Model    ModelDescriber
	Repo     storage.VerdictRepository
	Sessions *session.Store
	History  HistoryFactory
	Redis    redis.ClientInterface
	Producer kafka.Producer
}

// ScoringConfig параметры сервиса
type ScoringConfig struct {
	ServiceName string
	QueueSize   int
	Seed        int64
}

// ScoringServiceImpl реализует интерфейс ScoringService
type ScoringServiceImpl struct {
	deps     ScoringDeps
	cfg      ScoringConfig
	seedStep atomic.Int64
}

// NewScoringService создает новый сервис оценки
func NewScoringService(deps ScoringDeps, cfg ScoringConfig) ScoringService {
	if deps.Sessions == nil {
		deps.Sessions = session.NewStore()
	}
	if deps.History == nil {
		deps.History = func(string) fraud.IPHistory { return session.NewSeenIPSet() }
	}
	return &ScoringServiceImpl{deps: deps, cfg: cfg}
}

// nextGenerator у каждого сеанса свой seed, производный от базового
func (s *ScoringServiceImpl) nextGenerator() *generator.OrderGenerator {
	return generator.NewOrderGenerator(s.cfg.Seed + s.seedStep.Add(1))
}

func (s *ScoringServiceImpl) CreateSession() (*models.Session, error) {
	queue, err := s.nextGenerator().GenerateIncoming(s.cfg.QueueSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate incoming orders: %w", err)
	}

	id := uuid.New().String()
	sess, err := s.deps.Sessions.Create(id, queue, s.deps.History(id))
	if err != nil {
		return nil, err
	}

	logger.LogEvent(logger.EventSessionCreated, s.cfg.ServiceName, "session", map[string]interface{}{
		"session_id": id,
		"queue_size": len(queue),
	})

	return sess.Snapshot(), nil
}

func (s *ScoringServiceImpl) OpenSession(sessionID string) (*models.Session, error) {
	if sess, err := s.deps.Sessions.Get(sessionID); err == nil {
		return sess.Snapshot(), nil
	}

	sess, err := s.deps.Sessions.Create(sessionID, nil, s.deps.History(sessionID))
	if errors.Is(err, session.ErrSessionExists) {
		sess, err = s.deps.Sessions.Get(sessionID)
	}
	if err != nil {
		return nil, err
	}

	logger.LogEvent(logger.EventSessionCreated, s.cfg.ServiceName, "session", map[string]interface{}{
		"session_id": sessionID,
		"queue_size": 0,
	})
	return sess.Snapshot(), nil
}

func (s *ScoringServiceImpl) GetSession(sessionID string) (*models.Session, error) {
	sess, err := s.deps.Sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Snapshot(), nil
}

func (s *ScoringServiceImpl) IngestNext(sessionID string) (*models.Verdict, error) {
	sess, err := s.deps.Sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	order, ok := sess.Next()
	if !ok {
		return nil, ErrQueueExhausted
	}

	return s.score(sess, &order, "queue")
}

func (s *ScoringServiceImpl) ScoreOrder(sessionID string, order *models.Order) (*models.Verdict, error) {
	sess, err := s.deps.Sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return s.score(sess, order, "api")
}

// score прогоняет заказ через конвейер и раскладывает вердикт по хранилищам.
// Ошибка SQLite возвращается, ошибки Redis и Kafka только логируются.
// Счетчики сеанса растут только после сохранения вердикта; IP при ошибке сохранения остается в множестве.
func (s *ScoringServiceImpl) score(sess *session.Session, order *models.Order, source string) (*models.Verdict, error) {
	if order != nil {
		logger.LogEvent(logger.EventOrderReceived, s.cfg.ServiceName, "pipeline", map[string]interface{}{
			"session_id": sess.ID,
			"order_id":   order.OrderID,
			"source":     source,
		})
	}

	verdict, err := s.deps.Pipeline.Process(order, sess.Seen)
	if err != nil {
		reason := "internal"
		var verr *scoring.ValidationError
		if errors.As(err, &verr) {
			reason = "validation"
		}
		metrics.ScoringErrors.WithLabelValues(source, reason).Inc()
		return nil, err
	}
	verdict.SessionID = sess.ID

	logger.LogEvent(logger.EventRulesEvaluated, s.cfg.ServiceName, "pipeline", map[string]interface{}{
		"order_id": verdict.OrderID,
		"flags":    verdict.Flags,
	})
	logger.LogEvent(logger.EventOrderScored, s.cfg.ServiceName, "pipeline", map[string]interface{}{
		"order_id":     verdict.OrderID,
		"risk_percent": verdict.RiskPercent,
		"flagged":      verdict.Flagged,
	})
	if verdict.Flagged {
		logger.LogEvent(logger.EventOrderFlagged, s.cfg.ServiceName, "pipeline", map[string]interface{}{
			"order_id": verdict.OrderID,
			"alerts":   verdict.Alerts,
		})
	}
	metrics.ObserveVerdict(source, verdict.Flagged, verdict.RiskPercent, verdict.Alerts)

	if err := s.deps.Repo.SaveVerdict(sess.ID, verdict); err != nil {
		metrics.ScoringErrors.WithLabelValues(source, "storage").Inc()
		return nil, fmt.Errorf("failed to save verdict: %w", err)
	}
	sess.Record(verdict)
	logger.LogEvent(logger.EventVerdictSaved, s.cfg.ServiceName, "sqlite", map[string]interface{}{
		"session_id": sess.ID,
		"order_id":   verdict.OrderID,
	})

	s.cacheVerdict(sess.ID, verdict)
	s.publishVerdict(verdict)

	return verdict, nil
}

func (s *ScoringServiceImpl) cacheVerdict(sessionID string, verdict *models.Verdict) {
	if s.deps.Redis == nil {
		return
	}
	if err := s.deps.Redis.SaveVerdict(sessionID, verdict); err != nil {
		logger.Warn("Failed to cache verdict", zap.Int64("order_id", verdict.OrderID), zap.Error(err))
		return
	}
	if err := s.deps.Redis.IncrementVerdictStats(verdict.Flagged); err != nil {
		logger.Warn("Failed to update verdict stats", zap.Error(err))
	}
	logger.LogEvent(logger.EventRedisSaved, s.cfg.ServiceName, "redis", map[string]interface{}{
		"session_id": sessionID,
		"order_id":   verdict.OrderID,
	})
}

func (s *ScoringServiceImpl) publishVerdict(verdict *models.Verdict) {
	if s.deps.Producer == nil {
		return
	}
	event := &models.VerdictEvent{
		EventID:   "evt_" + uuid.New().String(),
		EventType: string(logger.EventOrderScored),
		Timestamp: time.Now(),
		Data:      *verdict,
	}
	if err := s.deps.Producer.SendVerdictEvent(event); err != nil {
		logger.Warn("Failed to publish verdict", zap.Int64("order_id", verdict.OrderID), zap.Error(err))
		return
	}
	logger.LogEvent(logger.EventKafkaSent, s.cfg.ServiceName, "kafka", map[string]interface{}{
		"event_id": event.EventID,
		"order_id": verdict.OrderID,
	})
}

func (s *ScoringServiceImpl) ListVerdicts(sessionID string, limit int) ([]*models.Verdict, error) {
	if _, err := s.deps.Sessions.Get(sessionID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > MaxVerdictLimit {
		limit = DefaultVerdictLimit
	}
	return s.deps.Repo.ListVerdicts(sessionID, limit)
}

func (s *ScoringServiceImpl) GetVerdict(sessionID string, orderID int64) (*models.Verdict, error) {
	if _, err := s.deps.Sessions.Get(sessionID); err != nil {
		return nil, err
	}

	if s.deps.Redis != nil {
		cached, err := s.deps.Redis.GetVerdict(sessionID, orderID)
		if err != nil {
			logger.Warn("Failed to read cached verdict", zap.Int64("order_id", orderID), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	verdict, err := s.deps.Repo.GetVerdict(sessionID, orderID)
	if err != nil {
		return nil, err
	}
	if verdict == nil {
		return nil, ErrVerdictNotFound
	}
	return verdict, nil
}

func (s *ScoringServiceImpl) SessionStats(sessionID string) (*models.VerdictStats, error) {
	if _, err := s.deps.Sessions.Get(sessionID); err != nil {
		return nil, err
	}
	return s.deps.Repo.CountVerdicts(sessionID)
}

func (s *ScoringServiceImpl) ServiceStats() (*models.ServiceStats, error) {
	stats := &models.ServiceStats{Sessions: s.deps.Sessions.Count()}
	if s.deps.Redis == nil {
		return stats, nil
	}

	processed, flagged, err := s.deps.Redis.GetVerdictStats()
	if err != nil {
		return nil, fmt.Errorf("failed to read verdict stats: %w", err)
	}
	stats.CacheEnabled = true
	stats.CachedProcessed = processed
	stats.CachedFlagged = flagged
	return stats, nil
}

// ClearVerdicts очищает БД и кэш. Сеансы в памяти и их множества IP не затрагиваются.
func (s *ScoringServiceImpl) ClearVerdicts() error {
	if err := s.deps.Repo.ClearAllVerdicts(); err != nil {
		return fmt.Errorf("failed to clear verdicts: %w", err)
	}
	if s.deps.Redis != nil {
		if err := s.deps.Redis.ClearSessionData(); err != nil {
			logger.Warn("Failed to clear Redis data", zap.Error(err))
		}
	}

	logger.LogEvent(logger.EventVerdictSaved, s.cfg.ServiceName, "sqlite", map[string]interface{}{
		"action": "verdicts_cleared",
	})
	return nil
}

func (s *ScoringServiceImpl) GenerateOrders(count int) ([]models.Order, error) {
	if count <= 0 || count > maxGenerateCount {
		return nil, ErrInvalidCount
	}
	return s.nextGenerator().GenerateIncoming(count)
}

func (s *ScoringServiceImpl) PublishOrders(count int) (int, error) {
	if s.deps.Producer == nil {
		return 0, errors.New("kafka producer is not configured")
	}
	orders, err := s.GenerateOrders(count)
	if err != nil {
		return 0, err
	}

	for i := range orders {
		event := &models.OrderEvent{
			EventID:   "evt_" + uuid.New().String(),
			EventType: string(logger.EventOrderReceived),
			Timestamp: time.Now(),
			Data:      orders[i],
		}
		if err := s.deps.Producer.SendOrderEvent(event); err != nil {
			return i, fmt.Errorf("failed to publish order %d: %w", orders[i].OrderID, err)
		}
	}

	logger.LogEvent(logger.EventKafkaSent, s.cfg.ServiceName, "kafka", map[string]interface{}{
		"orders": len(orders),
	})
	return len(orders), nil
}

func (s *ScoringServiceImpl) ModelSummary() models.ModelSummary {
	return s.deps.Model.Summary()
}
