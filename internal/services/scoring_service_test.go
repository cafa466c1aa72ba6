package services

import (
	"errors"
	"testing"

	"cod-fraud-system/internal/features"
	kafkamocks "cod-fraud-system/internal/kafka/mocks"
	"cod-fraud-system/internal/models"
	redismocks "cod-fraud-system/internal/redis/mocks"
	"cod-fraud-system/internal/scoring"
	storagemocks "cod-fraud-system/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubModel struct {
	probability float64
}

func (m stubModel) PredictProba(features.Vector) float64 { return m.probability }

func (m stubModel) Summary() models.ModelSummary {
	return models.ModelSummary{Features: features.Names[:], Intercept: -2.4}
}

func newTestService(t *testing.T, repo *storagemocks.MockVerdictRepository, deps ScoringDeps) ScoringService {
	t.Helper()
	model := stubModel{probability: 0.1}
	deps.Pipeline = scoring.NewPipeline(model)
	deps.Model = model
	deps.Repo = repo
	return NewScoringService(deps, ScoringConfig{ServiceName: "test-service", QueueSize: 3, Seed: 42})
}

func testOrder(id int64, ip string) *models.Order {
	return &models.Order{
		OrderID:         id,
		BillingAddress:  "5 Green Street, CityX, 560001",
		ShippingAddress: "5 Green Street, CityX, 560001",
		BillingPin:      560001,
		ShippingPin:     560001,
		Email:           "hello@gmail.com",
		Phone:           "9876543210",
		IPAddress:       ip,
		Amount:          800,
	}
}

func TestCreateSession(t *testing.T) {
	svc := newTestService(t, new(storagemocks.MockVerdictRepository), ScoringDeps{})

	sess, err := svc.CreateSession()
	require.NoError(t, err)
	assert.NotEmpty(t, sess.SessionID)
	assert.Equal(t, 3, sess.Pending)
	assert.Zero(t, sess.Processed)

	other, err := svc.CreateSession()
	require.NoError(t, err)
	assert.NotEqual(t, sess.SessionID, other.SessionID)
}

func TestIngestNext_UntilExhausted(t *testing.T) {
	repo := new(storagemocks.MockVerdictRepository)
	repo.On("SaveVerdict", mock.Anything, mock.AnythingOfType("*models.Verdict")).Return(nil)
	svc := newTestService(t, repo, ScoringDeps{})

	sess, err := svc.CreateSession()
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		verdict, err := svc.IngestNext(sess.SessionID)
		require.NoError(t, err)
		assert.Equal(t, sess.SessionID, verdict.SessionID)
		assert.Equal(t, int64(i+1), verdict.OrderID)
	}

	_, err = svc.IngestNext(sess.SessionID)
	assert.ErrorIs(t, err, ErrQueueExhausted)

	state, err := svc.GetSession(sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, state.Pending)
	assert.Equal(t, 3, state.Processed)
	repo.AssertNumberOfCalls(t, "SaveVerdict", 3)
}

func TestScoreOrder_RepeatedIPWithinSession(t *testing.T) {
	repo := new(storagemocks.MockVerdictRepository)
	repo.On("SaveVerdict", mock.Anything, mock.Anything).Return(nil)
	svc := newTestService(t, repo, ScoringDeps{})

	sess, err := svc.CreateSession()
	require.NoError(t, err)
	other, err := svc.CreateSession()
	require.NoError(t, err)

	first, err := svc.ScoreOrder(sess.SessionID, testOrder(100, "8.8.8.8"))
	require.NoError(t, err)
	assert.False(t, first.Flagged)

	second, err := svc.ScoreOrder(sess.SessionID, testOrder(101, "8.8.8.8"))
	require.NoError(t, err)
	assert.True(t, second.Flagged)
	assert.Equal(t, []string{"Repeated Ip"}, second.Alerts)

	isolated, err := svc.ScoreOrder(other.SessionID, testOrder(102, "8.8.8.8"))
	require.NoError(t, err)
	assert.False(t, isolated.Flags["repeated_ip"])
}

func TestScoreOrder_UnknownSession(t *testing.T) {
	svc := newTestService(t, new(storagemocks.MockVerdictRepository), ScoringDeps{})

	_, err := svc.ScoreOrder("missing", testOrder(1, "1.2.3.4"))
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.IngestNext("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestScoreOrder_ValidationError(t *testing.T) {
	repo := new(storagemocks.MockVerdictRepository)
	svc := newTestService(t, repo, ScoringDeps{})
	sess, err := svc.CreateSession()
	require.NoError(t, err)

	order := testOrder(1, "")
	_, err = svc.ScoreOrder(sess.SessionID, order)

	var verr *scoring.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.HasField("ip_address"))
	repo.AssertNotCalled(t, "SaveVerdict", mock.Anything, mock.Anything)
}

func TestScoreOrder_RepositoryError(t *testing.T) {
	repo := new(storagemocks.MockVerdictRepository)
	repo.On("SaveVerdict", mock.Anything, mock.Anything).Return(errors.New("disk full"))
	svc := newTestService(t, repo, ScoringDeps{})
	sess, err := svc.CreateSession()
	require.NoError(t, err)

	_, err = svc.ScoreOrder(sess.SessionID, testOrder(1, "1.2.3.4"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save verdict")

	state, err := svc.GetSession(sess.SessionID)
	require.NoError(t, err)
	assert.Zero(t, state.Processed)
	assert.Zero(t, state.FlaggedCount)
}

func TestIngestNext_RepositoryErrorKeepsCountersInSync(t *testing.T) {
	repo := new(storagemocks.MockVerdictRepository)
	repo.On("SaveVerdict", mock.Anything, mock.MatchedBy(func(v *models.Verdict) bool { return v.OrderID == 1 })).
		Return(errors.New("disk full"))
	repo.On("SaveVerdict", mock.Anything, mock.Anything).Return(nil)
	svc := newTestService(t, repo, ScoringDeps{})
	sess, err := svc.CreateSession()
	require.NoError(t, err)

	_, err = svc.IngestNext(sess.SessionID)
	require.Error(t, err)

	verdict, err := svc.IngestNext(sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), verdict.OrderID)

	state, err := svc.GetSession(sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Processed)
	assert.Equal(t, 1, state.Pending)
}

func TestScoreOrder_CachesAndPublishes(t *testing.T) {
	repo := new(storagemocks.MockVerdictRepository)
	repo.On("SaveVerdict", mock.Anything, mock.Anything).Return(nil)

	redisClient := new(redismocks.MockClientInterface)
	redisClient.On("SaveVerdict", mock.Anything, mock.AnythingOfType("*models.Verdict")).Return(nil)
	redisClient.On("IncrementVerdictStats", false).Return(nil)

	producer := new(kafkamocks.MockProducer)
	producer.On("SendVerdictEvent", mock.MatchedBy(func(e *models.VerdictEvent) bool {
		return e.Data.OrderID == 7 && e.EventType == "order_scored"
	})).Return(nil)

	svc := newTestService(t, repo, ScoringDeps{Redis: redisClient, Producer: producer})
	sess, err := svc.CreateSession()
	require.NoError(t, err)

	_, err = svc.ScoreOrder(sess.SessionID, testOrder(7, "4.4.4.4"))
	require.NoError(t, err)

	redisClient.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestScoreOrder_CacheAndKafkaFailuresAreNotFatal(t *testing.T) {
	repo := new(storagemocks.MockVerdictRepository)
	repo.On("SaveVerdict", mock.Anything, mock.Anything).Return(nil)

	redisClient := new(redismocks.MockClientInterface)
	redisClient.On("SaveVerdict", mock.Anything, mock.Anything).Return(errors.New("redis down"))

	producer := new(kafkamocks.MockProducer)
	producer.On("SendVerdictEvent", mock.Anything).Return(errors.New("broker down"))

	svc := newTestService(t, repo, ScoringDeps{Redis: redisClient, Producer: producer})
	sess, err := svc.CreateSession()
	require.NoError(t, err)

	verdict, err := svc.ScoreOrder(sess.SessionID, testOrder(7, "4.4.4.4"))
	require.NoError(t, err)
	assert.NotNil(t, verdict)
	redisClient.AssertNotCalled(t, "IncrementVerdictStats", mock.Anything)
}

func TestOpenSession(t *testing.T) {
	svc := newTestService(t, new(storagemocks.MockVerdictRepository), ScoringDeps{})

	sess, err := svc.OpenSession("stream")
	require.NoError(t, err)
	assert.Equal(t, "stream", sess.SessionID)
	assert.Zero(t, sess.Pending)

	again, err := svc.OpenSession("stream")
	require.NoError(t, err)
	assert.Equal(t, sess.CreatedAt, again.CreatedAt)

	_, err = svc.IngestNext("stream")
	assert.ErrorIs(t, err, ErrQueueExhausted)
}

func TestListVerdicts(t *testing.T) {
	repo := new(storagemocks.MockVerdictRepository)
	svc := newTestService(t, repo, ScoringDeps{})
	sess, err := svc.CreateSession()
	require.NoError(t, err)

	expected := []*models.Verdict{{OrderID: 2}, {OrderID: 1}}
	repo.On("ListVerdicts", sess.SessionID, DefaultVerdictLimit).Return(expected, nil)
	repo.On("ListVerdicts", sess.SessionID, 10).Return(expected[:1], nil)

	got, err := svc.ListVerdicts(sess.SessionID, 0)
	require.NoError(t, err)
	assert.Equal(t, expected, got)

	got, err = svc.ListVerdicts(sess.SessionID, 10)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = svc.ListVerdicts("missing", 10)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGenerateOrders(t *testing.T) {
	svc := newTestService(t, new(storagemocks.MockVerdictRepository), ScoringDeps{})

	orders, err := svc.GenerateOrders(5)
	require.NoError(t, err)
	assert.Len(t, orders, 5)

	_, err = svc.GenerateOrders(0)
	assert.ErrorIs(t, err, ErrInvalidCount)
	_, err = svc.GenerateOrders(5000)
	assert.ErrorIs(t, err, ErrInvalidCount)
}

func TestPublishOrders(t *testing.T) {
	producer := new(kafkamocks.MockProducer)
	producer.On("SendOrderEvent", mock.AnythingOfType("*models.OrderEvent")).Return(nil)
	svc := newTestService(t, new(storagemocks.MockVerdictRepository), ScoringDeps{Producer: producer})

	sent, err := svc.PublishOrders(4)
	require.NoError(t, err)
	assert.Equal(t, 4, sent)
	producer.AssertNumberOfCalls(t, "SendOrderEvent", 4)
}

func TestPublishOrders_NoProducer(t *testing.T) {
	svc := newTestService(t, new(storagemocks.MockVerdictRepository), ScoringDeps{})

	_, err := svc.PublishOrders(4)
	assert.Error(t, err)
}

func TestModelSummary(t *testing.T) {
	svc := newTestService(t, new(storagemocks.MockVerdictRepository), ScoringDeps{})

	summary := svc.ModelSummary()
	assert.Equal(t, features.Names[:], summary.Features)
}

func TestGetVerdict_CacheThenRepository(t *testing.T) {
	repo := new(storagemocks.MockVerdictRepository)
	redisClient := new(redismocks.MockClientInterface)
	svc := newTestService(t, repo, ScoringDeps{Redis: redisClient})
	sess, err := svc.CreateSession()
	require.NoError(t, err)

	cached := &models.Verdict{OrderID: 1, RiskPercent: 40}
	redisClient.On("GetVerdict", sess.SessionID, int64(1)).Return(cached, nil)
	redisClient.On("GetVerdict", sess.SessionID, int64(2)).Return(nil, nil)
	redisClient.On("GetVerdict", sess.SessionID, int64(3)).Return(nil, nil)
	stored := &models.Verdict{OrderID: 2, RiskPercent: 60}
	repo.On("GetVerdict", sess.SessionID, int64(2)).Return(stored, nil)
	repo.On("GetVerdict", sess.SessionID, int64(3)).Return(nil, nil)

	got, err := svc.GetVerdict(sess.SessionID, 1)
	require.NoError(t, err)
	assert.Equal(t, cached, got)
	repo.AssertNotCalled(t, "GetVerdict", sess.SessionID, int64(1))

	got, err = svc.GetVerdict(sess.SessionID, 2)
	require.NoError(t, err)
	assert.Equal(t, stored, got)

	_, err = svc.GetVerdict(sess.SessionID, 3)
	assert.ErrorIs(t, err, ErrVerdictNotFound)

	_, err = svc.GetVerdict("missing", 1)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStats(t *testing.T) {
	repo := new(storagemocks.MockVerdictRepository)
	svc := newTestService(t, repo, ScoringDeps{})
	sess, err := svc.CreateSession()
	require.NoError(t, err)

	repo.On("CountVerdicts", sess.SessionID).Return(&models.VerdictStats{Processed: 4, Flagged: 1}, nil)

	stats, err := svc.SessionStats(sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Processed)
	assert.Equal(t, int64(1), stats.Flagged)
}

func TestServiceStats(t *testing.T) {
	redisClient := new(redismocks.MockClientInterface)
	redisClient.On("GetVerdictStats").Return(int64(10), int64(3), nil)
	svc := newTestService(t, new(storagemocks.MockVerdictRepository), ScoringDeps{Redis: redisClient})
	_, err := svc.CreateSession()
	require.NoError(t, err)

	stats, err := svc.ServiceStats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Sessions)
	assert.True(t, stats.CacheEnabled)
	assert.Equal(t, int64(10), stats.CachedProcessed)
	assert.Equal(t, int64(3), stats.CachedFlagged)
}

func TestServiceStats_WithoutRedis(t *testing.T) {
	svc := newTestService(t, new(storagemocks.MockVerdictRepository), ScoringDeps{})

	stats, err := svc.ServiceStats()
	require.NoError(t, err)
	assert.False(t, stats.CacheEnabled)
	assert.Zero(t, stats.Sessions)
}

func TestClearVerdicts(t *testing.T) {
	repo := new(storagemocks.MockVerdictRepository)
	repo.On("ClearAllVerdicts").Return(nil)
	redisClient := new(redismocks.MockClientInterface)
	redisClient.On("ClearSessionData").Return(errors.New("redis down"))
	svc := newTestService(t, repo, ScoringDeps{Redis: redisClient})

	require.NoError(t, svc.ClearVerdicts())
	repo.AssertExpectations(t)
	redisClient.AssertExpectations(t)
}

func TestClearVerdicts_RepositoryError(t *testing.T) {
	repo := new(storagemocks.MockVerdictRepository)
	repo.On("ClearAllVerdicts").Return(errors.New("locked"))
	svc := newTestService(t, repo, ScoringDeps{})

	assert.Error(t, svc.ClearVerdicts())
}
