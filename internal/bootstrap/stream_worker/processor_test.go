package stream_worker

import (
	"errors"
	"testing"

	"cod-fraud-system/internal/models"
	"cod-fraud-system/internal/scoring"
	servicemocks "cod-fraud-system/internal/services/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newEvent(orderID int64) *models.OrderEvent {
	return &models.OrderEvent{
		EventID:   "evt_1",
		EventType: "order_received",
		Data: models.Order{
			OrderID:         orderID,
			BillingAddress:  "12 Green Street, CityX, 560001",
			ShippingAddress: "12 Green Street, CityX, 560001",
			Email:           "user@gmail.com",
			Phone:           "9876501234",
			IPAddress:       "10.0.0.1",
			Amount:          1200,
		},
	}
}

func TestProcessOrder_Scores(t *testing.T) {
	svc := new(servicemocks.MockScoringService)
	svc.On("OpenSession", "stream").Return(&models.Session{SessionID: "stream"}, nil)
	svc.On("ScoreOrder", "stream", mock.MatchedBy(func(o *models.Order) bool { return o.OrderID == 7 })).
		Return(&models.Verdict{OrderID: 7, RiskPercent: 12.5}, nil)

	err := processOrder(newEvent(7), svc, "stream", "cod.orders.received")

	assert.NoError(t, err)
	svc.AssertExpectations(t)
}

func TestProcessOrder_SkipsInvalidOrder(t *testing.T) {
	svc := new(servicemocks.MockScoringService)
	svc.On("OpenSession", "stream").Return(&models.Session{SessionID: "stream"}, nil)
	svc.On("ScoreOrder", "stream", mock.Anything).
		Return(nil, &scoring.ValidationError{Errors: map[string]string{"email": "required"}})

	err := processOrder(newEvent(8), svc, "stream", "cod.orders.received")

	assert.NoError(t, err)
}

func TestProcessOrder_PropagatesStorageError(t *testing.T) {
	svc := new(servicemocks.MockScoringService)
	svc.On("OpenSession", "stream").Return(&models.Session{SessionID: "stream"}, nil)
	svc.On("ScoreOrder", "stream", mock.Anything).Return(nil, errors.New("failed to save verdict"))

	err := processOrder(newEvent(9), svc, "stream", "cod.orders.received")

	assert.Error(t, err)
}

func TestProcessOrder_SessionError(t *testing.T) {
	svc := new(servicemocks.MockScoringService)
	svc.On("OpenSession", "stream").Return(nil, errors.New("boom"))

	err := processOrder(newEvent(10), svc, "stream", "cod.orders.received")

	assert.Error(t, err)
	svc.AssertNotCalled(t, "ScoreOrder", mock.Anything, mock.Anything)
}
