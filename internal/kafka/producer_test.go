package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"cod-fraud-system/internal/metrics"
	"cod-fraud-system/internal/models"

	"github.com/IBM/sarama"
	saramamocks "github.com/IBM/sarama/mocks"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducer_SendVerdictEvent(t *testing.T) {
	sp := saramamocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var event models.VerdictEvent
		if err := json.Unmarshal(val, &event); err != nil {
			return err
		}
		if event.Data.OrderID != 42 || !event.Data.Flagged {
			return errors.New("unexpected verdict payload")
		}
		return nil
	})

	producer := NewProducerFromSync(sp, "orders", "verdicts")
	err := producer.SendVerdictEvent(&models.VerdictEvent{
		EventID:   "e1",
		EventType: "order_scored",
		Timestamp: time.Now(),
		Data:      models.Verdict{OrderID: 42, Flagged: true},
	})
	require.NoError(t, err)
	require.NoError(t, producer.Close())
}

func TestProducer_SendOrderEvent(t *testing.T) {
	sp := saramamocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "orders" {
			return errors.New("wrong topic " + msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "7" {
			return errors.New("wrong key " + string(key))
		}
		return nil
	})

	producer := NewProducerFromSync(sp, "orders", "verdicts")
	err := producer.SendOrderEvent(&models.OrderEvent{Data: models.Order{OrderID: 7}})
	require.NoError(t, err)
	require.NoError(t, producer.Close())
}

func TestProducer_SendFailure(t *testing.T) {
	sp := saramamocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	producer := NewProducerFromSync(sp, "orders", "verdicts")
	err := producer.SendVerdictEvent(&models.VerdictEvent{})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, producer.Close())
}

type fakeSession struct {
	ctx    context.Context
	marked []int64
}

func (s *fakeSession) Claims() map[string][]int32                               { return nil }
func (s *fakeSession) MemberID() string                                         { return "member" }
func (s *fakeSession) GenerationID() int32                                      { return 1 }
func (s *fakeSession) MarkOffset(string, int32, int64, string)                  {}
func (s *fakeSession) Commit()                                                  {}
func (s *fakeSession) ResetOffset(string, int32, int64, string)                 {}
func (s *fakeSession) Context() context.Context                                 { return s.ctx }
func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, metadata string) { s.marked = append(s.marked, msg.Offset) }

type fakeClaim struct {
	messages chan *sarama.ConsumerMessage
}

func (c *fakeClaim) Topic() string                            { return "orders" }
func (c *fakeClaim) Partition() int32                         { return 0 }
func (c *fakeClaim) InitialOffset() int64                     { return 0 }
func (c *fakeClaim) HighWaterMarkOffset() int64               { return 0 }
func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

func TestConsumeClaim(t *testing.T) {
	good, err := json.Marshal(models.OrderEvent{EventID: "e1", Data: models.Order{OrderID: 5}})
	require.NoError(t, err)
	failing, err := json.Marshal(models.OrderEvent{EventID: "e2", Data: models.Order{OrderID: 6}})
	require.NoError(t, err)

	claim := &fakeClaim{messages: make(chan *sarama.ConsumerMessage, 3)}
	claim.messages <- &sarama.ConsumerMessage{Offset: 1, Value: good}
	claim.messages <- &sarama.ConsumerMessage{Offset: 2, Value: []byte("{broken")}
	claim.messages <- &sarama.ConsumerMessage{Offset: 3, Value: failing}
	close(claim.messages)

	var handled []int64
	handler := &consumerGroupHandler{handler: func(event *models.OrderEvent) error {
		handled = append(handled, event.Data.OrderID)
		if event.Data.OrderID == 6 {
			return errors.New("scoring failed")
		}
		return nil
	}}

	badBefore := testutil.ToFloat64(metrics.StreamMessages.WithLabelValues(metrics.OutcomeBadPayload))
	failedBefore := testutil.ToFloat64(metrics.StreamMessages.WithLabelValues(metrics.OutcomeFailed))

	session := &fakeSession{ctx: context.Background()}
	require.NoError(t, handler.ConsumeClaim(session, claim))

	assert.Equal(t, badBefore+1, testutil.ToFloat64(metrics.StreamMessages.WithLabelValues(metrics.OutcomeBadPayload)))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(metrics.StreamMessages.WithLabelValues(metrics.OutcomeFailed)))

	assert.Equal(t, []int64{5, 6}, handled)
	assert.Equal(t, []int64{1, 2, 3}, session.marked)
}

func TestConsumeClaim_ContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	claim := &fakeClaim{messages: make(chan *sarama.ConsumerMessage)}
	handler := &consumerGroupHandler{handler: func(*models.OrderEvent) error { return nil }}

	assert.NoError(t, handler.ConsumeClaim(&fakeSession{ctx: ctx}, claim))
}
