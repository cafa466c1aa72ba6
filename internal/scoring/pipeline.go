package scoring

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"cod-fraud-system/internal/features"
	"cod-fraud-system/internal/fraud"
	"cod-fraud-system/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FlagThreshold порог риска в процентах, включительно
const FlagThreshold = 50.0

var ErrNoHistory = errors.New("ip history is required")

// Classifier модель, возвращающая вероятность мошенничества
type Classifier interface {
	PredictProba(v features.Vector) float64
}

// Pipeline объединяет правила и вероятность модели в итоговый вердикт
type Pipeline struct {
	model    Classifier
	validate *validator.Validate
	mu       sync.Mutex
	now      func() time.Time
}

func NewPipeline(model Classifier) *Pipeline {
	return &Pipeline{
		model:    model,
		validate: newValidator(),
		now:      time.Now,
	}
}

// Process оценивает один заказ. IP заказа добавляется в seen только после вычисления флагов.
// Вызовы сериализуются, чтобы два заказа с одним IP не увидели его оба как новый.
func (p *Pipeline) Process(order *models.Order, seen fraud.IPHistory) (*models.Verdict, error) {
	if err := ValidateOrder(p.validate, order); err != nil {
		return nil, err
	}
	if seen == nil {
		return nil, ErrNoHistory
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	flags, err := fraud.EvaluateRules(order, seen)
	if err != nil {
		return nil, err
	}

	vector := features.FromFlags(flags, order.Amount)
	risk := RiskPercent(p.model.PredictProba(vector))

	verdict := &models.Verdict{
		OrderID:         order.OrderID,
		Email:           order.Email,
		Phone:           order.Phone,
		BillingAddress:  order.BillingAddress,
		ShippingAddress: order.ShippingAddress,
		IPAddress:       order.IPAddress,
		Amount:          order.Amount,
		RiskPercent:     risk,
		Flagged:         IsFlagged(risk, flags),
		Alerts:          flags.Triggered(),
		Flags:           flags.ToMap(),
		ScoredAt:        p.now(),
	}

	if err := seen.Add(order.IPAddress); err != nil {
		return nil, fmt.Errorf("failed to record ip %s: %w", order.IPAddress, err)
	}

	return verdict, nil
}

// RiskPercent переводит вероятность в проценты с округлением до двух знаков
func RiskPercent(probability float64) float64 {
	value, _ := decimal.NewFromFloat(probability).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return value
}

// IsFlagged риск не ниже порога или сработало хотя бы одно правило
func IsFlagged(riskPercent float64, flags models.Flags) bool {
	return riskPercent >= FlagThreshold || flags.Any()
}
