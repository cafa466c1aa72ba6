package generator

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"cod-fraud-system/internal/fraud"
	"cod-fraud-system/internal/models"
)

// ErrInvalidSize запрошено неположительное количество строк
var ErrInvalidSize = errors.New("dataset size must be positive")

const (
	sameAddressProbability = 0.8
	disposableProbability  = 0.1
	badPhoneProbability    = 0.1
	repeatedIPCount        = 3
	repeatsPerIP           = 3
	minPin                 = 100000
	maxPin                 = 999999
	minAmount              = 100
	maxAmount              = 5000
)

var (
	disposableDomains = []string{"tempmail.com", "fakeemail.com", "disposable.com"}
	normalDomains     = []string{"gmail.com", "yahoo.com", "outlook.com", "hotmail.com", "example.com"}
)

// Веса функции синтеза метки
const (
	weightMismatch   = 1.0
	weightEmail      = 1.2
	weightPhone      = 0.8
	weightRepeatedIP = 1.0
	weightAmount     = 0.0005
	labelBias        = -2.4
)

// OrderGenerator генерирует синтетические размеченные заказы. Не потокобезопасен.
type OrderGenerator struct {
	rand *rand.Rand
}

// NewOrderGenerator одинаковый seed дает одинаковые наборы данных
func NewOrderGenerator(seed int64) *OrderGenerator {
	return &OrderGenerator{
		rand: rand.New(rand.NewSource(seed)),
	}
}

// Generate генерирует n размеченных заказов
func (g *OrderGenerator) Generate(n int) (*models.Dataset, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, n)
	}

	rows := make([]models.LabeledOrder, n)
	for i := range rows {
		rows[i] = g.generateRow(i)
	}

	g.injectRepeatedIPs(rows)
	markRepeatedIPs(rows)

	for i := range rows {
		rows[i].FraudLabel = Label(rows[i])
	}

	return &models.Dataset{Rows: rows}, nil
}

// GenerateIncoming генерирует заказы без эталонных колонок, как они приходят в продакшене
func (g *OrderGenerator) GenerateIncoming(n int) ([]models.Order, error) {
	dataset, err := g.Generate(n)
	if err != nil {
		return nil, err
	}

	orders := make([]models.Order, len(dataset.Rows))
	for i, row := range dataset.Rows {
		orders[i] = row.Order
	}
	return orders, nil
}

func (g *OrderGenerator) generateRow(i int) models.LabeledOrder {
	row := models.LabeledOrder{}
	row.OrderID = int64(i + 1)

	// Адрес
	pin := g.pin()
	row.BillingPin = pin
	row.BillingAddress = fmt.Sprintf("%d Green Street, CityX, %d", i, pin)
	if g.rand.Float64() < sameAddressProbability {
		row.ShippingPin = pin
		row.ShippingAddress = row.BillingAddress
	} else {
		row.ShippingPin = g.pin()
		row.ShippingAddress = fmt.Sprintf("%d High Street, CityY, %d", i, row.ShippingPin)
	}
	if row.ShippingPin != row.BillingPin {
		row.Mismatch = 1
	}

	// Почта
	domain := normalDomains[g.rand.Intn(len(normalDomains))]
	if g.rand.Float64() < disposableProbability {
		domain = disposableDomains[g.rand.Intn(len(disposableDomains))]
		row.SuspiciousEmail = 1
	}
	row.Email = g.localPart(5) + "@" + domain

	// Телефон: проверка мягче, чем в правилах
	row.Phone = g.digits(10)
	if g.rand.Float64() < badPhoneProbability || fraud.HasSuspiciousPattern(row.Phone) {
		row.SuspiciousPhone = 1
	}

	row.IPAddress = g.ip()
	row.Amount = float64(minAmount + g.rand.Intn(maxAmount-minAmount+1))

	return row
}

// injectRepeatedIPs переписывает случайные позиции уже встреченными IP, коллизии допустимы
func (g *OrderGenerator) injectRepeatedIPs(rows []models.LabeledOrder) {
	n := len(rows)
	picks := min(repeatedIPCount, n)
	positions := min(repeatsPerIP, n)

	sources := g.rand.Perm(n)[:picks]
	ips := make([]string, picks)
	for i, idx := range sources {
		ips[i] = rows[idx].IPAddress
	}

	for _, ip := range ips {
		for _, idx := range g.rand.Perm(n)[:positions] {
			rows[idx].IPAddress = ip
		}
	}
}

// markRepeatedIPs отмечает все строки, чей IP встречается в наборе больше одного раза, включая первую
func markRepeatedIPs(rows []models.LabeledOrder) {
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.IPAddress]++
	}
	for i := range rows {
		if counts[rows[i].IPAddress] > 1 {
			rows[i].RepeatedIP = 1
		}
	}
}

// Label синтезирует метку по эталонным признакам
func Label(row models.LabeledOrder) int {
	score := weightMismatch*float64(row.Mismatch) +
		weightEmail*float64(row.SuspiciousEmail) +
		weightPhone*float64(row.SuspiciousPhone) +
		weightRepeatedIP*float64(row.RepeatedIP) +
		weightAmount*row.Amount +
		labelBias
	if sigmoid(score) > 0.5 {
		return 1
	}
	return 0
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

func (g *OrderGenerator) pin() int {
	return minPin + g.rand.Intn(maxPin-minPin+1)
}

func (g *OrderGenerator) localPart(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('a' + g.rand.Intn(26))
	}
	return string(b)
}

func (g *OrderGenerator) digits(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('0' + g.rand.Intn(10))
	}
	return string(b)
}

func (g *OrderGenerator) ip() string {
	return fmt.Sprintf("%d.%d.%d.%d",
		1+g.rand.Intn(255),
		g.rand.Intn(256),
		g.rand.Intn(256),
		1+g.rand.Intn(255),
	)
}
