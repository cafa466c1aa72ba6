package models

import (
	"strings"
	"time"
)

// Ключи правил в порядке их вычисления
const (
	RuleMismatch        = "mismatch"
	RuleSuspiciousEmail = "suspicious_email"
	RuleSuspiciousPhone = "suspicious_phone"
	RuleRepeatedIP      = "repeated_ip"
)

// RuleOrder фиксирует порядок вычисления правил и порядок алертов
var RuleOrder = []string{RuleMismatch, RuleSuspiciousEmail, RuleSuspiciousPhone, RuleRepeatedIP}

// Order представляет входящий заказ с оплатой при получении
type Order struct {
	OrderID         int64   `json:"order_id" validate:"required,gt=0"`
	BillingAddress  string  `json:"billing_address" validate:"required"`
	ShippingAddress string  `json:"shipping_address" validate:"required"`
	BillingPin      int     `json:"billing_pin" validate:"gte=0"`
	ShippingPin     int     `json:"shipping_pin" validate:"gte=0"`
	Email           string  `json:"email" validate:"required"`
	Phone           string  `json:"phone" validate:"required"`
	IPAddress       string  `json:"ip_address" validate:"required"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
}

// Flags результат вычисления четырех правил
type Flags struct {
	Mismatch        bool `json:"mismatch"`
	SuspiciousEmail bool `json:"suspicious_email"`
	SuspiciousPhone bool `json:"suspicious_phone"`
	RepeatedIP      bool `json:"repeated_ip"`
}

// RuleResult пара ключ правила / результат
type RuleResult struct {
	Name      string
	Triggered bool
}

// Rules возвращает результаты в порядке вычисления правил
func (f Flags) Rules() []RuleResult {
	return []RuleResult{
		{Name: RuleMismatch, Triggered: f.Mismatch},
		{Name: RuleSuspiciousEmail, Triggered: f.SuspiciousEmail},
		{Name: RuleSuspiciousPhone, Triggered: f.SuspiciousPhone},
		{Name: RuleRepeatedIP, Triggered: f.RepeatedIP},
	}
}

// ToMap возвращает отображение имя правила -> результат, все четыре ключа присутствуют всегда
func (f Flags) ToMap() map[string]bool {
	m := make(map[string]bool, len(RuleOrder))
	for _, r := range f.Rules() {
		m[r.Name] = r.Triggered
	}
	return m
}

// Any возвращает true, если сработало хотя бы одно правило
func (f Flags) Any() bool {
	return f.Mismatch || f.SuspiciousEmail || f.SuspiciousPhone || f.RepeatedIP
}

// Triggered возвращает отображаемые имена сработавших правил в порядке вычисления
func (f Flags) Triggered() []string {
	alerts := make([]string, 0, len(RuleOrder))
	for _, r := range f.Rules() {
		if r.Triggered {
			alerts = append(alerts, DisplayName(r.Name))
		}
	}
	return alerts
}

// DisplayName превращает ключ правила в читаемое имя: "repeated_ip" -> "Repeated Ip"
func DisplayName(rule string) string {
	words := strings.Fields(strings.ReplaceAll(rule, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// Verdict представляет итоговое решение по заказу
type Verdict struct {
	SessionID       string          `json:"session_id,omitempty"`
	OrderID         int64           `json:"order_id"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	BillingAddress  string          `json:"billing_address"`
	ShippingAddress string          `json:"shipping_address"`
	IPAddress       string          `json:"ip_address"`
	Amount          float64         `json:"amount"`
	RiskPercent     float64         `json:"risk_percent"`
	Flagged         bool            `json:"flagged"`
	Alerts          []string        `json:"alerts"`
	Flags           map[string]bool `json:"flags"`
	ScoredAt        time.Time       `json:"scored_at"`
}
