package fraud

import (
	"fmt"
	"strings"

	"cod-fraud-system/internal/models"
)

// DisposableDomains одноразовые почтовые домены
var DisposableDomains = map[string]bool{
	"tempmail.com":   true,
	"fakeemail.com":  true,
	"disposable.com": true,
}

// IPHistory множество ранее встреченных IP. Владелец множества - вызывающая сторона.
type IPHistory interface {
	Contains(ip string) (bool, error)
	Add(ip string) error
}

// EvaluateRules вычисляет четыре правила для заказа. Множество seen только читается.
func EvaluateRules(order *models.Order, seen IPHistory) (models.Flags, error) {
	repeated, err := IsRepeatedIP(order.IPAddress, seen)
	if err != nil {
		return models.Flags{}, fmt.Errorf("failed to check ip history: %w", err)
	}

	return models.Flags{
		Mismatch:        IsAddressMismatch(order.BillingAddress, order.ShippingAddress),
		SuspiciousEmail: IsSuspiciousEmail(order.Email),
		SuspiciousPhone: IsSuspiciousPhone(order.Phone),
		RepeatedIP:      repeated,
	}, nil
}

// IsAddressMismatch точное сравнение адресов, без нормализации
func IsAddressMismatch(billing, shipping string) bool {
	return billing != shipping
}

// IsSuspiciousEmail проверяет домен после первого '@'. Без '@' возвращает false.
func IsSuspiciousEmail(email string) bool {
	_, domain, found := strings.Cut(email, "@")
	if !found {
		return false
	}
	return DisposableDomains[strings.ToLower(domain)]
}

// IsSuspiciousPhone короткий номер, одна повторяющаяся цифра или подозрительный префикс/суффикс
func IsSuspiciousPhone(phone string) bool {
	if len(phone) < 4 {
		return true
	}
	if strings.Count(phone, phone[:1]) == len(phone) {
		return true
	}
	return HasSuspiciousPattern(phone)
}

// HasSuspiciousPattern префиксы 000/999 и суффиксы 0000/1111
func HasSuspiciousPattern(phone string) bool {
	return strings.HasPrefix(phone, "000") ||
		strings.HasPrefix(phone, "999") ||
		strings.HasSuffix(phone, "0000") ||
		strings.HasSuffix(phone, "1111")
}

// IsRepeatedIP только проверка принадлежности, множество не меняется
func IsRepeatedIP(ip string, seen IPHistory) (bool, error) {
	if seen == nil {
		return false, nil
	}
	return seen.Contains(ip)
}
