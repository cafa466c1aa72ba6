package models

// LabeledOrder строка обучающего набора: заказ плюс эталонные признаки и метка
type LabeledOrder struct {
	Order
	Mismatch        int `json:"mismatch"`
	SuspiciousEmail int `json:"suspicious_email"`
	SuspiciousPhone int `json:"suspicious_phone"`
	RepeatedIP      int `json:"repeated_ip"`
	FraudLabel      int `json:"fraud_label"`
}

// Dataset упорядоченный набор размеченных заказов
type Dataset struct {
	Rows []LabeledOrder `json:"rows"`
}

// Len количество строк
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// DatasetStats сводка по набору данных
type DatasetStats struct {
	Rows            int     `json:"rows"`
	FraudCount      int     `json:"fraud_count"`
	FraudRate       float64 `json:"fraud_rate"`
	Mismatch        int     `json:"mismatch"`
	SuspiciousEmail int     `json:"suspicious_email"`
	SuspiciousPhone int     `json:"suspicious_phone"`
	RepeatedIP      int     `json:"repeated_ip"`
}

// Stats считает долю мошенничества и количество положительных значений по каждому признаку
func (d *Dataset) Stats() DatasetStats {
	var s DatasetStats
	if d == nil {
		return s
	}
	s.Rows = len(d.Rows)
	for _, r := range d.Rows {
		s.FraudCount += r.FraudLabel
		s.Mismatch += r.Mismatch
		s.SuspiciousEmail += r.SuspiciousEmail
		s.SuspiciousPhone += r.SuspiciousPhone
		s.RepeatedIP += r.RepeatedIP
	}
	if s.Rows > 0 {
		s.FraudRate = float64(s.FraudCount) / float64(s.Rows)
	}
	return s
}
