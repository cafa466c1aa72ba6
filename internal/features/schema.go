// Package features описывает общую схему признаков для обучения и для оценки.
package features

import "cod-fraud-system/internal/models"

// AmountScale делитель суммы заказа
const AmountScale = 1000.0

// Size число признаков
const Size = 5

// Names порядок признаков, общий для обучения и оценки
var Names = [Size]string{
	models.RuleMismatch,
	models.RuleSuspiciousEmail,
	models.RuleSuspiciousPhone,
	models.RuleRepeatedIP,
	"amount",
}

// Vector вектор признаков в порядке Names
type Vector [Size]float64

// FromFlags строит вектор по результатам правил и сумме заказа
func FromFlags(flags models.Flags, amount float64) Vector {
	return Vector{
		boolToFloat(flags.Mismatch),
		boolToFloat(flags.SuspiciousEmail),
		boolToFloat(flags.SuspiciousPhone),
		boolToFloat(flags.RepeatedIP),
		amount / AmountScale,
	}
}

// FromLabeledOrder строит вектор из эталонных колонок строки набора данных
func FromLabeledOrder(row models.LabeledOrder) Vector {
	return Vector{
		float64(row.Mismatch),
		float64(row.SuspiciousEmail),
		float64(row.SuspiciousPhone),
		float64(row.RepeatedIP),
		row.Amount / AmountScale,
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
