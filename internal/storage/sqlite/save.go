package sqlite

import (
	"encoding/json"
	"fmt"

	"cod-fraud-system/internal/models"
)

// SaveVerdict сохраняет вердикт, при повторной оценке заказа запись заменяется
func (s *SQLiteStorage) SaveVerdict(sessionID string, v *models.Verdict) error {
	alerts, err := json.Marshal(v.Alerts)
	if err != nil {
		return fmt.Errorf("failed to marshal alerts: %w", err)
	}
	flags, err := json.Marshal(v.Flags)
	if err != nil {
		return fmt.Errorf("failed to marshal flags: %w", err)
	}

	query := `
		INSERT OR REPLACE INTO verdicts (
			session_id, order_id, email, phone, billing_address, shipping_address,
			ip_address, amount, risk_percent, flagged, alerts, flags, scored_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	return writeRetryPolicy.do("save verdict", func() error {
		_, err := s.DB.Exec(
			query,
			sessionID, v.OrderID, v.Email, v.Phone, v.BillingAddress, v.ShippingAddress,
			v.IPAddress, v.Amount, v.RiskPercent, v.Flagged, string(alerts), string(flags), v.ScoredAt.UTC(),
		)
		return err
	})
}
