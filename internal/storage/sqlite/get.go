package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"cod-fraud-system/internal/models"
)

const verdictColumns = `
	session_id, order_id, email, phone, billing_address, shipping_address,
	ip_address, amount, risk_percent, flagged, alerts, flags, scored_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVerdict(row rowScanner) (*models.Verdict, error) {
	var (
		v      models.Verdict
		alerts string
		flags  string
	)
	err := row.Scan(
		&v.SessionID, &v.OrderID, &v.Email, &v.Phone, &v.BillingAddress, &v.ShippingAddress,
		&v.IPAddress, &v.Amount, &v.RiskPercent, &v.Flagged, &alerts, &flags, &v.ScoredAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(alerts), &v.Alerts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal alerts: %w", err)
	}
	if err := json.Unmarshal([]byte(flags), &v.Flags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal flags: %w", err)
	}
	return &v, nil
}

// GetVerdict получает вердикт по сеансу и номеру заказа, nil если его нет
func (s *SQLiteStorage) GetVerdict(sessionID string, orderID int64) (*models.Verdict, error) {
	query := `SELECT ` + verdictColumns + ` FROM verdicts WHERE session_id = ? AND order_id = ?`

	v, err := scanVerdict(s.DB.QueryRow(query, sessionID, orderID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ListVerdicts получает последние вердикты сеанса, новые первыми
func (s *SQLiteStorage) ListVerdicts(sessionID string, limit int) ([]*models.Verdict, error) {
	query := `SELECT ` + verdictColumns + `
		FROM verdicts
		WHERE session_id = ?
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := s.DB.Query(query, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	verdicts := make([]*models.Verdict, 0)
	for rows.Next() {
		v, err := scanVerdict(rows)
		if err != nil {
			return nil, err
		}
		verdicts = append(verdicts, v)
	}

	return verdicts, rows.Err()
}

// CountVerdicts возвращает число вердиктов сеанса и число помеченных
func (s *SQLiteStorage) CountVerdicts(sessionID string) (*models.VerdictStats, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(flagged), 0) FROM verdicts WHERE session_id = ?`

	var stats models.VerdictStats
	if err := s.DB.QueryRow(query, sessionID).Scan(&stats.Processed, &stats.Flagged); err != nil {
		return nil, err
	}
	return &stats, nil
}
