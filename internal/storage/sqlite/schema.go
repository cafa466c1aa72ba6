package sqlite

// initSchema инициализирует схему БД
func (s *SQLiteStorage) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS verdicts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		order_id INTEGER NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		billing_address TEXT NOT NULL,
		shipping_address TEXT NOT NULL,
		ip_address TEXT NOT NULL,
		amount REAL NOT NULL,
		risk_percent REAL NOT NULL,
		flagged INTEGER NOT NULL,
		alerts TEXT NOT NULL,
		flags TEXT NOT NULL,
		scored_at DATETIME NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(session_id, order_id)
	);

	CREATE INDEX IF NOT EXISTS idx_verdicts_session ON verdicts(session_id);
	CREATE INDEX IF NOT EXISTS idx_verdicts_flagged ON verdicts(session_id, flagged);
	`

	_, err := s.DB.Exec(query)
	return err
}
