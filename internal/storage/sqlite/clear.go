package sqlite

// ClearAllVerdicts удаляет все вердикты из БД
func (s *SQLiteStorage) ClearAllVerdicts() error {
	query := `DELETE FROM verdicts`
	return writeRetryPolicy.do("clear verdicts", func() error {
		_, err := s.DB.Exec(query)
		return err
	})
}
