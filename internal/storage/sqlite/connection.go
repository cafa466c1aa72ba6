package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cod-fraud-system/config"
	"cod-fraud-system/internal/logger"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// MemoryPath путь для БД в памяти
const MemoryPath = ":memory:"

// SQLiteStorage представляет хранилище SQLite
type SQLiteStorage struct {
	DB *sql.DB
}

// NewConnection создает новое соединение с SQLite
func NewConnection(cfg *config.Config) (*SQLiteStorage, error) {
	dbPath := cfg.DB.DBPath
	if dbPath == "" {
		dbPath = MemoryPath
	}

	var dsn string
	if dbPath == MemoryPath {
		dsn = "file::memory:"
	} else {
		// Создаем директорию, если её нет
		dbDir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = fmt.Sprintf("file:%s?_journal_mode=WAL&_foreign_keys=1", dbPath)
	}

	logger.Info("Connecting to SQLite", zap.String("path", dbPath))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite поддерживает только одно соединение для записи.
	// БД в памяти живет, пока живет соединение, поэтому его не пересоздаем.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if dbPath != MemoryPath {
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	storage := &SQLiteStorage{DB: db}
	if err := storage.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info("SQLite connection established")
	return storage, nil
}

// Close закрывает соединение с БД
func (s *SQLiteStorage) Close() error {
	return s.DB.Close()
}
