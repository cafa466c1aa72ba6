package session

import (
	"errors"
	"sync"
	"time"

	"cod-fraud-system/internal/fraud"
	"cod-fraud-system/internal/models"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists")
)

// Session состояние одного сеанса: очередь входящих заказов и множество IP
type Session struct {
	ID        string
	CreatedAt time.Time
	Seen      fraud.IPHistory

	mu        sync.Mutex
	queue     []models.Order
	processed int
	flagged   int
}

func newSession(id string, queue []models.Order, seen fraud.IPHistory) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		Seen:      seen,
		queue:     queue,
	}
}

// Next извлекает следующий заказ из очереди
func (s *Session) Next() (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return models.Order{}, false
	}
	order := s.queue[0]
	s.queue = s.queue[1:]
	return order, true
}

// Record учитывает оцененный заказ
func (s *Session) Record(v *models.Verdict) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processed++
	if v.Flagged {
		s.flagged++
	}
}

// Snapshot возвращает публичное представление сеанса
func (s *Session) Snapshot() *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &models.Session{
		SessionID:    s.ID,
		CreatedAt:    s.CreatedAt,
		Pending:      len(s.queue),
		Processed:    s.processed,
		FlaggedCount: s.flagged,
	}
}

// Store реестр сеансов в памяти процесса
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create регистрирует новый сеанс
func (st *Store) Create(id string, queue []models.Order, seen fraud.IPHistory) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; ok {
		return nil, ErrSessionExists
	}
	s := newSession(id, queue, seen)
	st.sessions[id] = s
	return s, nil
}

func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (st *Store) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
