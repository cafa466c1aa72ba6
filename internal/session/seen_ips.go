package session

import (
	"sync"

	"cod-fraud-system/internal/fraud"
)

// SeenIPSet множество IP в памяти процесса
type SeenIPSet struct {
	mu  sync.RWMutex
	ips map[string]struct{}
}

var _ fraud.IPHistory = (*SeenIPSet)(nil)

func NewSeenIPSet() *SeenIPSet {
	return &SeenIPSet{ips: make(map[string]struct{})}
}

func (s *SeenIPSet) Contains(ip string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ips[ip]
	return ok, nil
}

func (s *SeenIPSet) Add(ip string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ips[ip] = struct{}{}
	return nil
}

func (s *SeenIPSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ips)
}
