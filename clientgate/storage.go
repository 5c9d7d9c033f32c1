// Package clientgate models the device-side lifecycle of the feedback page:
// one stored review per device with a fixed retention window, a form that
// stays locked while a valid review is stored, and idempotent best-effort
// engagement-click sends.
package clientgate

import "sync"

// Storage is the durable string key-value store the gate persists into, the
// shape of a browser's localStorage.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
}

// MemoryStorage is an in-process Storage.
type MemoryStorage struct {
	mutex sync.Mutex
	items map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

func (s *MemoryStorage) Get(key string) (string, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	v, ok := s.items[key]
	return v, ok
}

func (s *MemoryStorage) Set(key, value string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.items[key] = value
}

func (s *MemoryStorage) Remove(key string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.items, key)
}
