package session

import "sync"

// MemoryStore is an in-memory Store. It backs tests and one-shot usage where
// persisting credentials is not wanted.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

func (s *MemoryStore) set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *MemoryStore) AccessToken() (string, error) {
	return s.get(KeyAccessToken), nil
}

func (s *MemoryStore) RefreshToken() (string, error) {
	return s.get(KeyRefreshToken), nil
}

func (s *MemoryStore) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[KeyAccessToken] = access
	s.values[KeyRefreshToken] = refresh
	return nil
}

func (s *MemoryStore) SessionID() (string, error) {
	return s.get(KeySessionID), nil
}

func (s *MemoryStore) SetSessionID(id string) error {
	s.set(KeySessionID, id)
	return nil
}

func (s *MemoryStore) Profile() ([]byte, error) {
	value := s.get(KeyProfile)
	if value == "" {
		return nil, nil
	}
	return []byte(value), nil
}

func (s *MemoryStore) SetProfile(profile []byte) error {
	s.set(KeyProfile, string(profile))
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]string)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
