package debtledger

import (
	"fmt"
	"sync"
	"time"
)

// Store keeps encoded ledger documents keyed by session. Entries expire; a
// Get after the TTL behaves as if the key was never written.
type Store interface {
	// Get returns the document stored under key, or an error when the key is
	// unknown or expired.
	Get(key string) ([]byte, error)
	// Put stores the document under key for at most ttl.
	Put(key string, doc []byte, ttl time.Duration) error
	// Delete removes the document under key. Deleting an unknown key is not
	// an error.
	Delete(key string) error
}

type memoryEntry struct {
	doc     []byte
	expires time.Time
}

// MemoryStore is an in-process Store. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || s.now().After(e.expires) {
		delete(s.entries, key)
		return nil, fmt.Errorf("no document for %q", key)
	}
	doc := make([]byte, len(e.doc))
	copy(doc, e.doc)
	return doc, nil
}

func (s *MemoryStore) Put(key string, doc []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(doc))
	copy(stored, doc)
	s.entries[key] = memoryEntry{doc: stored, expires: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
