package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gokatarajesh/bc-quiz/internal/quiz"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrBusy     = errors.New("session is being updated")
)

// Store keeps flow snapshots for the lifetime of a session.
type Store interface {
	Save(ctx context.Context, id uuid.UUID, snap quiz.Snapshot) error
	// Load returns ErrNotFound for unknown or expired sessions.
	Load(ctx context.Context, id uuid.UUID) (quiz.Snapshot, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Lock serializes updates to one session. It fails with ErrBusy instead
	// of waiting.
	Lock(ctx context.Context, id uuid.UUID) (func() error, error)
}

// MemoryStore is an in-process Store used when no Redis address is set.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[uuid.UUID]memoryEntry
	locks   map[uuid.UUID]struct{}
}

type memoryEntry struct {
	snap      quiz.Snapshot
	expiresAt time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store whose entries expire after ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[uuid.UUID]memoryEntry),
		locks:   make(map[uuid.UUID]struct{}),
	}
}

func (m *MemoryStore) Save(_ context.Context, id uuid.UUID, snap quiz.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = memoryEntry{snap: copySnapshot(snap), expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Load(_ context.Context, id uuid.UUID) (quiz.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[id]
	if !ok {
		return quiz.Snapshot{}, ErrNotFound
	}
	if m.now().After(entry.expiresAt) {
		delete(m.entries, id)
		return quiz.Snapshot{}, ErrNotFound
	}
	return copySnapshot(entry.snap), nil
}

func (m *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

func (m *MemoryStore) Lock(_ context.Context, id uuid.UUID) (func() error, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, held := m.locks[id]; held {
		return nil, ErrBusy
	}
	m.locks[id] = struct{}{}
	var once sync.Once
	return func() error {
		once.Do(func() {
			m.mu.Lock()
			delete(m.locks, id)
			m.mu.Unlock()
		})
		return nil
	}, nil
}

// Len reports live entries; expired ones are dropped first.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for id, entry := range m.entries {
		if now.After(entry.expiresAt) {
			delete(m.entries, id)
		}
	}
	return len(m.entries)
}

func copySnapshot(s quiz.Snapshot) quiz.Snapshot {
	if s.Answers != nil {
		answers := make(map[string]bool, len(s.Answers))
		for k, v := range s.Answers {
			answers[k] = v
		}
		s.Answers = answers
	}
	return s
}
