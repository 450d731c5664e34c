package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"infinitewash/models"
	"infinitewash/services/apperror"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "booking:session:"

// SessionStore persists booking sessions between requests.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.BookingSession, error)
	Save(ctx context.Context, session *models.BookingSession) error
	Delete(ctx context.Context, sessionID string) error
}

func errSessionNotFound() error {
	return apperror.NewNotFound("booking session not found or expired")
}

// RedisSessionStore keeps sessions as JSON with a sliding TTL.
type RedisSessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{Client: client, TTL: ttl}
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	data, err := s.Client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return nil, errSessionNotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking session %s: %w", sessionID, err)
	}
	var session models.BookingSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to parse booking session %s: %w", sessionID, err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, session *models.BookingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := s.Client.Set(ctx, sessionKeyPrefix+session.SessionID, data, s.TTL).Err(); err != nil {
		return fmt.Errorf("failed to store booking session %s: %w", session.SessionID, err)
	}
	return nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	n, err := s.Client.Del(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return fmt.Errorf("failed to delete booking session %s: %w", sessionID, err)
	}
	if n == 0 {
		return errSessionNotFound()
	}
	return nil
}

// MemorySessionStore keeps sessions in process; used when redis is not configured.
// Expired sessions are swept on Save at most once per TTL.
type MemorySessionStore struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	sessions  map[string]memoryEntry
	lastSweep time.Time
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{ttl: ttl, now: time.Now, sessions: make(map[string]memoryEntry)}
}

func (s *MemorySessionStore) expired(e memoryEntry, at time.Time) bool {
	return s.ttl > 0 && at.After(e.expiresAt)
}

func (s *MemorySessionStore) Get(_ context.Context, sessionID string) (*models.BookingSession, error) {
	s.mu.Lock()
	entry, ok := s.sessions[sessionID]
	if ok && s.expired(entry, s.now()) {
		delete(s.sessions, sessionID)
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return nil, errSessionNotFound()
	}

	// Sessions are copied through JSON so callers never share state with the store.
	var session models.BookingSession
	if err := json.Unmarshal(entry.data, &session); err != nil {
		return nil, fmt.Errorf("failed to parse booking session %s: %w", sessionID, err)
	}
	return &session, nil
}

func (s *MemorySessionStore) Save(_ context.Context, session *models.BookingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	at := s.now()
	s.sweep(at)
	s.sessions[session.SessionID] = memoryEntry{data: data, expiresAt: at.Add(s.ttl)}
	return nil
}

// sweep drops abandoned sessions. Callers hold s.mu.
func (s *MemorySessionStore) sweep(at time.Time) {
	if s.ttl <= 0 || at.Sub(s.lastSweep) < s.ttl {
		return
	}
	for id, e := range s.sessions {
		if s.expired(e, at) {
			delete(s.sessions, id)
		}
	}
	s.lastSweep = at
}

// Len reports how many sessions are held, expired ones included until the next sweep.
func (s *MemorySessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *MemorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return errSessionNotFound()
	}
	delete(s.sessions, sessionID)
	return nil
}
