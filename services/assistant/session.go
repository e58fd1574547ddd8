package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"clinicdesk/models"
	"clinicdesk/services/booking"

	"github.com/go-redis/redis/v8"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore is the registry of live conversations, keyed by session ID.
// Entries expire after the idle TTL so abandoned conversations do not leak.
type SessionStore interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Put(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id string) error
}

const sessionKeyPrefix = "assistant:sess:"

// RedisSessionStore holds sessions in Redis with a rolling TTL.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*models.Session, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+id).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var session models.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *RedisSessionStore) Put(ctx context.Context, session *models.Session) error {
	b, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKeyPrefix+session.ID, b, s.ttl).Err()
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKeyPrefix+id).Err()
}

// MemorySessionStore is the in-process registry used in tests and
// single-node deployments without Redis.
type MemorySessionStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]*models.Session
	now      func() time.Time
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		ttl:      ttl,
		sessions: make(map[string]*models.Session),
		now:      time.Now,
	}
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.ttl > 0 && s.now().Sub(session.LastActive) > s.ttl {
		delete(s.sessions, id)
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *MemorySessionStore) Put(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// turnLocks serializes turns per session. Turns on one session queue in
// arrival order; a waiter that cannot get the lock within the timeout fails
// with SessionBusy. Sessions never share a lock, and an entry is reclaimed
// as soon as no turn holds or waits on it, so abandoned session IDs leave
// nothing behind.
type turnLocks struct {
	mu   sync.Mutex
	held map[string]*sessionLock
}

// sessionLock tracks one session's current holder and its queued waiters.
// refs counts every goroutine with an interest in the entry; it is removed
// from the registry once refs reaches zero.
type sessionLock struct {
	refs    int
	holder  bool
	waiters []chan struct{}
}

func newTurnLocks() *turnLocks {
	return &turnLocks{held: make(map[string]*sessionLock)}
}

func (l *turnLocks) acquire(id string, timeout time.Duration) error {
	l.mu.Lock()
	lk, ok := l.held[id]
	if !ok {
		lk = &sessionLock{}
		l.held[id] = lk
	}
	lk.refs++
	if !lk.holder {
		lk.holder = true
		l.mu.Unlock()
		return nil
	}
	ready := make(chan struct{})
	lk.waiters = append(lk.waiters, ready)
	l.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-ready:
		return nil
	case <-timer.C:
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for i, w := range lk.waiters {
		if w == ready {
			lk.waiters = append(lk.waiters[:i], lk.waiters[i+1:]...)
			lk.refs--
			return booking.NewBookingError(booking.CodeSessionBusy, "another turn is already in progress")
		}
	}
	// The lock was handed over between the timeout firing and reacquiring
	// the registry mutex; pass it straight on.
	l.handOff(id, lk)
	return booking.NewBookingError(booking.CodeSessionBusy, "another turn is already in progress")
}

func (l *turnLocks) release(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	lk := l.held[id]
	if lk == nil || !lk.holder {
		return
	}
	l.handOff(id, lk)
}

// handOff passes the turn to the oldest waiter, or retires the entry once
// nobody holds or waits on it. Callers hold l.mu and own the current grant.
func (l *turnLocks) handOff(id string, lk *sessionLock) {
	lk.refs--
	if len(lk.waiters) > 0 {
		ready := lk.waiters[0]
		lk.waiters = lk.waiters[1:]
		close(ready)
		return
	}
	lk.holder = false
	if lk.refs == 0 {
		delete(l.held, id)
	}
}
