package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/origination/internal/domain/port"
)

// ErrSessionNotFound is returned for an unknown or ended session ID.
var ErrSessionNotFound = errors.New("session not found")

// Registry tracks live sessions.
type Registry struct {
	factory  port.SessionStoreFactory
	clock    port.Clock
	logger   *slog.Logger
	sessions map[string]*Session
	mu       sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry(factory port.SessionStoreFactory, clock port.Clock, logger *slog.Logger) *Registry {
	return &Registry{
		factory:  factory,
		clock:    clock,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Start opens a new session with its own store.
func (r *Registry) Start(ctx context.Context) (*Session, error) {
	id := uuid.NewString()
	store, err := r.factory.Open(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	s := newSession(id, store, r.clock.Now().UTC())

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()

	r.logger.Info("session started", slog.String("session_id", id))
	return s, nil
}

// Get returns a live session.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// End removes the session, cancels its in-flight work and clears its store.
// The session is returned locked so the caller can read its final state;
// the caller must Unlock it.
func (r *Registry) End(ctx context.Context, id string) (*Session, error) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	s.cancel()
	s.Lock()

	if err := s.Clear(ctx); err != nil {
		r.logger.Warn("failed to clear session store",
			slog.String("session_id", id),
			slog.String("error", err.Error()),
		)
	}
	r.logger.Info("session ended", slog.String("session_id", id))
	return s, nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Expire ends every session created more than ttl ago and returns how many
// it ended.
func (r *Registry) Expire(ctx context.Context, ttl time.Duration) int {
	cutoff := r.clock.Now().Add(-ttl)

	r.mu.RLock()
	var stale []string
	for id, s := range r.sessions {
		if s.CreatedAt().Before(cutoff) {
			stale = append(stale, id)
		}
	}
	r.mu.RUnlock()

	ended := 0
	for _, id := range stale {
		if s, err := r.End(ctx, id); err == nil {
			s.Unlock()
			ended++
		}
	}
	return ended
}

// Shutdown ends every live session.
func (r *Registry) Shutdown(ctx context.Context) {
	r.mu.RLock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	for _, id := range ids {
		if s, err := r.End(ctx, id); err == nil {
			s.Unlock()
		}
	}
}
