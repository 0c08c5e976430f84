package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/bibbank/origination/internal/domain/port"
	"github.com/bibbank/origination/pkg/observability"
)

// FallbackStore mirrors every write into memory and serves from the
// primary backend until it first fails. From then on the session runs on
// the in-memory mirror alone; store errors never reach the caller.
// Caller cancellation does not count as a failure.
type FallbackStore struct {
	primary   port.SessionStore
	mirror    *MemoryStore
	logger    *slog.Logger
	metrics   *observability.FunnelMetrics
	backend   string
	sessionID string
	mu        sync.Mutex
	degraded  bool
}

// NewFallbackStore wraps primary. A nil primary starts degraded.
func NewFallbackStore(
	primary port.SessionStore,
	backend, sessionID string,
	logger *slog.Logger,
	metrics *observability.FunnelMetrics,
) *FallbackStore {
	return &FallbackStore{
		primary:   primary,
		mirror:    NewMemoryStore(),
		logger:    logger,
		metrics:   metrics,
		backend:   backend,
		sessionID: sessionID,
		degraded:  primary == nil,
	}
}

// Degraded reports whether the primary backend has been abandoned.
func (s *FallbackStore) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

func (s *FallbackStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if !s.Degraded() {
		v, ok, err := s.primary.Get(ctx, key)
		if err == nil {
			return v, ok, nil
		}
		s.degrade(ctx, "get", err)
	}
	return s.mirror.Get(ctx, key)
}

func (s *FallbackStore) Set(ctx context.Context, key string, value []byte) error {
	_ = s.mirror.Set(ctx, key, value)
	if s.Degraded() {
		return nil
	}
	if err := s.primary.Set(ctx, key, value); err != nil {
		s.degrade(ctx, "set", err)
	}
	return nil
}

// Clear always attempts the primary delete, degraded or not, so records
// written before a degradation do not outlive the session.
func (s *FallbackStore) Clear(ctx context.Context) error {
	_ = s.mirror.Clear(ctx)
	if s.primary == nil {
		return nil
	}
	if err := s.primary.Clear(ctx); err != nil {
		if s.Degraded() {
			s.logger.WarnContext(ctx, "failed to clear degraded session store",
				slog.String("session_id", s.sessionID),
				slog.String("backend", s.backend),
				slog.String("error", err.Error()),
			)
			return nil
		}
		s.degrade(ctx, "clear", err)
	}
	return nil
}

// degrade abandons the primary. A cancelled or expired caller context is
// not a backend failure: that one call is served from the mirror and the
// primary stays in use.
func (s *FallbackStore) degrade(ctx context.Context, op string, cause error) {
	if errors.Is(cause, context.Canceled) || errors.Is(cause, context.DeadlineExceeded) {
		s.logger.DebugContext(ctx, "session store call abandoned by caller",
			slog.String("session_id", s.sessionID),
			slog.String("backend", s.backend),
			slog.String("op", op),
			slog.String("error", cause.Error()),
		)
		return
	}

	s.mu.Lock()
	already := s.degraded
	s.degraded = true
	s.mu.Unlock()
	if already {
		return
	}

	s.metrics.StoreDegraded(ctx, s.backend)
	s.logger.WarnContext(ctx, "session store unavailable, continuing in memory",
		slog.String("session_id", s.sessionID),
		slog.String("backend", s.backend),
		slog.String("op", op),
		slog.String("error", cause.Error()),
	)
}

// FallbackFactory opens primary stores wrapped in FallbackStore. When the
// primary cannot be opened the session starts in memory.
type FallbackFactory struct {
	primary port.SessionStoreFactory
	logger  *slog.Logger
	metrics *observability.FunnelMetrics
	backend string
}

// NewFallbackFactory wraps primary, labelling degradations with backend.
func NewFallbackFactory(
	primary port.SessionStoreFactory,
	backend string,
	logger *slog.Logger,
	metrics *observability.FunnelMetrics,
) *FallbackFactory {
	return &FallbackFactory{primary: primary, backend: backend, logger: logger, metrics: metrics}
}

func (f *FallbackFactory) Open(ctx context.Context, sessionID string) (port.SessionStore, error) {
	primary, err := f.primary.Open(ctx, sessionID)
	if err != nil {
		f.metrics.StoreDegraded(ctx, f.backend)
		f.logger.WarnContext(ctx, "session store unavailable, starting in memory",
			slog.String("session_id", sessionID),
			slog.String("backend", f.backend),
			slog.String("error", err.Error()),
		)
		return NewFallbackStore(nil, f.backend, sessionID, f.logger, f.metrics), nil
	}
	return NewFallbackStore(primary, f.backend, sessionID, f.logger, f.metrics), nil
}
