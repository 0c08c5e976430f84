package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/origination/internal/domain/model"
	"github.com/bibbank/origination/internal/domain/port"
	"github.com/bibbank/origination/internal/domain/valueobject"
)

// Session is one applicant's pass through the funnel. Operations on a
// session are serialised with Lock/Unlock; End cancels any in-flight work.
type Session struct {
	createdAt    time.Time
	store        port.SessionStore
	ctx          context.Context
	cancel       context.CancelFunc
	issuedTokens map[string]struct{}
	id           string
	machine      model.StageMachine
	mu           sync.Mutex
}

func newSession(id string, store port.SessionStore, now time.Time) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		id:           id,
		store:        store,
		machine:      model.NewStageMachine(),
		issuedTokens: make(map[string]struct{}),
		createdAt:    now,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// CreatedAt returns when the session started.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Lock serialises an operation on the session.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session.
func (s *Session) Unlock() { s.mu.Unlock() }

// Bind derives a context that is cancelled when either parent is done or the
// session ends.
func (s *Session) Bind(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	stop := context.AfterFunc(s.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// Ended reports whether the session has been closed.
func (s *Session) Ended() bool { return s.ctx.Err() != nil }

// Machine returns the current stage machine. Callers hold the lock.
func (s *Session) Machine() model.StageMachine { return s.machine }

// Stage returns the current stage. Callers hold the lock.
func (s *Session) Stage() valueobject.Stage { return s.machine.Current() }

// SetMachine replaces the stage machine. Callers hold the lock.
func (s *Session) SetMachine(m model.StageMachine) { s.machine = m }

// RememberToken records an issued agreement token. It returns false when
// the token was already issued in this session.
func (s *Session) RememberToken(token string) bool {
	if _, dup := s.issuedTokens[token]; dup {
		return false
	}
	s.issuedTokens[token] = struct{}{}
	return true
}

// Load decodes the record at key into dst. found is false for a missing
// key. Store failures are wrapped with model.ErrStorageUnavailable.
func (s *Session) Load(ctx context.Context, key string, dst any) (bool, error) {
	raw, found, err := s.store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("load %s: %w: %w", key, model.ErrStorageUnavailable, err)
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Save encodes v and writes it at key.
func (s *Session) Save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w: %w", key, model.ErrStorageUnavailable, err)
	}
	return nil
}

// Clear removes every record of the session.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w: %w", model.ErrStorageUnavailable, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Typed readers with fallbacks
// ---------------------------------------------------------------------------

// Application returns the stored application record. When it is missing or
// unreadable, a placeholder record is returned with an error wrapping
// model.ErrMissingUpstreamData.
func (s *Session) Application(ctx context.Context) (ApplicationRecord, error) {
	var rec ApplicationRecord
	found, err := s.Load(ctx, KeyApplication, &rec)
	if err == nil && found {
		return rec, nil
	}
	return placeholderApplication(), missing(KeyApplication, err)
}

// SanctionedAmount returns the stored sanctioned amount, or zero with a
// missing-data error.
func (s *Session) SanctionedAmount(ctx context.Context) (decimal.Decimal, error) {
	var amount decimal.Decimal
	found, err := s.Load(ctx, KeySanctionedAmount, &amount)
	if err == nil && found {
		return amount, nil
	}
	return decimal.Zero, missing(KeySanctionedAmount, err)
}

// Eligibility returns the stored eligibility limit, if any.
func (s *Session) Eligibility(ctx context.Context) (EligibilityRecord, error) {
	var rec EligibilityRecord
	found, err := s.Load(ctx, KeyEligibility, &rec)
	if err == nil && found {
		return rec, nil
	}
	return EligibilityRecord{}, missing(KeyEligibility, err)
}

// DocumentStatuses returns the stored upload outcomes, if any.
func (s *Session) DocumentStatuses(ctx context.Context) (DocumentStatusesRecord, error) {
	rec := DocumentStatusesRecord{}
	found, err := s.Load(ctx, KeyDocumentStatuses, &rec)
	if err == nil && found {
		return rec, nil
	}
	return DocumentStatusesRecord{}, missing(KeyDocumentStatuses, err)
}

// SelectedPlan returns the stored plan, or an empty plan with a
// missing-data error.
func (s *Session) SelectedPlan(ctx context.Context) (SelectedPlanRecord, error) {
	var rec SelectedPlanRecord
	found, err := s.Load(ctx, KeySelectedPlan, &rec)
	if err == nil && found {
		return rec, nil
	}
	return SelectedPlanRecord{}, missing(KeySelectedPlan, err)
}

// Agreement returns the stored agreement, or an empty record with a
// missing-data error.
func (s *Session) Agreement(ctx context.Context) (AgreementRecord, error) {
	var rec AgreementRecord
	found, err := s.Load(ctx, KeyAgreement, &rec)
	if err == nil && found {
		return rec, nil
	}
	return AgreementRecord{}, missing(KeyAgreement, err)
}

// Credit returns the stored credit assessment, if any.
func (s *Session) Credit(ctx context.Context) (CreditRecord, error) {
	var rec CreditRecord
	found, err := s.Load(ctx, KeyCreditAssessment, &rec)
	if err == nil && found {
		return rec, nil
	}
	return CreditRecord{}, missing(KeyCreditAssessment, err)
}

func placeholderApplication() ApplicationRecord {
	return ApplicationRecord{
		User:     UserRecord{Name: PlaceholderText, Mobile: PlaceholderText},
		Metadata: ApplicationMetadata{},
	}
}

func missing(key string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", key, model.ErrMissingUpstreamData)
	}
	return fmt.Errorf("%s: %w: %w", key, model.ErrMissingUpstreamData, cause)
}

// IsMissing reports whether err signals absent upstream data.
func IsMissing(err error) bool { return errors.Is(err, model.ErrMissingUpstreamData) }
