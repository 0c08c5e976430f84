package port

import (
	"context"
	"time"

	"github.com/bibbank/origination/internal/domain/event"
	"github.com/bibbank/origination/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Session storage (driven adapters)
// ---------------------------------------------------------------------------

// SessionStore is a session-scoped key/value surface. There are no
// transactional guarantees; the last write for a key wins and rewriting the
// same value is harmless.
type SessionStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	// Clear removes every key written in this session.
	Clear(ctx context.Context) error
}

// SessionStoreFactory opens the store for one session.
type SessionStoreFactory interface {
	Open(ctx context.Context, sessionID string) (SessionStore, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// External service ports
// ---------------------------------------------------------------------------

// DocumentUploader receives applicant documents. Both calls block until the
// simulated transfer completes or ctx is done.
type DocumentUploader interface {
	Upload(ctx context.Context, doc model.UploadedDocument) error
	// Verify runs KYC processing over an uploaded batch.
	Verify(ctx context.Context, docs []model.UploadedDocument) error
}

// IntentClassifier interprets a free-text assistant message.
type IntentClassifier interface {
	Classify(ctx context.Context, text string) (model.Intent, error)
}

// TokenGenerator produces agreement tokens and conversation IDs.
type TokenGenerator interface {
	AgreementToken(now time.Time) (string, error)
	ConversationID(now time.Time) (string, error)
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}
