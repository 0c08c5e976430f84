package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bibbank/origination/internal/application/dto"
	"github.com/bibbank/origination/internal/application/session"
	"github.com/bibbank/origination/internal/domain/event"
)

// SessionTokenIssuer issues the bearer token bound to a session.
type SessionTokenIssuer interface {
	IssueSessionToken(sessionID string) (string, error)
}

// StartSessionUseCase opens a new funnel session.
type StartSessionUseCase struct {
	registry *session.Registry
	issuer   SessionTokenIssuer
	deps     Deps
}

// NewStartSessionUseCase wires dependencies. A nil issuer disables session
// tokens.
func NewStartSessionUseCase(registry *session.Registry, issuer SessionTokenIssuer, deps Deps) *StartSessionUseCase {
	return &StartSessionUseCase{registry: registry, issuer: issuer, deps: deps}
}

// Execute starts a session at the entry stage.
func (uc *StartSessionUseCase) Execute(ctx context.Context) (dto.StartSessionResponse, error) {
	sess, err := uc.registry.Start(ctx)
	if err != nil {
		return dto.StartSessionResponse{}, fmt.Errorf("start session: %w", err)
	}

	var token string
	if uc.issuer != nil {
		token, err = uc.issuer.IssueSessionToken(sess.ID())
		if err != nil {
			if ended, endErr := uc.registry.End(ctx, sess.ID()); endErr == nil {
				ended.Unlock()
			}
			return dto.StartSessionResponse{}, fmt.Errorf("issue session token: %w", err)
		}
	}

	return dto.StartSessionResponse{
		SessionID:    sess.ID(),
		SessionToken: token,
		Stage:        sess.Stage().String(),
		CreatedAt:    sess.CreatedAt(),
	}, nil
}

// EndSessionUseCase closes a session, cancelling pending work and clearing
// its records.
type EndSessionUseCase struct {
	registry *session.Registry
	deps     Deps
}

// NewEndSessionUseCase wires dependencies.
func NewEndSessionUseCase(registry *session.Registry, deps Deps) *EndSessionUseCase {
	return &EndSessionUseCase{registry: registry, deps: deps}
}

// Execute ends the session identified by sessionID.
func (uc *EndSessionUseCase) Execute(ctx context.Context, sessionID string) (dto.EndSessionResponse, error) {
	sess, err := uc.registry.End(ctx, sessionID)
	if err != nil {
		return dto.EndSessionResponse{}, fmt.Errorf("end session: %w", err)
	}
	last := sess.Stage().String()
	sess.Unlock()

	uc.deps.publish(ctx, event.NewSessionEnded(sessionID, last, uc.deps.now()))
	uc.deps.Logger.InfoContext(ctx, "session closed",
		slog.String("session_id", sessionID),
		slog.String("stage", last),
	)

	return dto.EndSessionResponse{SessionID: sessionID, LastStage: last}, nil
}
