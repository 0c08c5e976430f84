package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bibbank/origination/internal/application/dto"
	"github.com/bibbank/origination/internal/application/session"
	"github.com/bibbank/origination/internal/domain/event"
	"github.com/bibbank/origination/internal/domain/model"
	"github.com/bibbank/origination/internal/domain/port"
	"github.com/bibbank/origination/internal/domain/valueobject"
)

const operationSubmitIntake = "submit_intake"

// SubmitIntakeUseCase validates the intake form and records the application.
type SubmitIntakeUseCase struct {
	tokens port.TokenGenerator
	deps   Deps
}

// NewSubmitIntakeUseCase wires dependencies.
func NewSubmitIntakeUseCase(tokens port.TokenGenerator, deps Deps) *SubmitIntakeUseCase {
	return &SubmitIntakeUseCase{tokens: tokens, deps: deps}
}

// Execute validates every field, stores the application record and moves
// the session from needs to prequalification. Invalid input leaves the
// session untouched.
func (uc *SubmitIntakeUseCase) Execute(
	ctx context.Context,
	sess *session.Session,
	req dto.SubmitIntakeRequest,
) (dto.SubmitIntakeResponse, error) {
	ctx, done, err := begin(ctx, sess)
	if err != nil {
		return dto.SubmitIntakeResponse{}, err
	}
	defer done()

	// 1. Gate on stage.
	if err := expect(sess, valueobject.EventIntakeSubmitted); err != nil {
		return dto.SubmitIntakeResponse{}, err
	}

	// 2. Validate all fields.
	profile, err := model.ValidateApplicant(model.ApplicantInput{
		Name:            req.Name,
		Mobile:          req.Mobile,
		Age:             req.Age,
		Address:         req.Address,
		PAN:             req.PAN,
		Aadhaar:         req.Aadhaar,
		Employment:      req.Employment,
		Salary:          req.Salary,
		RequestedAmount: req.RequestedAmount,
		Purpose:         req.Purpose,
	})
	if err != nil {
		return dto.SubmitIntakeResponse{}, uc.deps.rejected(ctx, operationSubmitIntake, fmt.Errorf("validate intake: %w", err))
	}

	// 3. Assign a conversation ID.
	now := uc.deps.now()
	conversationID, err := uc.tokens.ConversationID(now)
	if err != nil {
		return dto.SubmitIntakeResponse{}, fmt.Errorf("generate conversation id: %w", err)
	}

	// 4. Persist the application record.
	uc.deps.save(ctx, sess, session.KeyApplication, session.NewApplicationRecord(profile, conversationID))

	// 5. Publish and advance.
	stage, err := uc.deps.advance(ctx, sess, valueobject.EventIntakeSubmitted, event.NewIntakeSubmitted(
		sess.ID(), conversationID, profile.Tier().String(), profile.Purpose(), profile.RequestedAmount(), now,
	))
	if err != nil {
		return dto.SubmitIntakeResponse{}, err
	}

	uc.deps.Logger.InfoContext(ctx, "intake accepted",
		slog.String("session_id", sess.ID()),
		slog.String("conversation_id", conversationID),
		slog.String("tier", profile.Tier().String()),
	)

	return dto.SubmitIntakeResponse{
		ConversationID:  conversationID,
		Tier:            profile.Tier().String(),
		Stage:           stage.String(),
		RequestedAmount: profile.RequestedAmount(),
	}, nil
}
