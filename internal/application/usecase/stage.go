package usecase

import (
	"context"
	"fmt"

	"github.com/bibbank/origination/internal/application/dto"
	"github.com/bibbank/origination/internal/application/session"
	"github.com/bibbank/origination/internal/domain/valueobject"
)

const triggerBack = "BACK"

// StartApplicationUseCase moves a session from entry to needs.
type StartApplicationUseCase struct {
	deps Deps
}

// NewStartApplicationUseCase wires dependencies.
func NewStartApplicationUseCase(deps Deps) *StartApplicationUseCase {
	return &StartApplicationUseCase{deps: deps}
}

// Execute fires ApplicationStarted.
func (uc *StartApplicationUseCase) Execute(ctx context.Context, sess *session.Session) (dto.StageTransitionResponse, error) {
	ctx, done, err := begin(ctx, sess)
	if err != nil {
		return dto.StageTransitionResponse{}, err
	}
	defer done()

	from := sess.Stage()
	to, err := uc.deps.advance(ctx, sess, valueobject.EventApplicationStarted)
	if err != nil {
		return dto.StageTransitionResponse{}, err
	}
	return dto.StageTransitionResponse{From: from.String(), To: to.String()}, nil
}

// GoBackUseCase steps a session to its previous stage. Stored records are
// left untouched.
type GoBackUseCase struct {
	deps Deps
}

// NewGoBackUseCase wires dependencies.
func NewGoBackUseCase(deps Deps) *GoBackUseCase {
	return &GoBackUseCase{deps: deps}
}

// Execute moves back one stage.
func (uc *GoBackUseCase) Execute(ctx context.Context, sess *session.Session) (dto.StageTransitionResponse, error) {
	ctx, done, err := begin(ctx, sess)
	if err != nil {
		return dto.StageTransitionResponse{}, err
	}
	defer done()

	current := sess.Machine()
	prev, err := current.Back()
	if err != nil {
		return dto.StageTransitionResponse{}, fmt.Errorf("go back: %w", err)
	}
	sess.SetMachine(prev)
	if changed, ok := uc.deps.recordTransition(ctx, sess, current.Current(), prev.Current(), triggerBack); ok {
		uc.deps.publish(ctx, changed)
	}

	return dto.StageTransitionResponse{From: current.Current().String(), To: prev.Current().String()}, nil
}

// GetStageUseCase reports a session's funnel position.
type GetStageUseCase struct{}

// NewGetStageUseCase returns the use case.
func NewGetStageUseCase() *GetStageUseCase {
	return &GetStageUseCase{}
}

// Execute returns the current and highest stages.
func (uc *GetStageUseCase) Execute(ctx context.Context, sess *session.Session) (dto.StageResponse, error) {
	_, done, err := begin(ctx, sess)
	if err != nil {
		return dto.StageResponse{}, err
	}
	defer done()

	return toStageResponse(sess.Machine()), nil
}
