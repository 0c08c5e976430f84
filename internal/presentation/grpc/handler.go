package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/origination/internal/application/dto"
	"github.com/bibbank/origination/internal/application/session"
	"github.com/bibbank/origination/internal/application/usecase"
	"github.com/bibbank/origination/internal/domain/model"
	"github.com/bibbank/origination/internal/domain/valueobject"
	"github.com/bibbank/origination/pkg/auth"
)

// UseCases groups every funnel operation the handler exposes.
type UseCases struct {
	StartSession      *usecase.StartSessionUseCase
	EndSession        *usecase.EndSessionUseCase
	GetStage          *usecase.GetStageUseCase
	StartApplication  *usecase.StartApplicationUseCase
	GoBack            *usecase.GoBackUseCase
	SubmitIntake      *usecase.SubmitIntakeUseCase
	VerifyIdentity    *usecase.VerifyIdentityUseCase
	AssessEligibility *usecase.AssessEligibilityUseCase
	SelectPlan        *usecase.SelectPlanUseCase
	RequiredDocuments *usecase.RequiredDocumentsUseCase
	UploadDocuments   *usecase.UploadDocumentsUseCase
	AcknowledgeTerms  *usecase.AcknowledgeTermsUseCase
	GetAgreement      *usecase.GetAgreementUseCase
	Assist            *usecase.AssistUseCase
}

// OriginationHandler implements OriginationServiceServer. Every call except
// StartSession acts on the session named in the caller's token.
type OriginationHandler struct {
	UnimplementedOriginationServiceServer

	uc       UseCases
	registry *session.Registry
	logger   *slog.Logger
}

func NewOriginationHandler(uc UseCases, registry *session.Registry, logger *slog.Logger) *OriginationHandler {
	return &OriginationHandler{uc: uc, registry: registry, logger: logger}
}

func (h *OriginationHandler) session(ctx context.Context) (*session.Session, error) {
	id, ok := auth.SessionIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "token carries no session")
	}
	sess, err := h.registry.Get(id)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return sess, nil
}

// call resolves the caller's session, runs fn on it and maps the error.
func call[Resp any](
	ctx context.Context,
	h *OriginationHandler,
	fn func(context.Context, *session.Session) (Resp, error),
) (*Resp, error) {
	sess, err := h.session(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := fn(ctx, sess)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &resp, nil
}

func (h *OriginationHandler) StartSession(ctx context.Context, _ *Empty) (*dto.StartSessionResponse, error) {
	resp, err := h.uc.StartSession.Execute(ctx)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &resp, nil
}

func (h *OriginationHandler) EndSession(ctx context.Context, _ *Empty) (*dto.EndSessionResponse, error) {
	id, ok := auth.SessionIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "token carries no session")
	}
	resp, err := h.uc.EndSession.Execute(ctx, id)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &resp, nil
}

func (h *OriginationHandler) GetStage(ctx context.Context, _ *Empty) (*dto.StageResponse, error) {
	return call(ctx, h, h.uc.GetStage.Execute)
}

func (h *OriginationHandler) StartApplication(ctx context.Context, _ *Empty) (*dto.StageTransitionResponse, error) {
	return call(ctx, h, h.uc.StartApplication.Execute)
}

func (h *OriginationHandler) GoBack(ctx context.Context, _ *Empty) (*dto.StageTransitionResponse, error) {
	return call(ctx, h, h.uc.GoBack.Execute)
}

func (h *OriginationHandler) SubmitIntake(ctx context.Context, req *dto.SubmitIntakeRequest) (*dto.SubmitIntakeResponse, error) {
	return call(ctx, h, func(ctx context.Context, sess *session.Session) (dto.SubmitIntakeResponse, error) {
		return h.uc.SubmitIntake.Execute(ctx, sess, *req)
	})
}

func (h *OriginationHandler) VerifyIdentity(ctx context.Context, _ *Empty) (*dto.CreditAssessmentResponse, error) {
	return call(ctx, h, h.uc.VerifyIdentity.Execute)
}

func (h *OriginationHandler) AssessEligibility(ctx context.Context, _ *Empty) (*dto.EligibilityResponse, error) {
	return call(ctx, h, h.uc.AssessEligibility.Execute)
}

func (h *OriginationHandler) SelectPlan(ctx context.Context, req *dto.SelectPlanRequest) (*dto.SelectPlanResponse, error) {
	return call(ctx, h, func(ctx context.Context, sess *session.Session) (dto.SelectPlanResponse, error) {
		return h.uc.SelectPlan.Execute(ctx, sess, *req)
	})
}

func (h *OriginationHandler) RequiredDocuments(ctx context.Context, _ *Empty) (*dto.RequiredDocumentsResponse, error) {
	return call(ctx, h, h.uc.RequiredDocuments.Execute)
}

func (h *OriginationHandler) UploadDocuments(ctx context.Context, req *dto.UploadDocumentsRequest) (*dto.UploadDocumentsResponse, error) {
	return call(ctx, h, func(ctx context.Context, sess *session.Session) (dto.UploadDocumentsResponse, error) {
		return h.uc.UploadDocuments.Execute(ctx, sess, *req)
	})
}

func (h *OriginationHandler) AcknowledgeTerms(ctx context.Context, req *dto.AcknowledgeTermsRequest) (*dto.AgreementResponse, error) {
	return call(ctx, h, func(ctx context.Context, sess *session.Session) (dto.AgreementResponse, error) {
		return h.uc.AcknowledgeTerms.Execute(ctx, sess, *req)
	})
}

func (h *OriginationHandler) GetAgreement(ctx context.Context, _ *Empty) (*dto.AgreementResponse, error) {
	return call(ctx, h, h.uc.GetAgreement.Execute)
}

func (h *OriginationHandler) Assist(ctx context.Context, req *dto.AssistRequest) (*dto.AssistResponse, error) {
	return call(ctx, h, func(ctx context.Context, sess *session.Session) (dto.AssistResponse, error) {
		return h.uc.Assist.Execute(ctx, sess, *req)
	})
}

// toStatus maps application errors onto gRPC codes. Unexpected errors are
// logged and surface as Internal.
func (h *OriginationHandler) toStatus(ctx context.Context, err error) error {
	var fieldErr *model.FieldValidationError
	switch {
	case errors.As(err, &fieldErr), errors.Is(err, model.ErrCollateralPairing):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, valueobject.ErrInvalidStageTransition), errors.Is(err, valueobject.ErrNoPreviousStage):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, session.ErrSessionNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, usecase.ErrTokenExhausted):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	h.logger.ErrorContext(ctx, "request failed", slog.String("error", err.Error()))
	return status.Error(codes.Internal, "internal error")
}
