package usecase

import (
	"context"

	"github.com/bibbank/origination/internal/application/dto"
	"github.com/bibbank/origination/internal/application/session"
)

// SummarySource tags final agreements produced by GetAgreementUseCase.
const SummarySource = "agreement-summary"

// GetAgreementUseCase reads back the issued agreement.
type GetAgreementUseCase struct {
	deps Deps
}

// NewGetAgreementUseCase wires dependencies.
func NewGetAgreementUseCase(deps Deps) *GetAgreementUseCase {
	return &GetAgreementUseCase{deps: deps}
}

// Execute returns the stored agreement and persists its final summary. With
// no agreement on record a placeholder is returned with Found unset.
func (uc *GetAgreementUseCase) Execute(ctx context.Context, sess *session.Session) (dto.AgreementResponse, error) {
	ctx, done, err := begin(ctx, sess)
	if err != nil {
		return dto.AgreementResponse{}, err
	}
	defer done()

	rec, err := sess.Agreement(ctx)
	if err != nil {
		uc.deps.fallback(ctx, sess, err)
		return toAgreementResponse(session.AgreementRecord{}, false, sess.Stage()), nil
	}

	final := session.FinalAgreementRecord{
		Token:          rec.Token,
		GeneratedAt:    uc.deps.now(),
		AcknowledgedAt: rec.AcknowledgedAt,
		LoanAmount:     rec.SanctionedAmount,
		Plan:           rec.Plan,
		Collateral:     rec.Collateral,
		Applicant:      session.UserRecord{Name: session.PlaceholderText, Mobile: session.PlaceholderText},
		Meta:           session.FinalAgreementMeta{SavedFrom: SummarySource},
	}
	if rec.User != nil {
		final.Applicant = rec.User.User
	}
	uc.deps.save(ctx, sess, session.KeyFinalAgreement, final)

	return toAgreementResponse(rec, true, sess.Stage()), nil
}
