package usecase

import (
	"context"
	"log/slog"

	"github.com/bibbank/origination/internal/application/dto"
	"github.com/bibbank/origination/internal/application/session"
	"github.com/bibbank/origination/internal/domain/event"
	"github.com/bibbank/origination/internal/domain/model"
	"github.com/bibbank/origination/internal/domain/service"
	"github.com/bibbank/origination/internal/domain/valueobject"
)

// AssessEligibilityUseCase derives the lending ceiling and prices every
// tenor on the sanctioned principal.
type AssessEligibilityUseCase struct {
	engine *service.EligibilityEngine
	deps   Deps
}

// NewAssessEligibilityUseCase wires dependencies.
func NewAssessEligibilityUseCase(engine *service.EligibilityEngine, deps Deps) *AssessEligibilityUseCase {
	return &AssessEligibilityUseCase{engine: engine, deps: deps}
}

// Execute quotes plans and moves the session from eligibility to offer. A
// limit already stored for the same intake answers is reused.
func (uc *AssessEligibilityUseCase) Execute(ctx context.Context, sess *session.Session) (dto.EligibilityResponse, error) {
	ctx, done, err := begin(ctx, sess)
	if err != nil {
		return dto.EligibilityResponse{}, err
	}
	defer done()

	if err := expect(sess, valueobject.EventEligibilityAssessed); err != nil {
		return dto.EligibilityResponse{}, err
	}

	app, err := sess.Application(ctx)
	uc.deps.fallback(ctx, sess, err)
	profile := app.Profile()

	limit, reused := uc.limitFor(ctx, sess, profile)
	quote := uc.engine.QuoteFor(limit)

	if !reused {
		uc.deps.save(ctx, sess, session.KeyEligibility, session.NewEligibilityRecord(limit))
	}
	uc.deps.save(ctx, sess, session.KeySanctionedAmount, limit.Sanctioned)
	stage, err := uc.deps.advance(ctx, sess, valueobject.EventEligibilityAssessed, event.NewEligibilityAssessed(
		sess.ID(), limit.Ceiling, limit.Sanctioned, limit.LimitExceeded, uc.deps.now(),
	))
	if err != nil {
		return dto.EligibilityResponse{}, err
	}

	uc.deps.Logger.InfoContext(ctx, "eligibility assessed",
		slog.String("session_id", sess.ID()),
		slog.String("sanctioned", limit.Sanctioned.String()),
		slog.Bool("limit_exceeded", limit.LimitExceeded),
		slog.Bool("reused", reused),
	)

	return toEligibilityResponse(quote, stage), nil
}

func (uc *AssessEligibilityUseCase) limitFor(
	ctx context.Context,
	sess *session.Session,
	profile model.ApplicantProfile,
) (model.EligibilityLimit, bool) {
	if stored, err := sess.Eligibility(ctx); err == nil && stored.Matches(profile) {
		return stored.Limit(), true
	}
	return uc.engine.Limit(profile.Tier(), profile.Salary(), profile.RequestedAmount()), false
}

func toEligibilityResponse(q model.PlanQuote, stage valueobject.Stage) dto.EligibilityResponse {
	plans := make([]dto.PlanResponse, 0, len(q.Plans))
	for _, p := range q.Plans {
		plans = append(plans, toPlanResponse(p))
	}
	return dto.EligibilityResponse{
		Tier:              q.Limit.Tier.String(),
		Stage:             stage.String(),
		Salary:            q.Limit.Salary,
		Requested:         q.Limit.Requested,
		Ceiling:           q.Limit.Ceiling,
		Sanctioned:        q.Limit.Sanctioned,
		LimitExceeded:     q.Limit.LimitExceeded,
		Plans:             plans,
		RecommendedTenor:  q.RecommendedTenor,
		MonthlyRate:       q.MonthlyRate,
		AnnualRatePercent: q.AnnualRatePercent,
	}
}
