package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bibbank/origination/internal/application/dto"
	"github.com/bibbank/origination/internal/application/session"
	"github.com/bibbank/origination/internal/domain/event"
	"github.com/bibbank/origination/internal/domain/model"
	"github.com/bibbank/origination/internal/domain/service"
	"github.com/bibbank/origination/internal/domain/valueobject"
)

const (
	operationSelectPlan = "select_plan"

	// FieldMonths is the request field naming the chosen tenor.
	FieldMonths = "months"
)

// SelectPlanUseCase records the applicant's chosen tenor.
type SelectPlanUseCase struct {
	engine *service.EligibilityEngine
	deps   Deps
}

// NewSelectPlanUseCase wires dependencies.
func NewSelectPlanUseCase(engine *service.EligibilityEngine, deps Deps) *SelectPlanUseCase {
	return &SelectPlanUseCase{engine: engine, deps: deps}
}

// Execute prices the chosen tenor on the sanctioned amount, stores the plan
// and moves the session from offer to documents.
func (uc *SelectPlanUseCase) Execute(
	ctx context.Context,
	sess *session.Session,
	req dto.SelectPlanRequest,
) (dto.SelectPlanResponse, error) {
	ctx, done, err := begin(ctx, sess)
	if err != nil {
		return dto.SelectPlanResponse{}, err
	}
	defer done()

	if err := expect(sess, valueobject.EventPlanSelected); err != nil {
		return dto.SelectPlanResponse{}, err
	}

	tenor, ok := uc.engine.Tenor(req.Months)
	if !ok {
		err := model.NewFieldValidationError(model.FieldError{
			Field:   FieldMonths,
			Message: fmt.Sprintf("%d months is not an offered plan.", req.Months),
		})
		return dto.SelectPlanResponse{}, uc.deps.rejected(ctx, operationSelectPlan, fmt.Errorf("select plan: %w", err))
	}

	limit := uc.sanctionedLimit(ctx, sess)
	plan := uc.engine.QuotePlan(limit.Sanctioned, tenor)
	now := uc.deps.now()

	uc.deps.save(ctx, sess, session.KeySelectedPlan, session.NewSelectedPlanRecord(plan))
	uc.deps.save(ctx, sess, session.KeySanctionedAmount, plan.Principal)
	stage, err := uc.deps.advance(ctx, sess, valueobject.EventPlanSelected,
		event.NewPlanSelected(sess.ID(), plan.TenorMonths, plan.EMI, plan.TotalPayable, plan.Principal, now))
	if err != nil {
		return dto.SelectPlanResponse{}, err
	}

	uc.deps.Logger.InfoContext(ctx, "plan selected",
		slog.String("session_id", sess.ID()),
		slog.Int("months", plan.TenorMonths),
		slog.String("emi", plan.EMI.String()),
	)

	resp := dto.SelectPlanResponse{Stage: stage.String(), Plan: toPlanResponse(plan)}
	if req.IncludeSchedule {
		resp.Schedule = toScheduleResponse(plan.Schedule(now))
	}
	return resp, nil
}

// sanctionedLimit prefers the stored limit and otherwise recomputes it from
// the stored application.
func (uc *SelectPlanUseCase) sanctionedLimit(ctx context.Context, sess *session.Session) model.EligibilityLimit {
	stored, err := sess.Eligibility(ctx)
	if err == nil {
		return stored.Limit()
	}
	uc.deps.fallback(ctx, sess, err)

	app, err := sess.Application(ctx)
	uc.deps.fallback(ctx, sess, err)
	profile := app.Profile()
	return uc.engine.Limit(profile.Tier(), profile.Salary(), profile.RequestedAmount())
}

func toScheduleResponse(entries []model.AmortizationEntry) []dto.AmortizationEntryResponse {
	out := make([]dto.AmortizationEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.AmortizationEntryResponse{
			Period:           e.Period,
			DueDate:          e.DueDate,
			Principal:        e.Principal,
			Interest:         e.Interest,
			Total:            e.Total,
			RemainingBalance: e.RemainingBalance,
		})
	}
	return out
}
