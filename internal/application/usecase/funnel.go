package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bibbank/origination/internal/application/dto"
	"github.com/bibbank/origination/internal/application/session"
	"github.com/bibbank/origination/internal/domain/event"
	"github.com/bibbank/origination/internal/domain/model"
	"github.com/bibbank/origination/internal/domain/port"
	"github.com/bibbank/origination/internal/domain/valueobject"
	"github.com/bibbank/origination/pkg/events"
	"github.com/bibbank/origination/pkg/observability"
)

// Deps bundles the collaborators every funnel use case shares.
type Deps struct {
	Publisher port.EventPublisher
	Clock     port.Clock
	Metrics   *observability.FunnelMetrics
	Logger    *slog.Logger
}

func (d Deps) now() time.Time { return d.Clock.Now().UTC() }

// begin locks the session and binds ctx to its lifetime. The returned func
// releases both.
func begin(ctx context.Context, sess *session.Session) (context.Context, func(), error) {
	sess.Lock()
	if sess.Ended() {
		sess.Unlock()
		return ctx, func() {}, fmt.Errorf("%w: %s", session.ErrSessionNotFound, sess.ID())
	}
	bound, cancel := sess.Bind(ctx)
	return bound, func() {
		cancel()
		sess.Unlock()
	}, nil
}

// expect fails fast when evt cannot fire from the session's current stage.
func expect(sess *session.Session, evt valueobject.StageEvent) error {
	if err := sess.Machine().Expects(evt); err != nil {
		return fmt.Errorf("check stage: %w", err)
	}
	return nil
}

// advance fires evt and publishes raised together with the resulting
// stage change as one batch.
func (d Deps) advance(
	ctx context.Context,
	sess *session.Session,
	evt valueobject.StageEvent,
	raised ...event.DomainEvent,
) (valueobject.Stage, error) {
	current := sess.Machine()
	next, err := current.Fire(evt)
	if err != nil {
		return current.Current(), fmt.Errorf("advance stage: %w", err)
	}
	sess.SetMachine(next)

	var batch events.EventCollector
	for _, e := range raised {
		batch.Record(e)
	}
	if changed, ok := d.recordTransition(ctx, sess, current.Current(), next.Current(), evt.String()); ok {
		batch.Record(changed)
	}
	d.publish(ctx, batch.ClearEvents()...)
	return next.Current(), nil
}

// recordTransition logs and counts a stage change and returns its event.
// ok is false when the stage did not move.
func (d Deps) recordTransition(
	ctx context.Context,
	sess *session.Session,
	from, to valueobject.Stage,
	trigger string,
) (changed event.StageChanged, ok bool) {
	if from.Equal(to) {
		return event.StageChanged{}, false
	}
	d.Metrics.StageAdvanced(ctx, from.String(), to.String())
	d.Logger.InfoContext(ctx, "stage changed",
		slog.String("session_id", sess.ID()),
		slog.String("from", from.String()),
		slog.String("to", to.String()),
		slog.String("trigger", trigger),
	)
	return event.NewStageChanged(sess.ID(), from.String(), to.String(), trigger, d.now()), true
}

// publish forwards events; failures are logged, never returned.
func (d Deps) publish(ctx context.Context, evts ...event.DomainEvent) {
	if len(evts) == 0 {
		return
	}
	if err := d.Publisher.Publish(ctx, evts...); err != nil {
		d.Logger.WarnContext(ctx, "failed to publish funnel events",
			slog.Int("count", len(evts)),
			slog.String("error", err.Error()),
		)
	}
}

// save writes a record; failures are logged, never returned.
func (d Deps) save(ctx context.Context, sess *session.Session, key string, v any) {
	if err := sess.Save(ctx, key, v); err != nil {
		d.Logger.WarnContext(ctx, "failed to persist session record",
			slog.String("session_id", sess.ID()),
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

// fallback logs a reader that recovered with defaults.
func (d Deps) fallback(ctx context.Context, sess *session.Session, err error) {
	if err == nil {
		return
	}
	d.Logger.WarnContext(ctx, "upstream data missing, using defaults",
		slog.String("session_id", sess.ID()),
		slog.String("stage", sess.Stage().String()),
		slog.String("error", err.Error()),
	)
}

// rejected counts validation failures for operation and passes err through.
func (d Deps) rejected(ctx context.Context, operation string, err error) error {
	var fieldErr *model.FieldValidationError
	if errors.As(err, &fieldErr) || errors.Is(err, model.ErrCollateralPairing) {
		d.Metrics.ValidationFailed(ctx, operation)
	}
	return err
}

func toPlanResponse(p model.RepaymentPlan) dto.PlanResponse {
	return dto.PlanResponse{
		Label:         p.Label,
		Months:        p.TenorMonths,
		Principal:     p.Principal,
		AnnualRate:    p.AnnualRate,
		EMI:           p.EMI,
		TotalPayable:  p.TotalPayable,
		TotalInterest: p.TotalInterest,
		MonthlyRate:   p.MonthlyRate,
	}
}

func toStageResponse(m model.StageMachine) dto.StageResponse {
	stages := valueobject.Stages()
	names := make([]string, 0, len(stages))
	for _, s := range stages {
		names = append(names, s.String())
	}
	return dto.StageResponse{
		Current: m.Current().String(),
		Highest: m.Highest().String(),
		Stages:  names,
	}
}
