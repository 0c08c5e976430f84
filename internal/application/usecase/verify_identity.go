package usecase

import (
	"context"
	"log/slog"

	"github.com/bibbank/origination/internal/application/dto"
	"github.com/bibbank/origination/internal/application/session"
	"github.com/bibbank/origination/internal/domain/event"
	"github.com/bibbank/origination/internal/domain/service"
	"github.com/bibbank/origination/internal/domain/valueobject"
)

// VerifyIdentityUseCase runs the simulated credit check.
type VerifyIdentityUseCase struct {
	simulator *service.CreditScoreSimulator
	deps      Deps
}

// NewVerifyIdentityUseCase wires dependencies.
func NewVerifyIdentityUseCase(simulator *service.CreditScoreSimulator, deps Deps) *VerifyIdentityUseCase {
	return &VerifyIdentityUseCase{simulator: simulator, deps: deps}
}

// Execute scores the stored applicant and moves the session from
// prequalification to eligibility. The score is recomputed on every call
// and is identical for the same applicant.
func (uc *VerifyIdentityUseCase) Execute(ctx context.Context, sess *session.Session) (dto.CreditAssessmentResponse, error) {
	ctx, done, err := begin(ctx, sess)
	if err != nil {
		return dto.CreditAssessmentResponse{}, err
	}
	defer done()

	if err := expect(sess, valueobject.EventIdentityVerified); err != nil {
		return dto.CreditAssessmentResponse{}, err
	}

	app, err := sess.Application(ctx)
	uc.deps.fallback(ctx, sess, err)

	profile := app.Profile()
	tier := profile.Tier()
	assessment := uc.simulator.Assess(profile.ScoreSeed(), tier)
	now := uc.deps.now()

	uc.deps.save(ctx, sess, session.KeyCreditAssessment, session.CreditRecord{
		Score:          assessment.Score(),
		Category:       assessment.Category(),
		Recommendation: assessment.Recommendation(),
		AssessedAt:     now,
	})
	stage, err := uc.deps.advance(ctx, sess, valueobject.EventIdentityVerified,
		event.NewCreditAssessed(sess.ID(), assessment.Score(), assessment.Category(), now))
	if err != nil {
		return dto.CreditAssessmentResponse{}, err
	}

	uc.deps.Logger.InfoContext(ctx, "credit assessed",
		slog.String("session_id", sess.ID()),
		slog.Int("score", assessment.Score()),
		slog.String("category", assessment.Category()),
	)

	scoreRange := service.ScoreRangeFor(tier)
	return dto.CreditAssessmentResponse{
		Score:          assessment.Score(),
		Category:       assessment.Category(),
		Recommendation: assessment.Recommendation(),
		RangeMin:       scoreRange.Min,
		RangeMax:       scoreRange.Max,
		Stage:          stage.String(),
	}, nil
}
