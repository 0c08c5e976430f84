package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bibbank/origination/internal/application/dto"
	"github.com/bibbank/origination/internal/application/session"
	"github.com/bibbank/origination/internal/domain/event"
	"github.com/bibbank/origination/internal/domain/model"
	"github.com/bibbank/origination/internal/domain/port"
	"github.com/bibbank/origination/internal/domain/valueobject"
)

const (
	operationAcknowledgeTerms = "acknowledge_terms"

	// FieldTerms is the request field carrying the acknowledgement.
	FieldTerms = "terms"

	// CollateralProofKey is the upload key for a collateral proof document.
	CollateralProofKey = "COLLATERAL_PROOF"

	maxTokenAttempts = 5
)

// ErrTokenExhausted is returned when no fresh agreement token could be
// generated.
var ErrTokenExhausted = errors.New("could not generate a unique agreement token")

// AcknowledgeTermsUseCase issues the loan agreement.
type AcknowledgeTermsUseCase struct {
	uploader port.DocumentUploader
	tokens   port.TokenGenerator
	deps     Deps
}

// NewAcknowledgeTermsUseCase wires dependencies.
func NewAcknowledgeTermsUseCase(uploader port.DocumentUploader, tokens port.TokenGenerator, deps Deps) *AcknowledgeTermsUseCase {
	return &AcknowledgeTermsUseCase{uploader: uploader, tokens: tokens, deps: deps}
}

// Execute validates the acknowledgement and optional collateral, snapshots
// the agreement under a fresh token and moves the session to sanction.
// Acknowledging again at sanction issues another agreement.
func (uc *AcknowledgeTermsUseCase) Execute(
	ctx context.Context,
	sess *session.Session,
	req dto.AcknowledgeTermsRequest,
) (dto.AgreementResponse, error) {
	ctx, done, err := begin(ctx, sess)
	if err != nil {
		return dto.AgreementResponse{}, err
	}
	defer done()

	// 1. Gate on stage.
	if err := expect(sess, valueobject.EventTermsAcknowledged); err != nil {
		return dto.AgreementResponse{}, err
	}

	// 2. Validate input.
	if !req.Acknowledged {
		err := model.NewFieldValidationError(model.FieldError{
			Field:   FieldTerms,
			Message: "You must acknowledge the Terms & Conditions to continue.",
		})
		return dto.AgreementResponse{}, uc.deps.rejected(ctx, operationAcknowledgeTerms, fmt.Errorf("acknowledge terms: %w", err))
	}
	collateral, err := toCollateral(req.Collateral)
	if err != nil {
		return dto.AgreementResponse{}, uc.deps.rejected(ctx, operationAcknowledgeTerms, fmt.Errorf("acknowledge terms: %w", err))
	}

	// 3. Upload the collateral proof.
	if collateral != nil {
		proof := collateral.Proof()
		if err := uc.uploader.Upload(ctx, model.UploadedDocument{
			Key:         CollateralProofKey,
			FileName:    proof.FileName,
			ContentType: proof.ContentType,
			Size:        proof.Size,
		}); err != nil {
			return dto.AgreementResponse{}, fmt.Errorf("upload collateral proof: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return dto.AgreementResponse{}, fmt.Errorf("upload collateral proof: %w", err)
		}
	}

	// 4. Gather upstream records.
	app, err := sess.Application(ctx)
	uc.deps.fallback(ctx, sess, err)
	plan, err := sess.SelectedPlan(ctx)
	uc.deps.fallback(ctx, sess, err)
	sanctioned, err := sess.SanctionedAmount(ctx)
	uc.deps.fallback(ctx, sess, err)

	// 5. Snapshot the agreement.
	now := uc.deps.now()
	token, err := uc.freshToken(sess, now)
	if err != nil {
		return dto.AgreementResponse{}, err
	}
	agreement, err := model.NewLoanAgreement(token, now, app.Profile(), plan.Plan(), sanctioned, collateral)
	if err != nil {
		return dto.AgreementResponse{}, fmt.Errorf("create agreement: %w", err)
	}
	rec := session.NewAgreementRecord(agreement, app.ConversationID)
	uc.deps.save(ctx, sess, session.KeyAgreement, rec)

	// 6. Publish and advance.
	uc.deps.Metrics.AgreementIssued(ctx)
	stage, err := uc.deps.advance(ctx, sess, valueobject.EventTermsAcknowledged, event.NewAgreementIssued(
		sess.ID(), token, sanctioned, plan.Months, collateral != nil, now,
	))
	if err != nil {
		return dto.AgreementResponse{}, err
	}

	uc.deps.Logger.InfoContext(ctx, "agreement issued",
		slog.String("session_id", sess.ID()),
		slog.String("token", token),
		slog.Bool("collateral", collateral != nil),
	)

	return toAgreementResponse(rec, true, stage), nil
}

// freshToken returns a token never issued before in this session.
func (uc *AcknowledgeTermsUseCase) freshToken(sess *session.Session, now time.Time) (string, error) {
	for i := 0; i < maxTokenAttempts; i++ {
		token, err := uc.tokens.AgreementToken(now)
		if err != nil {
			return "", fmt.Errorf("generate agreement token: %w", err)
		}
		if sess.RememberToken(token) {
			return token, nil
		}
	}
	return "", ErrTokenExhausted
}

func toCollateral(req *dto.CollateralRequest) (*model.Collateral, error) {
	if req == nil {
		return nil, nil
	}
	var proof model.ProofDescriptor
	if req.Proof != nil {
		proof = model.ProofDescriptor{
			FileName:    strings.TrimSpace(req.Proof.FileName),
			ContentType: req.Proof.ContentType,
			Size:        req.Proof.Size,
		}
	}
	return model.NewCollateral(req.Name, proof)
}

func toAgreementResponse(rec session.AgreementRecord, found bool, stage valueobject.Stage) dto.AgreementResponse {
	resp := dto.AgreementResponse{
		Found:            found,
		Token:            rec.Token,
		IssuedAt:         rec.AcknowledgedAt,
		SanctionedAmount: rec.SanctionedAmount,
		Stage:            stage.String(),
		Applicant: dto.ApplicantResponse{
			Name:   session.PlaceholderText,
			Mobile: session.PlaceholderText,
		},
	}
	if rec.User != nil {
		resp.Applicant = dto.ApplicantResponse{Name: rec.User.User.Name, Mobile: rec.User.User.Mobile}
	}
	if rec.Plan != nil {
		plan := toPlanResponse(rec.Plan.Plan())
		resp.Plan = &plan
	}
	if rec.Collateral != nil {
		resp.Collateral = &dto.CollateralResponse{
			Name:          rec.Collateral.Name,
			ProofFileName: rec.Collateral.ProofFileName,
			ProofFileType: rec.Collateral.ProofFileType,
			ProofFileSize: rec.Collateral.ProofFileSize,
		}
	}
	return resp
}
