package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bibbank/origination/internal/application/dto"
	"github.com/bibbank/origination/internal/application/session"
	"github.com/bibbank/origination/internal/domain/model"
	"github.com/bibbank/origination/internal/domain/port"
	"github.com/bibbank/origination/internal/domain/valueobject"
)

// Assistant agents that answer a message.
const (
	AgentMaster       = "master"
	AgentVerification = "verification"
	AgentUnderwriting = "underwriting"
)

type cannedReply struct {
	text    string
	agent   string
	suggest valueobject.Stage
}

var cannedReplies = map[valueobject.IntentKind]cannedReply{
	valueobject.IntentApply: {
		text:    "Great choice! To help you find the best loan, I need to understand your requirements. What is the primary purpose of this loan? (e.g., Home renovation, Medical expenses, Education, Wedding, Debt consolidation)",
		agent:   AgentMaster,
		suggest: valueobject.StageNeeds,
	},
	valueobject.IntentPurpose: {
		text:    "Perfect! I'm now connecting you to our Verification Agent to complete your KYC. Please fill in the application form, including your PAN card number, to proceed.",
		agent:   AgentVerification,
		suggest: valueobject.StagePrequalification,
	},
	valueobject.IntentPAN: {
		text:    "Thank you! Your PAN will be verified together with the rest of your application before your credit score is checked.",
		agent:   AgentUnderwriting,
		suggest: valueobject.StageEligibility,
	},
	valueobject.IntentEligibility: {
		text:    "I'd be happy to check your eligibility! For a quick assessment, please share your monthly income and employment type (Salaried/Self-employed).",
		agent:   AgentUnderwriting,
		suggest: valueobject.StageEligibility,
	},
}

const unknownReply = "I understand. Let me help you with that. Could you please provide more details about what you're looking for?"

// AssistUseCase answers free-text assistant messages.
type AssistUseCase struct {
	classifier port.IntentClassifier
	deps       Deps
}

// NewAssistUseCase wires dependencies.
func NewAssistUseCase(classifier port.IntentClassifier, deps Deps) *AssistUseCase {
	return &AssistUseCase{classifier: classifier, deps: deps}
}

// Execute classifies the message and returns a canned reply with the stage
// the applicant should head to. Only an apply intent at entry moves the
// session, to needs.
func (uc *AssistUseCase) Execute(ctx context.Context, sess *session.Session, req dto.AssistRequest) (dto.AssistResponse, error) {
	ctx, done, err := begin(ctx, sess)
	if err != nil {
		return dto.AssistResponse{}, err
	}
	defer done()

	intent, err := uc.classifier.Classify(ctx, req.Text)
	if err != nil {
		return dto.AssistResponse{}, fmt.Errorf("classify message: %w", err)
	}

	reply := replyFor(intent, sess.Stage())
	resp := dto.AssistResponse{
		Intent:         intent.Kind.String(),
		Agent:          reply.agent,
		Detail:         intent.Detail,
		Reply:          reply.text,
		SuggestedStage: reply.suggest.String(),
	}

	if intent.Kind == valueobject.IntentApply && sess.Stage() == valueobject.StageEntry {
		if _, err := uc.deps.advance(ctx, sess, valueobject.EventApplicationStarted); err != nil {
			return dto.AssistResponse{}, err
		}
		resp.Advanced = true
	}
	resp.Stage = sess.Stage().String()

	uc.deps.Logger.DebugContext(ctx, "assistant replied",
		slog.String("session_id", sess.ID()),
		slog.String("intent", resp.Intent),
		slog.Bool("advanced", resp.Advanced),
	)
	return resp, nil
}

func replyFor(intent model.Intent, current valueobject.Stage) cannedReply {
	if r, ok := cannedReplies[intent.Kind]; ok {
		return r
	}
	return cannedReply{text: unknownReply, agent: AgentMaster, suggest: current}
}
