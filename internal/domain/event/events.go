package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/origination/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const aggregateSession = "OriginationSession"

// Event types, as published in the event_type header.
const (
	TypeIntakeSubmitted     = "origination.intake.submitted"
	TypeCreditAssessed      = "origination.credit.assessed"
	TypeEligibilityAssessed = "origination.eligibility.assessed"
	TypePlanSelected        = "origination.plan.selected"
	TypeDocumentsUploaded   = "origination.documents.uploaded"
	TypeAgreementIssued     = "origination.agreement.issued"
	TypeStageChanged        = "origination.stage.changed"
	TypeSessionEnded        = "origination.session.ended"
)

// IntakeSubmitted is raised when a valid applicant profile is accepted.
// The payload carries no identity numbers.
type IntakeSubmitted struct {
	events.BaseEvent
	ConversationID  string          `json:"conversation_id"`
	EmploymentTier  string          `json:"employment_tier"`
	Purpose         string          `json:"purpose"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
}

func NewIntakeSubmitted(sessionID, conversationID, tier, purpose string, requested decimal.Decimal, at time.Time) IntakeSubmitted {
	return IntakeSubmitted{
		BaseEvent:       events.NewBaseEvent(TypeIntakeSubmitted, sessionID, aggregateSession, at),
		ConversationID:  conversationID,
		EmploymentTier:  tier,
		Purpose:         purpose,
		RequestedAmount: requested,
	}
}

// CreditAssessed is raised each time the score is (re)computed.
type CreditAssessed struct {
	events.BaseEvent
	Category string `json:"category"`
	Score    int    `json:"score"`
}

func NewCreditAssessed(sessionID string, score int, category string, at time.Time) CreditAssessed {
	return CreditAssessed{
		BaseEvent: events.NewBaseEvent(TypeCreditAssessed, sessionID, aggregateSession, at),
		Score:     score,
		Category:  category,
	}
}

// EligibilityAssessed is raised when the ceiling and sanction are derived.
type EligibilityAssessed struct {
	events.BaseEvent
	Ceiling       decimal.Decimal `json:"ceiling"`
	Sanctioned    decimal.Decimal `json:"sanctioned_amount"`
	LimitExceeded bool            `json:"limit_exceeded"`
}

func NewEligibilityAssessed(sessionID string, ceiling, sanctioned decimal.Decimal, exceeded bool, at time.Time) EligibilityAssessed {
	return EligibilityAssessed{
		BaseEvent:     events.NewBaseEvent(TypeEligibilityAssessed, sessionID, aggregateSession, at),
		Ceiling:       ceiling,
		Sanctioned:    sanctioned,
		LimitExceeded: exceeded,
	}
}

// PlanSelected is raised when the applicant picks a tenor.
type PlanSelected struct {
	events.BaseEvent
	EMI          decimal.Decimal `json:"emi"`
	TotalPayable decimal.Decimal `json:"total_payable"`
	Sanctioned   decimal.Decimal `json:"sanctioned_amount"`
	TenorMonths  int             `json:"tenor_months"`
}

func NewPlanSelected(sessionID string, tenor int, emi, total, sanctioned decimal.Decimal, at time.Time) PlanSelected {
	return PlanSelected{
		BaseEvent:    events.NewBaseEvent(TypePlanSelected, sessionID, aggregateSession, at),
		TenorMonths:  tenor,
		EMI:          emi,
		TotalPayable: total,
		Sanctioned:   sanctioned,
	}
}

// DocumentsUploaded is raised after every required document is received.
type DocumentsUploaded struct {
	events.BaseEvent
	Statuses map[string]string `json:"statuses"`
}

func NewDocumentsUploaded(sessionID string, statuses map[string]string, at time.Time) DocumentsUploaded {
	return DocumentsUploaded{
		BaseEvent: events.NewBaseEvent(TypeDocumentsUploaded, sessionID, aggregateSession, at),
		Statuses:  statuses,
	}
}

// AgreementIssued is raised for every issued agreement token.
type AgreementIssued struct {
	events.BaseEvent
	Token         string          `json:"token"`
	Sanctioned    decimal.Decimal `json:"sanctioned_amount"`
	TenorMonths   int             `json:"tenor_months"`
	HasCollateral bool            `json:"has_collateral"`
}

func NewAgreementIssued(sessionID, token string, sanctioned decimal.Decimal, tenor int, hasCollateral bool, at time.Time) AgreementIssued {
	return AgreementIssued{
		BaseEvent:     events.NewBaseEvent(TypeAgreementIssued, sessionID, aggregateSession, at),
		Token:         token,
		Sanctioned:    sanctioned,
		TenorMonths:   tenor,
		HasCollateral: hasCollateral,
	}
}

// StageChanged is raised on every forward or backward stage move.
type StageChanged struct {
	events.BaseEvent
	From    string `json:"from"`
	To      string `json:"to"`
	Trigger string `json:"trigger"`
}

func NewStageChanged(sessionID, from, to, trigger string, at time.Time) StageChanged {
	return StageChanged{
		BaseEvent: events.NewBaseEvent(TypeStageChanged, sessionID, aggregateSession, at),
		From:      from,
		To:        to,
		Trigger:   trigger,
	}
}

// SessionEnded is raised when a session is closed and its records cleared.
type SessionEnded struct {
	events.BaseEvent
	LastStage string `json:"last_stage"`
}

func NewSessionEnded(sessionID, lastStage string, at time.Time) SessionEnded {
	return SessionEnded{
		BaseEvent: events.NewBaseEvent(TypeSessionEnded, sessionID, aggregateSession, at),
		LastStage: lastStage,
	}
}
