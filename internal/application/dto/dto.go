package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// SubmitIntakeRequest carries the raw intake answers exactly as typed.
type SubmitIntakeRequest struct {
	Name            string `json:"name"`
	Mobile          string `json:"mobile"`
	Age             string `json:"age"`
	Address         string `json:"address"`
	PAN             string `json:"pan"`
	Aadhaar         string `json:"aadhaar"`
	Employment      string `json:"employment"`
	Salary          string `json:"salary"`
	RequestedAmount string `json:"requested_amount"`
	Purpose         string `json:"purpose"`
}

// SelectPlanRequest picks one quoted tenor.
type SelectPlanRequest struct {
	Months          int  `json:"months"`
	IncludeSchedule bool `json:"include_schedule"`
}

// FileDescriptor describes one supplied file.
type FileDescriptor struct {
	Key         string `json:"key,omitempty"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// UploadDocumentsRequest supplies one file per required document key.
type UploadDocumentsRequest struct {
	Files []FileDescriptor `json:"files"`
}

// CollateralRequest is the optional collateral declaration.
type CollateralRequest struct {
	Name  string          `json:"name"`
	Proof *FileDescriptor `json:"proof,omitempty"`
}

// AcknowledgeTermsRequest accepts the terms and optionally pledges
// collateral.
type AcknowledgeTermsRequest struct {
	Collateral   *CollateralRequest `json:"collateral,omitempty"`
	Acknowledged bool               `json:"acknowledged"`
}

// AssistRequest is a free-text message to the assistant.
type AssistRequest struct {
	Text string `json:"text"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// StageResponse reports the funnel position.
type StageResponse struct {
	Current string   `json:"current"`
	Highest string   `json:"highest"`
	Stages  []string `json:"stages"`
}

// StartSessionResponse identifies a new session.
type StartSessionResponse struct {
	CreatedAt    time.Time `json:"created_at"`
	SessionID    string    `json:"session_id"`
	SessionToken string    `json:"session_token"`
	Stage        string    `json:"stage"`
}

// StageTransitionResponse is returned by operations that only move the
// stage.
type StageTransitionResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// SubmitIntakeResponse confirms a validated intake.
type SubmitIntakeResponse struct {
	ConversationID  string          `json:"conversation_id"`
	Tier            string          `json:"tier"`
	Stage           string          `json:"stage"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
}

// CreditAssessmentResponse is the simulated bureau result.
type CreditAssessmentResponse struct {
	Category       string `json:"category"`
	Recommendation string `json:"recommendation"`
	Stage          string `json:"stage"`
	Score          int    `json:"score"`
	RangeMin       int    `json:"range_min"`
	RangeMax       int    `json:"range_max"`
}

// PlanResponse is one priced tenor.
type PlanResponse struct {
	Label         string          `json:"label"`
	Principal     decimal.Decimal `json:"principal"`
	AnnualRate    decimal.Decimal `json:"annual_rate"`
	EMI           decimal.Decimal `json:"emi"`
	TotalPayable  decimal.Decimal `json:"total_payable"`
	TotalInterest decimal.Decimal `json:"total_interest"`
	MonthlyRate   float64         `json:"monthly_rate"`
	Months        int             `json:"months"`
}

// EligibilityResponse is the ceiling, the sanctioned principal and every
// plan quoted on it.
type EligibilityResponse struct {
	Tier              string          `json:"tier"`
	Stage             string          `json:"stage"`
	Salary            decimal.Decimal `json:"salary"`
	Requested         decimal.Decimal `json:"requested"`
	Ceiling           decimal.Decimal `json:"ceiling"`
	Sanctioned        decimal.Decimal `json:"sanctioned"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	Plans             []PlanResponse  `json:"plans"`
	MonthlyRate       float64         `json:"monthly_rate"`
	RecommendedTenor  int             `json:"recommended_tenor"`
	LimitExceeded     bool            `json:"limit_exceeded"`
}

// AmortizationEntryResponse represents a single amortization schedule entry.
type AmortizationEntryResponse struct {
	DueDate          time.Time       `json:"due_date"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	Total            decimal.Decimal `json:"total"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	Period           int             `json:"period"`
}

// SelectPlanResponse confirms the chosen plan.
type SelectPlanResponse struct {
	Stage    string                      `json:"stage"`
	Plan     PlanResponse                `json:"plan"`
	Schedule []AmortizationEntryResponse `json:"schedule,omitempty"`
}

// DocumentRequirementResponse is one checklist entry.
type DocumentRequirementResponse struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Accept string `json:"accept"`
	Status string `json:"status"`
}

// RequiredDocumentsResponse is the ordered checklist for the applicant.
type RequiredDocumentsResponse struct {
	Tier      string                        `json:"tier"`
	Documents []DocumentRequirementResponse `json:"documents"`
}

// DocumentStatusResponse is the outcome for one document key.
type DocumentStatusResponse struct {
	Key      string `json:"key"`
	FileName string `json:"file_name,omitempty"`
	Status   string `json:"status"`
}

// UploadDocumentsResponse lists per-document outcomes. Complete is false when a required document was missing; the stage then
// stays at documents.
type UploadDocumentsResponse struct {
	Stage     string                   `json:"stage"`
	Documents []DocumentStatusResponse `json:"documents"`
	Complete  bool                     `json:"complete"`
}

// ApplicantResponse is the applicant identity shown on an agreement.
type ApplicantResponse struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
}

// CollateralResponse is the pledged collateral shown on an agreement.
type CollateralResponse struct {
	Name          string `json:"name"`
	ProofFileName string `json:"proof_file_name"`
	ProofFileType string `json:"proof_file_type"`
	ProofFileSize int64  `json:"proof_file_size"`
}

// AgreementResponse is the issued agreement, or a placeholder summary when
// none is on record.
type AgreementResponse struct {
	IssuedAt         time.Time           `json:"issued_at"`
	Plan             *PlanResponse       `json:"plan,omitempty"`
	Collateral       *CollateralResponse `json:"collateral,omitempty"`
	Applicant        ApplicantResponse   `json:"applicant"`
	Token            string              `json:"token"`
	Stage            string              `json:"stage"`
	SanctionedAmount decimal.Decimal     `json:"sanctioned_amount"`
	Found            bool                `json:"found"`
}

// AssistResponse is the assistant's reply.
type AssistResponse struct {
	Intent         string `json:"intent"`
	Agent          string `json:"agent"`
	Detail         string `json:"detail,omitempty"`
	Reply          string `json:"reply"`
	SuggestedStage string `json:"suggested_stage"`
	Stage          string `json:"stage"`
	Advanced       bool   `json:"advanced"`
}

// EndSessionResponse confirms a closed session.
type EndSessionResponse struct {
	SessionID string `json:"session_id"`
	LastStage string `json:"last_stage"`
}
