package session

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/origination/internal/domain/model"
	"github.com/bibbank/origination/internal/domain/valueobject"
)

// Store keys. The names match the records the web client already reads.
const (
	KeyApplication      = "loanApplication"
	KeyCreditAssessment = "creditAssessment"
	KeyEligibility      = "eligibility"
	KeySanctionedAmount = "sanctionedAmount"
	KeySelectedPlan     = "selectedPlan"
	KeyDocumentStatuses = "documentStatuses"
	KeyAgreement        = "loanAgreement"
	KeyFinalAgreement   = "finalAgreement"
)

// PlaceholderText stands in for any applicant detail that is unavailable.
const PlaceholderText = "—"

// UserRecord is the applicant identity block.
type UserRecord struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
}

// ApplicationMetadata holds the remaining intake answers.
type ApplicationMetadata struct {
	Address            string          `json:"address"`
	PAN                string          `json:"pan"`
	Aadhaar            string          `json:"aadhar"`
	Employment         string          `json:"employment"`
	LoanPurpose        string          `json:"loanPurpose"`
	Salary             decimal.Decimal `json:"salary"`
	RequiredLoanAmount decimal.Decimal `json:"requiredLoanAmount"`
	Age                int             `json:"age"`
}

// ApplicationRecord is written at intake.
type ApplicationRecord struct {
	User           UserRecord          `json:"user"`
	Metadata       ApplicationMetadata `json:"metadata"`
	ConversationID string              `json:"conversationId"`
}

// NewApplicationRecord maps a validated profile to its stored form.
func NewApplicationRecord(p model.ApplicantProfile, conversationID string) ApplicationRecord {
	return ApplicationRecord{
		User: UserRecord{Name: p.Name(), Mobile: p.Mobile()},
		Metadata: ApplicationMetadata{
			Age:                p.Age(),
			Address:            p.Address(),
			PAN:                p.PAN(),
			Aadhaar:            p.Aadhaar(),
			Employment:         p.Employment(),
			Salary:             p.Salary(),
			RequiredLoanAmount: p.RequestedAmount(),
			LoanPurpose:        p.Purpose(),
		},
		ConversationID: conversationID,
	}
}

// Profile rebuilds the applicant profile.
func (r ApplicationRecord) Profile() model.ApplicantProfile {
	m := r.Metadata
	return model.ReconstructApplicantProfile(
		r.User.Name, r.User.Mobile, m.Age, m.Address, m.PAN, m.Aadhaar,
		m.Employment, m.Salary, m.RequiredLoanAmount, m.LoanPurpose,
	)
}

// CreditRecord is the stored credit assessment.
type CreditRecord struct {
	AssessedAt     time.Time `json:"assessedAt"`
	Category       string    `json:"category"`
	Recommendation string    `json:"recommendation"`
	Score          int       `json:"score"`
}

// EligibilityRecord is the limit computed for one set of intake answers.
type EligibilityRecord struct {
	Tier          string          `json:"tier"`
	Salary        decimal.Decimal `json:"salary"`
	Requested     decimal.Decimal `json:"requested"`
	Ceiling       decimal.Decimal `json:"ceiling"`
	Sanctioned    decimal.Decimal `json:"sanctioned"`
	LimitExceeded bool            `json:"limitExceeded"`
}

// NewEligibilityRecord maps a limit to its stored form.
func NewEligibilityRecord(l model.EligibilityLimit) EligibilityRecord {
	return EligibilityRecord{
		Tier:          l.Tier.String(),
		Salary:        l.Salary,
		Requested:     l.Requested,
		Ceiling:       l.Ceiling,
		Sanctioned:    l.Sanctioned,
		LimitExceeded: l.LimitExceeded,
	}
}

// Matches reports whether the record was computed for the same inputs.
func (r EligibilityRecord) Matches(p model.ApplicantProfile) bool {
	return r.Tier == p.Tier().String() &&
		r.Salary.Equal(p.Salary()) &&
		r.Requested.Equal(p.RequestedAmount())
}

// Limit rebuilds the eligibility limit.
func (r EligibilityRecord) Limit() model.EligibilityLimit {
	return model.EligibilityLimit{
		Tier:          valueobject.ParseEmploymentTier(r.Tier),
		Salary:        r.Salary,
		Requested:     r.Requested,
		Ceiling:       r.Ceiling,
		Sanctioned:    r.Sanctioned,
		LimitExceeded: r.LimitExceeded,
	}
}

// SelectedPlanRecord is the chosen plan snapshot.
type SelectedPlanRecord struct {
	Label         string          `json:"label,omitempty"`
	LoanAmount    decimal.Decimal `json:"loanAmount"`
	AnnualRate    decimal.Decimal `json:"annualRate"`
	EMI           decimal.Decimal `json:"emi"`
	TotalPayable  decimal.Decimal `json:"totalPayable"`
	TotalInterest decimal.Decimal `json:"totalInterest"`
	MonthlyRate   float64         `json:"monthlyRate"`
	Months        int             `json:"months"`
}

// NewSelectedPlanRecord maps a plan to its stored form.
func NewSelectedPlanRecord(p model.RepaymentPlan) SelectedPlanRecord {
	return SelectedPlanRecord{
		Label:         p.Label,
		LoanAmount:    p.Principal,
		AnnualRate:    p.AnnualRate,
		EMI:           p.EMI,
		TotalPayable:  p.TotalPayable,
		TotalInterest: p.TotalInterest,
		MonthlyRate:   p.MonthlyRate,
		Months:        p.TenorMonths,
	}
}

// Plan rebuilds the repayment plan.
func (r SelectedPlanRecord) Plan() model.RepaymentPlan {
	return model.RepaymentPlan{
		Label:         r.Label,
		Principal:     r.LoanAmount,
		AnnualRate:    r.AnnualRate,
		EMI:           r.EMI,
		TotalPayable:  r.TotalPayable,
		TotalInterest: r.TotalInterest,
		MonthlyRate:   r.MonthlyRate,
		TenorMonths:   r.Months,
	}
}

// DocumentStatusEntry is the upload outcome for one document key.
type DocumentStatusEntry struct {
	Status   string `json:"status"`
	FileName string `json:"fileName,omitempty"`
}

// DocumentStatusesRecord maps document keys to upload outcomes.
type DocumentStatusesRecord map[string]DocumentStatusEntry

// CollateralRecord is the stored collateral declaration.
type CollateralRecord struct {
	Name          string `json:"name"`
	ProofFileName string `json:"proofFileName"`
	ProofFileType string `json:"proofFileType"`
	ProofFileSize int64  `json:"proofFileSize"`
}

// AgreementRecord is the snapshot written at acknowledgement.
type AgreementRecord struct {
	AcknowledgedAt   time.Time           `json:"acknowledgedAt"`
	Plan             *SelectedPlanRecord `json:"plan"`
	Collateral       *CollateralRecord   `json:"collateral"`
	User             *ApplicationRecord  `json:"user"`
	Token            string              `json:"token"`
	SanctionedAmount decimal.Decimal     `json:"sanctionedAmount"`
}

// NewAgreementRecord maps an agreement to its stored form.
func NewAgreementRecord(a model.LoanAgreement, conversationID string) AgreementRecord {
	plan := NewSelectedPlanRecord(a.Plan())
	user := NewApplicationRecord(a.Applicant(), conversationID)

	rec := AgreementRecord{
		Token:            a.Token(),
		AcknowledgedAt:   a.IssuedAt(),
		Plan:             &plan,
		SanctionedAmount: a.SanctionedAmount(),
		User:             &user,
	}
	if c, ok := a.Collateral(); ok {
		rec.Collateral = &CollateralRecord{
			Name:          c.Name(),
			ProofFileName: c.Proof().FileName,
			ProofFileType: c.Proof().ContentType,
			ProofFileSize: c.Proof().Size,
		}
	}
	return rec
}

// FinalAgreementMeta records where the summary was produced.
type FinalAgreementMeta struct {
	SavedFrom string `json:"savedFrom"`
}

// FinalAgreementRecord is the summary persisted once an agreement is read
// back for rendering.
type FinalAgreementRecord struct {
	GeneratedAt    time.Time           `json:"generatedAt"`
	AcknowledgedAt time.Time           `json:"acknowledgedAt"`
	Applicant      UserRecord          `json:"applicant"`
	Plan           *SelectedPlanRecord `json:"plan"`
	Collateral     *CollateralRecord   `json:"collateral"`
	Meta           FinalAgreementMeta  `json:"meta"`
	Token          string              `json:"token"`
	LoanAmount     decimal.Decimal     `json:"loanAmount"`
}
