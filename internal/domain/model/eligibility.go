package model

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/origination/internal/domain/valueobject"
)

// EligibilityLimit is the ceiling derived from salary and tier and the
// principal sanctioned against it.
type EligibilityLimit struct {
	Tier       valueobject.EmploymentTier
	Salary     decimal.Decimal
	Requested  decimal.Decimal
	Ceiling    decimal.Decimal
	Sanctioned decimal.Decimal
	// LimitExceeded is set when the request was reduced to the ceiling.
	LimitExceeded bool
}

// RepaymentPlan is one tenor's annuity quote on the sanctioned principal.
type RepaymentPlan struct {
	Label         string
	Principal     decimal.Decimal
	AnnualRate    decimal.Decimal // percent, e.g. 14
	EMI           decimal.Decimal
	TotalPayable  decimal.Decimal
	TotalInterest decimal.Decimal
	MonthlyRate   float64
	TenorMonths   int
}

// IsZero reports whether the plan is the empty placeholder.
func (p RepaymentPlan) IsZero() bool { return p.TenorMonths == 0 }

// PlanQuote is the full set of plans offered for one eligibility result.
type PlanQuote struct {
	Limit             EligibilityLimit
	Plans             []RepaymentPlan
	RecommendedTenor  int
	MonthlyRate       float64
	AnnualRatePercent decimal.Decimal
}

// Plan returns the plan for tenor.
func (q PlanQuote) Plan(tenor int) (RepaymentPlan, bool) {
	for _, p := range q.Plans {
		if p.TenorMonths == tenor {
			return p, true
		}
	}
	return RepaymentPlan{}, false
}
