package service

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/bibbank/origination/internal/domain/model"
	"github.com/bibbank/origination/internal/domain/valueobject"
)

// PlanTenor is an offered repayment duration.
type PlanTenor struct {
	Label  string
	Months int
}

// DefaultTenors are the repayment durations quoted to every applicant.
var DefaultTenors = []PlanTenor{
	{Months: 6, Label: "6 months"},
	{Months: 12, Label: "1 year"},
	{Months: 24, Label: "2 years"},
	{Months: 36, Label: "3 years"},
	{Months: 60, Label: "5 years"},
}

const preferredTenor = 12

var (
	// DefaultAnnualRatePercent is the nominal annual rate, compounded annually.
	DefaultAnnualRatePercent = decimal.NewFromInt(14)

	studentSalaryFloor = decimal.NewFromInt(5000)
	flatCeiling        = decimal.NewFromInt(50000)
	hundred            = decimal.NewFromInt(100)
)

// EligibilityEngine derives the lending ceiling and the plan table.
type EligibilityEngine struct {
	annualRatePercent decimal.Decimal
	tenors            []PlanTenor
}

// NewEligibilityEngine returns an engine quoting DefaultTenors at
// DefaultAnnualRatePercent.
func NewEligibilityEngine() *EligibilityEngine {
	return &EligibilityEngine{
		annualRatePercent: DefaultAnnualRatePercent,
		tenors:            DefaultTenors,
	}
}

// Ceiling returns the maximum principal for tier at salary:
//
//	Student        2 x salary, or 5000 when salary is zero
//	Self-employed  3 x salary
//	Salaried       5 x salary
//	otherwise      50000 flat
func (e *EligibilityEngine) Ceiling(tier valueobject.EmploymentTier, salary decimal.Decimal) decimal.Decimal {
	switch tier {
	case valueobject.EmploymentTierStudent:
		if salary.IsZero() {
			return studentSalaryFloor
		}
		return salary.Mul(decimal.NewFromInt(2))
	case valueobject.EmploymentTierSelfEmployed:
		return salary.Mul(decimal.NewFromInt(3))
	case valueobject.EmploymentTierSalaried:
		return salary.Mul(decimal.NewFromInt(5))
	default:
		return flatCeiling
	}
}

// Limit caps requested at the ceiling. A request above the ceiling is
// flagged, not rejected. A non-positive request sanctions the full ceiling.
func (e *EligibilityEngine) Limit(tier valueobject.EmploymentTier, salary, requested decimal.Decimal) model.EligibilityLimit {
	ceiling := e.Ceiling(tier, salary)

	sanctioned := requested
	if !requested.IsPositive() || requested.GreaterThan(ceiling) {
		sanctioned = ceiling
	}

	return model.EligibilityLimit{
		Tier:          tier,
		Salary:        salary,
		Requested:     requested,
		Ceiling:       ceiling,
		Sanctioned:    sanctioned,
		LimitExceeded: requested.GreaterThan(ceiling),
	}
}

// MonthlyRate converts the annual rate to its effective monthly equivalent,
// (1 + annual)^(1/12) - 1.
func (e *EligibilityEngine) MonthlyRate() float64 {
	annual := e.annualRatePercent.Div(hundred).InexactFloat64()
	return math.Pow(1+annual, 1.0/12) - 1
}

// Tenors returns the offered repayment durations.
func (e *EligibilityEngine) Tenors() []PlanTenor {
	out := make([]PlanTenor, len(e.tenors))
	copy(out, e.tenors)
	return out
}

// Tenor looks up an offered duration by months.
func (e *EligibilityEngine) Tenor(months int) (PlanTenor, bool) {
	for _, t := range e.tenors {
		if t.Months == months {
			return t, true
		}
	}
	return PlanTenor{}, false
}

// QuotePlan computes the annuity for principal over tenor.
func (e *EligibilityEngine) QuotePlan(principal decimal.Decimal, tenor PlanTenor) model.RepaymentPlan {
	r := e.MonthlyRate()
	plan := model.RepaymentPlan{
		TenorMonths:   tenor.Months,
		Label:         tenor.Label,
		Principal:     principal,
		AnnualRate:    e.annualRatePercent,
		MonthlyRate:   r,
		EMI:           decimal.Zero,
		TotalPayable:  decimal.Zero,
		TotalInterest: decimal.Zero,
	}
	if !principal.IsPositive() || tenor.Months <= 0 {
		return plan
	}

	m := decimal.NewFromInt(int64(tenor.Months))
	if r == 0 {
		plan.EMI = principal.DivRound(m, 2)
		plan.TotalPayable = principal
		return plan
	}

	// P * r * (1+r)^m / ((1+r)^m - 1)
	factor := math.Pow(1+r, float64(tenor.Months))
	emi := principal.InexactFloat64() * r * factor / (factor - 1)

	plan.EMI = decimal.NewFromFloat(emi).Round(2)
	plan.TotalPayable = plan.EMI.Mul(m)
	plan.TotalInterest = plan.TotalPayable.Sub(principal)
	return plan
}

// Quote evaluates eligibility for the profile and prices every tenor on the
// sanctioned principal.
func (e *EligibilityEngine) Quote(profile model.ApplicantProfile) model.PlanQuote {
	return e.QuoteFor(e.Limit(profile.Tier(), profile.Salary(), profile.RequestedAmount()))
}

// QuoteFor prices every tenor for an already computed limit.
func (e *EligibilityEngine) QuoteFor(limit model.EligibilityLimit) model.PlanQuote {
	plans := make([]model.RepaymentPlan, 0, len(e.tenors))
	for _, t := range e.tenors {
		plans = append(plans, e.QuotePlan(limit.Sanctioned, t))
	}

	return model.PlanQuote{
		Limit:             limit,
		Plans:             plans,
		RecommendedTenor:  RecommendedTenor(e.tenors),
		MonthlyRate:       e.MonthlyRate(),
		AnnualRatePercent: e.annualRatePercent,
	}
}

// RecommendedTenor is 12 months when offered, otherwise the longest tenor.
func RecommendedTenor(tenors []PlanTenor) int {
	longest := 0
	for _, t := range tenors {
		if t.Months == preferredTenor {
			return preferredTenor
		}
		if t.Months > longest {
			longest = t.Months
		}
	}
	return longest
}
