package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AmortizationEntry is one period of a repayment schedule.
type AmortizationEntry struct {
	DueDate          time.Time
	Principal        decimal.Decimal
	Interest         decimal.Decimal
	Total            decimal.Decimal
	RemainingBalance decimal.Decimal
	Period           int
}

// Schedule splits each EMI of the plan into interest and principal at the
// plan's effective monthly rate. The first instalment falls one month after
// start; the last absorbs rounding so the balance closes at exactly zero.
func (p RepaymentPlan) Schedule(start time.Time) []AmortizationEntry {
	if p.TenorMonths <= 0 || !p.Principal.IsPositive() {
		return nil
	}

	rate := decimal.NewFromFloat(p.MonthlyRate)
	remaining := p.Principal
	schedule := make([]AmortizationEntry, 0, p.TenorMonths)

	for period := 1; period <= p.TenorMonths; period++ {
		interest := remaining.Mul(rate).Round(2)
		principalPart := p.EMI.Sub(interest)

		if period == p.TenorMonths {
			principalPart = remaining
		}

		remaining = remaining.Sub(principalPart)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		schedule = append(schedule, AmortizationEntry{
			Period:           period,
			DueDate:          start.AddDate(0, period, 0),
			Principal:        principalPart,
			Interest:         interest,
			Total:            principalPart.Add(interest),
			RemainingBalance: remaining,
		})
	}

	return schedule
}
