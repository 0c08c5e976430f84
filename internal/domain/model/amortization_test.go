package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/origination/internal/domain/model"
)

func TestRepaymentPlan_Schedule(t *testing.T) {
	plan := model.RepaymentPlan{
		TenorMonths: 12,
		Principal:   decimal.NewFromInt(100000),
		EMI:         decimal.RequireFromString("8939.92"),
		MonthlyRate: 0.010978851950173452,
	}
	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	schedule := plan.Schedule(start)
	require.Len(t, schedule, 12)

	assert.Equal(t, 1, schedule[0].Period)
	assert.Equal(t, time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC), schedule[0].DueDate)
	assert.Equal(t, "1097.89", schedule[0].Interest.StringFixed(2))

	principalSum := decimal.Zero
	for _, e := range schedule {
		principalSum = principalSum.Add(e.Principal)
		assert.True(t, e.Total.Equal(e.Principal.Add(e.Interest)))
	}
	assert.True(t, principalSum.Equal(plan.Principal), "principal fully repaid, got %s", principalSum)
	assert.True(t, schedule[11].RemainingBalance.IsZero())
	assert.True(t, schedule[11].Total.Sub(plan.EMI).Abs().LessThan(decimal.NewFromInt(1)))
}

func TestRepaymentPlan_ScheduleDegenerate(t *testing.T) {
	assert.Nil(t, model.RepaymentPlan{}.Schedule(time.Now()))
	assert.Nil(t, model.RepaymentPlan{TenorMonths: 6, Principal: decimal.Zero}.Schedule(time.Now()))
}

func TestPlanQuote_Plan(t *testing.T) {
	q := model.PlanQuote{Plans: []model.RepaymentPlan{{TenorMonths: 6}, {TenorMonths: 12}}}

	p, ok := q.Plan(12)
	require.True(t, ok)
	assert.Equal(t, 12, p.TenorMonths)

	_, ok = q.Plan(18)
	assert.False(t, ok)
}
