package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bibbank/origination/internal/domain/model"
	"github.com/bibbank/origination/internal/domain/valueobject"
)

var allTiers = []valueobject.EmploymentTier{
	valueobject.EmploymentTierStudent,
	valueobject.EmploymentTierSelfEmployed,
	valueobject.EmploymentTierSalaried,
	valueobject.EmploymentTierUnemployed,
	valueobject.EmploymentTierUnknown,
}

func TestCreditScoreSimulator_KnownScores(t *testing.T) {
	sim := NewCreditScoreSimulator()

	tests := []struct {
		seed string
		tier valueobject.EmploymentTier
		want int
	}{
		{"Asha Verma_9876543210", valueobject.EmploymentTierSalaried, 786},
		{"Asha Verma_9876543210", valueobject.EmploymentTierUnknown, 686},
		{"Ravi Kumar_9123456789", valueobject.EmploymentTierStudent, 709},
		{"", valueobject.EmploymentTierUnemployed, 450},
		{"नमस्ते_9000000000", valueobject.EmploymentTierSelfEmployed, 731},
	}

	for _, tt := range tests {
		t.Run(tt.seed+"/"+tt.tier.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, sim.Score(tt.seed, tt.tier))
		})
	}
}

func TestCreditScoreSimulator_DeterministicAndInRange(t *testing.T) {
	sim := NewCreditScoreSimulator()

	for i := 0; i < 500; i++ {
		seed := fmt.Sprintf("applicant-%d_%010d", i, i*7919)
		for _, tier := range allTiers {
			first := sim.Score(seed, tier)
			assert.Equal(t, first, sim.Score(seed, tier))

			r := ScoreRangeFor(tier)
			assert.True(t, r.Contains(first), "score %d outside %v for %s", first, r, tier)
			assert.True(t, model.OverallScoreRange.Contains(first))
		}
	}
}

func TestScoreRangeFor(t *testing.T) {
	assert.Equal(t, model.ScoreRange{Min: 670, Max: 710}, ScoreRangeFor(valueobject.EmploymentTierStudent))
	assert.Equal(t, model.ScoreRange{Min: 700, Max: 780}, ScoreRangeFor(valueobject.EmploymentTierSelfEmployed))
	assert.Equal(t, model.ScoreRange{Min: 750, Max: 850}, ScoreRangeFor(valueobject.EmploymentTierSalaried))
	assert.Equal(t, model.ScoreRange{Min: 450, Max: 550}, ScoreRangeFor(valueobject.EmploymentTierUnemployed))
	assert.Equal(t, model.ScoreRange{Min: 650, Max: 750}, ScoreRangeFor(valueobject.EmploymentTierUnknown))
	assert.Equal(t, model.ScoreRange{Min: 650, Max: 750}, ScoreRangeFor(valueobject.EmploymentTier{}))
}

func TestSeedHash_NeverNegative(t *testing.T) {
	for i := 0; i < 2000; i++ {
		assert.GreaterOrEqual(t, seedHash(fmt.Sprintf("seed-%d-%x", i, i*104729)), int64(0))
	}
}

func TestCreditScoreSimulator_Assess(t *testing.T) {
	a := NewCreditScoreSimulator().Assess("Asha Verma_9876543210", valueobject.EmploymentTierSalaried)
	assert.Equal(t, 786, a.Score())
	assert.Equal(t, model.CategoryVeryGood, a.Category())
}
