package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bibbank/origination/internal/domain/model"
)

func TestNewCreditAssessment_Categories(t *testing.T) {
	tests := []struct {
		score    int
		category string
		rec      string
	}{
		{900, model.CategoryExcellent, "Eligible for best rates"},
		{800, model.CategoryExcellent, "Eligible for best rates"},
		{799, model.CategoryVeryGood, "Low interest likely"},
		{750, model.CategoryVeryGood, "Low interest likely"},
		{700, model.CategoryGood, "Competitive offers possible"},
		{600, model.CategoryFair, "May need co-applicant"},
		{599, model.CategoryPoor, "Higher risk, manual review needed"},
		{300, model.CategoryPoor, "Higher risk, manual review needed"},
	}

	for _, tt := range tests {
		a := model.NewCreditAssessment(tt.score)
		assert.Equal(t, tt.score, a.Score())
		assert.Equal(t, tt.category, a.Category(), "score %d", tt.score)
		assert.Equal(t, tt.rec, a.Recommendation(), "score %d", tt.score)
	}
}

func TestScoreRange_Contains(t *testing.T) {
	r := model.ScoreRange{Min: 670, Max: 710}
	assert.True(t, r.Contains(670))
	assert.True(t, r.Contains(710))
	assert.False(t, r.Contains(711))
	assert.True(t, model.OverallScoreRange.Contains(300))
}
