package service

import (
	"unicode/utf16"

	"github.com/bibbank/origination/internal/domain/model"
	"github.com/bibbank/origination/internal/domain/valueobject"
)

// tierScoreRanges are the closed score bands per employment tier.
var tierScoreRanges = map[valueobject.EmploymentTier]model.ScoreRange{
	valueobject.EmploymentTierStudent:      {Min: 670, Max: 710},
	valueobject.EmploymentTierSelfEmployed: {Min: 700, Max: 780},
	valueobject.EmploymentTierSalaried:     {Min: 750, Max: 850},
	valueobject.EmploymentTierUnemployed:   {Min: 450, Max: 550},
}

var defaultScoreRange = model.ScoreRange{Min: 650, Max: 750}

// CreditScoreSimulator derives a repeatable pseudo credit score from an
// identity seed. It never calls a bureau.
type CreditScoreSimulator struct{}

// NewCreditScoreSimulator returns a new simulator.
func NewCreditScoreSimulator() *CreditScoreSimulator {
	return &CreditScoreSimulator{}
}

// Score maps seed into the tier's band. Identical inputs always produce the
// identical score.
func (s *CreditScoreSimulator) Score(seed string, tier valueobject.EmploymentTier) int {
	r := ScoreRangeFor(tier)
	span := int64(r.Max - r.Min + 1)
	return r.Min + int(seedHash(seed)%span)
}

// Assess scores the seed and categorises the result.
func (s *CreditScoreSimulator) Assess(seed string, tier valueobject.EmploymentTier) model.CreditAssessment {
	return model.NewCreditAssessment(s.Score(seed, tier))
}

// ScoreRangeFor returns the band used for tier.
func ScoreRangeFor(tier valueobject.EmploymentTier) model.ScoreRange {
	if r, ok := tierScoreRanges[tier]; ok {
		return r
	}
	return defaultScoreRange
}

// seedHash folds the UTF-16 code units of seed into h*31+c with 32-bit
// signed wraparound and returns the absolute value. math.MinInt32 maps to
// 2^31, which is why the result is widened to int64.
func seedHash(seed string) int64 {
	var h int32
	for _, c := range utf16.Encode([]rune(seed)) {
		h = h*31 + int32(c)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}
