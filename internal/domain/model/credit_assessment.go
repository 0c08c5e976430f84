package model

// ScoreRange is a closed interval of credit scores.
type ScoreRange struct {
	Min int
	Max int
}

// Contains reports whether score lies within the range.
func (r ScoreRange) Contains(score int) bool { return score >= r.Min && score <= r.Max }

// Bounds of every simulated score.
var OverallScoreRange = ScoreRange{Min: 300, Max: 900}

// Score categories.
const (
	CategoryExcellent = "Excellent"
	CategoryVeryGood  = "Very Good"
	CategoryGood      = "Good"
	CategoryFair      = "Fair"
	CategoryPoor      = "Poor"
)

// CreditAssessment is the simulated score with its category and guidance.
type CreditAssessment struct {
	category       string
	recommendation string
	score          int
}

// NewCreditAssessment categorises score.
func NewCreditAssessment(score int) CreditAssessment {
	category, recommendation := categorise(score)
	return CreditAssessment{score: score, category: category, recommendation: recommendation}
}

func categorise(score int) (string, string) {
	switch {
	case score >= 800:
		return CategoryExcellent, "Eligible for best rates"
	case score >= 750:
		return CategoryVeryGood, "Low interest likely"
	case score >= 700:
		return CategoryGood, "Competitive offers possible"
	case score >= 600:
		return CategoryFair, "May need co-applicant"
	default:
		return CategoryPoor, "Higher risk, manual review needed"
	}
}

func (a CreditAssessment) Score() int             { return a.score }
func (a CreditAssessment) Category() string       { return a.category }
func (a CreditAssessment) Recommendation() string { return a.recommendation }
