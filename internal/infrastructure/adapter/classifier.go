package adapter

import (
	"context"
	"regexp"
	"strings"

	"github.com/bibbank/origination/internal/domain/model"
	"github.com/bibbank/origination/internal/domain/valueobject"
)

var panPattern = regexp.MustCompile(`(?i)^[A-Z]{5}[0-9]{4}[A-Z]$`)

var (
	applyKeywords       = []string{"apply", "loan"}
	purposeKeywords     = []string{"renovation", "medical", "education"}
	eligibilityKeywords = []string{"eligibility", "check"}
)

// KeywordClassifier implements port.IntentClassifier with case-insensitive
// keyword matching. Checks run in a fixed order: apply, purpose, PAN,
// eligibility. The first match wins.
type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

func (c *KeywordClassifier) Classify(_ context.Context, text string) (model.Intent, error) {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	if _, ok := firstKeyword(lower, applyKeywords); ok {
		return model.Intent{Kind: valueobject.IntentApply}, nil
	}
	if kw, ok := firstKeyword(lower, purposeKeywords); ok {
		return model.Intent{Kind: valueobject.IntentPurpose, Detail: kw}, nil
	}
	if panPattern.MatchString(trimmed) {
		return model.Intent{Kind: valueobject.IntentPAN, Detail: strings.ToUpper(trimmed)}, nil
	}
	if _, ok := firstKeyword(lower, eligibilityKeywords); ok {
		return model.Intent{Kind: valueobject.IntentEligibility}, nil
	}
	return model.Intent{Kind: valueobject.IntentUnknown}, nil
}

func firstKeyword(text string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return kw, true
		}
	}
	return "", false
}
