package valueobject

import (
	"fmt"
	"strings"
)

// EmploymentTier is the applicant's employment category. It drives the
// credit score band, the document checklist and the eligibility multiplier.
type EmploymentTier struct {
	value string
}

const (
	tierStudent      = "STUDENT"
	tierSelfEmployed = "SELF_EMPLOYED"
	tierSalaried     = "SALARIED"
	tierUnemployed   = "UNEMPLOYED"
	tierUnknown      = "UNKNOWN"
)

var (
	EmploymentTierStudent      = EmploymentTier{value: tierStudent}
	EmploymentTierSelfEmployed = EmploymentTier{value: tierSelfEmployed}
	EmploymentTierSalaried     = EmploymentTier{value: tierSalaried}
	EmploymentTierUnemployed   = EmploymentTier{value: tierUnemployed}
	EmploymentTierUnknown      = EmploymentTier{value: tierUnknown}
)

var validEmploymentTiers = map[string]EmploymentTier{
	tierStudent:      EmploymentTierStudent,
	tierSelfEmployed: EmploymentTierSelfEmployed,
	tierSalaried:     EmploymentTierSalaried,
	tierUnemployed:   EmploymentTierUnemployed,
	tierUnknown:      EmploymentTierUnknown,
}

// NewEmploymentTier creates an EmploymentTier from its canonical code.
func NewEmploymentTier(s string) (EmploymentTier, error) {
	v, ok := validEmploymentTiers[s]
	if !ok {
		return EmploymentTier{}, fmt.Errorf("invalid employment tier: %q", s)
	}
	return v, nil
}

// ParseEmploymentTier maps a free-form employment answer onto a tier. It is
// case-insensitive and ignores spaces, hyphens and underscores, so
// "self employed", "Self-employed" and "selfemployed" all match. Anything
// unrecognised, including the empty string, yields EmploymentTierUnknown.
func ParseEmploymentTier(raw string) EmploymentTier {
	if v, ok := validEmploymentTiers[strings.TrimSpace(raw)]; ok {
		return v
	}

	compact := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', '\t':
			return -1
		}
		return r
	}, strings.ToLower(raw))

	switch {
	case compact == "student":
		return EmploymentTierStudent
	case strings.Contains(compact, "self"):
		return EmploymentTierSelfEmployed
	case strings.Contains(compact, "salaried"):
		return EmploymentTierSalaried
	// "unemploy" also catches the common "unemployeed" misspelling.
	case strings.Contains(compact, "unemploy"):
		return EmploymentTierUnemployed
	default:
		return EmploymentTierUnknown
	}
}

// String returns the canonical code.
func (t EmploymentTier) String() string { return t.value }

// IsZero returns true if the tier has not been initialised.
func (t EmploymentTier) IsZero() bool { return t.value == "" }

// IsKnown reports whether the tier is one of the four recognised categories.
func (t EmploymentTier) IsKnown() bool {
	return !t.IsZero() && t.value != tierUnknown
}

// Equal returns true when both tiers carry the same value.
func (t EmploymentTier) Equal(other EmploymentTier) bool { return t.value == other.value }
