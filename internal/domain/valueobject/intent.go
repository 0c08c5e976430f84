package valueobject

// IntentKind is what the applicant asked the assistant for.
type IntentKind struct {
	value string
}

var (
	IntentApply       = IntentKind{value: "apply"}
	IntentPurpose     = IntentKind{value: "purpose"}
	IntentPAN         = IntentKind{value: "pan"}
	IntentEligibility = IntentKind{value: "eligibility"}
	IntentUnknown     = IntentKind{value: "unknown"}
)

func (k IntentKind) String() string { return k.value }

// Equal returns true when both kinds carry the same value.
func (k IntentKind) Equal(other IntentKind) bool { return k.value == other.value }
