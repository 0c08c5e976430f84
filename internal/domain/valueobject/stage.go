package valueobject

import (
	"errors"
	"fmt"
)

// Stage is a step of the origination funnel.
type Stage struct {
	value string
}

const (
	stageEntry            = "entry"
	stageNeeds            = "needs"
	stagePrequalification = "prequalification"
	stageEligibility      = "eligibility"
	stageOffer            = "offer"
	stageDocuments        = "documents"
	stageApproval         = "approval"
	stageSanction         = "sanction"
)

var (
	StageEntry            = Stage{value: stageEntry}
	StageNeeds            = Stage{value: stageNeeds}
	StagePrequalification = Stage{value: stagePrequalification}
	StageEligibility      = Stage{value: stageEligibility}
	StageOffer            = Stage{value: stageOffer}
	StageDocuments        = Stage{value: stageDocuments}
	StageApproval         = Stage{value: stageApproval}
	StageSanction         = Stage{value: stageSanction}
)

// orderedStages lists the stages in forward order.
var orderedStages = []Stage{
	StageEntry,
	StageNeeds,
	StagePrequalification,
	StageEligibility,
	StageOffer,
	StageDocuments,
	StageApproval,
	StageSanction,
}

// NewStage creates a Stage from its name.
func NewStage(s string) (Stage, error) {
	for _, st := range orderedStages {
		if st.value == s {
			return st, nil
		}
	}
	return Stage{}, fmt.Errorf("invalid stage: %q", s)
}

// Stages returns the funnel stages in forward order.
func Stages() []Stage {
	out := make([]Stage, len(orderedStages))
	copy(out, orderedStages)
	return out
}

// Index is the stage's position in the forward order, or -1 if unset.
func (s Stage) Index() int {
	for i, st := range orderedStages {
		if st.value == s.value {
			return i
		}
	}
	return -1
}

// Previous returns the stage before s. ok is false for entry.
func (s Stage) Previous() (Stage, bool) {
	i := s.Index()
	if i <= 0 {
		return Stage{}, false
	}
	return orderedStages[i-1], true
}

// IsTerminal reports whether no stage follows s.
func (s Stage) IsTerminal() bool { return s.value == stageSanction }

// String returns the stage name.
func (s Stage) String() string { return s.value }

// IsZero returns true if the stage has not been initialised.
func (s Stage) IsZero() bool { return s.value == "" }

// Equal returns true when both stages carry the same value.
func (s Stage) Equal(other Stage) bool { return s.value == other.value }

// StageEvent is a completion signal that moves the funnel forward.
type StageEvent struct {
	value string
}

var (
	EventApplicationStarted  = StageEvent{value: "APPLICATION_STARTED"}
	EventIntakeSubmitted     = StageEvent{value: "INTAKE_SUBMITTED"}
	EventIdentityVerified    = StageEvent{value: "IDENTITY_VERIFIED"}
	EventEligibilityAssessed = StageEvent{value: "ELIGIBILITY_ASSESSED"}
	EventPlanSelected        = StageEvent{value: "PLAN_SELECTED"}
	EventDocumentsUploaded   = StageEvent{value: "DOCUMENTS_UPLOADED"}
	EventTermsAcknowledged   = StageEvent{value: "TERMS_ACKNOWLEDGED"}
)

// String returns the event name.
func (e StageEvent) String() string { return e.value }

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidStageTransition = errors.New("invalid stage transition")
	ErrNoPreviousStage        = errors.New("no previous stage")
)
