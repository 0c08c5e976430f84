package model

import (
	"fmt"

	"github.com/bibbank/origination/internal/domain/valueobject"
)

type edge struct {
	from valueobject.Stage
	to   valueobject.Stage
}

var stageEdges = map[valueobject.StageEvent]edge{
	valueobject.EventApplicationStarted:  {valueobject.StageEntry, valueobject.StageNeeds},
	valueobject.EventIntakeSubmitted:     {valueobject.StageNeeds, valueobject.StagePrequalification},
	valueobject.EventIdentityVerified:    {valueobject.StagePrequalification, valueobject.StageEligibility},
	valueobject.EventEligibilityAssessed: {valueobject.StageEligibility, valueobject.StageOffer},
	valueobject.EventPlanSelected:        {valueobject.StageOffer, valueobject.StageDocuments},
	valueobject.EventDocumentsUploaded:   {valueobject.StageDocuments, valueobject.StageApproval},
	valueobject.EventTermsAcknowledged:   {valueobject.StageApproval, valueobject.StageSanction},
}

// StageMachine tracks the current funnel stage. It is immutable; Fire and
// Back return the next machine.
type StageMachine struct {
	current valueobject.Stage
	highest valueobject.Stage
}

// NewStageMachine starts at entry.
func NewStageMachine() StageMachine {
	return StageMachine{current: valueobject.StageEntry, highest: valueobject.StageEntry}
}

// ReconstructStageMachine restores a machine from persisted stages.
func ReconstructStageMachine(current, highest valueobject.Stage) StageMachine {
	if highest.Index() < current.Index() {
		highest = current
	}
	return StageMachine{current: current, highest: highest}
}

// Fire applies a completion event. The event must originate from the
// current stage. Re-acknowledging terms at sanction is accepted and leaves
// the machine unchanged.
func (m StageMachine) Fire(evt valueobject.StageEvent) (StageMachine, error) {
	e, ok := stageEdges[evt]
	if !ok {
		return m, fmt.Errorf("%w: unknown event %s", valueobject.ErrInvalidStageTransition, evt)
	}

	if m.current.IsTerminal() && evt == valueobject.EventTermsAcknowledged {
		return m, nil
	}

	if !m.current.Equal(e.from) {
		return m, fmt.Errorf("%w: %s not allowed at %s", valueobject.ErrInvalidStageTransition, evt, m.current)
	}

	next := m
	next.current = e.to
	if e.to.Index() > next.highest.Index() {
		next.highest = e.to
	}
	return next, nil
}

// Back steps to the previous stage. Sanction is final and entry has no
// predecessor.
func (m StageMachine) Back() (StageMachine, error) {
	if m.current.IsTerminal() {
		return m, fmt.Errorf("%w: %s is final", valueobject.ErrInvalidStageTransition, m.current)
	}
	prev, ok := m.current.Previous()
	if !ok {
		return m, valueobject.ErrNoPreviousStage
	}
	next := m
	next.current = prev
	return next, nil
}

// Current returns the active stage.
func (m StageMachine) Current() valueobject.Stage { return m.current }

// Highest returns the furthest stage ever reached.
func (m StageMachine) Highest() valueobject.Stage { return m.highest }

// Expects returns an error unless evt may fire from the current stage.
func (m StageMachine) Expects(evt valueobject.StageEvent) error {
	_, err := m.Fire(evt)
	return err
}
