package model

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ProofDescriptor identifies an uploaded collateral proof file.
type ProofDescriptor struct {
	FileName    string
	ContentType string
	Size        int64
}

// IsZero reports whether no proof file was given.
func (d ProofDescriptor) IsZero() bool { return strings.TrimSpace(d.FileName) == "" }

// Collateral is an optional secured-asset declaration.
type Collateral struct {
	name  string
	proof ProofDescriptor
}

// NewCollateral pairs a collateral name with its proof. Both absent yields
// (nil, nil); exactly one present yields ErrCollateralPairing.
func NewCollateral(name string, proof ProofDescriptor) (*Collateral, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "" && proof.IsZero():
		return nil, nil
	case name == "" || proof.IsZero():
		return nil, ErrCollateralPairing
	}
	return &Collateral{name: name, proof: proof}, nil
}

func (c Collateral) Name() string           { return c.name }
func (c Collateral) Proof() ProofDescriptor { return c.proof }

// LoanAgreement is the immutable record written at acknowledgement. A new
// acknowledgement produces a new agreement with a new token.
type LoanAgreement struct {
	issuedAt   time.Time
	collateral *Collateral
	token      string
	applicant  ApplicantProfile
	plan       RepaymentPlan
	sanctioned decimal.Decimal
}

// NewLoanAgreement snapshots the applicant, plan and sanctioned amount.
func NewLoanAgreement(
	token string,
	issuedAt time.Time,
	applicant ApplicantProfile,
	plan RepaymentPlan,
	sanctioned decimal.Decimal,
	collateral *Collateral,
) (LoanAgreement, error) {
	if token == "" {
		return LoanAgreement{}, errors.New("agreement token is required")
	}
	if issuedAt.IsZero() {
		return LoanAgreement{}, errors.New("agreement timestamp is required")
	}

	var snapshot *Collateral
	if collateral != nil {
		c := *collateral
		snapshot = &c
	}

	return LoanAgreement{
		token:      token,
		issuedAt:   issuedAt,
		applicant:  applicant,
		plan:       plan,
		sanctioned: sanctioned,
		collateral: snapshot,
	}, nil
}

func (a LoanAgreement) Token() string                     { return a.token }
func (a LoanAgreement) IssuedAt() time.Time               { return a.issuedAt }
func (a LoanAgreement) Applicant() ApplicantProfile       { return a.applicant }
func (a LoanAgreement) Plan() RepaymentPlan               { return a.plan }
func (a LoanAgreement) SanctionedAmount() decimal.Decimal { return a.sanctioned }

// Collateral returns a copy of the collateral, if any.
func (a LoanAgreement) Collateral() (Collateral, bool) {
	if a.collateral == nil {
		return Collateral{}, false
	}
	return *a.collateral, true
}
