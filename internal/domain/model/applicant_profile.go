package model

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bibbank/origination/internal/domain/valueobject"
)

// Intake field names, as reported in FieldError.Field.
const (
	FieldName            = "name"
	FieldAge             = "age"
	FieldMobile          = "mobile"
	FieldAddress         = "address"
	FieldPAN             = "pan"
	FieldAadhaar         = "aadhaar"
	FieldEmployment      = "employment"
	FieldSalary          = "salary"
	FieldRequestedAmount = "requested_amount"
	FieldPurpose         = "purpose"
)

var (
	mobilePattern  = regexp.MustCompile(`^\d{10}$`)
	panPattern     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	aadhaarPattern = regexp.MustCompile(`^\d{12}$`)
)

// ApplicantInput is the raw intake form as typed by the applicant.
type ApplicantInput struct {
	Name            string
	Mobile          string
	Age             string
	Address         string
	PAN             string
	Aadhaar         string
	Employment      string
	Salary          string
	RequestedAmount string
	Purpose         string
}

// ApplicantProfile is the validated, immutable applicant snapshot.
type ApplicantProfile struct {
	name            string
	mobile          string
	address         string
	pan             string
	aadhaar         string
	employment      string
	purpose         string
	tier            valueobject.EmploymentTier
	salary          decimal.Decimal
	requestedAmount decimal.Decimal
	age             int
}

// ValidateApplicant checks every intake rule and returns the profile, or a
// *FieldValidationError listing all failing fields. It has no side effects.
func ValidateApplicant(in ApplicantInput) (ApplicantProfile, error) {
	var errs fieldErrors

	name := strings.TrimSpace(in.Name)
	if name == "" {
		errs.add(FieldName, "Name is required.")
	}

	age, err := strconv.Atoi(strings.TrimSpace(in.Age))
	if err != nil || age < 1 || age > 120 {
		errs.add(FieldAge, "Enter a valid age.")
	}

	mobile := strings.TrimSpace(in.Mobile)
	if !mobilePattern.MatchString(mobile) {
		errs.add(FieldMobile, "Enter a 10-digit mobile number.")
	}

	address := strings.TrimSpace(in.Address)
	if address == "" {
		errs.add(FieldAddress, "Address is required.")
	}

	pan := strings.ToUpper(strings.TrimSpace(in.PAN))
	if !panPattern.MatchString(pan) {
		errs.add(FieldPAN, "PAN must be 10 characters: e.g. ABCDE1234F")
	}

	aadhaar := strings.TrimSpace(in.Aadhaar)
	if !aadhaarPattern.MatchString(aadhaar) {
		errs.add(FieldAadhaar, "Aadhaar must be 12 digits.")
	}

	employment := strings.TrimSpace(in.Employment)
	if employment == "" {
		errs.add(FieldEmployment, "Select employment status.")
	}

	salary, ok := parseAmount(in.Salary)
	if !ok || salary.IsNegative() {
		errs.add(FieldSalary, "Enter a valid salary.")
	}

	requested, ok := parseAmount(in.RequestedAmount)
	if !ok || !requested.IsPositive() {
		errs.add(FieldRequestedAmount, "Enter valid loan amount.")
	}

	purpose := strings.TrimSpace(in.Purpose)
	if purpose == "" {
		errs.add(FieldPurpose, "Loan purpose is required.")
	}

	if err := errs.err(); err != nil {
		return ApplicantProfile{}, err
	}

	return ApplicantProfile{
		name:            name,
		mobile:          mobile,
		address:         address,
		pan:             pan,
		aadhaar:         aadhaar,
		employment:      employment,
		purpose:         purpose,
		tier:            valueobject.ParseEmploymentTier(employment),
		salary:          salary,
		requestedAmount: requested,
		age:             age,
	}, nil
}

func parseAmount(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ReconstructApplicantProfile rebuilds a profile from a stored application
// record without re-running validation.
func ReconstructApplicantProfile(
	name, mobile string,
	age int,
	address, pan, aadhaar, employment string,
	salary, requestedAmount decimal.Decimal,
	purpose string,
) ApplicantProfile {
	return ApplicantProfile{
		name:            name,
		mobile:          mobile,
		address:         address,
		pan:             pan,
		aadhaar:         aadhaar,
		employment:      employment,
		purpose:         purpose,
		tier:            valueobject.ParseEmploymentTier(employment),
		salary:          salary,
		requestedAmount: requestedAmount,
		age:             age,
	}
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (p ApplicantProfile) Name() string                     { return p.name }
func (p ApplicantProfile) Mobile() string                   { return p.mobile }
func (p ApplicantProfile) Age() int                         { return p.age }
func (p ApplicantProfile) Address() string                  { return p.address }
func (p ApplicantProfile) PAN() string                      { return p.pan }
func (p ApplicantProfile) Aadhaar() string                  { return p.aadhaar }
func (p ApplicantProfile) Employment() string               { return p.employment }
func (p ApplicantProfile) Tier() valueobject.EmploymentTier { return p.tier }
func (p ApplicantProfile) Salary() decimal.Decimal          { return p.salary }
func (p ApplicantProfile) RequestedAmount() decimal.Decimal { return p.requestedAmount }
func (p ApplicantProfile) Purpose() string                  { return p.purpose }

// ScoreSeed is the identity key the credit score is derived from.
func (p ApplicantProfile) ScoreSeed() string { return p.name + "_" + p.mobile }

// IsZero reports whether the profile is the empty placeholder.
func (p ApplicantProfile) IsZero() bool { return p.name == "" && p.mobile == "" }
