package model_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/origination/internal/domain/model"
	"github.com/bibbank/origination/internal/domain/valueobject"
)

func validInput() model.ApplicantInput {
	return model.ApplicantInput{
		Name:            "  Asha Verma ",
		Mobile:          "9876543210",
		Age:             "29",
		Address:         "12 MG Road, Pune",
		PAN:             "abcde1234f",
		Aadhaar:         "123412341234",
		Employment:      "Salaried Employee",
		Salary:          "50000",
		RequestedAmount: "300000",
		Purpose:         "Home renovation",
	}
}

func TestValidateApplicant_Valid(t *testing.T) {
	p, err := model.ValidateApplicant(validInput())
	require.NoError(t, err)

	assert.Equal(t, "Asha Verma", p.Name())
	assert.Equal(t, "ABCDE1234F", p.PAN(), "PAN is upper-cased")
	assert.Equal(t, 29, p.Age())
	assert.True(t, p.Tier().Equal(valueobject.EmploymentTierSalaried))
	assert.True(t, p.Salary().Equal(decimal.NewFromInt(50000)))
	assert.True(t, p.RequestedAmount().Equal(decimal.NewFromInt(300000)))
	assert.Equal(t, "Asha Verma_9876543210", p.ScoreSeed())
	assert.False(t, p.IsZero())
}

func TestValidateApplicant_ReportsEveryField(t *testing.T) {
	_, err := model.ValidateApplicant(model.ApplicantInput{
		Mobile:          "12345",
		Age:             "0",
		PAN:             "ABCD1234F",
		Aadhaar:         "1234",
		Salary:          "-1",
		RequestedAmount: "0",
	})
	require.Error(t, err)

	var fve *model.FieldValidationError
	require.True(t, errors.As(err, &fve))

	fields := make([]string, 0, len(fve.Fields))
	for _, f := range fve.Fields {
		fields = append(fields, f.Field)
	}
	assert.Equal(t, []string{
		model.FieldName, model.FieldAge, model.FieldMobile, model.FieldAddress,
		model.FieldPAN, model.FieldAadhaar, model.FieldEmployment,
		model.FieldSalary, model.FieldRequestedAmount, model.FieldPurpose,
	}, fields)

	assert.Equal(t, "Enter a 10-digit mobile number.", fve.Message(model.FieldMobile))
	assert.Equal(t, "PAN must be 10 characters: e.g. ABCDE1234F", fve.Message(model.FieldPAN))
	assert.Contains(t, err.Error(), "aadhaar: Aadhaar must be 12 digits.")
}

func TestValidateApplicant_FieldRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.ApplicantInput)
		field  string
	}{
		{"age above range", func(in *model.ApplicantInput) { in.Age = "121" }, model.FieldAge},
		{"age not numeric", func(in *model.ApplicantInput) { in.Age = "twenty" }, model.FieldAge},
		{"mobile with letters", func(in *model.ApplicantInput) { in.Mobile = "98765abcde" }, model.FieldMobile},
		{"mobile 11 digits", func(in *model.ApplicantInput) { in.Mobile = "98765432101" }, model.FieldMobile},
		{"pan digits misplaced", func(in *model.ApplicantInput) { in.PAN = "1BCDE1234F" }, model.FieldPAN},
		{"aadhaar 13 digits", func(in *model.ApplicantInput) { in.Aadhaar = "1234123412345" }, model.FieldAadhaar},
		{"blank employment", func(in *model.ApplicantInput) { in.Employment = "  " }, model.FieldEmployment},
		{"salary not numeric", func(in *model.ApplicantInput) { in.Salary = "lots" }, model.FieldSalary},
		{"salary missing", func(in *model.ApplicantInput) { in.Salary = "" }, model.FieldSalary},
		{"negative request", func(in *model.ApplicantInput) { in.RequestedAmount = "-5" }, model.FieldRequestedAmount},
		{"blank purpose", func(in *model.ApplicantInput) { in.Purpose = "\t" }, model.FieldPurpose},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			_, err := model.ValidateApplicant(in)
			var fve *model.FieldValidationError
			require.True(t, errors.As(err, &fve))
			require.Len(t, fve.Fields, 1)
			assert.Equal(t, tt.field, fve.Fields[0].Field)
		})
	}
}

func TestValidateApplicant_ZeroSalaryAndUnknownTierAccepted(t *testing.T) {
	in := validInput()
	in.Salary = "0"
	in.Employment = "Freelance artist"

	p, err := model.ValidateApplicant(in)
	require.NoError(t, err)
	assert.True(t, p.Salary().IsZero())
	assert.True(t, p.Tier().Equal(valueobject.EmploymentTierUnknown))
	assert.Equal(t, "Freelance artist", p.Employment())
}

func TestReconstructApplicantProfile(t *testing.T) {
	p := model.ReconstructApplicantProfile("Ravi", "9000000000", 40, "Addr", "ABCDE1234F",
		"123412341234", "self employed", decimal.NewFromInt(10), decimal.NewFromInt(20), "Medical")

	assert.Equal(t, "Ravi", p.Name())
	assert.True(t, p.Tier().Equal(valueobject.EmploymentTierSelfEmployed))
	assert.True(t, model.ApplicantProfile{}.IsZero())
}
