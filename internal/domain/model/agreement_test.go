package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/origination/internal/domain/model"
)

func TestNewCollateral(t *testing.T) {
	proof := model.ProofDescriptor{FileName: "rc-book.pdf", ContentType: "application/pdf", Size: 2048}

	t.Run("both absent", func(t *testing.T) {
		c, err := model.NewCollateral("  ", model.ProofDescriptor{})
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("both present", func(t *testing.T) {
		c, err := model.NewCollateral("Car", proof)
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, "Car", c.Name())
		assert.Equal(t, proof, c.Proof())
	})

	t.Run("name without proof", func(t *testing.T) {
		_, err := model.NewCollateral("Car", model.ProofDescriptor{})
		assert.ErrorIs(t, err, model.ErrCollateralPairing)
	})

	t.Run("proof without name", func(t *testing.T) {
		_, err := model.NewCollateral("", proof)
		assert.ErrorIs(t, err, model.ErrCollateralPairing)
	})
}

func TestNewLoanAgreement(t *testing.T) {
	applicant, err := model.ValidateApplicant(validInput())
	require.NoError(t, err)

	plan := model.RepaymentPlan{TenorMonths: 12, Principal: decimal.NewFromInt(250000)}
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	collateral, err := model.NewCollateral("Flat", model.ProofDescriptor{FileName: "deed.pdf"})
	require.NoError(t, err)

	agreement, err := model.NewLoanAgreement("20250102-030405-ABCD", at, applicant, plan, decimal.NewFromInt(250000), collateral)
	require.NoError(t, err)

	assert.Equal(t, "20250102-030405-ABCD", agreement.Token())
	assert.Equal(t, at, agreement.IssuedAt())
	assert.Equal(t, 12, agreement.Plan().TenorMonths)
	assert.Equal(t, "Asha Verma", agreement.Applicant().Name())
	assert.True(t, agreement.SanctionedAmount().Equal(decimal.NewFromInt(250000)))

	got, ok := agreement.Collateral()
	require.True(t, ok)
	assert.Equal(t, "Flat", got.Name())

	t.Run("missing token", func(t *testing.T) {
		_, err := model.NewLoanAgreement("", at, applicant, plan, decimal.Zero, nil)
		assert.Error(t, err)
	})

	t.Run("no collateral", func(t *testing.T) {
		a, err := model.NewLoanAgreement("t", at, applicant, plan, decimal.Zero, nil)
		require.NoError(t, err)
		_, ok := a.Collateral()
		assert.False(t, ok)
	})
}
