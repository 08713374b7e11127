package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiodesk/internal/model"
)

func contractFixture() model.Contract {
	return model.Contract{
		ID:               7,
		ClientName:       "Ana Souza",
		ProjectName:      "Apartment 72",
		TotalValueCents:  1000000, // 10_000.00
		SigningDate:      model.NewDate(2024, time.January, 10),
		InstallmentCount: 3,
		PaymentDay:       15,
		Status:           model.ContractActive,
	}
}

func TestBuildInstallmentPlanSumsToTotal(t *testing.T) {
	c := contractFixture()
	c.TotalValueCents = 1000001 // force a remainder

	plan := BuildInstallmentPlan(c)
	require.Len(t, plan, 3)

	var sum int64
	for _, ins := range plan {
		sum += ins.AmountCents
	}
	assert.Equal(t, c.TotalValueCents, sum)
	// Remainder lands on the first installment.
	assert.Greater(t, plan[0].AmountCents, plan[1].AmountCents)
	assert.Equal(t, plan[1].AmountCents, plan[2].AmountCents)
}

func TestBuildInstallmentPlanDueDates(t *testing.T) {
	plan := BuildInstallmentPlan(contractFixture())
	require.Len(t, plan, 3)

	// Signing Jan 10, payment day 15: first due Jan 15, then monthly.
	assert.Equal(t, "2024-01-15", plan[0].DueDate.String())
	assert.Equal(t, "2024-02-15", plan[1].DueDate.String())
	assert.Equal(t, "2024-03-15", plan[2].DueDate.String())

	for i, ins := range plan {
		assert.Equal(t, i+1, ins.Number)
		assert.Equal(t, model.PaymentPending, ins.Status)
		assert.Equal(t, 7, ins.ContractID)
	}
}

func TestBuildInstallmentPlanPaymentDayBeforeSigning(t *testing.T) {
	c := contractFixture()
	c.PaymentDay = 5 // before the Jan 10 signing date

	plan := BuildInstallmentPlan(c)
	require.Len(t, plan, 3)
	assert.Equal(t, "2024-02-05", plan[0].DueDate.String())
}

func TestBuildInstallmentPlanInvalidPaymentDayFallsBackToSigningDay(t *testing.T) {
	c := contractFixture()
	c.PaymentDay = 0

	plan := BuildInstallmentPlan(c)
	require.NotEmpty(t, plan)
	// Due on the signing day-of-month, pushed a month out since the
	// signing day itself is not after the signing date.
	assert.Equal(t, "2024-02-10", plan[0].DueDate.String())
}

func TestBuildInstallmentPlanGuards(t *testing.T) {
	c := contractFixture()
	c.InstallmentCount = 0
	assert.Empty(t, BuildInstallmentPlan(c))

	c = contractFixture()
	c.SigningDate = model.Date{}
	assert.Empty(t, BuildInstallmentPlan(c))
}

func TestRebuildInstallmentPlanPreservesPaidValue(t *testing.T) {
	c := contractFixture()
	original := BuildInstallmentPlan(c)
	paid := original[:1]
	paid[0].Status = model.PaymentPaid

	// Contract value raised after one installment was paid.
	c.TotalValueCents = 1200000
	rebuilt := RebuildInstallmentPlan(c, paid)
	require.Len(t, rebuilt, 2)

	var sum int64
	for _, ins := range rebuilt {
		sum += ins.AmountCents
	}
	assert.Equal(t, c.TotalValueCents-paid[0].AmountCents, sum)

	// Numbering continues after the paid rows.
	assert.Equal(t, 2, rebuilt[0].Number)
	assert.Equal(t, 3, rebuilt[1].Number)
	assert.Equal(t, "2024-02-15", rebuilt[0].DueDate.String())
	assert.Equal(t, "2024-03-15", rebuilt[1].DueDate.String())
}

func TestRebuildInstallmentPlanNothingRemaining(t *testing.T) {
	c := contractFixture()
	c.InstallmentCount = 1
	paid := []model.Installment{{AmountCents: c.TotalValueCents, Status: model.PaymentPaid}}
	assert.Empty(t, RebuildInstallmentPlan(c, paid))
}

func TestRebuildInstallmentPlanOverpaidClampsToZero(t *testing.T) {
	c := contractFixture()
	c.TotalValueCents = 100
	paid := []model.Installment{{AmountCents: 500, Status: model.PaymentPaid}}

	rebuilt := RebuildInstallmentPlan(c, paid)
	require.Len(t, rebuilt, 2)
	for _, ins := range rebuilt {
		assert.GreaterOrEqual(t, ins.AmountCents, int64(0))
	}
}
