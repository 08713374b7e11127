package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiodesk/internal/model"
	"studiodesk/internal/schedule"
)

func TestBuildReceipt(t *testing.T) {
	svc := NewDocumentService("Atelier Norte")
	contract := contractFixture()
	ins := model.Installment{
		ID:          42,
		ContractID:  contract.ID,
		Number:      2,
		AmountCents: 333334,
		Status:      model.PaymentPending,
	}
	paidAt := model.NewDate(2024, time.March, 15)

	r := svc.BuildReceipt(ins, contract, paidAt)

	_, err := uuid.Parse(r.ID)
	require.NoError(t, err)
	assert.Equal(t, "RCP-2024-000042", r.Number)
	assert.Equal(t, ins.AmountCents, r.AmountCents)
	assert.Equal(t, "Ana Souza", r.ClientName)
	assert.Contains(t, r.Body, "Atelier Norte")
	assert.Contains(t, r.Body, "3333.34")
	assert.Contains(t, r.Body, "installment 2/3")
	assert.Contains(t, r.Body, "2024-03-15")
}

func TestBuildReceiptDistinctIDs(t *testing.T) {
	svc := NewDocumentService("")
	contract := contractFixture()
	ins := model.Installment{ID: 1, Number: 1, AmountCents: 100}

	a := svc.BuildReceipt(ins, contract, model.NewDate(2024, time.January, 2))
	b := svc.BuildReceipt(ins, contract, model.NewDate(2024, time.January, 2))
	assert.NotEqual(t, a.ID, b.ID)
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{100, "1.00"},
		{1234567, "12345.67"},
		{-250, "-2.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatCents(tt.cents))
	}
}

func TestBuildScheduleReport(t *testing.T) {
	svc := NewDocumentService("Atelier Norte")
	templates := []model.StageTemplate{
		{ID: 1, Name: "Briefing", DurationWorkDays: 1, Sequence: 1},
		{ID: 2, Name: "Layout", DurationWorkDays: 10, Sequence: 2},
	}
	start := model.NewDate(2024, time.January, 6)
	done := model.NewDate(2024, time.January, 8)
	stages := schedule.Generate(templates, start)
	stages[0].CompletionDate = &done

	sched := model.Schedule{
		ClientName:  "Ana Souza",
		ProjectName: "Apartment 72",
		StartDate:   start,
		Stages:      stages,
	}

	today := model.NewDate(2024, time.January, 25)
	report := svc.BuildScheduleReport(sched, today)

	require.Len(t, report.Rows, 2)
	assert.Equal(t, "Briefing", report.Rows[0].Stage)
	assert.Equal(t, model.StageCompleted, report.Rows[0].Health)
	// Layout's deadline (Jan 22) has passed without completion.
	assert.Equal(t, model.StageLate, report.Rows[1].Health)
	assert.Equal(t, today, report.GeneratedAt)
}

func TestRebuildStagesPreservesCompletionByPosition(t *testing.T) {
	templates := []model.StageTemplate{
		{ID: 1, Name: "Briefing", DurationWorkDays: 1, Sequence: 1},
		{ID: 2, Name: "Layout", DurationWorkDays: 10, Sequence: 2},
	}
	start := model.NewDate(2024, time.January, 6)
	old := schedule.Generate(templates, start)
	done := model.NewDate(2024, time.January, 10)
	old[0].CompletionDate = &done

	// Terms edited: same templates, later start date.
	rebuilt := rebuildStages(templates, old, start)

	require.Len(t, rebuilt, 2)
	require.NotNil(t, rebuilt[0].CompletionDate)
	assert.Equal(t, done, *rebuilt[0].CompletionDate)
	// The preserved completion anchors the successor.
	assert.Equal(t, "2024-01-11", rebuilt[1].StartDate.String())
}

func TestValidLicenseKey(t *testing.T) {
	assert.True(t, validLicenseKey("SDK-A1B2-C3D4-E5F6"))
	assert.False(t, validLicenseKey(""))
	assert.False(t, validLicenseKey("SDK-A1B2-C3D4"))
	assert.False(t, validLicenseKey("XXX-A1B2-C3D4-E5F6"))
	assert.False(t, validLicenseKey("SDK-a1b2-c3d4-e5f6"))
}
