package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"studiodesk/internal/model"
	"studiodesk/internal/schedule"
)

// DocumentService renders the text documents the studio prints:
// payment receipts and schedule reports. Rendering to PDF happens
// client-side; this service only produces the content.
type DocumentService struct {
	studioName string
}

func NewDocumentService(studioName string) *DocumentService {
	if studioName == "" {
		studioName = "Studio"
	}
	return &DocumentService{studioName: studioName}
}

// BuildReceipt assembles the receipt persisted when an installment is
// paid. The receipt number embeds the issue year and the installment
// position so it reads naturally on paper.
func (s *DocumentService) BuildReceipt(ins model.Installment, contract model.Contract, paidAt model.Date) *model.Receipt {
	id := uuid.NewString()
	number := fmt.Sprintf("RCP-%d-%06d", paidAt.Year, ins.ID)

	receipt := &model.Receipt{
		ID:            id,
		InstallmentID: ins.ID,
		Number:        number,
		AmountCents:   ins.AmountCents,
		ClientName:    contract.ClientName,
		ProjectName:   contract.ProjectName,
		IssuedAt:      time.Now(),
	}
	receipt.Body = s.renderReceiptBody(receipt, ins, contract, paidAt)
	return receipt
}

func (s *DocumentService) renderReceiptBody(r *model.Receipt, ins model.Installment, contract model.Contract, paidAt model.Date) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", s.studioName)
	fmt.Fprintf(&b, "Receipt %s\n\n", r.Number)
	fmt.Fprintf(&b, "Received from %s the amount of %s,\n", contract.ClientName, formatCents(ins.AmountCents))
	fmt.Fprintf(&b, "referring to installment %d/%d of project %q.\n\n", ins.Number, contract.InstallmentCount, contract.ProjectName)
	fmt.Fprintf(&b, "Payment date: %s\n", paidAt)
	return b.String()
}

// ScheduleReportRow is one printable line of the schedule report.
type ScheduleReportRow struct {
	Stage     string            `json:"stage"`
	StartDate model.Date        `json:"start_date"`
	Deadline  model.Date        `json:"deadline"`
	Completed *model.Date       `json:"completed,omitempty"`
	Health    model.StageHealth `json:"health"`
}

// ScheduleReport is the printable project report.
type ScheduleReport struct {
	ClientName  string              `json:"client_name"`
	ProjectName string              `json:"project_name"`
	StartDate   model.Date          `json:"start_date"`
	GeneratedAt model.Date          `json:"generated_at"`
	Rows        []ScheduleReportRow `json:"rows"`
}

// BuildScheduleReport flattens a schedule into report rows with the
// derived health label per stage.
func (s *DocumentService) BuildScheduleReport(sched model.Schedule, today model.Date) ScheduleReport {
	rows := make([]ScheduleReportRow, len(sched.Stages))
	for i, st := range sched.Stages {
		rows[i] = ScheduleReportRow{
			Stage:     st.Name,
			StartDate: st.StartDate,
			Deadline:  st.Deadline,
			Completed: st.CompletionDate,
			Health:    schedule.Health(st, today),
		}
	}
	return ScheduleReport{
		ClientName:  sched.ClientName,
		ProjectName: sched.ProjectName,
		StartDate:   sched.StartDate,
		GeneratedAt: today,
		Rows:        rows,
	}
}

// formatCents renders an amount in cents as a plain decimal string.
func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
