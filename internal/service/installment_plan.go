package service

import "studiodesk/internal/model"

// BuildInstallmentPlan splits a contract's value into equal monthly
// installments. The division remainder goes on the first installment so
// the plan always sums to the contract total. The first due date is the
// contract's payment day in the signing month, pushed to the next month
// when it would fall on or before the signing date.
func BuildInstallmentPlan(c model.Contract) []model.Installment {
	if c.InstallmentCount <= 0 || c.SigningDate.IsZero() {
		return []model.Installment{}
	}

	n := int64(c.InstallmentCount)
	base := c.TotalValueCents / n
	first := c.TotalValueCents - base*(n-1)

	firstDue := firstDueDate(c.SigningDate, c.PaymentDay)

	plan := make([]model.Installment, 0, c.InstallmentCount)
	for i := 0; i < c.InstallmentCount; i++ {
		amount := base
		if i == 0 {
			amount = first
		}
		plan = append(plan, model.Installment{
			ContractID:  c.ID,
			Number:      i + 1,
			AmountCents: amount,
			DueDate:     firstDue.AddMonths(i),
			Status:      model.PaymentPending,
		})
	}
	return plan
}

// RebuildInstallmentPlan regenerates the unpaid remainder of a plan
// after contract terms change. Paid installments are untouched; the
// outstanding value (total minus what was already paid) is spread over
// the remaining count.
func RebuildInstallmentPlan(c model.Contract, paid []model.Installment) []model.Installment {
	paidCount := len(paid)
	remaining := c.InstallmentCount - paidCount
	if remaining <= 0 || c.SigningDate.IsZero() {
		return []model.Installment{}
	}

	var paidCents int64
	for _, p := range paid {
		paidCents += p.AmountCents
	}
	outstanding := c.TotalValueCents - paidCents
	if outstanding < 0 {
		outstanding = 0
	}

	n := int64(remaining)
	base := outstanding / n
	first := outstanding - base*(n-1)

	firstDue := firstDueDate(c.SigningDate, c.PaymentDay).AddMonths(paidCount)

	plan := make([]model.Installment, 0, remaining)
	for i := 0; i < remaining; i++ {
		amount := base
		if i == 0 {
			amount = first
		}
		plan = append(plan, model.Installment{
			ContractID:  c.ID,
			Number:      paidCount + i + 1,
			AmountCents: amount,
			DueDate:     firstDue.AddMonths(i),
			Status:      model.PaymentPending,
		})
	}
	return plan
}

func firstDueDate(signing model.Date, paymentDay int) model.Date {
	if paymentDay < 1 || paymentDay > 31 {
		paymentDay = signing.Day
	}
	due := model.NewDate(signing.Year, signing.Month, paymentDay)
	if !due.After(signing) {
		due = due.AddMonths(1)
	}
	return due
}
