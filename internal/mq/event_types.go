// Package mq defines the payloads of the domain events published
// through the outbox.
package mq

import "studiodesk/internal/model"

// Routing keys on the studiodesk.events exchange.
const (
	RoutingContractCreated = "contract.created"
	RoutingPaymentRecorded = "payment.recorded"
	RoutingStageCompleted  = "stage.completed"
)

type ContractCreatedPayload struct {
	ContractID  int        `json:"contract_id"`
	ClientID    int        `json:"client_id"`
	ClientName  string     `json:"client_name"`
	ProjectName string     `json:"project_name"`
	SigningDate model.Date `json:"signing_date"`
	StageCount  int        `json:"stage_count"`
}

type PaymentRecordedPayload struct {
	InstallmentID int        `json:"installment_id"`
	ContractID    int        `json:"contract_id"`
	Number        int        `json:"number"`
	AmountCents   int64      `json:"amount_cents"`
	PaidAt        model.Date `json:"paid_at"`
	ReceiptID     string     `json:"receipt_id"`
}

type StageCompletedPayload struct {
	ScheduleID     int        `json:"schedule_id"`
	ContractID     int        `json:"contract_id"`
	StageID        int        `json:"stage_id"`
	StageName      string     `json:"stage_name"`
	CompletionDate model.Date `json:"completion_date"`
}
