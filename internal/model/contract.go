package model

import "time"

// Contract is the commercial agreement a schedule and an installment
// plan hang off. Money is stored in cents to keep arithmetic exact.
type Contract struct {
	ID               int            `json:"id"`
	ClientID         int            `json:"client_id"`
	ClientName       string         `json:"client_name,omitempty"` // denormalized on reads
	ProjectName      string         `json:"project_name"`
	TotalValueCents  int64          `json:"total_value_cents"`
	SigningDate      Date           `json:"signing_date"`
	InstallmentCount int            `json:"installment_count"`
	PaymentDay       int            `json:"payment_day"` // day of month installments fall due
	Status           ContractStatus `json:"status"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// Installment is one row of a contract's payment plan.
type Installment struct {
	ID          int           `json:"id"`
	ContractID  int           `json:"contract_id"`
	Number      int           `json:"number"` // 1-based position in the plan
	AmountCents int64         `json:"amount_cents"`
	DueDate     Date          `json:"due_date"`
	Status      PaymentStatus `json:"status"`
	PaidAt      *Date         `json:"paid_at,omitempty"`
	ReceiptID   *string       `json:"receipt_id,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Receipt is the persisted document issued when an installment is paid.
type Receipt struct {
	ID            string    `json:"id"` // uuid
	InstallmentID int       `json:"installment_id"`
	Number        string    `json:"number"` // human-facing receipt number
	AmountCents   int64     `json:"amount_cents"`
	ClientName    string    `json:"client_name"`
	ProjectName   string    `json:"project_name"`
	Body          string    `json:"body"`
	IssuedAt      time.Time `json:"issued_at"`
}

type Notification struct {
	ID         int        `json:"id"`
	Kind       string     `json:"kind"` // contract_created / payment_recorded / stage_completed / installment_overdue
	ContractID int        `json:"contract_id"`
	Message    string     `json:"message"`
	CreatedAt  time.Time  `json:"created_at"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
}
