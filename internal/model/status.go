package model

import "fmt"

// ContractStatus is the lifecycle state of a contract.
type ContractStatus string

const (
	ContractDraft     ContractStatus = "draft"
	ContractActive    ContractStatus = "active"
	ContractCompleted ContractStatus = "completed"
	ContractCancelled ContractStatus = "cancelled"
)

func (s ContractStatus) Valid() bool {
	switch s {
	case ContractDraft, ContractActive, ContractCompleted, ContractCancelled:
		return true
	}
	return false
}

// PaymentStatus is the state of a single installment.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentOverdue PaymentStatus = "overdue"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentOverdue:
		return true
	}
	return false
}

// PhaseStatus is the coarse per-phase progress state derived from stage
// completion.
type PhaseStatus string

const (
	PhasePending    PhaseStatus = "pending"
	PhaseInProgress PhaseStatus = "in_progress"
	PhaseCompleted  PhaseStatus = "completed"
)

// StageHealth is the read-side schedule label shown next to a stage.
type StageHealth string

const (
	StageCompleted StageHealth = "completed"
	StageLate      StageHealth = "late"
	StageUpcoming  StageHealth = "upcoming"
	StageOnTrack   StageHealth = "on_track"
)

// UserRole controls access to studio settings (stage templates).
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleStaff UserRole = "staff"
)

func ParseUserRole(s string) (UserRole, error) {
	switch UserRole(s) {
	case RoleAdmin, RoleStaff:
		return UserRole(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}
