package model

import "time"

// StageTemplate is a studio-configured default phase: name, typical
// duration in work days, and position in the sequence. Templates seed
// new project schedules; editing a template never touches existing
// schedules.
type StageTemplate struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	DurationWorkDays int    `json:"duration_work_days"`
	Sequence         int    `json:"sequence"`
}

// Stage is the per-project materialization of a template. StartDate and
// Deadline are always computed by the schedule engine; CompletionDate is
// the one user-recorded field the engine must never erase.
type Stage struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	DurationWorkDays int    `json:"duration_work_days"`
	StartDate        Date   `json:"start_date"`
	Deadline         Date   `json:"deadline"`
	CompletionDate   *Date  `json:"completion_date,omitempty"`
}

// EffectiveEnd is the anchor the next stage chains from: the recorded
// completion date when present, the computed deadline otherwise.
func (s Stage) EffectiveEnd() Date {
	if s.CompletionDate != nil && !s.CompletionDate.IsZero() {
		return *s.CompletionDate
	}
	return s.Deadline
}

// Schedule owns the ordered stage list for one contract. The stage
// array is always replaced wholesale; stages have no lifecycle outside
// their schedule.
type Schedule struct {
	ID          int       `json:"id"`
	ContractID  int       `json:"contract_id"`
	StartDate   Date      `json:"start_date"`
	ClientName  string    `json:"client_name"`
	ProjectName string    `json:"project_name"`
	Stages      []Stage   `json:"stages"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PhaseGroup maps one coarse phase shown on the dashboard to the
// detailed stage names that compose it. Configuration-provided.
type PhaseGroup struct {
	Name   string   `json:"name" yaml:"name"`
	Stages []string `json:"stages" yaml:"stages"`
}

// PhaseProgress is the derived status of one coarse phase.
type PhaseProgress struct {
	Name   string      `json:"name"`
	Status PhaseStatus `json:"status"`
}
