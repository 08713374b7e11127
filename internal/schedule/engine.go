// Package schedule implements the work-day schedule engine: business-day
// arithmetic, stage chain generation from templates, and completion-
// preserving recalculation. Everything here is pure; callers persist the
// returned stage lists.
package schedule

import (
	"errors"
	"sort"

	"studiodesk/internal/model"
)

// ErrNegativeDays is returned by AddWorkDays for a negative day count.
var ErrNegativeDays = errors.New("work day count must not be negative")

// AddWorkDays returns the date falling days business days after start.
// The start date is first normalized forward to the nearest weekday, so
// AddWorkDays(saturday, 0) is the following Monday. The result is never
// a Saturday or Sunday.
func AddWorkDays(start model.Date, days int) (model.Date, error) {
	if days < 0 {
		return model.Date{}, ErrNegativeDays
	}
	return addWorkDays(start, days), nil
}

func addWorkDays(start model.Date, days int) model.Date {
	d := nextBusinessDay(start)
	for i := 0; i < days; i++ {
		d = nextBusinessDay(d.AddDays(1))
	}
	return d
}

// nextBusinessDay advances d to the first weekday >= d.
func nextBusinessDay(d model.Date) model.Date {
	for d.IsWeekend() {
		d = d.AddDays(1)
	}
	return d
}

// Generate builds a fresh stage chain from the studio's templates,
// anchored at projectStart. Stage 0 starts on the first business day at
// or after projectStart; each later stage starts the business day after
// its predecessor's deadline. A zero projectStart yields an empty list.
func Generate(templates []model.StageTemplate, projectStart model.Date) []model.Stage {
	if projectStart.IsZero() {
		return []model.Stage{}
	}

	ordered := make([]model.StageTemplate, len(templates))
	copy(ordered, templates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Sequence < ordered[j].Sequence
	})

	stages := make([]model.Stage, 0, len(ordered))
	anchor := nextBusinessDay(projectStart)
	for i, t := range ordered {
		stage := model.Stage{
			ID:               t.ID,
			Name:             t.Name,
			DurationWorkDays: clampDuration(t.DurationWorkDays),
		}
		if i == 0 {
			stage.StartDate = anchor
		} else {
			stage.StartDate = addWorkDays(stages[i-1].EffectiveEnd(), 1)
		}
		stage.Deadline = addWorkDays(stage.StartDate, spanWorkDays(stage.DurationWorkDays))
		stages = append(stages, stage)
	}
	return stages
}

// Recalculate recomputes every stage's start and deadline from
// projectStart, chaining each stage off the already-recalculated
// predecessor's effective end. Completion dates are carried through
// untouched; a completed predecessor anchors its successor at the
// completion date rather than the computed deadline. A zero
// projectStart returns the input unchanged.
func Recalculate(stages []model.Stage, projectStart model.Date) []model.Stage {
	if projectStart.IsZero() {
		return stages
	}

	out := make([]model.Stage, len(stages))
	anchor := nextBusinessDay(projectStart)
	for i, s := range stages {
		stage := s
		stage.DurationWorkDays = clampDuration(s.DurationWorkDays)
		if i == 0 {
			stage.StartDate = anchor
		} else {
			stage.StartDate = addWorkDays(out[i-1].EffectiveEnd(), 1)
		}
		stage.Deadline = addWorkDays(stage.StartDate, spanWorkDays(stage.DurationWorkDays))
		out[i] = stage
	}
	return out
}

// spanWorkDays converts a duration into the extra business days between
// a stage's start and its deadline: a 1-day stage ends the day it
// starts.
func spanWorkDays(duration int) int {
	if duration <= 1 {
		return 0
	}
	return duration - 1
}

func clampDuration(d int) int {
	if d < 0 {
		return 0
	}
	return d
}
