package schedule

import "studiodesk/internal/model"

// Progress projects the detailed stage list onto the coarse phases the
// dashboard shows. A phase is completed when every member stage has a
// completion date, in progress when some do (or none do but the first
// member has already started), pending otherwise. Phases whose stage
// names match nothing in the schedule are skipped.
func Progress(stages []model.Stage, groups []model.PhaseGroup, today model.Date) []model.PhaseProgress {
	byName := make(map[string]model.Stage, len(stages))
	for _, s := range stages {
		byName[s.Name] = s
	}

	out := make([]model.PhaseProgress, 0, len(groups))
	for _, g := range groups {
		var members []model.Stage
		for _, name := range g.Stages {
			if s, ok := byName[name]; ok {
				members = append(members, s)
			}
		}
		if len(members) == 0 {
			continue
		}
		out = append(out, model.PhaseProgress{Name: g.Name, Status: phaseStatus(members, today)})
	}
	return out
}

func phaseStatus(members []model.Stage, today model.Date) model.PhaseStatus {
	done := 0
	for _, s := range members {
		if s.CompletionDate != nil && !s.CompletionDate.IsZero() {
			done++
		}
	}
	switch {
	case done == len(members):
		return model.PhaseCompleted
	case done > 0:
		return model.PhaseInProgress
	case !members[0].StartDate.After(today):
		return model.PhaseInProgress
	default:
		return model.PhasePending
	}
}

// upcomingWindowDays is how far ahead of a deadline a stage is flagged
// as upcoming.
const upcomingWindowDays = 7

// Health derives the per-stage schedule label from the engine's own
// deadline field. Completed stages are never late.
func Health(s model.Stage, today model.Date) model.StageHealth {
	if s.CompletionDate != nil && !s.CompletionDate.IsZero() {
		return model.StageCompleted
	}
	if today.After(s.Deadline) {
		return model.StageLate
	}
	if today.DaysUntil(s.Deadline) <= upcomingWindowDays {
		return model.StageUpcoming
	}
	return model.StageOnTrack
}
