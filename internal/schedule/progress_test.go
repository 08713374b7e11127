package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiodesk/internal/model"
)

func phaseGroups() []model.PhaseGroup {
	return []model.PhaseGroup{
		{Name: "Layout", Stages: []string{"Briefing", "Layout"}},
		{Name: "3D", Stages: []string{"Modeling", "Rendering"}},
	}
}

func fourStages() []model.Stage {
	tmpl := []model.StageTemplate{
		{ID: 1, Name: "Briefing", DurationWorkDays: 1, Sequence: 1},
		{ID: 2, Name: "Layout", DurationWorkDays: 5, Sequence: 2},
		{ID: 3, Name: "Modeling", DurationWorkDays: 5, Sequence: 3},
		{ID: 4, Name: "Rendering", DurationWorkDays: 3, Sequence: 4},
	}
	return Generate(tmpl, date("2024-01-08"))
}

func TestProgressAllPending(t *testing.T) {
	stages := fourStages()
	// Before anything starts, every phase is pending.
	out := Progress(stages, phaseGroups(), date("2024-01-01"))
	require.Len(t, out, 2)
	assert.Equal(t, model.PhasePending, out[0].Status)
	assert.Equal(t, model.PhasePending, out[1].Status)
}

func TestProgressStartedPhaseIsInProgress(t *testing.T) {
	stages := fourStages()
	// Today is past the first phase's start but nothing is completed.
	out := Progress(stages, phaseGroups(), date("2024-01-09"))
	require.Len(t, out, 2)
	assert.Equal(t, model.PhaseInProgress, out[0].Status)
	assert.Equal(t, model.PhasePending, out[1].Status)
}

func TestProgressPartialCompletion(t *testing.T) {
	stages := fourStages()
	stages[0].CompletionDate = datePtr("2024-01-08")

	out := Progress(stages, phaseGroups(), date("2024-01-01"))
	assert.Equal(t, model.PhaseInProgress, out[0].Status)
}

func TestProgressCompletedPhase(t *testing.T) {
	stages := fourStages()
	stages[0].CompletionDate = datePtr("2024-01-08")
	stages[1].CompletionDate = datePtr("2024-01-15")

	out := Progress(stages, phaseGroups(), date("2024-01-16"))
	assert.Equal(t, model.PhaseCompleted, out[0].Status)
}

func TestProgressMonotonicInCompletionCount(t *testing.T) {
	stages := fourStages()
	rank := map[model.PhaseStatus]int{
		model.PhasePending:    0,
		model.PhaseInProgress: 1,
		model.PhaseCompleted:  2,
	}

	today := date("2024-01-01")
	prev := Progress(stages, phaseGroups(), today)[0].Status
	for i := 0; i < 2; i++ {
		stages[i].CompletionDate = datePtr("2024-01-10")
		cur := Progress(stages, phaseGroups(), today)[0].Status
		assert.GreaterOrEqual(t, rank[cur], rank[prev])
		prev = cur
	}
}

func TestProgressSkipsUnknownStageNames(t *testing.T) {
	groups := []model.PhaseGroup{{Name: "Ghost", Stages: []string{"DoesNotExist"}}}
	out := Progress(fourStages(), groups, date("2024-01-01"))
	assert.Empty(t, out)
}

func TestHealthLabels(t *testing.T) {
	s := model.Stage{
		Name:      "Layout",
		StartDate: date("2024-01-08"),
		Deadline:  date("2024-01-19"),
	}

	tests := []struct {
		name  string
		today string
		done  *model.Date
		want  model.StageHealth
	}{
		{"completed wins over late", "2024-02-01", datePtr("2024-01-10"), model.StageCompleted},
		{"past deadline is late", "2024-01-22", nil, model.StageLate},
		{"deadline within a week is upcoming", "2024-01-15", nil, model.StageUpcoming},
		{"deadline day itself is upcoming", "2024-01-19", nil, model.StageUpcoming},
		{"far out is on track", "2024-01-08", nil, model.StageOnTrack},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage := s
			stage.CompletionDate = tt.done
			assert.Equal(t, tt.want, Health(stage, date(tt.today)))
		})
	}
}
