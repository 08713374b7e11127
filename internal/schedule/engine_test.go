package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiodesk/internal/model"
)

func date(s string) model.Date {
	d, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func datePtr(s string) *model.Date {
	d := date(s)
	return &d
}

func TestAddWorkDaysWeekendNormalization(t *testing.T) {
	tests := []struct {
		name  string
		start string
		days  int
		want  string
	}{
		{"saturday zero days", "2024-01-06", 0, "2024-01-08"},
		{"sunday zero days", "2024-01-07", 0, "2024-01-08"},
		{"weekday zero days", "2024-01-08", 0, "2024-01-08"},
		{"friday plus one", "2024-01-05", 1, "2024-01-08"},
		{"monday plus four", "2024-01-08", 4, "2024-01-12"},
		{"monday plus five crosses weekend", "2024-01-08", 5, "2024-01-15"},
		{"saturday plus one", "2024-01-06", 1, "2024-01-09"},
		{"ten days over two weekends", "2024-01-03", 10, "2024-01-17"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AddWorkDays(date(tt.start), tt.days)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestAddWorkDaysNeverLandsOnWeekend(t *testing.T) {
	start := date("2024-01-01")
	for offset := 0; offset < 14; offset++ {
		for days := 0; days < 30; days++ {
			got, err := AddWorkDays(start.AddDays(offset), days)
			require.NoError(t, err)
			assert.False(t, got.IsWeekend(), "AddWorkDays(%s, %d) = %s", start.AddDays(offset), days, got)
		}
	}
}

func TestAddWorkDaysCountsExactWeekdays(t *testing.T) {
	// Walk forward one business day at a time and compare against the
	// n-at-once result.
	start := date("2024-01-08") // Monday
	step := start
	for n := 1; n <= 25; n++ {
		var err error
		step, err = AddWorkDays(step, 1)
		require.NoError(t, err)

		direct, err := AddWorkDays(start, n)
		require.NoError(t, err)
		assert.Equal(t, step, direct, "n=%d", n)
	}
}

func TestAddWorkDaysRejectsNegative(t *testing.T) {
	_, err := AddWorkDays(date("2024-01-08"), -1)
	assert.ErrorIs(t, err, ErrNegativeDays)
}

func templates() []model.StageTemplate {
	return []model.StageTemplate{
		{ID: 1, Name: "Briefing", DurationWorkDays: 1, Sequence: 1},
		{ID: 2, Name: "Layout", DurationWorkDays: 10, Sequence: 2},
	}
}

func TestGenerateFromSaturdayStart(t *testing.T) {
	// Start on Saturday 2024-01-06. Stage 0 lands on the Monday;
	// stage 1 runs 10 work days from the next business day.
	stages := Generate(templates(), date("2024-01-06"))
	require.Len(t, stages, 2)

	assert.Equal(t, "2024-01-08", stages[0].StartDate.String())
	assert.Equal(t, "2024-01-08", stages[0].Deadline.String())
	assert.Nil(t, stages[0].CompletionDate)

	assert.Equal(t, "2024-01-09", stages[1].StartDate.String())
	assert.Equal(t, "2024-01-22", stages[1].Deadline.String())
	assert.Nil(t, stages[1].CompletionDate)
}

func TestGenerateCarriesTemplateFields(t *testing.T) {
	stages := Generate(templates(), date("2024-01-08"))
	require.Len(t, stages, 2)
	assert.Equal(t, 1, stages[0].ID)
	assert.Equal(t, "Briefing", stages[0].Name)
	assert.Equal(t, 1, stages[0].DurationWorkDays)
	assert.Equal(t, 2, stages[1].ID)
	assert.Equal(t, 10, stages[1].DurationWorkDays)
}

func TestGenerateSortsBySequence(t *testing.T) {
	shuffled := []model.StageTemplate{
		{ID: 2, Name: "Layout", DurationWorkDays: 10, Sequence: 2},
		{ID: 1, Name: "Briefing", DurationWorkDays: 1, Sequence: 1},
	}
	stages := Generate(shuffled, date("2024-01-08"))
	require.Len(t, stages, 2)
	assert.Equal(t, "Briefing", stages[0].Name)
	assert.Equal(t, "Layout", stages[1].Name)
}

func TestGenerateEmptyStartDate(t *testing.T) {
	stages := Generate(templates(), model.Date{})
	assert.NotNil(t, stages)
	assert.Empty(t, stages)
}

func TestGenerateZeroDurationStage(t *testing.T) {
	tmpl := []model.StageTemplate{
		{ID: 1, Name: "Kickoff", DurationWorkDays: 0, Sequence: 1},
		{ID: 2, Name: "Design", DurationWorkDays: 5, Sequence: 2},
	}
	stages := Generate(tmpl, date("2024-01-08"))
	require.Len(t, stages, 2)
	// Zero-duration stage starts and ends the same day.
	assert.Equal(t, stages[0].StartDate, stages[0].Deadline)
	assert.Equal(t, "2024-01-09", stages[1].StartDate.String())
}

func TestGenerateClampsNegativeDuration(t *testing.T) {
	tmpl := []model.StageTemplate{{ID: 1, Name: "Broken", DurationWorkDays: -3, Sequence: 1}}
	stages := Generate(tmpl, date("2024-01-08"))
	require.Len(t, stages, 1)
	assert.Equal(t, 0, stages[0].DurationWorkDays)
	assert.Equal(t, stages[0].StartDate, stages[0].Deadline)
}

func TestGenerateChainContinuity(t *testing.T) {
	tmpl := []model.StageTemplate{
		{ID: 1, Name: "Briefing", DurationWorkDays: 2, Sequence: 1},
		{ID: 2, Name: "Layout", DurationWorkDays: 7, Sequence: 2},
		{ID: 3, Name: "3D", DurationWorkDays: 12, Sequence: 3},
		{ID: 4, Name: "Detailing", DurationWorkDays: 5, Sequence: 4},
	}
	stages := Generate(tmpl, date("2024-03-01"))
	require.Len(t, stages, 4)

	for i, s := range stages {
		assert.False(t, s.StartDate.IsWeekend(), "stage %d starts on a weekend", i)
		assert.False(t, s.Deadline.IsWeekend(), "stage %d deadline on a weekend", i)
		if i == 0 {
			continue
		}
		next, err := AddWorkDays(stages[i-1].EffectiveEnd(), 1)
		require.NoError(t, err)
		assert.Equal(t, next, s.StartDate, "stage %d does not chain from its predecessor", i)
	}
}

func TestRecalculateUsesCompletionAsAnchor(t *testing.T) {
	// Stage 0 completed later than its deadline; the successor chains
	// from the completion date.
	stages := Generate(templates(), date("2024-01-06"))
	stages[0].CompletionDate = datePtr("2024-01-10")

	out := Recalculate(stages, date("2024-01-06"))
	require.Len(t, out, 2)
	assert.Equal(t, "2024-01-11", out[1].StartDate.String())
	assert.Equal(t, datePtr("2024-01-10"), out[0].CompletionDate)
}

func TestRecalculateEarlyCompletionPullsChainForward(t *testing.T) {
	tmpl := []model.StageTemplate{
		{ID: 1, Name: "Briefing", DurationWorkDays: 2, Sequence: 1},
		{ID: 2, Name: "Layout", DurationWorkDays: 5, Sequence: 2},
		{ID: 3, Name: "3D", DurationWorkDays: 5, Sequence: 3},
		{ID: 4, Name: "Detailing", DurationWorkDays: 3, Sequence: 4},
	}
	stages := Generate(tmpl, date("2024-01-08"))
	// Stage 2 (index 2) finishes well before its computed deadline.
	require.Equal(t, "2024-01-17", stages[2].StartDate.String())
	stages[2].CompletionDate = datePtr("2024-01-17")

	out := Recalculate(stages, date("2024-01-08"))
	assert.Equal(t, "2024-01-18", out[3].StartDate.String())
}

func TestRecalculateOutOfOrderCompletion(t *testing.T) {
	// Completing a later stage while earlier ones are open is legal and
	// must not disturb the chain before it.
	stages := Generate(templates(), date("2024-01-06"))
	stages[1].CompletionDate = datePtr("2024-01-15")

	out := Recalculate(stages, date("2024-01-06"))
	assert.Equal(t, "2024-01-08", out[0].StartDate.String())
	assert.Equal(t, "2024-01-09", out[1].StartDate.String())
	assert.Equal(t, datePtr("2024-01-15"), out[1].CompletionDate)
}

func TestRecalculateIdempotent(t *testing.T) {
	stages := Generate(templates(), date("2024-01-06"))
	stages[0].CompletionDate = datePtr("2024-01-09")

	once := Recalculate(stages, date("2024-01-06"))
	twice := Recalculate(once, date("2024-01-06"))
	assert.Equal(t, once, twice)
}

func TestRecalculateDurationEditShiftsSuccessors(t *testing.T) {
	tmpl := []model.StageTemplate{
		{ID: 1, Name: "Briefing", DurationWorkDays: 2, Sequence: 1},
		{ID: 2, Name: "Layout", DurationWorkDays: 5, Sequence: 2},
		{ID: 3, Name: "3D", DurationWorkDays: 5, Sequence: 3},
	}
	before := Generate(tmpl, date("2024-01-08"))

	edited := make([]model.Stage, len(before))
	copy(edited, before)
	edited[1].DurationWorkDays += 3

	after := Recalculate(edited, date("2024-01-08"))

	// Every successor moves forward by exactly 3 business days.
	for i := 2; i < len(after); i++ {
		want, err := AddWorkDays(before[i].StartDate, 3)
		require.NoError(t, err)
		assert.Equal(t, want, after[i].StartDate, "stage %d", i)
	}
	// The edited stage's own start is untouched.
	assert.Equal(t, before[1].StartDate, after[1].StartDate)
}

func TestRecalculateStartDateChangeRipples(t *testing.T) {
	stages := Generate(templates(), date("2024-01-06"))
	out := Recalculate(stages, date("2024-02-01")) // Thursday
	assert.Equal(t, "2024-02-01", out[0].StartDate.String())
	assert.Equal(t, "2024-02-02", out[1].StartDate.String())
	assert.Equal(t, "2024-02-15", out[1].Deadline.String())
}

func TestRecalculateEmptyStartDateReturnsInputUnchanged(t *testing.T) {
	stages := Generate(templates(), date("2024-01-06"))
	stages[0].CompletionDate = datePtr("2024-01-08")

	out := Recalculate(stages, model.Date{})
	assert.Equal(t, stages, out)
}

func TestRecalculateDoesNotReadStaleDeadlines(t *testing.T) {
	// Corrupt the stored deadlines; recalculation must rebuild the chain
	// from the recomputed predecessors, not the stored values.
	stages := Generate(templates(), date("2024-01-06"))
	stages[0].Deadline = date("2024-06-01")

	out := Recalculate(stages, date("2024-01-06"))
	assert.Equal(t, "2024-01-08", out[0].Deadline.String())
	assert.Equal(t, "2024-01-09", out[1].StartDate.String())
}

func TestStageDatesRoundTripISO(t *testing.T) {
	stages := Generate(templates(), date("2024-01-06"))
	for _, s := range stages {
		parsed, err := model.ParseDate(s.StartDate.String())
		require.NoError(t, err)
		assert.Equal(t, s.StartDate, parsed)
	}
}

func TestWeekdayAssumptions(t *testing.T) {
	// Anchor the fixtures: 2024-01-06 is a Saturday, 2024-01-08 a Monday.
	assert.Equal(t, time.Saturday, date("2024-01-06").Weekday())
	assert.Equal(t, time.Monday, date("2024-01-08").Weekday())
}
