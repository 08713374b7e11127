package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-06")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year)
	assert.Equal(t, time.January, d.Month)
	assert.Equal(t, 6, d.Day)
	assert.Equal(t, time.Saturday, d.Weekday())
}

func TestParseDateEmptyIsZero(t *testing.T) {
	d, err := ParseDate("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, s := range []string{"06/01/2024", "2024-1-6", "2024-01-06T12:00:00Z", "tomorrow"} {
		_, err := ParseDate(s)
		assert.Error(t, err, s)
	}
}

func TestDateStringRoundTrip(t *testing.T) {
	d := NewDate(2024, time.February, 29)
	got, err := ParseDate(d.String())
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestAddDaysCrossesMonths(t *testing.T) {
	d := NewDate(2024, time.January, 31)
	assert.Equal(t, "2024-02-01", d.AddDays(1).String())
	assert.Equal(t, "2024-01-30", d.AddDays(-1).String())
}

func TestAddMonthsKeepsPaymentDaySemantics(t *testing.T) {
	d := NewDate(2024, time.March, 15)
	assert.Equal(t, "2024-04-15", d.AddMonths(1).String())
	assert.Equal(t, "2024-09-15", d.AddMonths(6).String())
}

func TestDaysUntil(t *testing.T) {
	a := NewDate(2024, time.January, 8)
	b := NewDate(2024, time.January, 19)
	assert.Equal(t, 11, a.DaysUntil(b))
	assert.Equal(t, -11, b.DaysUntil(a))
	assert.Equal(t, 0, a.DaysUntil(a))
}

func TestDateJSON(t *testing.T) {
	type doc struct {
		Signed Date  `json:"signed"`
		Paid   *Date `json:"paid,omitempty"`
	}

	out, err := json.Marshal(doc{Signed: NewDate(2024, time.January, 6)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"signed":"2024-01-06"}`, string(out))

	var in doc
	require.NoError(t, json.Unmarshal([]byte(`{"signed":"2024-01-06","paid":null}`), &in))
	assert.Equal(t, "2024-01-06", in.Signed.String())
	assert.Nil(t, in.Paid)
}

func TestDateJSONZeroIsNull(t *testing.T) {
	out, err := json.Marshal(struct {
		D Date `json:"d"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":null}`, string(out))
}

func TestDateScanValue(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, time.January, 6, 23, 30, 0, 0, time.FixedZone("X", -3*3600))))
	assert.Equal(t, "2024-01-06", d.String())

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 6, 0, 0, 0, 0, time.UTC), v)

	var zero Date
	v, err = zero.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())
}

func TestEffectiveEnd(t *testing.T) {
	done := NewDate(2024, time.January, 10)
	s := Stage{Deadline: NewDate(2024, time.January, 8)}
	assert.Equal(t, s.Deadline, s.EffectiveEnd())

	s.CompletionDate = &done
	assert.Equal(t, done, s.EffectiveEnd())
}
