package availability_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/mesa-scheduler/internal/domain/availability"
)

func TestParseLocalDate(t *testing.T) {
	d, err := availability.ParseLocalDate(tuesday, brt)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 20, 12, 0, 0, 0, brt), d)

	for _, in := range []string{"", "20/10/2026", "2026-13-01", "2026-10-20T10:00"} {
		_, err := availability.ParseLocalDate(in, brt)
		assert.Equal(t, availability.KindInvalidDateFormat, availability.KindOf(err), in)
	}
}

func TestParseLocalDateKeepsCalendarDayInUTC(t *testing.T) {
	d, err := availability.ParseLocalDate(tuesday, brt)
	require.NoError(t, err)
	assert.Equal(t, 20, d.UTC().Day())
	assert.Equal(t, tuesday, d.UTC().Format("2006-01-02"))
}

func TestDayOfWeek(t *testing.T) {
	tests := map[string]int{
		"2026-10-18": 0,
		"2026-10-19": 1,
		tuesday:      2,
		"2026-10-24": 6,
	}
	for date, want := range tests {
		got, err := availability.DayOfWeek(date)
		require.NoError(t, err)
		assert.Equal(t, want, got, date)
	}

	_, err := availability.DayOfWeek("amanhã")
	assert.True(t, availability.Is(err, availability.KindInvalidDateFormat))
}

func TestParseSlotTime(t *testing.T) {
	m, err := availability.ParseSlotTime("12:30")
	require.NoError(t, err)
	assert.Equal(t, 750, m)
	assert.Equal(t, "12:30", availability.FormatSlotTime(m))
	assert.Equal(t, "00:05", availability.FormatSlotTime(5))

	_, err = availability.ParseSlotTime("25:00")
	assert.Equal(t, availability.KindInvalidTimeFormat, availability.KindOf(err))
}

func TestOccupationPeriod(t *testing.T) {
	p, err := availability.OccupationPeriod("12:30", 90, 10)
	require.NoError(t, err)
	assert.Equal(t, availability.Period{Start: 740, End: 850}, p)

	p, err = availability.OccupationPeriod("00:05", 60, 15)
	require.NoError(t, err)
	assert.Equal(t, -10, p.Start, "start may be negative")

	p, err = availability.OccupationPeriod("23:30", 90, 15)
	require.NoError(t, err)
	assert.Equal(t, 1515, p.End, "end may pass midnight")
}

func TestPeriodsOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b availability.Period
		want bool
	}{
		{"disjoint", availability.Period{Start: 0, End: 10}, availability.Period{Start: 20, End: 30}, false},
		{"touching", availability.Period{Start: 0, End: 10}, availability.Period{Start: 10, End: 20}, false},
		{"partial", availability.Period{Start: 0, End: 15}, availability.Period{Start: 10, End: 20}, true},
		{"contained", availability.Period{Start: 0, End: 100}, availability.Period{Start: 10, End: 20}, true},
		{"identical", availability.Period{Start: 5, End: 6}, availability.Period{Start: 5, End: 6}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, availability.PeriodsOverlap(tt.a, tt.b))
			assert.Equal(t, tt.want, availability.PeriodsOverlap(tt.b, tt.a), "overlap must be symmetric")
		})
	}
}
