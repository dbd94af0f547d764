package evm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerateCurve_Shape(t *testing.T) {
	// given a plan lasting exactly 99 days so every sample falls on a whole day
	start := date(2023, time.January, 1)
	finish := date(2023, time.April, 10)

	// when
	curve, err := GenerateCurve(1000, start, finish, date(2023, time.February, 1), 300, 350)

	// then
	require.NoError(t, err)
	require.Len(t, curve.Points, CurveSamples)
	assert.Equal(t, 99, curve.TotalDays)
	assert.Equal(t, 31, curve.ElapsedDays)
	assert.Equal(t, 300.0, curve.EarnedValue)
	assert.Equal(t, 350.0, curve.ActualCost)
	assert.Equal(t, 1000.0, curve.BAC)

	for i, p := range curve.Points {
		assert.InDelta(t, float64(i), p.Day, 1e-9)
	}
	assert.Equal(t, 0.0, curve.Points[0].PlannedValue)
	assert.InDelta(t, 1000, curve.Points[CurveSamples-1].PlannedValue, 1e-9)
	for i := 1; i < len(curve.Points); i++ {
		assert.GreaterOrEqual(t, curve.Points[i].PlannedValue, curve.Points[i-1].PlannedValue)
	}
}

func TestGenerateCurve_FollowsBetaDistribution(t *testing.T) {
	start := date(2024, time.January, 1)
	finish := date(2024, time.December, 31)

	curve, err := GenerateCurve(200000, start, finish, start, 0, 0)

	require.NoError(t, err)
	for _, p := range curve.Points {
		tNorm := p.Day / float64(curve.TotalDays)
		assert.InDelta(t, 200000*(3*tNorm*tNorm-2*tNorm*tNorm*tNorm), p.PlannedValue, 1e-6)
	}
}

func TestGenerateCurve_DoesNotClampElapsedDays(t *testing.T) {
	start := date(2023, time.January, 1)
	finish := date(2023, time.December, 31)

	before, err := GenerateCurve(1000, start, finish, date(2022, time.December, 22), 0, 0)
	require.NoError(t, err)
	after, err := GenerateCurve(1000, start, finish, date(2024, time.January, 10), 0, 0)
	require.NoError(t, err)

	assert.Equal(t, -10, before.ElapsedDays)
	assert.Equal(t, 374, after.ElapsedDays)
}

func TestGenerateCurve_InvalidRange(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		finish time.Time
	}{
		{"finish before start", date(2023, time.June, 1), date(2023, time.January, 1)},
		{"same day", date(2023, time.June, 1), date(2023, time.June, 1)},
		{"same day different time", date(2023, time.June, 1), date(2023, time.June, 1).Add(20 * time.Hour)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			curve, err := GenerateCurve(1000, tt.start, tt.finish, tt.start, 0, 0)
			assert.ErrorIs(t, err, ErrInvalidRange)
			assert.Empty(t, curve.Points)
		})
	}
}

func TestCumulativeFraction(t *testing.T) {
	assert.Equal(t, 0.0, CumulativeFraction(0))
	assert.Equal(t, 0.5, CumulativeFraction(0.5))
	assert.Equal(t, 1.0, CumulativeFraction(1))
}

func TestWholeDaysBetween_IgnoresTimeOfDay(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*60*60)
	a := time.Date(2023, time.March, 25, 23, 30, 0, 0, zone)
	b := time.Date(2023, time.March, 27, 0, 15, 0, 0, zone)

	assert.Equal(t, 2, WholeDaysBetween(a, b))
	assert.Equal(t, -2, WholeDaysBetween(b, a))
}
