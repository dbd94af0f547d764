package evm

import (
	"errors"
	"time"
)

// CurveSamples is the number of points in a generated baseline.
const CurveSamples = 100

var ErrInvalidRange = errors.New("plan finish date must be after plan start date")

// GenerateCurve samples the cumulative planned value between start and finish using the
// Beta(2,2) distribution CDF 3t^2 - 2t^3. The elapsed day count of the data date is not
// clamped to the plan duration.
func GenerateCurve(bac float64, start, finish, dataDate time.Time, ev, ac float64) (Curve, error) {
	totalDays := WholeDaysBetween(start, finish)
	if totalDays <= 0 {
		return Curve{}, ErrInvalidRange
	}

	duration := float64(totalDays)
	points := make([]CurvePoint, CurveSamples)
	for i := range points {
		x := float64(i) * duration / float64(CurveSamples-1)
		points[i] = CurvePoint{
			Day:          x,
			PlannedValue: bac * CumulativeFraction(x/duration),
		}
	}

	return Curve{
		Points:      points,
		TotalDays:   totalDays,
		ElapsedDays: WholeDaysBetween(start, dataDate),
		BAC:         bac,
		EarnedValue: ev,
		ActualCost:  ac,
	}, nil
}

// CumulativeFraction is the share of the budget planned to be earned at normalized time t.
func CumulativeFraction(t float64) float64 {
	return 3*t*t - 2*t*t*t
}

// WholeDaysBetween counts calendar days from a to b; the time of day and location are ignored.
func WholeDaysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da) / (24 * time.Hour))
}
