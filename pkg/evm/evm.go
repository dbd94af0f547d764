package evm

import "time"

// Input is the status of a project at its data date.
type Input struct {
	// BAC is the budget at completion.
	BAC float64
	// PV, EV and AC are planned value, earned value and actual cost at the data date.
	PV         float64
	EV         float64
	AC         float64
	PlanStart  time.Time
	PlanFinish time.Time
	DataDate   time.Time
}

// Metrics holds every value derived from BAC, PV, EV and AC. Ratios default to 0 when their
// denominator is exactly 0.
type Metrics struct {
	SV          float64
	CV          float64
	SPI         float64
	CPI         float64
	EACTypical  float64
	EACAtypical float64
	ETCTypical  float64
	ETCAtypical float64
	VAC         float64
	TCPIBAC     float64
	TCPIEAC     float64
}

type CurvePoint struct {
	Day          float64
	PlannedValue float64
}

// Curve is the planned value baseline sampled over the plan duration, plus the markers
// plotted at the data date.
type Curve struct {
	Points      []CurvePoint
	TotalDays   int
	ElapsedDays int
	BAC         float64
	EarnedValue float64
	ActualCost  float64
}

type ForecastRow struct {
	Scenario string
	EAC      float64
	ETC      float64
	TCPI     float64
}

type Warning struct {
	Code    string
	Message string
}

type Interpretation struct {
	OverBudget     bool
	BehindSchedule bool
}

type Report struct {
	Input          Input
	Metrics        Metrics
	Curve          Curve
	Status         Status
	Forecast       []ForecastRow
	Interpretation Interpretation
	Warnings       []Warning
}
