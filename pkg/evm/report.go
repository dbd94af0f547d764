package evm

import "time"

const WarnDataDateOutOfRange = "data_date_out_of_range"

// Validate rejects inputs whose plan range is empty or inverted. A data date outside the
// plan range is reported as a warning only.
func Validate(in Input) ([]Warning, error) {
	if WholeDaysBetween(in.PlanStart, in.PlanFinish) <= 0 {
		return nil, ErrInvalidRange
	}
	var warnings []Warning
	if WholeDaysBetween(in.PlanStart, in.DataDate) < 0 || WholeDaysBetween(in.DataDate, in.PlanFinish) < 0 {
		warnings = append(warnings, Warning{
			Code:    WarnDataDateOutOfRange,
			Message: "Data Date is outside the planned project duration.",
		})
	}
	return warnings, nil
}

// Forecast pairs the typical estimate with TCPI against EAC and the atypical estimate with
// TCPI against BAC.
func Forecast(m Metrics) []ForecastRow {
	return []ForecastRow{
		{Scenario: "Typical (Trends Continue)", EAC: m.EACTypical, ETC: m.ETCTypical, TCPI: m.TCPIEAC},
		{Scenario: "Atypical (Return to Plan)", EAC: m.EACAtypical, ETC: m.ETCAtypical, TCPI: m.TCPIBAC},
	}
}

func Interpret(in Input) Interpretation {
	return Interpretation{
		OverBudget:     in.AC > in.EV,
		BehindSchedule: in.EV < in.PV,
	}
}

func (i Interpretation) BudgetText() string {
	if i.OverBudget {
		return "Over Budget"
	}
	return "Under Budget"
}

func (i Interpretation) ScheduleText() string {
	if i.BehindSchedule {
		return "Behind Schedule"
	}
	return "Ahead of Schedule"
}

// BuildReport validates the input and computes metrics, baseline curve, status and forecast.
func BuildReport(in Input) (Report, error) {
	warnings, err := Validate(in)
	if err != nil {
		return Report{}, err
	}

	metrics := ComputeMetrics(in.BAC, in.PV, in.EV, in.AC)
	curve, err := GenerateCurve(in.BAC, in.PlanStart, in.PlanFinish, in.DataDate, in.EV, in.AC)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Input:          in,
		Metrics:        metrics,
		Curve:          curve,
		Status:         Classify(metrics),
		Forecast:       Forecast(metrics),
		Interpretation: Interpret(in),
		Warnings:       warnings,
	}, nil
}

// DefaultInput is the example project the calculator starts with.
func DefaultInput() Input {
	return Input{
		BAC:        100000,
		PV:         50000,
		EV:         40000,
		AC:         45000,
		PlanStart:  time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
		PlanFinish: time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC),
		DataDate:   time.Date(2023, time.June, 30, 0, 0, 0, 0, time.UTC),
	}
}
