package evm

type Status int

const (
	AheadUnderBudget Status = iota
	BehindUnderBudget
	AheadOverBudget
	BehindOverBudget
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Classify places the project in one of four quadrants using SPI >= 1 for schedule and
// CPI >= 1 for cost.
func Classify(m Metrics) Status {
	onSchedule := m.SPI >= 1
	onBudget := m.CPI >= 1
	switch {
	case onSchedule && onBudget:
		return AheadUnderBudget
	case !onSchedule && onBudget:
		return BehindUnderBudget
	case onSchedule && !onBudget:
		return AheadOverBudget
	default:
		return BehindOverBudget
	}
}

func (s Status) String() string {
	switch s {
	case AheadUnderBudget:
		return "ahead_under_budget"
	case BehindUnderBudget:
		return "behind_under_budget"
	case AheadOverBudget:
		return "ahead_over_budget"
	default:
		return "behind_over_budget"
	}
}

func (s Status) Message() string {
	switch s {
	case AheadUnderBudget:
		return "Project is Ahead of Schedule and Under Budget."
	case BehindUnderBudget:
		return "Project is Behind Schedule but Under Budget."
	case AheadOverBudget:
		return "Project is Ahead of Schedule but Over Budget."
	default:
		return "Project is Behind Schedule and Over Budget."
	}
}

func (s Status) Severity() Severity {
	switch s {
	case AheadUnderBudget:
		return SeveritySuccess
	case BehindOverBudget:
		return SeverityError
	default:
		return SeverityWarning
	}
}
