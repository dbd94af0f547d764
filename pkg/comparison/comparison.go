package comparison

import (
	"errors"
	"fmt"
	"strings"
)

// DepartmentValue is a department name with its fully met percentage; nil means missing.
type DepartmentValue struct {
	Name        string
	FullyMetPct *float64
}

type VarianceRow struct {
	Department string
	Before     float64
	After      float64
	Variance   float64
}

type RowStatus int

const (
	NoChange RowStatus = iota
	Improved
	Declined
)

func StatusOf(variance float64) RowStatus {
	switch {
	case variance > 0:
		return Improved
	case variance < 0:
		return Declined
	default:
		return NoChange
	}
}

func (s RowStatus) String() string {
	switch s {
	case Improved:
		return "Improved"
	case Declined:
		return "Declined"
	default:
		return "No Change"
	}
}

type Trend int

const (
	Improvement Trend = iota
	Decline
)

// TrendOf classifies an overall change; no change counts as an improvement.
func TrendOf(change float64) Trend {
	if change >= 0 {
		return Improvement
	}
	return Decline
}

func (t Trend) String() string {
	if t == Decline {
		return "Decline"
	}
	return "Improvement"
}

// SummaryPanel is the caller-held visibility of the executive summary.
type SummaryPanel int

const (
	Hidden SummaryPanel = iota
	Shown
)

var ErrInvalidSummaryPanel = errors.New("summary must be either shown or hidden")

func ParseSummaryPanel(value string) (SummaryPanel, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "hidden":
		return Hidden, nil
	case "shown":
		return Shown, nil
	default:
		return Hidden, fmt.Errorf("%w: got %q", ErrInvalidSummaryPanel, value)
	}
}

func (p SummaryPanel) String() string {
	if p == Shown {
		return "shown"
	}
	return "hidden"
}

type Thresholds struct {
	// HighPerformer is the inclusive after percentage of a high performing department.
	HighPerformer float64
	TopN          int
}

func DefaultThresholds() Thresholds {
	return Thresholds{HighPerformer: 90, TopN: 3}
}

type Summary struct {
	MeanBefore     float64
	MeanAfter      float64
	MeanChange     float64
	Improved       int
	Declined       int
	Unchanged      int
	Total          int
	TopImproved    []VarianceRow
	TopDeclined    []VarianceRow
	HighPerformers []string
	Thresholds     Thresholds
}

func (s Summary) Trend() Trend {
	return TrendOf(s.MeanChange)
}

type DistributionSlice struct {
	Label string
	Count int
}

type Series struct {
	Name        string
	Departments []string
	Values      []float64
}

// Comparison is the full result of comparing two periods of one case.
type Comparison struct {
	CaseId     string
	BeforeYear int
	AfterYear  int
	Years      []int
	// Rows are in display order, largest variance first.
	Rows           []VarianceRow
	Chart          []Series
	Distribution   []DistributionSlice
	Summary        Summary
	Panel          SummaryPanel
	Narrative      string
	NarrativeHTML  string
	NoMatchingData bool
}
