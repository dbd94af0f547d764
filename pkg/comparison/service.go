package comparison

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/perfdash/perfdash/pkg/department_data"
	log "github.com/sirupsen/logrus"
)

var ErrNotEnoughPeriods = errors.New("need at least 2 years of data to compare")
var ErrSamePeriod = errors.New("please select different periods for comparison")
var ErrPeriodNotFound = errors.New("no data uploaded for the selected period")

// DataReader is the part of the department data service a comparison reads from.
type DataReader interface {
	GetYear(ctx context.Context, caseId string, year int) (department_data.YearData, error)
	ListYears(ctx context.Context, caseId string) ([]int, error)
}

type Service interface {
	// Compare compares two years of a case. A zero before or after selects the earliest or latest year.
	Compare(ctx context.Context, caseId string, before, after int, panel SummaryPanel) (Comparison, error)
}

type ServiceImpl struct {
	data       DataReader
	thresholds Thresholds
}

func NewService(data DataReader, thresholds Thresholds) *ServiceImpl {
	return &ServiceImpl{data: data, thresholds: thresholds}
}

func (s *ServiceImpl) Compare(ctx context.Context, caseId string, before, after int, panel SummaryPanel) (Comparison, error) {
	years, err := s.data.ListYears(ctx, caseId)
	if err != nil {
		return Comparison{}, err
	}
	if len(years) < 2 {
		return Comparison{}, fmt.Errorf("%w: case %s has %d", ErrNotEnoughPeriods, caseId, len(years))
	}
	if before == 0 {
		before = years[0]
	}
	if after == 0 {
		after = years[len(years)-1]
	}
	if before == after {
		return Comparison{}, ErrSamePeriod
	}
	for _, year := range []int{before, after} {
		if !slices.Contains(years, year) {
			return Comparison{}, fmt.Errorf("%w: %d", ErrPeriodNotFound, year)
		}
	}

	beforeData, err := s.data.GetYear(ctx, caseId, before)
	if err != nil {
		return Comparison{}, err
	}
	afterData, err := s.data.GetYear(ctx, caseId, after)
	if err != nil {
		return Comparison{}, err
	}

	rows := CompareDepartments(toDepartmentValues(beforeData.Records), toDepartmentValues(afterData.Records))
	summary := Summarize(rows, s.thresholds)
	result := Comparison{
		CaseId:         caseId,
		BeforeYear:     before,
		AfterYear:      after,
		Years:          years,
		Rows:           SortByVariance(rows),
		Chart:          ChartSeries(rows, before, after),
		Distribution:   Distribution(summary),
		Summary:        summary,
		Panel:          panel,
		NoMatchingData: len(rows) == 0,
	}
	if result.NoMatchingData {
		log.Warnf("case %s: no matching departments between %d and %d", caseId, before, after)
	}

	if panel == Shown {
		result.Narrative = ExecutiveSummary(summary)
		html, err := RenderHTML(result.Narrative)
		if err != nil {
			return Comparison{}, err
		}
		result.NarrativeHTML = html
	}
	return result, nil
}

func toDepartmentValues(records []department_data.Record) []DepartmentValue {
	values := make([]DepartmentValue, 0, len(records))
	for _, rec := range records {
		pct := rec.FullyMetPct
		values = append(values, DepartmentValue{Name: rec.Department, FullyMetPct: &pct})
	}
	return values
}
