package comparison

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func pct(v float64) *float64 {
	return &v
}

func TestCompareDepartments_FiltersSubtotalRows(t *testing.T) {
	// given
	before := []DepartmentValue{{"Cardiology", pct(70)}, {"-", pct(0)}, {"Sum Total", pct(100)}}
	after := []DepartmentValue{{"Cardiology", pct(85)}}

	// when
	rows := CompareDepartments(before, after)

	// then
	assert.Equal(t, []VarianceRow{{Department: "Cardiology", Before: 70, After: 85, Variance: 15}}, rows)
}

func TestCompareDepartments_MatchingRules(t *testing.T) {
	// given
	before := []DepartmentValue{
		{"  Radiology ", pct(60)},
		{"Oncology", pct(50)},
		{"   ", pct(10)},
		{"cardiology", pct(70)},
		{"Checksum Unit", pct(40)},
		{"Neurology", nil},
		{"ICU", pct(math.NaN())},
	}
	after := []DepartmentValue{
		{"Radiology", pct(65)},
		{"Radiology", pct(99)},
		{"Cardiology", pct(85)},
		{"Checksum Unit", pct(45)},
		{"Neurology", pct(30)},
		{" ICU", pct(20)},
		{"Pediatrics", pct(80)},
	}

	// when
	rows := CompareDepartments(before, after)

	// then
	assert.Equal(t, []VarianceRow{
		{Department: "Radiology", Before: 60, After: 65, Variance: 5},
		{Department: "Checksum Unit", Before: 40, After: 45, Variance: 5},
		{Department: "Neurology", Before: 0, After: 30, Variance: 30},
		{Department: "ICU", Before: 0, After: 20, Variance: 20},
	}, rows)
}

func TestCompareDepartments_EmptyInput(t *testing.T) {
	some := []DepartmentValue{{"A", pct(1)}}

	assert.Empty(t, CompareDepartments(nil, some))
	assert.Empty(t, CompareDepartments(some, []DepartmentValue{}))
	assert.NotNil(t, CompareDepartments(nil, nil))
}

func TestSortByVariance_IsStableAndDoesNotModifyInput(t *testing.T) {
	rows := []VarianceRow{
		{Department: "A", Variance: 1},
		{Department: "B", Variance: 5},
		{Department: "C", Variance: 1},
		{Department: "D", Variance: -2},
	}

	sorted := SortByVariance(rows)

	assert.Equal(t, []string{"B", "A", "C", "D"}, departments(sorted))
	assert.Equal(t, []string{"A", "B", "C", "D"}, departments(rows))
}

func TestChartSeries_KeepsRowOrder(t *testing.T) {
	rows := []VarianceRow{{Department: "A", Before: 10, After: 20}, {Department: "B", Before: 30, After: 25}}

	series := ChartSeries(rows, 2023, 2024)

	assert.Len(t, series, 2)
	assert.Equal(t, "Before (2023)", series[0].Name)
	assert.Equal(t, []string{"A", "B"}, series[0].Departments)
	assert.Equal(t, []float64{10, 30}, series[0].Values)
	assert.Equal(t, "After (2024)", series[1].Name)
	assert.Equal(t, []float64{20, 25}, series[1].Values)
}

func TestFormatChange(t *testing.T) {
	assert.Equal(t, "+15.0%", FormatChange(15))
	assert.Equal(t, "-3.5%", FormatChange(-3.5))
	assert.Equal(t, "0.0%", FormatChange(0))
}

func TestParseSummaryPanel(t *testing.T) {
	panel, err := ParseSummaryPanel("shown")
	assert.NoError(t, err)
	assert.Equal(t, Shown, panel)

	panel, err = ParseSummaryPanel("")
	assert.NoError(t, err)
	assert.Equal(t, Hidden, panel)

	_, err = ParseSummaryPanel("maybe")
	assert.ErrorIs(t, err, ErrInvalidSummaryPanel)
}

func departments(rows []VarianceRow) []string {
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.Department)
	}
	return names
}
