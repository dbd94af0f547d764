package comparison

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

const NoMatchingDataMessage = "No matching departments found between the two periods."

// CompareDepartments matches every before department with the first after department of the
// same trimmed name. Blank names, "-" and subtotal rows containing "Sum" are skipped, as are
// departments missing from after. Rows keep the order of before.
func CompareDepartments(before, after []DepartmentValue) []VarianceRow {
	rows := make([]VarianceRow, 0, len(before))
	if len(before) == 0 || len(after) == 0 {
		return rows
	}

	for _, b := range before {
		name := strings.TrimSpace(b.Name)
		if name == "" || name == "-" || strings.Contains(name, "Sum") {
			continue
		}
		a, found := findDepartment(after, name)
		if !found {
			continue
		}
		beforePct := valueOrZero(b.FullyMetPct)
		afterPct := valueOrZero(a.FullyMetPct)
		rows = append(rows, VarianceRow{
			Department: name,
			Before:     beforePct,
			After:      afterPct,
			Variance:   afterPct - beforePct,
		})
	}
	return rows
}

func findDepartment(values []DepartmentValue, name string) (DepartmentValue, bool) {
	for _, v := range values {
		if strings.TrimSpace(v.Name) == name {
			return v, true
		}
	}
	return DepartmentValue{}, false
}

func valueOrZero(v *float64) float64 {
	if v == nil || math.IsNaN(*v) {
		return 0
	}
	return *v
}

// SortByVariance returns a copy of rows ordered by variance, largest first. Equal variances keep their order.
func SortByVariance(rows []VarianceRow) []VarianceRow {
	sorted := append([]VarianceRow{}, rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Variance > sorted[j].Variance
	})
	return sorted
}

func Distribution(summary Summary) []DistributionSlice {
	return []DistributionSlice{
		{Label: Improved.String(), Count: summary.Improved},
		{Label: Declined.String(), Count: summary.Declined},
		{Label: NoChange.String(), Count: summary.Unchanged},
	}
}

// ChartSeries builds the grouped before and after bars, one bar per row.
func ChartSeries(rows []VarianceRow, beforeYear, afterYear int) []Series {
	departments := make([]string, 0, len(rows))
	before := make([]float64, 0, len(rows))
	after := make([]float64, 0, len(rows))
	for _, r := range rows {
		departments = append(departments, r.Department)
		before = append(before, r.Before)
		after = append(after, r.After)
	}
	return []Series{
		{Name: PeriodLabel("Before", beforeYear), Departments: departments, Values: before},
		{Name: PeriodLabel("After", afterYear), Departments: append([]string{}, departments...), Values: after},
	}
}

func PeriodLabel(prefix string, year int) string {
	return fmt.Sprintf("%s (%d)", prefix, year)
}

// FormatChange renders a variance the way department cards show it, e.g. "+15.0%" or "-3.5%".
func FormatChange(variance float64) string {
	sign := ""
	if variance > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.1f%%", sign, variance)
}
