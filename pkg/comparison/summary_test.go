package comparison

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []VarianceRow {
	return []VarianceRow{
		{Department: "Cardiology", Before: 70, After: 85, Variance: 15},
		{Department: "Radiology", Before: 80, After: 75, Variance: -5},
		{Department: "Oncology", Before: 90, After: 92, Variance: 2},
		{Department: "Neurology", Before: 60, After: 60, Variance: 0},
	}
}

func TestSummarize(t *testing.T) {
	// when
	summary := Summarize(sampleRows(), DefaultThresholds())

	// then
	assert.Equal(t, 75.0, summary.MeanBefore)
	assert.Equal(t, 78.0, summary.MeanAfter)
	assert.Equal(t, 3.0, summary.MeanChange)
	assert.Equal(t, Improvement, summary.Trend())
	assert.Equal(t, 2, summary.Improved)
	assert.Equal(t, 1, summary.Declined)
	assert.Equal(t, 1, summary.Unchanged)
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, []string{"Cardiology", "Oncology"}, departments(summary.TopImproved))
	assert.Equal(t, []string{"Radiology"}, departments(summary.TopDeclined))
	assert.Equal(t, []string{"Oncology"}, summary.HighPerformers)
}

func TestSummarize_TopNWithTies(t *testing.T) {
	// given
	rows := []VarianceRow{
		{Department: "A", Variance: 4},
		{Department: "B", Variance: 9},
		{Department: "C", Variance: 4},
		{Department: "D", Variance: 4},
		{Department: "E", Variance: -1},
		{Department: "F", Variance: -7},
		{Department: "G", Variance: -1},
		{Department: "H", Variance: -1},
	}

	// when
	summary := Summarize(rows, DefaultThresholds())

	// then
	assert.Equal(t, []string{"B", "A", "C"}, departments(summary.TopImproved))
	assert.Equal(t, []string{"F", "E", "G"}, departments(summary.TopDeclined))
}

func TestSummarize_HighPerformerThresholdIsInclusiveAndConfigurable(t *testing.T) {
	rows := []VarianceRow{
		{Department: "A", After: 90},
		{Department: "B", After: 89.99},
		{Department: "C", After: 95},
	}

	assert.Equal(t, []string{"A", "C"}, Summarize(rows, DefaultThresholds()).HighPerformers)
	assert.Equal(t, []string{"C"}, Summarize(rows, Thresholds{HighPerformer: 95, TopN: 1}).HighPerformers)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil, DefaultThresholds())

	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, 0.0, summary.MeanBefore)
	assert.NotNil(t, summary.TopImproved)
	assert.NotNil(t, summary.HighPerformers)
}

func TestDistribution(t *testing.T) {
	summary := Summarize(sampleRows(), DefaultThresholds())

	slices := Distribution(summary)

	require.Len(t, slices, 3)
	assert.Equal(t, DistributionSlice{Label: "Improved", Count: 2}, slices[0])
	assert.Equal(t, DistributionSlice{Label: "Declined", Count: 1}, slices[1])
	assert.Equal(t, DistributionSlice{Label: "No Change", Count: 1}, slices[2])
}
