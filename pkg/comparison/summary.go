package comparison

import "sort"

// Summarize aggregates variance rows. For empty input all figures are zero.
func Summarize(rows []VarianceRow, thresholds Thresholds) Summary {
	summary := Summary{
		Total:          len(rows),
		TopImproved:    []VarianceRow{},
		TopDeclined:    []VarianceRow{},
		HighPerformers: []string{},
		Thresholds:     thresholds,
	}
	if len(rows) == 0 {
		return summary
	}

	var sumBefore, sumAfter float64
	improved := make([]VarianceRow, 0, len(rows))
	declined := make([]VarianceRow, 0, len(rows))
	for _, r := range rows {
		sumBefore += r.Before
		sumAfter += r.After
		switch StatusOf(r.Variance) {
		case Improved:
			improved = append(improved, r)
		case Declined:
			declined = append(declined, r)
		default:
			summary.Unchanged++
		}
		if r.After >= thresholds.HighPerformer {
			summary.HighPerformers = append(summary.HighPerformers, r.Department)
		}
	}
	summary.Improved = len(improved)
	summary.Declined = len(declined)
	summary.MeanBefore = sumBefore / float64(len(rows))
	summary.MeanAfter = sumAfter / float64(len(rows))
	summary.MeanChange = summary.MeanAfter - summary.MeanBefore

	sort.SliceStable(improved, func(i, j int) bool { return improved[i].Variance > improved[j].Variance })
	sort.SliceStable(declined, func(i, j int) bool { return declined[i].Variance < declined[j].Variance })
	summary.TopImproved = head(improved, thresholds.TopN)
	summary.TopDeclined = head(declined, thresholds.TopN)
	return summary
}

func head(rows []VarianceRow, n int) []VarianceRow {
	if n < 0 {
		n = 0
	}
	if len(rows) > n {
		rows = rows[:n]
	}
	return append([]VarianceRow{}, rows...)
}
