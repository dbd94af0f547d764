package comparison

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type TableRenderer interface {
	RenderTable(comparison Comparison) (string, error)
}

type CsvTableRendererImpl struct {
}

func NewCsvTableRenderer() *CsvTableRendererImpl {
	return &CsvTableRendererImpl{}
}

// RenderTable writes the variance table in display order.
func (r *CsvTableRendererImpl) RenderTable(comparison Comparison) (string, error) {
	data := make([][]string, 0, len(comparison.Rows)+1)
	data = append(data, []string{
		"Department",
		PeriodLabel("Before", comparison.BeforeYear) + " %",
		PeriodLabel("After", comparison.AfterYear) + " %",
		"Change %",
		"Status",
	})
	for _, row := range comparison.Rows {
		data = append(data, []string{
			row.Department,
			formatPct(row.Before),
			formatPct(row.After),
			formatPct(row.Variance),
			StatusOf(row.Variance).String(),
		})
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
