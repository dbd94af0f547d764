package evm

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type CurveRenderer interface {
	RenderCurve(curve Curve) (string, error)
}

type CsvCurveRendererImpl struct {
}

func NewCsvCurveRenderer() *CsvCurveRendererImpl {
	return &CsvCurveRendererImpl{}
}

// RenderCurve writes one row per sample followed by the data date markers.
func (r *CsvCurveRendererImpl) RenderCurve(curve Curve) (string, error) {
	data := make([][]string, 0, len(curve.Points)+3)
	data = append(data, []string{"Day", "Planned Value", "Earned Value", "Actual Cost"})
	for _, p := range curve.Points {
		data = append(data, []string{formatNumber(p.Day), formatNumber(p.PlannedValue), "", ""})
	}
	elapsed := strconv.Itoa(curve.ElapsedDays)
	data = append(data, []string{elapsed, "", formatNumber(curve.EarnedValue), formatNumber(curve.ActualCost)})

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

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
