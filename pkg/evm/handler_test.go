package evm

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/perfdash/perfdash/internal/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postReport(t *testing.T, body any, accept string) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/evm/report", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	w := httptest.NewRecorder()
	NewHandler(NewCsvCurveRenderer()).CalculateReport(w, req)
	return w
}

func TestHandler_CalculateReport(t *testing.T) {
	// when
	w := postReport(t, InputToDTO(DefaultInput()), "")

	// then
	require.Equal(t, http.StatusOK, w.Code)
	var report ReportDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&report))
	assert.Equal(t, -10000.0, report.Metrics.SV)
	assert.InDelta(t, 112500, report.Metrics.EACTypical, 1e-6)
	assert.Len(t, report.Curve.Days, CurveSamples)
	assert.Len(t, report.Curve.PlannedValues, CurveSamples)
	assert.Equal(t, 180, report.Curve.ElapsedDays)
	assert.Equal(t, "behind_over_budget", report.Status.Code)
	assert.Equal(t, SeverityError, report.Status.Severity)
	assert.Equal(t, "Over Budget", report.Interpretation.Budget)
	require.Len(t, report.Forecast, 2)
	assert.Equal(t, "$112,500", report.Forecast[0].EACText)
	assert.Equal(t, "0.89", report.Forecast[0].TCPIText)
	assert.Equal(t, "1.09", report.Forecast[1].TCPIText)
	assert.Empty(t, report.Warnings)

	labels := make(map[string]string)
	for _, card := range report.Cards {
		labels[card.Label] = card.Value
	}
	assert.Equal(t, "$-10,000", labels["Schedule Variance (SV)"])
	assert.Equal(t, "0.80", labels["SPI (Schedule Perf.)"])
	assert.Equal(t, "$-12,500", labels["VAC (at EAC)"])
}

func TestHandler_CalculateReport_WarnsAboutDataDate(t *testing.T) {
	dto := InputToDTO(DefaultInput())
	dto.DataDate = "2024-02-01"

	w := postReport(t, dto, "")

	require.Equal(t, http.StatusOK, w.Code)
	var report ReportDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&report))
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, WarnDataDateOutOfRange, report.Warnings[0].Code)
}

func TestHandler_CalculateReport_InvalidRange(t *testing.T) {
	dto := InputToDTO(DefaultInput())
	dto.PlanFinish = dto.PlanStart

	w := postReport(t, dto, "")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var errResponse rest.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&errResponse))
	assert.Contains(t, errResponse.Error, "Plan Finish Date must be after Plan Start Date")
}

func TestHandler_CalculateReport_BadInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(dto *InputDTO)
		details string
	}{
		{"negative amount", func(dto *InputDTO) { dto.AC = -1 }, "ac must not be negative"},
		{"malformed start", func(dto *InputDTO) { dto.PlanStart = "01/01/2023" }, "planStart"},
		{"malformed data date", func(dto *InputDTO) { dto.DataDate = "" }, "dataDate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dto := InputToDTO(DefaultInput())
			tt.mutate(&dto)

			w := postReport(t, dto, "")

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var errResponse rest.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&errResponse))
			assert.Contains(t, errResponse.Details, tt.details)
		})
	}
}

func TestHandler_CalculateReport_Csv(t *testing.T) {
	w := postReport(t, InputToDTO(DefaultInput()), "text/csv")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Len(t, lines, CurveSamples+2)
	assert.Equal(t, "Day,Planned Value,Earned Value,Actual Cost", lines[0])
	assert.Equal(t, "0.00,0.00,,", lines[1])
	assert.Equal(t, "364.00,100000.00,,", lines[CurveSamples])
	assert.Equal(t, "180,,40000.00,45000.00", lines[CurveSamples+1])
}

func TestHandler_GetDefaults(t *testing.T) {
	w := httptest.NewRecorder()

	NewHandler(NewCsvCurveRenderer()).GetDefaults(w, httptest.NewRequest(http.MethodGet, "/api/evm/defaults", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var dto InputDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
	assert.Equal(t, 100000.0, dto.BAC)
	assert.Equal(t, "2023-01-01", dto.PlanStart)
	assert.Equal(t, "2023-06-30", dto.DataDate)
}
