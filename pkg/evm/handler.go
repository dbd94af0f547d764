package evm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/perfdash/perfdash/internal/rest"
	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type InputDTO struct {
	BAC        float64 `json:"bac"`
	PV         float64 `json:"pv"`
	EV         float64 `json:"ev"`
	AC         float64 `json:"ac"`
	PlanStart  string  `json:"planStart"`
	PlanFinish string  `json:"planFinish"`
	DataDate   string  `json:"dataDate"`
}

type MetricsDTO struct {
	SV          float64 `json:"sv"`
	CV          float64 `json:"cv"`
	SPI         float64 `json:"spi"`
	CPI         float64 `json:"cpi"`
	EACTypical  float64 `json:"eacTypical"`
	EACAtypical float64 `json:"eacAtypical"`
	ETCTypical  float64 `json:"etcTypical"`
	ETCAtypical float64 `json:"etcAtypical"`
	VAC         float64 `json:"vac"`
	TCPIBAC     float64 `json:"tcpiBac"`
	TCPIEAC     float64 `json:"tcpiEac"`
}

type MetricCardDTO struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Target string `json:"target,omitempty"`
}

type CurveDTO struct {
	Days          []float64 `json:"days"`
	PlannedValues []float64 `json:"plannedValues"`
	TotalDays     int       `json:"totalDays"`
	ElapsedDays   int       `json:"elapsedDays"`
	BAC           float64   `json:"bac"`
	EarnedValue   float64   `json:"earnedValue"`
	ActualCost    float64   `json:"actualCost"`
}

type ForecastRowDTO struct {
	Scenario string  `json:"scenario"`
	EAC      float64 `json:"eac"`
	ETC      float64 `json:"etc"`
	TCPI     float64 `json:"tcpi"`
	EACText  string  `json:"eacText"`
	ETCText  string  `json:"etcText"`
	TCPIText string  `json:"tcpiText"`
}

type StatusDTO struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

type InterpretationDTO struct {
	Budget   string `json:"budget"`
	Schedule string `json:"schedule"`
}

type WarningDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ReportDTO struct {
	Metrics        MetricsDTO        `json:"metrics"`
	Cards          []MetricCardDTO   `json:"cards"`
	Curve          CurveDTO          `json:"curve"`
	Forecast       []ForecastRowDTO  `json:"forecast"`
	Status         StatusDTO         `json:"status"`
	Interpretation InterpretationDTO `json:"interpretation"`
	Warnings       []WarningDTO      `json:"warnings"`
}

type Handler struct {
	curveRenderer CurveRenderer
}

func NewHandler(curveRenderer CurveRenderer) *Handler {
	return &Handler{curveRenderer: curveRenderer}
}

// GetDefaults godoc
// @Summary Default calculator input
// @Tags EVM
// @Produce json
// @Success 200 {object} InputDTO
// @Router /api/evm/defaults [get]
func (handler *Handler) GetDefaults(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, InputToDTO(DefaultInput()))
}

// CalculateReport godoc
// @Summary Calculate earned value metrics
// @Description Computes metrics, forecast, status and the S-Curve baseline. Send Accept: text/csv to get the curve as CSV.
// @Tags EVM
// @Accept json
// @Produce json
// @Param input body InputDTO true "Project status"
// @Success 200 {object} ReportDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 422 {object} rest.ErrorResponse
// @Router /api/evm/report [post]
func (handler *Handler) CalculateReport(w http.ResponseWriter, r *http.Request) {
	log.Debug("Calculating EVM report")
	var inputDTO InputDTO
	if err := json.NewDecoder(r.Body).Decode(&inputDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	input, err := DTOToInput(inputDTO)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	report, err := BuildReport(input)
	if err != nil {
		if errors.Is(err, ErrInvalidRange) {
			rest.WriteError(w, http.StatusUnprocessableEntity, "Error: Plan Finish Date must be after Plan Start Date.", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if rest.WantsCSV(r) {
		csv, err := handler.curveRenderer.RenderCurve(report.Curve)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		rest.WriteCSV(w, "s-curve.csv", csv)
		return
	}

	rest.WriteJSON(w, http.StatusOK, ReportToDTO(report))
}

func DTOToInput(dto InputDTO) (Input, error) {
	amounts := []struct {
		name  string
		value float64
	}{{"bac", dto.BAC}, {"pv", dto.PV}, {"ev", dto.EV}, {"ac", dto.AC}}
	for _, a := range amounts {
		if a.value < 0 {
			return Input{}, fmt.Errorf("%s must not be negative", a.name)
		}
	}
	start, err := time.Parse(dateLayout, dto.PlanStart)
	if err != nil {
		return Input{}, fmt.Errorf("planStart must be in YYYY-MM-DD format")
	}
	finish, err := time.Parse(dateLayout, dto.PlanFinish)
	if err != nil {
		return Input{}, fmt.Errorf("planFinish must be in YYYY-MM-DD format")
	}
	dataDate, err := time.Parse(dateLayout, dto.DataDate)
	if err != nil {
		return Input{}, fmt.Errorf("dataDate must be in YYYY-MM-DD format")
	}
	return Input{
		BAC:        dto.BAC,
		PV:         dto.PV,
		EV:         dto.EV,
		AC:         dto.AC,
		PlanStart:  start,
		PlanFinish: finish,
		DataDate:   dataDate,
	}, nil
}

func InputToDTO(in Input) InputDTO {
	return InputDTO{
		BAC:        in.BAC,
		PV:         in.PV,
		EV:         in.EV,
		AC:         in.AC,
		PlanStart:  in.PlanStart.Format(dateLayout),
		PlanFinish: in.PlanFinish.Format(dateLayout),
		DataDate:   in.DataDate.Format(dateLayout),
	}
}

func ReportToDTO(report Report) ReportDTO {
	m := report.Metrics

	days := make([]float64, 0, len(report.Curve.Points))
	values := make([]float64, 0, len(report.Curve.Points))
	for _, p := range report.Curve.Points {
		days = append(days, p.Day)
		values = append(values, p.PlannedValue)
	}

	forecast := make([]ForecastRowDTO, 0, len(report.Forecast))
	for _, row := range report.Forecast {
		forecast = append(forecast, ForecastRowDTO{
			Scenario: row.Scenario,
			EAC:      row.EAC,
			ETC:      row.ETC,
			TCPI:     row.TCPI,
			EACText:  FormatCurrency(row.EAC),
			ETCText:  FormatCurrency(row.ETC),
			TCPIText: FormatRatio(row.TCPI),
		})
	}

	warnings := make([]WarningDTO, 0, len(report.Warnings))
	for _, w := range report.Warnings {
		warnings = append(warnings, WarningDTO{Code: w.Code, Message: w.Message})
	}

	return ReportDTO{
		Metrics: MetricsDTO{
			SV:          m.SV,
			CV:          m.CV,
			SPI:         m.SPI,
			CPI:         m.CPI,
			EACTypical:  m.EACTypical,
			EACAtypical: m.EACAtypical,
			ETCTypical:  m.ETCTypical,
			ETCAtypical: m.ETCAtypical,
			VAC:         m.VAC,
			TCPIBAC:     m.TCPIBAC,
			TCPIEAC:     m.TCPIEAC,
		},
		Cards: metricCards(m),
		Curve: CurveDTO{
			Days:          days,
			PlannedValues: values,
			TotalDays:     report.Curve.TotalDays,
			ElapsedDays:   report.Curve.ElapsedDays,
			BAC:           report.Curve.BAC,
			EarnedValue:   report.Curve.EarnedValue,
			ActualCost:    report.Curve.ActualCost,
		},
		Forecast: forecast,
		Status: StatusDTO{
			Code:     report.Status.String(),
			Message:  report.Status.Message(),
			Severity: report.Status.Severity(),
		},
		Interpretation: InterpretationDTO{
			Budget:   report.Interpretation.BudgetText(),
			Schedule: report.Interpretation.ScheduleText(),
		},
		Warnings: warnings,
	}
}

func metricCards(m Metrics) []MetricCardDTO {
	return []MetricCardDTO{
		{Label: "Schedule Variance (SV)", Value: FormatCurrency(m.SV), Target: "Target: > $0"},
		{Label: "SPI (Schedule Perf.)", Value: FormatRatio(m.SPI), Target: "Target: > 1.0"},
		{Label: "Cost Variance (CV)", Value: FormatCurrency(m.CV), Target: "Target: > $0"},
		{Label: "CPI (Cost Perf.)", Value: FormatRatio(m.CPI), Target: "Target: > 1.0"},
		{Label: "EAC (Typical)", Value: FormatCurrency(m.EACTypical)},
		{Label: "ETC (Typical)", Value: FormatCurrency(m.ETCTypical)},
		{Label: "VAC (at EAC)", Value: FormatCurrency(m.VAC)},
		{Label: "TCPI (for BAC)", Value: FormatRatio(m.TCPIBAC)},
	}
}
