package comparison

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/perfdash/perfdash/internal/rest"
	"github.com/perfdash/perfdash/pkg/cases"
	log "github.com/sirupsen/logrus"
)

type VarianceRowDTO struct {
	Department string  `json:"department"`
	Before     float64 `json:"before"`
	After      float64 `json:"after"`
	Variance   float64 `json:"variance"`
	Status     string  `json:"status"`
	ChangeText string  `json:"changeText"`
}

type SummaryDTO struct {
	MeanBefore     float64          `json:"meanBefore"`
	MeanAfter      float64          `json:"meanAfter"`
	MeanChange     float64          `json:"meanChange"`
	MeanBeforeText string           `json:"meanBeforeText"`
	MeanAfterText  string           `json:"meanAfterText"`
	MeanChangeText string           `json:"meanChangeText"`
	Trend          string           `json:"trend"`
	Improved       int              `json:"improved"`
	Declined       int              `json:"declined"`
	Unchanged      int              `json:"unchanged"`
	Total          int              `json:"total"`
	TopImproved    []VarianceRowDTO `json:"topImproved"`
	TopDeclined    []VarianceRowDTO `json:"topDeclined"`
	HighPerformers []string         `json:"highPerformers"`
}

type SeriesDTO struct {
	Name        string    `json:"name"`
	Departments []string  `json:"departments"`
	Values      []float64 `json:"values"`
}

type DistributionSliceDTO struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type ComparisonDTO struct {
	CaseId         string                 `json:"caseId"`
	BeforeYear     int                    `json:"beforeYear"`
	AfterYear      int                    `json:"afterYear"`
	Years          []int                  `json:"years"`
	Rows           []VarianceRowDTO       `json:"rows"`
	Chart          []SeriesDTO            `json:"chart"`
	Distribution   []DistributionSliceDTO `json:"distribution"`
	Summary        SummaryDTO             `json:"summary"`
	SummaryPanel   string                 `json:"summaryPanel"`
	Narrative      string                 `json:"narrative,omitempty"`
	NarrativeHTML  string                 `json:"narrativeHtml,omitempty"`
	NoMatchingData bool                   `json:"noMatchingData"`
	Message        string                 `json:"message,omitempty"`
}

type Handler struct {
	service       Service
	tableRenderer TableRenderer
}

func NewHandler(service Service, tableRenderer TableRenderer) *Handler {
	return &Handler{service: service, tableRenderer: tableRenderer}
}

// Compare godoc
// @Summary Compare two periods of a case
// @Description Matches departments of the before and after years and reports their variance.
// @Description Send Accept: text/csv to get the variance table as CSV.
// @Tags Comparison
// @Produce json
// @Param caseId path string true "Case ID"
// @Param before query int false "Before year, defaults to the earliest year"
// @Param after query int false "After year, defaults to the latest year"
// @Param summary query string false "shown or hidden"
// @Success 200 {object} ComparisonDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Failure 422 {object} rest.ErrorResponse
// @Router /api/case/{caseId}/comparison [get]
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	caseId := mux.Vars(r)["caseId"]
	log.Debugf("Comparing periods of case %s", caseId)

	query := r.URL.Query()
	before, err := optionalYear(query.Get("before"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid before year", err.Error())
		return
	}
	after, err := optionalYear(query.Get("after"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid after year", err.Error())
		return
	}
	panel, err := ParseSummaryPanel(query.Get("summary"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid summary option", err.Error())
		return
	}

	comparison, err := h.service.Compare(r.Context(), caseId, before, after, panel)
	if err != nil {
		switch {
		case errors.Is(err, cases.ErrCaseNotFound):
			rest.WriteError(w, http.StatusNotFound, "Case not found", caseId)
		case errors.Is(err, ErrNotEnoughPeriods):
			rest.WriteError(w, http.StatusUnprocessableEntity,
				"Need at least 2 years of data to compare. Please upload additional data.", err.Error())
		case errors.Is(err, ErrSamePeriod):
			rest.WriteError(w, http.StatusBadRequest, "Please select different periods for comparison.", "")
		case errors.Is(err, ErrPeriodNotFound):
			rest.WriteError(w, http.StatusNotFound, "Period not found", err.Error())
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if rest.WantsCSV(r) {
		csv, err := h.tableRenderer.RenderTable(comparison)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		rest.WriteCSV(w, fmt.Sprintf("%s-%d-%d.csv", caseId, comparison.BeforeYear, comparison.AfterYear), csv)
		return
	}

	rest.WriteJSON(w, http.StatusOK, ComparisonToDTO(comparison))
}

func optionalYear(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	year, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("year must be a number, got %q", value)
	}
	return year, nil
}

func ComparisonToDTO(c Comparison) ComparisonDTO {
	chart := make([]SeriesDTO, 0, len(c.Chart))
	for _, s := range c.Chart {
		chart = append(chart, SeriesDTO{Name: s.Name, Departments: s.Departments, Values: s.Values})
	}
	distribution := make([]DistributionSliceDTO, 0, len(c.Distribution))
	for _, d := range c.Distribution {
		distribution = append(distribution, DistributionSliceDTO{Label: d.Label, Count: d.Count})
	}

	dto := ComparisonDTO{
		CaseId:         c.CaseId,
		BeforeYear:     c.BeforeYear,
		AfterYear:      c.AfterYear,
		Years:          c.Years,
		Rows:           rowsToDTO(c.Rows),
		Chart:          chart,
		Distribution:   distribution,
		Summary:        summaryToDTO(c.Summary),
		SummaryPanel:   c.Panel.String(),
		Narrative:      c.Narrative,
		NarrativeHTML:  c.NarrativeHTML,
		NoMatchingData: c.NoMatchingData,
	}
	if c.NoMatchingData {
		dto.Message = NoMatchingDataMessage
	}
	return dto
}

func summaryToDTO(s Summary) SummaryDTO {
	return SummaryDTO{
		MeanBefore:     s.MeanBefore,
		MeanAfter:      s.MeanAfter,
		MeanChange:     s.MeanChange,
		MeanBeforeText: fmt.Sprintf("%.1f%%", s.MeanBefore),
		MeanAfterText:  fmt.Sprintf("%.1f%%", s.MeanAfter),
		MeanChangeText: fmt.Sprintf("%+.1f%%", s.MeanChange),
		Trend:          s.Trend().String(),
		Improved:       s.Improved,
		Declined:       s.Declined,
		Unchanged:      s.Unchanged,
		Total:          s.Total,
		TopImproved:    rowsToDTO(s.TopImproved),
		TopDeclined:    rowsToDTO(s.TopDeclined),
		HighPerformers: s.HighPerformers,
	}
}

func rowsToDTO(rows []VarianceRow) []VarianceRowDTO {
	dtos := make([]VarianceRowDTO, 0, len(rows))
	for _, r := range rows {
		dtos = append(dtos, VarianceRowDTO{
			Department: r.Department,
			Before:     r.Before,
			After:      r.After,
			Variance:   r.Variance,
			Status:     StatusOf(r.Variance).String(),
			ChangeText: FormatChange(r.Variance),
		})
	}
	return dtos
}
