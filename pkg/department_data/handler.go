package department_data

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/perfdash/perfdash/internal/rest"
	"github.com/perfdash/perfdash/pkg/cases"
	log "github.com/sirupsen/logrus"
)

type RecordDTO struct {
	Department      string  `json:"department"`
	FullyMet        int     `json:"fullyMet"`
	FullyMetPct     float64 `json:"fullyMetPct"`
	PartiallyMet    int     `json:"partiallyMet"`
	PartiallyMetPct float64 `json:"partiallyMetPct"`
	NotMet          int     `json:"notMet"`
	NotMetPct       float64 `json:"notMetPct"`
	NotApplicable   int     `json:"notApplicable"`
}

type YearDataDTO struct {
	CaseId  string      `json:"caseId"`
	Year    int         `json:"year"`
	Records []RecordDTO `json:"records"`
}

type YearSummaryDTO struct {
	Year        int `json:"year"`
	Departments int `json:"departments"`
	Removed     int `json:"removed"`
}

type Handler struct {
	service  Service
	maxBytes int64
}

func NewHandler(service Service, maxBytes int64) *Handler {
	return &Handler{service: service, maxBytes: maxBytes}
}

// Upload godoc
// @Summary Upload department data
// @Description Replaces the stored department data of every year in the uploaded .csv or .xlsx file.
// @Description Rows without a Year column use the year query parameter.
// @Tags DepartmentData
// @Accept multipart/form-data
// @Produce json
// @Param caseId path string true "Case ID"
// @Param year query int false "Year for rows without a Year column"
// @Param file formData file true "Department report"
// @Success 201 {array} YearSummaryDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Failure 413 {object} rest.ErrorResponse
// @Router /api/case/{caseId}/data [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	caseId := mux.Vars(r)["caseId"]
	log.Debugf("Uploading department data for case %s", caseId)

	fallbackYear := 0
	if yearParam := r.URL.Query().Get("year"); yearParam != "" {
		year, err := strconv.Atoi(yearParam)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid year", "year must be a number")
			return
		}
		fallbackYear = year
	}

	if r.ContentLength > h.maxBytes {
		rest.WriteError(w, http.StatusRequestEntityTooLarge, "File too large",
			"uploads are limited to "+strconv.FormatInt(h.maxBytes, 10)+" bytes")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			rest.WriteError(w, http.StatusRequestEntityTooLarge, "File too large", err.Error())
			return
		}
		rest.WriteError(w, http.StatusBadRequest, "Invalid upload", err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Missing file", err.Error())
		return
	}
	defer file.Close()

	summaries, err := h.service.Upload(r.Context(), caseId, header.Filename, file, fallbackYear)
	if err != nil {
		switch {
		case errors.Is(err, cases.ErrCaseNotFound):
			rest.WriteError(w, http.StatusNotFound, "Case not found", caseId)
		case errors.Is(err, ErrUnsupportedFormat),
			errors.Is(err, ErrEmptyTable),
			errors.Is(err, ErrNoRecords),
			errors.Is(err, ErrMissingDepartmentColumn),
			errors.Is(err, ErrInvalidYear),
			errors.Is(err, ErrYearRequired):
			rest.WriteError(w, http.StatusBadRequest, "Could not process file", err.Error())
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	dtos := make([]YearSummaryDTO, 0, len(summaries))
	for _, s := range summaries {
		dtos = append(dtos, YearSummaryDTO{Year: s.Year, Departments: s.Departments, Removed: s.Removed})
	}
	rest.WriteJSON(w, http.StatusCreated, dtos)
}

// ListYears godoc
// @Summary List years with data
// @Tags DepartmentData
// @Produce json
// @Param caseId path string true "Case ID"
// @Success 200 {array} int
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/case/{caseId}/year [get]
func (h *Handler) ListYears(w http.ResponseWriter, r *http.Request) {
	caseId := mux.Vars(r)["caseId"]
	years, err := h.service.ListYears(r.Context(), caseId)
	if err != nil {
		if errors.Is(err, cases.ErrCaseNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Case not found", caseId)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, years)
}

// GetYear godoc
// @Summary Get department data of a year
// @Tags DepartmentData
// @Produce json
// @Param caseId path string true "Case ID"
// @Param year query int true "Year"
// @Success 200 {object} YearDataDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/case/{caseId}/data [get]
func (h *Handler) GetYear(w http.ResponseWriter, r *http.Request) {
	caseId := mux.Vars(r)["caseId"]
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid year", "year query parameter is required")
		return
	}

	data, err := h.service.GetYear(r.Context(), caseId, year)
	if err != nil {
		if errors.Is(err, cases.ErrCaseNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Case not found", caseId)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, YearDataToDTO(data))
}

func YearDataToDTO(data YearData) YearDataDTO {
	records := make([]RecordDTO, 0, len(data.Records))
	for _, rec := range data.Records {
		records = append(records, RecordDTO{
			Department:      rec.Department,
			FullyMet:        rec.FullyMet,
			FullyMetPct:     rec.FullyMetPct,
			PartiallyMet:    rec.PartiallyMet,
			PartiallyMetPct: rec.PartiallyMetPct,
			NotMet:          rec.NotMet,
			NotMetPct:       rec.NotMetPct,
			NotApplicable:   rec.NotApplicable,
		})
	}
	return YearDataDTO{CaseId: data.CaseId, Year: data.Year, Records: records}
}
