package cases

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/perfdash/perfdash/internal/rest"
	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type CaseDTO struct {
	Id          string `json:"caseId"`
	Description string `json:"description"`
	Date        string `json:"caseDate,omitempty"`
	Manager     string `json:"manager"`
	Notes       string `json:"notes"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateCase godoc
// @Summary Create a case
// @Description Registers a new case that department data can be uploaded to
// @Tags Case
// @Accept json
// @Produce json
// @Param case body CaseDTO true "Case to create"
// @Success 201 {object} CaseDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 409 {object} rest.ErrorResponse "Case ID may already exist"
// @Router /api/case [post]
func (h *Handler) CreateCase(w http.ResponseWriter, r *http.Request) {
	var dto CaseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	c, err := DTOToCase(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid case date", err.Error())
		return
	}

	created, err := h.service.CreateCase(r.Context(), c)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingRequiredFields):
			rest.WriteError(w, http.StatusBadRequest, "Missing required fields", err.Error())
		case errors.Is(err, ErrCaseAlreadyExists):
			rest.WriteError(w, http.StatusConflict, "Case ID may already exist.", "")
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	log.Infof("Case %s created", created.Id)
	rest.WriteJSON(w, http.StatusCreated, CaseToDTO(created))
}

// ListCases godoc
// @Summary List cases
// @Description Newest case date first
// @Tags Case
// @Produce json
// @Success 200 {array} CaseDTO
// @Router /api/case [get]
func (h *Handler) ListCases(w http.ResponseWriter, r *http.Request) {
	cases, err := h.service.ListCases(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]CaseDTO, 0, len(cases))
	for _, c := range cases {
		dtos = append(dtos, CaseToDTO(c))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// GetCase godoc
// @Summary Get a case
// @Tags Case
// @Produce json
// @Param caseId path string true "Case ID"
// @Success 200 {object} CaseDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/case/{caseId} [get]
func (h *Handler) GetCase(w http.ResponseWriter, r *http.Request) {
	caseId := mux.Vars(r)["caseId"]
	c, err := h.service.GetCase(r.Context(), caseId)
	if err != nil {
		if errors.Is(err, ErrCaseNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Case not found", caseId)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, CaseToDTO(c))
}

func DTOToCase(dto CaseDTO) (Case, error) {
	c := Case{
		Id:          dto.Id,
		Description: dto.Description,
		Manager:     dto.Manager,
		Notes:       dto.Notes,
	}
	if dto.Date != "" {
		date, err := time.Parse(dateLayout, dto.Date)
		if err != nil {
			return Case{}, errors.New("caseDate must be in YYYY-MM-DD format")
		}
		c.Date = date
	}
	return c, nil
}

func CaseToDTO(c Case) CaseDTO {
	dto := CaseDTO{
		Id:          c.Id,
		Description: c.Description,
		Date:        c.Date.Format(dateLayout),
		Manager:     c.Manager,
		Notes:       c.Notes,
	}
	if !c.CreatedAt.IsZero() {
		dto.CreatedAt = c.CreatedAt.Format(time.RFC3339)
	}
	return dto
}
