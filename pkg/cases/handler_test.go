package cases

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/perfdash/perfdash/internal/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter() *mux.Router {
	service, _, _ := setupService()
	handler := NewHandler(service)
	router := mux.NewRouter()
	router.HandleFunc("/api/case", handler.CreateCase).Methods("POST")
	router.HandleFunc("/api/case", handler.ListCases).Methods("GET")
	router.HandleFunc("/api/case/{caseId}", handler.GetCase).Methods("GET")
	return router
}

func postCase(t *testing.T, router *mux.Router, dto CaseDTO) *httptest.ResponseRecorder {
	payload, err := json.Marshal(dto)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/case", bytes.NewBuffer(payload))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_CreateAndGetCase(t *testing.T) {
	// given
	router := setupRouter()

	// when
	w := postCase(t, router, CaseDTO{Id: "CASE-7", Description: "Audit", Date: "2024-02-01", Manager: "Ann"})

	// then
	require.Equal(t, http.StatusCreated, w.Code)
	var created CaseDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.Equal(t, "CASE-7", created.Id)
	assert.Equal(t, "2024-02-01", created.Date)

	req := httptest.NewRequest(http.MethodGet, "/api/case/CASE-7", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched CaseDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&fetched))
	assert.Equal(t, "Audit", fetched.Description)
}

func TestHandler_CreateCase_Conflict(t *testing.T) {
	// given
	router := setupRouter()
	require.Equal(t, http.StatusCreated, postCase(t, router, CaseDTO{Id: "C-1", Description: "d", Manager: "m"}).Code)

	// when
	w := postCase(t, router, CaseDTO{Id: "C-1", Description: "d", Manager: "m"})

	// then
	assert.Equal(t, http.StatusConflict, w.Code)
	var errResp rest.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&errResp))
	assert.Equal(t, "Case ID may already exist.", errResp.Error)
}

func TestHandler_CreateCase_BadRequest(t *testing.T) {
	router := setupRouter()

	assert.Equal(t, http.StatusBadRequest, postCase(t, router, CaseDTO{Id: "C-1"}).Code)
	assert.Equal(t, http.StatusBadRequest,
		postCase(t, router, CaseDTO{Id: "C-1", Description: "d", Manager: "m", Date: "01/02/2024"}).Code)
}

func TestHandler_GetCase_NotFound(t *testing.T) {
	// given
	router := setupRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/case/nope", nil)
	w := httptest.NewRecorder()

	// when
	router.ServeHTTP(w, req)

	// then
	assert.Equal(t, http.StatusNotFound, w.Code)
}
