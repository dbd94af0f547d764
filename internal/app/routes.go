package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Earned value calculator
	r.HandleFunc("/api/evm/defaults", deps.EvmHandler.GetDefaults).Methods("GET")
	r.HandleFunc("/api/evm/report", deps.EvmHandler.CalculateReport).Methods("POST")

	// Cases
	r.HandleFunc("/api/case", deps.CaseHandler.ListCases).Methods("GET")
	r.HandleFunc("/api/case", deps.CaseHandler.CreateCase).Methods("POST")
	r.HandleFunc("/api/case/{caseId}", deps.CaseHandler.GetCase).Methods("GET")

	// Department data
	r.HandleFunc("/api/case/{caseId}/data", deps.DepartmentDataHandler.Upload).Methods("POST")
	r.HandleFunc("/api/case/{caseId}/data", deps.DepartmentDataHandler.GetYear).Methods("GET")
	r.HandleFunc("/api/case/{caseId}/year", deps.DepartmentDataHandler.ListYears).Methods("GET")

	// Comparison
	r.HandleFunc("/api/case/{caseId}/comparison", deps.ComparisonHandler.Compare).Methods("GET")
}
