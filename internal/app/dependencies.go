package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/perfdash/perfdash/internal/config"
	"github.com/perfdash/perfdash/internal/event_bus"
	"github.com/perfdash/perfdash/internal/utils"
	"github.com/perfdash/perfdash/pkg/cases"
	"github.com/perfdash/perfdash/pkg/comparison"
	"github.com/perfdash/perfdash/pkg/department_data"
	"github.com/perfdash/perfdash/pkg/evm"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	CsvCurveRenderer *evm.CsvCurveRendererImpl
	EvmHandler       *evm.Handler

	CaseRepo    cases.Repository
	CaseService *cases.ServiceImpl
	CaseHandler *cases.Handler

	DepartmentDataRepo    department_data.Repository
	DepartmentDataService *department_data.ServiceImpl
	DepartmentDataHandler *department_data.Handler

	ComparisonService *comparison.ServiceImpl
	CsvTableRenderer  *comparison.CsvTableRendererImpl
	ComparisonHandler *comparison.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	SubscribeAuditLog(deps.EventBus)
	deps.Clock = &utils.SystemClock{}

	deps.CsvCurveRenderer = evm.NewCsvCurveRenderer()
	deps.EvmHandler = evm.NewHandler(deps.CsvCurveRenderer)

	deps.CaseRepo = cases.NewRepository(db)
	deps.CaseService = cases.NewService(deps.CaseRepo, deps.EventBus, deps.Clock)
	deps.CaseHandler = cases.NewHandler(deps.CaseService)

	deps.DepartmentDataRepo = department_data.NewRepository(db)
	deps.DepartmentDataService = department_data.NewService(deps.DepartmentDataRepo, deps.CaseService, deps.EventBus)
	deps.DepartmentDataHandler = department_data.NewHandler(deps.DepartmentDataService, cfg.Upload.MaxBytes)

	thresholds := comparison.Thresholds{
		HighPerformer: cfg.Comparison.HighPerformer,
		TopN:          cfg.Comparison.TopN,
	}
	deps.ComparisonService = comparison.NewService(deps.DepartmentDataService, thresholds)
	deps.CsvTableRenderer = comparison.NewCsvTableRenderer()
	deps.ComparisonHandler = comparison.NewHandler(deps.ComparisonService, deps.CsvTableRenderer)

	return deps
}
