package department_data

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/perfdash/perfdash/internal/event_bus"
	"github.com/perfdash/perfdash/pkg/cases"
	log "github.com/sirupsen/logrus"
)

var ErrUnsupportedFormat = errors.New("unsupported file format, upload a .csv or .xlsx file")
var ErrNoRecords = errors.New("uploaded file contains no department rows")

// CaseReader is the part of the case service needed to check that a case exists.
type CaseReader interface {
	GetCase(ctx context.Context, caseId string) (cases.Case, error)
}

type Service interface {
	// Upload parses a .csv or .xlsx file and replaces the stored data of every year it contains.
	Upload(ctx context.Context, caseId string, filename string, file io.Reader, fallbackYear int) ([]YearSummary, error)
	// Replace stores records as the complete data set of one case year.
	Replace(ctx context.Context, caseId string, year int, records []Record) (YearSummary, error)
	GetYear(ctx context.Context, caseId string, year int) (YearData, error)
	ListYears(ctx context.Context, caseId string) ([]int, error)
}

type ServiceImpl struct {
	repo     Repository
	cases    CaseReader
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, caseReader CaseReader, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, cases: caseReader, eventBus: eventBus}
}

func ParseFile(filename string, file io.Reader) (Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ParseCSV(file)
	case ".xlsx":
		return ParseXLSX(file)
	default:
		return Table{}, ErrUnsupportedFormat
	}
}

func (s *ServiceImpl) Upload(ctx context.Context, caseId string, filename string, file io.Reader, fallbackYear int) ([]YearSummary, error) {
	if _, err := s.cases.GetCase(ctx, caseId); err != nil {
		return nil, err
	}

	table, err := ParseFile(filename, file)
	if err != nil {
		return nil, err
	}
	byYear, err := Normalize(table, fallbackYear)
	if err != nil {
		return nil, err
	}
	if len(byYear) == 0 {
		return nil, ErrNoRecords
	}

	summaries, err := s.replaceAll(ctx, caseId, byYear)
	if err != nil {
		return nil, err
	}
	log.Infof("Stored %d year(s) of department data from %s for case %s", len(summaries), filename, caseId)
	return summaries, nil
}

func (s *ServiceImpl) Replace(ctx context.Context, caseId string, year int, records []Record) (YearSummary, error) {
	if year < MinYear || year > MaxYear {
		return YearSummary{}, fmt.Errorf("%w: got %d", ErrInvalidYear, year)
	}
	if len(records) == 0 {
		return YearSummary{}, ErrNoRecords
	}
	if _, err := s.cases.GetCase(ctx, caseId); err != nil {
		return YearSummary{}, err
	}
	summaries, err := s.replaceAll(ctx, caseId, map[int][]Record{year: records})
	if err != nil {
		return YearSummary{}, err
	}
	return summaries[0], nil
}

// replaceAll swaps the data of every given year in a single transaction.
func (s *ServiceImpl) replaceAll(ctx context.Context, caseId string, byYear map[int][]Record) ([]YearSummary, error) {
	years := SortedYears(byYear)
	summaries := make([]YearSummary, 0, len(years))

	err := s.repo.WithTransaction(ctx, func(repo Repository) error {
		for _, year := range years {
			records := byYear[year]
			keep := make([]string, 0, len(records))
			for _, rec := range records {
				keep = append(keep, rec.Department)
			}
			removed, err := repo.DeleteStale(ctx, caseId, year, keep)
			if err != nil {
				return err
			}
			if err := repo.Upsert(ctx, caseId, year, records); err != nil {
				return err
			}
			summaries = append(summaries, YearSummary{Year: year, Departments: len(records), Removed: removed})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, summary := range summaries {
		err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.DepartmentDataReplacedType, event_bus.DepartmentDataReplaced{
			CaseId:      caseId,
			Year:        summary.Year,
			Departments: summary.Departments,
			Removed:     summary.Removed,
		}))
		if err != nil {
			log.Warnf("department data for case %s year %d stored, but publishing the event failed: %v", caseId, summary.Year, err)
		}
	}
	return summaries, nil
}

func (s *ServiceImpl) GetYear(ctx context.Context, caseId string, year int) (YearData, error) {
	if _, err := s.cases.GetCase(ctx, caseId); err != nil {
		return YearData{}, err
	}
	records, err := s.repo.GetYear(ctx, caseId, year)
	if err != nil {
		return YearData{}, err
	}
	return YearData{CaseId: caseId, Year: year, Records: records}, nil
}

func (s *ServiceImpl) ListYears(ctx context.Context, caseId string) ([]int, error) {
	if _, err := s.cases.GetCase(ctx, caseId); err != nil {
		return nil, err
	}
	return s.repo.ListYears(ctx, caseId)
}
