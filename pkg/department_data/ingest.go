package department_data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const (
	MinYear = 2000
	MaxYear = 2100
)

var ErrEmptyTable = errors.New("uploaded file contains no rows")
var ErrMissingDepartmentColumn = errors.New("uploaded file has no Department column")
var ErrInvalidYear = fmt.Errorf("year must be between %d and %d", MinYear, MaxYear)
var ErrYearRequired = errors.New("a year is required when the file has no Year column")

type column int

const (
	colDepartment column = iota
	colFullyMet
	colFullyMetPct
	colPartiallyMet
	colPartiallyMetPct
	colNotMet
	colNotMetPct
	colNotApplicable
	colYear
)

// columnNames lists the accepted headers per column, display spelling first.
var columnNames = map[column][]string{
	colDepartment:      {"Department", "department"},
	colFullyMet:        {"Fully Met", "fully_met"},
	colFullyMetPct:     {"Fully Met %", "fully_met_pct"},
	colPartiallyMet:    {"Partially Met", "partially_met"},
	colPartiallyMetPct: {"Partially Met %", "partially_met_pct"},
	colNotMet:          {"Not Met", "not_met"},
	colNotMetPct:       {"Not Met %", "not_met_pct"},
	colNotApplicable:   {"Not Applicable", "not_applicable"},
	colYear:            {"Year", "year"},
}

func ParseCSV(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	lines, err := reader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("could not read csv: %w", err)
	}
	if len(lines) == 0 {
		return Table{}, ErrEmptyTable
	}
	header := lines[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return Table{Header: header, Rows: lines[1:]}, nil
}

// ParseXLSX reads the first sheet of an Excel workbook.
func ParseXLSX(r io.Reader) (Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Table{}, fmt.Errorf("could not open workbook: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Warnf("could not close workbook: %v", err)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, ErrEmptyTable
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Table{}, fmt.Errorf("could not read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return Table{}, ErrEmptyTable
	}
	return Table{Header: rows[0], Rows: rows[1:]}, nil
}

// Normalize maps a raw table onto records grouped by year. Rows without a usable Year cell
// fall back to fallbackYear, 0 meaning none was given. Blank rows and rows without a department name are skipped; when
// a department repeats within a year the later row wins.
func Normalize(table Table, fallbackYear int) (map[int][]Record, error) {
	index := resolveColumns(table.Header)
	if _, ok := index[colDepartment]; !ok {
		return nil, ErrMissingDepartmentColumn
	}

	result := make(map[int][]Record)
	positions := make(map[int]map[string]int)
	for _, row := range table.Rows {
		if isBlank(row) {
			continue
		}
		department := strings.TrimSpace(cell(row, index, colDepartment))
		if department == "" {
			continue
		}

		year := fallbackYear
		if _, ok := index[colYear]; ok {
			if parsed, ok := parseYear(cell(row, index, colYear)); ok {
				year = parsed
			}
		}
		if year == 0 {
			return nil, ErrYearRequired
		}
		if year < MinYear || year > MaxYear {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidYear, year)
		}

		record := Record{
			Department:      department,
			FullyMet:        toCount(cell(row, index, colFullyMet)),
			FullyMetPct:     toPercent(cell(row, index, colFullyMetPct)),
			PartiallyMet:    toCount(cell(row, index, colPartiallyMet)),
			PartiallyMetPct: toPercent(cell(row, index, colPartiallyMetPct)),
			NotMet:          toCount(cell(row, index, colNotMet)),
			NotMetPct:       toPercent(cell(row, index, colNotMetPct)),
			NotApplicable:   toCount(cell(row, index, colNotApplicable)),
		}

		if positions[year] == nil {
			positions[year] = make(map[string]int)
		}
		if pos, seen := positions[year][department]; seen {
			result[year][pos] = record
			continue
		}
		positions[year][department] = len(result[year])
		result[year] = append(result[year], record)
	}
	return result, nil
}

// SortedYears returns the keys of a Normalize result in ascending order.
func SortedYears(byYear map[int][]Record) []int {
	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

func resolveColumns(header []string) map[column]int {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, exists := positions[name]; !exists {
			positions[name] = i
		}
	}
	index := make(map[column]int)
	for col, names := range columnNames {
		for _, name := range names {
			if i, ok := positions[name]; ok {
				index[col] = i
				break
			}
		}
	}
	return index
}

func cell(row []string, index map[column]int, col column) string {
	i, ok := index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func toCount(s string) int {
	v, _ := parseNumber(s)
	return int(math.Trunc(v))
}

func toPercent(s string) float64 {
	v, _ := parseNumber(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	return v
}

func parseYear(s string) (int, bool) {
	v, ok := parseNumber(s)
	if !ok || v != math.Trunc(v) {
		return 0, false
	}
	return int(v), true
}
