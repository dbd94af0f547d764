package department_data

// Record is one department row of an uploaded compliance report.
type Record struct {
	Department      string
	FullyMet        int
	FullyMetPct     float64
	PartiallyMet    int
	PartiallyMetPct float64
	NotMet          int
	NotMetPct       float64
	NotApplicable   int
}

type YearData struct {
	CaseId  string
	Year    int
	Records []Record
}

// YearSummary describes what an upload stored for one year.
type YearSummary struct {
	Year        int
	Departments int
	Removed     int
}

// Table is a raw uploaded sheet: the first row is the header, cells are untyped.
type Table struct {
	Header []string
	Rows   [][]string
}
