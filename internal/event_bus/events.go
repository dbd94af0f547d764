package event_bus

import "time"

const (
	CaseCreatedType            EventType = "case.created"
	DepartmentDataReplacedType EventType = "department_data.replaced"
)

type CaseCreated struct {
	CaseId    string
	Manager   string
	CaseDate  time.Time
	CreatedAt time.Time
}

type DepartmentDataReplaced struct {
	CaseId string
	Year   int
	// Departments is the number of department rows stored for the year after the replacement.
	Departments int
	// Removed is the number of rows from a previous upload that were dropped.
	Removed int
}
