package cases

import "time"

// Case groups the department data uploaded for one comparison project.
type Case struct {
	Id          string
	Description string
	Date        time.Time
	Manager     string
	Notes       string
	CreatedAt   time.Time
}
