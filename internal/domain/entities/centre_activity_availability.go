package entities

import "time"

// CentreActivityAvailability is a concrete datetime window in which a
// flexible centre activity may run.
type CentreActivityAvailability struct {
	ID               int64     `json:"id" db:"id"`
	CentreActivityID int64     `json:"centre_activity_id" db:"centre_activity_id"`
	IsDeleted        bool      `json:"is_deleted" db:"is_deleted"`
	StartTime        time.Time `json:"start_time" db:"start_time"`
	EndTime          time.Time `json:"end_time" db:"end_time"`
	CreatedDate      time.Time `json:"created_date" db:"created_date"`
	ModifiedDate     time.Time `json:"modified_date" db:"modified_date"`
	CreatedByID      string    `json:"created_by_id" db:"created_by_id"`
	ModifiedByID     string    `json:"modified_by_id" db:"modified_by_id"`
}

// Overlaps reports whether the window intersects [from, to).
func (a *CentreActivityAvailability) Overlaps(from, to time.Time) bool {
	return a.StartTime.Before(to) && a.EndTime.After(from)
}
