package entities

import "time"

// RoutineExclusion suspends a routine over a date range, e.g. while the
// patient is hospitalized. Unlike activity-level exclusions the end date is
// required; routines are never suspended open-endedly, they are deleted.
type RoutineExclusion struct {
	ID           int64     `json:"id" db:"id"`
	RoutineID    int64     `json:"routine_id" db:"routine_id"`
	StartDate    time.Time `json:"start_date" db:"start_date"`
	EndDate      time.Time `json:"end_date" db:"end_date"`
	Remarks      string    `json:"remarks,omitempty" db:"remarks"`
	IsDeleted    bool      `json:"is_deleted" db:"is_deleted"`
	CreatedDate  time.Time `json:"created_date" db:"created_date"`
	ModifiedDate time.Time `json:"modified_date" db:"modified_date"`
	CreatedByID  string    `json:"created_by_id" db:"created_by_id"`
	ModifiedByID string    `json:"modified_by_id" db:"modified_by_id"`
}

// Covers reports whether the exclusion is in force at t, inclusive on both
// ends.
func (e *RoutineExclusion) Covers(t time.Time) bool {
	return !t.Before(e.StartDate) && !t.After(e.EndDate)
}
