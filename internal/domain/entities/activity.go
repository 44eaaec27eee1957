package entities

import "time"

// Activity is the centrally-owned template of an engageable task. Rows are
// soft-deleted, never physically removed.
type Activity struct {
	ID           int64      `json:"id" db:"id"`
	Active       bool       `json:"active" db:"active"`
	IsDeleted    bool       `json:"is_deleted" db:"is_deleted"`
	Title        string     `json:"title" db:"title"`
	Description  string     `json:"description,omitempty" db:"description"`
	StartDate    time.Time  `json:"start_date" db:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty" db:"end_date"`
	CreatedDate  time.Time  `json:"created_date" db:"created_date"`
	ModifiedDate time.Time  `json:"modified_date" db:"modified_date"`
	CreatedByID  string     `json:"created_by_id" db:"created_by_id"`
	ModifiedByID string     `json:"modified_by_id" db:"modified_by_id"`
}
