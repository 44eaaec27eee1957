package entities

import "time"

// ActivityExclusion bans an activity template for one patient across every
// centre offering it, over a date range. A nil EndDate means the ban is
// open-ended. It complements CentreActivityExclusion, which targets a single
// offering.
type ActivityExclusion struct {
	ID               int64      `json:"id" db:"id"`
	ActivityID       int64      `json:"activity_id" db:"activity_id"`
	PatientID        string     `json:"patient_id" db:"patient_id"`
	IsDeleted        bool       `json:"is_deleted" db:"is_deleted"`
	ExclusionRemarks string     `json:"exclusion_remarks,omitempty" db:"exclusion_remarks"`
	StartDate        time.Time  `json:"start_date" db:"start_date"`
	EndDate          *time.Time `json:"end_date,omitempty" db:"end_date"`
	CreatedDate      time.Time  `json:"created_date" db:"created_date"`
	ModifiedDate     time.Time  `json:"modified_date" db:"modified_date"`
	CreatedByID      string     `json:"created_by_id" db:"created_by_id"`
	ModifiedByID     string     `json:"modified_by_id" db:"modified_by_id"`
}

// Covers reports whether the exclusion is in force at t. The range is
// inclusive on both ends; a nil end date never expires.
func (e *ActivityExclusion) Covers(t time.Time) bool {
	if t.Before(e.StartDate) {
		return false
	}
	if e.EndDate != nil && t.After(*e.EndDate) {
		return false
	}
	return true
}
