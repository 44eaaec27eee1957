package entities

import "time"

// AdhocStatus is the state of a substitution request.
type AdhocStatus string

const (
	AdhocStatusPending  AdhocStatus = "PENDING"
	AdhocStatusApproved AdhocStatus = "APPROVED"
	AdhocStatusRejected AdhocStatus = "REJECTED"
)

// Adhoc is a time-bounded substitution of one centre activity for another,
// scoped to a single patient. Only approved rows redirect scheduling.
type Adhoc struct {
	ID                  int64       `json:"id" db:"id"`
	OldCentreActivityID int64       `json:"old_centre_activity_id" db:"old_centre_activity_id"`
	NewCentreActivityID int64       `json:"new_centre_activity_id" db:"new_centre_activity_id"`
	PatientID           string      `json:"patient_id" db:"patient_id"`
	IsDeleted           bool        `json:"is_deleted" db:"is_deleted"`
	Status              AdhocStatus `json:"status" db:"status"`
	StartTime           time.Time   `json:"start_time" db:"start_time"`
	EndTime             time.Time   `json:"end_time" db:"end_time"`
	CreatedDate         time.Time   `json:"created_date" db:"created_date"`
	ModifiedDate        time.Time   `json:"modified_date" db:"modified_date"`
	CreatedByID         string      `json:"created_by_id" db:"created_by_id"`
	ModifiedByID        string      `json:"modified_by_id" db:"modified_by_id"`
}

// Covers reports whether t falls within the substitution window [start, end).
func (a *Adhoc) Covers(t time.Time) bool {
	return !t.Before(a.StartTime) && t.Before(a.EndTime)
}

// CanTransitionTo reports whether the status state machine permits moving to
// the target status. Only pending rows may be decided.
func (a *Adhoc) CanTransitionTo(target AdhocStatus) bool {
	if a.Status != AdhocStatusPending {
		return false
	}
	return target == AdhocStatusApproved || target == AdhocStatusRejected
}

// ValidAdhocStatus reports whether s is a known status value.
func ValidAdhocStatus(s AdhocStatus) bool {
	switch s {
	case AdhocStatusPending, AdhocStatusApproved, AdhocStatusRejected:
		return true
	}
	return false
}
