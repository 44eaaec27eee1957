package entities

import "time"

// CentreActivityPreference is a patient's own like/dislike for a centre
// activity, on the same -1/0/1 scale as doctor recommendations.
type CentreActivityPreference struct {
	ID               int64     `json:"id" db:"id"`
	CentreActivityID int64     `json:"centre_activity_id" db:"centre_activity_id"`
	PatientID        string    `json:"patient_id" db:"patient_id"`
	IsLike           int       `json:"is_like" db:"is_like"`
	IsDeleted        bool      `json:"is_deleted" db:"is_deleted"`
	CreatedDate      time.Time `json:"created_date" db:"created_date"`
	ModifiedDate     time.Time `json:"modified_date" db:"modified_date"`
	CreatedByID      string    `json:"created_by_id" db:"created_by_id"`
	ModifiedByID     string    `json:"modified_by_id" db:"modified_by_id"`
}
