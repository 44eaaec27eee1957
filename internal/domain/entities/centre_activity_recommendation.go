package entities

import "time"

// Recommendation values written by doctors and patients. The same three-state
// scale is shared by recommendations and preferences.
const (
	RatingNotRecommended = -1
	RatingNeutral        = 0
	RatingRecommended    = 1
)

// CentreActivityRecommendation is a doctor's suitability judgment for one
// (centre activity, patient) pair. Patient and doctor ids are opaque strings
// owned by other services.
type CentreActivityRecommendation struct {
	ID                   int64     `json:"id" db:"id"`
	CentreActivityID     int64     `json:"centre_activity_id" db:"centre_activity_id"`
	PatientID            string    `json:"patient_id" db:"patient_id"`
	DoctorID             string    `json:"doctor_id" db:"doctor_id"`
	DoctorRecommendation int       `json:"doctor_recommendation" db:"doctor_recommendation"`
	DoctorRemarks        string    `json:"doctor_remarks,omitempty" db:"doctor_remarks"`
	IsDeleted            bool      `json:"is_deleted" db:"is_deleted"`
	CreatedDate          time.Time `json:"created_date" db:"created_date"`
	ModifiedDate         time.Time `json:"modified_date" db:"modified_date"`
	CreatedByID          string    `json:"created_by_id" db:"created_by_id"`
	ModifiedByID         string    `json:"modified_by_id" db:"modified_by_id"`
}

// ValidRating reports whether v is one of {-1, 0, 1}.
func ValidRating(v int) bool {
	return v >= RatingNotRecommended && v <= RatingRecommended
}
