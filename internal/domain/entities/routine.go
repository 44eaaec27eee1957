package entities

import "time"

// Routine is a patient-level weekly recurring schedule entry: the patient
// does the referenced activity every week on one weekday, inside a fixed
// time-of-day window, between a start and end date. Times of day follow the
// centre slot grid convention of minutes from midnight.
type Routine struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	ActivityID   int64     `json:"activity_id" db:"activity_id"`
	PatientID    string    `json:"patient_id" db:"patient_id"`
	DayOfWeek    int       `json:"day_of_week" db:"day_of_week"`
	StartMinutes int       `json:"start_minutes" db:"start_minutes"`
	EndMinutes   int       `json:"end_minutes" db:"end_minutes"`
	StartDate    time.Time `json:"start_date" db:"start_date"`
	EndDate      time.Time `json:"end_date" db:"end_date"`
	IsDeleted    bool      `json:"is_deleted" db:"is_deleted"`
	CreatedDate  time.Time `json:"created_date" db:"created_date"`
	ModifiedDate time.Time `json:"modified_date" db:"modified_date"`
	CreatedByID  string    `json:"created_by_id" db:"created_by_id"`
	ModifiedByID string    `json:"modified_by_id" db:"modified_by_id"`
}

// ActiveOn reports whether the routine recurs on the given calendar day:
// the weekday matches and the day falls inside [StartDate, EndDate].
func (r *Routine) ActiveOn(day time.Time) bool {
	if ScheduleWeekday(day.Weekday()) != r.DayOfWeek {
		return false
	}
	if day.Before(dateOf(r.StartDate)) {
		return false
	}
	return !day.After(dateOf(r.EndDate))
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// RoutineOccurrence is one concrete materialization of a routine's weekly
// recurrence on a calendar day.
type RoutineOccurrence struct {
	RoutineID  int64     `json:"routine_id"`
	ActivityID int64     `json:"activity_id"`
	PatientID  string    `json:"patient_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
}
