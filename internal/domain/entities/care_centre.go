package entities

import "time"

// CareCentre is the master record of a day centre. Slot-index schedule
// configuration rows hang off the centre.
type CareCentre struct {
	ID               int64     `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	IsDeleted        bool      `json:"is_deleted" db:"is_deleted"`
	CountryCode      string    `json:"country_code" db:"country_code"`
	Address          string    `json:"address,omitempty" db:"address"`
	PostalCode       string    `json:"postal_code,omitempty" db:"postal_code"`
	ContactNo        string    `json:"contact_no,omitempty" db:"contact_no"`
	Email            string    `json:"email,omitempty" db:"email"`
	NoOfDevicesAvail int       `json:"no_of_devices_avail" db:"no_of_devices_avail"`
	WorkingDays      string    `json:"working_days,omitempty" db:"working_days"`
	OpeningHours     string    `json:"opening_hours,omitempty" db:"opening_hours"`
	ClosingHours     string    `json:"closing_hours,omitempty" db:"closing_hours"`
	Remarks          string    `json:"remarks,omitempty" db:"remarks"`
	CreatedDate      time.Time `json:"created_date" db:"created_date"`
	ModifiedDate     time.Time `json:"modified_date" db:"modified_date"`
	CreatedByID      string    `json:"created_by_id" db:"created_by_id"`
	ModifiedByID     string    `json:"modified_by_id" db:"modified_by_id"`
}
