package entities

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CentreActivity is one concrete offering of an Activity at a centre, with
// its scheduling constraints. Durations are in minutes.
type CentreActivity struct {
	ID             int64     `json:"id" db:"id"`
	ActivityID     int64     `json:"activity_id" db:"activity_id"`
	Active         bool      `json:"active" db:"active"`
	IsDeleted      bool      `json:"is_deleted" db:"is_deleted"`
	IsCompulsory   bool      `json:"is_compulsory" db:"is_compulsory"`
	IsFixed        bool      `json:"is_fixed" db:"is_fixed"`
	IsGroup        bool      `json:"is_group" db:"is_group"`
	MinDuration    int       `json:"min_duration" db:"min_duration"`
	MaxDuration    int       `json:"max_duration" db:"max_duration"`
	MinPeopleReq   int       `json:"min_people_req" db:"min_people_req"`
	FixedTimeSlots string    `json:"fixed_time_slots,omitempty" db:"fixed_time_slots"`
	CreatedDate    time.Time `json:"created_date" db:"created_date"`
	ModifiedDate   time.Time `json:"modified_date" db:"modified_date"`
	CreatedByID    string    `json:"created_by_id" db:"created_by_id"`
	ModifiedByID   string    `json:"modified_by_id" db:"modified_by_id"`
}

// IsSchedulable reports whether the offering may appear on a schedule at all.
func (ca *CentreActivity) IsSchedulable() bool {
	return ca.Active && !ca.IsDeleted
}

// HasFixedSlots reports whether fixed-slot resolution applies. An empty
// fixed_time_slots string makes the row effectively flexible even when
// is_fixed is set (seed data contains both patterns).
func (ca *CentreActivity) HasFixedSlots() bool {
	return ca.IsFixed && strings.TrimSpace(ca.FixedTimeSlots) != ""
}

// FixedSlotRefs parses the fixed_time_slots encoding into slot references.
func (ca *CentreActivity) FixedSlotRefs() ([]SlotRef, error) {
	return ParseFixedTimeSlots(ca.FixedTimeSlots)
}

// SlotRef identifies one discrete schedulable unit of a fixed weekly
// schedule: weekday 0=Monday..6=Sunday plus a centre-defined slot index.
type SlotRef struct {
	Weekday   int `json:"weekday"`
	SlotIndex int `json:"slot_index"`
}

// ParseFixedTimeSlots parses the compact "<weekday>-<slot_index>" encoding,
// e.g. "0-3,1-3" meaning Monday slot 3 and Tuesday slot 3. An empty string
// yields no refs.
func ParseFixedTimeSlots(s string) ([]SlotRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	tokens := strings.Split(s, ",")
	refs := make([]SlotRef, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		parts := strings.SplitN(token, "-", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed fixed time slot token %q", token)
		}
		weekday, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("malformed weekday in token %q: %w", token, err)
		}
		if weekday < 0 || weekday > 6 {
			return nil, fmt.Errorf("weekday out of range in token %q", token)
		}
		slotIndex, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("malformed slot index in token %q: %w", token, err)
		}
		if slotIndex < 0 {
			return nil, fmt.Errorf("negative slot index in token %q", token)
		}
		refs = append(refs, SlotRef{Weekday: weekday, SlotIndex: slotIndex})
	}
	return refs, nil
}
