package entities

import "time"

// AuditInfo identifies the actor performing a mutation. Actor ids are opaque
// strings owned by the user service; they are recorded, never validated here.
type AuditInfo struct {
	ActorID string `json:"actor_id"`
}

// StampCreate fills the audit columns for a freshly created row.
func (a AuditInfo) StampCreate(now time.Time) (createdDate, modifiedDate time.Time, createdBy, modifiedBy string) {
	return now, now, a.ActorID, a.ActorID
}
