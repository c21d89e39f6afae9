package models

import "time"

// HealthCheck is one recorded health probe. ID is assigned by the store on
// insert and is never set by callers.
type HealthCheck struct {
	ID        int64     `json:"check_id" db:"check_id"`
	CheckedAt time.Time `json:"check_datetime" db:"check_datetime"`
}
