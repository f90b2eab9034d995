package model

import "time"

// TroyStatus is the durable on/off-trail flag. The table holds exactly one
// row (id = 1) which is only ever overwritten, never deleted.
type TroyStatus struct {
	ID                 int64 `gorm:"primaryKey;check:id = 1"`
	IsOnTrail          bool  `gorm:"not null"`
	BeaconURL          *string
	TrailStatusUpdated *time.Time
}
