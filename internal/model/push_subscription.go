package model

import "time"

// PushSubscription stores one browser push subscription. Every subscriber
// receives every trail status notification; there is only one tracked
// athlete so no per-subject mapping is needed.
type PushSubscription struct {
	Endpoint  string `gorm:"primaryKey;size:512"`
	P256DH    string `gorm:"not null"`
	Auth      string `gorm:"not null"`
	CreatedAt time.Time
}
