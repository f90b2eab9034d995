package beacon

import (
	"time"

	"trail-status-backend/internal/store"
)

// Timeouts for the two stale-share branches, in minutes since the snapshot's
// update time.
const (
	notStartedTimeoutMinutes  = 45
	uploadedLieTimeoutMinutes = 4 * 60
)

// IntentKind enumerates the side effects a cycle may request.
type IntentKind int

const (
	IntentSetOnTrail IntentKind = iota
	IntentClearBeaconURL
	IntentNotifyStart
	IntentNotifyEnd
	IntentNotifyDiscard
)

// Intent is one side effect to apply against the store or notifier.
// Intents are applied strictly in slice order.
type Intent struct {
	Kind       IntentKind
	OnTrail    bool   // IntentSetOnTrail
	BeaconURL  string // IntentNotifyStart
	ActivityID *int64 // IntentNotifyEnd, nil when the id never materialized
}

// Normalize reconciles a reported status against the presence of a completed
// activity id. An id is stronger evidence of completion than the status
// field, which can lag; an "uploaded" claim without an id is untrustworthy
// and is re-tagged StatusUploadedLie instead of acted on immediately.
func Normalize(activityID *int64, status Status) Status {
	if activityID != nil {
		if status == StatusUploaded || status == StatusDiscarded {
			return status
		}
		return StatusUploaded
	}
	if status == StatusUploaded {
		return StatusUploadedLie
	}
	return status
}

// Evaluate classifies a snapshot against the previous durable status and
// returns the normalized status plus the ordered side effects to apply. It
// is pure: all state lives in the store, so every cycle is a fresh
// evaluation and a crash between cycles loses nothing.
func Evaluate(prev store.TroyStatus, snap Snapshot, now time.Time) (Status, []Intent) {
	normalized := Normalize(snap.ActivityID, snap.Status)
	rideTime := int64(now.Sub(snap.UpdateTime.Time).Minutes())

	var intents []Intent
	switch normalized {
	case StatusActive, StatusAutoPaused, StatusManualPaused:
		intents = append(intents, Intent{Kind: IntentSetOnTrail, OnTrail: true})
		if !prev.IsOnTrail {
			var beaconURL string
			if prev.BeaconURL != nil {
				beaconURL = *prev.BeaconURL
			}
			intents = append(intents, Intent{Kind: IntentNotifyStart, BeaconURL: beaconURL})
		}

	case StatusUploaded:
		intents = append(intents, Intent{Kind: IntentClearBeaconURL})
		if prev.IsOnTrail {
			intents = append(intents,
				Intent{Kind: IntentSetOnTrail, OnTrail: false},
				Intent{Kind: IntentNotifyEnd, ActivityID: snap.ActivityID},
			)
		}

	case StatusDiscarded:
		intents = append(intents, Intent{Kind: IntentClearBeaconURL})
		if prev.IsOnTrail {
			intents = append(intents,
				Intent{Kind: IntentSetOnTrail, OnTrail: false},
				Intent{Kind: IntentNotifyDiscard},
			)
		}

	case StatusNotStarted:
		if rideTime > notStartedTimeoutMinutes {
			intents = append(intents, Intent{Kind: IntentClearBeaconURL})
		}

	case StatusUploadedLie:
		// Unlike the NotStarted timeout the beacon url stays set,
		// matching the observed upstream behavior; the url clears later
		// via the 404 path once the share expires.
		if rideTime > uploadedLieTimeoutMinutes {
			intents = append(intents,
				Intent{Kind: IntentSetOnTrail, OnTrail: false},
				Intent{Kind: IntentNotifyEnd, ActivityID: nil},
			)
		}
	}

	return normalized, intents
}
