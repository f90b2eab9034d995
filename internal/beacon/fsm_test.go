package beacon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"trail-status-backend/internal/store"
)

func int64Ptr(v int64) *int64 { return &v }

func strPtr(s string) *string { return &s }

func TestNormalize(t *testing.T) {
	withID := int64Ptr(123)

	testCases := []struct {
		name       string
		activityID *int64
		status     Status
		expected   Status
	}{
		// With an activity id, Uploaded and Discarded pass through and
		// everything else is forced to Uploaded.
		{"id + uploaded", withID, StatusUploaded, StatusUploaded},
		{"id + discarded", withID, StatusDiscarded, StatusDiscarded},
		{"id + active", withID, StatusActive, StatusUploaded},
		{"id + auto paused", withID, StatusAutoPaused, StatusUploaded},
		{"id + manual paused", withID, StatusManualPaused, StatusUploaded},
		{"id + not started", withID, StatusNotStarted, StatusUploaded},
		{"id + unknown", withID, StatusUnknown, StatusUploaded},
		{"id + uploaded lie", withID, StatusUploadedLie, StatusUploaded},

		// Without an id, only an Uploaded claim is re-tagged.
		{"no id + uploaded", nil, StatusUploaded, StatusUploadedLie},
		{"no id + discarded", nil, StatusDiscarded, StatusDiscarded},
		{"no id + active", nil, StatusActive, StatusActive},
		{"no id + auto paused", nil, StatusAutoPaused, StatusAutoPaused},
		{"no id + manual paused", nil, StatusManualPaused, StatusManualPaused},
		{"no id + not started", nil, StatusNotStarted, StatusNotStarted},
		{"no id + unknown", nil, StatusUnknown, StatusUnknown},
		{"no id + uploaded lie", nil, StatusUploadedLie, StatusUploadedLie},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Normalize(tc.activityID, tc.status))
		})
	}
}

func snapshotAt(status Status, activityID *int64, updated time.Time) Snapshot {
	return Snapshot{
		Status:     status,
		ActivityID: activityID,
		UpdateTime: EpochTime{updated},
	}
}

func TestEvaluate_ActiveStartsRide(t *testing.T) {
	now := time.Now().UTC()
	prev := store.TroyStatus{IsOnTrail: false, BeaconURL: strPtr("https://beacon.example/abc")}

	normalized, intents := Evaluate(prev, snapshotAt(StatusActive, nil, now), now)

	assert.Equal(t, StatusActive, normalized)
	assert.Equal(t, []Intent{
		{Kind: IntentSetOnTrail, OnTrail: true},
		{Kind: IntentNotifyStart, BeaconURL: "https://beacon.example/abc"},
	}, intents)
}

func TestEvaluate_ActiveWhileAlreadyOnTrail(t *testing.T) {
	now := time.Now().UTC()
	prev := store.TroyStatus{IsOnTrail: true, BeaconURL: strPtr("https://beacon.example/abc")}

	for _, status := range []Status{StatusActive, StatusAutoPaused, StatusManualPaused} {
		t.Run(status.String(), func(t *testing.T) {
			_, intents := Evaluate(prev, snapshotAt(status, nil, now), now)
			assert.Equal(t, []Intent{{Kind: IntentSetOnTrail, OnTrail: true}}, intents)
		})
	}
}

func TestEvaluate_UploadedEndsRide(t *testing.T) {
	now := time.Now().UTC()
	prev := store.TroyStatus{IsOnTrail: true, BeaconURL: strPtr("https://beacon.example/abc")}

	normalized, intents := Evaluate(prev, snapshotAt(StatusUploaded, int64Ptr(123), now), now)

	assert.Equal(t, StatusUploaded, normalized)
	assert.Equal(t, []Intent{
		{Kind: IntentClearBeaconURL},
		{Kind: IntentSetOnTrail, OnTrail: false},
		{Kind: IntentNotifyEnd, ActivityID: int64Ptr(123)},
	}, intents)
}

func TestEvaluate_UploadedWhileOffTrailOnlyClearsURL(t *testing.T) {
	now := time.Now().UTC()
	prev := store.TroyStatus{IsOnTrail: false, BeaconURL: strPtr("https://beacon.example/abc")}

	_, intents := Evaluate(prev, snapshotAt(StatusUploaded, int64Ptr(123), now), now)
	assert.Equal(t, []Intent{{Kind: IntentClearBeaconURL}}, intents)
}

func TestEvaluate_DiscardedEndsRide(t *testing.T) {
	now := time.Now().UTC()
	prev := store.TroyStatus{IsOnTrail: true, BeaconURL: strPtr("https://beacon.example/abc")}

	normalized, intents := Evaluate(prev, snapshotAt(StatusDiscarded, int64Ptr(7), now), now)

	assert.Equal(t, StatusDiscarded, normalized)
	assert.Equal(t, []Intent{
		{Kind: IntentClearBeaconURL},
		{Kind: IntentSetOnTrail, OnTrail: false},
		{Kind: IntentNotifyDiscard},
	}, intents)
}

func TestEvaluate_UploadedLieWithinGracePeriod(t *testing.T) {
	now := time.Now().UTC()
	prev := store.TroyStatus{IsOnTrail: true, BeaconURL: strPtr("https://beacon.example/abc")}

	// Uploaded with no activity id ten minutes ago: untrustworthy, wait.
	normalized, intents := Evaluate(prev, snapshotAt(StatusUploaded, nil, now.Add(-10*time.Minute)), now)

	assert.Equal(t, StatusUploadedLie, normalized)
	assert.Empty(t, intents)
}

func TestEvaluate_UploadedLieTimedOut(t *testing.T) {
	now := time.Now().UTC()
	prev := store.TroyStatus{IsOnTrail: true, BeaconURL: strPtr("https://beacon.example/abc")}

	normalized, intents := Evaluate(prev, snapshotAt(StatusUploaded, nil, now.Add(-300*time.Minute)), now)

	assert.Equal(t, StatusUploadedLie, normalized)
	assert.Equal(t, []Intent{
		{Kind: IntentSetOnTrail, OnTrail: false},
		{Kind: IntentNotifyEnd, ActivityID: nil},
	}, intents)

	// The beacon url is left set in this branch, unlike the NotStarted
	// timeout; it clears via the 404 path once the share expires.
	for _, intent := range intents {
		assert.NotEqual(t, IntentClearBeaconURL, intent.Kind)
	}
}

func TestEvaluate_NotStarted(t *testing.T) {
	now := time.Now().UTC()
	prev := store.TroyStatus{IsOnTrail: false, BeaconURL: strPtr("https://beacon.example/abc")}

	t.Run("fresh share is a no-op", func(t *testing.T) {
		_, intents := Evaluate(prev, snapshotAt(StatusNotStarted, nil, now.Add(-10*time.Minute)), now)
		assert.Empty(t, intents)
	})

	t.Run("stale share clears the url", func(t *testing.T) {
		_, intents := Evaluate(prev, snapshotAt(StatusNotStarted, nil, now.Add(-46*time.Minute)), now)
		assert.Equal(t, []Intent{{Kind: IntentClearBeaconURL}}, intents)
	})
}

func TestEvaluate_UnknownIsNoOp(t *testing.T) {
	now := time.Now().UTC()
	prev := store.TroyStatus{IsOnTrail: true, BeaconURL: strPtr("https://beacon.example/abc")}

	normalized, intents := Evaluate(prev, snapshotAt(StatusUnknown, nil, now), now)

	assert.Equal(t, StatusUnknown, normalized)
	assert.Empty(t, intents)
}
